package math

// GeometryGenerateNormals computes per-vertex normals by averaging the
// face normals of every triangle sharing a vertex. The cross products
// are accumulated unnormalized, so larger faces weigh more, and the sum
// is normalized at the end. Vertices referenced by no triangle keep a
// zero normal.
func GeometryGenerateNormals(vertices []Vertex3D, indices []uint32) {
	accumulated := make([]Vec3, len(vertices))

	for i := 0; i+2 < len(indices); i += 3 {
		i0 := indices[i+0]
		i1 := indices[i+1]
		i2 := indices[i+2]

		edge1 := vertices[i1].Position.Sub(vertices[i0].Position)
		edge2 := vertices[i2].Position.Sub(vertices[i0].Position)
		faceNormal := edge1.Cross(edge2)

		accumulated[i0] = accumulated[i0].Add(faceNormal)
		accumulated[i1] = accumulated[i1].Add(faceNormal)
		accumulated[i2] = accumulated[i2].Add(faceNormal)
	}

	for i := range vertices {
		vertices[i].Normal = accumulated[i].Normalized()
	}
}

func Vertex3dEqual(vert0 Vertex3D, vert1 Vertex3D) bool {
	return vert0.Position.Compare(vert1.Position, K_FLOAT_EPSILON) &&
		vert0.Normal.Compare(vert1.Normal, K_FLOAT_EPSILON) &&
		vert0.Colour.Compare(vert1.Colour, K_FLOAT_EPSILON)
}
