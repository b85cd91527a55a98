package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateNormalsFlatQuad(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(1, 0, 0)},
		{Position: NewVec3(1, 1, 0)},
		{Position: NewVec3(0, 1, 0)},
	}
	indices := []uint32{0, 1, 2, 0, 2, 3}

	GeometryGenerateNormals(vertices, indices)

	up := NewVec3(0, 0, 1)
	for i, v := range vertices {
		assert.True(t, v.Normal.Compare(up, 1e-6), "vertex %d normal %+v", i, v.Normal)
	}
}

func TestGenerateNormalsAreUnitLength(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(2, 0, 0)},
		{Position: NewVec3(0, 2, 1)},
	}
	indices := []uint32{0, 1, 2}

	GeometryGenerateNormals(vertices, indices)

	for _, v := range vertices {
		assert.InDelta(t, 1.0, float64(v.Normal.Length()), 1e-5)
	}
}

func TestGenerateNormalsClockwiseFacesDown(t *testing.T) {
	vertices := []Vertex3D{
		{Position: NewVec3(0, 0, 0)},
		{Position: NewVec3(0, 1, 0)},
		{Position: NewVec3(1, 0, 0)},
	}
	indices := []uint32{0, 1, 2}

	GeometryGenerateNormals(vertices, indices)

	down := NewVec3(0, 0, -1)
	assert.True(t, vertices[0].Normal.Compare(down, 1e-6))
}
