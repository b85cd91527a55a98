package hexgrid

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/hexwave/engine/math"
)

func testSpec() LatticeSpec {
	return LatticeSpec{
		GridWidth:     1.0,
		GridHeight:    1.0,
		HexRadius:     0.25,
		LineThickness: 0.02,
	}
}

func TestBuildEmitsFourVerticesAndSixIndicesPerEdge(t *testing.T) {
	spec := testSpec()
	config := Build(spec)

	cells := spec.CellCount()
	assert.Equal(t, cells*6*4, len(config.Vertices))
	assert.Equal(t, cells*6*6, len(config.Indices))
	assert.Equal(t, uint32(len(config.Vertices)), config.VertexCount)
	assert.Equal(t, uint32(len(config.Indices)), config.IndexCount)
}

func TestBuildIndicesStayInBounds(t *testing.T) {
	config := Build(testSpec())

	limit := uint32(len(config.Vertices))
	for _, index := range config.Indices {
		assert.Less(t, index, limit)
	}
}

func TestBuildEmitsFlatSurface(t *testing.T) {
	config := Build(testSpec())

	for _, v := range config.Vertices {
		assert.Zero(t, v.Position.Z)
	}
	assert.Zero(t, config.MinExtents.Z)
	assert.Zero(t, config.MaxExtents.Z)
}

func TestBuildNormalsPointUp(t *testing.T) {
	config := Build(testSpec())

	up := math.NewVec3(0, 0, 1)
	for _, v := range config.Vertices {
		assert.True(t, v.Normal.Compare(up, 1e-5),
			"flat counter-clockwise quads must have +z normals, got %+v", v.Normal)
	}
}

func TestEdgeQuadAreaMatchesThickness(t *testing.T) {
	// A hexagon's edge length equals its circumradius, so every edge
	// quad covers edgeLength * thickness.
	spec := LatticeSpec{HexRadius: 1.0, LineThickness: 0.1}
	config := Build(spec)

	v0 := config.Vertices[0].Position
	v1 := config.Vertices[1].Position
	v2 := config.Vertices[2].Position
	v3 := config.Vertices[3].Position

	cross := func(a, b, c math.Vec3) float32 {
		return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	}
	area := 0.5*math.Kabs(cross(v0, v1, v2)) + 0.5*math.Kabs(cross(v0, v2, v3))
	assert.InDelta(t, spec.HexRadius*spec.LineThickness, area, 1e-4)
}

func TestZeroThicknessCollapsesQuads(t *testing.T) {
	spec := LatticeSpec{HexRadius: 1.0, LineThickness: 0}
	config := Build(spec)

	// With no offset the two vertices of each endpoint coincide.
	v0 := config.Vertices[0].Position
	v3 := config.Vertices[3].Position
	assert.Equal(t, v0, v3)
}

func TestZeroExtentStillEmitsCells(t *testing.T) {
	spec := LatticeSpec{GridWidth: 0, GridHeight: 0, HexRadius: 1.0, LineThickness: 0.05}

	assert.Greater(t, spec.CellCount(), 0)
	config := Build(spec)
	assert.NotEmpty(t, config.Vertices)
}

func TestDegenerateSpecFallsBackToDefaults(t *testing.T) {
	spec := LatticeSpec{GridWidth: -3, GridHeight: -3, HexRadius: -1, LineThickness: -0.5}

	// Radius defaults to one, the rest clamp to zero; the build still
	// yields a usable mesh instead of NaN geometry.
	config := Build(spec)
	assert.NotEmpty(t, config.Vertices)
	for _, v := range config.Vertices {
		assert.False(t, v.Position.X != v.Position.X, "NaN x coordinate")
		assert.False(t, v.Position.Y != v.Position.Y, "NaN y coordinate")
	}
}

func TestFineLatticeProducesValidMesh(t *testing.T) {
	spec := LatticeSpec{GridWidth: 4, GridHeight: 4, HexRadius: 0.1, LineThickness: 0.003}
	config := Build(spec)

	assert.NotEmpty(t, config.Vertices)
	assert.Zero(t, len(config.Vertices)%24, "vertex count must be a whole number of hex cells")
	assert.Zero(t, len(config.Indices)%36, "index count must be a whole number of hex cells")
}

func TestCellCountGrowsWithExtent(t *testing.T) {
	small := LatticeSpec{GridWidth: 1, GridHeight: 1, HexRadius: 0.1}
	large := LatticeSpec{GridWidth: 4, GridHeight: 4, HexRadius: 0.1}

	assert.Greater(t, large.CellCount(), small.CellCount())
}

func TestVerticalHalfRangeTracksGridHeight(t *testing.T) {
	spec := LatticeSpec{GridWidth: 4, GridHeight: 3, HexRadius: 0.1}
	assert.Equal(t, float32(1.5), spec.VerticalHalfRange())

	flat := LatticeSpec{GridWidth: 4, GridHeight: 0, HexRadius: 0.1}
	assert.Equal(t, float32(1.0), flat.VerticalHalfRange())
}

func TestStaggeredRowsAreOffset(t *testing.T) {
	// Odd rows shift right by half a horizontal step; as a result the
	// lattice has hexagon centers at two distinct x phases. Verify by
	// collecting the quad midpoints of the bottom edges and checking
	// more than one x offset modulo the step exists.
	spec := LatticeSpec{GridWidth: 1, GridHeight: 1, HexRadius: 0.25, LineThickness: 0.01}
	config := Build(spec)

	xs := map[bool]bool{}
	hexWidth := spec.HexRadius * math.K_SQRT_THREE
	for i := 0; i < len(config.Vertices); i += 24 {
		centerX := (config.Vertices[i].Position.X + config.Vertices[i+12].Position.X) * 0.5
		phase := math.Kabs(centerX/hexWidth) - math.Kfloor(math.Kabs(centerX/hexWidth))
		xs[phase > 0.25 && phase < 0.75] = true
	}
	assert.Len(t, xs, 2, "expected both row phases in the tiling")
}
