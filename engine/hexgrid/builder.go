package hexgrid

import (
	m "math"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
)

/**
 * @brief The input to Build. All dimensions are in world units.
 * LineThickness should stay below 2*HexRadius*sin(60deg) or adjacent
 * edge quads start to overlap; Build does not enforce this.
 */
type LatticeSpec struct {
	/** @brief The covered extent along the x axis. */
	GridWidth float32 `toml:"grid_width"`
	/** @brief The covered extent along the y axis. */
	GridHeight float32 `toml:"grid_height"`
	/** @brief The circumradius of a single hexagon. */
	HexRadius float32 `toml:"hex_radius"`
	/** @brief The rendered width of a hexagon edge. */
	LineThickness float32 `toml:"line_thickness"`
}

const (
	edgesPerHex     = 6
	verticesPerEdge = 4
	indicesPerEdge  = 6

	// Edge endpoints start at 90 degrees so the hexagons are pointy-top.
	rotationOffset = math.K_HALF_PI
)

// sanitized returns a copy with degenerate fields replaced by usable
// defaults, warning the same way the plane generator does.
func (s LatticeSpec) sanitized() LatticeSpec {
	if s.HexRadius <= 0 {
		core.LogWarn("HexRadius must be a positive number. Defaulting to one.")
		s.HexRadius = 1.0
	}
	if s.LineThickness < 0 {
		core.LogWarn("LineThickness must not be negative. Defaulting to zero.")
		s.LineThickness = 0
	}
	if s.GridWidth < 0 {
		core.LogWarn("GridWidth must not be negative. Defaulting to zero.")
		s.GridWidth = 0
	}
	if s.GridHeight < 0 {
		core.LogWarn("GridHeight must not be negative. Defaulting to zero.")
		s.GridHeight = 0
	}
	return s
}

// counts returns the half row/column counts of the lattice. Rows run
// from -rows to +rows inclusive, likewise columns, so the tiling
// over-covers the requested extent and leaves no gap at the borders.
func (s LatticeSpec) counts() (rows, cols int) {
	hexWidth := s.HexRadius * math.K_SQRT_THREE
	hexHeight := s.HexRadius * 2.0
	horizStep := hexWidth
	vertStep := hexHeight * 0.75

	cols = int(m.Ceil(float64((s.GridWidth + hexWidth) / horizStep)))
	rows = int(m.Ceil(float64((s.GridHeight + hexHeight) / vertStep)))
	return rows, cols
}

// CellCount returns the number of hexagon cells Build will emit.
func (s LatticeSpec) CellCount() int {
	s = s.sanitized()
	rows, cols := s.counts()
	return (2*rows + 1) * (2*cols + 1)
}

// VerticalHalfRange returns the half-extent used to normalize displaced
// heights for coloring. Derived from the lattice so the gradient stays
// in sync when grid dimensions change.
func (s LatticeSpec) VerticalHalfRange() float32 {
	s = s.sanitized()
	if s.GridHeight <= 0 {
		return 1.0
	}
	return s.GridHeight * 0.5
}

/**
 * @brief Generates the thick-line hexagon tiling for the given spec.
 *
 * Every hexagon edge becomes an independent quad of 4 vertices and 2
 * triangles; vertices are not shared between edges, which trades buffer
 * size for the absence of any adjacency bookkeeping. All positions have
 * z=0; the displacement model owns z at render time.
 */
func Build(spec LatticeSpec) *metadata.GeometryConfig {
	spec = spec.sanitized()

	hexWidth := spec.HexRadius * math.K_SQRT_THREE
	hexHeight := spec.HexRadius * 2.0
	horizStep := hexWidth
	vertStep := hexHeight * 0.75

	rows, cols := spec.counts()
	cells := (2*rows + 1) * (2*cols + 1)

	config := &metadata.GeometryConfig{
		VertexCount: uint32(cells * edgesPerHex * verticesPerEdge),
		Vertices:    make([]math.Vertex3D, 0, cells*edgesPerHex*verticesPerEdge),
		IndexCount:  uint32(cells * edgesPerHex * indicesPerEdge),
		Indices:     make([]uint32, 0, cells*edgesPerHex*indicesPerEdge),
		Name:        metadata.DefaultGeometryName,
	}

	halfThickness := spec.LineThickness * 0.5
	for row := -rows; row <= rows; row++ {
		centerY := float32(row)*vertStep - spec.GridHeight*0.5
		for col := -cols; col <= cols; col++ {
			centerX := float32(col)*horizStep - spec.GridWidth*0.5
			if row%2 != 0 {
				// Brick-offset stagger between odd and even rows.
				centerX += horizStep * 0.5
			}
			emitHexagon(config, math.NewVec2(centerX, centerY), spec.HexRadius, halfThickness)
		}
	}

	math.GeometryGenerateNormals(config.Vertices, config.Indices)
	computeExtents(config)
	return config
}

// emitHexagon appends the 6 edge quads of one hexagon cell.
func emitHexagon(config *metadata.GeometryConfig, center math.Vec2, radius, halfThickness float32) {
	for edge := 0; edge < edgesPerHex; edge++ {
		angle0 := float32(edge)*(math.K_PI/3.0) + rotationOffset
		angle1 := float32((edge+1)%edgesPerHex)*(math.K_PI/3.0) + rotationOffset

		p0 := center.Add(math.NewVec2(math.Kcos(angle0), math.Ksin(angle0)).MulScalar(radius))
		p1 := center.Add(math.NewVec2(math.Kcos(angle1), math.Ksin(angle1)).MulScalar(radius))

		emitEdgeQuad(config, p0, p1, halfThickness)
	}
}

// emitEdgeQuad turns one edge into a thin quad by offsetting both
// endpoints perpendicular to the edge direction. A zero-length edge
// gets a zero offset instead of a NaN perpendicular.
func emitEdgeQuad(config *metadata.GeometryConfig, p0, p1 math.Vec2, halfThickness float32) {
	direction := p1.Sub(p0)
	length := direction.Length()

	offset := math.NewVec2(0, 0)
	if length > math.K_FLOAT_EPSILON {
		offset = direction.Perpendicular().MulScalar(halfThickness / length)
	}

	base := uint32(len(config.Vertices))
	corners := [verticesPerEdge]math.Vec2{
		p0.Add(offset),
		p1.Add(offset),
		p1.Sub(offset),
		p0.Sub(offset),
	}
	for _, c := range corners {
		config.Vertices = append(config.Vertices, math.Vertex3D{
			Position: math.NewVec3(c.X, c.Y, 0),
		})
	}

	// Counter-clockwise winding, kept identical across all quads.
	config.Indices = append(config.Indices,
		base+0, base+1, base+2,
		base+0, base+2, base+3,
	)
}

func computeExtents(config *metadata.GeometryConfig) {
	if len(config.Vertices) == 0 {
		return
	}
	min := config.Vertices[0].Position
	max := min
	for _, v := range config.Vertices[1:] {
		p := v.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	config.MinExtents = min
	config.MaxExtents = max
	config.Center = min.Add(max).MulScalar(0.5)
}
