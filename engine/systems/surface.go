package systems

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/hexgrid"
	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/renderer"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
	"github.com/spaghettifunk/hexwave/engine/wave"
)

/**
 * @brief Owns the animated hexagon surface: the flat lattice mesh, the
 * displacement model and the height gradient. Every Update it rewrites
 * the scratch vertex buffer from the immutable base vertices and pushes
 * it to the renderer. The base buffer is never displaced in place, so
 * the pass stays idempotent for a given (time, params) pair.
 */
type SurfaceSystem struct {
	renderer       *renderer.Renderer
	geometrySystem *GeometrySystem

	lattice   hexgrid.LatticeSpec
	params    *wave.ParamStore
	displacer *wave.Displacer
	gradient  *wave.HeightGradient

	geometry *metadata.Geometry
	base     []math.Vertex3D
	scratch  []math.Vertex3D
	indices  []uint32

	elapsed float64
	workers int
}

func NewSurfaceSystem(r *renderer.Renderer, gs *GeometrySystem, store *wave.ParamStore, lattice hexgrid.LatticeSpec, workers int) (*SurfaceSystem, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	ss := &SurfaceSystem{
		renderer:       r,
		geometrySystem: gs,
		params:         store,
		displacer:      wave.NewDisplacer(),
		workers:        workers,
	}
	if err := ss.build(lattice); err != nil {
		return nil, err
	}
	return ss, nil
}

func (ss *SurfaceSystem) build(lattice hexgrid.LatticeSpec) error {
	config := hexgrid.Build(lattice)
	core.LogInfo("hexagon lattice built: %d cells, %d vertices, %d indices",
		lattice.CellCount(), len(config.Vertices), len(config.Indices))

	geometry, err := ss.geometrySystem.AcquireFromConfig(config, true)
	if err != nil {
		return fmt.Errorf("failed to acquire surface geometry: %w", err)
	}

	ss.lattice = lattice
	ss.gradient = wave.NewHeightGradient(lattice.VerticalHalfRange())
	ss.geometry = geometry
	ss.base = config.Vertices
	ss.scratch = make([]math.Vertex3D, len(config.Vertices))
	ss.indices = config.Indices
	return nil
}

/**
 * @brief Drops the current mesh and rebuilds the surface from a new
 * lattice spec. The accumulated animation time carries over so the
 * waves do not visibly reset.
 */
func (ss *SurfaceSystem) Rebuild(lattice hexgrid.LatticeSpec) error {
	if ss.geometry != nil {
		ss.geometrySystem.Release(ss.geometry)
		ss.geometry = nil
	}
	return ss.build(lattice)
}

/**
 * @brief Advances the animation by deltaTime and re-uploads the
 * displaced, coloured vertex buffer. Takes a single parameter snapshot
 * up front; both layers of every vertex in the frame see the same set.
 */
func (ss *SurfaceSystem) Update(deltaTime float64) error {
	ss.elapsed += deltaTime
	params := ss.params.Snapshot()

	ss.apply(ss.elapsed, params)

	if !ss.renderer.UpdateGeometry(ss.geometry, ss.scratch) {
		return fmt.Errorf("failed to update surface geometry %s", ss.geometry.Name)
	}
	return nil
}

// apply maps every base vertex through displacement and gradient into
// the scratch buffer. Chunked across workers; each vertex is
// independent, so there is no write contention.
func (ss *SurfaceSystem) apply(t float64, params wave.Params) {
	total := len(ss.base)
	chunk := (total + ss.workers - 1) / ss.workers

	var wg sync.WaitGroup
	for start := 0; start < total; start += chunk {
		end := start + chunk
		if end > total {
			end = total
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				v := ss.base[i]
				v.Position = ss.displacer.Displace(v.Position, t, params)
				v.Colour = ss.gradient.ColorAt(v.Position.Z)
				ss.scratch[i] = v
			}
		}(start, end)
	}
	wg.Wait()
}

// Geometry returns the renderable handle for the frame packet.
func (ss *SurfaceSystem) Geometry() *metadata.Geometry {
	return ss.geometry
}

// Elapsed returns the accumulated animation time in seconds.
func (ss *SurfaceSystem) Elapsed() float64 {
	return ss.elapsed
}

func (ss *SurfaceSystem) Lattice() hexgrid.LatticeSpec {
	return ss.lattice
}

func (ss *SurfaceSystem) Shutdown() {
	if ss.geometry != nil {
		ss.geometrySystem.Release(ss.geometry)
		ss.geometry = nil
	}
}
