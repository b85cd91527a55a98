package systems

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/renderer"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
)

const DefaultMaxGeometryCount uint32 = 256

type GeometrySystemConfig struct {
	MaxGeometryCount uint32
}

/**
 * @brief Slot registry of geometries known to the renderer. Acquire
 * registers and uploads a configuration; Release drops a reference and
 * destroys auto-release geometries whose count reaches zero.
 */
type GeometrySystem struct {
	config     *GeometrySystemConfig
	renderer   *renderer.Renderer
	registered []*metadata.GeometryReference
}

func NewGeometrySystem(config *GeometrySystemConfig, r *renderer.Renderer) (*GeometrySystem, error) {
	if config.MaxGeometryCount == 0 {
		err := fmt.Errorf("func NewGeometrySystem - config.MaxGeometryCount must be > 0")
		core.LogWarn(err.Error())
		return nil, err
	}

	gs := &GeometrySystem{
		config:     config,
		renderer:   r,
		registered: make([]*metadata.GeometryReference, config.MaxGeometryCount),
	}

	// Invalidate all geometries in the array.
	for i := range gs.registered {
		gs.registered[i] = &metadata.GeometryReference{
			Geometry: &metadata.Geometry{
				ID:         metadata.InvalidID,
				InternalID: metadata.InvalidID,
				Generation: metadata.InvalidIDUint16,
			},
		}
	}
	return gs, nil
}

/**
 * @brief Registers and acquires a new geometry using the given config.
 *
 * @param config The geometry configuration.
 * @param autoRelease Indicates if the acquired geometry should be unloaded when its reference count reaches 0.
 * @return A pointer to the acquired geometry or an error if no slot was free or the upload failed.
 */
func (gs *GeometrySystem) AcquireFromConfig(config *metadata.GeometryConfig, autoRelease bool) (*metadata.Geometry, error) {
	var geometry *metadata.Geometry
	for i := uint32(0); i < gs.config.MaxGeometryCount; i++ {
		if gs.registered[i].Geometry.ID == metadata.InvalidID {
			// Found empty slot.
			gs.registered[i].AutoRelease = autoRelease
			gs.registered[i].ReferenceCount = 1
			geometry = gs.registered[i].Geometry
			geometry.ID = i
			break
		}
	}

	if geometry == nil {
		err := fmt.Errorf("unable to obtain free slot for geometry. Adjust configuration to allow more space")
		core.LogError(err.Error())
		return nil, err
	}

	if len(config.Name) > 0 && config.Name != metadata.DefaultGeometryName {
		geometry.Name = config.Name
	} else {
		geometry.Name = fmt.Sprintf("geometry-%s", uuid.New().String())
	}

	if !gs.renderer.CreateGeometry(geometry, config.Vertices, config.Indices) {
		gs.registered[geometry.ID].ReferenceCount = 0
		gs.registered[geometry.ID].AutoRelease = false
		geometry.ID = metadata.InvalidID
		geometry.Generation = metadata.InvalidIDUint16
		geometry.InternalID = metadata.InvalidID

		err := fmt.Errorf("failed to create geometry %s", geometry.Name)
		core.LogError(err.Error())
		return nil, err
	}

	geometry.Center = config.Center
	geometry.Extents.Min = config.MinExtents
	geometry.Extents.Max = config.MaxExtents
	geometry.Generation = 0

	return geometry, nil
}

/**
 * @brief Releases a reference to the provided geometry.
 */
func (gs *GeometrySystem) Release(geometry *metadata.Geometry) {
	if geometry == nil || geometry.ID == metadata.InvalidID {
		core.LogWarn("GeometrySystem.Release cannot release invalid geometry id. Nothing was done.")
		return
	}

	ref := gs.registered[geometry.ID]
	if ref.Geometry.ID != geometry.ID {
		core.LogError("Geometry id mismatch. Check registration logic, as this should never occur.")
		return
	}

	if ref.ReferenceCount > 0 {
		ref.ReferenceCount--
	}
	if ref.ReferenceCount < 1 && ref.AutoRelease {
		gs.destroyGeometry(ref.Geometry)
		ref.ReferenceCount = 0
		ref.AutoRelease = false
	}
}

/**
 * @brief Frees resources held by the provided configuration.
 */
func (gs *GeometrySystem) ConfigDispose(config *metadata.GeometryConfig) {
	config.Vertices = nil
	config.Indices = nil
}

func (gs *GeometrySystem) destroyGeometry(geometry *metadata.Geometry) {
	gs.renderer.DestroyGeometry(geometry)
	geometry.InternalID = metadata.InvalidID
	geometry.Generation = metadata.InvalidIDUint16
	geometry.ID = metadata.InvalidID
	geometry.Name = ""
}
