package renderer

import (
	"fmt"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
)

// Renderer is the front the rest of the engine talks to. It owns a
// single backend and keeps frame bookkeeping out of the systems.
type Renderer struct {
	backend Backend
}

func New(backend Backend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Initialize(applicationName string, width, height uint32) error {
	if err := r.backend.Initialize(applicationName, width, height); err != nil {
		core.LogError(err.Error())
		return err
	}
	return nil
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) OnResized(width, height uint32) {
	r.backend.Resized(width, height)
}

// DrawFrame renders one packet: begin, draw every geometry, end.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		return err
	}
	for _, geometry := range packet.Geometries {
		if geometry == nil || geometry.InternalID == metadata.InvalidID {
			continue
		}
		if err := r.backend.DrawGeometry(geometry); err != nil {
			return fmt.Errorf("failed to draw geometry %s: %w", geometry.Name, err)
		}
	}
	return r.backend.EndFrame()
}

func (r *Renderer) CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) bool {
	return r.backend.CreateGeometry(geometry, vertices, indices)
}

func (r *Renderer) UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) bool {
	return r.backend.UpdateGeometry(geometry, vertices)
}

func (r *Renderer) DestroyGeometry(geometry *metadata.Geometry) {
	r.backend.DestroyGeometry(geometry)
}
