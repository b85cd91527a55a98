package renderer

import (
	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
)

// Backend is the boundary between the core and whatever actually puts
// pixels on screen. The core hands it vertex/index buffer pairs and a
// per-frame draw list; everything else (context, swapchain, projection)
// is the backend's business.
type Backend interface {
	Initialize(applicationName string, width, height uint32) error
	Shutdown() error

	Resized(width, height uint32)

	BeginFrame(deltaTime float64) error
	DrawGeometry(geometry *metadata.Geometry) error
	EndFrame() error

	// CreateGeometry uploads a static buffer pair and assigns the
	// geometry's InternalID.
	CreateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D, indices []uint32) bool
	// UpdateGeometry re-uploads vertex data of an existing geometry.
	// The index buffer is immutable for the geometry's lifetime.
	UpdateGeometry(geometry *metadata.Geometry, vertices []math.Vertex3D) bool
	DestroyGeometry(geometry *metadata.Geometry)
}
