package systems

import (
	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/platform"
	"github.com/spaghettifunk/hexwave/engine/renderer"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
	"github.com/spaghettifunk/hexwave/engine/renderer/opengl"
)

/**
 * @brief Owns and wires the engine subsystems in their dependency
 * order. The surface system is registered later by the game once it has
 * loaded its lattice and wave configuration.
 */
type SystemManager struct {
	RendererSystem *renderer.Renderer
	GeometrySystem *GeometrySystem
	SurfaceSystem  *SurfaceSystem

	applicationName string
	width           uint32
	height          uint32
}

func NewSystemManager(applicationName string, width, height uint32, p *platform.Platform) (*SystemManager, error) {
	r := renderer.New(opengl.New(p))

	gs, err := NewGeometrySystem(&GeometrySystemConfig{MaxGeometryCount: DefaultMaxGeometryCount}, r)
	if err != nil {
		core.LogError("failed to initialize geometry system")
		return nil, err
	}

	return &SystemManager{
		RendererSystem:  r,
		GeometrySystem:  gs,
		applicationName: applicationName,
		width:           width,
		height:          height,
	}, nil
}

// Initialize brings up the renderer. Must run after the platform has a
// current context on the calling thread.
func (sm *SystemManager) Initialize() error {
	if err := sm.RendererSystem.Initialize(sm.applicationName, sm.width, sm.height); err != nil {
		core.LogError("failed to initialize renderer system")
		return err
	}
	return nil
}

func (sm *SystemManager) RegisterSurface(ss *SurfaceSystem) {
	sm.SurfaceSystem = ss
}

func (sm *SystemManager) OnResize(width, height uint32) {
	sm.width = width
	sm.height = height
	sm.RendererSystem.OnResized(width, height)
}

func (sm *SystemManager) DrawFrame(packet *metadata.RenderPacket) error {
	return sm.RendererSystem.DrawFrame(packet)
}

func (sm *SystemManager) Shutdown() error {
	if sm.SurfaceSystem != nil {
		sm.SurfaceSystem.Shutdown()
	}
	if err := sm.RendererSystem.Shutdown(); err != nil {
		core.LogError("failed to shutdown renderer system")
		return err
	}
	return nil
}
