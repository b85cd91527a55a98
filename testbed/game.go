package testbed

import (
	"fmt"
	"sync/atomic"

	"github.com/spaghettifunk/hexwave/engine"
	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/hexgrid"
	"github.com/spaghettifunk/hexwave/engine/renderer/metadata"
	"github.com/spaghettifunk/hexwave/engine/systems"
	"github.com/spaghettifunk/hexwave/engine/tuning"
	"github.com/spaghettifunk/hexwave/engine/wave"
)

type WaveGame struct {
	*engine.Game
}

type gameState struct {
	configPath string
	lattice    hexgrid.LatticeSpec

	store   *wave.ParamStore
	watcher *tuning.Watcher
	surface *systems.SurfaceSystem

	width  uint32
	height uint32

	// Key events arrive on the event goroutine; the flags are consumed
	// on the main thread at the top of Update.
	paused          atomic.Bool
	pendingRebuild  atomic.Bool
	pendingSnapshot atomic.Bool

	snapshotCount int
	logTimer      float64
}

func NewWaveGame(configPath string) (*WaveGame, error) {
	fc, params, err := engine.LoadFileConfig(configPath)
	if err != nil {
		return nil, err
	}

	wg := &WaveGame{
		Game: &engine.Game{
			ApplicationConfig: fc.ApplicationConfig(),
			State: &gameState{
				configPath: fc.Path,
				lattice:    fc.Lattice,
				store:      wave.NewParamStore(params),
			},
		},
	}

	wg.FnInitialize = wg.Initialize
	wg.FnUpdate = wg.Update
	wg.FnRender = wg.Render
	wg.FnOnResize = wg.OnResize
	wg.FnShutdown = wg.Shutdown

	return wg, nil
}

func (g *WaveGame) Initialize() error {
	core.LogDebug("WaveGame Initialize fn....")

	if g.SystemManager == nil {
		return fmt.Errorf("the engine is not yet initialized with all the system managers")
	}

	state := g.State.(*gameState)

	surface, err := systems.NewSurfaceSystem(
		g.SystemManager.RendererSystem,
		g.SystemManager.GeometrySystem,
		state.store,
		state.lattice,
		0,
	)
	if err != nil {
		return err
	}
	state.surface = surface
	g.SystemManager.RegisterSurface(surface)

	watcher, err := tuning.NewWatcher(state.configPath, state.store)
	if err != nil {
		return err
	}
	if err := watcher.Start(); err != nil {
		return err
	}
	state.watcher = watcher

	core.EventRegister(core.EVENT_CODE_KEY_PRESSED, g.gameOnKey)

	return nil
}

func (g *WaveGame) Update(deltaTime float64) error {
	state := g.State.(*gameState)

	if state.pendingRebuild.Swap(false) {
		if err := state.surface.Rebuild(state.lattice); err != nil {
			return err
		}
	}

	if !state.paused.Load() {
		if err := state.surface.Update(deltaTime); err != nil {
			return err
		}
	}

	if state.pendingSnapshot.Swap(false) {
		state.snapshotCount++
		path := fmt.Sprintf("hexwave-%03d.png", state.snapshotCount)
		if err := state.surface.WriteSnapshot(path, 1024); err != nil {
			core.LogError(err.Error())
		}
	}

	state.logTimer += deltaTime
	if state.logTimer >= 1.0 {
		state.logTimer = 0
		fps, frameTime := core.MetricsFrame()
		core.LogDebug("FPS: %5.1f (%4.1fms) t=%.1fs", fps, frameTime, state.surface.Elapsed())
	}

	return nil
}

func (g *WaveGame) Render(packet *metadata.RenderPacket, deltaTime float64) error {
	state := g.State.(*gameState)

	packet.DeltaTime = deltaTime
	packet.Geometries = []*metadata.Geometry{state.surface.Geometry()}

	return nil
}

func (g *WaveGame) OnResize(width uint32, height uint32) error {
	state := g.State.(*gameState)
	state.width = width
	state.height = height
	return nil
}

func (g *WaveGame) Shutdown() error {
	state := g.State.(*gameState)
	if state.watcher != nil {
		return state.watcher.Close()
	}
	return nil
}

func (g *WaveGame) gameOnKey(context core.EventContext) {
	event, ok := context.Data.(*core.KeyEvent)
	if !ok {
		return
	}
	state := g.State.(*gameState)

	switch event.KeyCode {
	case core.KEY_ESCAPE:
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	case core.KEY_SPACE:
		paused := !state.paused.Load()
		state.paused.Store(paused)
		core.LogDebug("animation paused: %t", paused)
	case core.KEY_R:
		state.pendingRebuild.Store(true)
	case core.KEY_P:
		state.pendingSnapshot.Store(true)
	}
}
