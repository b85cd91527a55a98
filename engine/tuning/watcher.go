package tuning

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/wave"
)

// document mirrors the [wave] section of the configuration file.
type document struct {
	Wave struct {
		Layers []wave.Layer `toml:"layers"`
	} `toml:"wave"`
}

// ParseParams extracts and validates the wave layer parameters from a
// TOML document. Missing layers fall back to the defaults so a partial
// file still yields a usable set.
func ParseParams(data []byte) (wave.Params, error) {
	params := wave.DefaultParams()

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return params, fmt.Errorf("failed to parse tuning document: %w", err)
	}

	if len(doc.Wave.Layers) > wave.LayerCount {
		core.LogWarn("tuning document declares %d wave layers, only the first %d are used", len(doc.Wave.Layers), wave.LayerCount)
	}
	for i := 0; i < len(doc.Wave.Layers) && i < wave.LayerCount; i++ {
		layer := doc.Wave.Layers[i]
		if layer.NoiseFrequency <= 0 {
			return params, fmt.Errorf("wave layer %d: noise_frequency must be positive, got %f", i, layer.NoiseFrequency)
		}
		if layer.NoiseAmplitude < 0 {
			return params, fmt.Errorf("wave layer %d: noise_amplitude must not be negative, got %f", i, layer.NoiseAmplitude)
		}
		params.Layers[i] = layer
	}
	return params, nil
}

// Watcher re-applies the [wave] section of a configuration file to a
// ParamStore whenever the file changes on disk. Writes land between
// frames by virtue of the store's snapshot semantics; the render path
// never observes a torn layer pair.
type Watcher struct {
	path     string
	store    *wave.ParamStore
	fsnotify *fsnotify.Watcher
	done     chan struct{}
	isClosed bool
}

func NewWatcher(path string, store *wave.ParamStore) (*Watcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		path:     path,
		store:    store,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
	}, nil
}

// Start applies the file once, then begins watching it. Editors often
// replace files instead of writing in place, so the watch is on the
// containing directory and events are filtered by name.
func (w *Watcher) Start() error {
	if w.isClosed {
		return fmt.Errorf("tuning watcher already closed")
	}
	if err := w.apply(); err != nil {
		return err
	}
	if err := w.fsnotify.Add(filepath.Dir(w.path)); err != nil {
		return err
	}
	go w.run()
	return nil
}

func (w *Watcher) Close() error {
	if w.isClosed {
		return nil
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}

func (w *Watcher) run() {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != filepath.Clean(w.path) {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) == 0 {
				continue
			}
			if err := w.apply(); err != nil {
				// Keep the previous parameters on a bad edit.
				core.LogWarn(err.Error())
			}

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-w.done:
			return
		}
	}
}

func (w *Watcher) apply() error {
	data, err := os.ReadFile(w.path)
	if err != nil {
		return fmt.Errorf("failed to read tuning file %s: %w", w.path, err)
	}
	params, err := ParseParams(data)
	if err != nil {
		return err
	}
	w.store.Store(params)
	core.LogInfo("applied wave tuning from %s", w.path)
	core.EventFire(core.EventContext{Type: core.EVENT_CODE_TUNING_APPLIED})
	return nil
}
