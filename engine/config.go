package engine

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/hexgrid"
	"github.com/spaghettifunk/hexwave/engine/tuning"
	"github.com/spaghettifunk/hexwave/engine/wave"
)

// FileConfig is the on-disk TOML configuration. The [wave] section of
// the same file is parsed by the tuning package, which also watches it
// for changes at runtime; [application] and [lattice] are read once at
// startup.
type FileConfig struct {
	Application struct {
		Name        string `toml:"name"`
		StartPosX   uint32 `toml:"start_pos_x"`
		StartPosY   uint32 `toml:"start_pos_y"`
		StartWidth  uint32 `toml:"start_width"`
		StartHeight uint32 `toml:"start_height"`
		LogLevel    string `toml:"log_level"`
	} `toml:"application"`
	Lattice hexgrid.LatticeSpec `toml:"lattice"`

	// The path the config was loaded from, for the tuning watcher.
	Path string `toml:"-"`
}

// LoadFileConfig reads and decodes the configuration at path, plus the
// initial wave parameters from its [wave] section.
func LoadFileConfig(path string) (*FileConfig, wave.Params, error) {
	params := wave.DefaultParams()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, params, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	fc := &FileConfig{Path: path}
	fc.Application.Name = "Hexwave"
	fc.Application.StartPosX = 100
	fc.Application.StartPosY = 100
	fc.Application.StartWidth = 1280
	fc.Application.StartHeight = 720
	fc.Application.LogLevel = "debug"
	fc.Lattice = hexgrid.LatticeSpec{
		GridWidth:     4.0,
		GridHeight:    4.0,
		HexRadius:     0.1,
		LineThickness: 0.003,
	}

	if err := toml.Unmarshal(data, fc); err != nil {
		return nil, params, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	params, err = tuning.ParseParams(data)
	if err != nil {
		core.LogWarn("invalid [wave] section in %s, using defaults: %s", path, err.Error())
	}

	return fc, params, nil
}

// ApplicationConfig converts the decoded [application] section.
func (fc *FileConfig) ApplicationConfig() *ApplicationConfig {
	level, err := log.ParseLevel(fc.Application.LogLevel)
	if err != nil {
		core.LogWarn("unknown log level %q, defaulting to debug", fc.Application.LogLevel)
		level = log.DebugLevel
	}
	return &ApplicationConfig{
		StartPosX:   fc.Application.StartPosX,
		StartPosY:   fc.Application.StartPosY,
		StartWidth:  fc.Application.StartWidth,
		StartHeight: fc.Application.StartHeight,
		Name:        fc.Application.Name,
		LogLevel:    level,
	}
}
