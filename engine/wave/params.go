package wave

import "sync/atomic"

// Layer is one independent displacement contribution.
type Layer struct {
	/** @brief Spatial frequency applied to the sample position. */
	NoiseFrequency float32 `toml:"noise_frequency"`
	/** @brief Scale of the layer's contribution to z. */
	NoiseAmplitude float32 `toml:"noise_amplitude"`
	/** @brief Scale of the time term scrolling the field. */
	SpeedModifier float32 `toml:"speed_modifier"`
}

// LayerCount is fixed: the displacement model sums exactly two
// decorrelated layers.
const LayerCount = 2

// Params is the full tunable parameter set read once per frame.
type Params struct {
	Layers [LayerCount]Layer
}

// DefaultParams returns the parameters the surface starts with.
func DefaultParams() Params {
	return Params{
		Layers: [LayerCount]Layer{
			{NoiseFrequency: 1.2, NoiseAmplitude: 0.2, SpeedModifier: 0.8},
			{NoiseFrequency: 2.1, NoiseAmplitude: 0.15, SpeedModifier: 1.4},
		},
	}
}

// ParamStore hands out consistent snapshots of Params. A tuning
// interface may Store a new set at any time; a frame that took its
// Snapshot never observes a half-applied update across the two layers.
type ParamStore struct {
	current atomic.Pointer[Params]
}

func NewParamStore(p Params) *ParamStore {
	s := &ParamStore{}
	s.current.Store(&p)
	return s
}

// Snapshot returns the parameter set by value.
func (s *ParamStore) Snapshot() Params {
	return *s.current.Load()
}

// Store replaces the parameter set. The previous snapshot stays valid
// for readers that already took it.
func (s *ParamStore) Store(p Params) {
	s.current.Store(&p)
}
