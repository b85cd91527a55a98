package wave

import (
	"github.com/spaghettifunk/hexwave/engine/math"
	"github.com/spaghettifunk/hexwave/engine/noise"
)

const (
	// Seed of the shared noise field. Fixed so the surface is
	// reproducible run to run.
	fieldSeed uint64 = 0x68657877 // "hexw"

	// The second layer runs on a 45 degree rotated copy of the sample
	// position with a negated, scaled time term, which decorrelates the
	// two layers' phase.
	secondLayerRotation  = math.K_QUARTER_PI
	secondLayerTimeScale = -0.6
)

// Displacer maps base vertex positions to displaced positions. It is
// pure: identical (position, time, params) inputs always produce the
// same output, and repeated evaluation advances no internal state.
type Displacer struct {
	field *noise.Value
}

func NewDisplacer() *Displacer {
	return &Displacer{field: noise.New(fieldSeed)}
}

// Height returns the summed z offset of both wave layers at (x, y).
func (d *Displacer) Height(x, y float32, t float64, params Params) float32 {
	ts := float32(t)

	l0 := params.Layers[0]
	scroll0 := ts * l0.SpeedModifier
	height := d.field.Sample(
		x*l0.NoiseFrequency+scroll0,
		y*l0.NoiseFrequency+scroll0,
	) * l0.NoiseAmplitude

	l1 := params.Layers[1]
	sin := math.Ksin(secondLayerRotation)
	cos := math.Kcos(secondLayerRotation)
	rx := x*cos - y*sin
	ry := x*sin + y*cos
	scroll1 := ts * l1.SpeedModifier * secondLayerTimeScale
	height += d.field.Sample(
		rx*l1.NoiseFrequency+scroll1,
		ry*l1.NoiseFrequency+scroll1,
	) * l1.NoiseAmplitude

	return height
}

// Displace returns pos with z replaced by the wave height at its x/y.
// x and y pass through unchanged.
func (d *Displacer) Displace(pos math.Vec3, t float64, params Params) math.Vec3 {
	pos.Z = d.Height(pos.X, pos.Y, t, params)
	return pos
}
