package wave

import (
	"github.com/spaghettifunk/hexwave/engine/core"
	"github.com/spaghettifunk/hexwave/engine/math"
)

// Default gradient endpoints: a warm pink at the bottom of the range,
// a cool blue at the top. Alpha is always 1; the surface is opaque.
var (
	WarmStop = math.NewVec4(0.957, 0.263, 0.616, 1.0)
	CoolStop = math.NewVec4(0.173, 0.365, 0.914, 1.0)
)

// HeightGradient maps a displaced vertical coordinate to a colour by
// normalizing it into [0,1] over [-halfRange, +halfRange] and blending
// between two endpoint colours. The half range is derived from the
// lattice extent by the caller, so the calibration follows the grid
// dimensions instead of being a hardcoded constant.
type HeightGradient struct {
	halfRange float32
	warm      math.Vec4
	cool      math.Vec4
}

func NewHeightGradient(halfRange float32) *HeightGradient {
	return NewHeightGradientWithStops(halfRange, WarmStop, CoolStop)
}

func NewHeightGradientWithStops(halfRange float32, warm, cool math.Vec4) *HeightGradient {
	if halfRange <= 0 {
		core.LogWarn("halfRange must be a positive number. Defaulting to one.")
		halfRange = 1.0
	}
	return &HeightGradient{
		halfRange: halfRange,
		warm:      warm,
		cool:      cool,
	}
}

// ColorAt returns the interpolated colour for the displaced height z.
// Inputs outside the calibrated range clamp to the endpoint colours,
// which are returned exactly at the extremes.
func (g *HeightGradient) ColorAt(z float32) math.Vec4 {
	factor := (z + g.halfRange) / (2.0 * g.halfRange)
	return g.warm.Lerp(g.cool, factor)
}
