package wave

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/hexwave/engine/math"
)

func TestGradientEndpointsAreExact(t *testing.T) {
	g := NewHeightGradient(2.0)

	assert.Equal(t, WarmStop, g.ColorAt(-2.0))
	assert.Equal(t, CoolStop, g.ColorAt(2.0))
}

func TestGradientClampsOutOfRange(t *testing.T) {
	g := NewHeightGradient(1.0)

	assert.Equal(t, WarmStop, g.ColorAt(-50.0))
	assert.Equal(t, CoolStop, g.ColorAt(50.0))
}

func TestGradientMidpoint(t *testing.T) {
	g := NewHeightGradient(1.0)

	mid := g.ColorAt(0.0)
	expected := WarmStop.Lerp(CoolStop, 0.5)
	assert.True(t, mid.Compare(expected, 1e-6))
}

func TestGradientIsMonotonic(t *testing.T) {
	g := NewHeightGradient(1.0)

	// Warm is redder at the bottom, cool is bluer at the top. Walking
	// up the range the red channel never increases and the blue channel
	// never decreases.
	prev := g.ColorAt(-1.0)
	for i := 1; i <= 100; i++ {
		z := float32(-1.0) + float32(i)*0.02
		cur := g.ColorAt(z)
		assert.LessOrEqual(t, cur.X, prev.X)
		assert.GreaterOrEqual(t, cur.Z, prev.Z)
		prev = cur
	}
}

func TestGradientDegenerateHalfRangeDefaults(t *testing.T) {
	g := NewHeightGradient(0)

	// Falls back to a half range of one.
	assert.Equal(t, WarmStop, g.ColorAt(-1.0))
	assert.Equal(t, CoolStop, g.ColorAt(1.0))
}

func TestGradientCustomStops(t *testing.T) {
	warm := math.NewVec4(1, 0, 0, 1)
	cool := math.NewVec4(0, 0, 1, 1)
	g := NewHeightGradientWithStops(0.5, warm, cool)

	assert.Equal(t, warm, g.ColorAt(-0.5))
	assert.Equal(t, cool, g.ColorAt(0.5))
}
