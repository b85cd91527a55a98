package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleMatchesLatticeAtIntegers(t *testing.T) {
	field := New(12345)

	for y := int32(-8); y <= 8; y++ {
		for x := int32(-8); x <= 8; x++ {
			assert.Equal(t, field.Lattice(x, y), field.Sample(float32(x), float32(y)),
				"sample at integer point (%d, %d) must equal the lattice value", x, y)
		}
	}
}

func TestSampleStaysInRange(t *testing.T) {
	field := New(999)

	for i := 0; i < 10_000; i++ {
		x := float32(i)*0.137 - 600.0
		y := float32(i)*0.211 - 900.0
		s := field.Sample(x, y)
		assert.GreaterOrEqual(t, s, float32(-1.0))
		assert.LessOrEqual(t, s, float32(1.0))
	}
}

func TestSameSeedSameField(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		x := float32(i) * 0.173
		y := float32(i) * -0.091
		assert.Equal(t, a.Sample(x, y), b.Sample(x, y))
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	differs := false
	for i := 0; i < 100 && !differs; i++ {
		x := float32(i) * 0.37
		differs = a.Sample(x, x) != b.Sample(x, x)
	}
	assert.True(t, differs, "two differently seeded fields should not agree everywhere")
}

func TestSampleIsContinuous(t *testing.T) {
	field := New(7)

	// Step across several cell boundaries; adjacent samples must not
	// jump. The field range is 2, so 0.3 is a generous bound for a step
	// of 1/128.
	const step = 1.0 / 128.0
	prev := field.Sample(-3.0, 0.5)
	for i := 1; i <= 6*128; i++ {
		x := float32(-3.0) + float32(i)*step
		cur := field.Sample(x, 0.5)
		assert.InDelta(t, prev, cur, 0.3)
		prev = cur
	}
}
