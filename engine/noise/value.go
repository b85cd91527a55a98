package noise

import (
	m "math"

	"golang.org/x/exp/rand"
)

// Value is a deterministic 2D value-noise field. Pseudo-random scalars
// are evaluated at the integer lattice corners surrounding a sample
// point and blended with a smoothstep-weighted bilinear interpolation,
// which keeps the field C1 continuous across cell boundaries. Two
// fields built from the same seed produce identical output.
type Value struct {
	seed uint32
	perm [256]uint8
}

// New builds a noise field from the given seed. The permutation table
// is shuffled with a seeded source so the field is reproducible.
func New(seed uint64) *Value {
	v := &Value{seed: uint32(seed) ^ uint32(seed>>32)}

	rng := rand.New(rand.NewSource(seed))
	for i := range v.perm {
		v.perm[i] = uint8(i)
	}
	rng.Shuffle(len(v.perm), func(i, j int) {
		v.perm[i], v.perm[j] = v.perm[j], v.perm[i]
	})
	return v
}

// mix32 avalanches the bits of x (murmur finalizer constants).
func mix32(x uint32) uint32 {
	x ^= x >> 16
	x *= 0x7feb352d
	x ^= x >> 15
	x *= 0x846ca68b
	x ^= x >> 16
	return x
}

// Lattice returns the pseudo-random scalar in [-1, 1] at the integer
// lattice point (x, y). Sample agrees with this exactly at integers.
func (v *Value) Lattice(x, y int32) float32 {
	h := uint32(v.perm[(uint32(x)+uint32(v.perm[uint32(y)&255]))&255])
	h ^= uint32(x) * 0x9e3779b1
	h ^= uint32(y) * 0x85ebca6b
	h = mix32(h ^ v.seed)
	return float32(h)/float32(m.MaxUint32)*2.0 - 1.0
}

// smoothstep is the classic 3t^2 - 2t^3 blend; zero first derivative
// at t=0 and t=1 hides the lattice grid.
func smoothstep(t float32) float32 {
	return t * t * (3.0 - 2.0*t)
}

func lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// Sample evaluates the field at an arbitrary point. Output stays in
// [-1, 1].
func (v *Value) Sample(x, y float32) float32 {
	fx := float32(m.Floor(float64(x)))
	fy := float32(m.Floor(float64(y)))
	x0 := int32(fx)
	y0 := int32(fy)

	tx := smoothstep(x - fx)
	ty := smoothstep(y - fy)

	c00 := v.Lattice(x0, y0)
	c10 := v.Lattice(x0+1, y0)
	c01 := v.Lattice(x0, y0+1)
	c11 := v.Lattice(x0+1, y0+1)

	return lerp(lerp(c00, c10, tx), lerp(c01, c11, tx), ty)
}
