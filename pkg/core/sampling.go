package core

import (
	"math"
	"math/rand"
)

// maxRejectionAttempts bounds the rejection samplers below. A sampler that keeps
// producing rejected candidates (a stub returning a constant, for instance) falls
// back to an analytic sample drawn from the same sampler.
const maxRejectionAttempts = 64

// Sampler provides random sampling for rendering algorithms
// Can be swapped out for deterministic testing or different sampling patterns
type Sampler interface {
	// Get1D returns a value in [0, 1)
	Get1D() float64
}

// RandomSampler wraps a standard Go random generator
type RandomSampler struct {
	random *rand.Rand
}

// NewRandomSampler creates a sampler from a Go random generator
func NewRandomSampler(random *rand.Rand) *RandomSampler {
	return &RandomSampler{random: random}
}

// NewSeededSampler creates a sampler with its own generator seeded with seed
func NewSeededSampler(seed int64) *RandomSampler {
	return NewRandomSampler(rand.New(rand.NewSource(seed)))
}

// Get1D returns a random float64 in [0, 1)
func (r *RandomSampler) Get1D() float64 {
	return r.random.Float64()
}

// ConstantSampler returns the same value for every draw
type ConstantSampler struct {
	Value float64
}

// Get1D returns the constant value
func (c ConstantSampler) Get1D() float64 {
	return c.Value
}

// RandomFloat returns a value in [min, max)
func RandomFloat(sampler Sampler, min, max float64) float64 {
	return min + (max-min)*sampler.Get1D()
}

// RandomVec3 returns a vector with each component in [0, 1)
func RandomVec3(sampler Sampler) Vec3 {
	return NewVec3(sampler.Get1D(), sampler.Get1D(), sampler.Get1D())
}

// RandomVec3InRange returns a vector with each component in [min, max)
func RandomVec3InRange(sampler Sampler, min, max float64) Vec3 {
	return NewVec3(
		RandomFloat(sampler, min, max),
		RandomFloat(sampler, min, max),
		RandomFloat(sampler, min, max),
	)
}

// RandomUnitVector returns a direction uniformly distributed on the unit sphere.
// Candidates are drawn from the [-1,1]³ cube and kept when they fall inside the unit
// ball (excluding a tiny neighbourhood of the origin), then normalized.
func RandomUnitVector(sampler Sampler) Vec3 {
	for range maxRejectionAttempts {
		p := RandomVec3InRange(sampler, -1, 1)
		lensq := p.LengthSquared()
		if 1e-160 < lensq && lensq <= 1 {
			return p.Divide(math.Sqrt(lensq))
		}
	}

	// Inverse-CDF sample: z uniform in [-1,1], azimuth uniform in [0,2π)
	z := 1 - 2*sampler.Get1D()
	phi := 2 * math.Pi * sampler.Get1D()
	r := math.Sqrt(math.Max(0, 1-z*z))
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// RandomOnHemisphere returns a unit direction in the hemisphere around normal
func RandomOnHemisphere(normal Vec3, sampler Sampler) Vec3 {
	onUnitSphere := RandomUnitVector(sampler)
	if onUnitSphere.Dot(normal) > 0 {
		return onUnitSphere
	}
	return onUnitSphere.Negate()
}

// RandomInUnitDisk generates a random point in a unit disk (for depth of field)
func RandomInUnitDisk(sampler Sampler) Vec3 {
	for range maxRejectionAttempts {
		// Generate random point in [-1,1) x [-1,1) square
		p := NewVec3(RandomFloat(sampler, -1, 1), RandomFloat(sampler, -1, 1), 0)
		// Accept if inside unit disk
		if p.LengthSquared() < 1 {
			return p
		}
	}

	r := math.Sqrt(sampler.Get1D())
	theta := 2 * math.Pi * sampler.Get1D()
	return NewVec3(r*math.Cos(theta), r*math.Sin(theta), 0)
}
