package core

import (
	"math"
	"testing"
)

func TestRandomUnitVector_IsUnitLength(t *testing.T) {
	sampler := NewSeededSampler(42)

	for i := 0; i < 1000; i++ {
		v := RandomUnitVector(sampler)
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Fatalf("Sample %d: expected unit length, got %f (%v)", i, v.Length(), v)
		}
	}
}

func TestRandomUnitVector_IsRoughlyUniform(t *testing.T) {
	sampler := NewSeededSampler(7)
	const numSamples = 20000

	var sum Vec3
	upper := 0
	for i := 0; i < numSamples; i++ {
		v := RandomUnitVector(sampler)
		sum = sum.Add(v)
		if v.Y > 0 {
			upper++
		}
	}

	mean := sum.Multiply(1.0 / numSamples)
	if mean.Length() > 0.03 {
		t.Errorf("Mean direction should be near zero for a uniform distribution, got %v", mean)
	}

	fraction := float64(upper) / numSamples
	if math.Abs(fraction-0.5) > 0.02 {
		t.Errorf("Expected about half the samples in the upper hemisphere, got %f", fraction)
	}
}

func TestRandomUnitVector_ConstantSamplerTerminates(t *testing.T) {
	for _, value := range []float64{0, 0.5, 0.999} {
		v := RandomUnitVector(ConstantSampler{Value: value})
		if math.Abs(v.Length()-1) > 1e-9 {
			t.Errorf("Constant %f: expected unit length, got %v", value, v)
		}
	}

	// A constant that lands inside the unit ball is accepted directly
	v := RandomUnitVector(ConstantSampler{Value: 0.25})
	expected := NewVec3(-1, -1, -1).Normalize()
	if !vecNear(v, expected, 1e-12) {
		t.Errorf("Expected %v, got %v", expected, v)
	}
}

func TestRandomOnHemisphere(t *testing.T) {
	sampler := NewSeededSampler(3)
	normal := NewVec3(0, 0, 1)

	for i := 0; i < 500; i++ {
		v := RandomOnHemisphere(normal, sampler)
		if v.Dot(normal) < 0 {
			t.Fatalf("Sample %d points away from the normal: %v", i, v)
		}
	}
}

func TestRandomInUnitDisk(t *testing.T) {
	sampler := NewSeededSampler(11)

	for i := 0; i < 1000; i++ {
		p := RandomInUnitDisk(sampler)
		if p.Z != 0 {
			t.Fatalf("Disk sample must lie in the z=0 plane, got %v", p)
		}
		if p.LengthSquared() >= 1 {
			t.Fatalf("Disk sample outside unit disk: %v", p)
		}
	}

	if p := RandomInUnitDisk(ConstantSampler{Value: 0}); p.LengthSquared() >= 1 {
		t.Errorf("Fallback sample outside unit disk: %v", p)
	}
}

func TestRandomVec3InRange(t *testing.T) {
	sampler := NewSeededSampler(5)

	for i := 0; i < 200; i++ {
		v := RandomVec3InRange(sampler, 0.5, 1)
		for _, c := range []float64{v.X, v.Y, v.Z} {
			if c < 0.5 || c >= 1 {
				t.Fatalf("Component %f outside [0.5, 1)", c)
			}
		}
	}
}

func TestSeededSampler_IsReproducible(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)

	for i := 0; i < 10; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatalf("Draw %d differs between identically seeded samplers", i)
		}
	}
}
