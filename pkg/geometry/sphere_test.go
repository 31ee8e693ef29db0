package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/material"
)

var defaultRange = core.NewInterval(0.001, math.Inf(1))

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0))

	hit, isHit := sphere.Hit(ray, defaultRange)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
		{
			name:           "unnormalized direction",
			rayOrigin:      core.NewVec3(0, 5, 0),
			rayDirection:   core.NewVec3(0, -2, 0),
			expectedT:      2.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection)
			hit, isHit := sphere.Hit(ray, defaultRange)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}

			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}

			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_ThroughCenterDistance(t *testing.T) {
	center := core.NewVec3(1, -2, 3)
	sphere := NewSphere(center, 1.5, nil)
	origin := core.NewVec3(1, -2, 10)

	hit, isHit := sphere.Hit(core.NewRay(origin, core.NewVec3(0, 0, -1)), defaultRange)
	if !isHit {
		t.Fatal("Expected hit, but got miss")
	}

	// Distance from origin to center minus the radius
	expectedT := 7.0 - 1.5
	if math.Abs(hit.T-expectedT) > 1e-9 {
		t.Errorf("Expected t=%f, got t=%f", expectedT, hit.T)
	}
}

func TestSphere_Hit_NormalProperties(t *testing.T) {
	center := core.NewVec3(0.3, -0.2, -2)
	radius := 0.75
	sphere := NewSphere(center, radius, nil)
	sampler := core.NewSeededSampler(42)

	hits := 0
	for i := 0; i < 500; i++ {
		origin := core.RandomVec3InRange(sampler, -3, 3)
		target := center.Add(core.RandomVec3InRange(sampler, -radius, radius))
		ray := core.NewRay(origin, target.Subtract(origin))

		hit, isHit := sphere.Hit(ray, defaultRange)
		if !isHit {
			continue
		}
		hits++

		if math.Abs(hit.Normal.Length()-1) > 1e-9 {
			t.Fatalf("Normal should have unit length, got %f", hit.Normal.Length())
		}

		outward := hit.Point.Subtract(center)
		if math.Abs(math.Abs(hit.Normal.Dot(outward))-radius) > 1e-9 {
			t.Fatalf("Expected |normal·(p-c)| = %f, got %f", radius, math.Abs(hit.Normal.Dot(outward)))
		}

		// front_face ⇔ ray direction opposes the outward normal
		outwardUnit := outward.Divide(radius)
		if hit.FrontFace != (ray.Direction.Dot(outwardUnit) < 0) {
			t.Fatalf("FrontFace %t inconsistent with direction %v and outward normal %v",
				hit.FrontFace, ray.Direction, outwardUnit)
		}
		if hit.Normal.Dot(ray.Direction) > 0 {
			t.Fatalf("Stored normal should face against the ray")
		}
	}

	if hits == 0 {
		t.Fatal("Expected at least some rays to hit the sphere")
	}
}

func TestSphere_Hit_GlancingHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(1, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, defaultRange)
	if !isHit {
		t.Fatal("Expected glancing hit, but got miss")
	}

	expectedPoint := core.NewVec3(1, 0, 0)
	if hit.Point.Subtract(expectedPoint).Length() > 1e-9 {
		t.Errorf("Expected hit point %v, got %v", expectedPoint, hit.Point)
	}
}

func TestSphere_Hit_Bounds(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, 2), core.NewVec3(0, 0, -1))

	hit, isHit := sphere.Hit(ray, core.NewInterval(0.001, 0.5))
	if isHit {
		t.Errorf("Expected miss due to upper bound, but got hit at t=%f", hit.T)
	}

	hit, isHit = sphere.Hit(ray, core.NewInterval(3.5, 1000.0))
	if isHit {
		t.Errorf("Expected miss due to lower bound, but got hit at t=%f", hit.T)
	}

	// The near root is excluded, the far root is accepted
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.5, 1000.0))
	if !isHit || math.Abs(hit.T-3.0) > 1e-9 {
		t.Errorf("Expected far root t=3, got hit=%t", isHit)
	}

	// Surrounds is exclusive: a root exactly on the bound is rejected
	hit, isHit = sphere.Hit(ray, core.NewInterval(1.0, 3.0))
	if isHit {
		t.Errorf("Expected roots on the interval boundary to be rejected, got t=%f", hit.T)
	}
}

func TestSphere_CarriesMaterial(t *testing.T) {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0.5, mat)

	hit, isHit := sphere.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)), defaultRange)
	if !isHit {
		t.Fatal("Expected hit")
	}
	if hit.Material != mat {
		t.Errorf("Hit record should reference the sphere's material")
	}
}

func TestNewSphere_ClampsNegativeRadius(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), -2, nil)
	if sphere.Radius != 0 {
		t.Errorf("Expected radius clamped to 0, got %f", sphere.Radius)
	}
}

func TestSphere_ZeroRadiusIsNeverHit(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, -1), 0, nil)

	// Passes exactly through the center, where the discriminant is zero
	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, isHit := sphere.Hit(ray, defaultRange); isHit {
		t.Error("Zero-radius sphere should never be hit")
	}
}

func TestSphere_ZeroDirectionMisses(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1, nil)

	// Origin inside the sphere, but a zero direction never travels anywhere
	ray := core.NewRay(core.NewVec3(0, 0, 0.5), core.NewVec3(0, 0, 0))
	if _, isHit := sphere.Hit(ray, defaultRange); isHit {
		t.Error("Ray with zero direction should not report a hit")
	}
}
