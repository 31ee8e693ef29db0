package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/material"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// NewMaterialsScene creates three spheres on a ground sphere showing each material:
// a hollow glass bubble on the left, a diffuse sphere in the center and fuzzy metal on the right
func NewMaterialsScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	defaultCameraConfig := renderer.CameraConfig{
		AspectRatio:     16.0 / 9.0,
		Width:           400,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		VFov:            20,
		LookFrom:        core.NewVec3(-2, 2, 1),
		LookAt:          core.NewVec3(0, 0, -1),
		Up:              core.NewVec3(0, 1, 0),
		DefocusAngle:    10.0,
		FocusDistance:   3.4,
	}

	s := newScene("materials", defaultCameraConfig, cameraOverrides)

	materialGround := material.NewLambertian(core.NewVec3(0.8, 0.8, 0.0))
	materialCenter := material.NewLambertian(core.NewVec3(0.1, 0.2, 0.5))
	materialGlass := material.NewDielectric(1.5)
	materialBubble := material.NewDielectric(1.0 / 1.5) // air inside glass
	materialRight := material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 1.0)

	s.World.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100, materialGround))
	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -1.2), 0.5, materialCenter))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.5, materialGlass))
	s.World.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4, materialBubble))
	s.World.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.5, materialRight))

	return s
}

// NewSingleSphereScene creates one diffuse sphere of radius 0.5 straight ahead of the default camera
func NewSingleSphereScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	s := newScene("single", renderer.DefaultCameraConfig(), cameraOverrides)
	s.World.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s
}

// NewEmptyScene creates a scene with no objects, so every ray sees the sky
func NewEmptyScene(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene {
	return newScene("empty", renderer.DefaultCameraConfig(), cameraOverrides)
}
