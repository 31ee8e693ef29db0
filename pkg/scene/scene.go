package scene

import (
	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name         string                 // Registry name the scene was built from
	World        *geometry.HittableList // Objects in the scene
	CameraConfig renderer.CameraConfig  // Camera placement and sampling settings
}

// newScene creates an empty scene whose camera is defaultCameraConfig with any overrides applied
func newScene(name string, defaultCameraConfig renderer.CameraConfig, cameraOverrides []renderer.CameraConfig) *Scene {
	cameraConfig := defaultCameraConfig
	if len(cameraOverrides) > 0 {
		cameraConfig = renderer.MergeCameraConfig(defaultCameraConfig, cameraOverrides[0])
	}

	return &Scene{
		Name:         name,
		World:        geometry.NewHittableList(),
		CameraConfig: cameraConfig,
	}
}

// ObjectCount returns the number of top-level objects in the scene
func (s *Scene) ObjectCount() int {
	return s.World.Len()
}

// NewRaytracer builds the camera and a raytracer for this scene.
// The raytracer draws from a sampler seeded with seed and reports progress to logger.
func (s *Scene) NewRaytracer(seed int64, logger core.Logger) (*renderer.Raytracer, error) {
	camera, err := renderer.NewCamera(s.CameraConfig)
	if err != nil {
		return nil, err
	}

	rt := renderer.NewRaytracer(s.World, camera)
	rt.SetSampler(core.NewSeededSampler(seed))
	rt.SetLogger(logger)
	return rt, nil
}
