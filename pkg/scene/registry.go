package scene

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ErrUnknownScene is returned when a scene name is not registered
var ErrUnknownScene = errors.New("unknown scene")

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier used to build the scene
	DisplayName string `json:"displayName"` // UI display name
	Description string `json:"description"` // Short description
}

// buildFunc creates a scene. Scenes with random layout derive it from seed.
type buildFunc func(seed int64, cameraOverrides ...renderer.CameraConfig) *Scene

type registeredScene struct {
	info  SceneInfo
	build buildFunc
}

var builtinScenes = []registeredScene{
	{SceneInfo{ID: "final", Description: "Book cover: hundreds of random small spheres around three large ones"}, NewFinalScene},
	{SceneInfo{ID: "materials", Description: "Lambertian, hollow glass and fuzzy metal spheres side by side"}, NewMaterialsScene},
	{SceneInfo{ID: "single", Description: "One diffuse sphere in front of the camera"}, NewSingleSphereScene},
	{SceneInfo{ID: "empty", Description: "Sky gradient only"}, NewEmptyScene},
}

// DefaultSceneName is the scene rendered when none is requested
const DefaultSceneName = "final"

// ListScenes returns metadata for every built-in scene in registration order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		info := s.info
		info.DisplayName = titleCase(info.ID)
		scenes = append(scenes, info)
	}
	return scenes
}

// SceneNames returns the identifiers of every built-in scene
func SceneNames() []string {
	names := make([]string, 0, len(builtinScenes))
	for _, s := range builtinScenes {
		names = append(names, s.info.ID)
	}
	return names
}

// New builds the named scene, applying the first camera override if given
func New(name string, seed int64, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, s := range builtinScenes {
		if s.info.ID == name {
			return s.build(seed, cameraOverrides...), nil
		}
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownScene, name, strings.Join(SceneNames(), ", "))
}

// titleCase converts a scene identifier like "hollow-glass" to "Hollow Glass"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
