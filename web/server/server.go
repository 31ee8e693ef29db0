package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/png"
	"log"
	"math"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// Server handles web requests for the raytracer
type Server struct {
	port int
	mux  *http.ServeMux
}

// NewServer creates a new web server with all API routes registered
func NewServer(port int) *Server {
	s := &Server{port: port, mux: http.NewServeMux()}

	s.mux.HandleFunc("/api/health", s.handleHealth)
	s.mux.HandleFunc("/api/scenes", s.handleScenes)
	s.mux.HandleFunc("/api/render", s.handleRender)
	s.mux.HandleFunc("/api/render-stream", s.handleRenderStream)
	s.mux.HandleFunc("/api/inspect", s.handleInspect)

	return s
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.mux)
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene   string `json:"scene"`   // Scene name (e.g., "materials")
	Width   int    `json:"width"`   // Image width
	Samples int    `json:"samples"` // Samples per pixel
	Depth   int    `json:"depth"`   // Maximum ray bounces
	Seed    int64  `json:"seed"`    // Seed for scene layout and sampling
	Format  string `json:"format"`  // "png" or "ppm"
}

// Stats represents render statistics
type Stats struct {
	Width           int   `json:"width"`
	Height          int   `json:"height"`
	TotalPixels     int   `json:"totalPixels"`
	TotalSamples    int   `json:"totalSamples"`
	SamplesPerPixel int   `json:"samplesPerPixel"`
	MaxDepth        int   `json:"maxDepth"`
	ObjectCount     int   `json:"objectCount"`
	ElapsedMs       int64 `json:"elapsedMs"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Default string            `json:"default"`
	Scenes  []scene.SceneInfo `json:"scenes"`
}

// newStats converts renderer statistics for JSON responses
func newStats(stats renderer.RenderStats, sceneObj *scene.Scene) Stats {
	return Stats{
		Width:           stats.Width,
		Height:          stats.Height,
		TotalPixels:     stats.TotalPixels,
		TotalSamples:    stats.TotalSamples,
		SamplesPerPixel: stats.SamplesPerPixel,
		MaxDepth:        stats.MaxDepth,
		ObjectCount:     sceneObj.ObjectCount(),
		ElapsedMs:       stats.Duration.Milliseconds(),
	}
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScenes lists the built-in scenes
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	writeJSON(w, http.StatusOK, ScenesResponse{
		Default: scene.DefaultSceneName,
		Scenes:  scene.ListScenes(),
	})
}

// handleRender renders a scene synchronously and returns the encoded image
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	sceneObj, raytracer, err := s.setupRaytracer(req, core.NopLogger{})
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	img, stats, err := raytracer.RenderImageContext(r.Context())
	if err != nil {
		// The client has gone away, so there is nobody to answer
		log.Printf("Render of %q stopped: %v", sceneObj.Name, err)
		return
	}

	var buf bytes.Buffer
	switch req.Format {
	case "ppm":
		w.Header().Set("Content-Type", "image/x-portable-pixmap")
		err = renderer.EncodePPM(&buf, img)
	default:
		w.Header().Set("Content-Type", "image/png")
		err = png.Encode(&buf, img)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to encode image: %v", err))
		return
	}

	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Duration.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// setupRaytracer builds the requested scene and its raytracer
func (s *Server) setupRaytracer(req *RenderRequest, logger core.Logger) (*scene.Scene, *renderer.Raytracer, error) {
	sceneObj, err := scene.New(req.Scene, req.Seed, renderer.CameraConfig{
		Width:           req.Width,
		SamplesPerPixel: req.Samples,
		MaxDepth:        req.Depth,
	})
	if err != nil {
		return nil, nil, err
	}

	raytracer, err := sceneObj.NewRaytracer(req.Seed, logger)
	if err != nil {
		return nil, nil, err
	}
	return sceneObj, raytracer, nil
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = scene.DefaultSceneName
	}

	req.Format = query.Get("format")
	if req.Format == "" {
		req.Format = "png"
	}
	if req.Format != "png" && req.Format != "ppm" {
		return nil, fmt.Errorf("format must be png or ppm, got: %s", req.Format)
	}

	// Parse and validate all parameters using helper functions
	var err error
	if req.Width, err = parseIntParam(query, "width", 200, 1, 2000); err != nil {
		return nil, err
	}
	if req.Samples, err = parseIntParam(query, "samples", 10, 1, 10000); err != nil {
		return nil, err
	}
	if req.Depth, err = parseIntParam(query, "depth", 10, 1, 1000); err != nil {
		return nil, err
	}
	if req.Seed, err = parseInt64Param(query, "seed", 42, 0, math.MaxInt64); err != nil {
		return nil, err
	}

	// Performance warning
	if req.Width > 800 && req.Samples > 100 {
		log.Printf("Render warning: Large image with high samples may render slowly")
	}

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	parsed, err := parseInt64Param(values, key, int64(defaultValue), int64(min), int64(max))
	return int(parsed), err
}

// parseInt64Param parses a 64-bit integer parameter from URL query with validation
func parseInt64Param(values url.Values, key string, defaultValue, min, max int64) (int64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// statusForError maps setup errors to HTTP status codes
func statusForError(err error) int {
	if errors.Is(err, scene.ErrUnknownScene) || errors.Is(err, renderer.ErrInvalidCameraConfig) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
