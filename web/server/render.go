package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/renderer"
)

// ImageUpdate carries the finished render in a stream
type ImageUpdate struct {
	ImageData string `json:"imageData"` // Base64 encoded PNG
	Stats     Stats  `json:"stats"`
}

// SSEEvent represents a unified SSE event for thread-safe writing
type SSEEvent struct {
	Type string `json:"type"` // "console", "image", "error", "complete"
	Data string `json:"data"` // JSON-encoded data
}

// renderResult is produced by the background render goroutine
type renderResult struct {
	img   *image.RGBA
	stats renderer.RenderStats
	err   error
}

// handleRenderStream renders a scene while streaming progress messages and
// the final image as Server-Sent Events
func (s *Server) handleRenderStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.parseRenderRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan := make(chan ConsoleMessage, 50)
	renderID := fmt.Sprintf("render-%d", time.Now().UnixNano())
	webLogger := NewWebLogger(renderID, consoleChan)

	sceneObj, raytracer, err := s.setupRaytracer(req, webLogger)
	if err != nil {
		writeError(w, statusForError(err), err.Error())
		return
	}

	s.setSSEHeaders(w)
	ctx := r.Context()

	// The render stops at the next scanline once the client disconnects; the buffered
	// channel lets the goroutine exit without a reader
	resultChan := make(chan renderResult, 1)
	go func() {
		img, stats, err := raytracer.RenderImageContext(ctx)
		resultChan <- renderResult{img: img, stats: stats, err: err}
	}()

	for {
		select {
		case msg := <-consoleChan:
			data, err := json.Marshal(msg)
			if err != nil {
				log.Printf("Error marshaling console message: %v", err)
				continue
			}
			if err := s.sendSSEEvent(w, SSEEvent{Type: "console", Data: string(data)}); err != nil {
				return
			}

		case result := <-resultChan:
			if result.err != nil {
				log.Printf("Render %s stopped: %v", renderID, result.err)
				return
			}
			s.drainConsole(w, consoleChan)

			imageData, err := s.imageToBase64PNG(result.img)
			if err != nil {
				s.sendSSEEvent(w, SSEEvent{Type: "error", Data: fmt.Sprintf("failed to encode image: %v", err)})
				return
			}
			data, err := json.Marshal(ImageUpdate{ImageData: imageData, Stats: newStats(result.stats, sceneObj)})
			if err != nil {
				s.sendSSEEvent(w, SSEEvent{Type: "error", Data: err.Error()})
				return
			}
			s.sendSSEEvent(w, SSEEvent{Type: "image", Data: string(data)})
			s.sendSSEEvent(w, SSEEvent{Type: "complete", Data: "Rendering completed"})
			return

		case <-ctx.Done():
			// Client disconnected
			return
		}
	}
}

// drainConsole forwards console messages still buffered when the render finishes
func (s *Server) drainConsole(w http.ResponseWriter, consoleChan <-chan ConsoleMessage) {
	for {
		select {
		case msg := <-consoleChan:
			if data, err := json.Marshal(msg); err == nil {
				s.sendSSEEvent(w, SSEEvent{Type: "console", Data: string(data)})
			}
		default:
			return
		}
	}
}

// setSSEHeaders sets the required headers for Server-Sent Events
func (s *Server) setSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// sendSSEEvent writes one event and flushes it to the client
func (s *Server) sendSSEEvent(w http.ResponseWriter, event SSEEvent) error {
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event.Type, event.Data); err != nil {
		return err
	}
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
	return nil
}

// imageToBase64PNG converts an image to base64-encoded PNG
func (s *Server) imageToBase64PNG(img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
