package renderer

import (
	"bufio"
	"fmt"
	"image"
	"io"
)

// PPMWriter streams a plain-text (P3) PPM image
type PPMWriter struct {
	w *bufio.Writer
}

// NewPPMWriter wraps w in a buffered PPM stream
func NewPPMWriter(w io.Writer) *PPMWriter {
	return &PPMWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes the format tag, dimensions and max channel value
func (p *PPMWriter) WriteHeader(width, height int) error {
	_, err := fmt.Fprintf(p.w, "P3\n%d %d\n255\n", width, height)
	return err
}

// WritePixel writes one "r g b" triplet
func (p *PPMWriter) WritePixel(r, g, b uint8) error {
	_, err := fmt.Fprintf(p.w, "%d %d %d\n", r, g, b)
	return err
}

// Flush writes any buffered data to the underlying writer
func (p *PPMWriter) Flush() error {
	return p.w.Flush()
}

// EncodePPM writes img as a P3 PPM, top-to-bottom and left-to-right
func EncodePPM(w io.Writer, img image.Image) error {
	bounds := img.Bounds()
	ppm := NewPPMWriter(w)
	if err := ppm.WriteHeader(bounds.Dx(), bounds.Dy()); err != nil {
		return fmt.Errorf("failed to write PPM header: %w", err)
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			if err := ppm.WritePixel(uint8(r>>8), uint8(g>>8), uint8(b>>8)); err != nil {
				return fmt.Errorf("failed to write pixel (%d, %d): %w", x, y, err)
			}
		}
	}

	return ppm.Flush()
}
