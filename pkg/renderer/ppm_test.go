package renderer

import (
	"bytes"
	"image"
	"image/color"
	"testing"
)

func TestPPMWriter(t *testing.T) {
	var buf bytes.Buffer
	ppm := NewPPMWriter(&buf)

	if err := ppm.WriteHeader(2, 1); err != nil {
		t.Fatal(err)
	}
	if err := ppm.WritePixel(255, 0, 10); err != nil {
		t.Fatal(err)
	}
	if err := ppm.WritePixel(1, 2, 3); err != nil {
		t.Fatal(err)
	}
	if err := ppm.Flush(); err != nil {
		t.Fatal(err)
	}

	expected := "P3\n2 1\n255\n255 0 10\n1 2 3\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}

func TestEncodePPM(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 255, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 255, 255})
	img.SetRGBA(1, 1, color.RGBA{12, 34, 56, 255})

	var buf bytes.Buffer
	if err := EncodePPM(&buf, img); err != nil {
		t.Fatalf("EncodePPM failed: %v", err)
	}

	expected := "P3\n2 2\n255\n255 0 0\n0 255 0\n0 0 255\n12 34 56\n"
	if buf.String() != expected {
		t.Errorf("Expected %q, got %q", expected, buf.String())
	}
}
