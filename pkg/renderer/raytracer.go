package renderer

import (
	"context"
	"fmt"
	"image"
	"io"
	"math"
	"time"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/geometry"
)

// shadowAcneEpsilon is the smallest accepted hit distance, so a scattered ray
// does not re-hit the surface it just left due to floating point error
const shadowAcneEpsilon = 0.001

var (
	skyBottomColor = core.NewVec3(1.0, 1.0, 1.0) // white
	skyTopColor    = core.NewVec3(0.5, 0.7, 1.0) // light blue
)

// Raytracer handles the rendering process
type Raytracer struct {
	world   geometry.Shape
	camera  *Camera
	sampler core.Sampler
	logger  core.Logger
}

// NewRaytracer creates a new raytracer for world as seen by camera
func NewRaytracer(world geometry.Shape, camera *Camera) *Raytracer {
	return &Raytracer{
		world:   world,
		camera:  camera,
		sampler: core.NewSeededSampler(42), // Deterministic for testing
		logger:  core.NopLogger{},
	}
}

// SetSampler replaces the random source used for every draw during rendering
func (rt *Raytracer) SetSampler(sampler core.Sampler) {
	rt.sampler = sampler
}

// SetLogger sets where progress messages go; nil disables them
func (rt *Raytracer) SetLogger(logger core.Logger) {
	if logger == nil {
		logger = core.NopLogger{}
	}
	rt.logger = logger
}

// Camera returns the camera used for rendering
func (rt *Raytracer) Camera() *Camera {
	return rt.camera
}

// backgroundGradient returns a gradient color based on ray direction
func backgroundGradient(r core.Ray) core.Vec3 {
	unitDirection := r.Direction.Normalize()

	// Map the y-component from [-1,1] to [0,1]
	a := 0.5 * (unitDirection.Y + 1.0)

	return skyBottomColor.Multiply(1.0 - a).Add(skyTopColor.Multiply(a))
}

// RayColor estimates the radiance arriving along r, following at most depth bounces.
// Each bounce multiplies the path throughput by the material attenuation, which is the
// same as recursing with depth-1 and scaling the result.
func (rt *Raytracer) RayColor(r core.Ray, depth int) core.Vec3 {
	throughput := core.NewVec3(1, 1, 1)

	for ; depth > 0; depth-- {
		hit, isHit := rt.world.Hit(r, core.NewInterval(shadowAcneEpsilon, math.Inf(1)))
		if !isHit {
			return throughput.MultiplyVec(backgroundGradient(r))
		}

		if hit.Material == nil {
			return core.Vec3{X: 0, Y: 0, Z: 0}
		}

		scatter, didScatter := hit.Material.Scatter(r, *hit, rt.sampler)
		if !didScatter {
			return core.Vec3{X: 0, Y: 0, Z: 0} // Material absorbed the ray
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation)
		r = scatter.Scattered
	}

	// Bounce limit exceeded, no more light is gathered
	return core.Vec3{X: 0, Y: 0, Z: 0}
}

// samplePixel averages SamplesPerPixel radiance estimates for pixel (i, j)
func (rt *Raytracer) samplePixel(i, j int) core.Vec3 {
	var ps PixelStats
	for sample := 0; sample < rt.camera.config.SamplesPerPixel; sample++ {
		ray := rt.camera.GetRay(i, j, rt.sampler)
		ps.AddSample(rt.RayColor(ray, rt.camera.config.MaxDepth))
	}
	return ps.GetColor()
}

// renderPixels visits every pixel in scanline order, top to bottom and left to right.
// Cancellation of ctx is checked before each scanline.
func (rt *Raytracer) renderPixels(ctx context.Context, emit func(i, j int, pixelColor core.Vec3) error) (RenderStats, error) {
	width, height := rt.camera.ImageWidth(), rt.camera.ImageHeight()
	startTime := time.Now()

	for j := 0; j < height; j++ {
		if err := ctx.Err(); err != nil {
			return RenderStats{}, err
		}
		rt.logger.Printf("\rScanlines remaining: %d ", height-j)
		for i := 0; i < width; i++ {
			if err := emit(i, j, rt.samplePixel(i, j)); err != nil {
				return RenderStats{}, err
			}
		}
	}
	rt.logger.Printf("\rDone.                 \n")

	return RenderStats{
		Width:           width,
		Height:          height,
		TotalPixels:     width * height,
		TotalSamples:    width * height * rt.camera.config.SamplesPerPixel,
		SamplesPerPixel: rt.camera.config.SamplesPerPixel,
		MaxDepth:        rt.camera.config.MaxDepth,
		Duration:        time.Since(startTime),
	}, nil
}

// Render writes the image to w as a plain-text PPM
func (rt *Raytracer) Render(w io.Writer) (RenderStats, error) {
	return rt.RenderContext(context.Background(), w)
}

// RenderContext is Render, stopping with ctx.Err() once ctx is cancelled
func (rt *Raytracer) RenderContext(ctx context.Context, w io.Writer) (RenderStats, error) {
	ppm := NewPPMWriter(w)
	if err := ppm.WriteHeader(rt.camera.ImageWidth(), rt.camera.ImageHeight()); err != nil {
		return RenderStats{}, fmt.Errorf("failed to write PPM header: %w", err)
	}

	stats, err := rt.renderPixels(ctx, func(i, j int, pixelColor core.Vec3) error {
		r, g, b := ColorToBytes(pixelColor)
		if err := ppm.WritePixel(r, g, b); err != nil {
			return fmt.Errorf("failed to write pixel (%d, %d): %w", i, j, err)
		}
		return nil
	})
	if err != nil {
		return RenderStats{}, err
	}

	if err := ppm.Flush(); err != nil {
		return RenderStats{}, fmt.Errorf("failed to flush PPM output: %w", err)
	}
	return stats, nil
}

// RenderImage renders into an in-memory RGBA image
func (rt *Raytracer) RenderImage() (*image.RGBA, RenderStats) {
	// A background context is never cancelled, so no error is possible
	img, stats, _ := rt.RenderImageContext(context.Background())
	return img, stats
}

// RenderImageContext renders into an in-memory RGBA image, stopping with ctx.Err() once ctx is cancelled
func (rt *Raytracer) RenderImageContext(ctx context.Context) (*image.RGBA, RenderStats, error) {
	img := image.NewRGBA(image.Rect(0, 0, rt.camera.ImageWidth(), rt.camera.ImageHeight()))

	stats, err := rt.renderPixels(ctx, func(i, j int, pixelColor core.Vec3) error {
		img.SetRGBA(i, j, vec3ToColor(pixelColor))
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	return img, stats, nil
}
