package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"io"
	"log"
	"os"
	"strings"

	"github.com/df07/go-weekend-raytracer/pkg/core"
	"github.com/df07/go-weekend-raytracer/pkg/renderer"
	"github.com/df07/go-weekend-raytracer/pkg/scene"
)

// options holds the parsed command line
type options struct {
	sceneName string
	width     int
	samples   int
	depth     int
	seed      int64
	format    string
	out       string
	quiet     bool
	help      bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.New(os.Stderr, "", 0).Printf("Error: %v", err)
		os.Exit(1)
	}
}

// parseOptions reads flags from args. Usage goes to stderr.
func parseOptions(args []string, stderr io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.sceneName, "scene", scene.DefaultSceneName, "Scene to render: "+strings.Join(scene.SceneNames(), ", "))
	fs.IntVar(&opts.width, "width", 0, "Image width in pixels (0 uses the scene default)")
	fs.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 uses the scene default)")
	fs.IntVar(&opts.depth, "depth", 0, "Maximum ray bounces (0 uses the scene default)")
	fs.Int64Var(&opts.seed, "seed", 42, "Random seed for scene layout and sampling")
	fs.StringVar(&opts.format, "format", "ppm", "Output format: 'ppm' or 'png'")
	fs.StringVar(&opts.out, "out", "", "Output file (default stdout)")
	fs.BoolVar(&opts.quiet, "quiet", false, "Suppress progress output")
	fs.BoolVar(&opts.help, "help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	if opts.help {
		fmt.Fprintln(stderr, "Weekend Raytracer")
		fmt.Fprintln(stderr, "Usage: raytracer [options] > image.ppm")
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(stderr)
		fmt.Fprintln(stderr, "Available scenes:")
		for _, info := range scene.ListScenes() {
			fmt.Fprintf(stderr, "  %-10s %s\n", info.ID, info.Description)
		}
		return opts, flag.ErrHelp
	}

	switch {
	case opts.format != "ppm" && opts.format != "png":
		return opts, fmt.Errorf("unsupported format %q (expected ppm or png)", opts.format)
	case opts.width < 0:
		return opts, fmt.Errorf("width must not be negative, got %d", opts.width)
	case opts.samples < 0:
		return opts, fmt.Errorf("samples must not be negative, got %d", opts.samples)
	case opts.depth < 0:
		return opts, fmt.Errorf("depth must not be negative, got %d", opts.depth)
	}
	return opts, nil
}

// createScene builds the requested scene with any command line overrides applied
func createScene(opts options) (*scene.Scene, error) {
	return scene.New(opts.sceneName, opts.seed, renderer.CameraConfig{
		Width:           opts.width,
		SamplesPerPixel: opts.samples,
		MaxDepth:        opts.depth,
	})
}

func run(args []string, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(opts)
	if err != nil {
		return err
	}

	var logger core.Logger = core.NewWriterLogger(stderr)
	if opts.quiet {
		logger = core.NopLogger{}
	}

	raytracer, err := selectedScene.NewRaytracer(opts.seed, logger)
	if err != nil {
		return fmt.Errorf("failed to set up scene %q: %w", selectedScene.Name, err)
	}

	camera := raytracer.Camera()
	logger.Printf("Rendering scene %q (%d objects) at %dx%d, %d samples, depth %d\n",
		selectedScene.Name, selectedScene.ObjectCount(), camera.ImageWidth(), camera.ImageHeight(),
		selectedScene.CameraConfig.SamplesPerPixel, selectedScene.CameraConfig.MaxDepth)

	var stats renderer.RenderStats
	if opts.out == "" {
		stats, err = renderTo(raytracer, opts.format, stdout)
	} else {
		file, createErr := os.Create(opts.out)
		if createErr != nil {
			return fmt.Errorf("failed to create output file: %w", createErr)
		}
		stats, err = renderTo(raytracer, opts.format, file)
		err = closeOutput(file, err)
	}
	if err != nil {
		return err
	}

	logger.Printf("Render completed in %v (%d samples)\n", stats.Duration, stats.TotalSamples)
	if opts.out != "" {
		logger.Printf("Render saved as %s\n", opts.out)
	}
	return nil
}

// renderTo renders the scene and writes it to w in the given format
func renderTo(raytracer *renderer.Raytracer, format string, w io.Writer) (renderer.RenderStats, error) {
	if format != "png" {
		return raytracer.Render(w)
	}
	img, stats := raytracer.RenderImage()
	if err := png.Encode(w, img); err != nil {
		return stats, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return stats, nil
}

// closeOutput closes the output file. A render error takes precedence over a close error.
func closeOutput(c io.Closer, renderErr error) error {
	closeErr := c.Close()
	if renderErr != nil {
		return renderErr
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close output file: %w", closeErr)
	}
	return nil
}
