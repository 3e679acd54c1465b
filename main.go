package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/spf13/cobra"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// options holds the command line flags; zero values keep the scene defaults
type options struct {
	sceneID    string
	output     string
	format     string
	width      int
	samples    int
	depth      int
	workers    int
	passes     int
	seed       int64
	background string
	textureDir string
	list       bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

// newRootCommand builds the pathtracer command
func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "pathtracer",
		Short: "Render a demo scene with a Monte-Carlo path tracer",
		Long: "Render one of the built-in scenes to a PNG or plain PPM image.\n" +
			"The image is refined over several passes; each pass adds samples to every pixel.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.list {
				listScenes(cmd.OutOrStdout())
				return nil
			}
			return run(cmd.Context(), opts, cmd.OutOrStdout())
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.sceneID, "scene", "s", scene.DefaultSceneID, "Scene to render (see --list)")
	flags.StringVarP(&opts.output, "output", "o", "", "Output file (default output/<scene>/render_<timestamp>.<format>)")
	flags.StringVarP(&opts.format, "format", "f", string(renderer.FormatPNG), "Image format: png or ppm")
	flags.IntVarP(&opts.width, "width", "w", 0, "Image width in pixels; height follows the scene's aspect ratio (0 = scene default)")
	flags.IntVar(&opts.samples, "samples", 0, "Samples per pixel (0 = scene default)")
	flags.IntVar(&opts.depth, "depth", 0, "Maximum bounces per path (0 = scene default)")
	flags.IntVar(&opts.workers, "workers", 0, "Number of parallel workers (0 = CPU count)")
	flags.IntVar(&opts.passes, "passes", renderer.DefaultProgressiveConfig().MaxPasses, "Number of progressive passes")
	flags.Int64Var(&opts.seed, "seed", 42, "Random seed for scene layout and sampling")
	flags.StringVar(&opts.background, "background", "", "Background color as hex, e.g. #b3ccff (default scene background)")
	flags.StringVar(&opts.textureDir, "texture-dir", ".", "Directory containing image textures such as "+scene.EarthTextureFile)
	flags.BoolVarP(&opts.list, "list", "l", false, "List available scenes and exit")

	return cmd
}

// run builds the scene, renders it and writes the image
func run(ctx context.Context, opts *options, out io.Writer) error {
	logger := renderer.NewWriterLogger(out)

	format, err := renderer.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(opts, logger)
	if err != nil {
		return err
	}

	filename, err := outputFilename(opts, format, time.Now())
	if err != nil {
		return err
	}

	config := selectedScene.SamplingConfig
	logger.Printf("Rendering %s at %dx%d, %d samples per pixel, max depth %d\n",
		selectedScene.Name, config.Width, config.Height, config.SamplesPerPixel, config.MaxDepth)

	progressiveConfig := renderer.DefaultProgressiveConfig()
	progressiveConfig.MaxPasses = opts.passes
	progressiveConfig.NumWorkers = opts.workers
	progressiveConfig.Seed = opts.seed

	startTime := time.Now()
	raytracer := renderer.NewProgressiveRaytracer(selectedScene, progressiveConfig, logger)
	img, stats, err := raytracer.Render(ctx)
	if err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	logger.Printf("Render completed in %v\n", time.Since(startTime))
	logger.Printf("Samples per pixel: %.1f (range %d - %d)\n",
		stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed)

	if err := renderer.SaveImage(filename, img, format); err != nil {
		return err
	}
	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene builds the selected scene and applies flag overrides
func createScene(opts *options, logger core.Logger) (*scene.Scene, error) {
	sceneOptions := scene.Options{
		Seed:       opts.seed,
		TextureDir: opts.textureDir,
		Logger:     logger,
	}

	s, err := scene.Build(opts.sceneID, sceneOptions)
	if err != nil {
		return nil, err
	}

	if opts.width < 0 || opts.samples < 0 || opts.depth < 0 {
		return nil, fmt.Errorf("width, samples and depth must not be negative")
	}
	if opts.width > 0 {
		s.SetWidth(opts.width)
	}
	if opts.samples > 0 {
		s.SamplingConfig.SamplesPerPixel = opts.samples
	}
	if opts.depth > 0 {
		s.SamplingConfig.MaxDepth = opts.depth
	}
	if opts.background != "" {
		background, err := parseBackground(opts.background)
		if err != nil {
			return nil, err
		}
		s.Background = background
	}
	if s.SamplingConfig.Width <= 0 || s.SamplingConfig.Height <= 0 {
		return nil, fmt.Errorf("image size %dx%d is empty", s.SamplingConfig.Width, s.SamplingConfig.Height)
	}

	return s, nil
}

// parseBackground converts an sRGB hex color to linear radiance
func parseBackground(hex string) (core.Vec3, error) {
	if !strings.HasPrefix(hex, "#") {
		hex = "#" + hex
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return core.Vec3{}, fmt.Errorf("invalid background: %w", err)
	}
	r, g, b := c.LinearRgb()
	return core.NewVec3(r, g, b), nil
}

// outputFilename returns the requested file or a timestamped file under
// output/<scene>/, creating the directory
func outputFilename(opts *options, format renderer.Format, now time.Time) (string, error) {
	if opts.output != "" {
		return opts.output, nil
	}

	outputDir := filepath.Join("output", opts.sceneID)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	timestamp := now.Format("20060102_150405")
	return filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, format)), nil
}

// listScenes prints the scene catalog grouped by category
func listScenes(w io.Writer) {
	for _, group := range scene.Groups() {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			marker := ""
			if info.ID == scene.DefaultSceneID {
				marker = " (default)"
			}
			fmt.Fprintf(w, "  %-20s %s%s\n", info.ID, info.Description, marker)
		}
	}
}
