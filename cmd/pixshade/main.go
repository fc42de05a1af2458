// Command pixshade applies a pixelshader pipeline to an image file.
//
// The pipeline comes from a YAML recipe (-recipe) or from per-operation
// flags. Flag operations run in a fixed order: exposure, temperature,
// whitebalance, brightness, contrast, saturation, preset, vignette.
//
//	pixshade -in photo.jpg -out warm.png -exposure 0.3 -whitebalance -0.2
//	pixshade -in photo.jpg -out look.png -recipe looks/film.yaml -parallel
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/pixelshader"
	"github.com/gogpu/pixelshader/bitmap"
	"github.com/gogpu/pixelshader/recipe"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "pixshade:", err)
		}
		os.Exit(2)
	}
}

type config struct {
	in, out    string
	recipePath string
	preset     string
	vignette   string
	mode       string
	parallel   bool
	workers    int
	verbose    bool

	saturation, exposure, contrast, brightness float64
	temperature, whiteBalance                  float64

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet("pixshade", flag.ContinueOnError)
	fs.SetOutput(stderr)

	c := &config{set: make(map[string]bool)}
	fs.StringVar(&c.in, "in", "", "input image")
	fs.StringVar(&c.out, "out", "", "output image (png, jpg, gif, bmp, tif)")
	fs.StringVar(&c.recipePath, "recipe", "", "YAML recipe; replaces the operation flags")
	fs.Float64Var(&c.saturation, "saturation", 1, "saturation ratio")
	fs.Float64Var(&c.exposure, "exposure", 0, "exposure offset")
	fs.Float64Var(&c.contrast, "contrast", 0, "contrast offset")
	fs.Float64Var(&c.brightness, "brightness", 0, "brightness offset")
	fs.Float64Var(&c.temperature, "temperature", pixelshader.TemperatureNeutral, "white point in Kelvin")
	fs.Float64Var(&c.whiteBalance, "whitebalance", 0, "white balance in [-1, 1]")
	fs.StringVar(&c.preset, "preset", "", "768-byte preset table")
	fs.StringVar(&c.vignette, "vignette", "", "overlay image")
	fs.StringVar(&c.mode, "mode", recipe.DefaultMode, "overlay compose mode")
	fs.BoolVar(&c.parallel, "parallel", false, "apply rows concurrently")
	fs.IntVar(&c.workers, "workers", 0, "row workers for -parallel (0 = GOMAXPROCS)")
	fs.BoolVar(&c.verbose, "v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { c.set[f.Name] = true })

	if c.in == "" || c.out == "" {
		fs.Usage()
		return nil, errors.New("-in and -out are required")
	}
	return c, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	c, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if c.verbose {
		level = slog.LevelDebug
	}
	pixelshader.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))
	defer pixelshader.SetLogger(nil)

	img, err := bitmap.Load(c.in)
	if err != nil {
		return err
	}

	s, err := c.shader()
	if err != nil {
		return err
	}
	defer s.Release()

	start := time.Now()
	if c.parallel {
		err = s.ApplyParallel(ctx, img)
	} else {
		err = s.ApplyToImage(img)
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if err := img.Save(c.out); err != nil {
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(stdout, "%s: %dx%d %v, %d pixels, %d kernels, %v\n",
		c.out, img.Width(), img.Height(), img.Format(),
		img.Width()*img.Height(), s.Len(), elapsed.Round(time.Microsecond))
	return nil
}

func (c *config) options() []pixelshader.Option {
	if c.set["workers"] {
		return []pixelshader.Option{pixelshader.WithWorkers(c.workers)}
	}
	return nil
}

func (c *config) shader() (*pixelshader.Shader, error) {
	if c.recipePath != "" {
		r, err := recipe.Load(c.recipePath)
		if err != nil {
			return nil, err
		}
		return r.Build(c.options()...)
	}

	r := &recipe.Recipe{Steps: c.steps()}
	return r.Build(c.options()...)
}

// steps converts the operation flags that were set into recipe steps.
func (c *config) steps() []recipe.Step {
	var steps []recipe.Step
	if c.set["exposure"] {
		steps = append(steps, recipe.Exposure(float32(c.exposure)))
	}
	if c.set["temperature"] {
		steps = append(steps, recipe.Temperature(float32(c.temperature)))
	}
	if c.set["whitebalance"] {
		steps = append(steps, recipe.WhiteBalance(float32(c.whiteBalance)))
	}
	if c.set["brightness"] {
		steps = append(steps, recipe.Brightness(float32(c.brightness)))
	}
	if c.set["contrast"] {
		steps = append(steps, recipe.Contrast(float32(c.contrast)))
	}
	if c.set["saturation"] {
		steps = append(steps, recipe.Saturation(float32(c.saturation)))
	}
	if c.preset != "" {
		steps = append(steps, recipe.Preset(c.preset))
	}
	if c.vignette != "" {
		steps = append(steps, recipe.VignetteStep(c.vignette, c.mode))
	}
	return steps
}
