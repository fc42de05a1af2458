package pixelshader

// Default luminance weights used for desaturation. They are fixed-point
// (1024 = 1.0) and sum to 1024.
const (
	DefaultLuminanceR = 306
	DefaultLuminanceG = 601
	DefaultLuminanceB = 117
)

// Option configures a Shader during creation.
//
// Example:
//
//	// Default shader
//	s := pixelshader.New()
//
//	// Rec. 709 luminance, 4 workers for ApplyParallel
//	s := pixelshader.New(
//	    pixelshader.WithLuminanceWeights(218, 732, 74),
//	    pixelshader.WithWorkers(4),
//	)
type Option func(*options)

// options holds optional configuration for Shader creation.
type options struct {
	monoMix [3]int
	workers int
}

// defaultOptions returns the default shader options.
func defaultOptions() options {
	return options{
		monoMix: [3]int{DefaultLuminanceR, DefaultLuminanceG, DefaultLuminanceB},
		workers: 0, // GOMAXPROCS
	}
}

// WithLuminanceWeights sets the fixed-point weights every color kernel of
// the shader uses to compute luminance when changing saturation.
func WithLuminanceWeights(r, g, b int) Option {
	return func(o *options) {
		o.monoMix = [3]int{r, g, b}
	}
}

// WithWorkers sets the number of goroutines ApplyParallel uses.
// Zero or a negative value selects GOMAXPROCS.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}
