// Package wavecam implements a real-time grayscale wavelet filter for
// video frames. Each RGBA frame is reduced to 8-bit luma, decomposed
// in place by a lifting-scheme wavelet, optionally rebuilt through
// per-level quantization shaping, tone mapped, and broadcast back to
// grayscale RGBA.
//
// The whole chain works on one frame at a time with reused scratch, so
// a capture loop can run it per frame without allocating.
package wavecam

import (
	"errors"
	"fmt"

	"github.com/samblenny/webwavecam/pkg/lifting"
)

// Common errors
var (
	ErrInvalidConfig     = errors.New("invalid filter configuration")
	ErrDimensionMismatch = errors.New("frame dimensions do not match buffer size")
)

// Pipeline owns the luma scratch and transformer state for filtering
// frames. Buffers grow to the largest frame seen and are reused. A
// Pipeline is not safe for concurrent use; run one per goroutine.
type Pipeline struct {
	luma []byte
	tr   *lifting.Transformer
}

func NewPipeline() *Pipeline {
	return &Pipeline{tr: lifting.NewTransformer()}
}

// Process filters one RGBA frame in place, replacing it with the
// filtered grayscale rendition broadcast across RGB with opaque alpha.
// The frame bytes are untouched when an error comes back.
func (pl *Pipeline) Process(rgba []byte, width, height int, cfg Config) error {
	if width <= 0 || height <= 0 || len(rgba) != width*height*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrDimensionMismatch, len(rgba), width, height)
	}
	if err := cfg.Validate(width, height); err != nil {
		return err
	}

	n := width * height
	if len(pl.luma) < n {
		pl.luma = make([]byte, n)
	}
	luma := pl.luma[:n]

	RGBAToLuma(luma, rgba)
	if cfg.Scheme != SchemeNone {
		if err := pl.tr.Forward(luma, width, height, cfg.Levels, cfg.Scheme); err != nil {
			return err
		}
		// Skipping reconstruction leaves the coefficient planes
		// themselves on screen, packed differences included.
		if cfg.Reconstruct {
			shape := lifting.ShapeParams{
				Levels:     cfg.PerLevel,
				Squash:     cfg.Squash,
				SquashBias: cfg.SquashBias,
			}
			if err := pl.tr.Inverse(luma, width, height, cfg.Levels, cfg.Scheme, shape); err != nil {
				return err
			}
		}
	}
	if cfg.Contrast == ContrastHistogram {
		AutoContrast(luma)
	}
	if cfg.Invert {
		InvertLuma(luma)
	}
	if cfg.OneBit {
		Threshold(luma, cfg.OneBitBias)
	}
	LumaToRGBA(rgba, luma)
	return nil
}

// Process filters one frame with a throwaway pipeline. Frame loops
// should hold a Pipeline so scratch is reused across frames.
func Process(rgba []byte, width, height int, cfg Config) error {
	return NewPipeline().Process(rgba, width, height, cfg)
}
