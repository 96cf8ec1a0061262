package wavecam

import (
	"fmt"
	"strings"

	"github.com/samblenny/webwavecam/pkg/lifting"
)

// Scheme is re-exported so callers can configure the filter without
// importing the lifting package directly.
type Scheme = lifting.Scheme

const (
	SchemeNone   = lifting.None
	SchemeHaar   = lifting.Haar
	SchemeLinear = lifting.Linear
)

// MaxLevels caps the configurable decomposition depth. Deeper pyramids
// need frame dimensions divisible by 64, past any useful visual effect.
const MaxLevels = 6

// Contrast selects the tone pass applied after reconstruction.
type Contrast uint8

const (
	ContrastNone Contrast = iota
	// ContrastHistogram recenters the intensity distribution by
	// shifting the histogram peaks toward mid-scale.
	ContrastHistogram
)

func (c Contrast) String() string {
	switch c {
	case ContrastNone:
		return "none"
	case ContrastHistogram:
		return "histogram"
	}
	return fmt.Sprintf("contrast(%d)", uint8(c))
}

// ParseContrast maps a config string to a Contrast.
func ParseContrast(name string) (Contrast, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return ContrastNone, nil
	case "histogram":
		return ContrastHistogram, nil
	}
	return ContrastNone, fmt.Errorf("%w: contrast %q", ErrInvalidConfig, name)
}

// Config selects the stages a frame runs through and their parameters.
// The zero value filters to plain grayscale; DefaultConfig enables the
// wavelet stages.
type Config struct {
	Scheme      Scheme                // wavelet used for decomposition
	Levels      int                   // decomposition depth, 1 to MaxLevels
	Reconstruct bool                  // run the shaped inverse; false shows raw coefficients
	Contrast    Contrast              // tone pass after reconstruction
	Invert      bool                  // photometric negative before thresholding
	OneBit      bool                  // reduce to black and white
	OneBitBias  int                   // threshold for OneBit, 0-255
	Squash      bool                  // flatten the broadest averages during reconstruction
	SquashBias  int                   // level the squashed samples take, 0-255
	PerLevel    []lifting.LevelParams // shaping per level, index 0 = level 1
}

// DefaultConfig returns the filter configuration the commands start
// from: three Haar levels, reconstructed, no tone passes.
func DefaultConfig() Config {
	return Config{
		Scheme:      SchemeHaar,
		Levels:      3,
		Reconstruct: true,
	}
}

// Validate rejects a configuration that cannot run against frames of
// the given dimensions. Process calls this before touching any bytes,
// so a bad config never leaves a half-filtered frame.
func (c Config) Validate(width, height int) error {
	switch c.Scheme {
	case SchemeNone, SchemeHaar, SchemeLinear:
	default:
		return fmt.Errorf("%w: scheme %d", ErrInvalidConfig, c.Scheme)
	}
	switch c.Contrast {
	case ContrastNone, ContrastHistogram:
	default:
		return fmt.Errorf("%w: contrast %d", ErrInvalidConfig, c.Contrast)
	}
	if c.Scheme != SchemeNone {
		if c.Levels < 1 || c.Levels > MaxLevels {
			return fmt.Errorf("%w: levels %d out of range 1-%d", ErrInvalidConfig, c.Levels, MaxLevels)
		}
		if err := lifting.CheckLevels(width, height, c.Levels); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}
	if c.OneBitBias < 0 || c.OneBitBias > 255 {
		return fmt.Errorf("%w: one-bit bias %d out of range 0-255", ErrInvalidConfig, c.OneBitBias)
	}
	if c.SquashBias < 0 || c.SquashBias > 255 {
		return fmt.Errorf("%w: squash bias %d out of range 0-255", ErrInvalidConfig, c.SquashBias)
	}
	for i, p := range c.PerLevel {
		if p.Gate < 0 || p.Gate > 255 {
			return fmt.Errorf("%w: level %d gate %d out of range 0-255", ErrInvalidConfig, i+1, p.Gate)
		}
		if p.Gain < 0 || p.Gain > 7 {
			return fmt.Errorf("%w: level %d gain %d out of range 0-7", ErrInvalidConfig, i+1, p.Gain)
		}
		if p.Bias < 0 || p.Bias > 7 {
			return fmt.Errorf("%w: level %d bias %d out of range 0-7", ErrInvalidConfig, i+1, p.Bias)
		}
	}
	return nil
}
