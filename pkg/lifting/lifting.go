// Package lifting implements the in-place lifting-scheme wavelet
// transforms behind the webwavecam filter: a Haar (average/difference)
// scheme and a Linear (predict/update) scheme, both operating directly
// on 8-bit grayscale buffers.
//
// Difference bands are stored as signed values packed into unsigned
// bytes and sign-extended on the way back in. Multi-level decomposition
// re-transforms the average region left by the previous level, so the
// subband layout matches the classic pyramid: averages migrate toward
// the origin, differences fill the remaining quadrants.
package lifting

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownScheme = errors.New("unknown wavelet scheme")
	ErrInvalidLevels = errors.New("level count incompatible with buffer dimensions")
	ErrShortBuffer   = errors.New("buffer shorter than width*height")
)

// Scheme selects the wavelet used for decomposition and reconstruction.
type Scheme uint8

const (
	// None applies no decomposition; Forward and Inverse are no-ops.
	None Scheme = iota
	// Haar stores pair averages and half differences.
	Haar
	// Linear predicts odd samples from their even neighbors and stores
	// half the prediction residual.
	Linear
)

func (s Scheme) String() string {
	switch s {
	case None:
		return "none"
	case Haar:
		return "haar"
	case Linear:
		return "linear"
	}
	return fmt.Sprintf("scheme(%d)", uint8(s))
}

// ParseScheme maps a config string to a Scheme.
func ParseScheme(name string) (Scheme, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return None, nil
	case "haar":
		return Haar, nil
	case "linear":
		return Linear, nil
	}
	return None, fmt.Errorf("%w: %q", ErrUnknownScheme, name)
}

// LevelParams carries the reconstruction shaping controls for one
// decomposition level. The zero value leaves the level unshaped.
type LevelParams struct {
	Gate int // difference magnitudes below this are zeroed (0-255)
	Gain int // right shift applied to each rebuilt sample (0-7)
	Bias int // when >0, adds 1<<Bias after the gain shift (0-7)
}

// ShapeParams bundles the controls applied while Inverse rebuilds a
// frame.
type ShapeParams struct {
	// Levels is indexed by level-1; missing entries shape as zero.
	Levels []LevelParams
	// Squash forces the near-origin half of the vertical average band
	// to SquashBias during the last inverse level, flattening the
	// broadest reconstructed intensities. SquashBias is clamped to
	// [0,255] before use.
	Squash     bool
	SquashBias int
}

func (sp ShapeParams) level(level int) LevelParams {
	if level-1 < len(sp.Levels) {
		return sp.Levels[level-1]
	}
	return LevelParams{}
}

// Transformer runs forward and inverse transforms over reusable row and
// column scratch, so a frame loop allocates nothing per frame. It is
// not safe for concurrent use.
type Transformer struct {
	row []byte
	col []byte
}

func NewTransformer() *Transformer { return &Transformer{} }

// Forward decomposes data in-place through the requested number of
// levels. Each level transforms the average region left by the previous
// one, rows first and then columns, over the top-left width>>(level-1)
// by height>>(level-1) samples.
func (t *Transformer) Forward(data []byte, width, height, levels int, scheme Scheme) error {
	if err := t.check(data, width, height, levels, scheme); err != nil {
		return err
	}
	if scheme == None || levels == 0 {
		return nil
	}
	for level := 1; level <= levels; level++ {
		cols := width >> (level - 1)
		rows := height >> (level - 1)
		if scheme == Haar {
			t.forwardHaarRows(data, width, cols, rows)
			t.forwardHaarCols(data, width, cols, rows)
		} else {
			t.forwardLinearRows(data, width, cols, rows)
			t.forwardLinearCols(data, width, cols, rows)
		}
	}
	return nil
}

// Inverse reconstructs data in-place, undoing Forward level by level
// from the deepest region outward, columns first and then rows. Shaping
// from shape is applied to each sample as it is rebuilt.
func (t *Transformer) Inverse(data []byte, width, height, levels int, scheme Scheme, shape ShapeParams) error {
	if err := t.check(data, width, height, levels, scheme); err != nil {
		return err
	}
	if scheme == None || levels == 0 {
		return nil
	}
	squashBias := clamp8(shape.SquashBias)
	for level := levels; level >= 1; level-- {
		cols := width >> (level - 1)
		rows := height >> (level - 1)
		p := shape.level(level)
		squash := shape.Squash && level == 1
		if scheme == Haar {
			t.inverseHaarCols(data, width, cols, rows, p, squash, squashBias)
			t.inverseHaarRows(data, width, cols, rows, p)
		} else {
			t.inverseLinearCols(data, width, cols, rows, p, squash, squashBias)
			t.inverseLinearRows(data, width, cols, rows, p)
		}
	}
	return nil
}

// check validates a transform request and sizes the scratch. The buffer
// is never touched when an error comes back.
func (t *Transformer) check(data []byte, width, height, levels int, scheme Scheme) error {
	switch scheme {
	case None, Haar, Linear:
	default:
		return fmt.Errorf("%w: %d", ErrUnknownScheme, scheme)
	}
	if err := CheckLevels(width, height, levels); err != nil {
		return err
	}
	if len(data) < width*height {
		return fmt.Errorf("%w: %d < %d", ErrShortBuffer, len(data), width*height)
	}
	if len(t.row) < width {
		t.row = make([]byte, width)
	}
	if len(t.col) < height {
		t.col = make([]byte, height)
	}
	return nil
}

// CheckLevels reports whether the dimensions support the requested
// decomposition depth. Every processed level must see even width and
// height, which means both dimensions divide evenly by 1<<levels.
func CheckLevels(width, height, levels int) error {
	if width <= 0 || height <= 0 || levels < 0 {
		return fmt.Errorf("%w: %d levels over %dx%d", ErrInvalidLevels, levels, width, height)
	}
	if max := MaxLevels(width, height); levels > max {
		return fmt.Errorf("%w: %d levels over %dx%d (max %d)", ErrInvalidLevels, levels, width, height, max)
	}
	return nil
}

// MaxLevels returns the deepest decomposition the dimensions support.
func MaxLevels(width, height int) int {
	n := 0
	for width > 1 && height > 1 && width%2 == 0 && height%2 == 0 {
		width >>= 1
		height >>= 1
		n++
	}
	return n
}

func clamp8(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func biasBoost(bias int) int {
	if bias > 0 {
		return 1 << bias
	}
	return 0
}
