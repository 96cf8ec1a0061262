package lifting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// rowPattern tiles one row down a width*height buffer so every column
// is constant. Column passes are lossless over constant columns, which
// keeps round-trip expectations exact.
func rowPattern(row []byte, width, height int) []byte {
	data := make([]byte, width*height)
	for y := 0; y < height; y++ {
		copy(data[y*width:(y+1)*width], row)
	}
	return data
}

func constant(v byte, width, height int) []byte {
	data := make([]byte, width*height)
	for i := range data {
		data[i] = v
	}
	return data
}

func TestForwardInverse_RoundTrip(t *testing.T) {
	// Haar recovers pairs exactly when the pair sum is even; Linear
	// when the prediction residual is even. Constant buffers satisfy
	// both at every level.
	tests := []struct {
		name   string
		scheme Scheme
		levels int
		width  int
		height int
		data   []byte
	}{
		{
			name:   "haar constant 1 level",
			scheme: Haar,
			levels: 1,
			width:  8, height: 8,
			data: constant(100, 8, 8),
		},
		{
			name:   "haar constant 3 levels",
			scheme: Haar,
			levels: 3,
			width:  8, height: 8,
			data: constant(100, 8, 8),
		},
		{
			name:   "haar even pair sums 1 level",
			scheme: Haar,
			levels: 1,
			width:  8, height: 8,
			data: rowPattern([]byte{10, 12, 100, 102, 50, 52, 8, 10}, 8, 8),
		},
		{
			name:   "haar even pair sums 3 levels",
			scheme: Haar,
			levels: 3,
			width:  8, height: 8,
			data: rowPattern([]byte{10, 12, 100, 102, 50, 52, 8, 10}, 8, 8),
		},
		{
			name:   "linear constant 3 levels",
			scheme: Linear,
			levels: 3,
			width:  16, height: 16,
			data: constant(77, 16, 16),
		},
		{
			name:   "linear even residuals 1 level",
			scheme: Linear,
			levels: 1,
			width:  8, height: 2,
			data: rowPattern([]byte{10, 17, 20, 21, 30, 25, 8, 10}, 8, 2),
		},
		{
			name:   "none is a no-op",
			scheme: None,
			levels: 3,
			width:  8, height: 8,
			data: rowPattern([]byte{9, 30, 201, 5, 77, 16, 250, 0}, 8, 8),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			original := make([]byte, len(tt.data))
			copy(original, tt.data)

			tr := NewTransformer()
			assert.NoError(t, tr.Forward(tt.data, tt.width, tt.height, tt.levels, tt.scheme))
			assert.NoError(t, tr.Inverse(tt.data, tt.width, tt.height, tt.levels, tt.scheme, ShapeParams{}))

			assert.Equal(t, original, tt.data)
		})
	}
}

func TestForward_Validation(t *testing.T) {
	tr := NewTransformer()

	t.Run("levels too deep", func(t *testing.T) {
		data := constant(1, 4, 4)
		original := make([]byte, len(data))
		copy(original, data)

		err := tr.Forward(data, 4, 4, 3, Haar)
		assert.ErrorIs(t, err, ErrInvalidLevels)
		assert.Equal(t, original, data, "buffer must not change on error")
	})

	t.Run("short buffer", func(t *testing.T) {
		err := tr.Forward(make([]byte, 10), 4, 4, 1, Haar)
		assert.ErrorIs(t, err, ErrShortBuffer)
	})

	t.Run("unknown scheme", func(t *testing.T) {
		err := tr.Forward(constant(1, 4, 4), 4, 4, 1, Scheme(9))
		assert.ErrorIs(t, err, ErrUnknownScheme)
	})

	t.Run("inverse checks too", func(t *testing.T) {
		err := tr.Inverse(constant(1, 4, 4), 4, 4, 3, Haar, ShapeParams{})
		assert.ErrorIs(t, err, ErrInvalidLevels)
	})
}

func TestMaxLevels(t *testing.T) {
	tests := []struct {
		width, height int
		want          int
	}{
		{640, 480, 5},
		{256, 256, 8},
		{8, 8, 3},
		{4, 4, 2},
		{2, 2, 1},
		{8, 2, 1},
		{6, 4, 1},
		{3, 5, 0},
		{1, 1, 0},
		{0, 8, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, MaxLevels(tt.width, tt.height), "%dx%d", tt.width, tt.height)
	}
}

func TestCheckLevels(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		levels        int
		ok            bool
	}{
		{"vga 5 levels", 640, 480, 5, true},
		{"vga 6 levels", 640, 480, 6, false},
		{"4x4 2 levels", 4, 4, 2, true},
		{"4x4 3 levels", 4, 4, 3, false},
		{"zero levels", 16, 16, 0, true},
		{"negative levels", 16, 16, -1, false},
		{"zero width", 0, 16, 1, false},
		{"odd dims", 5, 5, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLevels(tt.width, tt.height, tt.levels)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidLevels)
			}
		})
	}
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"haar", Haar, false},
		{"HAAR", Haar, false},
		{"linear", Linear, false},
		{"none", None, false},
		{"", None, false},
		{"daubechies", None, true},
	}

	for _, tt := range tests {
		got, err := ParseScheme(tt.in)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrUnknownScheme, "%q", tt.in)
			continue
		}
		assert.NoError(t, err, "%q", tt.in)
		assert.Equal(t, tt.want, got, "%q", tt.in)
	}
}

func TestSchemeString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "haar", Haar.String())
	assert.Equal(t, "linear", Linear.String())
	assert.Equal(t, "scheme(9)", Scheme(9).String())
}

func BenchmarkForwardHaar(b *testing.B) {
	width, height, levels := 640, 480, 3
	src := make([]byte, width*height)
	for i := range src {
		src[i] = byte(i)
	}
	data := make([]byte, len(src))
	tr := NewTransformer()

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(data, src)
		tr.Forward(data, width, height, levels, Haar)
	}
}

func BenchmarkForwardLinear(b *testing.B) {
	width, height, levels := 640, 480, 3
	src := make([]byte, width*height)
	for i := range src {
		src[i] = byte(i)
	}
	data := make([]byte, len(src))
	tr := NewTransformer()

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(data, src)
		tr.Forward(data, width, height, levels, Linear)
	}
}

func BenchmarkInverseHaar(b *testing.B) {
	width, height, levels := 640, 480, 3
	src := make([]byte, width*height)
	for i := range src {
		src[i] = byte(i)
	}
	tr := NewTransformer()
	tr.Forward(src, width, height, levels, Haar)
	data := make([]byte, len(src))
	shape := ShapeParams{Levels: []LevelParams{{Gate: 8, Gain: 1}, {Gate: 4}, {}}}

	b.SetBytes(int64(len(src)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		copy(data, src)
		tr.Inverse(data, width, height, levels, Haar, shape)
	}
}
