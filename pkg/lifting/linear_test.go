package lifting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForwardLinear_KnownValues(t *testing.T) {
	t.Run("even residuals 8x2", func(t *testing.T) {
		// Odd samples carry half the prediction residual: 17 predicts
		// to 15 (residual 2, stored 1), 21 to 25 (stored -2), 25 to 19
		// (stored 3), and the last odd reuses its left neighbor (8) for
		// a stored residual of 1. The residual pair (1,-2) pulls the
		// even sample 20 down by one in the update step.
		data := rowPattern([]byte{10, 17, 20, 21, 30, 25, 8, 10}, 8, 2)

		tr := NewTransformer()
		assert.NoError(t, tr.Forward(data, 8, 2, 1, Linear))

		want := []byte{
			10, 19, 30, 8, 1, 0xfe, 3, 1,
			0, 0, 0, 0, 0, 0, 0, 0,
		}
		assert.Equal(t, want, data)
	})

	t.Run("update saturates at 255", func(t *testing.T) {
		// The bright plateau [0,255,255,...] stores residuals 64 and 64
		// around the even 255, so the update step wants 255+4; the
		// stored average must saturate rather than wrap to 3.
		data := rowPattern([]byte{0, 255, 255, 255, 0, 0, 0, 0}, 8, 2)

		tr := NewTransformer()
		assert.NoError(t, tr.Forward(data, 8, 2, 1, Linear))

		assert.Equal(t, byte(255), data[1])
		want := []byte{
			4, 255, 2, 0, 64, 64, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0,
		}
		assert.Equal(t, want, data)
	})

	t.Run("constant leaves zero residuals", func(t *testing.T) {
		data := constant(100, 8, 8)

		tr := NewTransformer()
		assert.NoError(t, tr.Forward(data, 8, 8, 1, Linear))

		for _, band := range []Band{BandHL, BandLH, BandHH} {
			bounds := BandBounds(8, 8, 1, band)
			for _, v := range ExtractBand(data, 8, bounds) {
				assert.Equal(t, byte(0), v, "band %s", band)
			}
		}
	})
}

func TestInverseLinear_NoiseGate(t *testing.T) {
	src := rowPattern([]byte{10, 17, 20, 21, 30, 25, 8, 10}, 8, 2)

	tr := NewTransformer()
	assert.NoError(t, tr.Forward(src, 8, 2, 1, Linear))

	// Stored residuals are 1, -2, 3, 1; a gate of 3 keeps only the 3.
	// Zeroed residuals also change the update reversal, so the even
	// sample 20 comes back as 19.
	data := make([]byte, len(src))
	copy(data, src)
	shape := ShapeParams{Levels: []LevelParams{{Gate: 3}}}
	assert.NoError(t, tr.Inverse(data, 8, 2, 1, Linear, shape))

	want := []byte{10, 14, 19, 24, 30, 25, 8, 8}
	for y := 0; y < 2; y++ {
		assert.Equal(t, want, data[y*8:(y+1)*8], "row %d", y)
	}
}

func TestInverseLinear_GainBias(t *testing.T) {
	// Shaping lands on every sample a pass restores, and restored odd
	// samples are rebuilt from already-shaped evens, so the effect
	// compounds down and right across the frame instead of staying flat
	// the way it does for Haar.
	tr := NewTransformer()

	t.Run("gain halves per restoration", func(t *testing.T) {
		data := constant(128, 4, 4)
		assert.NoError(t, tr.Forward(data, 4, 4, 1, Linear))

		shape := ShapeParams{Levels: []LevelParams{{Gain: 1}}}
		assert.NoError(t, tr.Inverse(data, 4, 4, 1, Linear, shape))

		want := []byte{
			32, 16, 32, 16,
			16, 8, 16, 8,
			32, 16, 32, 16,
			16, 8, 16, 8,
		}
		assert.Equal(t, want, data)
	})

	t.Run("bias clamps bright samples", func(t *testing.T) {
		// The boost of 128 saturates every even sample at 255. It also
		// lifts the zero bands to 128, which the row reversal reads as
		// residual -128: doubled and added to the 255 prediction that
		// leaves -1, and one more boost puts the odd sample at 127.
		data := constant(255, 4, 4)
		assert.NoError(t, tr.Forward(data, 4, 4, 1, Linear))

		shape := ShapeParams{Levels: []LevelParams{{Bias: 7}}}
		assert.NoError(t, tr.Inverse(data, 4, 4, 1, Linear, shape))

		want := []byte{
			255, 127, 255, 127,
			255, 255, 255, 255,
			255, 127, 255, 127,
			255, 255, 255, 255,
		}
		assert.Equal(t, want, data)
	})
}

func TestInverseLinear_Squash(t *testing.T) {
	// As with Haar, the forced bytes land in every column during the
	// final vertical pass and then ride through the horizontal
	// reversal, where 30 reads as a residual in the right-hand band.
	data := constant(100, 4, 4)

	tr := NewTransformer()
	assert.NoError(t, tr.Forward(data, 4, 4, 1, Linear))
	assert.NoError(t, tr.Inverse(data, 4, 4, 1, Linear, ShapeParams{Squash: true, SquashBias: 30}))

	want := []byte{
		29, 89, 29, 89,
		100, 100, 100, 100,
		100, 100, 100, 100,
		100, 100, 100, 100,
	}
	assert.Equal(t, want, data)
}
