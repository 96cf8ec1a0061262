package lifting

// The Haar passes work on values scaled by four so the stored average
// carries the rounding of the half difference:
//
//	diff = (4b - 4a) >> 1
//	avg  = 4a + diff
//
// with avg>>2 packed into the near half of the axis and diff>>2 into
// the far half. Reconstruction recovers the first sample exactly; the
// second lands within one count when the pair sum is odd.

// forwardHaarRows transforms each row of the region, packing averages
// into the left half and differences into the right half.
func (t *Transformer) forwardHaarRows(data []byte, stride, cols, rows int) {
	half := cols / 2
	for y := 0; y < rows; y++ {
		seg := data[y*stride : y*stride+cols]
		copy(t.row[:cols], seg)
		for i := 0; i < half; i++ {
			a := int(t.row[2*i]) << 2
			b := int(t.row[2*i+1]) << 2
			diff := (b - a) >> 1
			seg[i] = byte((a + diff) >> 2)
			seg[half+i] = byte(diff >> 2)
		}
	}
}

// forwardHaarCols transforms each column of the region, packing
// averages into the top half and differences into the bottom half.
func (t *Transformer) forwardHaarCols(data []byte, stride, cols, rows int) {
	half := rows / 2
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			t.col[y] = data[y*stride+x]
		}
		for i := 0; i < half; i++ {
			a := int(t.col[2*i]) << 2
			b := int(t.col[2*i+1]) << 2
			diff := (b - a) >> 1
			data[i*stride+x] = byte((a + diff) >> 2)
			data[(half+i)*stride+x] = byte(diff >> 2)
		}
	}
}

// inverseHaarCols rebuilds each column from its average and difference
// halves. The second sample of a pair is derived from the unshaped
// first, then both are shaped independently. When squash is set the
// near-origin half of the rebuilt averages is forced to squashBias at
// write-back.
func (t *Transformer) inverseHaarCols(data []byte, stride, cols, rows int, p LevelParams, squash bool, squashBias int) {
	half := rows / 2
	boost := biasBoost(p.Bias)
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			t.col[y] = data[y*stride+x]
		}
		for i := 0; i < half; i++ {
			avg := int(t.col[i])
			diff := int(int8(t.col[half+i]))
			if abs(diff) < p.Gate {
				diff = 0
			}
			a := avg - diff
			b := diff<<1 + a
			a = clamp8(a>>p.Gain + boost)
			if squash && i < half/2 {
				a = squashBias
			}
			data[2*i*stride+x] = byte(a)
			data[(2*i+1)*stride+x] = byte(clamp8(b>>p.Gain + boost))
		}
	}
}

// inverseHaarRows rebuilds each row from its average and difference
// halves.
func (t *Transformer) inverseHaarRows(data []byte, stride, cols, rows int, p LevelParams) {
	half := cols / 2
	boost := biasBoost(p.Bias)
	for y := 0; y < rows; y++ {
		seg := data[y*stride : y*stride+cols]
		copy(t.row[:cols], seg)
		for i := 0; i < half; i++ {
			avg := int(t.row[i])
			diff := int(int8(t.row[half+i]))
			if abs(diff) < p.Gate {
				diff = 0
			}
			a := avg - diff
			b := diff<<1 + a
			seg[2*i] = byte(clamp8(a>>p.Gain + boost))
			seg[2*i+1] = byte(clamp8(b>>p.Gain + boost))
		}
	}
}
