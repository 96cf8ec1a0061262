package lifting

// The Linear passes predict each odd sample from its even neighbors and
// store half the prediction residual, then nudge each even sample by a
// damped mean of the neighboring residuals, (d1 + d2) >> 5. Residual
// bytes hold signed values. Unlike Haar, samples stay interleaved while
// the lifting steps run and are split into band halves afterwards.

// forwardLinearRows transforms each row of the region.
func (t *Transformer) forwardLinearRows(data []byte, stride, cols, rows int) {
	half := cols / 2
	for y := 0; y < rows; y++ {
		seg := data[y*stride : y*stride+cols]
		copy(t.row[:cols], seg)
		liftLinear(t.row[:cols])
		for i := 0; i < half; i++ {
			seg[i] = t.row[2*i]
			seg[half+i] = t.row[2*i+1]
		}
	}
}

// forwardLinearCols transforms each column of the region.
func (t *Transformer) forwardLinearCols(data []byte, stride, cols, rows int) {
	half := rows / 2
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			t.col[y] = data[y*stride+x]
		}
		liftLinear(t.col[:rows])
		for i := 0; i < half; i++ {
			data[i*stride+x] = t.col[2*i]
			data[(half+i)*stride+x] = t.col[2*i+1]
		}
	}
}

// inverseLinearCols rebuilds each column, interleaving the band halves
// before reversing the lifting steps. When squash is set the
// near-origin half of the restored even samples is forced to squashBias
// at write-back; the odd samples keep their computed values.
func (t *Transformer) inverseLinearCols(data []byte, stride, cols, rows int, p LevelParams, squash bool, squashBias int) {
	half := rows / 2
	for x := 0; x < cols; x++ {
		for i := 0; i < half; i++ {
			t.col[2*i] = data[i*stride+x]
			t.col[2*i+1] = data[(half+i)*stride+x]
		}
		unliftLinear(t.col[:rows], p)
		for i := 0; i < half; i++ {
			a := t.col[2*i]
			if squash && i < half/2 {
				a = byte(squashBias)
			}
			data[2*i*stride+x] = a
			data[(2*i+1)*stride+x] = t.col[2*i+1]
		}
	}
}

// inverseLinearRows rebuilds each row.
func (t *Transformer) inverseLinearRows(data []byte, stride, cols, rows int, p LevelParams) {
	half := cols / 2
	for y := 0; y < rows; y++ {
		seg := data[y*stride : y*stride+cols]
		for i := 0; i < half; i++ {
			t.row[2*i] = seg[i]
			t.row[2*i+1] = seg[half+i]
		}
		unliftLinear(t.row[:cols], p)
		copy(seg, t.row[:cols])
	}
}

// liftLinear applies the predict and update steps in place over an
// interleaved axis of even length. The last odd sample has no right
// even neighbor, so its prediction reuses the left one.
func liftLinear(s []byte) {
	n := len(s)
	// predict: replace each odd sample with half its residual
	for j := 1; j < n; j += 2 {
		right := j + 1
		if right >= n {
			right = j - 1
		}
		pred := (int(s[j-1]) + int(s[right])) >> 1
		d := (int(s[j]) - pred) >> 1
		if d > 127 {
			d = 127
		} else if d < -128 {
			d = -128
		}
		s[j] = byte(d)
	}
	// update: pull each even sample toward the local residual mean,
	// saturating at the byte range like every stored average
	for j := 0; j < n; j += 2 {
		left := j - 1
		if left < 0 {
			left = j + 1
		}
		u := (int(int8(s[left])) + int(int8(s[j+1]))) >> 5
		s[j] = byte(clamp8(int(s[j]) + u))
	}
}

// unliftLinear reverses liftLinear, gating the residuals first and
// shaping each sample as it is restored.
func unliftLinear(s []byte, p LevelParams) {
	n := len(s)
	if p.Gate > 0 {
		for j := 1; j < n; j += 2 {
			if abs(int(int8(s[j]))) < p.Gate {
				s[j] = 0
			}
		}
	}
	boost := biasBoost(p.Bias)
	// reverse the update step, saturating the same way the forward
	// addition did, then shape the restored even sample
	for j := 0; j < n; j += 2 {
		left := j - 1
		if left < 0 {
			left = j + 1
		}
		u := (int(int8(s[left])) + int(int8(s[j+1]))) >> 5
		e := clamp8(int(s[j]) - u)
		s[j] = byte(clamp8(e>>p.Gain + boost))
	}
	// reverse the predict step against the restored even samples
	for j := 1; j < n; j += 2 {
		right := j + 1
		if right >= n {
			right = j - 1
		}
		pred := (int(s[j-1]) + int(s[right])) >> 1
		o := int(int8(s[j]))<<1 + pred
		s[j] = byte(clamp8(o>>p.Gain + boost))
	}
}
