package wavecam

// Tone passes applied after reconstruction: histogram recentering and
// one-bit thresholding.

const (
	toneBuckets   = 128 // pairs of adjacent intensities share a bucket
	toneDownshift = 6   // counts scale down before peak scanning so noise floors read as zero
)

// ContrastCutoff computes the additive shift AutoContrast would apply
// to the buffer. The histogram is scanned from both ends for its outer
// peaks; when both scans fire in order, the cutoff recenters the peak
// midpoint on mid-scale. Otherwise peaks reports false and the cutoff
// falls back to centering between the extreme samples.
func ContrastCutoff(p []byte) (cutoff int, peaks bool) {
	if len(p) == 0 {
		return 0, false
	}

	var hist [toneBuckets]int
	minv, maxv := 255, 0
	for _, v := range p {
		hist[v>>1]++
		if int(v) < minv {
			minv = int(v)
		}
		if int(v) > maxv {
			maxv = int(v)
		}
	}
	for i := range hist {
		hist[i] >>= toneDownshift
	}

	first, firstOK := scanPeak(hist[:], false)
	last, lastOK := scanPeak(hist[:], true)
	if firstOK && lastOK && first < last {
		// Bucket width is 2, so (first+last)*2>>1 collapses to the sum.
		return 127 - (first + last), true
	}
	return minv + (maxv-minv)>>1, false
}

// scanPeak walks the buckets tracking a running maximum; ties advance
// the peak, so flat stretches slide it forward. It reports the peak
// index and whether a count ever fell below the maximum, which is what
// separates a real peak from a scan that ran off the end.
func scanPeak(hist []int, reverse bool) (peak int, found bool) {
	max := 0
	for i := 0; i < len(hist); i++ {
		j := i
		if reverse {
			j = len(hist) - 1 - i
		}
		if hist[j] >= max {
			max = hist[j]
			peak = j
			continue
		}
		return peak, true
	}
	return peak, false
}

// AutoContrast shifts every sample by the histogram cutoff, clamping to
// the 8-bit range.
func AutoContrast(p []byte) {
	cutoff, _ := ContrastCutoff(p)
	if cutoff == 0 {
		return
	}
	for i, v := range p {
		p[i] = byte(clamp8(int(v) + cutoff))
	}
}

// Threshold reduces the buffer to black and white: samples at or above
// bias go to 255, the rest to 0. Applying it twice with the same bias
// changes nothing.
func Threshold(p []byte, bias int) {
	for i, v := range p {
		if int(v) >= bias {
			p[i] = 255
		} else {
			p[i] = 0
		}
	}
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
