package lifting

// Band identifies one quadrant of a single decomposition level.
type Band int

const (
	BandLL Band = iota // averages in both axes
	BandHL             // horizontal differences, vertical averages
	BandLH             // horizontal averages, vertical differences
	BandHH             // differences in both axes
)

func (b Band) String() string {
	switch b {
	case BandLL:
		return "LL"
	case BandHL:
		return "HL"
	case BandLH:
		return "LH"
	case BandHH:
		return "HH"
	}
	return "??"
}

// Bounds frames a band within the full buffer, end-exclusive.
type Bounds struct {
	X0, Y0 int
	X1, Y1 int
}

// LevelRegion returns the dimensions of the region a level operates on.
// Level 1 covers the full buffer; each deeper level halves both axes.
func LevelRegion(width, height, level int) (cols, rows int) {
	return width >> (level - 1), height >> (level - 1)
}

// BandBounds locates one band left behind by the given level. The LL
// band is only final for the deepest level; shallower levels overwrite
// theirs with the next level's output.
func BandBounds(width, height, level int, band Band) Bounds {
	cols, rows := LevelRegion(width, height, level)
	halfW := cols / 2
	halfH := rows / 2
	switch band {
	case BandLL:
		return Bounds{0, 0, halfW, halfH}
	case BandHL:
		return Bounds{halfW, 0, cols, halfH}
	case BandLH:
		return Bounds{0, halfH, halfW, rows}
	case BandHH:
		return Bounds{halfW, halfH, cols, rows}
	}
	return Bounds{}
}

// ExtractBand copies one band out of a transformed buffer laid out with
// the given stride.
func ExtractBand(data []byte, stride int, b Bounds) []byte {
	w := b.X1 - b.X0
	h := b.Y1 - b.Y0
	if w <= 0 || h <= 0 {
		return nil
	}
	out := make([]byte, w*h)
	for y := 0; y < h; y++ {
		src := (b.Y0+y)*stride + b.X0
		copy(out[y*w:(y+1)*w], data[src:src+w])
	}
	return out
}
