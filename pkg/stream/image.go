package stream

// Image glue for the filter: arbitrary decoded images become raw RGBA
// frames, resampled when the pyramid needs dimensions that halve
// cleanly through every level.

import (
	"fmt"
	"image"

	"golang.org/x/image/draw"
)

// FitDims returns the largest dimensions not exceeding width and
// height that stay even through levels halvings.
func FitDims(width, height, levels int) (int, int, error) {
	mask := 1<<levels - 1
	fw := width &^ mask
	fh := height &^ mask
	if fw == 0 || fh == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d with %d levels", ErrTooSmall, width, height, levels)
	}
	return fw, fh, nil
}

// Fit resamples img to width x height with Catmull-Rom interpolation.
func Fit(img image.Image, width, height int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

// Bytes returns the raw RGBA frame for img along with its dimensions,
// converting unless img is already tightly packed RGBA.
func Bytes(img image.Image) ([]byte, int, int) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if rgba, ok := img.(*image.RGBA); ok && rgba.Stride == w*4 && len(rgba.Pix) == w*h*4 {
		return rgba.Pix, w, h
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix, w, h
}

// ToImage wraps a raw RGBA frame as an image for encoding.
func ToImage(frame []byte, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	copy(img.Pix, frame)
	return img
}
