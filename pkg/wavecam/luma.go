package wavecam

// Luma extraction uses the integer approximation Y = (3R + 4G + B) >> 3,
// which weights green double without leaving 8-bit friendly arithmetic.
// Alpha never participates.

// RGBAToLuma packs one luma byte per RGBA pixel. dst must hold at least
// len(rgba)/4 bytes.
func RGBAToLuma(dst, rgba []byte) {
	n := len(rgba) / 4
	for i := 0; i < n; i++ {
		r := int(rgba[4*i])
		g := int(rgba[4*i+1])
		b := int(rgba[4*i+2])
		dst[i] = byte((3*r + 4*g + b) >> 3)
	}
}

// LumaToRGBA broadcasts each luma byte across RGB and forces alpha
// opaque. rgba must hold at least len(src)*4 bytes.
func LumaToRGBA(rgba, src []byte) {
	for i, v := range src {
		rgba[4*i] = v
		rgba[4*i+1] = v
		rgba[4*i+2] = v
		rgba[4*i+3] = 255
	}
}

// InvertLuma flips every sample to its photometric negative.
func InvertLuma(p []byte) {
	for i, v := range p {
		p[i] = 255 - v
	}
}
