package ebiten

import (
	"image/color"

	"github.com/go-theft-auto/plot"
)

// colorOf converts a packed plot color.
func colorOf(c uint32) color.RGBA {
	r, g, b, a := plot.UnpackRGBA(c)
	// color.RGBA is premultiplied.
	return color.RGBA{
		R: uint8(uint32(r) * uint32(a) / 255),
		G: uint8(uint32(g) * uint32(a) / 255),
		B: uint8(uint32(b) * uint32(a) / 255),
		A: a,
	}
}
