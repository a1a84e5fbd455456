package display

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"periph.io/x/devices/v3/ssd1306/image1bit"
)

const (
	frameWidth  = 128
	frameHeight = 32
)

// lineBaselines are the text baselines for the three rows of a page,
// spacing Face7x13 to fill the 32 pixel panel in 11px rows.
var lineBaselines = [3]int{9, 20, 31}

// render draws three lines of text into a fresh 1-bit frame.
func render(lines [3]string, rotate bool) *image1bit.VerticalLSB {
	img := image1bit.NewVerticalLSB(image.Rect(0, 0, frameWidth, frameHeight))
	for i, line := range lines {
		if line != "" {
			drawText(img, 0, lineBaselines[i], line)
		}
	}
	if rotate {
		return rotate180(img)
	}
	return img
}

// drawText writes s with its baseline at (x, y).
func drawText(img *image1bit.VerticalLSB, x, y int, s string) {
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(image1bit.On),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// rotate180 flips the frame for upside-down mounts.
func rotate180(src *image1bit.VerticalLSB) *image1bit.VerticalLSB {
	b := src.Bounds()
	dst := image1bit.NewVerticalLSB(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			dst.SetBit(b.Max.X-1-x, b.Max.Y-1-y, src.BitAt(x, y))
		}
	}
	return dst
}
