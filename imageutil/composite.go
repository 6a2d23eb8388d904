package imageutil

import (
	"fmt"
	"image"
	"math"
)

// CompositeOnto blends img over an opaque canvas of color bg, using mask as
// per-pixel foreground coverage (255 keeps the source pixel, 0 replaces it
// with bg). A nil mask keeps every pixel, which only flattens the source's
// own alpha channel. The result is fully opaque and has the same size as img.
//
// For a premultiplied source color c with alpha a and mask value m:
//
//	out = c*m/255 + bg*(1 - a*m/255²)
func CompositeOnto(img image.Image, mask *GrayImage, bg RGB) (*RGBAImage, error) {
	src := RGBAImageFromImage(img)
	width, height := src.Width(), src.Height()
	if mask != nil && (mask.Width() != width || mask.Height() != height) {
		return nil, fmt.Errorf("mask is %dx%d, image is %dx%d",
			mask.Width(), mask.Height(), width, height)
	}

	dst := NewRGBAImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := src.RGBAAt(x, y)
			m := 255.0
			if mask != nil {
				m = float64(mask.Gray.Pix[y*mask.Stride+x])
			}
			keep := m / 255
			rest := 1 - float64(c.A)*m/(255*255)
			dst.SetRGB(x, y, RGB{
				R: blend(c.R, bg.R, keep, rest),
				G: blend(c.G, bg.G, keep, rest),
				B: blend(c.B, bg.B, keep, rest),
			})
		}
	}
	return dst, nil
}

// CompositeOnWhite is CompositeOnto with a white canvas.
func CompositeOnWhite(img image.Image, mask *GrayImage) (*RGBAImage, error) {
	return CompositeOnto(img, mask, White)
}

func blend(c, bg uint8, keep, rest float64) uint8 {
	v := float64(c)*keep + float64(bg)*rest
	return clampUint8(math.Round(v))
}
