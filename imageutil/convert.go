package imageutil

import "image"

// ToGrayscale converts an RGBA image to grayscale using the standard
// luminance formula: Y = 0.299*R + 0.587*G + 0.114*B
// This is the ITU-R BT.601 weighting most image libraries use for
// single-channel ("L") conversion.
func ToGrayscale(img *RGBAImage) *GrayImage {
	width, height := img.Width(), img.Height()
	gray := NewGrayImage(width, height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := img.RGBAAt(x, y)
			gray.Gray.Pix[y*gray.Stride+x] = Luminance(c.R, c.G, c.B)
		}
	}

	return gray
}

// Luminance returns the BT.601 luma of an 8-bit RGB triple, using integer
// math scaled by 1000 and rounded to nearest.
func Luminance(r, g, b uint8) uint8 {
	lum := (299*int(r) + 587*int(g) + 114*int(b) + 500) / 1000
	if lum > 255 {
		lum = 255
	}
	return uint8(lum)
}

// LuminanceImage converts any image to a luminance grid. Images that are
// already single-channel are copied without reweighting.
func LuminanceImage(img image.Image) *GrayImage {
	switch src := img.(type) {
	case *GrayImage:
		return src.Clone()
	case *image.Gray:
		return GrayImageFromImage(src)
	}
	return ToGrayscale(RGBAImageFromImage(img))
}
