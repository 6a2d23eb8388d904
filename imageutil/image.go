// Package imageutil provides the pure Go image plumbing shared by the
// normalizer, renderer and segmenters: pixel-access wrappers, grayscale
// conversion, resampling, compositing, edge detection and file I/O.
package imageutil

import (
	"image"
	"image/color"
)

// RGB is an opaque 8-bit colour. Canvas colours, subject colours and
// test backdrops are all expressed this way.
type RGB struct {
	R, G, B uint8
}

// White is the canvas color the normalizer composites onto.
var White = RGB{R: 255, G: 255, B: 255}

// ToColor returns the fully opaque color.RGBA for rgb.
func (rgb RGB) ToColor() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// RGBAImage is a premultiplied RGBA raster anchored at the origin. The
// normalizer produces one and the segmenters read from one.
type RGBAImage struct {
	*image.RGBA
}

// NewRGBAImage returns a transparent width x height raster.
func NewRGBAImage(width, height int) *RGBAImage {
	return &RGBAImage{
		RGBA: image.NewRGBA(image.Rect(0, 0, width, height)),
	}
}

// RGBAImageFromImage copies img into a raster at the origin, so sub-images
// with offset bounds index from (0, 0). An *RGBAImage is returned as is.
func RGBAImageFromImage(img image.Image) *RGBAImage {
	if rgba, ok := img.(*RGBAImage); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := NewRGBAImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			rgba.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return rgba
}

// Width is the number of columns.
func (img *RGBAImage) Width() int {
	return img.Bounds().Dx()
}

// Height is the number of rows.
func (img *RGBAImage) Height() int {
	return img.Bounds().Dy()
}

// GetRGB drops alpha from the pixel at (x, y). On a composited,
// opaque image that is the visible colour.
func (img *RGBAImage) GetRGB(x, y int) RGB {
	c := img.RGBAAt(x, y)
	return RGB{R: c.R, G: c.G, B: c.B}
}

// SetRGB writes an opaque pixel at (x, y).
func (img *RGBAImage) SetRGB(x, y int, c RGB) {
	img.SetRGBA(x, y, c.ToColor())
}

// IsOpaque reports whether every pixel has full alpha.
func (img *RGBAImage) IsOpaque() bool {
	return img.RGBA.Opaque()
}

// GrayImage wraps image.Gray for single-channel images: luminance grids,
// edge maps and segmentation masks.
type GrayImage struct {
	*image.Gray
}

// NewGrayImage returns an all-black width x height grid.
func NewGrayImage(width, height int) *GrayImage {
	return &GrayImage{
		Gray: image.NewGray(image.Rect(0, 0, width, height)),
	}
}

// NewFilledGrayImage creates a GrayImage with every pixel set to v.
func NewFilledGrayImage(width, height int, v uint8) *GrayImage {
	img := NewGrayImage(width, height)
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// GrayImageFromImage reduces img to one channel at the origin. Feathered
// masks come back from imaging as NRGBA and pass through here.
func GrayImageFromImage(img image.Image) *GrayImage {
	if gray, ok := img.(*GrayImage); ok {
		return gray
	}
	bounds := img.Bounds()
	gray := NewGrayImage(bounds.Dx(), bounds.Dy())

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			gray.Set(x-bounds.Min.X, y-bounds.Min.Y, img.At(x, y))
		}
	}
	return gray
}

func (img *GrayImage) Width() int {
	return img.Bounds().Dx()
}

func (img *GrayImage) Height() int {
	return img.Bounds().Dy()
}

// GetGray returns the intensity or mask coverage at (x, y).
func (img *GrayImage) GetGray(x, y int) uint8 {
	return img.GrayAt(x, y).Y
}

// SetGrayValue writes v at (x, y).
func (img *GrayImage) SetGrayValue(x, y int, v uint8) {
	img.Gray.SetGray(x, y, color.Gray{Y: v})
}

// Clone returns an independent copy, so callers may write to the result.
func (img *GrayImage) Clone() *GrayImage {
	clone := NewGrayImage(img.Width(), img.Height())
	copy(clone.Pix, img.Pix)
	return clone
}
