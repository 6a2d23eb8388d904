package imageutil

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// Interpolation specifies the interpolation method for resizing.
type Interpolation int

const (
	// InterpolationBicubic uses Catmull-Rom, a bicubic kernel whose support
	// widens when downscaling. This is the closest match to the bicubic
	// default of common image libraries.
	InterpolationBicubic Interpolation = iota

	// InterpolationLinear uses bilinear interpolation.
	InterpolationLinear

	// InterpolationNearest uses nearest-neighbor interpolation.
	// Fastest but lowest quality.
	InterpolationNearest
)

// String returns the name accepted by ParseInterpolation.
func (i Interpolation) String() string {
	switch i {
	case InterpolationLinear:
		return "bilinear"
	case InterpolationNearest:
		return "nearest"
	default:
		return "bicubic"
	}
}

// ParseInterpolation maps a configuration name onto an Interpolation.
// The empty string selects the bicubic default.
func ParseInterpolation(name string) (Interpolation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "bicubic", "cubic", "catmullrom":
		return InterpolationBicubic, nil
	case "bilinear", "linear":
		return InterpolationLinear, nil
	case "nearest", "nearestneighbor":
		return InterpolationNearest, nil
	}
	return InterpolationBicubic, fmt.Errorf("unknown interpolation %q", name)
}

func (i Interpolation) scaler() draw.Scaler {
	switch i {
	case InterpolationLinear:
		return draw.BiLinear
	case InterpolationNearest:
		return draw.NearestNeighbor
	default:
		return draw.CatmullRom
	}
}

// Resize resizes an RGBA image to the specified dimensions using the
// given interpolation method.
func Resize(img *RGBAImage, width, height int, interp Interpolation) *RGBAImage {
	dst := NewRGBAImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	interp.scaler().Scale(dst.RGBA, dstRect, img.RGBA, img.Bounds(), draw.Src, nil)
	return dst
}

// ResizeGray resizes a grayscale image to the specified dimensions.
func ResizeGray(img *GrayImage, width, height int, interp Interpolation) *GrayImage {
	dst := NewGrayImage(width, height)
	dstRect := image.Rect(0, 0, width, height)
	interp.scaler().Scale(dst.Gray, dstRect, img.Gray, img.Bounds(), draw.Src, nil)
	return dst
}

// FitWithin returns the largest size with the same aspect ratio as
// (width, height) whose longer side does not exceed maxSide. Sizes that
// already fit are returned unchanged.
func FitWithin(width, height, maxSide int) (int, int) {
	if maxSide <= 0 || (width <= maxSide && height <= maxSide) {
		return width, height
	}
	if width >= height {
		h := max(1, height*maxSide/width)
		return maxSide, h
	}
	w := max(1, width*maxSide/height)
	return w, maxSide
}
