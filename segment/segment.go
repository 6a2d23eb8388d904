// Package segment separates a photo's subject from its background.
//
// A Segmenter returns a foreground mask the same size as its input:
// 255 where the subject is, 0 where the background is, and intermediate
// values for partial coverage. The normalizer composites the source onto
// white through that mask.
package segment

import (
	"context"
	"errors"
	"image"

	"github.com/disintegration/imaging"
	"github.com/wbrown/asciiportrait/imageutil"
)

// ErrSegment marks a failure inside a segmenter.
var ErrSegment = errors.New("segmentation failed")

// Segmenter produces a foreground mask for an image.
type Segmenter interface {
	Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error)
}

// Passthrough keeps every pixel. Paired with the normalizer it only
// flattens an existing alpha channel onto white, which suits inputs that
// were cut out beforehand.
type Passthrough struct{}

// Segment returns a fully opaque mask.
func (Passthrough) Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := img.Bounds()
	return imageutil.NewFilledGrayImage(b.Dx(), b.Dy(), 255), nil
}

// Feather softens mask edges with a Gaussian blur of the given sigma so
// the composite has no hard cut-out halo. A sigma <= 0 returns the mask
// unchanged.
func Feather(mask *imageutil.GrayImage, sigma float64) *imageutil.GrayImage {
	if sigma <= 0 || mask == nil {
		return mask
	}
	return imageutil.GrayImageFromImage(imaging.Blur(mask.Gray, sigma))
}
