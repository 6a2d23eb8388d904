// Package cvsegment implements segment.Segmenter on top of OpenCV via
// gocv: a U^2-Net salient-object network loaded through the DNN module,
// and classic GrabCut.
package cvsegment

import (
	"fmt"
	"image"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
	"gocv.io/x/gocv"
)

// matFromImage converts any image to an 8-bit, 3-channel BGR Mat. The
// caller owns the returned Mat.
func matFromImage(img image.Image) (gocv.Mat, error) {
	mat, err := gocv.ImageToMatRGB(imageutil.RGBAImageFromImage(img).RGBA)
	if err != nil {
		return gocv.NewMat(), fmt.Errorf("%w: failed to convert image: %w", segment.ErrSegment, err)
	}
	return mat, nil
}
