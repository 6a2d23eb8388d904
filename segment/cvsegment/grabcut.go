package cvsegment

import (
	"context"
	"fmt"
	"image"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
	"gocv.io/x/gocv"
)

// GrabCut mask labels.
const (
	gcBackground         = 0
	gcForeground         = 1
	gcProbableBackground = 2
	gcProbableForeground = 3
)

// GrabCut segments with OpenCV's GrabCut, seeded with a rectangle inset
// from the border by Margin (a fraction of each side).
type GrabCut struct {
	Iterations int
	Margin     float64
}

// NewGrabCut creates a GrabCut segmenter. Defaults: 5 iterations, 5% margin.
func NewGrabCut() *GrabCut {
	return &GrabCut{Iterations: 5, Margin: 0.05}
}

// Segment implements segment.Segmenter.
func (g *GrabCut) Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	rect := insetRect(width, height, g.Margin)
	if rect.Empty() {
		return nil, fmt.Errorf("%w: image %dx%d too small for grabcut", segment.ErrSegment, width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := matFromImage(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	labels := gocv.NewMat()
	defer labels.Close()
	bgdModel := gocv.NewMat()
	defer bgdModel.Close()
	fgdModel := gocv.NewMat()
	defer fgdModel.Close()

	gocv.GrabCut(src, &labels, rect, &bgdModel, &fgdModel, max(1, g.Iterations), gocv.GCInitWithRect)

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if labels.Rows() != height || labels.Cols() != width {
		return nil, fmt.Errorf("%w: grabcut returned %dx%d labels", segment.ErrSegment, labels.Cols(), labels.Rows())
	}

	mask := imageutil.NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			switch labels.GetUCharAt(y, x) {
			case gcForeground, gcProbableForeground:
				mask.Gray.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask, nil
}

// insetRect returns the image rectangle shrunk by margin on every side,
// keeping at least one pixel of border so GrabCut has background samples.
func insetRect(width, height int, margin float64) image.Rectangle {
	dx := max(1, int(float64(width)*margin))
	dy := max(1, int(float64(height)*margin))
	if width-2*dx <= 0 || height-2*dy <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(dx, dy, width-dx, height-dy)
}
