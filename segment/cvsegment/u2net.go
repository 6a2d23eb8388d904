package cvsegment

import (
	"context"
	"fmt"
	"image"
	"math"
	"os"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
	"gocv.io/x/gocv"
)

// U2NetInputSize is the square input resolution of the U^2-Net models.
const U2NetInputSize = 320

// ImageNet normalization the U^2-Net family was trained with. OpenCV's
// blob API takes a single scale, so the three channel deviations are
// folded into their mean.
var (
	u2netMean = gocv.NewScalar(0.485*255, 0.456*255, 0.406*255, 0)
	u2netStd  = (0.229 + 0.224 + 0.225) / 3
)

// U2Net segments with a U^2-Net ONNX model (u2net.onnx, u2netp.onnx or
// u2net_human_seg.onnx). The network's first output is a saliency map,
// which is min-max normalized and scaled back to the source size.
type U2Net struct {
	net gocv.Net
}

// NewU2Net loads the ONNX model at modelPath. Close releases it.
func NewU2Net(modelPath string) (*U2Net, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("%w: model not available: %w", segment.ErrSegment, err)
	}
	net := gocv.ReadNetFromONNX(modelPath)
	if net.Empty() {
		net.Close()
		return nil, fmt.Errorf("%w: failed to load model %s", segment.ErrSegment, modelPath)
	}
	return &U2Net{net: net}, nil
}

// Close releases the network.
func (u *U2Net) Close() error {
	return u.net.Close()
}

// Segment implements segment.Segmenter.
func (u *U2Net) Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error) {
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", segment.ErrSegment, b.Dx(), b.Dy())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	src, err := matFromImage(img)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	blob := gocv.BlobFromImage(src, 1.0/(255*u2netStd),
		image.Pt(U2NetInputSize, U2NetInputSize), u2netMean, true, false)
	defer blob.Close()

	u.net.SetInput(blob, "")
	out := u.net.Forward("")
	defer out.Close()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pred, err := out.DataPtrFloat32()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read network output: %w", segment.ErrSegment, err)
	}
	if len(pred) < U2NetInputSize*U2NetInputSize {
		return nil, fmt.Errorf("%w: unexpected output size %d", segment.ErrSegment, len(pred))
	}

	saliency := normalizePrediction(pred[:U2NetInputSize*U2NetInputSize], U2NetInputSize)
	return imageutil.ResizeGray(saliency, b.Dx(), b.Dy(), imageutil.InterpolationLinear), nil
}

// normalizePrediction min-max scales a size x size saliency map to [0,255].
func normalizePrediction(pred []float32, size int) *imageutil.GrayImage {
	lo, hi := float32(math.MaxFloat32), float32(-math.MaxFloat32)
	for _, v := range pred {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	span := hi - lo

	mask := imageutil.NewGrayImage(size, size)
	if span <= 0 {
		return mask
	}
	for i, v := range pred {
		mask.Pix[i] = uint8(math.Round(float64((v - lo) / span * 255)))
	}
	return mask
}
