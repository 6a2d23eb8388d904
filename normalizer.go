package asciiportrait

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
)

// Normalizer removes a photo's background and puts the subject on opaque
// white, keeping the original dimensions.
type Normalizer struct {
	// Segmenter produces the foreground mask.
	Segmenter segment.Segmenter
	// FeatherSigma blurs the mask edge; 0 keeps it hard.
	FeatherSigma float64
	// SegmentTimeout bounds the segmentation step; 0 means no limit.
	SegmentTimeout time.Duration
}

// NormalizerOption is a functional option for configuring a Normalizer.
type NormalizerOption func(*Normalizer)

// NewNormalizer creates a Normalizer around seg. A nil seg uses the
// edge-based segmenter with its defaults.
func NewNormalizer(seg segment.Segmenter, opts ...NormalizerOption) *Normalizer {
	if seg == nil {
		seg = segment.NewEdgeSegmenter()
	}
	n := &Normalizer{Segmenter: seg}

	for _, opt := range opts {
		opt(n)
	}

	return n
}

// WithFeather sets the mask blur sigma.
func WithFeather(sigma float64) NormalizerOption {
	return func(n *Normalizer) {
		n.FeatherSigma = sigma
	}
}

// WithSegmentTimeout bounds how long segmentation may run.
func WithSegmentTimeout(d time.Duration) NormalizerOption {
	return func(n *Normalizer) {
		n.SegmentTimeout = d
	}
}

// Normalize segments img and composites the foreground onto white.
func (n *Normalizer) Normalize(ctx context.Context, img image.Image) (*imageutil.RGBAImage, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrInvalidDimensions, b.Dx(), b.Dy())
	}

	segCtx := ctx
	if n.SegmentTimeout > 0 {
		var cancel context.CancelFunc
		segCtx, cancel = context.WithTimeout(ctx, n.SegmentTimeout)
		defer cancel()
	}

	mask, err := n.Segmenter.Segment(segCtx, img)
	if err != nil {
		if errors.Is(err, ErrSegment) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrSegment, err)
	}
	mask = segment.Feather(mask, n.FeatherSigma)

	out, err := imageutil.CompositeOnWhite(img, mask)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSegment, err)
	}
	return out, nil
}

// NormalizeFile reads the photo at inPath and writes the normalized PNG
// to outPath. Nothing is written when any step fails.
func (n *Normalizer) NormalizeFile(ctx context.Context, inPath, outPath string) error {
	img, err := openImage(inPath)
	if err != nil {
		return err
	}
	out, err := n.Normalize(ctx, img)
	if err != nil {
		return err
	}
	return imageutil.SavePNG(out, outPath)
}
