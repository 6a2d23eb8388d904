package asciiportrait

import (
	"context"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
)

var (
	backdrop = imageutil.RGB{R: 70, G: 140, B: 210}
	subject  = imageutil.RGB{R: 60, G: 30, B: 20}
)

type failingSegmenter struct{ err error }

func (f failingSegmenter) Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error) {
	return nil, f.err
}

type slowSegmenter struct{}

func (slowSegmenter) Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestNormalizeReplacesBackground(t *testing.T) {
	t.Parallel()

	img := imageutil.CreatePortraitImage(120, 90, backdrop, subject)
	out, err := NewNormalizer(nil).Normalize(context.Background(), img)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if out.Width() != 120 || out.Height() != 90 {
		t.Fatalf("Expected 120x90, got %dx%d", out.Width(), out.Height())
	}
	if !out.IsOpaque() {
		t.Error("Output should be opaque")
	}
	if got := out.GetRGB(2, 2); got != imageutil.White {
		t.Errorf("Expected white corner, got %v", got)
	}
	if got := out.GetRGB(60, 45); got != subject {
		t.Errorf("Expected subject at centre, got %v", got)
	}
}

func TestNormalizePassthroughFlattensAlpha(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	img.SetNRGBA(1, 1, color.NRGBA{R: 10, G: 20, B: 30, A: 255})

	out, err := NewNormalizer(segment.Passthrough{}).Normalize(context.Background(), img)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := out.GetRGB(0, 0); got != imageutil.White {
		t.Errorf("Transparent pixel should become white, got %v", got)
	}
	if got := out.GetRGB(1, 1); got != (imageutil.RGB{R: 10, G: 20, B: 30}) {
		t.Errorf("Opaque pixel should be kept, got %v", got)
	}
}

func TestNormalizeFeather(t *testing.T) {
	img := imageutil.CreatePortraitImage(120, 90, backdrop, subject)
	out, err := NewNormalizer(nil, WithFeather(2)).Normalize(context.Background(), img)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if got := out.GetRGB(2, 2); got != imageutil.White {
		t.Errorf("Expected white corner, got %v", got)
	}
}

func TestNormalizeSegmentError(t *testing.T) {
	img := imageutil.CreateGrayImage(10, 10, 100)
	_, err := NewNormalizer(failingSegmenter{err: errors.New("boom")}).Normalize(context.Background(), img)
	if !errors.Is(err, ErrSegment) {
		t.Errorf("Expected ErrSegment, got %v", err)
	}
}

func TestNormalizeTimeout(t *testing.T) {
	img := imageutil.CreateGrayImage(10, 10, 100)
	n := NewNormalizer(slowSegmenter{}, WithSegmentTimeout(10*time.Millisecond))
	_, err := n.Normalize(context.Background(), img)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline exceeded, got %v", err)
	}
}

func TestNormalizeFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "input_image.png")
	out := filepath.Join(dir, "output_no_background.png")
	if err := imageutil.SavePNG(imageutil.CreatePortraitImage(80, 60, backdrop, subject), in); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	if err := NewNormalizer(nil).NormalizeFile(context.Background(), in, out); err != nil {
		t.Fatalf("NormalizeFile failed: %v", err)
	}
	img, err := imageutil.LoadImage(out)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	if img.Width() != 80 || img.Height() != 60 {
		t.Errorf("Expected 80x60, got %dx%d", img.Width(), img.Height())
	}
}

func TestNormalizeFileMissing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.png")
	err := NewNormalizer(nil).NormalizeFile(context.Background(), filepath.Join(dir, "missing.jpg"), out)
	if !errors.Is(err, ErrInputNotFound) {
		t.Errorf("Expected ErrInputNotFound, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No output should be written for a missing input")
	}
}

func TestNormalizeFileSegmentErrorWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	if err := imageutil.SavePNG(imageutil.CreateGrayImage(8, 8, 50), in); err != nil {
		t.Fatal(err)
	}
	n := NewNormalizer(failingSegmenter{err: errors.New("boom")})
	if err := n.NormalizeFile(context.Background(), in, out); err == nil {
		t.Fatal("Expected an error")
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("No output should be written when segmentation fails")
	}
}
