package cvsegment

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
)

var (
	_ segment.Segmenter = (*U2Net)(nil)
	_ segment.Segmenter = (*GrabCut)(nil)
)

func TestNewU2NetMissingModel(t *testing.T) {
	_, err := NewU2Net(filepath.Join(t.TempDir(), "u2net.onnx"))
	if !errors.Is(err, segment.ErrSegment) {
		t.Errorf("Expected ErrSegment, got %v", err)
	}
}

func TestNormalizePrediction(t *testing.T) {
	pred := []float32{-1, 0, 1, 3}
	mask := normalizePrediction(pred, 2)
	want := []uint8{0, 64, 128, 255}
	for i, w := range want {
		if mask.Pix[i] != w {
			t.Errorf("Pix[%d] = %d, want %d", i, mask.Pix[i], w)
		}
	}

	flat := normalizePrediction([]float32{0.5, 0.5, 0.5, 0.5}, 2)
	for _, v := range flat.Pix {
		if v != 0 {
			t.Fatal("Flat prediction should yield an empty mask")
		}
	}
}

func TestInsetRect(t *testing.T) {
	r := insetRect(200, 100, 0.05)
	if r.Min.X != 10 || r.Min.Y != 5 || r.Max.X != 190 || r.Max.Y != 95 {
		t.Errorf("Unexpected rect %v", r)
	}
	if !insetRect(2, 2, 0.05).Empty() {
		t.Error("Tiny images leave no room for a foreground rectangle")
	}
}

func TestGrabCutPortrait(t *testing.T) {
	img := imageutil.CreatePortraitImage(120, 90,
		imageutil.RGB{R: 70, G: 140, B: 210}, imageutil.RGB{R: 60, G: 30, B: 20})

	mask, err := NewGrabCut().Segment(context.Background(), img)
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if mask.GetGray(0, 0) != 0 {
		t.Error("Corner should be background")
	}
	if mask.GetGray(60, 45) != 255 {
		t.Error("Center should be foreground")
	}
}

func TestGrabCutTooSmall(t *testing.T) {
	_, err := NewGrabCut().Segment(context.Background(), imageutil.CreateGrayImage(2, 2, 0))
	if !errors.Is(err, segment.ErrSegment) {
		t.Errorf("Expected ErrSegment, got %v", err)
	}
}
