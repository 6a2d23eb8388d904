package asciiportrait

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/wbrown/asciiportrait/imageutil"
)

func TestNewRendererDefaults(t *testing.T) {
	r := NewRenderer()
	if r.Width != 100 {
		t.Errorf("Expected Width=100, got %d", r.Width)
	}
	if r.Ramp.String() != " .:-=+*#%&@" {
		t.Errorf("Expected default ramp, got %q", r.Ramp.String())
	}
	if r.AspectCorrection != 0.55 {
		t.Errorf("Expected AspectCorrection=0.55, got %v", r.AspectCorrection)
	}
	if r.Interpolation != imageutil.InterpolationBicubic {
		t.Errorf("Expected bicubic, got %v", r.Interpolation)
	}
}

func TestRendererOptions(t *testing.T) {
	ramp := MustRamp("ab")
	r := NewRenderer(
		WithWidth(40),
		WithRamp(ramp),
		WithAspectCorrection(1),
		WithInterpolation(imageutil.InterpolationNearest),
	)
	if r.Width != 40 || r.Ramp.String() != "ab" || r.AspectCorrection != 1 ||
		r.Interpolation != imageutil.InterpolationNearest {
		t.Errorf("Options not applied: %+v", r)
	}
}

func TestRenderDimensions(t *testing.T) {
	t.Parallel()

	grid, err := NewRenderer().Render(imageutil.CreateGradientImage(200, 100))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// floor(100 * 0.5 * 0.55) = 27
	if grid.Height() != 27 {
		t.Errorf("Expected 27 lines, got %d", grid.Height())
	}
	if grid.Width() != 100 {
		t.Errorf("Expected width 100, got %d", grid.Width())
	}
	for i, line := range grid.Lines() {
		if n := utf8.RuneCountInString(line); n != 100 {
			t.Errorf("Line %d has %d characters, expected 100", i, n)
		}
	}
	if strings.HasSuffix(grid.String(), "\n") {
		t.Error("Grid text should not end with a newline")
	}
	if got := strings.Count(grid.String(), "\n"); got != 26 {
		t.Errorf("Expected 26 separators, got %d", got)
	}
}

func TestRenderOnlyRampCharacters(t *testing.T) {
	t.Parallel()

	ramp := MustRamp(" .:-=+*#%&@")
	img := imageutil.CreatePortraitImage(90, 60,
		imageutil.RGB{R: 200, G: 180, B: 40}, imageutil.RGB{R: 20, G: 90, B: 160})
	grid, err := NewRenderer(WithWidth(50), WithRamp(ramp)).Render(img)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, line := range grid.Lines() {
		for _, c := range line {
			if !ramp.Contains(c) {
				t.Fatalf("Character %q is not in the ramp", c)
			}
		}
	}
}

func TestRenderIdempotent(t *testing.T) {
	t.Parallel()

	r := NewRenderer(WithWidth(60))
	img := imageutil.CreateCheckerboardImage(120, 80, 10)
	first, err := r.Render(img)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render(img)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if first.String() != second.String() {
		t.Error("Rendering the same image twice gave different text")
	}
}

func TestRenderWhiteIsSpaces(t *testing.T) {
	t.Parallel()

	grid, err := NewRenderer(WithWidth(30)).Render(imageutil.CreateSolidImage(60, 40, imageutil.White))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, line := range grid.Lines() {
		if strings.Trim(line, " ") != "" {
			t.Fatalf("Line %d should be blank, got %q", i, line)
		}
	}
}

func TestRenderBlackIsDarkest(t *testing.T) {
	t.Parallel()

	grid, err := NewRenderer(WithWidth(30)).Render(imageutil.CreateSolidImage(60, 40, imageutil.RGB{}))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i, line := range grid.Lines() {
		if strings.Trim(line, "@") != "" {
			t.Fatalf("Line %d should be all '@', got %q", i, line)
		}
	}
}

func TestRenderMonotonic(t *testing.T) {
	t.Parallel()

	ramp := DefaultRamp
	r := NewRenderer(
		WithWidth(64),
		WithAspectCorrection(1),
		WithInterpolation(imageutil.InterpolationNearest),
	)
	// Black on the left, white on the right: indices must never increase.
	grid, err := r.Render(imageutil.CreateGradientImage(256, 16))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for _, line := range grid.Lines() {
		prev := ramp.Len()
		for _, c := range line {
			idx := strings.IndexRune(ramp.String(), c)
			if idx > prev {
				t.Fatalf("Brighter pixel got a darker character in %q", line)
			}
			prev = idx
		}
	}
}

func TestRenderTinyImage(t *testing.T) {
	grid, err := NewRenderer(WithWidth(1)).Render(imageutil.CreateGrayImage(1, 1, 0))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if grid.Width() != 1 || grid.Height() != 1 {
		t.Fatalf("Expected 1x1 grid, got %dx%d", grid.Width(), grid.Height())
	}
	if grid.String() != "@" {
		t.Errorf("Expected \"@\", got %q", grid.String())
	}
}

func TestRenderVeryWideImageKeepsOneLine(t *testing.T) {
	grid, err := NewRenderer(WithWidth(10)).Render(imageutil.CreateGrayImage(400, 2, 128))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if grid.Height() != 1 {
		t.Errorf("Expected a single line, got %d", grid.Height())
	}
}

func TestRenderSingleCharacterRamp(t *testing.T) {
	grid, err := NewRenderer(WithWidth(8), WithRamp(MustRamp("#"))).Render(imageutil.CreateGradientImage(16, 16))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if strings.Trim(grid.String(), "#\n") != "" {
		t.Errorf("Single-character ramp should only emit '#', got %q", grid.String())
	}
}

func TestRenderInvalidDimensions(t *testing.T) {
	img := imageutil.CreateGrayImage(10, 10, 0)
	if _, err := NewRenderer(WithWidth(0)).Render(img); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for width 0, got %v", err)
	}

	empty := image.NewRGBA(image.Rect(0, 0, 0, 5))
	if _, err := NewRenderer().Render(empty); !errors.Is(err, ErrInvalidDimensions) {
		t.Errorf("Expected ErrInvalidDimensions for zero-width image, got %v", err)
	}
}

func TestRenderEmptyRamp(t *testing.T) {
	_, err := NewRenderer(WithRamp(Ramp{})).Render(imageutil.CreateGrayImage(10, 10, 0))
	if !errors.Is(err, ErrEmptyRamp) {
		t.Errorf("Expected ErrEmptyRamp, got %v", err)
	}
}

func TestGridHeight(t *testing.T) {
	r := NewRenderer()
	tests := []struct {
		w, h int
		want int
	}{
		{200, 100, 27},
		{100, 100, 55},
		{100, 200, 110},
		{1000, 1, 1},
	}
	for _, tt := range tests {
		got, err := r.GridHeight(tt.w, tt.h)
		if err != nil {
			t.Errorf("GridHeight(%d, %d) failed: %v", tt.w, tt.h, err)
			continue
		}
		if got != tt.want {
			t.Errorf("GridHeight(%d, %d) = %d, want %d", tt.w, tt.h, got, tt.want)
		}
	}
}

func TestRenderFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gray.png")
	if err := imageutil.SavePNG(imageutil.CreateGrayImage(40, 20, 255), path); err != nil {
		t.Fatalf("SavePNG failed: %v", err)
	}

	grid, err := NewRenderer(WithWidth(20)).RenderFile(path)
	if err != nil {
		t.Fatalf("RenderFile failed: %v", err)
	}
	if grid.Width() != 20 || grid.Height() != 5 {
		t.Errorf("Expected 20x5 grid, got %dx%d", grid.Width(), grid.Height())
	}
}

func TestRenderFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.png")
	_, err := NewRenderer().RenderFile(path)
	if !errors.Is(err, ErrInputNotFound) {
		t.Fatalf("Expected ErrInputNotFound, got %v", err)
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Path != path {
		t.Errorf("Expected NotFoundError for %s, got %v", path, err)
	}
}

func TestRenderFileCorrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.png")
	if err := os.WriteFile(path, []byte("not an image"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := NewRenderer().RenderFile(path)
	if !errors.Is(err, ErrDecode) {
		t.Errorf("Expected ErrDecode, got %v", err)
	}
}

func TestGridWriteFile(t *testing.T) {
	grid, err := NewRenderer(WithWidth(4)).Render(imageutil.CreateGrayImage(8, 8, 255))
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := grid.WriteFile(path); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != grid.String() {
		t.Errorf("File content %q does not match grid %q", data, grid.String())
	}

	bad := filepath.Join(t.TempDir(), "no", "such", "dir", "out.txt")
	if err := grid.WriteFile(bad); !errors.Is(err, ErrEncode) {
		t.Errorf("Expected ErrEncode, got %v", err)
	}
}
