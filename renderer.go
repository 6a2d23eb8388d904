package asciiportrait

import (
	"fmt"
	"image"
	"strings"

	"github.com/wbrown/asciiportrait/imageutil"
)

// DefaultAspectCorrection compensates for monospace glyphs being roughly
// 1.8 to 2 times taller than they are wide. Without it the art comes out
// vertically stretched.
const DefaultAspectCorrection = 0.55

// Renderer converts images to ASCII Grids. A Renderer holds only its
// configuration, so rendering the same image twice yields identical text.
type Renderer struct {
	// Width is the number of characters per line.
	Width int
	// Ramp maps brightness to characters, light to dark.
	Ramp Ramp
	// AspectCorrection scales the line count to account for glyph shape.
	AspectCorrection float64
	// Interpolation is the filter used to resample the luminance grid.
	Interpolation imageutil.Interpolation
}

// RendererOption is a functional option for configuring a Renderer.
type RendererOption func(*Renderer)

// NewRenderer creates a new Renderer with the given options.
// Default values: Width=100, Ramp=DefaultRamp, AspectCorrection=0.55,
// Interpolation=bicubic.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		Width:            100,
		Ramp:             DefaultRamp,
		AspectCorrection: DefaultAspectCorrection,
		Interpolation:    imageutil.InterpolationBicubic,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// WithWidth sets the target width in characters.
func WithWidth(width int) RendererOption {
	return func(r *Renderer) {
		r.Width = width
	}
}

// WithRamp sets the character ramp.
func WithRamp(ramp Ramp) RendererOption {
	return func(r *Renderer) {
		r.Ramp = ramp
	}
}

// WithAspectCorrection sets the glyph aspect correction factor.
func WithAspectCorrection(factor float64) RendererOption {
	return func(r *Renderer) {
		r.AspectCorrection = factor
	}
}

// WithInterpolation sets the resampling filter.
func WithInterpolation(interp imageutil.Interpolation) RendererOption {
	return func(r *Renderer) {
		r.Interpolation = interp
	}
}

// GridHeight returns the number of lines for a source of the given size:
// floor(Width * (srcHeight/srcWidth) * AspectCorrection), but never less
// than one line, so very wide sources still produce a visible row.
func (r *Renderer) GridHeight(srcWidth, srcHeight int) (int, error) {
	if r.Width < 1 {
		return 0, fmt.Errorf("%w: output width %d", ErrInvalidDimensions, r.Width)
	}
	if srcWidth <= 0 || srcHeight <= 0 {
		return 0, fmt.Errorf("%w: image is %dx%d", ErrInvalidDimensions, srcWidth, srcHeight)
	}
	aspectRatio := float64(srcHeight) / float64(srcWidth)
	height := int(float64(r.Width) * aspectRatio * r.AspectCorrection)
	return max(1, height), nil
}

// Render converts img to a Grid. Color images are reduced to BT.601
// luminance first; the luminance grid is resampled to Width x GridHeight
// and each pixel becomes Ramp.Rune(intensity).
func (r *Renderer) Render(img image.Image) (*Grid, error) {
	if r.Ramp.Len() == 0 {
		return nil, ErrEmptyRamp
	}
	b := img.Bounds()
	height, err := r.GridHeight(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}

	gray := imageutil.PrepareLuminance(img, r.Width, height, r.Interpolation)

	lines := make([]string, height)
	var line strings.Builder
	for y := 0; y < height; y++ {
		line.Reset()
		row := gray.Pix[y*gray.Stride : y*gray.Stride+r.Width]
		for _, p := range row {
			line.WriteRune(r.Ramp.Rune(p))
		}
		lines[y] = line.String()
	}

	return &Grid{width: r.Width, height: height, lines: lines}, nil
}

// RenderFile decodes the image at path and renders it. A missing file
// yields a *NotFoundError, an undecodable one ErrDecode.
func (r *Renderer) RenderFile(path string) (*Grid, error) {
	img, err := openImage(path)
	if err != nil {
		return nil, err
	}
	return r.Render(img)
}
