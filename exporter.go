package asciiportrait

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/golang/freetype"
	"github.com/golang/freetype/truetype"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/asciiportrait/imageutil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/math/fixed"
)

// BasicFont selects the fixed 7x13 bitmap face instead of a TrueType font.
const BasicFont = "basic"

// Exporter rasterizes monospace text into an image, one glyph per grid
// cell, uniform colours and no line numbers.
type Exporter struct {
	// FontPath is a TTF file, "" for the embedded Go Mono font or
	// BasicFont for the 7x13 bitmap face.
	FontPath string
	// FontSize is in points. Ignored for BasicFont.
	FontSize float64
	// DPI is the rasterization resolution. Ignored for BasicFont.
	DPI float64
	// Padding is the margin around the text, in pixels.
	Padding int
	// LinePad is the extra space between lines, in pixels.
	LinePad int
	// Foreground and Background are hex colours such as "#f8f8f8".
	Foreground string
	Background string

	face    font.Face
	fg, bg  color.RGBA
	advance int
	ascent  int
	lineH   int
}

// ExporterOption is a functional option for configuring an Exporter.
type ExporterOption func(*Exporter)

// NewExporter creates an Exporter and loads its font face.
// Default values: Go Mono at 14pt, 72 DPI, Padding=10, LinePad=2,
// Foreground=#000000, Background=#f8f8f8.
func NewExporter(opts ...ExporterOption) (*Exporter, error) {
	e := &Exporter{
		FontSize:   14,
		DPI:        72,
		Padding:    10,
		LinePad:    2,
		Foreground: "#000000",
		Background: "#f8f8f8",
	}

	for _, opt := range opts {
		opt(e)
	}

	if e.Padding < 0 || e.LinePad < 0 {
		return nil, fmt.Errorf("%w: negative padding", ErrInvalidDimensions)
	}
	fg, err := parseHexColor(e.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := parseHexColor(e.Background)
	if err != nil {
		return nil, err
	}
	e.fg, e.bg = fg, bg

	face, err := loadFace(e.FontPath, e.FontSize, e.DPI)
	if err != nil {
		return nil, err
	}
	e.face = face

	metrics := face.Metrics()
	e.ascent = metrics.Ascent.Ceil()
	e.lineH = metrics.Height.Ceil()
	adv, ok := face.GlyphAdvance('M')
	if !ok || adv.Ceil() <= 0 {
		face.Close()
		return nil, fmt.Errorf("%w: font has no advance for 'M'", ErrFont)
	}
	e.advance = adv.Ceil()

	return e, nil
}

// WithFontPath sets the font: a TTF path, "" or BasicFont.
func WithFontPath(path string) ExporterOption {
	return func(e *Exporter) {
		e.FontPath = path
	}
}

// WithFontSize sets the font size in points.
func WithFontSize(size float64) ExporterOption {
	return func(e *Exporter) {
		e.FontSize = size
	}
}

// WithDPI sets the rasterization resolution.
func WithDPI(dpi float64) ExporterOption {
	return func(e *Exporter) {
		e.DPI = dpi
	}
}

// WithPadding sets the margin around the text.
func WithPadding(px int) ExporterOption {
	return func(e *Exporter) {
		e.Padding = px
	}
}

// WithLinePad sets the extra space between lines.
func WithLinePad(px int) ExporterOption {
	return func(e *Exporter) {
		e.LinePad = px
	}
}

// WithColors sets the foreground and background hex colours.
func WithColors(fg, bg string) ExporterOption {
	return func(e *Exporter) {
		e.Foreground = fg
		e.Background = bg
	}
}

func parseHexColor(s string) (color.RGBA, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q: %w", ErrInvalidColor, s, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// loadFace returns the bitmap face, the embedded Go Mono face or a face
// parsed from a TTF file.
func loadFace(path string, size, dpi float64) (font.Face, error) {
	if path == BasicFont {
		return basicfont.Face7x13, nil
	}
	if size <= 0 || dpi <= 0 {
		return nil, fmt.Errorf("%w: size %.1fpt at %.0f DPI", ErrFont, size, dpi)
	}

	data := gomono.TTF
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read font: %w", ErrFont, err)
		}
		data = b
	}

	ttf, err := freetype.ParseFont(data)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse font: %w", ErrFont, err)
	}

	return truetype.NewFace(ttf, &truetype.Options{
		Size:    size,
		DPI:     dpi,
		Hinting: font.HintingFull,
	}), nil
}

// CellSize returns the width and height of one character cell, line
// padding included.
func (e *Exporter) CellSize() (int, int) {
	return e.advance, e.lineH + e.LinePad
}

// Export draws text onto a new canvas sized to fit it:
//
//	width  = 2*Padding + maxColumns*advance
//	height = 2*Padding + lines*(lineHeight+LinePad)
//
// A single trailing newline does not produce an extra line.
func (e *Exporter) Export(text string) (*image.RGBA, error) {
	lines := strings.Split(strings.TrimSuffix(text, "\n"), "\n")
	cols := 0
	for _, line := range lines {
		cols = max(cols, utf8.RuneCountInString(line))
	}

	cellW, cellH := e.CellSize()
	width := max(1, 2*e.Padding+cols*cellW)
	height := max(1, 2*e.Padding+len(lines)*cellH)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(e.bg), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(e.fg),
		Face: e.face,
	}
	for row, line := range lines {
		y := e.Padding + row*cellH + e.ascent
		col := 0
		for _, c := range line {
			// Each glyph is placed on its own cell so proportional
			// fonts still line up in columns.
			d.Dot = fixed.P(e.Padding+col*cellW, y)
			d.DrawString(string(c))
			col++
		}
	}

	return img, nil
}

// ExportFile reads the text at textPath and writes its rendering to
// pngPath. A missing text file yields a *NotFoundError; nothing is
// written on failure.
func (e *Exporter) ExportFile(textPath, pngPath string) error {
	data, err := os.ReadFile(textPath)
	if err != nil {
		return notFound(textPath, fmt.Errorf("failed to read text: %w", err))
	}
	img, err := e.Export(string(data))
	if err != nil {
		return err
	}
	return imageutil.SavePNG(img, pngPath)
}

// Close releases the font face.
func (e *Exporter) Close() error {
	if e.face == nil {
		return nil
	}
	return e.face.Close()
}
