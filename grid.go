package asciiportrait

import (
	"io"
	"strings"

	"github.com/wbrown/asciiportrait/imageutil"
)

// Grid is rendered ASCII art: Height lines of exactly Width characters
// each, in row-major order. A Grid is never modified after rendering.
type Grid struct {
	width  int
	height int
	lines  []string
}

// Width returns the number of characters per line.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of lines.
func (g *Grid) Height() int {
	return g.height
}

// Line returns line i.
func (g *Grid) Line(i int) string {
	return g.lines[i]
}

// Lines returns a copy of the lines.
func (g *Grid) Lines() []string {
	return append([]string(nil), g.lines...)
}

// String joins the lines with "\n", without a trailing newline.
func (g *Grid) String() string {
	return strings.Join(g.lines, "\n")
}

// WriteTo writes the text form of the grid to w.
func (g *Grid) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}

// WriteFile writes the text form of the grid to path, overwriting any
// existing file. Failures wrap ErrEncode.
func (g *Grid) WriteFile(path string) error {
	return imageutil.WriteFile(path, []byte(g.String()))
}
