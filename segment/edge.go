package segment

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/wbrown/asciiportrait/imageutil"
)

// EdgeSegmenter treats the photo's border as background. It estimates the
// background color from the border pixels, then flood-fills inward from
// the border through pixels whose Lab distance to that color is within
// Tolerance, stopping at Canny edges. Everything the fill cannot reach is
// foreground.
//
// It needs no model and works well for portraits shot against a plain
// backdrop; busy backgrounds call for the gocv segmenters.
type EdgeSegmenter struct {
	// Tolerance is the CIE76 distance in go-colorful Lab units
	// (L in [0,1]), so 0.12 is roughly a delta E of 12.
	Tolerance float64
	// MaxSide bounds the working resolution; larger images are segmented
	// on a downscaled copy and the mask is scaled back up bilinearly.
	MaxSide int
	// BorderWidth is how many pixels deep the background sample reaches.
	BorderWidth int
}

// EdgeOption configures an EdgeSegmenter.
type EdgeOption func(*EdgeSegmenter)

// NewEdgeSegmenter creates an EdgeSegmenter with the given options.
// Defaults: Tolerance=0.12, MaxSide=512, BorderWidth=2.
func NewEdgeSegmenter(opts ...EdgeOption) *EdgeSegmenter {
	s := &EdgeSegmenter{
		Tolerance:   0.12,
		MaxSide:     512,
		BorderWidth: 2,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// WithTolerance sets the background color distance tolerance.
func WithTolerance(tol float64) EdgeOption {
	return func(s *EdgeSegmenter) {
		s.Tolerance = tol
	}
}

// WithMaxSide sets the working resolution bound (0 disables downscaling).
func WithMaxSide(side int) EdgeOption {
	return func(s *EdgeSegmenter) {
		s.MaxSide = side
	}
}

// Segment implements Segmenter.
func (s *EdgeSegmenter) Segment(ctx context.Context, img image.Image) (*imageutil.GrayImage, error) {
	src := imageutil.RGBAImageFromImage(img)
	width, height := src.Width(), src.Height()
	if width == 0 || height == 0 {
		return nil, fmt.Errorf("%w: image is %dx%d", ErrSegment, width, height)
	}

	work := src
	sw, sh := imageutil.FitWithin(width, height, s.MaxSide)
	if sw != width || sh != height {
		work = imageutil.Resize(src, sw, sh, imageutil.InterpolationLinear)
	}

	background := s.estimateBackground(work)
	edges := imageutil.DetectEdges(work)

	mask, err := s.flood(ctx, work, edges, background)
	if err != nil {
		return nil, err
	}

	if sw != width || sh != height {
		mask = imageutil.ResizeGray(mask, width, height, imageutil.InterpolationLinear)
	}
	return mask, nil
}

// backgroundClusters is how many colour clusters the border band is
// split into before the heaviest one is taken as the background.
const backgroundClusters = 4

// edgeReclaimPasses bounds how far the fill may grow into edge pixels.
const edgeReclaimPasses = 2

// estimateBackground returns the heaviest colour cluster of the border
// band. The band is packed into a roughly square tile because
// dominantcolor shrinks its input to fit 256x256 and a one-pixel strip
// would collapse to zero rows.
func (s *EdgeSegmenter) estimateBackground(img *imageutil.RGBAImage) colorful.Color {
	border := borderPixels(img, max(1, s.BorderWidth))
	tile := packPixels(border)

	var best dominantcolor.Color
	for _, c := range dominantcolor.FindWeight(tile, backgroundClusters) {
		if c.Weight > best.Weight {
			best = c
		}
	}
	if best.Weight == 0 {
		return meanColor(border)
	}
	bg, _ := colorful.MakeColor(best.RGBA)
	return bg
}

// packPixels lays pixels out row by row in an opaque square-ish image.
// Cells past the end repeat the sequence from the start.
func packPixels(pixels []color.RGBA) *image.NRGBA {
	n := len(pixels)
	side := int(math.Ceil(math.Sqrt(float64(n))))
	rows := (n + side - 1) / side
	tile := image.NewNRGBA(image.Rect(0, 0, side, rows))
	for i := 0; i < side*rows; i++ {
		c := pixels[i%n]
		tile.SetNRGBA(i%side, i/side, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
	}
	return tile
}

func meanColor(pixels []color.RGBA) colorful.Color {
	var r, g, b float64
	for _, c := range pixels {
		r += float64(c.R)
		g += float64(c.G)
		b += float64(c.B)
	}
	n := float64(len(pixels)) * 255
	return colorful.Color{R: r / n, G: g / n, B: b / n}
}

// flood marks background pixels reachable from the border and returns
// the inverse as a foreground mask.
func (s *EdgeSegmenter) flood(
	ctx context.Context,
	img *imageutil.RGBAImage,
	edges *imageutil.GrayImage,
	background colorful.Color,
) (*imageutil.GrayImage, error) {
	width, height := img.Width(), img.Height()
	visited := make([]bool, width*height)

	near := func(x, y int) bool {
		c, _ := colorful.MakeColor(img.RGBAAt(x, y))
		return c.DistanceCIE76(background) <= s.Tolerance
	}
	isEdge := func(x, y int) bool {
		return edges.Gray.Pix[y*edges.Stride+x] != 0
	}
	passable := func(x, y int) bool {
		return !isEdge(x, y) && near(x, y)
	}

	queue := make([]int, 0, 2*(width+height))
	seed := func(x, y int) {
		i := y*width + x
		if !visited[i] && passable(x, y) {
			visited[i] = true
			queue = append(queue, i)
		}
	}
	for x := 0; x < width; x++ {
		seed(x, 0)
		seed(x, height-1)
	}
	for y := 0; y < height; y++ {
		seed(0, y)
		seed(width-1, y)
	}

	for steps := 0; len(queue) > 0; steps++ {
		if steps%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		i := queue[0]
		queue = queue[1:]
		x, y := i%width, i/width
		if x > 0 {
			seed(x-1, y)
		}
		if x < width-1 {
			seed(x+1, y)
		}
		if y > 0 {
			seed(x, y-1)
		}
		if y < height-1 {
			seed(x, y+1)
		}
	}

	// Canny lines sit on both sides of a step, so the fill stops one or
	// two pixels short of the subject. Background-coloured edge pixels
	// touching the fill are reclaimed, one ring per pass.
	for pass := 0; pass < edgeReclaimPasses; pass++ {
		var reclaimed []int
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				i := y*width + x
				if visited[i] || !isEdge(x, y) || !near(x, y) {
					continue
				}
				if (x > 0 && visited[i-1]) || (x < width-1 && visited[i+1]) ||
					(y > 0 && visited[i-width]) || (y < height-1 && visited[i+width]) {
					reclaimed = append(reclaimed, i)
				}
			}
		}
		if len(reclaimed) == 0 {
			break
		}
		for _, i := range reclaimed {
			visited[i] = true
		}
	}

	mask := imageutil.NewGrayImage(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if !visited[y*width+x] {
				mask.Gray.Pix[y*mask.Stride+x] = 255
			}
		}
	}
	return mask, nil
}

// borderPixels collects every pixel within depth of the image edge.
func borderPixels(img *imageutil.RGBAImage, depth int) []color.RGBA {
	width, height := img.Width(), img.Height()
	depth = min(depth, (width+1)/2, (height+1)/2)
	pixels := make([]color.RGBA, 0, 2*depth*(width+height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if x < depth || y < depth || x >= width-depth || y >= height-depth {
				pixels = append(pixels, img.RGBAAt(x, y))
			}
		}
	}
	return pixels
}
