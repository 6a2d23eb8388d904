package imageutil

import "math"

// Default Canny thresholds, tuned for photos downscaled to a few hundred
// pixels on the long side.
const (
	CannyLowThreshold  = 50
	CannyHighThreshold = 150
)

// Canny performs Canny edge detection on a grayscale image.
// lowThreshold and highThreshold control edge sensitivity. The result is
// a binary map: 255 on edges, 0 elsewhere.
func Canny(gray *GrayImage, lowThreshold, highThreshold float64) *GrayImage {
	width, height := gray.Width(), gray.Height()
	if width == 0 || height == 0 {
		return NewGrayImage(width, height)
	}

	blurred := GaussianBlurGray(gray)
	gx := ConvolveGrayFloat(blurred, sobelXKernel)
	gy := ConvolveGrayFloat(blurred, sobelYKernel)

	magnitude := make([][]float64, height)
	for y := 0; y < height; y++ {
		magnitude[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			magnitude[y][x] = math.Hypot(gx[y][x], gy[y][x])
		}
	}

	suppressed := nonMaxSuppression(magnitude, gx, gy, width, height)
	return hysteresis(suppressed, lowThreshold, highThreshold, width, height)
}

// CannyDefault performs Canny edge detection with the default thresholds.
func CannyDefault(gray *GrayImage) *GrayImage {
	return Canny(gray, CannyLowThreshold, CannyHighThreshold)
}

// nonMaxSuppression keeps only pixels that are local maxima along the
// gradient direction, quantized to 0, 45, 90 or 135 degrees.
func nonMaxSuppression(magnitude, gx, gy [][]float64, width, height int) [][]float64 {
	suppressed := make([][]float64, height)
	for y := 0; y < height; y++ {
		suppressed[y] = make([]float64, width)
	}

	for y := 1; y < height-1; y++ {
		for x := 1; x < width-1; x++ {
			mag := magnitude[y][x]
			if mag == 0 {
				continue
			}

			angle := math.Atan2(gy[y][x], gx[y][x]) * 180.0 / math.Pi
			if angle < 0 {
				angle += 180
			}

			var q, r float64
			switch {
			case angle < 22.5 || angle >= 157.5:
				q, r = magnitude[y][x+1], magnitude[y][x-1]
			case angle < 67.5:
				q, r = magnitude[y+1][x+1], magnitude[y-1][x-1]
			case angle < 112.5:
				q, r = magnitude[y+1][x], magnitude[y-1][x]
			default:
				q, r = magnitude[y+1][x-1], magnitude[y-1][x+1]
			}

			if mag >= q && mag >= r {
				suppressed[y][x] = mag
			}
		}
	}

	return suppressed
}

// hysteresis keeps strong edges (>= high) and any weak edge (>= low) that
// is 8-connected to one, walking outward from every strong pixel.
func hysteresis(suppressed [][]float64, low, high float64, width, height int) *GrayImage {
	edges := NewGrayImage(width, height)
	stack := make([]int, 0, width)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if suppressed[y][x] >= high && edges.Gray.Pix[y*edges.Stride+x] == 0 {
				edges.Gray.Pix[y*edges.Stride+x] = 255
				stack = append(stack, y*width+x)
			}

			for len(stack) > 0 {
				p := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				px, py := p%width, p/width

				for dy := -1; dy <= 1; dy++ {
					for dx := -1; dx <= 1; dx++ {
						nx, ny := px+dx, py+dy
						if nx < 0 || ny < 0 || nx >= width || ny >= height {
							continue
						}
						i := ny*edges.Stride + nx
						if edges.Gray.Pix[i] == 0 && suppressed[ny][nx] >= low {
							edges.Gray.Pix[i] = 255
							stack = append(stack, ny*width+nx)
						}
					}
				}
			}
		}
	}

	return edges
}
