package imageutil

import "image"

// PrepareLuminance prepares an image for brightness-to-character mapping.
//
// The function:
// 1. Converts the image to single-channel BT.601 luminance
// 2. Resamples the luminance grid to exactly width x height
//
// Converting before resampling keeps the filter working on the same
// values the character lookup reads, so a uniform input stays uniform.
//
// Parameters:
//   - img: The input image (color or grayscale)
//   - width: Target width in characters
//   - height: Target height in characters
//   - interp: Resampling filter
//
// Returns:
//   - A width x height luminance grid
func PrepareLuminance(img image.Image, width, height int, interp Interpolation) *GrayImage {
	gray := LuminanceImage(img)
	if gray.Width() == width && gray.Height() == height {
		return gray
	}
	return ResizeGray(gray, width, height, interp)
}

// DetectEdges performs Canny edge detection on an image.
//
// Parameters:
//   - img: The input image
//
// Returns:
//   - edges: Binary edge map at the same size as input
func DetectEdges(img *RGBAImage) *GrayImage {
	gray := ToGrayscale(img)
	return CannyDefault(gray)
}
