// Package asciiportrait turns a photo into ASCII art.
//
// The work happens in three stages, each reading the previous stage's
// output file:
//
//  1. Normalizer: removes the background and composites the subject onto
//     white.
//  2. Renderer: maps the brightness of each region onto a light-to-dark
//     character ramp, producing a rectangular text Grid.
//  3. Exporter: rasterizes the text into a PNG with a monospace font.
//
// Pipeline runs the stages in order and stops at the first failure.
package asciiportrait

import (
	"errors"
	"fmt"
	"image"
	"io/fs"

	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
)

var (
	// ErrInputNotFound is returned when a stage's input file is missing.
	ErrInputNotFound = errors.New("input not found")
	// ErrDecode is returned for unreadable or corrupt images.
	ErrDecode = imageutil.ErrDecode
	// ErrInvalidDimensions is returned for zero-sized images or an output
	// width below one.
	ErrInvalidDimensions = errors.New("invalid dimensions")
	// ErrEmptyRamp is returned when the character ramp has no characters.
	ErrEmptyRamp = errors.New("empty ramp")
	// ErrInvalidRamp is returned for ramps with repeated or unprintable
	// characters.
	ErrInvalidRamp = errors.New("invalid ramp")
	// ErrEncode is returned when an output cannot be encoded or written.
	ErrEncode = imageutil.ErrEncode
	// ErrFont is returned when the exporter's font cannot be loaded.
	ErrFont = errors.New("font error")
	// ErrInvalidColor is returned for malformed hex colours.
	ErrInvalidColor = errors.New("invalid colour")
	// ErrSegment is returned when background segmentation fails.
	ErrSegment = segment.ErrSegment
)

// NotFoundError records which input file was missing. It matches
// ErrInputNotFound with errors.Is.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("input file not found at %s", e.Path)
}

// Unwrap exposes both ErrInputNotFound and the underlying error.
func (e *NotFoundError) Unwrap() []error {
	return []error{ErrInputNotFound, e.Err}
}

// notFound converts a missing-file error into a *NotFoundError.
func notFound(path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &NotFoundError{Path: path, Err: err}
	}
	return err
}

// openImage decodes the image at path, classifying a missing file.
func openImage(path string) (image.Image, error) {
	img, err := imageutil.Open(path)
	if err != nil {
		return nil, notFound(path, err)
	}
	return img, nil
}
