package imageutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

var (
	// ErrDecode marks input that could not be decoded as an image.
	ErrDecode = errors.New("decode error")
	// ErrEncode marks output that could not be encoded or written.
	ErrEncode = errors.New("encode error")
)

// LoadImage loads an image from the specified path.
// Supports PNG, JPEG, GIF, BMP, TIFF and WebP. JPEG EXIF orientation is
// applied so phone photos come out upright. Open failures wrap the
// underlying *fs.PathError, decode failures wrap ErrDecode.
func LoadImage(path string) (*RGBAImage, error) {
	img, err := Open(path)
	if err != nil {
		return nil, err
	}
	return RGBAImageFromImage(img), nil
}

// Open opens and decodes an image without converting its pixel format.
func Open(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	return Decode(f)
}

// Decode decodes an image from r, honouring EXIF orientation.
func Decode(r io.Reader) (image.Image, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to decode image: %w", ErrDecode, err)
	}
	return img, nil
}

// Encode writes img to w in the format implied by ext
// (png, jpg/jpeg, gif; anything else is PNG).
func Encode(w io.Writer, img image.Image, ext string) error {
	var err error
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg":
		err = jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
	case ".gif":
		err = gif.Encode(w, img, nil)
	default:
		err = png.Encode(w, img)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to encode image: %w", ErrEncode, err)
	}
	return nil
}

// SaveImage saves an image to the specified path, overwriting any
// existing file. Format is determined by file extension. The image is
// encoded in memory first so a failed encode never leaves a file behind.
func SaveImage(img image.Image, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, filepath.Ext(path)); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, ".png"); err != nil {
		return err
	}
	return WriteFile(path, buf.Bytes())
}

// WriteFile writes data to path, wrapping failures in ErrEncode.
func WriteFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: failed to write file: %w", ErrEncode, err)
	}
	return nil
}
