// Package config holds the pipeline configuration: file paths, renderer
// settings, segmentation and export options. Every field has a default
// matching the fixed layout the tool has always used, so a missing config
// file means "run with defaults".
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Default file layout.
const (
	DefaultInputPath        = "input_image.jpg"
	DefaultNoBackgroundPath = "output_no_background.png"
	DefaultASCIIPath        = "output_ascii.txt"
	DefaultPNGPath          = "output_png.png"
	DefaultSamplePath       = "ascii_sample.txt"
)

// DefaultRamp is ordered from light to dark.
const DefaultRamp = " .:-=+*#%&@"

// Config mirrors the JSON configuration file.
type Config struct {
	InputPath        string `json:"input_path"`
	NoBackgroundPath string `json:"no_background_path"`
	ASCIIPath        string `json:"ascii_path"`
	PNGPath          string `json:"png_path"`
	SamplePath       string `json:"sample_path"`

	Width            int     `json:"width"`
	Ramp             string  `json:"ramp"`
	AspectCorrection float64 `json:"aspect_correction"`
	Interpolation    string  `json:"interpolation"`

	Segment SegmentConfig `json:"segment"`
	Export  ExportConfig  `json:"export"`
}

// SegmentConfig selects and tunes the background segmenter.
type SegmentConfig struct {
	// Method is one of "edge", "none", "u2net", "grabcut".
	Method       string   `json:"method"`
	ModelPath    string   `json:"model_path"`
	Tolerance    float64  `json:"tolerance"`
	MaxSide      int      `json:"max_side"`
	FeatherSigma float64  `json:"feather_sigma"`
	Timeout      Duration `json:"timeout"`
}

// ExportConfig controls the text-to-PNG rasterizer.
type ExportConfig struct {
	// FontPath is a TTF file, "" for the embedded Go Mono face or
	// "basic" for the fixed 7x13 bitmap face.
	FontPath   string  `json:"font_path"`
	FontSize   float64 `json:"font_size"`
	DPI        float64 `json:"dpi"`
	Padding    int     `json:"padding"`
	LinePad    int     `json:"line_pad"`
	Foreground string  `json:"foreground"`
	Background string  `json:"background"`
}

// Duration is a time.Duration that reads and writes as a string ("30s").
type Duration time.Duration

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	if s == "" {
		*d = 0
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// NewDefault returns the built-in configuration.
func NewDefault() *Config {
	return &Config{
		InputPath:        DefaultInputPath,
		NoBackgroundPath: DefaultNoBackgroundPath,
		ASCIIPath:        DefaultASCIIPath,
		PNGPath:          DefaultPNGPath,
		SamplePath:       DefaultSamplePath,

		Width:            100,
		Ramp:             DefaultRamp,
		AspectCorrection: 0.55,
		Interpolation:    "bicubic",

		Segment: SegmentConfig{
			Method:       "edge",
			Tolerance:    0.12,
			MaxSide:      512,
			FeatherSigma: 1.5,
		},
		Export: ExportConfig{
			FontSize:   14,
			DPI:        72,
			Padding:    10,
			LinePad:    2,
			Foreground: "#000000",
			Background: "#f8f8f8",
		},
	}
}

// Load reads filename over the defaults. A missing file is not an error:
// the defaults are returned. Fields absent from the file keep their
// default values.
func Load(filename string) (*Config, error) {
	cfg := NewDefault()

	file, err := os.Open(filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", filename, err)
	}

	return cfg, cfg.Validate()
}

// Save writes cfg to filename as indented JSON.
func Save(cfg *Config, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(cfg)
}

// Validate checks the values no stage can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.InputPath == "" || c.NoBackgroundPath == "" || c.ASCIIPath == "" || c.PNGPath == "" {
		errs = append(errs, errors.New("all pipeline paths must be set"))
	}
	if c.Width < 1 {
		errs = append(errs, fmt.Errorf("width must be at least 1, got %d", c.Width))
	}
	if c.Ramp == "" {
		errs = append(errs, errors.New("ramp must not be empty"))
	}
	if c.AspectCorrection <= 0 {
		errs = append(errs, fmt.Errorf("aspect_correction must be positive, got %g", c.AspectCorrection))
	}
	switch c.Segment.Method {
	case "edge", "none", "grabcut":
	case "u2net":
		if c.Segment.ModelPath == "" {
			errs = append(errs, errors.New("segment.model_path is required for u2net"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown segment.method %q", c.Segment.Method))
	}
	if c.Export.FontSize <= 0 || c.Export.DPI <= 0 {
		errs = append(errs, errors.New("export.font_size and export.dpi must be positive"))
	}
	return errors.Join(errs...)
}
