package asciiportrait

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/wbrown/asciiportrait/config"
	"github.com/wbrown/asciiportrait/imageutil"
	"github.com/wbrown/asciiportrait/segment"
)

// Pipeline runs the three stages in order, each reading the file the
// previous stage wrote. It stops at the first failing stage.
type Pipeline struct {
	cfg        *config.Config
	normalizer *Normalizer
	renderer   *Renderer
	exporter   *Exporter
	logger     *log.Logger
}

// Result describes a successful run.
type Result struct {
	Grid             *Grid
	NoBackgroundPath string
	ASCIIPath        string
	PNGPath          string
	Elapsed          time.Duration
}

// PipelineOption is a functional option for configuring a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger sets where stage failures are reported. The default writes
// bare lines to stdout.
func WithLogger(l *log.Logger) PipelineOption {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// FromConfig builds a Pipeline from cfg. seg is the background segmenter;
// nil selects the edge segmenter tuned by cfg.Segment.
func FromConfig(cfg *config.Config, seg segment.Segmenter, opts ...PipelineOption) (*Pipeline, error) {
	// Renderer settings are checked first so they surface as the
	// package's own sentinels rather than as a joined config error.
	if cfg.Width < 1 {
		return nil, fmt.Errorf("%w: output width %d", ErrInvalidDimensions, cfg.Width)
	}
	ramp, err := NewRamp(cfg.Ramp)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	interp, err := imageutil.ParseInterpolation(cfg.Interpolation)
	if err != nil {
		return nil, err
	}

	if seg == nil {
		seg = segment.NewEdgeSegmenter(
			segment.WithTolerance(cfg.Segment.Tolerance),
			segment.WithMaxSide(cfg.Segment.MaxSide),
		)
	}

	exporter, err := NewExporter(
		WithFontPath(cfg.Export.FontPath),
		WithFontSize(cfg.Export.FontSize),
		WithDPI(cfg.Export.DPI),
		WithPadding(cfg.Export.Padding),
		WithLinePad(cfg.Export.LinePad),
		WithColors(cfg.Export.Foreground, cfg.Export.Background),
	)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		cfg: cfg,
		normalizer: NewNormalizer(seg,
			WithFeather(cfg.Segment.FeatherSigma),
			WithSegmentTimeout(time.Duration(cfg.Segment.Timeout)),
		),
		renderer: NewRenderer(
			WithWidth(cfg.Width),
			WithRamp(ramp),
			WithAspectCorrection(cfg.AspectCorrection),
			WithInterpolation(interp),
		),
		exporter: exporter,
		logger:   log.New(os.Stdout, "", 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p, nil
}

// Run executes normalize, render and export. On failure the error is
// logged, returned, and no later stage runs.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	if err := p.normalizer.NormalizeFile(ctx, p.cfg.InputPath, p.cfg.NoBackgroundPath); err != nil {
		return nil, p.fail("remove background", err)
	}

	grid, err := p.renderer.RenderFile(p.cfg.NoBackgroundPath)
	if err != nil {
		return nil, p.fail("render ascii", err)
	}
	if err := grid.WriteFile(p.cfg.ASCIIPath); err != nil {
		return nil, p.fail("write ascii", err)
	}

	if err := p.exporter.ExportFile(p.cfg.ASCIIPath, p.cfg.PNGPath); err != nil {
		return nil, p.fail("export png", err)
	}

	return &Result{
		Grid:             grid,
		NoBackgroundPath: p.cfg.NoBackgroundPath,
		ASCIIPath:        p.cfg.ASCIIPath,
		PNGPath:          p.cfg.PNGPath,
		Elapsed:          time.Since(start),
	}, nil
}

func (p *Pipeline) fail(stage string, err error) error {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		p.logger.Printf("Error: Input file not found at %s", nf.Path)
	} else {
		p.logger.Printf("An error occurred: %v", err)
	}
	return fmt.Errorf("%s: %w", stage, err)
}

// Close releases the exporter's font.
func (p *Pipeline) Close() error {
	return p.exporter.Close()
}
