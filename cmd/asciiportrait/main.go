package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/wbrown/asciiportrait"
	"github.com/wbrown/asciiportrait/config"
	"github.com/wbrown/asciiportrait/segment"
	"github.com/wbrown/asciiportrait/segment/cvsegment"
)

func main() {
	configFile := flag.String("config", "",
		"Path to a JSON config file (defaults are used when absent)")
	inputFile := flag.String("input", "",
		"Path to the input photo (default "+config.DefaultInputPath+")")
	outputFile := flag.String("output", "",
		"Path of the ASCII text output (default "+config.DefaultASCIIPath+")")
	pngFile := flag.String("png", "",
		"Path of the rendered PNG (default "+config.DefaultPNGPath+")")
	targetWidth := flag.Int("width", 0,
		"Characters per line (default 100)")
	ramp := flag.String("ramp", "",
		"Character ramp from light to dark")
	segmentMethod := flag.String("segment", "",
		"Background removal: edge, none, u2net or grabcut")
	modelPath := flag.String("model", "",
		"Path to the U^2-Net ONNX model (for -segment u2net)")
	fontPath := flag.String("font", "",
		"TTF font for the PNG, or 'basic' for the 7x13 bitmap face")
	saveConfig := flag.String("save-config", "",
		"Write the effective configuration to this path and exit")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file
	if *inputFile != "" {
		cfg.InputPath = *inputFile
	}
	if *outputFile != "" {
		cfg.ASCIIPath = *outputFile
	}
	if *pngFile != "" {
		cfg.PNGPath = *pngFile
	}
	if *targetWidth != 0 {
		cfg.Width = *targetWidth
	}
	if *ramp != "" {
		cfg.Ramp = *ramp
	}
	if *segmentMethod != "" {
		cfg.Segment.Method = *segmentMethod
	}
	if *modelPath != "" {
		cfg.Segment.ModelPath = *modelPath
	}
	if *fontPath != "" {
		cfg.Export.FontPath = *fontPath
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	if *saveConfig != "" {
		if err := config.Save(cfg, *saveConfig); err != nil {
			fmt.Printf("Error saving config: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Configuration written to %s\n", *saveConfig)
		return
	}

	os.Exit(run(cfg))
}

// run executes the pipeline and returns the process exit code.
func run(cfg *config.Config) int {
	seg, closeSeg, err := newSegmenter(cfg.Segment)
	if err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		return 1
	}
	defer closeSeg()

	p, err := asciiportrait.FromConfig(cfg, seg)
	if err != nil {
		fmt.Printf("An error occurred: %v\n", err)
		return 1
	}
	defer p.Close()

	res, err := p.Run(context.Background())
	if err != nil {
		// Run has already reported the failure.
		return 1
	}

	fmt.Printf("Background removed: %s\n", res.NoBackgroundPath)
	fmt.Printf("ASCII art (%dx%d) written to %s\n",
		res.Grid.Width(), res.Grid.Height(), res.ASCIIPath)
	fmt.Printf("PNG output written to %s\n", res.PNGPath)
	fmt.Printf("Total time: %v\n", res.Elapsed)
	return 0
}

// newSegmenter builds the segmenter named by cfg.Method. The returned
// func releases any native resources it holds.
func newSegmenter(cfg config.SegmentConfig) (segment.Segmenter, func(), error) {
	noop := func() {}
	switch cfg.Method {
	case "edge":
		return segment.NewEdgeSegmenter(
			segment.WithTolerance(cfg.Tolerance),
			segment.WithMaxSide(cfg.MaxSide),
		), noop, nil
	case "none":
		return segment.Passthrough{}, noop, nil
	case "u2net":
		net, err := cvsegment.NewU2Net(cfg.ModelPath)
		if err != nil {
			return nil, noop, err
		}
		return net, func() { net.Close() }, nil
	case "grabcut":
		return cvsegment.NewGrabCut(), noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown segment method %q", cfg.Method)
	}
}
