package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/wbrown/asciiportrait"
	"github.com/wbrown/asciiportrait/config"
)

// glyphInk pairs a character with the fraction of its cell it darkens.
type glyphInk struct {
	char     rune
	coverage float64
}

// measureInk renders each character alone in a cell, black on white, and
// returns the mean darkness of the cell.
func measureInk(e *asciiportrait.Exporter, chars []rune) ([]glyphInk, error) {
	result := make([]glyphInk, 0, len(chars))
	for _, c := range chars {
		img, err := e.Export(string(c))
		if err != nil {
			return nil, err
		}
		var dark int
		for i := 0; i < len(img.Pix); i += 4 {
			dark += 255 - int(img.Pix[i])
		}
		pixels := len(img.Pix) / 4
		result = append(result, glyphInk{char: c, coverage: float64(dark) / float64(255*pixels)})
	}
	return result, nil
}

func main() {
	samplePath := flag.String("sample", config.DefaultSamplePath,
		"Path to a sample of ASCII art")
	fontPath := flag.String("font", "",
		"TTF font used to measure ink, or 'basic' for the 7x13 bitmap face")
	fontSize := flag.Float64("size", 14,
		"Font size in points")
	withSpace := flag.Bool("space", true,
		"Prepend a space as the lightest character")
	outputFile := flag.String("output", "",
		"Write the ordered ramp to this file")
	flag.Parse()

	os.Exit(run(*samplePath, *fontPath, *fontSize, *withSpace, *outputFile))
}

// run extracts and orders the ramp, returning the process exit code.
func run(samplePath, fontPath string, fontSize float64, withSpace bool, outputFile string) int {
	chars, err := asciiportrait.ExtractCharsetFile(samplePath)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	fmt.Printf("Unique characters: %s\n", string(chars))
	if len(chars) == 0 {
		return 0
	}

	e, err := asciiportrait.NewExporter(
		asciiportrait.WithFontPath(fontPath),
		asciiportrait.WithFontSize(fontSize),
		asciiportrait.WithPadding(0),
		asciiportrait.WithLinePad(0),
		asciiportrait.WithColors("#000000", "#ffffff"),
	)
	if err != nil {
		log.Printf("Failed to load font: %v", err)
		return 1
	}
	defer e.Close()

	inks, err := measureInk(e, chars)
	if err != nil {
		log.Printf("Failed to measure glyphs: %v", err)
		return 1
	}
	sort.SliceStable(inks, func(i, j int) bool {
		return inks[i].coverage < inks[j].coverage
	})

	ordered := make([]rune, 0, len(inks)+1)
	if withSpace {
		ordered = append(ordered, ' ')
	}
	for _, g := range inks {
		fmt.Printf("  %q  %.3f\n", g.char, g.coverage)
		ordered = append(ordered, g.char)
	}

	ramp, err := asciiportrait.NewRamp(string(ordered))
	if err != nil {
		log.Printf("Extracted characters do not form a ramp: %v", err)
		return 1
	}
	fmt.Printf("Ramp (light to dark): %q\n", ramp.String())

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(ramp.String()), 0644); err != nil {
			log.Printf("Failed to write %s: %v", outputFile, err)
			return 1
		}
	}
	return 0
}
