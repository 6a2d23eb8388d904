package asciiportrait

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
)

// ExtractCharset returns the distinct non-whitespace characters of r in the
// order they first appear. It is the starting point for curating a ramp
// from a sample of ASCII art. On a read error the characters seen so far
// are returned along with the error.
func ExtractCharset(r io.Reader) ([]rune, error) {
	br := bufio.NewReader(r)
	seen := make(map[rune]bool)
	chars := []rune{}
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return chars, nil
			}
			return chars, fmt.Errorf("failed to read sample: %w", err)
		}
		if unicode.IsSpace(c) || seen[c] {
			continue
		}
		seen[c] = true
		chars = append(chars, c)
	}
}

// ExtractCharsetFile runs ExtractCharset over the file at path. A missing
// file yields an empty set and a *NotFoundError.
func ExtractCharsetFile(path string) ([]rune, error) {
	f, err := os.Open(path)
	if err != nil {
		return []rune{}, notFound(path, err)
	}
	defer f.Close()
	return ExtractCharset(f)
}
