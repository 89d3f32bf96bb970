package minify

import (
	"fmt"
	"io"
	"regexp"

	"github.com/arnodel/minify/html"
	"github.com/arnodel/minify/json"
)

// A Format is a kind of text that can be minified.
type Format int

const (
	Unknown Format = iota
	HTML
	JSON
)

func (f Format) String() string {
	switch f {
	case HTML:
		return "html"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// ParseFormat returns the format with the given name, "html" or "json".
func ParseFormat(name string) (Format, error) {
	switch name {
	case "html", "htm":
		return HTML, nil
	case "json":
		return JSON, nil
	default:
		return Unknown, fmt.Errorf("invalid format: %q", name)
	}
}

type formatGuesser struct {
	pattern *regexp.Regexp
	format  Format
}

func newFormatGuesser(format Format, pattern string) formatGuesser {
	return formatGuesser{
		pattern: regexp.MustCompile(pattern),
		format:  format,
	}
}

var formatGuessers = []formatGuesser{
	newFormatGuesser(HTML, `^\s*<`),
	newFormatGuesser(JSON, `^\s*([{\["]|-?[0-9]|true\b|false\b|null\b)`),
}

// GuessFormat returns the format that the text starting with start is likely
// to be in, or Unknown.
func GuessFormat(start []byte) Format {
	for _, guesser := range formatGuessers {
		if guesser.pattern.Match(start) {
			return guesser.format
		}
	}
	return Unknown
}

// String returns the minified form of s according to format f.
func String(f Format, s string) (string, error) {
	switch f {
	case HTML:
		return html.Minify(s), nil
	case JSON:
		return json.Minify(s), nil
	default:
		return "", fmt.Errorf("cannot minify %s format", f)
	}
}

// NewReader returns a reader producing the minified form of the text read
// from r according to format f.
func NewReader(f Format, r io.Reader) (io.Reader, error) {
	switch f {
	case HTML:
		return html.NewReader(r), nil
	case JSON:
		return json.NewReader(r), nil
	default:
		return nil, fmt.Errorf("cannot minify %s format", f)
	}
}
