// Package json removes control characters and the whitespace outside of
// strings from JSON text.  The input is not validated and nothing but
// whitespace and control characters is ever removed.
package json

import (
	"io"

	"github.com/arnodel/minify/internal/scanner"
	"github.com/arnodel/minify/stream"
)

// Minify returns the minified form of the JSON text s.  Bytes of s that are
// not valid UTF-8 are dropped.
func Minify(s string) string {
	out, _ := stream.ReadAll(NewWindow(stream.StringSource(s)))
	return out
}

// NewReader returns a reader producing the minified form of the UTF-8 encoded
// JSON text read from r.  Errors from r are passed on.
func NewReader(r io.Reader) *stream.Reader {
	return stream.NewReader(NewWindow(scanner.NewScanner(r)))
}

// NewWindow returns a window applying the JSON rules to src.
func NewWindow(src stream.Source) *stream.Window[State] {
	return stream.NewWindow(src, Lookahead, State{}, Keep)
}
