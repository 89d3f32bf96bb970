// Package html removes comments, control characters and redundant whitespace
// from HTML documents, in a single pass and without parsing them.
//
// Conditional comments such as
//
//	<!--[if lte IE 8]> ... <![endif]-->
//
// are preserved.  The contents of elements like <pre> or <textarea> are not
// treated specially.
package html

import (
	"io"

	"github.com/arnodel/minify/internal/scanner"
	"github.com/arnodel/minify/stream"
)

// Minify returns the minified form of the HTML document s.  Bytes of s that
// are not valid UTF-8 are dropped.
func Minify(s string) string {
	out, _ := stream.ReadAll(NewWindow(stream.StringSource(s)))
	return out
}

// NewReader returns a reader producing the minified form of the UTF-8
// encoded HTML document read from r.  Errors from r are passed on.
func NewReader(r io.Reader) *stream.Reader {
	return stream.NewReader(NewWindow(scanner.NewScanner(r)))
}

// NewWindow returns a window applying the HTML rules to src.
func NewWindow(src stream.Source) *stream.Window[State] {
	return stream.NewWindow(src, Lookahead, NewState(), Keep)
}
