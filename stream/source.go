package stream

import (
	"io"
	"strings"
	"unicode/utf8"
)

// A Source produces a stream of scalars.  Next returns io.EOF at the end of
// the stream.
type Source interface {
	Next() (rune, error)
}

type stringSource struct {
	s string
}

// StringSource returns a Source yielding the scalars of s.  Bytes of s that
// are not valid UTF-8 are skipped.
func StringSource(s string) Source {
	return &stringSource{s: s}
}

func (src *stringSource) Next() (rune, error) {
	for src.s != "" {
		r, size := utf8.DecodeRuneInString(src.s)
		src.s = src.s[size:]
		if r != utf8.RuneError || size > 1 {
			return r, nil
		}
	}
	return 0, io.EOF
}

// ReadAll collects the scalars of src until io.EOF.  On error it returns what
// was collected so far together with the error.
func ReadAll(src Source) (string, error) {
	var b strings.Builder
	for {
		r, err := src.Next()
		if err == io.EOF {
			return b.String(), nil
		}
		if err != nil {
			return b.String(), err
		}
		b.WriteRune(r)
	}
}
