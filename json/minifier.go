package json

import (
	"github.com/arnodel/minify/internal/scanner"
	"github.com/arnodel/minify/stream"
)

// Lookahead is the number of upcoming scalars the JSON rules look at.
const Lookahead = 1

// State is what the JSON rules remember between two decisions.
type State struct {
	isString bool

	// Countdown of scalars following an escaped quote, during which a '"'
	// does not end the string.
	escapedQuotation uint8
}

// Keep decides whether c is part of the minified output.  ASCII control
// characters are removed everywhere, whitespace only outside of strings.
func Keep(s *State, c rune, ahead stream.Lookahead) bool {
	switch {
	case !s.isString && c == '"':
		s.isString = true
	case s.isString:
		if c == '\\' && ahead.Is(1, '"') {
			s.escapedQuotation = 4
		}
		if s.escapedQuotation > 0 {
			s.escapedQuotation--
		} else if c == '"' {
			s.isString = false
		}
	}
	return !scanner.IsCtrl(c) && (s.isString || !scanner.IsSpace(c))
}
