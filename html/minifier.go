package html

import (
	"github.com/arnodel/minify/internal/scanner"
	"github.com/arnodel/minify/stream"
)

// Lookahead is the number of upcoming scalars the HTML rules look at.  It is
// enough to see " <!--[" from its first character.
const Lookahead = 5

// State is what the HTML rules remember between two decisions.
type State struct {
	// Number of scalars still to drop after the end of a comment.
	keepRemoving uint8

	// No scalar has been kept yet.
	begin bool

	// The last kept scalar was '<' (resp. '>').
	lastWasTagStart bool
	lastWasTagEnd   bool

	isComment bool
}

// NewState returns the state at the start of a document.
func NewState() State {
	return State{begin: true}
}

// Keep decides whether c is part of the minified output.  The rules are, in
// order:
//
//   - ASCII control characters are removed;
//   - comments are removed, except for conditional comments ("<!--[if ...");
//   - whitespace after '<' is removed, and so is whitespace after '>' when
//     it is followed by more whitespace or by the end of the input;
//   - whitespace before '>', before a control character, before more
//     whitespace, or before the first tag of the document is removed.
func Keep(s *State, c rune, ahead stream.Lookahead) bool {
	if scanner.IsCtrl(c) || s.inComment(c, ahead) {
		return false
	}
	if scanner.IsSpace(c) {
		next := ahead.At(1)
		if s.lastWasTagStart || s.lastWasTagEnd && isSpaceOrEnd(next) {
			return false
		}
		if isRedundantBefore(s, next) {
			return false
		}
	}
	s.lastWasTagStart = c == '<'
	s.lastWasTagEnd = c == '>'
	s.begin = false
	return true
}

// inComment reports whether c belongs to a comment, keeping track of where
// comments start and end.
func (s *State) inComment(c rune, ahead stream.Lookahead) bool {
	if s.keepRemoving > 0 {
		s.keepRemoving--
		return true
	}
	if isCommentStart(c, ahead) {
		s.isComment = true
	}
	if !s.isComment {
		return false
	}
	if c == '-' && ahead.Is(1, '-') && ahead.Is(2, '>') {
		// The two remaining characters of "-->" go too.
		s.isComment = false
		s.keepRemoving = 2
	}
	return true
}

// isCommentStart reports whether c opens a comment, i.e. starts "<!--" not
// followed by '[', or is a single whitespace before such an opener.
func isCommentStart(c rune, ahead stream.Lookahead) bool {
	switch {
	case c == '<':
		return isCommentStartAfter(ahead, 0)
	case scanner.IsSpace(c):
		return ahead.Is(1, '<') && isCommentStartAfter(ahead, 1)
	default:
		return false
	}
}

// isCommentStartAfter reports whether "!--" not followed by '[' comes after
// position i of the lookahead.
func isCommentStartAfter(ahead stream.Lookahead, i int) bool {
	return ahead.Is(i+1, '!') &&
		ahead.Is(i+2, '-') &&
		ahead.Is(i+3, '-') &&
		!ahead.Is(i+4, '[')
}

func isSpaceOrEnd(next stream.Slot) bool {
	return !next.Present || scanner.IsSpace(next.Rune)
}

// isRedundantBefore reports whether whitespace can be removed because of the
// scalar that follows it.
func isRedundantBefore(s *State, next stream.Slot) bool {
	if !next.Present {
		return false
	}
	switch next.Rune {
	case '<':
		return s.begin
	case '>':
		return true
	default:
		return scanner.IsSpace(next.Rune) || scanner.IsCtrl(next.Rune)
	}
}
