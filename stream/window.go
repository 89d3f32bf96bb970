package stream

import (
	"fmt"
	"io"

	"github.com/arnodel/minify/internal/debug"
)

// MaxLookahead is the largest number of upcoming scalars a Window can expose
// to its predicate.
const MaxLookahead = 8

// A Slot holds a scalar of the window, or nothing when the stream ended
// before that position.
type Slot struct {
	Rune    rune
	Present bool
}

// A Lookahead gives a predicate access to the scalars following the one being
// decided.  It is a view into the window and is only valid for the duration
// of the predicate call.
type Lookahead struct {
	slots *[MaxLookahead + 1]Slot
	head  int
	size  int
}

// At returns the i-th scalar after the current one, with 1 <= i <= Len().
// Positions out of that range are absent.
func (l Lookahead) At(i int) Slot {
	if i < 1 || i >= l.size {
		return Slot{}
	}
	return l.slots[(l.head+i)%l.size]
}

// Is reports whether the i-th scalar after the current one is present and
// equal to r.
func (l Lookahead) Is(i int, r rune) bool {
	s := l.At(i)
	return s.Present && s.Rune == r
}

// Len returns the lookahead width of the window.
func (l Lookahead) Len() int {
	return l.size - 1
}

// A Predicate decides whether the scalar c is kept, given the scalars that
// follow it.  It may update the state, which belongs to the window.
type Predicate[S any] func(state *S, c rune, ahead Lookahead) bool

// A Window filters a Source, keeping the scalars accepted by a predicate.
// Decisions are made once, in order, and cannot be revisited.
//
// A Window is itself a Source so windows can be chained.
type Window[S any] struct {
	src   Source
	keep  Predicate[S]
	state S

	// Ring buffer of size slots.  slots[head] is the current scalar, the
	// following size-1 positions (modulo size) are the lookahead.
	slots [MaxLookahead + 1]Slot
	head  int
	size  int

	// Number of slots filled so far, until it reaches size.
	loaded int
	eof    bool

	// The predicate has been evaluated for slots[head] but the window could
	// not move past it yet, because the source failed.
	decided bool
	kept    bool
}

var _ Source = &Window[struct{}]{}

// NewWindow returns a Window reading from src that shows n lookahead scalars
// to keep, starting from the given state.  It panics unless
// 1 <= n <= MaxLookahead.
func NewWindow[S any](src Source, n int, state S, keep Predicate[S]) *Window[S] {
	if n < 1 || n > MaxLookahead {
		panic(fmt.Sprintf("lookahead must be between 1 and %d, got %d", MaxLookahead, n))
	}
	return &Window[S]{
		src:   src,
		keep:  keep,
		state: state,
		size:  n + 1,
	}
}

// Next returns the next kept scalar, or io.EOF when the source is exhausted.
// An error from the source is returned as is; calling Next again retries
// from where the window stopped.
func (w *Window[S]) Next() (rune, error) {
	for w.loaded < w.size {
		s, err := w.pull()
		if err != nil {
			return 0, err
		}
		w.slots[w.loaded] = s
		w.loaded++
	}
	for {
		current := w.slots[w.head]
		if !current.Present {
			return 0, io.EOF
		}
		if !w.decided {
			w.kept = w.keep(&w.state, current.Rune, w.lookahead())
			w.decided = true
			if debug.On {
				debug.Printf("window: %q kept=%t", current.Rune, w.kept)
			}
		}
		next, err := w.pull()
		if err != nil {
			return 0, err
		}
		w.slots[w.head] = next
		w.head = (w.head + 1) % w.size
		w.decided = false
		if w.kept {
			return current.Rune, nil
		}
	}
}

func (w *Window[S]) lookahead() Lookahead {
	return Lookahead{slots: &w.slots, head: w.head, size: w.size}
}

func (w *Window[S]) pull() (Slot, error) {
	if w.eof {
		return Slot{}, nil
	}
	r, err := w.src.Next()
	if err == io.EOF {
		w.eof = true
		return Slot{}, nil
	}
	if err != nil {
		return Slot{}, err
	}
	return Slot{Rune: r, Present: true}, nil
}
