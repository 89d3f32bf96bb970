package stream

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func keepAll(state *int, c rune, ahead Lookahead) bool {
	*state++
	return true
}

func dropVowels(state *int, c rune, ahead Lookahead) bool {
	*state++
	return !strings.ContainsRune("aeiou", c)
}

func assertCollect(t *testing.T, src Source, expected string) {
	t.Helper()
	got, err := ReadAll(src)
	if err != nil {
		t.Fatalf("ReadAll: unexpected error %s", err)
	}
	if got != expected {
		t.Fatalf("ReadAll: expected %q, got %q", expected, got)
	}
}

func TestWindowFilter(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		keep     Predicate[int]
		expected string
	}{
		{"empty", "", 3, keepAll, ""},
		{"keep all", "hello", 5, keepAll, "hello"},
		{"shorter than lookahead", "ab", 8, keepAll, "ab"},
		{"drop some", "education", 1, dropVowels, "dctn"},
		{"drop all", "aeiou", 2, dropVowels, ""},
		{"multi-byte", "日本語 tea", 4, dropVowels, "日本語 t"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertCollect(t, NewWindow(StringSource(tt.input), tt.n, 0, tt.keep), tt.expected)
		})
	}
}

func TestWindowLookahead(t *testing.T) {
	type seen struct {
		c     rune
		ahead string
	}
	var calls []seen
	record := func(state *struct{}, c rune, ahead Lookahead) bool {
		var b strings.Builder
		for i := 1; i <= ahead.Len(); i++ {
			if s := ahead.At(i); s.Present {
				b.WriteRune(s.Rune)
			} else {
				b.WriteByte('_')
			}
		}
		calls = append(calls, seen{c, b.String()})
		return true
	}
	assertCollect(t, NewWindow(StringSource("abcde"), 3, struct{}{}, record), "abcde")
	expected := []seen{
		{'a', "bcd"},
		{'b', "cde"},
		{'c', "de_"},
		{'d', "e__"},
		{'e', "___"},
	}
	if len(calls) != len(expected) {
		t.Fatalf("expected %d calls, got %d", len(expected), len(calls))
	}
	for i, x := range expected {
		if calls[i] != x {
			t.Errorf("call %d: expected %q %q, got %q %q", i, x.c, x.ahead, calls[i].c, calls[i].ahead)
		}
	}
}

func TestLookaheadOutOfRange(t *testing.T) {
	var checked bool
	check := func(state *struct{}, c rune, ahead Lookahead) bool {
		if c != 'x' {
			return false
		}
		checked = true
		if ahead.At(0).Present || ahead.At(-1).Present || ahead.At(3).Present {
			t.Errorf("positions out of range must be absent")
		}
		if !ahead.Is(1, 'y') || !ahead.Is(2, 'z') {
			t.Errorf("expected lookahead \"yz\"")
		}
		if ahead.Is(3, 0) {
			t.Errorf("absent slot must not match")
		}
		return false
	}
	w := NewWindow(StringSource("xyz"), 2, struct{}{}, check)
	if _, err := w.Next(); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if !checked {
		t.Fatal("predicate not called")
	}
	var zero Lookahead
	if zero.At(1).Present {
		t.Errorf("zero Lookahead must be empty")
	}
}

func TestWindowLongDropRun(t *testing.T) {
	input := strings.Repeat("a", 1<<20) + "b"
	w := NewWindow(StringSource(input), 1, 0, dropVowels)
	assertCollect(t, w, "b")
	if w.state != len(input) {
		t.Fatalf("expected %d predicate calls, got %d", len(input), w.state)
	}
}

func TestWindowEOFRepeats(t *testing.T) {
	w := NewWindow(StringSource("a"), 1, 0, keepAll)
	if r, err := w.Next(); r != 'a' || err != nil {
		t.Fatalf("expected 'a', got %q %v", r, err)
	}
	for i := 0; i < 3; i++ {
		if _, err := w.Next(); err != io.EOF {
			t.Fatalf("expected io.EOF, got %v", err)
		}
	}
}

var errFlaky = errors.New("flaky")

// flakySource fails once before each scalar listed in failAt.
type flakySource struct {
	runes  []rune
	pos    int
	failAt map[int]bool
}

func (s *flakySource) Next() (rune, error) {
	if s.failAt[s.pos] {
		delete(s.failAt, s.pos)
		return 0, errFlaky
	}
	if s.pos >= len(s.runes) {
		return 0, io.EOF
	}
	r := s.runes[s.pos]
	s.pos++
	return r, nil
}

func TestWindowResumesAfterError(t *testing.T) {
	const input = "abracadabra"
	for i := 0; i <= len(input); i++ {
		src := &flakySource{runes: []rune(input), failAt: map[int]bool{i: true}}
		w := NewWindow[int](src, 2, 0, dropVowels)
		var b strings.Builder
		var failures int
		for {
			r, err := w.Next()
			if err == io.EOF {
				break
			}
			if err == errFlaky {
				failures++
				continue
			}
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			b.WriteRune(r)
		}
		if failures != 1 {
			t.Errorf("failure at %d: expected 1 error, got %d", i, failures)
		}
		if b.String() != "brcdbr" {
			t.Errorf("failure at %d: expected %q, got %q", i, "brcdbr", b.String())
		}
		if w.state != len(input) {
			t.Errorf("failure at %d: expected %d predicate calls, got %d", i, len(input), w.state)
		}
	}
}

func TestWindowChain(t *testing.T) {
	noSpace := func(state *struct{}, c rune, ahead Lookahead) bool {
		return c != ' '
	}
	inner := NewWindow(StringSource("a quick brown fox"), 1, 0, dropVowels)
	assertCollect(t, NewWindow[struct{}](inner, 1, struct{}{}, noSpace), "qckbrwnfx")
}

func TestNewWindowPanics(t *testing.T) {
	for _, n := range []int{0, -1, MaxLookahead + 1} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewWindow with n = %d: expected panic", n)
				}
			}()
			NewWindow(StringSource(""), n, 0, keepAll)
		}()
	}
}

func TestStringSourceSkipsInvalid(t *testing.T) {
	assertCollect(t, StringSource("a\xffb\xe4\xb8c�"), "abc�")
}
