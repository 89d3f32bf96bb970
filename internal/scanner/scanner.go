package scanner

import (
	"io"
	"unicode/utf8"
)

// A Scanner decodes the UTF-8 bytes of a reader into runes.  Bytes that do
// not form a valid encoding are dropped without being reported.
type Scanner struct {
	reader io.Reader
	buf    []byte

	// The first unfilled position in buf
	// 0 <= fillIndex <= len(buf)
	fillIndex int

	// Current position in buf
	// 0 <= currentIndex <= fillIndex
	currentIndex int

	err error
}

func NewScanner(reader io.Reader) *Scanner {
	return NewScannerSize(reader, defaultBufSize)
}

// NewScannerSize returns a Scanner reading size bytes at a time.  The size is
// raised to utf8.UTFMax if smaller, so that a whole encoded rune always fits.
func NewScannerSize(reader io.Reader, size int) *Scanner {
	if size < utf8.UTFMax {
		size = utf8.UTFMax
	}
	return &Scanner{
		reader: reader,
		buf:    make([]byte, size),
	}
}

func (s *Scanner) fillBuf() {
	// Keep the undecoded tail (at most a partial rune) at the start of buf.
	if s.currentIndex > 0 {
		copy(s.buf, s.buf[s.currentIndex:s.fillIndex])
		s.fillIndex -= s.currentIndex
		s.currentIndex = 0
	}
	for i := maxConsecutiveEmptyReads; i > 0; i-- {
		n, err := s.reader.Read(s.buf[s.fillIndex:])
		s.fillIndex += n
		if err != nil {
			s.err = err
			return
		}
		if n > 0 {
			return
		}
	}
	s.err = io.ErrNoProgress
}

// Next returns the next valid rune.  It returns io.EOF when the input is
// exhausted, or the error of the underlying reader once all bytes read
// before the error have been decoded.
func (s *Scanner) Next() (rune, error) {
	for {
		pending := s.buf[s.currentIndex:s.fillIndex]
		// A partial encoding is completed by refilling, unless the reader
		// has nothing more to give.
		if len(pending) > 0 && (s.err != nil || utf8.FullRune(pending)) {
			r, size := utf8.DecodeRune(pending)
			s.currentIndex += size
			if r == utf8.RuneError && size <= 1 {
				continue
			}
			return r, nil
		}
		if s.err != nil {
			return 0, s.err
		}
		s.fillBuf()
	}
}

const (
	maxConsecutiveEmptyReads = 100
	defaultBufSize           = 8192
)
