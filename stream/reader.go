package stream

import (
	"io"
	"unicode/utf8"
)

// A Reader exposes the scalars of a Source as UTF-8 encoded bytes.
//
// When the buffer given to Read fills up in the middle of a scalar, the rest
// of its encoding is kept and written at the start of the next Read, so any
// buffer size works, including 1.
type Reader struct {
	src Source

	// Encoding of the last scalar, of which pending[pos:n] has not been read
	// yet.
	pending [utf8.UTFMax]byte
	pos     int
	n       int
}

var _ io.Reader = &Reader{}

// NewReader returns a Reader pulling scalars from src.
func NewReader(src Source) *Reader {
	return &Reader{src: src}
}

// Read implements io.Reader.  It returns 0, io.EOF only once the source is
// exhausted and all bytes have been read.  Other errors from the source are
// returned unchanged, possibly along with bytes written by this call.
func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	written := copy(p, r.pending[r.pos:r.n])
	r.pos += written
	if r.pos < r.n {
		return written, nil
	}
	r.pos, r.n = 0, 0
	for written < len(p) {
		c, err := r.src.Next()
		if err != nil {
			if err == io.EOF && written > 0 {
				err = nil
			}
			return written, err
		}
		if len(p)-written >= utf8.UTFMax {
			written += utf8.EncodeRune(p[written:], c)
			continue
		}
		r.n = utf8.EncodeRune(r.pending[:], c)
		r.pos = copy(p[written:], r.pending[:r.n])
		written += r.pos
		if r.pos == r.n {
			r.pos, r.n = 0, 0
		}
	}
	return written, nil
}
