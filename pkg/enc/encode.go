package enc

import (
	"io"

	"github.com/zeebo/errs"
)

const (
	// DefaultChunkSize is the number of bytes read, transformed and written
	// per step.
	DefaultChunkSize = 1024
)

var (
	ErrRead  = errs.Class("read failed")
	ErrWrite = errs.Class("write failed")
)

func chunkSizeOrDefault(chunkSize int) int {
	if chunkSize <= 0 {
		return DefaultChunkSize
	}
	return chunkSize
}

type encodedReader struct {
	r   io.Reader
	c   Codec
	buf []byte
	err error
}

// NewReader applies c in direction d to everything read from r. Reads
// from r are at most chunkSize bytes, so memory use stays bounded no
// matter how large r is.
func NewReader(r io.Reader, c Codec, d Direction, chunkSize int) io.Reader {
	return &encodedReader{
		r:   r,
		c:   ForDirection(c, d),
		buf: make([]byte, chunkSizeOrDefault(chunkSize)),
	}
}

func (r *encodedReader) Read(p []byte) (n int, err error) {
	if r.err != nil {
		return 0, r.err
	}
	if len(p) > len(r.buf) {
		p = p[:len(r.buf)]
	}
	n, err = r.r.Read(p)
	r.c.Encode(p[:0], p[:n])
	if err != nil && err != io.EOF {
		err = ErrRead.Wrap(err)
	}
	r.err = err
	return n, err
}

// Transform reads src in chunks of at most chunkSize bytes, applies c in
// direction d, and writes each chunk to dst. It returns the number of
// bytes written. If dst accepts fewer bytes than it was given, Transform
// stops and returns an ErrWrite wrapping io.ErrShortWrite; nothing further
// is written to dst.
func Transform(dst io.Writer, src io.Reader, c Codec, d Direction, chunkSize int) (written int64, err error) {
	c = ForDirection(c, d)
	buf := make([]byte, chunkSizeOrDefault(chunkSize))
	for {
		nr, rerr := src.Read(buf)
		if nr > 0 {
			chunk := c.Encode(buf[:0], buf[:nr])
			nw, werr := dst.Write(chunk)
			if nw < 0 || nw > nr {
				nw = 0
				if werr == nil {
					werr = errs.New("invalid write result")
				}
			}
			written += int64(nw)
			if werr != nil {
				return written, ErrWrite.Wrap(werr)
			}
			if nw != nr {
				return written, ErrWrite.Wrap(io.ErrShortWrite)
			}
		}
		if rerr != nil {
			if rerr == io.EOF {
				return written, nil
			}
			return written, ErrRead.Wrap(rerr)
		}
	}
}
