package utils

import (
	"bytes"
	"fmt"
	"io"

	"github.com/zeebo/errs"
)

var (
	ErrComparisonMismatch = errs.Class("reader comparer mismatch")
)

type readerComparer struct {
	readers []io.Reader
	amounts []int
	errs    []error
	buffers [][]byte
	offset  int64
}

// ReaderCompare returns an io.Reader that yields the data of the first
// Reader and errors if any other Reader returns data that doesn't match.
// Readers are read one after another; nothing runs in the background.
func ReaderCompare(readers ...io.Reader) io.Reader {
	if len(readers) <= 0 {
		return bytes.NewReader(nil)
	}
	if len(readers) == 1 {
		return readers[0]
	}
	return &readerComparer{
		readers: readers,
		amounts: make([]int, len(readers)),
		errs:    make([]error, len(readers)),
		buffers: make([][]byte, len(readers)),
	}
}

// readFull is like io.ReadFull but doesn't turn io.EOF into io.ErrUnexpectedEOF
func readFull(r io.Reader, buf []byte) (n int, err error) {
	for n < len(buf) && err == nil {
		var nn int
		nn, err = r.Read(buf[n:])
		n += nn
	}
	if n == len(buf) {
		err = nil
	}
	return
}

func (rc *readerComparer) Read(p []byte) (n int, err error) {
	if len(p) <= 0 {
		return 0, nil
	}

	rc.buffers[0] = p
	for i := 1; i < len(rc.readers); i++ {
		if len(rc.buffers[i]) < len(p) {
			rc.buffers[i] = make([]byte, len(p))
		}
	}

	for i := range rc.readers {
		rc.amounts[i], rc.errs[i] = readFull(rc.readers[i], rc.buffers[i][:len(p)])
	}

	for i := 1; i < len(rc.readers); i++ {
		if rc.amounts[0] != rc.amounts[i] {
			return 0, ErrComparisonMismatch.New("lengths mismatch near offset %d: %d != %d",
				rc.offset, rc.amounts[0], rc.amounts[i])
		}
		if !bytes.Equal(rc.buffers[0][:rc.amounts[0]], rc.buffers[i][:rc.amounts[i]]) {
			return 0, ErrComparisonMismatch.New("bytes mismatch at offset %d",
				rc.offset+int64(firstDiff(rc.buffers[0], rc.buffers[i][:rc.amounts[0]])))
		}
		if rc.errs[0] != rc.errs[i] {
			return 0, ErrComparisonMismatch.New("errors mismatch %q != %q",
				fmt.Sprintf("%+v", rc.errs[0]), fmt.Sprintf("%+v", rc.errs[i]))
		}
	}

	rc.offset += int64(rc.amounts[0])
	return rc.amounts[0], rc.errs[0]
}

func firstDiff(a, b []byte) int {
	for i := range b {
		if i >= len(a) || a[i] != b[i] {
			return i
		}
	}
	return len(b)
}
