// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"fmt"
	"io"
)

// headerReader reads the first bytes of a stream eagerly, so they can be
// compared against magic bytes. Read returns the header again before it
// continues with the rest of the stream.
type headerReader struct {
	r      io.Reader
	header []byte
}

// newHeaderReader reads up to headerSize bytes from r. A stream that ends
// early is not an error, the header then holds whatever was read.
func newHeaderReader(r io.Reader, headerSize int) (*headerReader, error) {
	buf := make([]byte, headerSize)
	n, err := io.ReadFull(r, buf)
	switch err {
	case nil, io.EOF, io.ErrUnexpectedEOF:
		return &headerReader{r: r, header: buf[:n]}, nil
	default:
		return nil, fmt.Errorf("cannot read header: %w", err)
	}
}

func (h *headerReader) Read(b []byte) (int, error) {
	if len(h.header) > 0 {
		n := copy(b, h.header)
		h.header = h.header[n:]
		return n, nil
	}
	return h.r.Read(b)
}

// PeekHeader returns the bytes read by newHeaderReader.
func (h *headerReader) PeekHeader() []byte {
	return h.header
}

// Complete reports whether the stream delivered at least n bytes.
func (h *headerReader) Complete(n int) bool {
	return len(h.header) >= n
}

// Drain consumes the stream after the header. Readers returned by zip archives
// check the CRC-32 when they reach EOF, so a nil error means the entry
// decrypted and decompressed consistently.
func (h *headerReader) Drain() (int64, error) {
	n, err := io.Copy(io.Discard, h.r)
	if err != nil {
		return int64(len(h.header)) + n, fmt.Errorf("cannot read entry: %w", err)
	}
	return int64(len(h.header)) + n, nil
}
