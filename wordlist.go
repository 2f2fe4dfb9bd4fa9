// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// Stdin is the wordlist path that reads candidates from standard input.
const Stdin = "-"

// Wordlist is a line based candidate source read from a file or stream.
// Compressed wordlists are decompressed transparently.
type Wordlist struct {
	*LineCandidates

	// Compression is the detected or forced compression, empty for plain text.
	Compression string

	closers []io.Closer
}

// OpenWordlist opens the wordlist at path, or standard input if path is [Stdin].
// The wordlist must be closed after use.
func OpenWordlist(path string, cfg *Config) (*Wordlist, error) {
	if path == Stdin {
		return NewWordlist(os.Stdin, "", cfg)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "cannot open wordlist")
	}
	wl, err := NewWordlist(f, path, cfg)
	if err != nil {
		f.Close()
		return nil, err
	}
	wl.closers = append(wl.closers, f)
	return wl, nil
}

// NewWordlist reads candidates from r. The name is used to detect compressions
// without magic bytes by file extension and may be empty.
func NewWordlist(r io.Reader, name string, cfg *Config) (*Wordlist, error) {
	hr, err := newHeaderReader(r, maxMagicLength)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read wordlist")
	}

	compression, err := findDecompression(hr.PeekHeader(), name, cfg.WordlistCompression())
	if err != nil {
		return nil, err
	}

	wl := &Wordlist{Compression: compression}
	var src io.Reader = hr
	if len(compression) > 0 {
		cfg.Logger().Debug("decompress wordlist", "compression", compression)
		if src, err = availableDecompressors[compression].Decompress(hr); err != nil {
			return nil, errors.Wrapf(err, "cannot decompress wordlist (%s)", compression)
		}
		if c, ok := src.(io.Closer); ok {
			wl.closers = append(wl.closers, c)
		}
	}

	src = newLimitErrorReader(src, cfg.MaxWordlistSize())
	wl.LineCandidates = NewLineCandidates(src).SkipEmpty(cfg.SkipEmpty())
	return wl, nil
}

// Close closes the decompressor and the underlying file.
func (w *Wordlist) Close() error {
	var firstErr error
	for _, c := range w.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	w.closers = nil
	return firstErr
}
