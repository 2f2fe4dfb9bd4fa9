// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"golang.org/x/sync/errgroup"
	"roseh.moe/pkg/wordlist"
)

// Candidates is an ordered, single-pass source of password candidates. Next
// returns [io.EOF] after the last candidate.
type Candidates interface {
	Next() (string, error)
}

// maxLineLength is the maximum length of a single wordlist line.
const maxLineLength = 1 << 20 // 1 MiB

// LineCandidates returns the lines of a reader as candidates. Line endings
// ("\n" and "\r\n") are removed, a final line without line ending is returned
// as well.
type LineCandidates struct {
	scanner   *bufio.Scanner
	skipEmpty bool
}

// NewLineCandidates returns a [LineCandidates] for r. Empty lines are returned as
// the empty password.
func NewLineCandidates(r io.Reader) *LineCandidates {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	return &LineCandidates{scanner: scanner}
}

// SkipEmpty configures whether empty lines are skipped.
func (l *LineCandidates) SkipEmpty(skip bool) *LineCandidates {
	l.skipEmpty = skip
	return l
}

// Next returns the next line.
func (l *LineCandidates) Next() (string, error) {
	for l.scanner.Scan() {
		line := l.scanner.Text()
		if l.skipEmpty && len(line) == 0 {
			continue
		}
		return line, nil
	}
	if err := l.scanner.Err(); err != nil {
		return "", fmt.Errorf("cannot read line: %w", err)
	}
	return "", io.EOF
}

// SliceCandidates returns the elements of a slice as candidates.
type SliceCandidates struct {
	passwords []string
	i         int
}

// NewSliceCandidates returns a [SliceCandidates] for passwords.
func NewSliceCandidates(passwords ...string) *SliceCandidates {
	return &SliceCandidates{passwords: passwords}
}

// Next returns the next element.
func (s *SliceCandidates) Next() (string, error) {
	if s.i >= len(s.passwords) {
		return "", io.EOF
	}
	defer func() { s.i++ }()
	return s.passwords[s.i], nil
}

// chainCandidates reads its sources one after another.
type chainCandidates struct {
	sources []Candidates
}

// ChainCandidates returns a [Candidates] that returns all candidates of the first
// source, then all of the second, and so on.
func ChainCandidates(sources ...Candidates) Candidates {
	return &chainCandidates{sources: sources}
}

// Next returns the next candidate of the current source.
func (c *chainCandidates) Next() (string, error) {
	for len(c.sources) > 0 {
		p, err := c.sources[0].Next()
		if errors.Is(err, io.EOF) {
			c.sources = c.sources[1:]
			continue
		}
		return p, err
	}
	return "", io.EOF
}

// builtinCandidates returns the words of the built-in word list.
type builtinCandidates struct {
	i int
}

// NewBuiltinCandidates returns the words of the built-in word list in order.
func NewBuiltinCandidates() Candidates {
	return &builtinCandidates{}
}

// Next returns the next word.
func (b *builtinCandidates) Next() (string, error) {
	if b.i >= len(wordlist.Words) {
		return "", io.EOF
	}
	defer func() { b.i++ }()
	return wordlist.Words[b.i], nil
}

// PrefetchCandidates reads a source ahead on a separate goroutine. There is a
// single reader and a single consumer, so the order of the source is kept.
type PrefetchCandidates struct {
	ch     chan string
	eg     *errgroup.Group
	cancel context.CancelFunc
	once   sync.Once
	err    error
}

// NewPrefetchCandidates starts reading src into a buffer of size candidates.
// The prefetching stops when ctx is done or Close is called.
func NewPrefetchCandidates(ctx context.Context, src Candidates, size int) *PrefetchCandidates {
	if size < 1 {
		size = 1
	}
	ctx, cancel := context.WithCancel(ctx)
	eg, ctx := errgroup.WithContext(ctx)
	ch := make(chan string, size)

	eg.Go(func() error {
		defer close(ch)
		for {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := src.Next()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return err
			}
			select {
			case ch <- p:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	return &PrefetchCandidates{ch: ch, eg: eg, cancel: cancel}
}

// Next returns the next prefetched candidate. After the buffer is drained, the
// error of the source is returned, or [io.EOF].
func (p *PrefetchCandidates) Next() (string, error) {
	if pw, ok := <-p.ch; ok {
		return pw, nil
	}
	p.once.Do(func() {
		p.err = p.eg.Wait()
	})
	if p.err != nil {
		return "", p.err
	}
	return "", io.EOF
}

// Close stops prefetching. A read of the source that is already in progress
// is not interrupted.
func (p *PrefetchCandidates) Close() error {
	p.cancel()
	return nil
}
