// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"context"
	"io"
	"log/slog"
)

// ConfigOption is a function pointer to implement the option pattern
type ConfigOption func(*Config)

// Config provides a configuration struct and options to adjust the configuration.
//
// The configuration struct holds all configuration options for a verification run
// and for reading candidate wordlists. The configuration options can be adjusted
// using the option pattern style.
type Config struct {
	// logger stream for verification
	logger logger

	// maxCandidates is the maximum number of candidates that are tested.
	// Set value to -1 to disable the check.
	maxCandidates int64

	// maxWordlistSize is the maximum number of bytes read from a wordlist after
	// decompression. Set value to -1 to disable the check.
	maxWordlistSize int64

	// progressInterval is the number of candidates between two progress log lines.
	// Set value to 0 to disable progress logging.
	progressInterval int64

	// skipEmpty skips empty lines of a wordlist instead of testing the empty password
	skipEmpty bool

	// strict reads the complete entry after a header match, so that the checksum
	// of the archive is verified as well
	strict bool

	// telemetryHook is a function to consume telemetry data after a finished run
	// Important: do not adjust this value after verification started
	telemetryHook TelemetryHook

	// wordlistCompression forces the compression type of a wordlist
	wordlistCompression string
}

// Logger returns the logger.
func (c *Config) Logger() logger {
	return c.logger
}

// MaxCandidates returns the maximum number of candidates that are tested.
func (c *Config) MaxCandidates() int64 {
	return c.maxCandidates
}

// CheckMaxCandidates checks if counter reached the configured maximum. If the maximum is
// reached, a [ErrMaxCandidatesExceeded] error is returned.
func (c *Config) CheckMaxCandidates(counter int64) error {

	// check if disabled
	if c.MaxCandidates() == -1 {
		return nil
	}

	// check value
	if counter >= c.MaxCandidates() {
		return ErrMaxCandidatesExceeded
	}
	return nil
}

// MaxWordlistSize returns the maximum number of bytes read from a wordlist.
func (c *Config) MaxWordlistSize() int64 {
	return c.maxWordlistSize
}

// ProgressInterval returns the number of candidates between two progress log lines.
func (c *Config) ProgressInterval() int64 {
	return c.progressInterval
}

// SkipEmpty returns true if empty wordlist lines are skipped.
func (c *Config) SkipEmpty() bool {
	return c.skipEmpty
}

// Strict returns true if the complete entry is read after a header match
// to verify the checksum.
func (c *Config) Strict() bool {
	return c.strict
}

// TelemetryHook returns the telemetry hook.
func (c *Config) TelemetryHook() TelemetryHook {
	if c.telemetryHook == nil {
		return defaultTelemetryHook
	}
	return c.telemetryHook
}

// WordlistCompression returns the forced compression type of wordlists. An empty
// string means the compression is detected.
func (c *Config) WordlistCompression() string {
	return c.wordlistCompression
}

const (
	defaultMaxCandidates       = -1    // test all candidates
	defaultMaxWordlistSize     = -1    // read complete wordlists
	defaultProgressInterval    = 0     // no progress logging
	defaultSkipEmpty           = false // the empty password is a candidate
	defaultStrict              = false // header match is sufficient
	defaultWordlistCompression = ""    // detect compression
)

var (
	// slog to discard
	defaultLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
	// no operation telemetry hook
	defaultTelemetryHook = func(ctx context.Context, d *TelemetryData) {
		// noop
	}
)

// NewConfig is a generator option that takes opts as adjustments of the
// default configuration in an option pattern style.
func NewConfig(opts ...ConfigOption) *Config {

	// setup default values
	config := &Config{
		logger:              defaultLogger,
		maxCandidates:       defaultMaxCandidates,
		maxWordlistSize:     defaultMaxWordlistSize,
		progressInterval:    defaultProgressInterval,
		skipEmpty:           defaultSkipEmpty,
		strict:              defaultStrict,
		telemetryHook:       defaultTelemetryHook,
		wordlistCompression: defaultWordlistCompression,
	}

	// Loop through each option
	for _, opt := range opts {
		opt(config)
	}

	return config
}

// WithLogger options pattern function to set a custom logger.
func WithLogger(logger logger) ConfigOption {
	return func(c *Config) {
		c.logger = logger
	}
}

// WithMaxCandidates options pattern function to set the maximum number of
// candidates that are tested. (-1 to disable check)
func WithMaxCandidates(maxCandidates int64) ConfigOption {
	return func(c *Config) {
		c.maxCandidates = maxCandidates
	}
}

// WithMaxWordlistSize options pattern function to set the maximum number of
// bytes that are read from a wordlist after decompression. (-1 to disable check)
func WithMaxWordlistSize(maxSize int64) ConfigOption {
	return func(c *Config) {
		c.maxWordlistSize = maxSize
	}
}

// WithProgressInterval options pattern function to log the progress every n
// candidates on debug level. (0 to disable)
func WithProgressInterval(n int64) ConfigOption {
	return func(c *Config) {
		c.progressInterval = n
	}
}

// WithSkipEmpty options pattern function to skip empty wordlist lines.
func WithSkipEmpty(skip bool) ConfigOption {
	return func(c *Config) {
		c.skipEmpty = skip
	}
}

// WithStrict options pattern function to read the complete entry after a header
// match. The archive checksum has to be valid for the candidate to be reported.
func WithStrict(strict bool) ConfigOption {
	return func(c *Config) {
		c.strict = strict
	}
}

// WithTelemetryHook options pattern function to set a [TelemetryHook], which is called after a run.
func WithTelemetryHook(hook TelemetryHook) ConfigOption {
	return func(c *Config) {
		c.telemetryHook = hook
	}
}

// WithWordlistCompression options pattern function to force the compression type
// of wordlists, e.g. "gz". Use "none" to read wordlists as plain text.
func WithWordlistCompression(compression string) ConfigOption {
	return func(c *Config) {
		if len(compression) > 0 {
			c.wordlistCompression = compression
		}
	}
}
