// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracerName is the instrumentation name of the spans recorded by Verify.
const tracerName = "github.com/hashicorp/go-zipcrack"

// outcome is the result of testing a single candidate.
type outcome int

const (
	outcomeMatch outcome = iota
	outcomeDecryptFailure
	outcomeReadFailure
	outcomeHeaderMismatch
	outcomeChecksumFailure
)

// Verify tests candidates in order against entry of archive and returns the
// first password whose decrypted content starts with sig. Candidates after the
// match are not read from the source.
//
// Failing decryption, failing reads and header mismatches of single candidates
// are counted in the [TelemetryData], but never returned. Verify returns
// [ErrEntryNotFound] if entry does not exist, [ErrPasswordNotFound] if the
// candidates are exhausted and the context error if ctx is done.
// [ErrMaxCandidatesExceeded] is returned if the configured limit of candidates
// was tested and the source still has another one, which is read but not
// tested. An error of the candidate source itself is returned wrapped.
//
// The telemetry hook runs with a context that is not canceled together with
// ctx, so it can publish the data of runs that ended by timeout.
func Verify(ctx context.Context, archive Archive, entry string, sig Signature, candidates Candidates, cfg *Config) (string, error) {

	// prepare telemetry data collection and emit
	td := &TelemetryData{RunID: uuid.NewString(), Entry: entry, FileType: sig.Type().String()}
	defer cfg.TelemetryHook()(context.WithoutCancel(ctx), td)
	defer captureVerificationDuration(td, now())

	ctx, span := otel.Tracer(tracerName).Start(ctx, "Verify", trace.WithAttributes(
		attribute.String("zipcrack.entry", entry),
		attribute.String("zipcrack.file_type", td.FileType),
		attribute.String("zipcrack.run_id", td.RunID),
	))
	defer span.End()

	password, err := verify(ctx, archive, entry, sig, candidates, cfg, td)
	span.SetAttributes(
		attribute.Int64("zipcrack.candidates", td.Candidates),
		attribute.Bool("zipcrack.found", td.Found),
	)
	if err != nil {
		td.LastError = err
		span.SetStatus(codes.Error, err.Error())
		cfg.Logger().Info("no password recovered", "entry", entry, "candidates", td.Candidates, "error", err)
		return "", err
	}
	cfg.Logger().Info("password recovered", "entry", entry, "candidates", td.Candidates)
	return password, nil
}

// verify runs the candidate loop of Verify.
func verify(ctx context.Context, archive Archive, entry string, sig Signature, candidates Candidates, cfg *Config, td *TelemetryData) (string, error) {

	// preconditions are checked once, before the first candidate
	if !archive.EntryExists(entry) {
		return "", fmt.Errorf("%w: %s", ErrEntryNotFound, entry)
	}
	if sig.Len() == 0 {
		return "", fmt.Errorf("%w: empty signature", ErrUnknownFileType)
	}
	cfg.Logger().Info("verifying candidates", "entry", entry, "type", sig.Type())

	var rejection error
	for {

		// check if context is canceled
		if err := ctx.Err(); err != nil {
			return "", err
		}

		password, err := candidates.Next()
		if errors.Is(err, io.EOF) {
			return "", ErrPasswordNotFound
		}
		if err != nil {
			return "", fmt.Errorf("cannot read candidate: %w", err)
		}

		// check candidate limit, only once another candidate is left
		if err := cfg.CheckMaxCandidates(td.Candidates); err != nil {
			return "", err
		}
		td.Candidates++

		var result outcome
		result, rejection = attempt(archive, entry, password, sig, cfg.Strict())
		switch result {
		case outcomeMatch:
			td.Found = true
			return password, nil
		case outcomeDecryptFailure:
			td.DecryptFailures++
		case outcomeReadFailure:
			td.ReadFailures++
		case outcomeHeaderMismatch:
			td.HeaderMismatches++
		case outcomeChecksumFailure:
			td.ChecksumFailures++
			cfg.Logger().Debug("candidate matched the header but not the checksum", "entry", entry, "candidate", td.Candidates, "error", rejection)
		}

		if n := cfg.ProgressInterval(); n > 0 && td.Candidates%n == 0 {
			cfg.Logger().Debug("progress", "entry", entry, "candidates", td.Candidates, "last_rejection", rejection)
		}
	}
}

// attempt decrypts entry with password and compares the leading bytes with sig.
// In strict mode the complete entry is read after a header match. The returned
// error describes why a candidate was rejected.
func attempt(archive Archive, entry string, password string, sig Signature, strict bool) (outcome, error) {
	rc, err := archive.AttemptDecrypt(entry, password)
	if err != nil {
		return outcomeDecryptFailure, err
	}
	defer rc.Close()

	hr, err := newHeaderReader(rc, sig.Len())
	if err != nil {
		return outcomeReadFailure, err
	}
	if !hr.Complete(sig.Len()) {
		return outcomeReadFailure, fmt.Errorf("entry is shorter than the signature: %w", io.ErrUnexpectedEOF)
	}
	if !sig.Matches(hr.PeekHeader()) {
		return outcomeHeaderMismatch, fmt.Errorf("%w: % x", ErrHeaderMismatch, hr.PeekHeader())
	}
	if strict {
		if _, err := hr.Drain(); err != nil {
			return outcomeChecksumFailure, err
		}
	}
	return outcomeMatch, nil
}
