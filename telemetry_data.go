// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"context"
	"encoding/json"
	"time"
)

// TelemetryData holds all telemetry data of a verification run.
type TelemetryData struct {
	// RunID identifies the run
	RunID string `json:"run_id"`

	// Entry is the name of the verified archive entry
	Entry string `json:"entry"`

	// FileType is the file type of the signature
	FileType string `json:"file_type"`

	// Candidates is the number of tested candidates
	Candidates int64 `json:"candidates"`

	// DecryptFailures is the number of candidates the archive refused to decrypt with
	DecryptFailures int64 `json:"decrypt_failures"`

	// ReadFailures is the number of candidates for which the header could not be read
	ReadFailures int64 `json:"read_failures"`

	// HeaderMismatches is the number of candidates whose header did not match
	HeaderMismatches int64 `json:"header_mismatches"`

	// ChecksumFailures is the number of header matches rejected in strict mode
	ChecksumFailures int64 `json:"checksum_failures"`

	// Found is true if a password was recovered
	Found bool `json:"found"`

	// VerificationDuration is the time the run took
	VerificationDuration time.Duration `json:"verification_duration"`

	// LastError is the error that terminated an unsuccessful run
	LastError error `json:"last_error"`
}

// String returns a string representation of [TelemetryData].
func (td TelemetryData) String() string {
	b, _ := json.Marshal(td)
	return string(b)
}

// MarshalJSON implements the [encoding/json.Marshaler] interface.
func (td TelemetryData) MarshalJSON() ([]byte, error) {
	var lastError string
	if td.LastError != nil {
		lastError = td.LastError.Error()
	}

	type Alias TelemetryData
	return json.Marshal(&struct {
		VerificationDuration int64  `json:"verification_duration"`
		LastError            string `json:"last_error"`
		*Alias
	}{
		VerificationDuration: td.VerificationDuration.Milliseconds(),
		LastError:            lastError,
		Alias:                (*Alias)(&td),
	})
}

// TelemetryHook is a function type that performs operations on [TelemetryData]
// after a run has finished which can be used to submit the [TelemetryData]
// to a telemetry service, for example.
type TelemetryHook func(context.Context, *TelemetryData)

// ComposeTelemetryHooks returns a [TelemetryHook] that calls all hooks in order.
func ComposeTelemetryHooks(hooks ...TelemetryHook) TelemetryHook {
	return func(ctx context.Context, td *TelemetryData) {
		for _, hook := range hooks {
			if hook != nil {
				hook(ctx, td)
			}
		}
	}
}

// now is a function point that returns time.Now to the caller.
var now = time.Now

// captureVerificationDuration captures the duration of the run
func captureVerificationDuration(td *TelemetryData, start time.Time) {
	td.VerificationDuration = now().Sub(start)
}
