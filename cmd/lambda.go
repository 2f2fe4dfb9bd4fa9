// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/hashicorp/go-zipcrack"
	pkgerrors "github.com/pkg/errors"
)

// LambdaRequest is the event of a verification run in AWS Lambda. The archive
// is transferred base64 encoded.
type LambdaRequest struct {
	Archive       []byte   `json:"archive"`
	Entry         string   `json:"entry"`
	Type          string   `json:"type,omitempty"`
	Candidates    []string `json:"candidates,omitempty"`
	Builtin       bool     `json:"builtin,omitempty"`
	Strict        bool     `json:"strict,omitempty"`
	MaxCandidates int64    `json:"max_candidates,omitempty"`
}

// LambdaResponse is the result of a verification run in AWS Lambda.
type LambdaResponse struct {
	Found     bool                    `json:"found"`
	Password  string                  `json:"password,omitempty"`
	Telemetry *zipcrack.TelemetryData `json:"telemetry"`
}

// lambdaLogger writes JSON lines to stderr, which Lambda forwards to CloudWatch Logs.
var lambdaLogger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// HandleLambda verifies the candidates of req against its archive. Exhausted
// candidates are a regular response with Found set to false, configuration
// errors are returned.
func HandleLambda(ctx context.Context, req LambdaRequest) (LambdaResponse, error) {
	sig, err := zipcrack.Resolve(req.Type, req.Entry)
	if err != nil {
		return LambdaResponse{}, pkgerrors.Wrap(err, "cannot determine file type")
	}

	archive, err := zipcrack.NewArchive(bytes.NewReader(req.Archive), int64(len(req.Archive)))
	if err != nil {
		return LambdaResponse{}, err
	}

	maxCandidates := int64(-1)
	if req.MaxCandidates > 0 {
		maxCandidates = req.MaxCandidates
	}

	td := &zipcrack.TelemetryData{}
	cfg := zipcrack.NewConfig(
		zipcrack.WithLogger(lambdaLogger),
		zipcrack.WithMaxCandidates(maxCandidates),
		zipcrack.WithStrict(req.Strict),
		zipcrack.WithTelemetryHook(func(ctx context.Context, d *zipcrack.TelemetryData) {
			*td = *d
		}),
	)

	sources := []zipcrack.Candidates{zipcrack.NewSliceCandidates(req.Candidates...)}
	if req.Builtin {
		sources = append(sources, zipcrack.NewBuiltinCandidates())
	}

	password, err := zipcrack.Verify(ctx, archive, req.Entry, sig, zipcrack.ChainCandidates(sources...), cfg)
	switch {
	case err == nil:
		return LambdaResponse{Found: true, Password: password, Telemetry: td}, nil
	case errors.Is(err, zipcrack.ErrPasswordNotFound), errors.Is(err, zipcrack.ErrMaxCandidatesExceeded):
		return LambdaResponse{Telemetry: td}, nil
	default:
		return LambdaResponse{Telemetry: td}, err
	}
}
