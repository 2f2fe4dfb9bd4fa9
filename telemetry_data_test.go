// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/hashicorp/go-zipcrack"
)

// TestDataString tests the String method of the data struct
func TestDataString(t *testing.T) {
	m := zipcrack.TelemetryData{
		RunID:                "b7c0b1f2-0d8a-4c53-9a8e-3c6d1e2f4a5b",
		Entry:                "kitten.jpg",
		FileType:             "jpg",
		Candidates:           5,
		DecryptFailures:      1,
		ReadFailures:         2,
		HeaderMismatches:     1,
		ChecksumFailures:     1,
		Found:                false,
		VerificationDuration: time.Duration(5 * time.Millisecond),
		LastError:            fmt.Errorf("example error"),
	}

	expected := `{"verification_duration":5,"last_error":"example error","run_id":"b7c0b1f2-0d8a-4c53-9a8e-3c6d1e2f4a5b","entry":"kitten.jpg","file_type":"jpg","candidates":5,"decrypt_failures":1,"read_failures":2,"header_mismatches":1,"checksum_failures":1,"found":false}`
	if m.String() != expected {
		t.Errorf("Expected '%s', but got '%s'", expected, m.String())
	}
}

func TestComposeTelemetryHooks(t *testing.T) {
	var calls []string
	first := func(ctx context.Context, td *zipcrack.TelemetryData) { calls = append(calls, "first:"+td.Entry) }
	second := func(ctx context.Context, td *zipcrack.TelemetryData) { calls = append(calls, "second:"+td.Entry) }

	hook := zipcrack.ComposeTelemetryHooks(first, nil, second)
	hook(context.Background(), &zipcrack.TelemetryData{Entry: "a.txt"})

	if fmt.Sprint(calls) != "[first:a.txt second:a.txt]" {
		t.Errorf("hooks called as %v", calls)
	}
}

func ExampleTelemetryHook() {
	hook := func(ctx context.Context, td *zipcrack.TelemetryData) {
		// send td to a telemetry service, e.g., CloudWatch or Prometheus
		fmt.Println(td.Entry, td.Found)
	}
	hook(context.Background(), &zipcrack.TelemetryData{Entry: "kitten.jpg", Found: true})

	// Output: kitten.jpg true
}
