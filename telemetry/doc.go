// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package telemetry provides [zipcrack.TelemetryHook] implementations that export
// the telemetry data of verification runs.
//
// [Collector] aggregates runs as Prometheus metrics, [NewCloudWatchHook] publishes
// every run as an Amazon EventBridge event and [InitTracer] writes the spans
// recorded by [zipcrack.Verify] to a stream.
package telemetry
