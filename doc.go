// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package zipcrack recovers the password of a single entry in a zip archive with
// traditional (ZipCrypto) encryption.
//
// Candidates are tested in order by [Verify]. A candidate is correct if the entry
// decrypts with it and the decrypted content starts with the magic bytes of the
// entry's file type. The file type is determined by [Resolve], either from an
// explicit identifier or from the extension of the entry name, and the magic bytes
// come from a static registry, see [SignatureFor].
//
// Candidates are read from any [Candidates] source. [OpenWordlist] reads line based
// wordlists from a file or standard input and decompresses gzip, bzip2, xz,
// zstandard, lz4, snappy, brotli and zlib compressed lists transparently.
//
// Configuration is done using the [Config], which is a configuration struct that can
// be used to set the logger, the telemetry hook, limits and the strict mode.
// [TelemetryData] is captured for every run and passed to the [TelemetryHook].
package zipcrack
