// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import "errors"

var (
	// ErrUnknownFileType is returned when a file type identifier is not registered.
	ErrUnknownFileType = errors.New("unknown file type")

	// ErrNoExtension is returned when the type should be inferred from a file name
	// that carries no extension.
	ErrNoExtension = errors.New("file name has no extension")

	// ErrEntryNotFound is returned when the target entry does not exist in the archive.
	ErrEntryNotFound = errors.New("entry not found in archive")

	// ErrDecrypt is returned by an [Archive] when an entry cannot be decrypted
	// with the given password.
	ErrDecrypt = errors.New("cannot decrypt entry")

	// ErrHeaderMismatch indicates that decrypted content does not start with the
	// expected signature.
	ErrHeaderMismatch = errors.New("header does not match signature")

	// ErrPasswordNotFound is returned when all candidates were tested without a match.
	ErrPasswordNotFound = errors.New("password not found")

	// ErrMaxCandidatesExceeded is returned when the configured maximum of candidates
	// was tested without a match.
	ErrMaxCandidatesExceeded = errors.New("maximum candidates exceeded")

	// ErrMaxWordlistSizeExceeded is returned when a wordlist is larger than the
	// configured maximum after decompression.
	ErrMaxWordlistSizeExceeded = errors.New("maximum wordlist size exceeded")

	// ErrUnsupportedCompression is returned when a wordlist compression type is not supported.
	ErrUnsupportedCompression = errors.New("unsupported compression")
)
