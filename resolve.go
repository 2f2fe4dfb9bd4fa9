// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"fmt"
	"path"
	"strings"
)

// Resolve returns the signature for a run. If explicit is not empty, it is
// looked up case-insensitively. Otherwise the identifier is taken from the
// extension of fileName, which is an archive entry name and uses forward
// slashes as separator.
//
// A file name without extension results in [ErrNoExtension], an identifier
// that is not registered in [ErrUnknownFileType].
func Resolve(explicit string, fileName string) (Signature, error) {
	if len(explicit) > 0 {
		return lookupIdentifier(explicit)
	}

	ext := extension(fileName)
	if len(ext) == 0 {
		return Signature{}, fmt.Errorf("%w: %s", ErrNoExtension, fileName)
	}
	return lookupIdentifier(ext)
}

// lookupIdentifier normalizes id and returns the registered signature.
func lookupIdentifier(id string) (Signature, error) {
	sig, ok := SignatureFor(strings.ToLower(strings.TrimSpace(id)))
	if !ok {
		return Signature{}, fmt.Errorf("%w: %s", ErrUnknownFileType, id)
	}
	return sig, nil
}

// extension returns the substring after the last dot of the base name, or an
// empty string if there is none.
func extension(fileName string) string {
	base := path.Base(strings.TrimSuffix(fileName, "/"))
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i+1:]
}
