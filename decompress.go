// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"fmt"
	"io"
	"strings"
)

// compressionNone disables the compression detection of wordlists.
const compressionNone = "none"

// decompressionFunc returns a reader that decompresses src.
type decompressionFunc func(src io.Reader) (io.Reader, error)

// headerCheck is a function that checks if the given header matches the expected magic bytes.
type headerCheck func([]byte) bool

type availableDecompressor struct {
	Decompress  decompressionFunc
	HeaderCheck headerCheck
	MagicBytes  [][]byte
}

// availableDecompressors is the collection of supported wordlist compressions,
// keyed by file extension. Entries without HeaderCheck are only selected by
// file extension.
var availableDecompressors = map[string]availableDecompressor{
	fileExtensionBrotli: {
		Decompress: decompressBrotliStream,
	},
	fileExtensionBzip2: {
		Decompress:  decompressBzip2Stream,
		HeaderCheck: isBzip2,
		MagicBytes:  magicBytesBzip2,
	},
	fileExtensionGZip: {
		Decompress:  decompressGZipStream,
		HeaderCheck: isGZip,
		MagicBytes:  magicBytesGZip,
	},
	fileExtensionLZ4: {
		Decompress:  decompressLZ4Stream,
		HeaderCheck: isLZ4,
		MagicBytes:  magicBytesLZ4,
	},
	fileExtensionSnappy: {
		Decompress:  decompressSnappyStream,
		HeaderCheck: isSnappy,
		MagicBytes:  magicBytesSnappy,
	},
	fileExtensionXz: {
		Decompress:  decompressXzStream,
		HeaderCheck: isXz,
		MagicBytes:  magicBytesXz,
	},
	fileExtensionZlib: {
		Decompress: decompressZlibStream,
	},
	fileExtensionZstd: {
		Decompress:  decompressZstdStream,
		HeaderCheck: isZstd,
		MagicBytes:  magicBytesZstd,
	},
}

// maxMagicLength is the maximum magic bytes length of all decompressors
var maxMagicLength int

// init calculates the maximum magic bytes length
func init() {
	for _, d := range availableDecompressors {
		for _, mb := range d.MagicBytes {
			if len(mb) > maxMagicLength {
				maxMagicLength = len(mb)
			}
		}
	}
}

// Compressions returns the supported wordlist compressions.
func Compressions() []string {
	c := make([]string, 0, len(availableDecompressors))
	for ext := range availableDecompressors {
		c = append(c, ext)
	}
	return c
}

// findDecompression selects the compression of a wordlist. A forced compression
// wins, then the magic bytes in header, then the extension of name. An empty
// result means the wordlist is plain text.
func findDecompression(header []byte, name string, forced string) (string, error) {
	switch forced {
	case compressionNone:
		return "", nil
	case "":
	default:
		if _, ok := availableDecompressors[forced]; !ok {
			return "", fmt.Errorf("%w: %s", ErrUnsupportedCompression, forced)
		}
		return forced, nil
	}

	for ext, d := range availableDecompressors {
		if d.HeaderCheck != nil && d.HeaderCheck(header) {
			return ext, nil
		}
	}

	ext := strings.ToLower(extension(name))
	if d, ok := availableDecompressors[ext]; ok && d.HeaderCheck == nil {
		return ext, nil
	}
	return "", nil
}
