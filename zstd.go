// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"io"

	"github.com/klauspost/compress/zstd"
)

// fileExtensionZstd is the file extension for zstandard compressed wordlists.
const fileExtensionZstd = "zst"

var magicBytesZstd = [][]byte{
	{0x28, 0xb5, 0x2f, 0xfd},
}

func isZstd(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesZstd)
}

// decompressZstdStream returns a reader that decompresses src with zstandard.
// The decoder runs goroutines and must be closed.
func decompressZstdStream(src io.Reader) (io.Reader, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	return dec.IOReadCloser(), nil
}
