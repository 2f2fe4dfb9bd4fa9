// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"io"

	"github.com/andybalholm/brotli"
)

// fileExtensionBrotli is the file extension for brotli compressed wordlists.
// Brotli streams have no magic bytes, they are only detected by extension.
const fileExtensionBrotli = "br"

func decompressBrotliStream(src io.Reader) (io.Reader, error) {
	return brotli.NewReader(src), nil
}
