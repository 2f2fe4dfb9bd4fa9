// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"compress/zlib"
	"io"
)

// fileExtensionZlib is the file extension for zlib compressed wordlists.
// The two byte zlib header is too likely to be the start of a plain text
// wordlist, so zlib is only detected by extension.
const fileExtensionZlib = "zz"

func decompressZlibStream(src io.Reader) (io.Reader, error) {
	return zlib.NewReader(src)
}
