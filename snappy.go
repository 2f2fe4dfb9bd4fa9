// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"io"

	"github.com/klauspost/compress/snappy"
)

// fileExtensionSnappy is the file extension for wordlists in the snappy framing format.
const fileExtensionSnappy = "sz"

// magicBytesSnappy is the stream identifier chunk of the snappy framing format.
var magicBytesSnappy = [][]byte{
	append([]byte{0xff, 0x06, 0x00, 0x00}, []byte("sNaPpY")...),
}

func isSnappy(header []byte) bool {
	return matchesMagicBytes(header, 0, magicBytesSnappy)
}

func decompressSnappyStream(src io.Reader) (io.Reader, error) {
	return snappy.NewReader(src), nil
}
