// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"bytes"
	"sort"
)

// FileType identifies a family of files that share one magic number.
type FileType int

const (
	Unknown FileType = iota
	Asf
	Jpg
	Zip
	Png
	Xml
	Gif
	Pdf
	SevenZip
	Rar
	GZip
	Bzip2
	Xz
	Zstd
)

// String returns the canonical identifier of the file type.
func (ft FileType) String() string {
	for _, fs := range availableSignatures {
		if fs.Type == ft {
			return fs.Identifiers[0]
		}
	}
	return "unknown"
}

// Signature is the expected leading byte sequence of a decrypted entry.
// The zero value matches nothing.
type Signature struct {
	fileType   FileType
	magicBytes []byte
}

// Type returns the file type the signature belongs to.
func (s Signature) Type() FileType {
	return s.fileType
}

// Bytes returns a copy of the magic bytes.
func (s Signature) Bytes() []byte {
	return bytes.Clone(s.magicBytes)
}

// Len returns the number of bytes that must be read to check the signature.
func (s Signature) Len() int {
	return len(s.magicBytes)
}

// Matches reports whether header carries the complete signature as prefix.
// A header shorter than the signature never matches.
func (s Signature) Matches(header []byte) bool {
	if len(s.magicBytes) == 0 {
		return false
	}
	return matchesMagicBytes(header, 0, [][]byte{s.magicBytes})
}

// fileSignature binds the identifiers of a file type to its magic bytes.
// The first identifier is the canonical one.
type fileSignature struct {
	Type        FileType
	Identifiers []string
	MagicBytes  []byte
}

// availableSignatures is the collection of known file signatures. Adding a
// file type only requires a new entry here.
var availableSignatures = []fileSignature{
	{
		Type:        Asf,
		Identifiers: []string{"asf", "wma", "wmv"},
		MagicBytes:  []byte{0x30, 0x26, 0xB2, 0x75, 0x8E, 0x66, 0xCF, 0x11, 0xA6, 0xD9, 0x00, 0xAA, 0x00, 0x62, 0xCE, 0x6C},
	},
	{
		Type:        Jpg,
		Identifiers: []string{"jpg", "jpeg"},
		MagicBytes:  []byte{0xFF, 0xD8},
	},
	{
		Type:        Zip,
		Identifiers: []string{"zip", "apk", "jar"},
		MagicBytes:  []byte{0x50, 0x4B, 0x03, 0x04},
	},
	{
		Type:        Png,
		Identifiers: []string{"png"},
		MagicBytes:  []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A},
	},
	{
		Type:        Xml,
		Identifiers: []string{"xml"},
		MagicBytes:  []byte("<?xml "),
	},
	{
		Type:        Gif,
		Identifiers: []string{"gif"},
		MagicBytes:  []byte("GIF8"),
	},
	{
		Type:        Pdf,
		Identifiers: []string{"pdf"},
		MagicBytes:  []byte("%PDF-"),
	},
	{
		Type:        SevenZip,
		Identifiers: []string{"7z"},
		MagicBytes:  []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C},
	},
	{
		Type:        Rar,
		Identifiers: []string{"rar"},
		MagicBytes:  []byte{0x52, 0x61, 0x72, 0x21, 0x1A, 0x07},
	},
	{
		Type:        GZip,
		Identifiers: []string{"gz", "tgz"},
		MagicBytes:  []byte{0x1F, 0x8B},
	},
	{
		Type:        Bzip2,
		Identifiers: []string{"bz2"},
		MagicBytes:  []byte("BZh"),
	},
	{
		Type:        Xz,
		Identifiers: []string{"xz"},
		MagicBytes:  []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A, 0x00},
	},
	{
		Type:        Zstd,
		Identifiers: []string{"zst"},
		MagicBytes:  []byte{0x28, 0xB5, 0x2F, 0xFD},
	},
}

// signaturesByIdentifier indexes availableSignatures by every identifier.
var signaturesByIdentifier map[string]fileSignature

// init indexes the identifiers
func init() {
	signaturesByIdentifier = make(map[string]fileSignature)
	for _, fs := range availableSignatures {
		for _, id := range fs.Identifiers {
			signaturesByIdentifier[id] = fs
		}
	}
}

// SignatureFor returns the signature registered for identifier. The identifier
// must already be lower case. The second return value is false if the identifier
// is unknown.
func SignatureFor(identifier string) (Signature, bool) {
	fs, ok := signaturesByIdentifier[identifier]
	if !ok {
		return Signature{}, false
	}
	return Signature{fileType: fs.Type, magicBytes: fs.MagicBytes}, true
}

// Identifiers returns all registered identifiers in lexical order.
func Identifiers() []string {
	ids := make([]string, 0, len(signaturesByIdentifier))
	for id := range signaturesByIdentifier {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// matchesMagicBytes checks if data contains one of magicBytes at offset.
func matchesMagicBytes(data []byte, offset int, magicBytes [][]byte) bool {
	// check all possible magic bytes until match is found
	for _, mb := range magicBytes {
		// check if header is long enough
		if offset+len(mb) > len(data) {
			continue
		}

		// check for byte match
		if bytes.Equal(mb, data[offset:offset+len(mb)]) {
			return true
		}
	}

	// no match found
	return false
}
