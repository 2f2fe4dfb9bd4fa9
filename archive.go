// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/yeka/zip"
)

// Archive is the capability the verification engine needs from an archive.
// Every call to AttemptDecrypt must be independent of previous attempts.
type Archive interface {
	// EntryExists returns true if the archive contains an entry with name.
	EntryExists(name string) bool

	// AttemptDecrypt opens entry name with password. It returns an error
	// wrapping [ErrEntryNotFound] if the entry does not exist and an error
	// wrapping [ErrDecrypt] if the entry cannot be opened with password.
	AttemptDecrypt(name string, password string) (io.ReadCloser, error)
}

// ZipArchive is an [Archive] backed by a zip file with traditional (ZipCrypto)
// encryption.
type ZipArchive struct {
	zr      *zip.Reader
	ra      io.ReaderAt
	closer  io.Closer
	entries map[string]*zip.File
}

// OpenArchive opens the zip archive at path. The archive must be closed
// after use.
func OpenArchive(path string) (*ZipArchive, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open archive %s", path)
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "cannot stat archive %s", path)
	}
	zr, err := zip.NewReader(f, fi.Size())
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "cannot open archive %s", path)
	}
	return newZipArchive(zr, f, f), nil
}

// NewArchive reads a zip archive of size bytes from r.
func NewArchive(r io.ReaderAt, size int64) (*ZipArchive, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "cannot create zip reader")
	}
	return newZipArchive(zr, r, nil), nil
}

// newZipArchive indexes the entries of zr, which reads from ra. If an entry
// name occurs more than once, the first one is used.
func newZipArchive(zr *zip.Reader, ra io.ReaderAt, closer io.Closer) *ZipArchive {
	entries := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		if _, ok := entries[f.Name]; !ok {
			entries[f.Name] = f
		}
	}
	return &ZipArchive{zr: zr, ra: ra, closer: closer, entries: entries}
}

// Entries returns the entry names in archive order.
func (z *ZipArchive) Entries() []string {
	names := make([]string, 0, len(z.zr.File))
	for _, f := range z.zr.File {
		names = append(names, f.Name)
	}
	return names
}

// EntryExists returns true if the archive contains an entry with name.
func (z *ZipArchive) EntryExists(name string) bool {
	_, ok := z.entries[name]
	return ok
}

// IsEncrypted returns true if entry name is encrypted.
func (z *ZipArchive) IsEncrypted(name string) (bool, error) {
	f, ok := z.entries[name]
	if !ok {
		return false, errors.Wrap(ErrEntryNotFound, name)
	}
	return f.IsEncrypted(), nil
}

// AttemptDecrypt opens entry name with password. Entries that are not
// encrypted open with any password. A ZipCrypto entry is rejected with
// [ErrDecrypt] if the check byte of its encryption header does not match,
// before any of the entry data is read.
func (z *ZipArchive) AttemptDecrypt(name string, password string) (io.ReadCloser, error) {
	f, ok := z.entries[name]
	if !ok {
		return nil, errors.Wrap(ErrEntryNotFound, name)
	}
	if f.IsEncrypted() {
		if !isWinZipAES(f.Extra) {
			if err := z.checkPassword(f, password); err != nil {
				return nil, errors.Wrapf(err, "%s", name)
			}
		}
		f.SetPassword(password)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, errors.Wrapf(ErrDecrypt, "%s: %s", name, err)
	}
	return rc, nil
}

// zipCryptoHeaderLen is the length of the encryption header that precedes the
// data of a ZipCrypto entry.
const zipCryptoHeaderLen = 12

// checkPassword decrypts the encryption header of f with password and compares
// its last byte with the check byte. The check byte is the high byte of the
// CRC-32, or of the modification time if the entry has a data descriptor.
// About one in 256 wrong passwords passes this check.
func (z *ZipArchive) checkPassword(f *zip.File, password string) error {
	off, err := f.DataOffset()
	if err != nil {
		return errors.Wrapf(ErrDecrypt, "cannot locate encryption header: %s", err)
	}
	hdr := make([]byte, zipCryptoHeaderLen)
	if _, err := z.ra.ReadAt(hdr, off); err != nil {
		return errors.Wrapf(ErrDecrypt, "cannot read encryption header: %s", err)
	}
	plain := zip.NewZipCrypto([]byte(password)).Decrypt(hdr)

	want := byte(f.CRC32 >> 24)
	if f.Flags&0x8 != 0 {
		want = byte(f.ModifiedTime >> 8)
	}
	if plain[zipCryptoHeaderLen-1] != want {
		return errors.Wrap(ErrDecrypt, "wrong password")
	}
	return nil
}

// winZipAESExtraID is the extra field header of WinZip AES encrypted entries.
const winZipAESExtraID = 0x9901

// isWinZipAES returns true if the extra fields contain a WinZip AES header.
func isWinZipAES(extra []byte) bool {
	for len(extra) >= 4 {
		id := binary.LittleEndian.Uint16(extra[:2])
		size := int(binary.LittleEndian.Uint16(extra[2:4]))
		if id == winZipAESExtraID {
			return true
		}
		if len(extra) < 4+size {
			return false
		}
		extra = extra[4+size:]
	}
	return false
}

// Close closes the underlying file, if the archive was opened from a path.
func (z *ZipArchive) Close() error {
	if z.closer == nil {
		return nil
	}
	return z.closer.Close()
}
