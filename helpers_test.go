// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-zipcrack"
	"github.com/yeka/zip"
)

// jpgData is the start of a JFIF file
var jpgData = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00, 0x01, 0x01, 0x00, 0x00, 0x01}

// testEntry describes an entry of a generated test archive. Entries without
// password are stored unencrypted, encrypted entries use ZipCrypto unless
// encryption is set.
type testEntry struct {
	name       string
	password   string
	data       []byte
	encryption zip.EncryptionMethod
}

// createTestZip returns the bytes of a zip archive with entries.
func createTestZip(t testing.TB, entries ...testEntry) []byte {
	t.Helper()
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)
	for _, e := range entries {
		var (
			w   io.Writer
			err error
		)
		if len(e.password) > 0 {
			method := e.encryption
			if method == 0 {
				method = zip.StandardEncryption
			}
			w, err = zw.Encrypt(e.name, e.password, method)
		} else {
			w, err = zw.Create(e.name)
		}
		if err != nil {
			t.Fatalf("cannot create entry %s: %s", e.name, err)
		}
		if _, err := w.Write(e.data); err != nil {
			t.Fatalf("cannot write entry %s: %s", e.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("cannot close zip writer: %s", err)
	}
	return buf.Bytes()
}

// createTestArchive returns an opened archive with entries.
func createTestArchive(t testing.TB, entries ...testEntry) *zipcrack.ZipArchive {
	t.Helper()
	data := createTestZip(t, entries...)
	archive, err := zipcrack.NewArchive(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("cannot open test archive: %s", err)
	}
	return archive
}

// createTestArchiveFile writes a zip archive with entries to a temporary
// directory and returns its path.
func createTestArchiveFile(t *testing.T, entries ...testEntry) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.zip")
	if err := os.WriteFile(path, createTestZip(t, entries...), 0640); err != nil {
		t.Fatalf("cannot write test archive: %s", err)
	}
	return path
}

// openTestdata opens the archive testdata/name. Both fixtures contain
// kitten.jpg, a jpg header followed by 4 KiB of random data, stored and
// encrypted with "fun". stored.zip was written by Info-ZIP with "zip -0 -P fun"
// and carries a data descriptor. stored-crc.zip has no data descriptor, so its
// check byte is the high byte of the CRC-32.
func openTestdata(t testing.TB, name string) *zipcrack.ZipArchive {
	t.Helper()
	archive, err := zipcrack.OpenArchive(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("cannot open %s: %s", name, err)
	}
	t.Cleanup(func() { archive.Close() })
	return archive
}

// kittenArchive is the archive of the recovery examples: kitten.jpg encrypted with "fun".
func kittenArchive(t testing.TB) *zipcrack.ZipArchive {
	return createTestArchive(t, testEntry{name: "kitten.jpg", password: "fun", data: jpgData})
}

// recordingCandidates records every candidate that was read from src.
type recordingCandidates struct {
	src  zipcrack.Candidates
	read []string
}

func (r *recordingCandidates) Next() (string, error) {
	p, err := r.src.Next()
	if err == nil {
		r.read = append(r.read, p)
	}
	return p, err
}
