// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package zipcrack_test

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/hashicorp/go-zipcrack"
	"github.com/klauspost/compress/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

const testWordlist = "123456\npassword\n\nfun\r\nletmein"

// compressWith compresses data with the writer returned by newWriter.
func compressWith(t *testing.T, data string, newWriter func(io.Writer) (io.WriteCloser, error)) []byte {
	t.Helper()
	var buf bytes.Buffer
	w, err := newWriter(&buf)
	require.NoError(t, err)
	_, err = io.WriteString(w, data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func TestNewWordlist(t *testing.T) {
	tests := []struct {
		name            string
		file            string
		newWriter       func(io.Writer) (io.WriteCloser, error)
		wantCompression string
	}{
		{
			name:            "plain text",
			file:            "words.txt",
			wantCompression: "",
		},
		{
			name:            "gzip",
			file:            "words.txt",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil },
			wantCompression: "gz",
		},
		{
			name:            "xz",
			file:            "words",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return xz.NewWriter(w) },
			wantCompression: "xz",
		},
		{
			name:            "zstd",
			file:            "words",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return zstd.NewWriter(w) },
			wantCompression: "zst",
		},
		{
			name:            "lz4",
			file:            "words",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return lz4.NewWriter(w), nil },
			wantCompression: "lz4",
		},
		{
			name:            "snappy",
			file:            "words",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return snappy.NewBufferedWriter(w), nil },
			wantCompression: "sz",
		},
		{
			name:            "brotli by extension",
			file:            "words.br",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return brotli.NewWriter(w), nil },
			wantCompression: "br",
		},
		{
			name:            "zlib by extension",
			file:            "words.zz",
			newWriter:       func(w io.Writer) (io.WriteCloser, error) { return zlib.NewWriter(w), nil },
			wantCompression: "zz",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			data := []byte(testWordlist)
			if test.newWriter != nil {
				data = compressWith(t, testWordlist, test.newWriter)
			}

			wl, err := zipcrack.NewWordlist(bytes.NewReader(data), test.file, zipcrack.NewConfig())
			require.NoError(t, err)
			defer wl.Close()

			assert.Equal(t, test.wantCompression, wl.Compression)
			got, err := drain(wl)
			require.NoError(t, err)
			assert.Equal(t, []string{"123456", "password", "", "fun", "letmein"}, got)
		})
	}
}

func TestNewWordlistForcedCompression(t *testing.T) {
	gz := compressWith(t, testWordlist, func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil })

	// forced gzip on a file without extension or detection
	wl, err := zipcrack.NewWordlist(bytes.NewReader(gz), "", zipcrack.NewConfig(zipcrack.WithWordlistCompression("gz"), zipcrack.WithSkipEmpty(true)))
	require.NoError(t, err)
	got, err := drain(wl)
	require.NoError(t, err)
	assert.Equal(t, []string{"123456", "password", "fun", "letmein"}, got)

	// none reads the file as plain text
	wl, err = zipcrack.NewWordlist(bytes.NewReader([]byte("\x1f\x8bfun\n")), "words.gz", zipcrack.NewConfig(zipcrack.WithWordlistCompression("none")))
	require.NoError(t, err)
	assert.Empty(t, wl.Compression)
	got, err = drain(wl)
	require.NoError(t, err)
	assert.Equal(t, []string{"\x1f\x8bfun"}, got)

	_, err = zipcrack.NewWordlist(bytes.NewReader(gz), "", zipcrack.NewConfig(zipcrack.WithWordlistCompression("rar")))
	assert.ErrorIs(t, err, zipcrack.ErrUnsupportedCompression)
}

func TestNewWordlistCorruptStream(t *testing.T) {
	// valid bzip2 magic followed by garbage
	wl, err := zipcrack.NewWordlist(bytes.NewReader([]byte("BZh9garbage garbage garbage")), "words", zipcrack.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, "bz2", wl.Compression)

	_, err = drain(wl)
	assert.Error(t, err)
}

func TestOpenWordlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt.gz")
	gz := compressWith(t, testWordlist, func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil })
	require.NoError(t, os.WriteFile(path, gz, 0o600))

	wl, err := zipcrack.OpenWordlist(path, zipcrack.NewConfig())
	require.NoError(t, err)
	assert.Equal(t, "gz", wl.Compression)

	got, err := drain(wl)
	require.NoError(t, err)
	assert.Len(t, got, 5)
	assert.NoError(t, wl.Close())

	_, err = zipcrack.OpenWordlist(filepath.Join(t.TempDir(), "missing.txt"), zipcrack.NewConfig())
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewWordlistMaxSize(t *testing.T) {
	// the limit applies to the decompressed wordlist
	gz := compressWith(t, testWordlist, func(w io.Writer) (io.WriteCloser, error) { return gzip.NewWriter(w), nil })

	wl, err := zipcrack.NewWordlist(bytes.NewReader(gz), "", zipcrack.NewConfig(zipcrack.WithMaxWordlistSize(10)))
	require.NoError(t, err)
	_, err = drain(wl)
	assert.ErrorIs(t, err, zipcrack.ErrMaxWordlistSizeExceeded)

	wl, err = zipcrack.NewWordlist(bytes.NewReader(gz), "", zipcrack.NewConfig(zipcrack.WithMaxWordlistSize(int64(len(testWordlist)))))
	require.NoError(t, err)
	got, err := drain(wl)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}
