// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

package potfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-zipcrack/internal/potfile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *potfile.Potfile {
	t.Helper()
	p, err := potfile.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { p.Close() })
	return p
}

func TestStoreAndLookup(t *testing.T) {
	p := openInMemory(t)

	_, ok, err := p.Lookup("abc", "kitten.jpg")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Store("abc", "kitten.jpg", "jpg", "fun"))

	password, ok, err := p.Lookup("abc", "kitten.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fun", password)

	// same entry name in another archive
	_, ok, err = p.Lookup("def", "kitten.jpg")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStoreReplaces(t *testing.T) {
	p := openInMemory(t)

	require.NoError(t, p.Store("abc", "kitten.jpg", "jpg", "fun"))
	require.NoError(t, p.Store("abc", "kitten.jpg", "jpg", "fun_alt"))

	password, ok, err := p.Lookup("abc", "kitten.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fun_alt", password)
}

func TestStoreEmptyPassword(t *testing.T) {
	p := openInMemory(t)

	require.NoError(t, p.Store("abc", "notes.xml", "xml", ""))
	password, ok, err := p.Lookup("abc", "notes.xml")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, password)
}

func TestPersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zipcrack.pot")

	p, err := potfile.Open(path)
	require.NoError(t, err)
	require.NoError(t, p.Store("abc", "kitten.jpg", "jpg", "fun"))
	require.NoError(t, p.Close())

	p, err = potfile.Open(path)
	require.NoError(t, err)
	defer p.Close()
	password, ok, err := p.Lookup("abc", "kitten.jpg")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "fun", password)
}

func TestDigest(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.zip")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o600))

	digest, err := potfile.Digest(path)
	require.NoError(t, err)
	assert.Equal(t, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", digest)

	_, err = potfile.Digest(filepath.Join(t.TempDir(), "missing.zip"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
