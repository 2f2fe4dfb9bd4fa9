// Copyright IBM Corp. 2023, 2025
// SPDX-License-Identifier: MPL-2.0

// Package potfile stores recovered passwords in a SQLite database, keyed by the
// content digest of the archive and the entry name. A stored password is tried
// first when the same archive is verified again.
package potfile

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// Record is a recovered password.
type Record struct {
	ID        uint   `gorm:"primaryKey"`
	Digest    string `gorm:"uniqueIndex:idx_digest_entry;not null"`
	Entry     string `gorm:"uniqueIndex:idx_digest_entry;not null"`
	Password  string
	FileType  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Potfile is a store of recovered passwords.
type Potfile struct {
	db *gorm.DB
}

// Open opens or creates the potfile at path and migrates its schema. Use
// ":memory:" for a potfile that is not persisted.
func Open(path string) (*Potfile, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open potfile %s", path)
	}

	// a single connection, every connection to ":memory:" is a new database
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "cannot open potfile")
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Wrap(err, "cannot migrate potfile")
	}
	return &Potfile{db: db}, nil
}

// Lookup returns the stored password of entry in the archive with digest. The
// boolean is false if no password is stored.
func (p *Potfile) Lookup(digest, entry string) (string, bool, error) {
	var r Record
	err := p.db.Where("digest = ? AND entry = ?", digest, entry).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "cannot query potfile")
	}
	return r.Password, true, nil
}

// Store saves the password of entry in the archive with digest. An existing
// password is replaced.
func (p *Potfile) Store(digest, entry, fileType, password string) error {
	r := Record{Digest: digest, Entry: entry, FileType: fileType, Password: password}
	err := p.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "digest"}, {Name: "entry"}},
		DoUpdates: clause.AssignmentColumns([]string{"password", "file_type", "updated_at"}),
	}).Create(&r).Error
	return errors.Wrap(err, "cannot store password")
}

// Close closes the database.
func (p *Potfile) Close() error {
	db, err := p.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

// Digest returns the hex encoded SHA-256 digest of the file at path.
func Digest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrap(err, "cannot open archive")
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrap(err, "cannot hash archive")
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
