// Package journal persists the manipulation history of a project in
// SQLite: one record per tracked file (path, checksum, version) and one
// record per applied edit batch. The journal is purely observational;
// replaying or undoing edits is out of scope.
package journal

import (
	"crypto/md5"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound           = errors.New("record not found")
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// FileRecord is the journal's view of one tracked file.
type FileRecord struct {
	Path         string
	Checksum     string
	LastModified int64
	Version      int
}

// EditRecord is one applied edit batch. Start and OldEnd are byte offsets
// into the pre-edit text; NewLen is the length of the replacement.
type EditRecord struct {
	BatchID   string
	Path      string
	Start     int
	OldEnd    int
	NewLen    int
	AppliedAt int64
}

// Journal is an open edit journal. Safe for use from one goroutine.
type Journal struct {
	db *sql.DB
}

// Open opens (creating if needed) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	// Enable foreign keys and WAL mode
	if _, err := db.Exec(`
        PRAGMA foreign_keys = ON;
        PRAGMA journal_mode = WAL;
    `); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set PRAGMA: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// WithTx runs fn inside a transaction, committing when it returns nil and
// rolling back otherwise.
func (j *Journal) WithTx(fn func(*Tx) error) error {
	tx, err := j.db.Begin()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}
	defer tx.Rollback()

	if err := fn(&Tx{tx}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidTransaction, err)
	}

	return nil
}

// RecordEdit writes one edit batch and the file's post-edit state in one
// transaction.
func (j *Journal) RecordEdit(file *FileRecord, edit *EditRecord) error {
	return j.WithTx(func(tx *Tx) error {
		if err := tx.UpsertFile(file); err != nil {
			return err
		}
		return tx.InsertEdit(edit)
	})
}

// GetFile returns the record for path, or ErrNotFound.
func (j *Journal) GetFile(path string) (*FileRecord, error) {
	var record FileRecord
	err := j.db.QueryRow(
		"SELECT path, checksum, last_modified, version FROM files WHERE path = ?",
		path,
	).Scan(&record.Path, &record.Checksum, &record.LastModified, &record.Version)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query file: %w", err)
	}

	return &record, nil
}

// GetAllFiles returns every tracked file record.
func (j *Journal) GetAllFiles() ([]FileRecord, error) {
	rows, err := j.db.Query("SELECT path, checksum, last_modified, version FROM files")
	if err != nil {
		return nil, fmt.Errorf("failed to query files: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var record FileRecord
		if err := rows.Scan(&record.Path, &record.Checksum, &record.LastModified, &record.Version); err != nil {
			return nil, fmt.Errorf("failed to scan file record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating file records: %w", err)
	}

	return records, nil
}

// EditsForFile returns the edit batches recorded for path, oldest first.
func (j *Journal) EditsForFile(path string) ([]EditRecord, error) {
	rows, err := j.db.Query(`
        SELECT batch_id, path, start, old_end, new_len, applied_at
        FROM edits WHERE path = ? ORDER BY id
    `, path)
	if err != nil {
		return nil, fmt.Errorf("failed to query edits: %w", err)
	}
	defer rows.Close()

	var records []EditRecord
	for rows.Next() {
		var record EditRecord
		if err := rows.Scan(&record.BatchID, &record.Path, &record.Start,
			&record.OldEnd, &record.NewLen, &record.AppliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan edit record: %w", err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating edit records: %w", err)
	}

	return records, nil
}

// DeleteFile removes the file record and, via the foreign key, its edits.
func (j *Journal) DeleteFile(path string) error {
	result, err := j.db.Exec("DELETE FROM files WHERE path = ?", path)
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Checksum returns the hex MD5 digest of content.
func Checksum(content []byte) string {
	hash := md5.Sum(content)
	return hex.EncodeToString(hash[:])
}
