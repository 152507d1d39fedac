package journal

import (
	"database/sql"
	"fmt"
)

// Tx exposes the journal's write operations inside one transaction.
type Tx struct {
	tx *sql.Tx
}

// UpsertFile writes the file's post-edit state.
func (tx *Tx) UpsertFile(file *FileRecord) error {
	_, err := tx.tx.Exec(`
        INSERT INTO files (path, checksum, last_modified, version)
        VALUES (?, ?, ?, ?)
        ON CONFLICT(path) DO UPDATE SET
            checksum = excluded.checksum,
            last_modified = excluded.last_modified,
            version = excluded.version
    `, file.Path, file.Checksum, file.LastModified, file.Version)

	if err != nil {
		return fmt.Errorf("failed to upsert file in transaction: %w", err)
	}

	return nil
}

// InsertEdit appends one edit batch record.
func (tx *Tx) InsertEdit(edit *EditRecord) error {
	_, err := tx.tx.Exec(`
        INSERT INTO edits (batch_id, path, start, old_end, new_len, applied_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `, edit.BatchID, edit.Path, edit.Start, edit.OldEnd, edit.NewLen, edit.AppliedAt)

	if err != nil {
		return fmt.Errorf("failed to insert edit in transaction: %w", err)
	}

	return nil
}
