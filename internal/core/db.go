package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const (
	dataDirName = ".vaultlink"
	dbFileName  = "index.sqlite"
)

// Link status values recorded by scan.
const (
	statusResolved = "resolved"
	statusMissing  = "missing"
	statusEscaped  = "escaped"
	statusWeb      = "web"
)

func dbPath(vaultPath string) string {
	return filepath.Join(vaultPath, dataDirName, dbFileName)
}

func ensureDataDir(vaultPath string) (string, error) {
	dir := filepath.Join(vaultPath, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return dir, nil
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			id    INTEGER PRIMARY KEY,
			path  TEXT NOT NULL UNIQUE,
			mtime INTEGER
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			id            INTEGER PRIMARY KEY,
			note_id       INTEGER NOT NULL,
			kind          TEXT NOT NULL,
			raw           TEXT NOT NULL,
			target        TEXT,
			anchor        TEXT,
			block_id      TEXT,
			status        TEXT NOT NULL,
			resolved_path TEXT,
			FOREIGN KEY(note_id) REFERENCES notes(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_note ON links(note_id);`,
		`CREATE INDEX IF NOT EXISTS idx_links_status ON links(status);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

func insertNote(db *sql.DB, path string, mtime int64) (int64, error) {
	_, err := db.Exec(
		`INSERT INTO notes (path, mtime) VALUES (?, ?)
		 ON CONFLICT(path) DO UPDATE SET mtime=excluded.mtime`,
		path, mtime,
	)
	if err != nil {
		return 0, err
	}
	// last_insert_rowid is stale after a conflicting upsert, so the id is
	// always looked up by path.
	var id int64
	row := db.QueryRow("SELECT id FROM notes WHERE path = ?", path)
	if err := row.Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func insertLink(db *sql.DB, noteID int64, m LinkMatch, status, resolvedPath string) error {
	_, err := db.Exec(
		`INSERT INTO links (note_id, kind, raw, target, anchor, block_id, status, resolved_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		noteID, m.Kind, m.Raw, m.Path, m.Anchor, m.BlockID, status, resolvedPath,
	)
	return err
}
