package core

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

const indexFileName = "index.sqlite"

// IndexPath returns the location of the exported index under root.
func IndexPath(root string) string {
	return filepath.Join(root, dataDirName, indexFileName)
}

func openDBAt(path string) (*sql.DB, error) {
	return sql.Open("sqlite", fmt.Sprintf("file:%s", path))
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
			id   INTEGER PRIMARY KEY,
			path TEXT NOT NULL UNIQUE
		);`,
		`CREATE TABLE IF NOT EXISTS links (
			id           INTEGER PRIMARY KEY,
			document_id  INTEGER NOT NULL,
			class        TEXT NOT NULL,
			raw          TEXT NOT NULL,
			target       TEXT NOT NULL,
			resolved     TEXT,
			valid        INTEGER NOT NULL,
			start_offset INTEGER NOT NULL,
			end_offset   INTEGER NOT NULL,
			FOREIGN KEY(document_id) REFERENCES documents(id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_links_document ON links(document_id);`,
		`CREATE INDEX IF NOT EXISTS idx_links_resolved ON links(resolved);`,
		`CREATE INDEX IF NOT EXISTS idx_links_valid ON links(valid);`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// WriteIndex exports the current scan+validate result to
// .linkheal/index.sqlite for external querying. The export is write-only
// output: the pipeline itself never reads it back. The database is built in
// a temp file and moved into place atomically.
func WriteIndex(root string, links []ResolvedLink) error {
	dir := filepath.Join(root, dataDirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmpPath := IndexPath(root) + ".tmp"
	_ = os.Remove(tmpPath)
	defer os.Remove(tmpPath)

	db, err := openDBAt(tmpPath)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := initSchema(db); err != nil {
		return err
	}

	docIDs := make(map[string]int64)
	for _, l := range links {
		id, ok := docIDs[l.Doc]
		if !ok {
			res, err := db.Exec(`INSERT INTO documents (path) VALUES (?)`, l.Doc)
			if err != nil {
				return err
			}
			if id, err = res.LastInsertId(); err != nil {
				return err
			}
			docIDs[l.Doc] = id
		}
		var resolved any
		if !l.OutOfRoot {
			resolved = l.Resolved
		}
		valid := 0
		if l.Valid {
			valid = 1
		}
		if _, err := db.Exec(
			`INSERT INTO links (document_id, class, raw, target, resolved, valid, start_offset, end_offset)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			id, string(l.Class), l.Raw, l.Target, resolved, valid, l.Start, l.End,
		); err != nil {
			return err
		}
	}

	if err := db.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, IndexPath(root))
}
