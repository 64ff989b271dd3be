package pubstatic

import (
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = sql.ErrNoRows

// BuildRecord describes one completed build.
type BuildRecord struct {
	ID        int64
	BuiltAt   time.Time
	Documents int
	Tags      int
	Pages     int
	Files     int
	Digest    string // hex SHA-256 over the written output
}

// BuildStore wraps a SQLite database holding the build history. Only build
// summaries are stored; the tag index is always recomputed.
type BuildStore struct {
	db *sql.DB
}

// NewBuildStore opens (or creates) the SQLite database at path, ensures the
// data directory exists, and creates the schema.
func NewBuildStore(path string) (*BuildStore, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// WAL lets `history` read while a build is recording.
	if _, err := db.Exec(`
		PRAGMA journal_mode=WAL;
		PRAGMA busy_timeout=5000;
		PRAGMA synchronous=NORMAL;
	`); err != nil {
		db.Close()
		return nil, err
	}
	db.SetMaxOpenConns(1)
	s := &BuildStore{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *BuildStore) Close() error {
	return s.db.Close()
}

func (s *BuildStore) ensureSchema() error {
	_, err := s.db.Exec(`
CREATE TABLE IF NOT EXISTS builds (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    built_at TEXT NOT NULL,
    documents INTEGER NOT NULL,
    tags INTEGER NOT NULL,
    pages INTEGER NOT NULL,
    files INTEGER NOT NULL,
    digest TEXT NOT NULL
);
`)
	return err
}

// RecordBuild stores r and returns it with its assigned ID. A zero BuiltAt
// is set to the current time.
func (s *BuildStore) RecordBuild(r BuildRecord) (BuildRecord, error) {
	if r.BuiltAt.IsZero() {
		r.BuiltAt = time.Now()
	}
	r.BuiltAt = r.BuiltAt.UTC()
	res, err := s.db.Exec(`INSERT INTO builds (built_at, documents, tags, pages, files, digest) VALUES (?, ?, ?, ?, ?, ?)`,
		r.BuiltAt.Format(time.RFC3339Nano), r.Documents, r.Tags, r.Pages, r.Files, r.Digest)
	if err != nil {
		return BuildRecord{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return BuildRecord{}, err
	}
	r.ID = id
	return r, nil
}

// LastBuild returns the most recent build, or ErrNotFound when the history
// is empty.
func (s *BuildStore) LastBuild() (BuildRecord, error) {
	row := s.db.QueryRow(`SELECT id, built_at, documents, tags, pages, files, digest FROM builds ORDER BY id DESC LIMIT 1`)
	return scanBuild(row)
}

// ListBuilds returns up to limit builds, newest first. A limit of zero or
// less returns every build.
func (s *BuildStore) ListBuilds(limit int) ([]BuildRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT id, built_at, documents, tags, pages, files, digest FROM builds ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var builds []BuildRecord
	for rows.Next() {
		r, err := scanBuild(rows)
		if err != nil {
			return nil, err
		}
		builds = append(builds, r)
	}
	return builds, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanBuild(row scanner) (BuildRecord, error) {
	var r BuildRecord
	var builtAt string
	if err := row.Scan(&r.ID, &builtAt, &r.Documents, &r.Tags, &r.Pages, &r.Files, &r.Digest); err != nil {
		return BuildRecord{}, err
	}
	t, err := time.Parse(time.RFC3339Nano, builtAt)
	if err != nil {
		return BuildRecord{}, err
	}
	r.BuiltAt = t
	return r, nil
}
