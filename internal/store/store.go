// Package store provides an optional DuckDB-backed cache of match-sweep
// results, keyed by the DB file's fingerprint so a stale cache never masks
// a rebuilt database.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/dellytools/sansa-go/internal/svmodel"
)

// Store manages a DuckDB connection holding cached match rows.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at path. An empty path opens an
// in-memory database, useful for tests.
func Open(path string) (*Store, error) {
	if path != "" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("create cache directory: %w", err)
			}
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ensureSchema() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS match_cache (
		db_size BIGINT,
		db_mtime BIGINT,
		chr INTEGER,
		start INTEGER,
		chr2 INTEGER,
		"end" INTEGER,
		svt INTEGER,
		svlen INTEGER,
		dbid INTEGER,
		PRIMARY KEY (db_size, db_mtime, chr, start, chr2, "end", svt, svlen)
	)`)
	return err
}

// Lookup returns a previously cached match for q against the DB identified
// by fp. ok is false on a cache miss.
func (s *Store) Lookup(fp Fingerprint, q svmodel.SV) (dbid int32, ok bool, err error) {
	row := s.db.QueryRow(`SELECT dbid FROM match_cache
		WHERE db_size = ? AND db_mtime = ? AND chr = ? AND start = ? AND chr2 = ? AND "end" = ? AND svt = ? AND svlen = ?`,
		fp.Size, fp.ModTime, q.Chr, q.Start, q.Chr2, q.End, q.Svt, q.SVLen)

	if err := row.Scan(&dbid); err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		return 0, false, err
	}
	return dbid, true, nil
}

// Put records the sweep's result for q under the DB fingerprint fp.
func (s *Store) Put(fp Fingerprint, q svmodel.SV, dbid int32) error {
	_, err := s.db.Exec(`INSERT OR REPLACE INTO match_cache
		(db_size, db_mtime, chr, start, chr2, "end", svt, svlen, dbid)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		fp.Size, fp.ModTime, q.Chr, q.Start, q.Chr2, q.End, q.Svt, q.SVLen, dbid)
	return err
}

// Clear drops every cached row. Rows cached under an older DB fingerprint
// are never served by Lookup even without a Clear, since the fingerprint is
// part of the key.
func (s *Store) Clear() error {
	_, err := s.db.Exec(`DELETE FROM match_cache`)
	return err
}
