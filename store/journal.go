// Package store keeps a sqlite journal of every saved capture.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/soocke/viewfinder-go/domain/camera"
)

// Entry is one journal row.
type Entry struct {
	ID         string
	Kind       camera.Kind
	URI        string
	Width      int
	Height     int
	CapturedAt time.Time
	Duration   time.Duration
	Frames     int
	Latitude   float64
	Longitude  float64
	Comment    string
}

// Journal persists artifacts in sqlite.
type Journal struct {
	db *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS captures (
	id          TEXT PRIMARY KEY,
	kind        TEXT NOT NULL,
	uri         TEXT NOT NULL,
	width       INTEGER NOT NULL,
	height      INTEGER NOT NULL,
	captured_at INTEGER NOT NULL,
	duration_ms INTEGER NOT NULL DEFAULT 0,
	frames      INTEGER NOT NULL DEFAULT 0,
	latitude    REAL NOT NULL DEFAULT 0,
	longitude   REAL NOT NULL DEFAULT 0,
	comment     TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_captures_captured_at ON captures(captured_at);
`

// Open opens (creating if needed) the journal at path and migrates it.
func Open(ctx context.Context, path string) (*Journal, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("store: create dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return &Journal{db: db}, nil
}

// Record inserts or replaces the journal entry for art.
func (j *Journal) Record(ctx context.Context, art *camera.Artifact) error {
	if art == nil {
		return errors.New("store: nil artifact")
	}
	var lat, lng float64
	var comment string
	if art.Metadata != nil {
		lat, lng, comment = art.Metadata.GPSLatitude, art.Metadata.GPSLongitude, art.Metadata.UserComment
	}
	_, err := j.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO captures
			(id, kind, uri, width, height, captured_at, duration_ms, frames, latitude, longitude, comment)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		art.ID, art.Kind.String(), art.URI, art.Width, art.Height,
		art.CapturedAt.UnixMilli(), art.Duration.Milliseconds(), art.Frames,
		lat, lng, comment,
	)
	if err != nil {
		return fmt.Errorf("store: record %s: %w", art.ID, err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, kind, uri, width, height, captured_at, duration_ms, frames, latitude, longitude, comment
		FROM captures ORDER BY captured_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("store: query recent: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e          Entry
			kind       string
			capturedMS int64
			durMS      int64
		)
		if err := rows.Scan(&e.ID, &kind, &e.URI, &e.Width, &e.Height, &capturedMS, &durMS, &e.Frames, &e.Latitude, &e.Longitude, &e.Comment); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		e.Kind = parseKind(kind)
		e.CapturedAt = time.UnixMilli(capturedMS)
		e.Duration = time.Duration(durMS) * time.Millisecond
		out = append(out, e)
	}
	return out, rows.Err()
}

// Count returns the number of journal entries.
func (j *Journal) Count(ctx context.Context) (int, error) {
	var n int
	if err := j.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM captures`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: count: %w", err)
	}
	return n, nil
}

// Close releases the database handle.
func (j *Journal) Close() error { return j.db.Close() }

func parseKind(s string) camera.Kind {
	if s == camera.KindVideo.String() {
		return camera.KindVideo
	}
	return camera.KindPhoto
}
