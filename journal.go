package neonpack

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Journal records which textures have been rendered so that unchanged
// textures can be skipped on subsequent batch runs.
type Journal struct {
	db *sql.DB
}

// Render is a single journal entry.
type Render struct {
	Texture    string
	SHA1       string
	Ordering   Ordering
	Colors     []string
	Output     string
	RenderedAt time.Time
}

// OpenJournal opens or creates the journal database in file.
func OpenJournal(file string) (*Journal, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS render (id INTEGER PRIMARY KEY NOT NULL, texture TEXT NOT NULL UNIQUE, sha1 TEXT NOT NULL, ordering TEXT NOT NULL, colors TEXT NOT NULL, output TEXT NOT NULL, rendered_at INTEGER NOT NULL)"); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// Lookup returns the last recorded render of texture, or nil if there is
// none.
func (j *Journal) Lookup(texture string) (*Render, error) {
	var ordering, colors string
	var renderedAt int64
	r := Render{Texture: texture}
	switch err := j.db.QueryRow("SELECT sha1, ordering, colors, output, rendered_at FROM render WHERE texture = ?", texture).Scan(&r.SHA1, &ordering, &colors, &r.Output, &renderedAt); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
		o, err := ParseOrdering(ordering)
		if err != nil {
			return nil, err
		}
		r.Ordering = o
		if colors != "" {
			r.Colors = strings.Split(colors, ",")
		}
		r.RenderedAt = time.Unix(renderedAt, 0)
		return &r, nil
	default:
		return nil, err
	}
}

// Record stores r, replacing any earlier render of the same texture.
func (j *Journal) Record(r Render) error {
	if r.RenderedAt.IsZero() {
		r.RenderedAt = time.Now()
	}
	if _, err := j.db.Exec("INSERT OR REPLACE INTO render (texture, sha1, ordering, colors, output, rendered_at) VALUES (?, ?, ?, ?, ?, ?)", r.Texture, r.SHA1, r.Ordering.String(), strings.Join(r.Colors, ","), r.Output, r.RenderedAt.Unix()); err != nil {
		return err
	}
	return nil
}

// Forget removes any record of texture.
func (j *Journal) Forget(texture string) error {
	if _, err := j.db.Exec("DELETE FROM render WHERE texture = ?", texture); err != nil {
		return err
	}
	return nil
}

// Current reports whether the last render of texture used the same source
// and ordering. Random orderings are never current.
func (r *Render) Current(sha1 string, o Ordering) bool {
	return r != nil && o.Deterministic() && r.Ordering == o && r.SHA1 == sha1
}
