// Package sqlite implements the backend document contract on an
// embedded SQLite database.
//
// modernc.org/sqlite is a pure Go translation of SQLite — no C
// compiler needed, works everywhere Go works. Every collection
// document is one row of the documents table, keyed by
// (collection, doc_id), holding the JSON data string and the numeric
// last_update timestamp.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sag-insper/schedule-api/internal/backend"

	// Registers the "sqlite" driver with database/sql.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool to the document database.
type DB struct {
	conn *sql.DB
}

// New opens (or creates) the database at dbPath and ensures the
// documents table exists. Use ":memory:" for a throwaway database.
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL keeps reads concurrent with the whole-document writes.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS documents (
			collection  TEXT NOT NULL,
			doc_id      TEXT NOT NULL,
			data        TEXT NOT NULL,
			last_update REAL NOT NULL,
			PRIMARY KEY (collection, doc_id)
		);
	`)
	if err != nil {
		return fmt.Errorf("creating documents table: %w", err)
	}
	return nil
}

// Document returns a handle to one collection document.
func (db *DB) Document(collection, docID string) backend.Document {
	return &document{db: db, collection: collection, docID: docID}
}

type document struct {
	db         *DB
	collection string
	docID      string
}

var _ backend.Document = (*document)(nil)

func (d *document) Fetch(ctx context.Context) (map[string]any, bool, error) {
	var (
		data       string
		lastUpdate float64
	)
	err := d.db.conn.QueryRowContext(ctx,
		`SELECT data, last_update FROM documents
		 WHERE collection = ? AND doc_id = ?`,
		d.collection, d.docID,
	).Scan(&data, &lastUpdate)

	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("sqlite: fetching document %s/%s: %w", d.collection, d.docID, err)
	}

	return map[string]any{
		"data":        data,
		"last_update": lastUpdate,
	}, true, nil
}

func (d *document) Store(ctx context.Context, fields map[string]any) error {
	data, ok := fields["data"].(string)
	if !ok {
		return fmt.Errorf("sqlite: document %s/%s: data field must be a string", d.collection, d.docID)
	}
	lastUpdate, ok := fields["last_update"].(float64)
	if !ok {
		return fmt.Errorf("sqlite: document %s/%s: last_update field must be a number", d.collection, d.docID)
	}

	// Single UPSERT so a concurrent reader never observes a torn
	// document.
	_, err := d.db.conn.ExecContext(ctx,
		`INSERT INTO documents (collection, doc_id, data, last_update)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (collection, doc_id) DO UPDATE SET
			data = excluded.data,
			last_update = excluded.last_update`,
		d.collection, d.docID, data, lastUpdate,
	)
	if err != nil {
		return fmt.Errorf("sqlite: storing document %s/%s: %w", d.collection, d.docID, err)
	}
	return nil
}
