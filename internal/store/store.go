// Package store holds the in-memory model of one collection: a mapping
// of record ID to record fields plus a last-update timestamp.
//
// The whole collection lives in a single backend document, so the store
// is built fresh from a fetched document at the start of every
// repository operation, mutated in memory, serialized, and written back
// whole. Nothing here touches the network; record values are plain
// field maps so the store stays schema-agnostic.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

var (
	// ErrNotInitialized reports a backend document whose data payload
	// is absent or not valid JSON — the collection was never seeded.
	ErrNotInitialized = errors.New("store: database not initialized")

	// ErrIDNotFound reports an update or delete against an unknown ID.
	ErrIDNotFound = errors.New("ID not found")
)

// Record is the raw field map of one stored entity. The "id" field is
// always present and equals the record's key in the snapshot.
type Record = map[string]any

// Store is the in-memory snapshot of one collection.
type Store struct {
	data       map[string]Record
	lastUpdate float64
	now        func() time.Time
}

// New returns an empty store. Used to seed a collection whose backend
// document does not exist yet.
func New() *Store {
	return &Store{
		data: make(map[string]Record),
		now:  time.Now,
	}
}

// Parse builds a store from the two backend document fields:
// "data" (a JSON-encoded id→record mapping) and "last_update"
// (a numeric unix timestamp).
func Parse(fields map[string]any) (*Store, error) {
	raw, ok := fields["data"].(string)
	if !ok {
		return nil, ErrNotInitialized
	}

	data := make(map[string]Record)
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInitialized, err)
	}

	return &Store{
		data:       data,
		lastUpdate: asTimestamp(fields["last_update"]),
		now:        time.Now,
	}, nil
}

// Document serializes the snapshot back into the backend document
// shape: data as a JSON string, last_update as a number.
func (s *Store) Document() (map[string]any, error) {
	raw, err := json.Marshal(s.data)
	if err != nil {
		return nil, fmt.Errorf("store: encoding data: %w", err)
	}
	return map[string]any{
		"data":        string(raw),
		"last_update": s.lastUpdate,
	}, nil
}

// LastUpdate returns the unix timestamp of the last mutation.
// It is an advisory freshness marker, not a concurrency token.
func (s *Store) LastUpdate() float64 {
	return s.lastUpdate
}

// Len returns the number of records in the snapshot.
func (s *Store) Len() int {
	return len(s.data)
}

// List returns all records. An empty collection yields an empty slice.
func (s *Store) List() []Record {
	records := make([]Record, 0, len(s.data))
	for _, record := range s.data {
		records = append(records, record)
	}
	return records
}

// Get returns the record with the given ID, if present.
func (s *Store) Get(id string) (Record, bool) {
	record, ok := s.data[id]
	return record, ok
}

// Add assigns a fresh unique ID to the given fields, inserts the
// record, bumps last_update, and returns the stored record.
func (s *Store) Add(fields Record) Record {
	id := GenerateID(func(candidate string) bool {
		_, taken := s.data[candidate]
		return taken
	})

	record := make(Record, len(fields)+1)
	for k, v := range fields {
		record[k] = v
	}
	record["id"] = id

	s.data[id] = record
	s.touch()
	return record
}

// Update shallow-merges the given fields into the existing record:
// every present key overwrites, keys absent from fields are preserved.
// Returns ErrIDNotFound for an unknown ID.
func (s *Store) Update(id string, fields Record) (Record, error) {
	record, ok := s.data[id]
	if !ok {
		return nil, ErrIDNotFound
	}
	for k, v := range fields {
		record[k] = v
	}
	record["id"] = id
	s.touch()
	return record, nil
}

// Delete removes the record with the given ID.
// Returns ErrIDNotFound for an unknown ID.
func (s *Store) Delete(id string) error {
	if _, ok := s.data[id]; !ok {
		return ErrIDNotFound
	}
	delete(s.data, id)
	s.touch()
	return nil
}

func (s *Store) touch() {
	s.lastUpdate = float64(s.now().UnixNano()) / float64(time.Second)
}

// asTimestamp accepts the numeric types a backend row or a decoded
// JSON document may carry for last_update.
func asTimestamp(v any) float64 {
	switch t := v.(type) {
	case float64:
		return t
	case int64:
		return float64(t)
	case int:
		return float64(t)
	case json.Number:
		f, _ := t.Float64()
		return f
	default:
		return 0
	}
}
