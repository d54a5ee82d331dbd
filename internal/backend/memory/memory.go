// Package memory implements the backend document contract in process
// memory. It backs the repository and handler tests and can simulate
// backend failures on demand.
package memory

import (
	"context"
	"sync"

	"github.com/sag-insper/schedule-api/internal/backend"
)

// Document is an in-memory backend document.
//
// FailFetch and FailStore, when set, are returned verbatim by the next
// calls to Fetch/Store — the way tests simulate an unreachable backend.
type Document struct {
	mu     sync.Mutex
	fields map[string]any
	exists bool

	FailFetch error
	FailStore error

	// Call counters let tests assert ordering rules, e.g. that
	// validation failures never reach the backend.
	Fetches int
	Stores  int
}

var _ backend.Document = (*Document)(nil)

// New returns a document that does not exist yet.
func New() *Document {
	return &Document{}
}

// Seed sets the document content directly, bypassing the counters.
func (d *Document) Seed(fields map[string]any) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fields = copyFields(fields)
	d.exists = true
}

// Fields returns the current document content, or nil if it was never
// written.
func (d *Document) Fields() map[string]any {
	d.mu.Lock()
	defer d.mu.Unlock()
	return copyFields(d.fields)
}

func (d *Document) Fetch(ctx context.Context) (map[string]any, bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Fetches++
	if d.FailFetch != nil {
		return nil, false, d.FailFetch
	}
	if !d.exists {
		return nil, false, nil
	}
	return copyFields(d.fields), true, nil
}

func (d *Document) Store(ctx context.Context, fields map[string]any) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Stores++
	if d.FailStore != nil {
		return d.FailStore
	}
	d.fields = copyFields(fields)
	d.exists = true
	return nil
}

func copyFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
