// Package backend defines the contract to the persistent document
// store. Each collection is one opaque document addressed by
// (collection, document ID); the document's fields map carries exactly
// two keys, "data" and "last_update".
//
// The repository only ever fetches and stores whole documents through
// this interface, so swapping the embedded sqlite implementation for a
// real per-record transactional store never touches the operation
// logic.
package backend

import "context"

// Document is a handle to one collection document.
type Document interface {
	// Fetch reads the document. exists is false when the document has
	// never been written; err reports a backend failure.
	Fetch(ctx context.Context) (fields map[string]any, exists bool, err error)

	// Store writes the document whole, replacing any previous version.
	// Last writer wins.
	Store(ctx context.Context, fields map[string]any) error
}
