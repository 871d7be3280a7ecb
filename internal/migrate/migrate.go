// Package migrate contains the one-off data migrations for the karmadeck
// backend: the player field renames, the redemption-code restructuring and
// the collection copy, plus the batched runner that drives them against a
// document store.
package migrate

import (
	"context"
	"fmt"
)

// Document is one store document: an identifier plus its field map.
// Data is treated as read-only by transforms.
type Document struct {
	ID   string
	Data map[string]interface{}
}

// FieldOp is a single tagged update operation against an existing document:
// either set a field to a value or delete it via the store's sentinel.
type FieldOp struct {
	Path   string
	Value  interface{}
	Delete bool
}

func SetField(path string, value interface{}) FieldOp {
	return FieldOp{Path: path, Value: value}
}

func DeleteField(path string) FieldOp {
	return FieldOp{Path: path, Delete: true}
}

// serverTimestamp is the type of the ServerTimestamp sentinel.
type serverTimestamp struct{}

// ServerTimestamp is a placeholder value usable inside a Write's Set map.
// Each store backend replaces it with its own write-time server timestamp.
var ServerTimestamp = serverTimestamp{}

// Write is one staged write against the target collection. Set non-nil
// means create-or-overwrite the whole document; otherwise Ops is applied
// as an in-place update of the existing document.
type Write struct {
	ID  string
	Set map[string]interface{}
	Ops []FieldOp
}

// Batch accumulates writes against one collection and commits them as a
// unit. Commit either applies every staged operation or none (to the
// extent the underlying store guarantees it).
type Batch interface {
	Set(id string, data map[string]interface{})
	Update(id string, ops []FieldOp)
	Len() int
	Commit(ctx context.Context) error
}

// Store is the document-store surface the migrations need. FetchPage
// returns up to pageSize documents ordered ascending by ID, strictly after
// startAfter (empty startAfter means the first page); an empty result
// means the collection is exhausted. FetchAll reads a whole collection in
// one call.
type Store interface {
	FetchPage(ctx context.Context, collection, startAfter string, pageSize int) ([]Document, error)
	FetchAll(ctx context.Context, collection string) ([]Document, error)
	Batch(collection string) Batch
}

// BatchCommitError reports a failed batch commit along with how many
// operations were staged in it.
type BatchCommitError struct {
	Collection string
	Ops        int
	Err        error
}

func (e *BatchCommitError) Error() string {
	return fmt.Sprintf("failed to commit batch of %d ops to '%s': %v", e.Ops, e.Collection, e.Err)
}

func (e *BatchCommitError) Unwrap() error {
	return e.Err
}
