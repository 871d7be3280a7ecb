package migrate

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
)

// FirestoreStore is the default Store backend, backed by a Firestore
// client. Batches map onto client.Batch(), field deletion onto
// firestore.Delete and the server-timestamp sentinel onto
// firestore.ServerTimestamp.
type FirestoreStore struct {
	client *firestore.Client
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

// FetchPage reads one page ordered by document ID. Ordering by
// firestore.DocumentID keeps pages stable as long as the collection is not
// mutated mid-run.
func (s *FirestoreStore) FetchPage(ctx context.Context, collection, startAfter string, pageSize int) ([]Document, error) {
	q := s.client.Collection(collection).
		OrderBy(firestore.DocumentID, firestore.Asc).
		Limit(pageSize)
	if startAfter != "" {
		q = q.StartAfter(startAfter)
	}

	snaps, err := q.Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore query on '%s' failed: %w", collection, err)
	}

	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) FetchAll(ctx context.Context, collection string) ([]Document, error) {
	snaps, err := s.client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		return nil, fmt.Errorf("firestore read of '%s' failed: %w", collection, err)
	}

	docs := make([]Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, Document{ID: snap.Ref.ID, Data: snap.Data()})
	}
	return docs, nil
}

func (s *FirestoreStore) Batch(collection string) Batch {
	return &firestoreBatch{
		wb:   s.client.Batch(),
		coll: s.client.Collection(collection),
	}
}

type firestoreBatch struct {
	wb   *firestore.WriteBatch
	coll *firestore.CollectionRef
	ops  int
}

func (b *firestoreBatch) Set(id string, data map[string]interface{}) {
	b.wb.Set(b.coll.Doc(id), firestoreValues(data))
	b.ops++
}

func (b *firestoreBatch) Update(id string, ops []FieldOp) {
	b.wb.Update(b.coll.Doc(id), firestoreUpdates(ops))
	b.ops++
}

func (b *firestoreBatch) Len() int {
	return b.ops
}

func (b *firestoreBatch) Commit(ctx context.Context) error {
	if _, err := b.wb.Commit(ctx); err != nil {
		return &BatchCommitError{Collection: b.coll.ID, Ops: b.ops, Err: err}
	}
	return nil
}

// firestoreUpdates translates tagged field ops into firestore.Update
// entries, mapping deletions onto the firestore.Delete sentinel.
func firestoreUpdates(ops []FieldOp) []firestore.Update {
	updates := make([]firestore.Update, 0, len(ops))
	for _, op := range ops {
		if op.Delete {
			updates = append(updates, firestore.Update{Path: op.Path, Value: firestore.Delete})
		} else {
			updates = append(updates, firestore.Update{Path: op.Path, Value: op.Value})
		}
	}
	return updates
}

// firestoreValues copies a Set payload, swapping the portable
// server-timestamp sentinel for Firestore's.
func firestoreValues(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if _, ok := v.(serverTimestamp); ok {
			out[k] = firestore.ServerTimestamp
		} else {
			out[k] = v
		}
	}
	return out
}
