package migrate

import (
	"context"
	"errors"
	"sort"
)

// memStore is an in-memory Store double. Commits are atomic: a failing
// commit applies none of its staged operations.
type memStore struct {
	collections map[string]map[string]map[string]interface{}
	commits     int
	failCommits int // fail the next N commits
	pagesRead   int
}

func newMemStore() *memStore {
	return &memStore{collections: make(map[string]map[string]map[string]interface{})}
}

func (s *memStore) seed(collection, id string, data map[string]interface{}) {
	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]map[string]interface{})
	}
	s.collections[collection][id] = data
}

func (s *memStore) get(collection, id string) (map[string]interface{}, bool) {
	doc, ok := s.collections[collection][id]
	return doc, ok
}

func (s *memStore) ids(collection string) []string {
	var ids []string
	for id := range s.collections[collection] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *memStore) FetchPage(_ context.Context, collection, startAfter string, pageSize int) ([]Document, error) {
	s.pagesRead++
	var docs []Document
	for _, id := range s.ids(collection) {
		if startAfter != "" && id <= startAfter {
			continue
		}
		docs = append(docs, Document{ID: id, Data: cloneDoc(s.collections[collection][id])})
		if len(docs) == pageSize {
			break
		}
	}
	return docs, nil
}

func (s *memStore) FetchAll(_ context.Context, collection string) ([]Document, error) {
	var docs []Document
	for _, id := range s.ids(collection) {
		docs = append(docs, Document{ID: id, Data: cloneDoc(s.collections[collection][id])})
	}
	return docs, nil
}

func (s *memStore) Batch(collection string) Batch {
	return &memBatch{store: s, collection: collection}
}

type stagedOp struct {
	id  string
	set map[string]interface{}
	ops []FieldOp
}

type memBatch struct {
	store      *memStore
	collection string
	staged     []stagedOp
}

func (b *memBatch) Set(id string, data map[string]interface{}) {
	b.staged = append(b.staged, stagedOp{id: id, set: cloneDoc(data)})
}

func (b *memBatch) Update(id string, ops []FieldOp) {
	b.staged = append(b.staged, stagedOp{id: id, ops: ops})
}

func (b *memBatch) Len() int {
	return len(b.staged)
}

func (b *memBatch) Commit(_ context.Context) error {
	if b.store.failCommits > 0 {
		b.store.failCommits--
		return &BatchCommitError{
			Collection: b.collection,
			Ops:        len(b.staged),
			Err:        errors.New("commit rejected"),
		}
	}

	for _, op := range b.staged {
		if op.set != nil {
			b.store.seed(b.collection, op.id, op.set)
			continue
		}
		doc, ok := b.store.get(b.collection, op.id)
		if !ok {
			doc = make(map[string]interface{})
		}
		for _, fo := range op.ops {
			if fo.Delete {
				delete(doc, fo.Path)
			} else {
				doc[fo.Path] = fo.Value
			}
		}
		b.store.seed(b.collection, op.id, doc)
	}
	b.store.commits++
	return nil
}

func cloneDoc(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}
