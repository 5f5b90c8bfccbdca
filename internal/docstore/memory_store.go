package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Store used by tests and local runs without a
// database.
type MemoryStore struct {
	mu    sync.RWMutex
	seq   int64
	now   func() time.Time
	byCol map[string]map[string]memoryDoc
}

type memoryDoc struct {
	raw       []byte
	createdAt time.Time
	seq       int64
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now, byCol: make(map[string]map[string]memoryDoc)}
}

func (s *MemoryStore) Create(ctx context.Context, collection string, data map[string]any) (string, error) {
	id := uuid.NewString()
	if err := s.put(collection, id, data, false); err != nil {
		return "", err
	}
	return id, nil
}

func (s *MemoryStore) Put(ctx context.Context, collection, id string, data map[string]any) error {
	return s.put(collection, id, data, true)
}

func (s *MemoryStore) put(collection, id string, data map[string]any, keepCreated bool) error {
	_, raw, err := normalize(data)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	docs, ok := s.byCol[collection]
	if !ok {
		docs = make(map[string]memoryDoc)
		s.byCol[collection] = docs
	}
	s.seq++
	doc := memoryDoc{raw: raw, createdAt: s.now().UTC(), seq: s.seq}
	if prev, exists := docs[id]; exists && keepCreated {
		doc.createdAt, doc.seq = prev.createdAt, prev.seq
	}
	docs[id] = doc
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.byCol[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc.decode(collection, id)
}

func (s *MemoryStore) Query(ctx context.Context, q Query) ([]Document, error) {
	for _, f := range q.Filters {
		if err := validateFilter(f); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	type entry struct {
		doc Document
		seq int64
	}
	entries := make([]entry, 0, len(s.byCol[q.Collection]))
	for id, stored := range s.byCol[q.Collection] {
		doc, err := stored.decode(q.Collection, id)
		if err != nil {
			s.mu.RUnlock()
			return nil, err
		}
		if matchesAll(doc.Data, q.Filters) {
			entries = append(entries, entry{doc: doc, seq: stored.seq})
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool {
		if q.OrderBy != "" {
			a, b := textOf(entries[i].doc.Data[q.OrderBy]), textOf(entries[j].doc.Data[q.OrderBy])
			if a != b {
				if q.Desc {
					return a > b
				}
				return a < b
			}
		}
		return entries[i].seq < entries[j].seq
	})

	out := make([]Document, len(entries))
	for i, e := range entries {
		out[i] = e.doc
	}
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byCol[collection][id]; !ok {
		return ErrNotFound
	}
	delete(s.byCol[collection], id)
	return nil
}

func (s *MemoryStore) Count(ctx context.Context, collection string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.byCol[collection])), nil
}

func (d memoryDoc) decode(collection, id string) (Document, error) {
	data := map[string]any{}
	if err := json.Unmarshal(d.raw, &data); err != nil {
		return Document{}, fmt.Errorf("document %s/%s: %w", collection, id, err)
	}
	return Document{ID: id, Collection: collection, Data: data, CreatedAt: d.createdAt}, nil
}

func matchesAll(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok {
			return false
		}
		text := textOf(v)
		switch f.Op {
		case OpEqual:
			if text != fmt.Sprint(f.Value) {
				return false
			}
		case OpIn:
			found := false
			for _, want := range f.Value.([]string) {
				if text == want {
					found = true
					break
				}
			}
			if !found {
				return false
			}
		}
	}
	return true
}

// textOf mirrors the ->> operator: scalars as their text, nil as "".
func textOf(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
