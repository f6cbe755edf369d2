package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// MemoryStore is a map-backed Store with the same contract as the DynamoDB
// adapter. It backs tests and local runs without AWS credentials.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]map[string]map[string]interface{}
	err  error
	now  func() time.Time
	hub  hub
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]map[string]map[string]interface{}),
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// SetError makes every subsequent read/write fail with the given error,
// wrapped as ErrUnavailable. Pass nil to heal the store.
func (m *MemoryStore) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MemoryStore) Get(ctx context.Context, collection, key string) (Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return Document{}, fmt.Errorf("%w: get %s/%s: %v", ErrUnavailable, collection, key, m.err)
	}
	doc, ok := m.data[collection][key]
	if !ok {
		return Document{}, fmt.Errorf("get %s/%s: %w", collection, key, ErrNotFound)
	}
	return Document{Key: key, Data: copyData(doc)}, nil
}

func (m *MemoryStore) Put(ctx context.Context, collection, key string, data map[string]interface{}) error {
	m.mu.Lock()
	if m.err != nil {
		err := m.err
		m.mu.Unlock()
		return fmt.Errorf("%w: put %s/%s: %v", ErrUnavailable, collection, key, err)
	}
	doc := copyData(data)
	for k, v := range doc {
		if _, ok := v.(serverTimestamp); ok {
			doc[k] = m.now()
		}
	}
	if m.data[collection] == nil {
		m.data[collection] = make(map[string]map[string]interface{})
	}
	m.data[collection][key] = doc
	m.mu.Unlock()

	m.hub.notify(collection)
	return nil
}

func (m *MemoryStore) Query(ctx context.Context, spec QuerySpec) ([]Document, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.err != nil {
		return nil, fmt.Errorf("%w: query %s: %v", ErrUnavailable, spec.Collection, m.err)
	}

	var docs []Document
	for key, doc := range m.data[spec.Collection] {
		if matchesFilters(doc, spec.Filters) {
			docs = append(docs, Document{Key: key, Data: copyData(doc)})
		}
	}
	return sortAndLimit(docs, spec), nil
}

func (m *MemoryStore) WatchDoc(collection, key string, fn func(Document)) Unsubscribe {
	return m.hub.watchDoc(collection, key, func() (Document, bool) {
		doc, err := m.Get(context.Background(), collection, key)
		return doc, err == nil
	}, fn)
}

func (m *MemoryStore) WatchQuery(spec QuerySpec, fn func(Snapshot)) Unsubscribe {
	return m.hub.watchQuery(spec.Collection, func() ([]Document, error) {
		return m.Query(context.Background(), spec)
	}, fn)
}

func copyData(data map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(data))
	for k, v := range data {
		if list, ok := v.([]string); ok {
			v = append([]string(nil), list...)
		}
		out[k] = v
	}
	return out
}

func matchesFilters(doc map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		if doc[f.Field] != f.Value {
			return false
		}
	}
	return true
}

// sortAndLimit orders documents by the spec's OrderBy field and truncates to
// the limit.
func sortAndLimit(docs []Document, spec QuerySpec) []Document {
	if spec.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			cmp := compareValues(docs[i].Data[spec.OrderBy], docs[j].Data[spec.OrderBy])
			if spec.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	} else {
		// No ordering imposed by the caller; keep results deterministic.
		sort.SliceStable(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
	}
	if spec.Limit > 0 && len(docs) > spec.Limit {
		docs = docs[:spec.Limit]
	}
	return docs
}

func compareValues(a, b interface{}) int {
	at, aok := asTime(a)
	bt, bok := asTime(b)
	if aok && bok {
		switch {
		case at.Before(bt):
			return -1
		case at.After(bt):
			return 1
		default:
			return 0
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	default:
		return 0
	}
}

func asTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}
