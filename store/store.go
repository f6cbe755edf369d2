package store

import (
	"context"
	"errors"
)

// ChangeKind classifies a per-item change inside a query snapshot.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeRemoved  ChangeKind = "removed"
)

// Document is a raw record from the store: a key plus untyped field data.
// Typed decoding happens in the models package.
type Document struct {
	Key  string
	Data map[string]interface{}
}

// Change pairs a document with how it changed since the previous snapshot.
type Change struct {
	Kind ChangeKind
	Doc  Document
}

// Snapshot is the full current result set of a watched query plus the
// per-item changes relative to the previously delivered snapshot.
type Snapshot struct {
	Docs    []Document
	Changes []Change
}

// Filter is an equality condition on a document field.
type Filter struct {
	Field string
	Value interface{}
}

// QuerySpec describes a filtered, ordered, limited collection query.
type QuerySpec struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Descending bool
	Limit      int
}

// Unsubscribe tears down a live subscription. Safe to call more than once;
// no callback is delivered after it returns.
type Unsubscribe func()

var (
	// ErrNotFound is returned by Get when no document exists under the key.
	ErrNotFound = errors.New("document not found")

	// ErrUnavailable wraps any read/write failure of the underlying store.
	// Callers treat it as retryable.
	ErrUnavailable = errors.New("store unavailable")
)

type serverTimestamp struct{}

// ServerTimestamp is a sentinel field value replaced by the store with the
// write's server-side time, so all write ordering uses one clock.
var ServerTimestamp = serverTimestamp{}

// Store is a generic document-oriented remote store: point lookups and
// writes by collection+key, plus live subscriptions to a single document or
// to a filtered collection query.
type Store interface {
	Get(ctx context.Context, collection, key string) (Document, error)
	Put(ctx context.Context, collection, key string, data map[string]interface{}) error
	Query(ctx context.Context, spec QuerySpec) ([]Document, error)

	// WatchDoc delivers the document's current value after every change to it.
	WatchDoc(collection, key string, fn func(Document)) Unsubscribe

	// WatchQuery delivers the full current result set on every change to the
	// collection, with per-item change classification.
	WatchQuery(spec QuerySpec, fn func(Snapshot)) Unsubscribe
}
