package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissingIsNotFound(t *testing.T) {
	m := NewMemoryStore()
	_, err := m.Get(context.Background(), "profiles", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPutResolvesServerTimestamp(t *testing.T) {
	m := NewMemoryStore()
	frozen := time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return frozen }

	err := m.Put(context.Background(), "swipes", "a_b", map[string]interface{}{
		"from":      "a",
		"timestamp": ServerTimestamp,
	})
	require.NoError(t, err)

	doc, err := m.Get(context.Background(), "swipes", "a_b")
	require.NoError(t, err)
	assert.Equal(t, frozen, doc.Data["timestamp"])
}

func TestPutOverwrites(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "swipes", "a_b", map[string]interface{}{"liked": true}))
	require.NoError(t, m.Put(ctx, "swipes", "a_b", map[string]interface{}{"liked": false}))

	doc, err := m.Get(ctx, "swipes", "a_b")
	require.NoError(t, err)
	assert.Equal(t, false, doc.Data["liked"])
}

func TestQueryFilterOrderLimit(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	for i, key := range []string{"x_me", "y_me", "z_other", "w_me"} {
		to := "me"
		if key == "z_other" {
			to = "other"
		}
		require.NoError(t, m.Put(ctx, "swipes", key, map[string]interface{}{
			"to":        to,
			"liked":     true,
			"timestamp": base.Add(time.Duration(i) * time.Minute),
		}))
	}

	docs, err := m.Query(ctx, QuerySpec{
		Collection: "swipes",
		Filters:    []Filter{{Field: "to", Value: "me"}, {Field: "liked", Value: true}},
		OrderBy:    "timestamp",
		Descending: true,
		Limit:      2,
	})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "w_me", docs[0].Key, "newest first")
	assert.Equal(t, "y_me", docs[1].Key)
}

func TestQueryComparesRFC3339Strings(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "profiles", "old", map[string]interface{}{"updatedAt": "2026-01-02T00:00:00Z"}))
	require.NoError(t, m.Put(ctx, "profiles", "new", map[string]interface{}{"updatedAt": "2026-01-10T00:00:00Z"}))

	docs, err := m.Query(ctx, QuerySpec{Collection: "profiles", OrderBy: "updatedAt", Descending: true})
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "new", docs[0].Key)
}

func TestSetErrorMakesCallsUnavailable(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A"}))

	m.SetError(errors.New("network down"))
	_, err := m.Get(ctx, "profiles", "a")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, m.Put(ctx, "profiles", "a", nil), ErrUnavailable)
	_, err = m.Query(ctx, QuerySpec{Collection: "profiles"})
	assert.ErrorIs(t, err, ErrUnavailable)

	m.SetError(nil)
	_, err = m.Get(ctx, "profiles", "a")
	assert.NoError(t, err)
}

func TestWatchDocDeliversChanges(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A"}))

	var mu sync.Mutex
	var got []Document
	unsub := m.WatchDoc("profiles", "a", func(doc Document) {
		mu.Lock()
		got = append(got, doc)
		mu.Unlock()
	})
	defer unsub()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 1
	}, time.Second, 5*time.Millisecond, "initial value is delivered")

	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A2"}))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(got) == 2 && got[1].Data["fullName"] == "A2"
	}, time.Second, 5*time.Millisecond)
}

func TestWatchDocSuppressesNoOpRewrites(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A"}))

	var mu sync.Mutex
	count := 0
	unsub := m.WatchDoc("profiles", "a", func(Document) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	defer unsub()

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, time.Second, 5*time.Millisecond)

	// Identical rewrite: no redelivery.
	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A"}))
	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A3"}))
	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 2
	}, time.Second, 5*time.Millisecond)
}

func TestWatchQueryClassifiesChanges(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()
	require.NoError(t, m.Put(ctx, "swipes", "a_me", map[string]interface{}{"to": "me", "liked": true}))

	var mu sync.Mutex
	var snaps []Snapshot
	spec := QuerySpec{Collection: "swipes", Filters: []Filter{{Field: "to", Value: "me"}, {Field: "liked", Value: true}}}
	unsub := m.WatchQuery(spec, func(s Snapshot) {
		mu.Lock()
		snaps = append(snaps, s)
		mu.Unlock()
	})
	defer unsub()

	latest := func() (Snapshot, int) {
		mu.Lock()
		defer mu.Unlock()
		if len(snaps) == 0 {
			return Snapshot{}, 0
		}
		return snaps[len(snaps)-1], len(snaps)
	}

	require.Eventually(t, func() bool { _, n := latest(); return n == 1 }, time.Second, 5*time.Millisecond)
	first, _ := latest()
	require.Len(t, first.Changes, 1)
	assert.Equal(t, ChangeAdded, first.Changes[0].Kind)
	assert.Equal(t, "a_me", first.Changes[0].Doc.Key)

	// New matching doc: added.
	require.NoError(t, m.Put(ctx, "swipes", "b_me", map[string]interface{}{"to": "me", "liked": true}))
	require.Eventually(t, func() bool {
		s, n := latest()
		return n >= 2 && len(s.Docs) == 2 && hasChange(s, ChangeAdded, "b_me")
	}, time.Second, 5*time.Millisecond)

	// Rescinded like leaves the result set: removed.
	require.NoError(t, m.Put(ctx, "swipes", "a_me", map[string]interface{}{"to": "me", "liked": false}))
	require.Eventually(t, func() bool {
		s, _ := latest()
		return len(s.Docs) == 1 && hasChange(s, ChangeRemoved, "a_me")
	}, time.Second, 5*time.Millisecond)
}

func hasChange(s Snapshot, kind ChangeKind, key string) bool {
	for _, c := range s.Changes {
		if c.Kind == kind && c.Doc.Key == key {
			return true
		}
	}
	return false
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	m := NewMemoryStore()
	ctx := context.Background()

	var mu sync.Mutex
	count := 0
	unsub := m.WatchQuery(QuerySpec{Collection: "profiles"}, func(Snapshot) {
		mu.Lock()
		count++
		mu.Unlock()
	})

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	}, time.Second, 5*time.Millisecond)

	unsub()
	require.NoError(t, m.Put(ctx, "profiles", "a", map[string]interface{}{"fullName": "A"}))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count)
}
