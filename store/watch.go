package store

import (
	"log"
	"reflect"
	"sync"
)

// hub fans out collection-level change notifications to watcher goroutines.
// Each watcher owns one delivery goroutine, so a slow subscriber never blocks
// a write or another subscription. Kicks coalesce: a watcher that is already
// pending a reload does not queue further ones, it reloads the latest state.
type hub struct {
	mu       sync.Mutex
	watchers map[int]*watcher
	nextID   int
}

type watcher struct {
	collection string
	kick       chan struct{}
	stop       chan struct{}
	stopOnce   sync.Once
}

func (h *hub) notify(collection string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, w := range h.watchers {
		if w.collection != collection {
			continue
		}
		select {
		case w.kick <- struct{}{}:
		default:
		}
	}
}

func (h *hub) add(collection string) (*watcher, Unsubscribe) {
	w := &watcher{
		collection: collection,
		kick:       make(chan struct{}, 1),
		stop:       make(chan struct{}),
	}
	h.mu.Lock()
	if h.watchers == nil {
		h.watchers = make(map[int]*watcher)
	}
	id := h.nextID
	h.nextID++
	h.watchers[id] = w
	h.mu.Unlock()

	unsub := func() {
		h.mu.Lock()
		delete(h.watchers, id)
		h.mu.Unlock()
		w.stopOnce.Do(func() { close(w.stop) })
	}
	return w, unsub
}

func (w *watcher) stopped() bool {
	select {
	case <-w.stop:
		return true
	default:
		return false
	}
}

// watchDoc delivers the current value of one document after every change to
// it. load reads the document from the concrete store; delivery is suppressed
// when the value did not actually change.
func (h *hub) watchDoc(collection, key string, load func() (Document, bool), fn func(Document)) Unsubscribe {
	w, unsub := h.add(collection)
	go func() {
		var prev map[string]interface{}
		deliver := func() {
			doc, ok := load()
			if !ok || w.stopped() {
				return
			}
			if prev != nil && reflect.DeepEqual(prev, doc.Data) {
				return
			}
			prev = doc.Data
			fn(doc)
		}
		deliver()
		for {
			select {
			case <-w.stop:
				return
			case <-w.kick:
				deliver()
			}
		}
	}()
	return unsub
}

// watchQuery re-runs the query after every change to its collection and
// delivers the full result set plus added/modified/removed classification
// against the previously delivered snapshot.
func (h *hub) watchQuery(collection string, run func() ([]Document, error), fn func(Snapshot)) Unsubscribe {
	w, unsub := h.add(collection)
	go func() {
		var prev map[string]map[string]interface{}
		deliver := func() {
			docs, err := run()
			if err != nil {
				log.Printf("watch query on '%s': %v", collection, err)
				return
			}
			if w.stopped() {
				return
			}

			var changes []Change
			next := make(map[string]map[string]interface{}, len(docs))
			for _, d := range docs {
				next[d.Key] = d.Data
				old, existed := prev[d.Key]
				switch {
				case !existed:
					changes = append(changes, Change{Kind: ChangeAdded, Doc: d})
				case !reflect.DeepEqual(old, d.Data):
					changes = append(changes, Change{Kind: ChangeModified, Doc: d})
				}
			}
			for key, old := range prev {
				if _, still := next[key]; !still {
					changes = append(changes, Change{Kind: ChangeRemoved, Doc: Document{Key: key, Data: old}})
				}
			}

			// After the initial snapshot, a reload with no effective change
			// is not redelivered.
			if prev != nil && len(changes) == 0 {
				return
			}
			prev = next
			fn(Snapshot{Docs: docs, Changes: changes})
		}
		deliver()
		for {
			select {
			case <-w.stop:
				return
			case <-w.kick:
				deliver()
			}
		}
	}()
	return unsub
}
