// Package deck holds the session-local queue of candidate profiles presented
// for swiping.
package deck

import (
	"math/rand"
	"time"

	"meetx_server/models"
)

// DefaultWindow is how many top cards are rendered ahead.
const DefaultWindow = 3

// Deck is an ordered, de-duplicated queue of eligible candidates. Reconcile
// replaces the pool from a remote snapshot; Advance consumes front-to-back
// and reshuffles on exhaustion. Profiles swiped during the session stay
// excluded across rebuilds but are not pulled out of the current pass.
//
// Deck is not safe for concurrent use; the owning session serializes access.
type Deck struct {
	selfID string
	pool   []models.Profile
	items  []models.Profile
	cursor int
	swiped map[string]struct{}
	rng    *rand.Rand
}

func New(selfID string) *Deck {
	return &Deck{
		selfID: selfID,
		swiped: make(map[string]struct{}),
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Reconcile replaces the candidate pool with the remote snapshot, filtered to
// eligible profiles (not self, visible, complete), and deals a fresh
// permutation with the cursor reset.
func (d *Deck) Reconcile(profiles []models.Profile) {
	d.pool = d.pool[:0]
	for _, p := range profiles {
		if p.UserID == d.selfID || p.UserID == "" {
			continue
		}
		if !p.Visible || !p.IsComplete() {
			continue
		}
		d.pool = append(d.pool, p)
	}
	d.rebuild()
}

// rebuild deals a new pass: the pool minus everything swiped this session,
// permuted Fisher-Yates style so repeated reconciliations never present a
// stable, gameable order.
func (d *Deck) rebuild() {
	d.items = d.items[:0]
	for _, p := range d.pool {
		if _, done := d.swiped[p.UserID]; done {
			continue
		}
		d.items = append(d.items, p)
	}
	d.rng.Shuffle(len(d.items), func(i, j int) {
		d.items[i], d.items[j] = d.items[j], d.items[i]
	})
	d.cursor = 0
}

// Current returns the top card, or false when the deck is empty.
func (d *Deck) Current() (models.Profile, bool) {
	if d.cursor >= len(d.items) {
		return models.Profile{}, false
	}
	return d.items[d.cursor], true
}

// Advance moves past the top card. On exhaustion the remaining eligible set
// is re-permuted and the cursor restarts, rather than terminating the deck.
func (d *Deck) Advance() {
	d.cursor++
	if d.cursor >= len(d.items) {
		d.rebuild()
	}
}

// MarkSwiped records a swiped target for the session. The exclusion takes
// effect at the next rebuild.
func (d *Deck) MarkSwiped(userID string) {
	d.swiped[userID] = struct{}{}
}

// Window returns up to n upcoming cards starting at the cursor, for bounded
// preloading. Cursor math always runs over the full permutation.
func (d *Deck) Window(n int) []models.Profile {
	if n <= 0 {
		n = DefaultWindow
	}
	end := d.cursor + n
	if end > len(d.items) {
		end = len(d.items)
	}
	if d.cursor >= end {
		return nil
	}
	out := make([]models.Profile, end-d.cursor)
	copy(out, d.items[d.cursor:end])
	return out
}

// Size reports how many cards remain in the current pass.
func (d *Deck) Size() int {
	return len(d.items)
}
