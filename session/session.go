// Package session owns the live state of one signed-in user: the candidate
// deck, the profile gate, the notification feed, and every remote
// subscription behind them. A Session is constructed on sign-in and torn
// down on sign-out; nothing here is ambient or global.
package session

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"meetx_server/deck"
	"meetx_server/gesture"
	"meetx_server/models"
	"meetx_server/services"
	"meetx_server/store"
)

var (
	// ErrBlocked means the profile gate is closed; swiping is suspended
	// until the viewer's own profile is complete.
	ErrBlocked = errors.New("profile incomplete: swiping is blocked")

	// ErrClosed means the session has been torn down.
	ErrClosed = errors.New("session closed")
)

// Config tunes a session.
type Config struct {
	DeckLimit       int // candidate query limit; 0 means DefaultDeckLimit
	NotificationTTL int // seconds a notification stays visible; 0 means default
}

// DefaultDeckLimit bounds the candidate feed query.
const DefaultDeckLimit = 80

// Handlers receive session events. All callbacks are invoked without the
// session lock held and may call back into the session.
type Handlers struct {
	OnDeckUpdated  func(top []models.Profile)
	OnGateChanged  func(state GateState)
	OnNotification func(n models.Notification)
	OnMatch        func(m models.Match)
}

// Session is the per-user live context.
type Session struct {
	userID string
	store  store.Store
	swipes *services.SwipeService
	cfg    Config
	h      Handlers

	mu     sync.Mutex
	deck   *deck.Deck
	gate   *Gate
	feed   *Feed
	subs   []store.Unsubscribe
	closed bool
}

func New(userID string, st store.Store, cfg Config, h Handlers) *Session {
	ttl := DefaultNotificationTTL
	if cfg.NotificationTTL > 0 {
		ttl = time.Duration(cfg.NotificationTTL) * time.Second
	}
	return &Session{
		userID: userID,
		store:  st,
		swipes: &services.SwipeService{Store: st},
		cfg:    cfg,
		h:      h,
		deck:   deck.New(userID),
		gate:   NewGate(),
		feed:   NewFeed(ttl),
	}
}

// UserID returns the signed-in user the session belongs to.
func (s *Session) UserID() string {
	return s.userID
}

// Start wires the three live subscriptions: the viewer's own profile (gate),
// the candidate feed (deck), and incoming positive intents (notifications).
// The three run independently; none blocks another. Callbacks that fire
// after Close are ignored.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.userID == "" {
		return services.ErrNotSignedIn
	}

	limit := s.cfg.DeckLimit
	if limit <= 0 {
		limit = DefaultDeckLimit
	}

	s.subs = append(s.subs,
		s.store.WatchDoc(models.ProfilesCollection, s.userID, s.onOwnProfile),
		s.store.WatchQuery(services.CandidateQuery(limit), s.onCandidates),
		s.store.WatchQuery(services.LikesReceivedQuery(s.userID), s.onIncomingLikes),
	)
	return nil
}

// Close tears down every subscription and closes the gate. Idempotent.
// A new identity must construct a new Session; handles are never reused.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	_, changed := s.gate.SignOut()
	s.mu.Unlock()

	for _, unsub := range subs {
		unsub()
	}
	if changed && s.h.OnGateChanged != nil {
		s.h.OnGateChanged(GateBlocked)
	}
}

// Gate returns the current gate state.
func (s *Session) Gate() GateState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gate.State()
}

// CurrentCard returns the top card of the deck, if any.
func (s *Session) CurrentCard() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Current()
}

// Window returns the rendered lookahead of the deck.
func (s *Session) Window(n int) []models.Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deck.Window(n)
}

// Swipe applies a terminal gesture decision to the current top card: the
// intent is recorded in the ledger first, and only after the write succeeds
// does the deck advance. A failed write leaves the card on top so the caller
// can surface the error and retry. DecisionNone is a no-op, as is an empty
// deck; neither is an error.
func (s *Session) Swipe(ctx context.Context, decision gesture.Decision) (*services.SwipeResult, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	if s.gate.State() != GateUnblocked {
		s.mu.Unlock()
		return nil, ErrBlocked
	}
	if decision == gesture.DecisionNone {
		s.mu.Unlock()
		return nil, nil
	}
	target, ok := s.deck.Current()
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}

	liked := decision != gesture.DecisionPass

	result, err := s.swipes.RecordSwipe(ctx, s.userID, target.UserID, liked)
	if err != nil {
		return nil, fmt.Errorf("swipe on %s: %w", target.UserID, err)
	}

	s.mu.Lock()
	s.deck.MarkSwiped(target.UserID)
	s.deck.Advance()
	top := s.deck.Window(0)
	closed := s.closed
	s.mu.Unlock()

	if !closed && s.h.OnDeckUpdated != nil {
		s.h.OnDeckUpdated(top)
	}
	if !closed && result.Matched && s.h.OnMatch != nil {
		s.h.OnMatch(result.Match)
	}
	return result, nil
}

// onOwnProfile re-evaluates the gate on every change to the viewer's own
// profile document.
func (s *Session) onOwnProfile(doc store.Document) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	profile := models.ProfileFromDocument(doc.Key, doc.Data)
	state, changed := s.gate.Observe(profile)
	s.mu.Unlock()

	if changed && s.h.OnGateChanged != nil {
		s.h.OnGateChanged(state)
	}
}

// onCandidates rebuilds the deck from every candidate feed snapshot. The
// gate never participates here: blocking toggles interactivity only.
func (s *Session) onCandidates(snap store.Snapshot) {
	profiles := make([]models.Profile, 0, len(snap.Docs))
	for _, doc := range snap.Docs {
		profiles = append(profiles, models.ProfileFromDocument(doc.Key, doc.Data))
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.deck.Reconcile(profiles)
	top := s.deck.Window(0)
	s.mu.Unlock()

	if s.h.OnDeckUpdated != nil {
		s.h.OnDeckUpdated(top)
	}
}

// onIncomingLikes feeds newly added positive intents into the notification
// feed. The originating profile lookup is best-effort; a failed lookup still
// notifies with a generic title.
func (s *Session) onIncomingLikes(snap store.Snapshot) {
	for _, change := range snap.Changes {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			return
		}
		n, ok := s.feed.Observe(change, s.lookupProfile)
		s.mu.Unlock()

		if ok {
			log.Printf("🔔 %s: %s", s.userID, n.Title)
			if s.h.OnNotification != nil {
				s.h.OnNotification(n)
			}
		}
	}
}

func (s *Session) lookupProfile(userID string) (models.Profile, error) {
	doc, err := s.store.Get(context.Background(), models.ProfilesCollection, userID)
	if err != nil {
		return models.Profile{}, err
	}
	return models.ProfileFromDocument(doc.Key, doc.Data), nil
}
