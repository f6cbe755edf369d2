package session

import (
	"time"

	"meetx_server/models"
	"meetx_server/store"
)

// DefaultNotificationTTL is how long a like-received toast stays visible.
const DefaultNotificationTTL = 6 * time.Second

const genericLikeTitle = "Someone liked you!"

// Feed derives like-received notifications from newly added positive swipe
// intents. Each intent key produces at most one notification for the
// lifetime of the session; the seen set dies with the session on sign-out.
type Feed struct {
	seen map[string]struct{}
	ttl  time.Duration
	now  func() time.Time
}

func NewFeed(ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	return &Feed{
		seen: make(map[string]struct{}),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Observe inspects one change from the incoming-likes subscription. Only
// "added" changes produce notifications. lookup resolves the originating
// profile best-effort: when it fails the notification still fires with a
// generic title.
func (f *Feed) Observe(change store.Change, lookup func(userID string) (models.Profile, error)) (models.Notification, bool) {
	if change.Kind != store.ChangeAdded {
		return models.Notification{}, false
	}
	intent := models.SwipeIntentFromDocument(change.Doc.Data)
	key := change.Doc.Key
	if key == "" {
		key = intent.Key()
	}
	if _, dup := f.seen[key]; dup {
		return models.Notification{}, false
	}
	f.seen[key] = struct{}{}

	n := models.Notification{
		IntentKey: key,
		Title:     genericLikeTitle,
		CreatedAt: f.now(),
	}
	n.ExpiresAt = n.CreatedAt.Add(f.ttl)

	if lookup != nil && intent.From != "" {
		if profile, err := lookup(intent.From); err == nil && profile.FullName != "" {
			n.Title = profile.FullName + " liked you!"
			n.PhotoURL = profile.PhotoURL
		}
	}
	return n, true
}
