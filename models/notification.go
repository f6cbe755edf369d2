package models

import "time"

// Notification is a presentation-only "someone liked you" event derived from
// an incoming swipe intent. It carries no persisted state and expires after a
// fixed display duration.
type Notification struct {
	IntentKey string    `json:"intentKey"`
	Title     string    `json:"title"`
	PhotoURL  string    `json:"photoURL,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}
