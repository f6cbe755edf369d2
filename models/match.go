package models

import (
	"time"

	"meetx_server/utils"
)

// Match is the symmetric record created when two users' intents mutually
// indicate "liked". It is keyed by the canonical pair id, so both users
// resolve to the same record no matter who completed the mutual like second.
type Match struct {
	Users     [2]string `json:"users" dynamodbav:"users"`
	CreatedAt time.Time `json:"createdAt" dynamodbav:"createdAt"`
}

// PairKey returns the canonical key for an unordered user pair: the
// lexicographically smaller id first, joined with an underscore.
func PairKey(a, b string) string {
	if a < b {
		return a + "_" + b
	}
	return b + "_" + a
}

// NewMatch builds a match with users in canonical order
func NewMatch(a, b string) Match {
	if a > b {
		a, b = b, a
	}
	return Match{Users: [2]string{a, b}}
}

// Other returns the match partner of the given user
func (m Match) Other(userID string) string {
	if m.Users[0] == userID {
		return m.Users[1]
	}
	return m.Users[0]
}

// Key returns the match's canonical document key
func (m Match) Key() string {
	return PairKey(m.Users[0], m.Users[1])
}

// MatchFromDocument decodes a raw match document
func MatchFromDocument(data map[string]interface{}) Match {
	users := utils.GetStringSlice(data, "users")
	var m Match
	if len(users) >= 2 {
		m = NewMatch(users[0], users[1])
	}
	m.CreatedAt = utils.GetTime(data, "createdAt")
	return m
}
