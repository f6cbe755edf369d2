package models

import (
	"time"

	"meetx_server/utils"
)

// SwipeIntent is a directed like/pass decision by one user about another.
// At most one live intent exists per (from, to) pair; a later write for the
// same pair overwrites the earlier one.
type SwipeIntent struct {
	From      string    `json:"from" dynamodbav:"from"`
	To        string    `json:"to" dynamodbav:"to"`
	Liked     bool      `json:"liked" dynamodbav:"liked"`
	Timestamp time.Time `json:"timestamp" dynamodbav:"timestamp"`
}

// SwipeKey builds the document key for a directed pair
func SwipeKey(from, to string) string {
	return from + "_" + to
}

// Key returns the intent's document key
func (s SwipeIntent) Key() string {
	return SwipeKey(s.From, s.To)
}

// SwipeIntentFromDocument decodes a raw swipe document
func SwipeIntentFromDocument(data map[string]interface{}) SwipeIntent {
	return SwipeIntent{
		From:      utils.GetString(data, "from"),
		To:        utils.GetString(data, "to"),
		Liked:     utils.GetBool(data, "liked"),
		Timestamp: utils.GetTime(data, "timestamp"),
	}
}
