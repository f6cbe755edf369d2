package models

import (
	"time"

	"meetx_server/utils"
)

// Profile is the canonical shape for a user profile. Documents read from the
// store are normalized into this shape once, at the adapter boundary; nothing
// past that point branches on historical field-name variants.
type Profile struct {
	UserID    string    `json:"userId" dynamodbav:"userId"`
	FullName  string    `json:"fullName" dynamodbav:"fullName"`
	PhotoURL  string    `json:"photoURL" dynamodbav:"photoURL"`
	Skills    []string  `json:"skills" dynamodbav:"skills"`
	Visible   bool      `json:"visible" dynamodbav:"visible"`
	UpdatedAt time.Time `json:"updatedAt" dynamodbav:"updatedAt"`
}

// IsComplete reports whether the profile meets the minimum requirement for
// deck participation: non-empty name, photo reference, and at least one skill.
func (p Profile) IsComplete() bool {
	return p.FullName != "" && p.PhotoURL != "" && len(p.Skills) > 0
}

// ProfileFromDocument normalizes a raw profile document into the canonical
// shape. Older clients wrote photoURL/photoUrl/photo and fullName/name, and
// sometimes skills as a comma-separated string.
func ProfileFromDocument(key string, data map[string]interface{}) Profile {
	return Profile{
		UserID:    key,
		FullName:  utils.FirstString(data, "fullName", "name"),
		PhotoURL:  utils.FirstString(data, "photoURL", "photoUrl", "photo"),
		Skills:    utils.GetStringSlice(data, "skills"),
		Visible:   utils.GetBool(data, "visible"),
		UpdatedAt: utils.GetTime(data, "updatedAt"),
	}
}

// Document renders the profile as a store document. Both photo field variants
// are written so documents stay readable by older clients.
func (p Profile) Document() map[string]interface{} {
	return map[string]interface{}{
		"userId":   p.UserID,
		"fullName": p.FullName,
		"photoURL": p.PhotoURL,
		"photoUrl": p.PhotoURL,
		"skills":   p.Skills,
		"visible":  p.Visible,
	}
}
