package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsComplete(t *testing.T) {
	complete := Profile{FullName: "Ada", PhotoURL: "https://x/a.jpg", Skills: []string{"go"}}
	assert.True(t, complete.IsComplete())

	noPhoto := complete
	noPhoto.PhotoURL = ""
	assert.False(t, noPhoto.IsComplete())

	noSkills := complete
	noSkills.Skills = nil
	assert.False(t, noSkills.IsComplete())

	noName := complete
	noName.FullName = ""
	assert.False(t, noName.IsComplete())
}

func TestProfileFromDocumentNormalizesVariants(t *testing.T) {
	p := ProfileFromDocument("u1", map[string]interface{}{
		"name":     "Ada",
		"photoUrl": "https://x/a.jpg",
		"skills":   []interface{}{"go", "rust"},
		"visible":  true,
	})
	assert.Equal(t, "u1", p.UserID)
	assert.Equal(t, "Ada", p.FullName)
	assert.Equal(t, "https://x/a.jpg", p.PhotoURL)
	assert.Equal(t, []string{"go", "rust"}, p.Skills)
	assert.True(t, p.Visible)
	assert.True(t, p.IsComplete())
}

func TestProfileFromDocumentPrefersCanonicalFields(t *testing.T) {
	p := ProfileFromDocument("u1", map[string]interface{}{
		"fullName": "Ada Lovelace",
		"name":     "Ada",
		"photoURL": "https://x/new.jpg",
		"photo":    "https://x/old.jpg",
	})
	assert.Equal(t, "Ada Lovelace", p.FullName)
	assert.Equal(t, "https://x/new.jpg", p.PhotoURL)
}

func TestProfileFromDocumentParsesTimestampString(t *testing.T) {
	p := ProfileFromDocument("u1", map[string]interface{}{
		"updatedAt": "2026-03-01T12:00:00Z",
	})
	assert.Equal(t, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC), p.UpdatedAt)
}

func TestDocumentRoundTrip(t *testing.T) {
	p := Profile{
		UserID:   "u1",
		FullName: "Ada",
		PhotoURL: "https://x/a.jpg",
		Skills:   []string{"go"},
		Visible:  true,
	}
	doc := p.Document()
	assert.Equal(t, "https://x/a.jpg", doc["photoUrl"], "legacy variant stays readable")

	back := ProfileFromDocument("u1", doc)
	assert.Equal(t, p.FullName, back.FullName)
	assert.Equal(t, p.PhotoURL, back.PhotoURL)
	assert.Equal(t, p.Skills, back.Skills)
	assert.True(t, back.Visible)
}
