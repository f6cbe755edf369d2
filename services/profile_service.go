package services

import (
	"context"
	"fmt"

	"meetx_server/models"
	"meetx_server/store"
)

// ProfileService reads and writes user profiles. Raw documents are normalized
// into the canonical Profile shape here, at the adapter boundary.
type ProfileService struct {
	Store store.Store
}

// GetProfile retrieves a profile by user id
func (ps *ProfileService) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	doc, err := ps.Store.Get(ctx, models.ProfilesCollection, userID)
	if err != nil {
		return nil, err
	}
	profile := models.ProfileFromDocument(doc.Key, doc.Data)
	return &profile, nil
}

// SaveProfile upserts the user's profile. Incomplete profiles are saved as
// given; completeness only gates deck participation, it is not a write
// precondition.
func (ps *ProfileService) SaveProfile(ctx context.Context, profile models.Profile) error {
	if profile.UserID == "" {
		return fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}
	data := profile.Document()
	data["updatedAt"] = store.ServerTimestamp
	if err := ps.Store.Put(ctx, models.ProfilesCollection, profile.UserID, data); err != nil {
		return fmt.Errorf("failed to save profile %s: %w", profile.UserID, err)
	}
	return nil
}

// CandidateQuery is the live query the deck subscribes to: visible profiles,
// most recently updated first, bounded by limit. Self-exclusion and
// completeness filtering happen deck-side.
func CandidateQuery(limit int) store.QuerySpec {
	return store.QuerySpec{
		Collection: models.ProfilesCollection,
		Filters:    []store.Filter{{Field: "visible", Value: true}},
		OrderBy:    "updatedAt",
		Descending: true,
		Limit:      limit,
	}
}
