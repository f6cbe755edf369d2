package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"meetx_server/models"
	"meetx_server/store"
)

// MatchService lists a user's mutual matches enriched with partner profiles.
type MatchService struct {
	Store store.Store
}

// MatchedProfile is a match partner's profile plus when the match formed.
type MatchedProfile struct {
	Profile models.Profile `json:"profile"`
	PairKey string         `json:"pairKey"`
	Match   models.Match   `json:"match"`
}

// ListMatches walks the user's positive intents, keeps the ones whose reverse
// intent is also positive, and resolves the partner's profile. Partners whose
// profile cannot be resolved are skipped rather than failing the listing.
func (ms *MatchService) ListMatches(ctx context.Context, userID string) ([]MatchedProfile, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidArgument)
	}

	docs, err := ms.Store.Query(ctx, store.QuerySpec{
		Collection: models.SwipesCollection,
		Filters: []store.Filter{
			{Field: "from", Value: userID},
			{Field: "liked", Value: true},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch swipes for %s: %w", userID, err)
	}

	matches := []MatchedProfile{}
	for _, doc := range docs {
		intent := models.SwipeIntentFromDocument(doc.Data)

		reverse, err := ms.Store.Get(ctx, models.SwipesCollection, models.SwipeKey(intent.To, userID))
		if errors.Is(err, store.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to check reverse swipe: %w", err)
		}
		if !models.SwipeIntentFromDocument(reverse.Data).Liked {
			continue
		}

		pairKey := models.PairKey(userID, intent.To)
		match := models.NewMatch(userID, intent.To)
		if matchDoc, err := ms.Store.Get(ctx, models.MatchesCollection, pairKey); err == nil {
			match = models.MatchFromDocument(matchDoc.Data)
		}

		profileDoc, err := ms.Store.Get(ctx, models.ProfilesCollection, intent.To)
		if err != nil {
			log.Printf("skipping match %s: partner profile unavailable: %v", pairKey, err)
			continue
		}

		matches = append(matches, MatchedProfile{
			Profile: models.ProfileFromDocument(profileDoc.Key, profileDoc.Data),
			PairKey: pairKey,
			Match:   match,
		})
	}
	return matches, nil
}
