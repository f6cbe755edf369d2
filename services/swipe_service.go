package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"meetx_server/models"
	"meetx_server/store"
)

// SwipeService is the swipe ledger: it persists directed swipe intents and
// materializes a match when a positive intent discovers its mutual reverse.
type SwipeService struct {
	Store store.Store
}

// SwipeResult reports what a recorded swipe produced.
type SwipeResult struct {
	Intent  models.SwipeIntent
	Matched bool
	Match   models.Match
}

// RecordSwipe upserts the intent for (actorID, targetID), unconditionally
// overwriting any prior intent for the pair. On a positive intent it reads
// the reverse intent and, if that is also positive, upserts the match under
// the canonical pair key. Both writes are idempotent, so a concurrent writer
// racing the same mutual like lands on the same single match record.
// Store failures surface to the caller as retryable errors; nothing is
// retried here.
func (s *SwipeService) RecordSwipe(ctx context.Context, actorID, targetID string, liked bool) (*SwipeResult, error) {
	if actorID == "" || targetID == "" {
		return nil, fmt.Errorf("%w: actor and target ids are required", ErrInvalidArgument)
	}
	if actorID == targetID {
		return nil, fmt.Errorf("%w: cannot swipe on yourself", ErrInvalidArgument)
	}

	intent := models.SwipeIntent{From: actorID, To: targetID, Liked: liked}
	err := s.Store.Put(ctx, models.SwipesCollection, intent.Key(), map[string]interface{}{
		"from":      actorID,
		"to":        targetID,
		"liked":     liked,
		"timestamp": store.ServerTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to record swipe %s: %w", intent.Key(), err)
	}

	result := &SwipeResult{Intent: intent}
	if !liked {
		return result, nil
	}

	reverse, err := s.Store.Get(ctx, models.SwipesCollection, models.SwipeKey(targetID, actorID))
	if errors.Is(err, store.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to check reverse swipe: %w", err)
	}
	if !models.SwipeIntentFromDocument(reverse.Data).Liked {
		return result, nil
	}

	match := models.NewMatch(actorID, targetID)
	err = s.Store.Put(ctx, models.MatchesCollection, match.Key(), map[string]interface{}{
		"users":     []string{match.Users[0], match.Users[1]},
		"createdAt": store.ServerTimestamp,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create match %s: %w", match.Key(), err)
	}

	log.Printf("🎉 Match created: %s ❤️ %s", match.Users[0], match.Users[1])
	result.Matched = true
	result.Match = match
	return result, nil
}

// LikesReceived returns the positive intents currently targeting the user,
// newest first. Backfills the notification feed after a reconnect.
func (s *SwipeService) LikesReceived(ctx context.Context, userID string) ([]models.SwipeIntent, error) {
	docs, err := s.Store.Query(ctx, LikesReceivedQuery(userID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch likes for %s: %w", userID, err)
	}
	intents := make([]models.SwipeIntent, 0, len(docs))
	for _, doc := range docs {
		intents = append(intents, models.SwipeIntentFromDocument(doc.Data))
	}
	return intents, nil
}

// LikesReceivedQuery is the live query the notification feed subscribes to:
// positive intents targeting the user.
func LikesReceivedQuery(userID string) store.QuerySpec {
	return store.QuerySpec{
		Collection: models.SwipesCollection,
		Filters: []store.Filter{
			{Field: "to", Value: userID},
			{Field: "liked", Value: true},
		},
		OrderBy:    "timestamp",
		Descending: true,
	}
}
