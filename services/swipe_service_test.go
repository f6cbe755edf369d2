package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetx_server/models"
	"meetx_server/store"
)

func TestRecordSwipeValidatesIDs(t *testing.T) {
	svc := &SwipeService{Store: store.NewMemoryStore()}
	ctx := context.Background()

	_, err := svc.RecordSwipe(ctx, "", "bob", true)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.RecordSwipe(ctx, "alice", "", true)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.RecordSwipe(ctx, "alice", "alice", true)
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRecordSwipePersistsDirectedIntent(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	result, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	require.NoError(t, err)
	assert.False(t, result.Matched, "one-sided like is not a match")

	doc, err := ms.Get(ctx, models.SwipesCollection, models.SwipeKey("alice", "bob"))
	require.NoError(t, err)
	assert.Equal(t, "alice", doc.Data["from"])
	assert.Equal(t, "bob", doc.Data["to"])
	assert.Equal(t, true, doc.Data["liked"])
	assert.NotNil(t, doc.Data["timestamp"])
}

func TestRecordSwipeOverwritesPriorIntent(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	_, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	require.NoError(t, err)
	_, err = svc.RecordSwipe(ctx, "alice", "bob", false)
	require.NoError(t, err)

	doc, err := ms.Get(ctx, models.SwipesCollection, models.SwipeKey("alice", "bob"))
	require.NoError(t, err)
	assert.Equal(t, false, doc.Data["liked"], "latest intent wins for the pair")
}

func TestMutualLikeCreatesOneMatchEitherOrder(t *testing.T) {
	for _, first := range []string{"alice", "bob"} {
		second := "bob"
		if first == "bob" {
			second = "alice"
		}

		ms := store.NewMemoryStore()
		svc := &SwipeService{Store: ms}
		ctx := context.Background()

		r1, err := svc.RecordSwipe(ctx, first, second, true)
		require.NoError(t, err)
		assert.False(t, r1.Matched)

		r2, err := svc.RecordSwipe(ctx, second, first, true)
		require.NoError(t, err)
		require.True(t, r2.Matched, "completing the mutual like matches regardless of order")
		assert.Equal(t, models.PairKey("alice", "bob"), r2.Match.Key())

		matches, err := ms.Query(ctx, store.QuerySpec{Collection: models.MatchesCollection})
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	}
}

func TestNopeNeverMatches(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	_, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	require.NoError(t, err)

	result, err := svc.RecordSwipe(ctx, "bob", "alice", false)
	require.NoError(t, err)
	assert.False(t, result.Matched)

	matches, err := ms.Query(ctx, store.QuerySpec{Collection: models.MatchesCollection})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestReLikeAfterMatchIsIdempotent(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	_, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	require.NoError(t, err)
	_, err = svc.RecordSwipe(ctx, "bob", "alice", true)
	require.NoError(t, err)

	// Replaying either side lands on the same single match record.
	result, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	require.NoError(t, err)
	assert.True(t, result.Matched)

	matches, err := ms.Query(ctx, store.QuerySpec{Collection: models.MatchesCollection})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestConcurrentMutualLikesConverge(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = svc.RecordSwipe(ctx, "alice", "bob", true)
	}()
	go func() {
		defer wg.Done()
		_, _ = svc.RecordSwipe(ctx, "bob", "alice", true)
	}()
	wg.Wait()

	matches, err := ms.Query(ctx, store.QuerySpec{Collection: models.MatchesCollection})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(matches), 1, "racing writers never produce duplicate matches")

	// A replay settles any torn race on exactly one match.
	result, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	require.NoError(t, err)
	assert.True(t, result.Matched)
	matches, err = ms.Query(ctx, store.QuerySpec{Collection: models.MatchesCollection})
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestRecordSwipeSurfacesStoreFailure(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	ms.SetError(errors.New("io timeout"))
	_, err := svc.RecordSwipe(ctx, "alice", "bob", true)
	assert.ErrorIs(t, err, store.ErrUnavailable)
}

func TestLikesReceived(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &SwipeService{Store: ms}
	ctx := context.Background()

	_, err := svc.RecordSwipe(ctx, "alice", "me", true)
	require.NoError(t, err)
	_, err = svc.RecordSwipe(ctx, "bob", "me", false)
	require.NoError(t, err)
	_, err = svc.RecordSwipe(ctx, "me", "carol", true)
	require.NoError(t, err)

	intents, err := svc.LikesReceived(ctx, "me")
	require.NoError(t, err)
	require.Len(t, intents, 1, "only positive intents targeting the user")
	assert.Equal(t, "alice", intents[0].From)
	assert.True(t, intents[0].Liked)
}
