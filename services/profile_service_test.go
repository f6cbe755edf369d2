package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meetx_server/models"
	"meetx_server/store"
)

func TestSaveAndGetProfile(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &ProfileService{Store: ms}
	ctx := context.Background()

	err := svc.SaveProfile(ctx, models.Profile{
		UserID:   "u1",
		FullName: "Ada",
		PhotoURL: "https://x/a.jpg",
		Skills:   []string{"go"},
		Visible:  true,
	})
	require.NoError(t, err)

	got, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada", got.FullName)
	assert.True(t, got.IsComplete())
	assert.False(t, got.UpdatedAt.IsZero(), "updatedAt is stamped at write time")
}

func TestSaveProfileAcceptsIncomplete(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &ProfileService{Store: ms}
	ctx := context.Background()

	require.NoError(t, svc.SaveProfile(ctx, models.Profile{UserID: "u1", FullName: "Draft"}))

	got, err := svc.GetProfile(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, got.IsComplete(), "incomplete drafts persist; completeness only gates the deck")
}

func TestGetProfileErrors(t *testing.T) {
	svc := &ProfileService{Store: store.NewMemoryStore()}
	ctx := context.Background()

	_, err := svc.GetProfile(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = svc.GetProfile(ctx, "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestCandidateQueryShape(t *testing.T) {
	ms := store.NewMemoryStore()
	svc := &ProfileService{Store: ms}
	ctx := context.Background()

	for _, id := range []string{"a", "b"} {
		require.NoError(t, svc.SaveProfile(ctx, models.Profile{
			UserID: id, FullName: id, PhotoURL: "p", Skills: []string{"go"}, Visible: true,
		}))
	}
	hidden := models.Profile{UserID: "c", FullName: "c", PhotoURL: "p", Skills: []string{"go"}, Visible: false}
	require.NoError(t, svc.SaveProfile(ctx, hidden))

	docs, err := ms.Query(ctx, CandidateQuery(10))
	require.NoError(t, err)
	require.Len(t, docs, 2, "hidden profiles never enter the candidate feed")

	docs, err = ms.Query(ctx, CandidateQuery(1))
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}
