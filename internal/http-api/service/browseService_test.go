package service

import (
	"context"
	"testing"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEntriesFansOutAcrossCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedGame(t, env, "Celeste", strPtr(testUserA))
	seedGame(t, env, "Hades", strPtr(testUserA))
	seedPlace(t, env, "Quiet Cafe")

	all, err := env.browse.GetEntries(ctx, "", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	games, err := env.browse.GetEntries(ctx, models.CategoryGame, 0)
	require.NoError(t, err)
	assert.Len(t, games, 2)

	places, err := env.browse.GetEntries(ctx, models.CategoryPlace, 0)
	require.NoError(t, err)
	require.Len(t, places, 1)
	assert.Equal(t, models.CategoryPlace, places[0].Category())
}

func TestGetEntriesHonorsLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C", "D"} {
		seedGame(t, env, name, strPtr(testUserA))
	}

	limited, err := env.browse.GetEntries(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestSearchBlankQueryReturnsNothing(t *testing.T) {
	env := newTestEnv(t)

	seedGame(t, env, "Celeste", strPtr(testUserA))

	for _, q := range []string{"", "   "} {
		results, err := env.browse.SearchEntries(context.Background(), q, "")
		require.NoError(t, err)
		assert.Empty(t, results)
	}
}

func TestSearchMatchesNameAndDescription(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedGame(t, env, "Celeste", strPtr(testUserA))
	seedPlace(t, env, "Platform Nine Cafe")

	// "platformer" in the game's description, "Platform" in the place's name
	results, err := env.browse.SearchEntries(ctx, "platform", "")
	require.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = env.browse.SearchEntries(ctx, "CELESTE", "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Celeste", results[0].Core().Name)

	results, err = env.browse.SearchEntries(ctx, "platform", models.CategoryPlace)
	require.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestGetEntryLooksUpEveryTable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	place := seedPlace(t, env, "Quiet Cafe")

	e, err := env.browse.GetEntry(ctx, place.ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryPlace, e.Category())
	assert.Equal(t, "Quiet Cafe", e.Core().Name)

	_, err = env.browse.GetEntry(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetEntryCollidingIDResolvesDeterministically(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Rows imported before the shared id sequence existed can carry the
	// same id in two tables. The sqlite test schema autoincrements per
	// table, so these two both get id 1.
	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	place := seedPlace(t, env, "Quiet Cafe")
	require.Equal(t, game.ID, place.ID)

	for i := 0; i < 20; i++ {
		e, err := env.browse.GetEntry(ctx, game.ID)
		require.NoError(t, err)
		assert.Equal(t, models.CategoryGame, e.Category())
		assert.Equal(t, "Celeste", e.Core().Name)
	}
}

func TestBrowseFailsFastWhenOneTableErrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	seedGame(t, env, "Celeste", strPtr(testUserA))
	require.NoError(t, env.db.Exec("DROP TABLE places").Error)

	_, err := env.browse.GetEntries(ctx, "", 0)
	assert.Error(t, err, "a broken category must fail the whole listing, not shrink it")

	_, err = env.browse.SearchEntries(ctx, "celeste", "")
	assert.Error(t, err)

	_, err = env.browse.GetEntry(ctx, 1)
	assert.Error(t, err)
}

func TestGetEntryAfterCreateThroughService(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	created, err := env.entries.Create(ctx, models.CategoryService, testUserA, dto.EntryDTO{
		Name:          strPtr("Sign Language Interpreters Inc"),
		OverallRating: intPtr(4),
		ServiceType:   strPtr("interpretation"),
		Provider:      strPtr("SLI Inc"),
	})
	require.NoError(t, err)

	found, err := env.browse.GetEntry(ctx, created.Core().ID)
	require.NoError(t, err)
	assert.Equal(t, models.CategoryService, found.Category())
}
