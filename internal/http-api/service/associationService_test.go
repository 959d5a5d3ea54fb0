package service

import (
	"context"
	"testing"

	"accesshub/internal/http-api/models"
	"accesshub/internal/http-api/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddTagIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	tag := seedTag(t, env, "Assist Mode")
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	first, err := env.assoc.AddTag(ctx, ref, tag.ID)
	require.NoError(t, err)
	second, err := env.assoc.AddTag(ctx, ref, tag.ID)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, int64(1), tagUsage(t, env, tag.ID))

	tags, err := env.assoc.TagsForEntry(ctx, ref)
	require.NoError(t, err)
	assert.Len(t, tags, 1)
}

func TestAddThenRemoveTagRestoresCount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	tag := seedTag(t, env, "Colorblind Mode")
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	_, err := env.assoc.AddTag(ctx, ref, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tagUsage(t, env, tag.ID))

	require.NoError(t, env.assoc.RemoveTag(ctx, ref, tag.ID))
	assert.Equal(t, int64(0), tagUsage(t, env, tag.ID))
}

func TestRemoveNeverLinkedTagIsNoOp(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	other := seedGame(t, env, "Hades", strPtr(testUserA))
	tag := seedTag(t, env, "Subtitles")

	// linked to one entry only
	_, err := env.assoc.AddTag(ctx, models.EntryRef{Category: models.CategoryGame, ID: other.ID}, tag.ID)
	require.NoError(t, err)

	err = env.assoc.RemoveTag(ctx, models.EntryRef{Category: models.CategoryGame, ID: game.ID}, tag.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), tagUsage(t, env, tag.ID), "count of the other entry's link must be untouched")
}

func TestAddTagToMissingEntry(t *testing.T) {
	env := newTestEnv(t)
	tag := seedTag(t, env, "Subtitles")

	_, err := env.assoc.AddTag(context.Background(), models.EntryRef{Category: models.CategoryGame, ID: 9999}, tag.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddUnknownTag(t *testing.T) {
	env := newTestEnv(t)
	game := seedGame(t, env, "Celeste", strPtr(testUserA))

	_, err := env.assoc.AddTag(context.Background(), models.EntryRef{Category: models.CategoryGame, ID: game.ID}, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetTagsReplacesOnlyTheDifference(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	a := seedTag(t, env, "Tag A")
	b := seedTag(t, env, "Tag B")
	c := seedTag(t, env, "Tag C")

	require.NoError(t, env.assoc.SetTags(ctx, ref, []int64{a.ID, b.ID}))
	require.NoError(t, env.assoc.SetTags(ctx, ref, []int64{b.ID, c.ID}))

	assert.Equal(t, int64(0), tagUsage(t, env, a.ID))
	assert.Equal(t, int64(1), tagUsage(t, env, b.ID), "kept tag must not see counter churn")
	assert.Equal(t, int64(1), tagUsage(t, env, c.ID))

	tags, err := env.assoc.TagsForEntry(ctx, ref)
	require.NoError(t, err)
	require.Len(t, tags, 2)
	assert.Equal(t, "Tag B", tags[0].Name)
	assert.Equal(t, "Tag C", tags[1].Name)
}

func TestSetTagsRejectsUnknownTag(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}
	a := seedTag(t, env, "Tag A")

	err := env.assoc.SetTags(ctx, ref, []int64{a.ID, 9999})
	assert.ErrorIs(t, err, ErrNotFound)

	// nothing was written
	tags, err := env.assoc.TagsForEntry(ctx, ref)
	require.NoError(t, err)
	assert.Empty(t, tags)
	assert.Equal(t, int64(0), tagUsage(t, env, a.ID))
}

func TestSameTagAcrossCategories(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	place := seedPlace(t, env, "Quiet Cafe")
	tag := seedTag(t, env, "Wheelchair Friendly")

	_, err := env.assoc.AddTag(ctx, models.EntryRef{Category: models.CategoryGame, ID: game.ID}, tag.ID)
	require.NoError(t, err)
	_, err = env.assoc.AddTag(ctx, models.EntryRef{Category: models.CategoryPlace, ID: place.ID}, tag.ID)
	require.NoError(t, err)

	assert.Equal(t, int64(2), tagUsage(t, env, tag.ID))

	// entry ids can collide across tables; links must not
	links, err := env.tags.EntriesWith(ctx, tag.ID, "")
	require.NoError(t, err)
	assert.Len(t, links, 2)

	gameLinks, err := env.tags.EntriesWith(ctx, tag.ID, models.CategoryGame)
	require.NoError(t, err)
	require.Len(t, gameLinks, 1)
	assert.Equal(t, game.ID, gameLinks[0].EntryID)
}

func TestAddFeatureValidatesRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	feature := seedFeature(t, env, "Screen Reader Support")
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	for _, rating := range []int{0, 6, -1} {
		_, err := env.assoc.AddFeature(ctx, ref, feature.ID, rating, nil)
		assert.ErrorIs(t, err, ErrValidation)
	}
	assert.Equal(t, int64(0), featureUsage(t, env, feature.ID))
}

func TestAddFeatureTwiceRevisesRatingWithoutRecount(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	feature := seedFeature(t, env, "Remappable Controls")
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	_, err := env.assoc.AddFeature(ctx, ref, feature.ID, 3, strPtr("partial"))
	require.NoError(t, err)
	link, err := env.assoc.AddFeature(ctx, ref, feature.ID, 5, strPtr("full support"))
	require.NoError(t, err)

	assert.Equal(t, 5, link.Rating)
	require.NotNil(t, link.Notes)
	assert.Equal(t, "full support", *link.Notes)
	assert.Equal(t, int64(1), featureUsage(t, env, feature.ID))
}

func TestUpdateFeatureRatingRequiresExistingLink(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	feature := seedFeature(t, env, "High Contrast Mode")
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	_, err := env.assoc.UpdateFeatureRating(ctx, ref, feature.ID, 4, nil)
	assert.ErrorIs(t, err, ErrNotAssociated)
}

func TestSetFeaturesKeepsExistingLinkCounters(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	a := seedFeature(t, env, "Feature A")
	b := seedFeature(t, env, "Feature B")
	c := seedFeature(t, env, "Feature C")

	require.NoError(t, env.assoc.SetFeatures(ctx, ref, []repository.FeatureSet{
		{FeatureID: a.ID, Rating: 3},
		{FeatureID: b.ID, Rating: 4},
	}))
	require.NoError(t, env.assoc.SetFeatures(ctx, ref, []repository.FeatureSet{
		{FeatureID: b.ID, Rating: 5, Notes: strPtr("improved")},
		{FeatureID: c.ID, Rating: 2},
	}))

	assert.Equal(t, int64(0), featureUsage(t, env, a.ID))
	assert.Equal(t, int64(1), featureUsage(t, env, b.ID))
	assert.Equal(t, int64(1), featureUsage(t, env, c.ID))

	links, err := env.assoc.FeaturesForEntry(ctx, ref)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, "Feature B", links[0].Name)
	assert.Equal(t, 5, links[0].Rating)
	assert.Equal(t, "Feature C", links[1].Name)
}

func TestSetFeaturesRejectsBadRatingBeforeAnyWrite(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}
	a := seedFeature(t, env, "Feature A")

	err := env.assoc.SetFeatures(ctx, ref, []repository.FeatureSet{
		{FeatureID: a.ID, Rating: 4},
		{FeatureID: a.ID, Rating: 7},
	})
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, int64(0), featureUsage(t, env, a.ID))
}

func TestEntriesWithFeatureFiltersByMinRating(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	place := seedPlace(t, env, "Quiet Cafe")
	feature := seedFeature(t, env, "Hearing Loop")

	_, err := env.assoc.AddFeature(ctx, models.EntryRef{Category: models.CategoryGame, ID: game.ID}, feature.ID, 2, nil)
	require.NoError(t, err)
	_, err = env.assoc.AddFeature(ctx, models.EntryRef{Category: models.CategoryPlace, ID: place.ID}, feature.ID, 5, nil)
	require.NoError(t, err)

	links, err := env.features.EntriesWith(ctx, feature.ID, "", 4)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, models.CategoryPlace, links[0].EntryType)

	_, err = env.features.EntriesWith(ctx, feature.ID, "", 9)
	assert.ErrorIs(t, err, ErrValidation)
}
