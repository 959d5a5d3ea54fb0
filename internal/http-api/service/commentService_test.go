package service

import (
	"context"
	"testing"

	"accesshub/internal/http-api/dto"
	"accesshub/internal/http-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	comment, err := env.comments.Create(ctx, ref, testUserB, "casey", dto.CreateCommentDTO{Body: "assist mode is great"})
	require.NoError(t, err)
	assert.Equal(t, "casey", comment.AuthorName)

	page, err := env.comments.ListByEntry(ctx, ref, 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, int64(1), page.Total)

	updated, err := env.comments.Update(ctx, comment.ID, testUserB, dto.UpdateCommentDTO{Body: "assist mode is excellent"})
	require.NoError(t, err)
	assert.Equal(t, "assist mode is excellent", updated.Body)

	require.NoError(t, env.comments.Delete(ctx, comment.ID, testUserB))
	page, err = env.comments.ListByEntry(ctx, ref, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestCommentOnMissingEntry(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comments.Create(context.Background(),
		models.EntryRef{Category: models.CategoryGame, ID: 9999},
		testUserA, "casey", dto.CreateCommentDTO{Body: "hello"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListCommentsOnMissingEntry(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.comments.ListByEntry(context.Background(),
		models.EntryRef{Category: models.CategoryPlace, ID: 9999}, 1, 20)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListReviewsOnMissingEntry(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.reviews.ListByEntry(context.Background(),
		models.EntryRef{Category: models.CategoryPlace, ID: 9999}, 1, 20)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCommentEditForbiddenForOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	comment, err := env.comments.Create(ctx, ref, testUserA, "alex", dto.CreateCommentDTO{Body: "first"})
	require.NoError(t, err)

	_, err = env.comments.Update(ctx, comment.ID, testUserB, dto.UpdateCommentDTO{Body: "hijacked"})
	assert.ErrorIs(t, err, ErrForbidden)
	err = env.comments.Delete(ctx, comment.ID, testUserB)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCommentBlankBodyRejected(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	_, err := env.comments.Create(ctx, ref, testUserA, "alex", dto.CreateCommentDTO{Body: "   "})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestReviewLifecycle(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	review, err := env.reviews.Create(ctx, ref, testUserB, "casey", dto.CreateReviewDTO{
		Title:  "Nearly perfect",
		Body:   "assist mode makes it playable for everyone",
		Rating: 5,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, review.Rating)

	_, err = env.reviews.Create(ctx, ref, testUserB, "casey", dto.CreateReviewDTO{
		Title:  "bad rating",
		Body:   "x",
		Rating: 6,
	})
	assert.ErrorIs(t, err, ErrValidation)

	updated, err := env.reviews.Update(ctx, review.ID, testUserB, dto.UpdateReviewDTO{Rating: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, 4, updated.Rating)
	assert.Equal(t, "Nearly perfect", updated.Title, "untouched fields survive partial updates")

	page, err := env.reviews.ListByEntry(ctx, ref, 1, 10)
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	require.NoError(t, env.reviews.Delete(ctx, review.ID, testUserB))
}

func TestReviewEditForbiddenForOtherUsers(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	ref := models.EntryRef{Category: models.CategoryGame, ID: game.ID}

	review, err := env.reviews.Create(ctx, ref, testUserA, "alex", dto.CreateReviewDTO{
		Title: "Mine", Body: "my review", Rating: 4,
	})
	require.NoError(t, err)

	_, err = env.reviews.Update(ctx, review.ID, testUserB, dto.UpdateReviewDTO{Rating: intPtr(1)})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestLegacyCommentWithoutAuthorIsEditable(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	game := seedGame(t, env, "Celeste", strPtr(testUserA))
	legacy := &models.Comment{
		EntryType:  models.CategoryGame,
		EntryID:    game.ID,
		AuthorName: "anonymous",
		Body:       "imported from the old forum",
	}
	require.NoError(t, env.db.Create(legacy).Error)

	updated, err := env.comments.Update(ctx, legacy.ID, testUserB, dto.UpdateCommentDTO{Body: "cleaned up"})
	require.NoError(t, err)
	assert.Equal(t, "cleaned up", updated.Body)
}
