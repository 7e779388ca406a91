package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"feedc/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPost(t *testing.T, pageID, postType uint, status models.PostStatus, pinned bool, props models.PropertyMap) *models.Post {
	t.Helper()
	db := requireDB(t)
	post := &models.Post{
		ID:         uuid.NewString(),
		PageID:     pageID,
		PostType:   postType,
		OwnerID:    uuid.NewString(),
		Status:     status,
		Pinned:     pinned,
		Properties: props,
	}
	require.NoError(t, db.Create(post).Error)
	t.Cleanup(func() {
		db.Delete(&models.Post{}, "id = ?", post.ID)
	})
	return post
}

func postedAtProp(ts time.Time) models.PropertyMap {
	return models.PropertyMap{
		models.PropPostedAt: {ID: models.PropPostedAt, Type: models.PropertyTypeTimestamp, Value: float64(ts.Unix())},
	}
}

func TestQueryFiltersByPageTypeAndStatus(t *testing.T) {
	db := requireDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	match := seedPost(t, 71, 1, models.PostStatusActive, false, postedAtProp(now))
	seedPost(t, 71, 2, models.PostStatusActive, false, postedAtProp(now))
	seedPost(t, 71, 1, models.PostStatusRemoved, false, postedAtProp(now))
	seedPost(t, 72, 1, models.PostStatusActive, false, postedAtProp(now))

	rows, err := repo.Query(context.Background(), models.PostQuery{
		PageID:   71,
		PostType: 1,
		Statuses: []models.PostStatus{models.PostStatusActive},
		Limit:    10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, match.ID, rows[0].ID)
}

func TestQueryAppliesExcludeAndRestrictSets(t *testing.T) {
	db := requireDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	a := seedPost(t, 73, 1, models.PostStatusActive, false, postedAtProp(now))
	b := seedPost(t, 73, 1, models.PostStatusActive, false, postedAtProp(now.Add(-time.Hour)))
	c := seedPost(t, 73, 1, models.PostStatusActive, false, postedAtProp(now.Add(-2*time.Hour)))

	rows, err := repo.Query(context.Background(), models.PostQuery{
		PageID:        73,
		PostType:      1,
		Statuses:      []models.PostStatus{models.PostStatusActive},
		ExcludeIDs:    []string{a.ID},
		IDs:           []string{a.ID, b.ID, c.ID},
		RestrictToIDs: true,
		Sorting:       &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortDesc},
		Limit:         10,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, b.ID, rows[0].ID)
	assert.Equal(t, c.ID, rows[1].ID)
}

func TestQueryEmptyRestrictedSetMatchesNothing(t *testing.T) {
	db := requireDB(t)
	repo := NewPostRepository(db)

	rows, err := repo.Query(context.Background(), models.PostQuery{
		PageID:        74,
		PostType:      1,
		RestrictToIDs: true,
	})
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestFindPinned(t *testing.T) {
	db := requireDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	pinned := seedPost(t, 75, 1, models.PostStatusActive, true, postedAtProp(now))
	seedPost(t, 75, 1, models.PostStatusActive, false, postedAtProp(now))
	seedPost(t, 75, 1, models.PostStatusRemoved, true, postedAtProp(now))
	seedPost(t, 75, 2, models.PostStatusActive, true, postedAtProp(now))

	rows, err := repo.FindPinned(context.Background(), 75, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, pinned.ID, rows[0].ID)
}

func TestListOrdersByPostedAtAndSkipsRemoved(t *testing.T) {
	db := requireDB(t)
	repo := NewPostRepository(db)
	now := time.Now()

	newest := seedPost(t, 76, 1, models.PostStatusActive, false, postedAtProp(now))
	draft := seedPost(t, 76, 1, models.PostStatusDraft, false, postedAtProp(now.Add(-time.Hour)))
	seedPost(t, 76, 1, models.PostStatusRemoved, false, postedAtProp(now.Add(-time.Minute)))

	statuses := []models.PostStatus{models.PostStatusDraft, models.PostStatusActive}
	rows, err := repo.List(context.Background(), 76, statuses, 10, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newest.ID, rows[0].ID)
	assert.Equal(t, draft.ID, rows[1].ID)

	count, err := repo.CountByPage(context.Background(), 76)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestFindByUniqueID(t *testing.T) {
	db := requireDB(t)
	repo := NewPostRepository(db)

	props := models.PropertyMap{
		models.PropUniqueID: {ID: models.PropUniqueID, Type: models.PropertyTypeText, Value: "spring-sale"},
	}
	post := seedPost(t, 77, 1, models.PostStatusActive, false, props)

	found, err := repo.FindByUniqueID(context.Background(), 77, "spring-sale")
	require.NoError(t, err)
	assert.Equal(t, post.ID, found.ID)

	_, err = repo.FindByUniqueID(context.Background(), 77, "no-such-post")
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestPostCategoryIndexRoundTrip(t *testing.T) {
	db := requireDB(t)
	repo := NewPostCategoryRepository(db)
	ctx := context.Background()

	newer := seedPost(t, 78, 1, models.PostStatusActive, false, postedAtProp(time.Now()))
	older := seedPost(t, 78, 1, models.PostStatusActive, false, postedAtProp(time.Now().Add(-time.Hour)))
	require.NoError(t, repo.Assign(ctx, newer.ID, "cat-int-1", newer.PostedAt()))
	require.NoError(t, repo.Assign(ctx, older.ID, "cat-int-1", older.PostedAt()))
	t.Cleanup(func() {
		db.Exec("DELETE FROM post_categories WHERE category_id = ?", "cat-int-1")
	})

	ids, err := repo.PostIDsByCategory(ctx, "cat-int-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{newer.ID, older.ID}, ids)

	require.NoError(t, repo.DeleteByPost(ctx, newer.ID))
	ids, err = repo.PostIDsByCategory(ctx, "cat-int-1", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{older.ID}, ids)
}
