package feed

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"feedc/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func listBackedRepo(t *testing.T, posts []*models.Post) *postRepoStub {
	t.Helper()
	stub := noopPostRepo()
	stub.listFn = func(_ context.Context, pageID uint, statuses []models.PostStatus, limit, offset int) ([]*models.Post, error) {
		assert.ElementsMatch(t, []models.PostStatus{models.PostStatusDraft, models.PostStatusActive}, statuses)
		if offset >= len(posts) {
			return nil, nil
		}
		end := offset + limit
		if end > len(posts) {
			end = len(posts)
		}
		return posts[offset:end], nil
	}
	stub.countByPageFn = func(_ context.Context, _ uint) (int64, error) {
		return int64(len(posts)), nil
	}
	return stub
}

func TestListPostsFirstPage(t *testing.T) {
	var posts []*models.Post
	for i := 0; i < 25; i++ {
		posts = append(posts, makePost(fmt.Sprintf("p%02d", i), 3, 1, testNow.Add(-time.Duration(i)*time.Hour)))
	}
	svc := newTestService(ruleTable(nil), listBackedRepo(t, posts))

	resp, err := svc.ListPosts(context.Background(), ListRequest{PageID: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, DefaultListPageSize)
	assert.Equal(t, int64(25), resp.PostsCount)
	assert.True(t, resp.HasMore)

	token, err := DecodeToken(resp.PageToken)
	require.NoError(t, err)
	assert.Equal(t, 0, token.PageIndex)
	assert.Equal(t, DefaultListPageSize, token.PageSize)
}

func TestListPostsContinuation(t *testing.T) {
	var posts []*models.Post
	for i := 0; i < 25; i++ {
		posts = append(posts, makePost(fmt.Sprintf("p%02d", i), 3, 1, testNow.Add(-time.Duration(i)*time.Hour)))
	}
	svc := newTestService(ruleTable(nil), listBackedRepo(t, posts))

	first, err := svc.ListPosts(context.Background(), ListRequest{PageID: 3})
	require.NoError(t, err)
	second, err := svc.ListPosts(context.Background(), ListRequest{PageID: 3, PageToken: first.PageToken})
	require.NoError(t, err)
	assert.Equal(t, "p10", second.Posts[0].ID)
	assert.True(t, second.HasMore)

	third, err := svc.ListPosts(context.Background(), ListRequest{PageID: 3, PageToken: second.PageToken})
	require.NoError(t, err)
	assert.Len(t, third.Posts, 5)
	assert.False(t, third.HasMore)
}

func TestListPostsIgnoresCorruptToken(t *testing.T) {
	posts := []*models.Post{makePost("a", 3, 1, testNow)}
	svc := newTestService(ruleTable(nil), listBackedRepo(t, posts))

	resp, err := svc.ListPosts(context.Background(), ListRequest{PageID: 3, PageToken: "??"})
	require.NoError(t, err)
	assert.Len(t, resp.Posts, 1)
	assert.False(t, resp.HasMore)
}

func TestSetPinned(t *testing.T) {
	post := makePost("a", 3, 1, testNow)
	repo := noopPostRepo()
	repo.findByUniqueIDFn = func(_ context.Context, pageID uint, uniqueID string) (*models.Post, error) {
		assert.Equal(t, uint(3), pageID)
		assert.Equal(t, "spring-sale", uniqueID)
		return post, nil
	}
	var saved *models.Post
	repo.saveFn = func(_ context.Context, p *models.Post) error {
		saved = p
		return nil
	}
	svc := newTestService(ruleTable(nil), repo)

	updated, err := svc.SetPinned(context.Background(), 3, "spring-sale", true)
	require.NoError(t, err)
	assert.True(t, updated.Pinned)
	require.NotNil(t, saved)
	assert.True(t, saved.Pinned)

	updated, err = svc.SetPinned(context.Background(), 3, "spring-sale", false)
	require.NoError(t, err)
	assert.False(t, updated.Pinned)
}

func TestSetPinnedUnknownPost(t *testing.T) {
	repo := noopPostRepo()
	repo.findByUniqueIDFn = func(_ context.Context, _ uint, uniqueID string) (*models.Post, error) {
		return nil, models.NewNotFoundError("Post", uniqueID)
	}
	svc := newTestService(ruleTable(nil), repo)

	_, err := svc.SetPinned(context.Background(), 3, "nope", true)
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
}

func TestSetHiddenWritesFlagAndPrunesCategoryIndex(t *testing.T) {
	post := makePost("a", 3, 1, testNow)
	repo := noopPostRepo()
	repo.findByUniqueIDFn = func(_ context.Context, _ uint, _ string) (*models.Post, error) {
		return post, nil
	}
	svc := newTestService(ruleTable(nil), repo)

	var deletedPostID string
	postCategories := noopPostCategoryRepo()
	postCategories.deleteByPostFn = func(_ context.Context, postID string) error {
		deletedPostID = postID
		return nil
	}
	svc.postCategories = postCategories

	updated, err := svc.SetHidden(context.Background(), 3, "spring-sale", true)
	require.NoError(t, err)
	flag, ok := updated.Properties[models.PropHidden]
	require.True(t, ok)
	assert.Equal(t, "isHidden", flag.Name)
	assert.Equal(t, models.PropertyTypeBoolean, flag.Type)
	assert.Equal(t, true, flag.Value)
	assert.Equal(t, "a", deletedPostID)
}

func TestSetHiddenFalseKeepsCategoryIndex(t *testing.T) {
	post := makePost("a", 3, 1, testNow)
	post.Properties[models.PropHidden] = models.PropertyValue{
		ID: models.PropHidden, Name: "isHidden", Type: models.PropertyTypeBoolean, Value: true,
	}
	repo := noopPostRepo()
	repo.findByUniqueIDFn = func(_ context.Context, _ uint, _ string) (*models.Post, error) {
		return post, nil
	}
	svc := newTestService(ruleTable(nil), repo)

	postCategories := noopPostCategoryRepo()
	postCategories.deleteByPostFn = func(_ context.Context, _ string) error {
		t.Fatal("unhide must not prune the category index")
		return nil
	}
	svc.postCategories = postCategories

	updated, err := svc.SetHidden(context.Background(), 3, "spring-sale", false)
	require.NoError(t, err)
	assert.Equal(t, false, updated.Properties[models.PropHidden].Value)
}
