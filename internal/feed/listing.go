package feed

import (
	"context"

	"feedc/internal/models"
)

// ListRequest is a simple page-scoped post listing call.
type ListRequest struct {
	PageID    uint
	PageToken string
}

// ListResponse is one listing page with offset-based continuation state.
type ListResponse struct {
	HasMore    bool           `json:"hasMore"`
	PageToken  string         `json:"pageToken"`
	PostsCount int64          `json:"postsCount"`
	Posts      []*models.Post `json:"posts"`
}

// ListPosts returns a page's DRAFT and ACTIVE posts newest-first by their
// posted-at property. Unlike feed resolution, the listing paginates by plain
// offset and reports the total count.
func (s *Service) ListPosts(ctx context.Context, req ListRequest) (*ListResponse, error) {
	token, err := DecodeToken(req.PageToken)
	if err != nil {
		token = nil
	}

	pageSize := DefaultListPageSize
	pageIndex := 0
	if token != nil {
		pageSize = token.PageSize
		pageIndex = token.PageIndex + 1
	}

	statuses := []models.PostStatus{models.PostStatusDraft, models.PostStatusActive}
	posts, err := s.posts.List(ctx, req.PageID, statuses, pageSize, pageSize*pageIndex)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	count, err := s.posts.CountByPage(ctx, req.PageID)
	if err != nil {
		return nil, wrapStorageError(err)
	}

	return &ListResponse{
		HasMore:    count > int64(pageSize*(pageIndex+1)),
		PageToken:  EncodeToken(PageToken{PageIndex: pageIndex, PageSize: pageSize}),
		PostsCount: count,
		Posts:      posts,
	}, nil
}
