package feed

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"feedc/internal/directory"
	"feedc/internal/middleware"
	"feedc/internal/models"
	"feedc/internal/observability"
	"feedc/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Service is the feed resolution engine. It owns no persisted state; every
// request is resolved from the injected collaborators.
type Service struct {
	rules          repository.FeedRuleRepository
	posts          repository.PostRepository
	categories     repository.CategoryRepository
	postCategories repository.PostCategoryRepository
	directory      directory.Service

	// now is swappable for deterministic relative-date tests.
	now func() time.Time
}

// NewService creates the feed engine with its collaborators.
func NewService(
	rules repository.FeedRuleRepository,
	posts repository.PostRepository,
	categories repository.CategoryRepository,
	postCategories repository.PostCategoryRepository,
	dir directory.Service,
) *Service {
	return &Service{
		rules:          rules,
		posts:          posts,
		categories:     categories,
		postCategories: postCategories,
		directory:      dir,
		now:            time.Now,
	}
}

// ResolveRequest is a feed resolution call.
type ResolveRequest struct {
	PageID        uint
	FeedID        uint
	DynamicParams map[string]string
	IncludeOwner  bool
	PageToken     string
	AuthToken     string
}

// ResolveResponse is the resolved page plus continuation state.
type ResolveResponse struct {
	HasMore   bool           `json:"hasMore"`
	PageToken string         `json:"pageToken"`
	Posts     []*models.Post `json:"posts"`
}

// feedPage is one feed's query result within a request.
type feedPage struct {
	posts      []*models.Post
	hasMore    bool
	nextFeedID uint
}

// Resolve runs the full pipeline: token decode, pin injection, rule
// compilation, overrides, query, chain resolution, eager merge, enrichment,
// and token assembly.
func (s *Service) Resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	ctx, span := observability.Tracer.Start(ctx, "feed.resolve",
		trace.WithAttributes(
			attribute.Int("page.id", int(req.PageID)),
			attribute.Int("feed.id", int(req.FeedID)),
		))
	defer span.End()

	resp, err := s.resolve(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.String("error", err.Error()))
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("feed.posts", len(resp.Posts)),
		attribute.Bool("feed.has_more", resp.HasMore),
	)
	return resp, nil
}

func (s *Service) resolve(ctx context.Context, req ResolveRequest) (*ResolveResponse, error) {
	now := s.now()

	token, err := DecodeToken(req.PageToken)
	if err != nil {
		// A corrupt token degrades to a first-page request.
		middleware.Logger.WarnContext(ctx, "invalid page token ignored", slog.String("error", err.Error()))
		token = nil
	}

	feedID := req.FeedID
	pageSize := DefaultFeedPageSize
	pageIndex := 0
	var usedPostIDs []string
	if token != nil {
		if token.FeedID != nil {
			feedID = *token.FeedID
		}
		usedPostIDs = append(usedPostIDs, token.UsedPostIDs...)
		pageSize = token.PageSize
		pageIndex = token.PageIndex + 1
	}

	var posts []*models.Post
	if token == nil && pinnedFeed(req.PageID, feedID) {
		pins, err := s.posts.FindPinned(ctx, req.PageID, pinnedPostType(feedID))
		if err != nil {
			return nil, wrapStorageError(err)
		}
		for _, pin := range pins {
			posts = append(posts, pin)
			usedPostIDs = append(usedPostIDs, pin.ID)
		}
	}

	primary, err := s.fetchFeed(ctx, req.PageID, feedID, req.DynamicParams, usedPostIDs, pageSize, pageIndex, now)
	if err != nil {
		return nil, err
	}
	for _, p := range primary.posts {
		posts = append(posts, p)
		usedPostIDs = append(usedPostIDs, p.ID)
	}
	hasMore := primary.hasMore
	nextFeedID := primary.nextFeedID

	// At most one eager hop per request, even if the successor table ever
	// grows a cycle.
	if req.PageID == feedChainPage && nextFeedID != feedID && hasMore && len(posts) < minMergedResults {
		middleware.EagerMerges.WithLabelValues(strconv.FormatUint(uint64(feedID), 10)).Inc()
		chained, err := s.fetchFeed(ctx, req.PageID, nextFeedID, req.DynamicParams, usedPostIDs, pageSize, pageIndex, now)
		if err != nil {
			return nil, err
		}
		for _, p := range chained.posts {
			posts = append(posts, p)
			usedPostIDs = append(usedPostIDs, p.ID)
		}
		hasMore = chained.hasMore
	}

	s.enrich(ctx, req, posts)

	next := PageToken{
		PageIndex:   pageIndex,
		PageSize:    pageSize,
		FeedID:      &nextFeedID,
		UsedPostIDs: usedPostIDs,
	}
	return &ResolveResponse{
		HasMore:   hasMore,
		PageToken: EncodeToken(next),
		Posts:     posts,
	}, nil
}

// fetchFeed resolves one feed's rule, compiles and overrides it, executes the
// query, and decides the chain handoff.
func (s *Service) fetchFeed(ctx context.Context, pageID, feedID uint, params map[string]string, excludeIDs []string, pageSize, pageIndex int, now time.Time) (*feedPage, error) {
	rule, err := s.rules.GetByID(ctx, feedID)
	if err != nil {
		return nil, wrapStorageError(err)
	}
	if rule.PageID != pageID {
		return nil, models.NewNotFoundError("Feed", feedID)
	}

	compiled, err := CompileRule(rule, params, now)
	if err != nil {
		return nil, err
	}

	octx := &overrideContext{
		pageSize:       pageSize,
		pageIndex:      pageIndex,
		now:            now,
		categories:     s.categories,
		postCategories: s.postCategories,
	}
	if err := applyOverrides(ctx, octx, pageID, feedID, compiled); err != nil {
		return nil, wrapStorageError(err)
	}

	// The accumulated exclusion set is the paging mechanism for feed fetches:
	// every id already served sits in excludeIDs, so the window always starts
	// at 0. Offsets page the listing and the category index lookups instead.
	rows, err := s.posts.Query(ctx, compiled.Query(pageID, rule.PostType, excludeIDs, 0, pageSize+1))
	if err != nil {
		return nil, wrapStorageError(err)
	}

	hasMore := false
	if len(rows) > pageSize {
		hasMore = true
		rows = rows[:pageSize]
	}

	nextFeedID := feedID
	if !hasMore {
		if successor, ok := successorFeed(pageID, feedID); ok {
			nextFeedID = successor
			hasMore = true
			middleware.ChainHops.WithLabelValues(strconv.FormatUint(uint64(feedID), 10)).Inc()
		}
	}

	return &feedPage{posts: rows, hasMore: hasMore, nextFeedID: nextFeedID}, nil
}

// wrapStorageError passes through classified application errors and wraps
// anything else as a generic bad request.
func wrapStorageError(err error) error {
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return err
	}
	return &models.AppError{Code: "VALIDATION_ERROR", Message: "Bad request", Err: err}
}
