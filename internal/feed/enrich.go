package feed

import (
	"context"
	"log/slog"

	"feedc/internal/middleware"
	"feedc/internal/models"
	"feedc/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// enrich attaches owner profiles and expands category references. The two
// fetches are independent and run concurrently; both join before response
// assembly. Enrichment failures degrade by omission and never abort the
// request.
func (s *Service) enrich(ctx context.Context, req ResolveRequest, posts []*models.Post) {
	if len(posts) == 0 {
		return
	}

	ctx, span := observability.Tracer.Start(ctx, "feed.enrich",
		trace.WithAttributes(
			attribute.Int("posts", len(posts)),
			attribute.Bool("include_owner", req.IncludeOwner),
		))
	defer span.End()

	g, gctx := errgroup.WithContext(ctx)
	if req.IncludeOwner && s.directory != nil {
		g.Go(func() error {
			if err := s.attachOwners(gctx, req.PageID, req.AuthToken, posts); err != nil {
				middleware.Logger.WarnContext(ctx, "owner enrichment skipped", slog.String("error", err.Error()))
			}
			return nil
		})
	}
	g.Go(func() error {
		if err := s.expandCategories(gctx, posts); err != nil {
			middleware.Logger.WarnContext(ctx, "category enrichment skipped", slog.String("error", err.Error()))
		}
		return nil
	})
	_ = g.Wait()
}

// attachOwners batch-fetches profiles for the distinct owner ids and attaches
// matches. A missing profile leaves the post's owner unset.
func (s *Service) attachOwners(ctx context.Context, pageID uint, authToken string, posts []*models.Post) error {
	seen := make(map[string]struct{}, len(posts))
	ownerIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		if _, dup := seen[p.OwnerID]; dup {
			continue
		}
		seen[p.OwnerID] = struct{}{}
		ownerIDs = append(ownerIDs, p.OwnerID)
	}
	if len(ownerIDs) == 0 {
		return nil
	}

	profiles, err := s.directory.GetProfiles(ctx, pageID, ownerIDs, authToken)
	if err != nil {
		return err
	}

	byID := make(map[string]*models.Profile, len(profiles))
	for i := range profiles {
		byID[profiles[i].ID] = &profiles[i]
	}
	for _, p := range posts {
		if profile, ok := byID[p.OwnerID]; ok {
			p.Owner = profile
		}
	}
	return nil
}

// expandCategories replaces true-valued category-set ids with full Category
// records. Unmatched ids are left as plain ids.
func (s *Service) expandCategories(ctx context.Context, posts []*models.Post) error {
	needed := false
	for _, p := range posts {
		if pv, ok := p.Property(models.PropCategories); ok {
			if _, ok := pv.CategorySet(); ok {
				needed = true
				break
			}
		}
	}
	if !needed {
		return nil
	}

	categories, err := s.categories.All(ctx)
	if err != nil {
		return err
	}
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	for _, p := range posts {
		pv, ok := p.Property(models.PropCategories)
		if !ok {
			continue
		}
		set, ok := pv.CategorySet()
		if !ok {
			continue
		}
		for id, v := range set {
			if assigned, ok := v.(bool); !ok || !assigned {
				continue
			}
			if category, ok := byID[id]; ok {
				set[id] = category
			}
		}
	}
	return nil
}
