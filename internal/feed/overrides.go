package feed

import (
	"context"
	"time"

	"feedc/internal/models"
	"feedc/internal/repository"
)

// overrideContext carries the request state and collaborators an override may
// need.
type overrideContext struct {
	pageSize  int
	pageIndex int
	now       time.Time

	categories     repository.CategoryRepository
	postCategories repository.PostCategoryRepository
}

// overrideFunc is one pure predicate/sort transform applied to a compiled
// rule.
type overrideFunc func(ctx context.Context, octx *overrideContext, rule *CompiledRule) error

type overrideKey struct {
	pageID uint
	feedID uint
}

// feedOverrides is the closed per-(page, feed) special-case table, applied in
// order. New behavior is a new row, never new abstraction.
var feedOverrides = map[overrideKey][]overrideFunc{
	{1, 14}: {excludeHidden, olderThan24Hours},
	{1, 18}: {excludeHidden, within24Hours},
	{1, 27}: {excludeHidden, pinCountryFilter},
	{1, 29}: {restrictToCategoryPosts},
}

// applyOverrides runs the transform list registered for (pageID, feedID).
func applyOverrides(ctx context.Context, octx *overrideContext, pageID, feedID uint, rule *CompiledRule) error {
	for _, apply := range feedOverrides[overrideKey{pageID, feedID}] {
		if err := apply(ctx, octx, rule); err != nil {
			return err
		}
	}
	return nil
}

// excludeHidden drops posts whose hidden flag property is true. A missing or
// false flag passes.
func excludeHidden(_ context.Context, _ *overrideContext, rule *CompiledRule) error {
	rule.addRestriction(func(p *models.Post) bool {
		pv, ok := p.Property(models.PropHidden)
		if !ok {
			return true
		}
		b, ok := pv.Bool()
		return !ok || !b
	})
	return nil
}

// within24Hours clamps the feed to posts from the last 24 hours.
func within24Hours(_ context.Context, octx *overrideContext, rule *CompiledRule) error {
	from := octx.now.Add(-24 * time.Hour).Unix()
	rule.addRestriction(timestampBetween(models.PropPostedAt, from, 0))
	return nil
}

// olderThan24Hours clamps the feed to posts at least 24 hours old.
func olderThan24Hours(_ context.Context, octx *overrideContext, rule *CompiledRule) error {
	to := octx.now.Add(-24 * time.Hour).Unix()
	rule.addRestriction(timestampBetween(models.PropPostedAt, 0, to))
	return nil
}

// pinCountryFilter pins the resolved country filter value as an exact-match
// restriction and removes the rule's country filter along with the
// always-empty legacy tag filter.
func pinCountryFilter(_ context.Context, _ *overrideContext, rule *CompiledRule) error {
	if country, ok := rule.filterValueByProperty(models.PropCountry); ok {
		rule.addRestriction(exactMatch(models.PropCountry, country))
		rule.removeFiltersByProperty(models.PropCountry)
	}
	rule.removeFiltersByProperty(models.PropLegacyTag)
	return nil
}

// restrictToCategoryPosts replaces the category filter with an id-set
// restriction from the category -> post index. On an empty first page the
// lookup widens to the category's declared similar categories.
func restrictToCategoryPosts(ctx context.Context, octx *overrideContext, rule *CompiledRule) error {
	categoryID, ok := rule.filterValueByProperty(models.PropCategories)
	if !ok {
		return nil
	}

	offset := octx.pageIndex * octx.pageSize
	ids, err := octx.postCategories.PostIDsByCategory(ctx, categoryID, octx.pageSize, offset)
	if err != nil {
		return err
	}
	if len(ids) == 0 && octx.pageIndex == 0 {
		category, err := octx.categories.GetByID(ctx, categoryID)
		if err != nil {
			return err
		}
		if category != nil && len(category.SimilarCategories) > 0 {
			ids, err = octx.postCategories.PostIDsByCategories(ctx, category.SimilarCategories, octx.pageSize, offset)
			if err != nil {
				return err
			}
		}
	}

	rule.restrictToIDs(ids)
	rule.removeFiltersByProperty(models.PropCategories)
	return nil
}
