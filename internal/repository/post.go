// Package repository provides data access layer implementations for the application.
package repository

import (
	"context"
	"errors"
	"sort"

	"feedc/internal/models"

	"gorm.io/gorm"
)

// PostRepository is the post fetch executor contract consumed by the feed
// engine, plus the curation operations the HTTP surface exposes.
type PostRepository interface {
	// Query executes compiled criteria: indexed columns and id sets are
	// applied in storage, the compiled predicate on the candidates, then
	// sort and window.
	Query(ctx context.Context, q models.PostQuery) ([]*models.Post, error)
	FindPinned(ctx context.Context, pageID, postType uint) ([]*models.Post, error)
	List(ctx context.Context, pageID uint, statuses []models.PostStatus, limit, offset int) ([]*models.Post, error)
	CountByPage(ctx context.Context, pageID uint) (int64, error)
	FindByUniqueID(ctx context.Context, pageID uint, uniqueID string) (*models.Post, error)
	Save(ctx context.Context, post *models.Post) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Query(ctx context.Context, q models.PostQuery) ([]*models.Post, error) {
	if q.RestrictToIDs && len(q.IDs) == 0 {
		return nil, nil
	}

	db := r.db.WithContext(ctx).
		Where("page_id = ? AND post_type = ?", q.PageID, q.PostType)
	if len(q.Statuses) > 0 {
		db = db.Where("status IN ?", q.Statuses)
	}
	if len(q.ExcludeIDs) > 0 {
		db = db.Where("id NOT IN ?", q.ExcludeIDs)
	}
	if q.RestrictToIDs {
		db = db.Where("id IN ?", q.IDs)
	}

	var rows []*models.Post
	if err := db.Find(&rows).Error; err != nil {
		return nil, err
	}
	return SelectWindow(rows, q), nil
}

// SelectWindow evaluates the compiled predicate on candidate rows, sorts per
// the criteria's sort spec, and cuts the requested window. Exported so
// in-memory stores used in tests share the executor semantics.
func SelectWindow(rows []*models.Post, q models.PostQuery) []*models.Post {
	matched := make([]*models.Post, 0, len(rows))
	for _, p := range rows {
		if q.Match == nil || q.Match(p) {
			matched = append(matched, p)
		}
	}

	if q.Sorting != nil {
		propID := q.Sorting.PropertyID
		desc := q.Sorting.Order == models.SortDesc
		sort.SliceStable(matched, func(i, j int) bool {
			if desc {
				return propertyLess(matched[j], matched[i], propID)
			}
			return propertyLess(matched[i], matched[j], propID)
		})
	}

	if q.Offset > 0 {
		if q.Offset >= len(matched) {
			return nil
		}
		matched = matched[q.Offset:]
	}
	if q.Limit > 0 && len(matched) > q.Limit {
		matched = matched[:q.Limit]
	}
	return matched
}

// propertyLess orders two posts by one property value: numerically when both
// values are numbers, lexically otherwise. Missing values sort first.
func propertyLess(a, b *models.Post, propertyID uint) bool {
	av, aok := a.Property(propertyID)
	bv, bok := b.Property(propertyID)
	if !aok || !bok {
		return !aok && bok
	}
	an, anum := av.Number()
	bn, bnum := bv.Number()
	if anum && bnum {
		return an < bn
	}
	as, _ := av.Text()
	bs, _ := bv.Text()
	return as < bs
}

func (r *postRepository) FindPinned(ctx context.Context, pageID, postType uint) ([]*models.Post, error) {
	var rows []*models.Post
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND post_type = ? AND status = ? AND pinned = ?",
			pageID, postType, models.PostStatusActive, true).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postRepository) List(ctx context.Context, pageID uint, statuses []models.PostStatus, limit, offset int) ([]*models.Post, error) {
	var rows []*models.Post
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND status IN ?", pageID, statuses).
		Order("(properties->'7'->>'value')::numeric DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *postRepository) CountByPage(ctx context.Context, pageID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("page_id = ? AND status <> ?", pageID, models.PostStatusRemoved).
		Count(&count).Error
	return count, err
}

func (r *postRepository) FindByUniqueID(ctx context.Context, pageID uint, uniqueID string) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND post_type = ? AND status = ?", pageID, 1, models.PostStatusActive).
		Where("properties->'29'->>'value' = ?", uniqueID).
		First(&post).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Post", uniqueID)
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) Save(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}
