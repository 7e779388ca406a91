package repository

import (
	"context"

	"feedc/internal/models"

	"gorm.io/gorm"
)

// PostCategoryRepository is the category -> post index consulted by the
// category feed override and maintained by the curation write path.
type PostCategoryRepository interface {
	PostIDsByCategory(ctx context.Context, categoryID string, limit, offset int) ([]string, error)
	PostIDsByCategories(ctx context.Context, categoryIDs []string, limit, offset int) ([]string, error)
	Assign(ctx context.Context, postID, categoryID string, postedAt float64) error
	DeleteByPost(ctx context.Context, postID string) error
}

type postCategoryRepository struct {
	db *gorm.DB
}

// NewPostCategoryRepository creates a new post category repository
func NewPostCategoryRepository(db *gorm.DB) PostCategoryRepository {
	return &postCategoryRepository{db: db}
}

func (r *postCategoryRepository) PostIDsByCategory(ctx context.Context, categoryID string, limit, offset int) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.PostCategory{}).
		Where("category_id = ?", categoryID).
		Order("posted_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *postCategoryRepository) PostIDsByCategories(ctx context.Context, categoryIDs []string, limit, offset int) ([]string, error) {
	if len(categoryIDs) == 0 {
		return nil, nil
	}
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.PostCategory{}).
		Where("category_id IN ?", categoryIDs).
		Order("posted_at DESC").
		Limit(limit).
		Offset(offset).
		Pluck("post_id", &ids).Error
	return ids, err
}

func (r *postCategoryRepository) Assign(ctx context.Context, postID, categoryID string, postedAt float64) error {
	return r.db.WithContext(ctx).Create(&models.PostCategory{
		PostID:     postID,
		CategoryID: categoryID,
		PostedAt:   postedAt,
	}).Error
}

func (r *postCategoryRepository) DeleteByPost(ctx context.Context, postID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&models.PostCategory{}).Error
}
