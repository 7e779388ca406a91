package repository

import (
	"context"
	"errors"

	"feedc/internal/cache"
	"feedc/internal/models"

	"gorm.io/gorm"
)

// CategoryRepository serves read-only category reference data.
type CategoryRepository interface {
	All(ctx context.Context) ([]models.Category, error)
	// GetByID returns (nil, nil) for an unknown id.
	GetByID(ctx context.Context, id string) (*models.Category, error)
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new category repository
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	err := cache.Aside(ctx, cache.CategoriesKey, &categories, cache.CategoriesTTL, func() error {
		return r.db.WithContext(ctx).Find(&categories).Error
	})
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*models.Category, error) {
	var category models.Category
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &category, nil
}
