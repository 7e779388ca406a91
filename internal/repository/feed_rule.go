package repository

import (
	"context"
	"errors"

	"feedc/internal/cache"
	"feedc/internal/models"

	"gorm.io/gorm"
)

// FeedRuleRepository is the rule store consumed by the feed engine.
type FeedRuleRepository interface {
	GetByID(ctx context.Context, feedID uint) (*models.FeedRule, error)
}

type feedRuleRepository struct {
	db *gorm.DB
}

// NewFeedRuleRepository creates a new feed rule repository
func NewFeedRuleRepository(db *gorm.DB) FeedRuleRepository {
	return &feedRuleRepository{db: db}
}

func (r *feedRuleRepository) GetByID(ctx context.Context, feedID uint) (*models.FeedRule, error) {
	var rule models.FeedRule
	err := cache.Aside(ctx, cache.FeedRuleKey(feedID), &rule, cache.FeedRuleTTL, func() error {
		return r.db.WithContext(ctx).First(&rule, feedID).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewNotFoundError("Feed", feedID)
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}
