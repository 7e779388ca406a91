package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	FeedRuleKeyPrefix = "feedrule:%d"
	CategoriesKey     = "categories:all"
)

const (
	FeedRuleTTL   = 10 * time.Minute
	CategoriesTTL = 30 * time.Minute
)

func FeedRuleKey(feedID uint) string {
	return fmt.Sprintf(FeedRuleKeyPrefix, feedID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateFeedRule(ctx context.Context, feedID uint) {
	Invalidate(ctx, FeedRuleKey(feedID))
}

func InvalidateCategories(ctx context.Context) {
	Invalidate(ctx, CategoriesKey)
}
