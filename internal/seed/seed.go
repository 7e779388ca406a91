package seed

import (
	"context"
	"fmt"
	"log"

	"feedc/internal/cache"
	"feedc/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// Seeder populates the database with demo pages, feed rules, posts and
// categories.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db, factory: NewFactory(db)}
}

// ClearAll removes all seeded data. Order respects foreign keys.
func (s *Seeder) ClearAll() error {
	tables := []string{"post_categories", "posts", "feed_rules", "categories"}
	for _, table := range tables {
		if err := s.db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	log.Println("Database cleared")
	return nil
}

// demoRules is the page-1 feed rule set the engine's chain and override
// tables expect, plus a couple of plain feeds for other pages.
var demoRules = []struct {
	id       uint
	pageID   uint
	postType uint
	filters  models.FilterList
}{
	{id: 1, pageID: 1, postType: 1, filters: nil},
	{id: 2, pageID: 1, postType: 2, filters: nil},
	{id: 5, pageID: 1, postType: 5, filters: nil},
	{id: 6, pageID: 1, postType: 1, filters: nil},
	{id: 8, pageID: 1, postType: 1, filters: models.FilterList{
		{PropertyID: models.PropPostedAt, Operator: models.OperatorEquals, Value: "LAST_7_DAYS"},
	}},
	{id: 9, pageID: 1, postType: 2, filters: models.FilterList{
		{PropertyID: models.PropPostedAt, Operator: models.OperatorEquals, Value: "LAST_30_DAYS"},
	}},
	{id: 14, pageID: 1, postType: 1, filters: nil},
	{id: 17, pageID: 1, postType: 3, filters: nil},
	{id: 18, pageID: 1, postType: 1, filters: nil},
	{id: 24, pageID: 1, postType: 3, filters: models.FilterList{
		{PropertyID: models.PropPostedAt, Operator: models.OperatorEquals, Value: "CURRENT_MONTH"},
	}},
	{id: 27, pageID: 1, postType: 1, filters: models.FilterList{
		{PropertyID: models.PropCountry, Operator: models.OperatorEquals, Value: "{{country}}"},
	}},
	{id: 29, pageID: 1, postType: 1, filters: models.FilterList{
		{PropertyID: models.PropCategories, Operator: models.OperatorEquals, Value: "{{categoryId}}"},
	}},
	{id: 40, pageID: 2, postType: 1, filters: nil},
}

// Seed populates feed rules, categories and posts. numPosts is spread across
// the demo pages and post types.
func (s *Seeder) Seed(numPosts, numCategories int) error {
	for _, r := range demoRules {
		filters := r.filters
		if _, err := s.factory.CreateFeedRule(r.id, r.pageID, r.postType, func(rule *models.FeedRule) {
			rule.Filters = filters
		}); err != nil {
			return fmt.Errorf("seeding feed rule %d: %w", r.id, err)
		}
	}
	log.Printf("Seeded %d feed rules", len(demoRules))

	categories := make([]*models.Category, 0, numCategories)
	for i := 0; i < numCategories; i++ {
		category, err := s.factory.CreateCategory()
		if err != nil {
			return fmt.Errorf("seeding category: %w", err)
		}
		categories = append(categories, category)
	}
	// each category considers two random peers similar
	for _, c := range categories {
		for j := 0; j < 2 && len(categories) > 1; j++ {
			peer := categories[gofakeit.Number(0, len(categories)-1)]
			if peer.ID != c.ID {
				c.SimilarCategories = append(c.SimilarCategories, peer.ID)
			}
		}
		if err := s.db.Save(c).Error; err != nil {
			return fmt.Errorf("updating category: %w", err)
		}
	}
	log.Printf("Seeded %d categories", len(categories))

	postTypes := []uint{1, 1, 1, 2, 3, 5}
	posts := make([]*models.Post, 0, numPosts)
	for i := 0; i < numPosts; i++ {
		postType := postTypes[i%len(postTypes)]
		post := s.factory.BuildPost(1, postType, func(p *models.Post) {
			// a sprinkling of pins and drafts
			if gofakeit.Number(0, 19) == 0 {
				p.Pinned = true
			}
			if gofakeit.Number(0, 9) == 0 {
				p.Status = models.PostStatusDraft
			}
		})
		posts = append(posts, post)
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return fmt.Errorf("seeding posts: %w", err)
	}
	log.Printf("Seeded %d posts", len(posts))

	if len(categories) > 0 {
		assigned := 0
		for _, post := range posts {
			if post.PostType != 1 || gofakeit.Number(0, 2) != 0 {
				continue
			}
			category := categories[gofakeit.Number(0, len(categories)-1)]
			if err := s.factory.AssignCategory(post, category); err != nil {
				return fmt.Errorf("assigning category: %w", err)
			}
			assigned++
		}
		log.Printf("Assigned categories to %d posts", assigned)
	}

	return nil
}

// FlushCache drops cached feed rules and category reference data so a reseed
// is visible without waiting out the TTLs. No-op when Redis is not connected.
func (s *Seeder) FlushCache(ctx context.Context) {
	for _, r := range demoRules {
		cache.InvalidateFeedRule(ctx, r.id)
	}
	cache.InvalidateCategories(ctx)
}
