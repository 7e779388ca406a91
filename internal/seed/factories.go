// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"math/rand"
	"time"

	"feedc/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Factory builds domain entities and persists them to the database.
// It is a thin helper used by the seeder and tests.
type Factory struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB) *Factory {
	gofakeit.Seed(time.Now().UnixNano())
	// #nosec G404: acceptable for seeding
	return &Factory{db: db, rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// BuildPost constructs a post with a realistic property map but does not
// persist it. Useful for batching.
func (f *Factory) BuildPost(pageID, postType uint, overrides ...func(*models.Post)) *models.Post {
	// spread posted-at over the last 90 days
	daysBack := f.rng.Intn(90)
	hoursBack := f.rng.Intn(24)
	postedAt := time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour)

	post := &models.Post{
		ID:       uuid.NewString(),
		PageID:   pageID,
		PostType: postType,
		OwnerID:  uuid.NewString(),
		Status:   models.PostStatusActive,
		Properties: models.PropertyMap{
			models.PropPostedAt: {
				ID:    models.PropPostedAt,
				Name:  "postedAt",
				Type:  models.PropertyTypeTimestamp,
				Value: float64(postedAt.Unix()),
			},
			models.PropCountry: {
				ID:    models.PropCountry,
				Name:  "country",
				Type:  models.PropertyTypeText,
				Value: gofakeit.CountryAbr(),
			},
			models.PropUniqueID: {
				ID:    models.PropUniqueID,
				Name:  "uniqueId",
				Type:  models.PropertyTypeText,
				Value: gofakeit.Word() + "-" + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
			},
		},
		CreatedAt: postedAt,
	}

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	return f.db.Create(&posts).Error
}

// CreateCategory constructs and persists a sample category.
func (f *Factory) CreateCategory(overrides ...func(*models.Category)) (*models.Category, error) {
	category := &models.Category{
		ID:   uuid.NewString(),
		Name: gofakeit.Hobby(),
	}

	for _, override := range overrides {
		override(category)
	}

	if err := f.db.Create(category).Error; err != nil {
		return nil, err
	}
	return category, nil
}

// CreateFeedRule constructs and persists a feed rule with the given id.
func (f *Factory) CreateFeedRule(id, pageID, postType uint, overrides ...func(*models.FeedRule)) (*models.FeedRule, error) {
	rule := &models.FeedRule{
		ID:         id,
		PageID:     pageID,
		PostType:   postType,
		FilterType: models.FilterTypeAnd,
		Sorting:    &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortDesc},
	}

	for _, override := range overrides {
		override(rule)
	}

	if err := f.db.Create(rule).Error; err != nil {
		return nil, err
	}
	return rule, nil
}

// AssignCategory links a post to a category in the lookup index.
func (f *Factory) AssignCategory(post *models.Post, category *models.Category) error {
	link := &models.PostCategory{
		PostID:     post.ID,
		CategoryID: category.ID,
		PostedAt:   post.PostedAt(),
	}
	if set, ok := post.Properties[models.PropCategories].CategorySet(); ok {
		set[category.ID] = true
	} else {
		post.Properties[models.PropCategories] = models.PropertyValue{
			ID:    models.PropCategories,
			Name:  "categories",
			Type:  models.PropertyTypeCategories,
			Value: map[string]any{category.ID: true},
		}
	}
	if err := f.db.Save(post).Error; err != nil {
		return err
	}
	return f.db.Create(link).Error
}
