// Package models contains data structures for the application's domain models.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PostStatus is the lifecycle state of a post. REMOVED is terminal: removed
// posts are never physically deleted and must never surface in feed results.
type PostStatus string

const (
	PostStatusDraft   PostStatus = "DRAFT"
	PostStatusActive  PostStatus = "ACTIVE"
	PostStatusRemoved PostStatus = "REMOVED"
)

// PropertyType describes the shape of a property value.
type PropertyType string

const (
	PropertyTypeText       PropertyType = "TEXT"
	PropertyTypeBoolean    PropertyType = "BOOLEAN"
	PropertyTypeTimestamp  PropertyType = "TIMESTAMP"
	PropertyTypeCategories PropertyType = "CATEGORIES"
)

// Well-known property ids used by feed overrides and curation.
const (
	PropCountry    uint = 1  // exact-match pinned by the country feed override
	PropPostedAt   uint = 7  // numeric unix timestamp, default feed sort key
	PropUniqueID   uint = 29 // human-readable slug used by pin/hide lookups
	PropHidden     uint = 31 // boolean "isHidden" flag written by the hide endpoint
	PropLegacyTag  uint = 35 // never populated; dropped by the country feed override
	PropCategories uint = 37 // category-set: map of category id -> bool
)

// PropertyValue is a single entry of a post's property map. Value is a tagged
// union resolved through the typed accessors: text, boolean, numeric
// timestamp, or a category set (map of category id -> bool).
type PropertyValue struct {
	ID    uint         `json:"id"`
	Name  string       `json:"name"`
	Type  PropertyType `json:"type"`
	Value any          `json:"value"`
}

// Text returns the value as a string.
func (v PropertyValue) Text() (string, bool) {
	s, ok := v.Value.(string)
	return s, ok
}

// Number returns the value as a float64. JSON decoding yields float64 for all
// numbers; native ints are accepted for values built in code.
func (v PropertyValue) Number() (float64, bool) {
	switch n := v.Value.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}

// Bool returns the value as a boolean.
func (v PropertyValue) Bool() (bool, bool) {
	b, ok := v.Value.(bool)
	return b, ok
}

// CategorySet returns the value as a category-set map. Entries hold true for
// an assigned category id; enrichment replaces true values with full Category
// records in place.
func (v PropertyValue) CategorySet() (map[string]any, bool) {
	m, ok := v.Value.(map[string]any)
	return m, ok
}

// PropertyMap is a post's propertyId -> PropertyValue mapping, persisted as a
// single JSONB column.
type PropertyMap map[uint]PropertyValue

// Value implements driver.Valuer.
func (m PropertyMap) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *PropertyMap) Scan(src any) error {
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, m)
	case string:
		return json.Unmarshal([]byte(b), m)
	case nil:
		*m = nil
		return nil
	default:
		return fmt.Errorf("unsupported property map source type %T", src)
	}
}

// Post is a single piece of content in a page's feed.
type Post struct {
	ID         string      `gorm:"primaryKey;type:uuid" json:"id"`
	PageID     uint        `gorm:"not null;index:idx_posts_page_type" json:"pageId"`
	PostType   uint        `gorm:"not null;index:idx_posts_page_type" json:"postType"`
	OwnerID    string      `gorm:"not null;index" json:"ownerId"`
	Status     PostStatus  `gorm:"not null;index" json:"status"`
	Pinned     bool        `gorm:"not null;default:false" json:"pinned"`
	Properties PropertyMap `gorm:"type:jsonb" json:"properties"`
	// Owner is attached during enrichment; never persisted.
	Owner     *Profile  `gorm:"-" json:"owner,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Property returns the property value for id and whether it is present.
func (p *Post) Property(id uint) (PropertyValue, bool) {
	v, ok := p.Properties[id]
	return v, ok
}

// PostedAt returns the post's property-7 timestamp, or 0 when absent.
func (p *Post) PostedAt() float64 {
	if v, ok := p.Properties[PropPostedAt]; ok {
		if n, ok := v.Number(); ok {
			return n
		}
	}
	return 0
}

// Predicate is a compiled boolean test over a post's property values.
type Predicate func(*Post) bool

// PostQuery is the compiled criteria handed to the post fetch executor. The
// executor applies the indexed columns and id sets in storage, evaluates
// Match on the candidates, sorts, and returns the [Offset, Offset+Limit)
// window.
type PostQuery struct {
	PageID     uint
	PostType   uint
	Statuses   []PostStatus
	ExcludeIDs []string
	// IDs restricts results to the given id set when RestrictToIDs is true.
	// An empty restricted set matches nothing.
	IDs           []string
	RestrictToIDs bool
	Match         Predicate
	Sorting       *SortSpec
	Offset        int
	Limit         int
}
