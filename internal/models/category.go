package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StringList is a JSONB-persisted list of ids.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, l)
	case string:
		return json.Unmarshal([]byte(b), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported string list source type %T", src)
	}
}

// Category is read-only reference data. SimilarCategories lists ids the
// category feed widens to when an exact match yields nothing.
type Category struct {
	ID                string     `gorm:"primaryKey" json:"id"`
	Name              string     `gorm:"not null" json:"name"`
	SimilarCategories StringList `gorm:"type:jsonb" json:"similarCategories,omitempty"`
}

// PostCategory is one row of the category -> post index consulted by the
// category feed override. PostedAt mirrors the post's property-7 timestamp so
// the index can page newest-first without joining posts.
type PostCategory struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	PostID     string  `gorm:"not null;index" json:"postId"`
	CategoryID string  `gorm:"not null;index" json:"categoryId"`
	PostedAt   float64 `gorm:"not null;default:0" json:"postedAt"`
}
