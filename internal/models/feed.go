package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// FilterType determines how a rule's filter predicates combine.
type FilterType string

const (
	FilterTypeAnd FilterType = "AND"
	FilterTypeOr  FilterType = "OR"
)

// Operator is the closed set of filter operators a feed rule may use.
type Operator string

const (
	OperatorEquals       Operator = "EQUALS"
	OperatorNotEquals    Operator = "NOT_EQUALS"
	OperatorContains     Operator = "CONTAINS"
	OperatorLess         Operator = "LESS"
	OperatorLessOrEquals Operator = "LESS_OR_EQUALS"
	OperatorMore         Operator = "MORE"
	OperatorMoreOrEquals Operator = "MORE_OR_EQUALS"
	OperatorIsNull       Operator = "IS_NULL"
	OperatorIsNotNull    Operator = "IS_NOT_NULL"
)

// SortOrder is the direction of a rule's sort spec.
type SortOrder string

const (
	SortAsc  SortOrder = "ASC"
	SortDesc SortOrder = "DESC"
)

// FeedFilter is one declarative filter of a feed rule. Value is a template
// that may contain {{name}} placeholders resolved from the caller's dynamic
// params.
type FeedFilter struct {
	PropertyID uint     `json:"propertyId"`
	Operator   Operator `json:"operator"`
	Value      string   `json:"value"`
}

// FilterList is an ordered filter set persisted as JSONB.
type FilterList []FeedFilter

// Value implements driver.Valuer.
func (l FilterList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *FilterList) Scan(src any) error {
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, l)
	case string:
		return json.Unmarshal([]byte(b), l)
	case nil:
		*l = nil
		return nil
	default:
		return fmt.Errorf("unsupported filter list source type %T", src)
	}
}

// SortSpec orders results by one property value.
type SortSpec struct {
	PropertyID uint      `json:"propertyId"`
	Order      SortOrder `json:"order"`
}

// Value implements driver.Valuer.
func (s SortSpec) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *SortSpec) Scan(src any) error {
	switch b := src.(type) {
	case []byte:
		return json.Unmarshal(b, s)
	case string:
		return json.Unmarshal([]byte(b), s)
	case nil:
		return nil
	default:
		return fmt.Errorf("unsupported sort spec source type %T", src)
	}
}

// FeedRule is the declarative definition of a feed: which posts of a page it
// selects and how they are ordered. Immutable per request.
type FeedRule struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	PageID     uint       `gorm:"not null;index" json:"pageId"`
	PostType   uint       `gorm:"not null" json:"postType"`
	FilterType FilterType `gorm:"not null;default:AND" json:"filterType"`
	Filters    FilterList `gorm:"type:jsonb" json:"filters"`
	Sorting    *SortSpec  `gorm:"type:jsonb" json:"sorting,omitempty"`
}
