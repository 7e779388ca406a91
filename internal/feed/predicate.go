package feed

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"feedc/internal/models"
)

// filterValue is a resolved filter literal classified once during
// compilation: relative-date token, boolean literal, or opaque scalar.
type filterValue struct {
	raw     string
	isBool  bool
	boolVal bool
	isDate  bool
	dateTok DateToken
}

func classifyValue(raw string) filterValue {
	fv := filterValue{raw: raw}
	if tok, ok := parseDateToken(raw); ok {
		fv.isDate = true
		fv.dateTok = tok
		return fv
	}
	if raw == "true" || raw == "false" {
		fv.isBool = true
		fv.boolVal = raw == "true"
	}
	return fv
}

// compiledFilter pairs a rule filter with its resolved value and predicate.
type compiledFilter struct {
	propertyID uint
	operator   models.Operator
	value      filterValue
	match      models.Predicate
}

// CompiledRule is a feed rule after parameter resolution and predicate
// compilation. Overrides mutate it before the query is built: they may remove
// filters, add top-level restrictions, or clamp results to an id set.
type CompiledRule struct {
	filterType   models.FilterType
	filters      []compiledFilter
	restrictions []models.Predicate
	ids          []string
	restrictIDs  bool
	sorting      *models.SortSpec
}

// CompileRule resolves a rule's filter templates against the dynamic params
// and compiles each filter into a predicate, evaluating relative-date bounds
// against now. An operator outside the supported set is a configuration
// error.
func CompileRule(rule *models.FeedRule, params map[string]string, now time.Time) (*CompiledRule, error) {
	compiled := &CompiledRule{
		filterType: rule.FilterType,
		sorting:    rule.Sorting,
	}
	for _, filter := range rule.Filters {
		if filter.PropertyID == 0 {
			continue
		}
		fv := classifyValue(ResolveParams(filter.Value, params))
		match, err := compileFilter(filter.PropertyID, filter.Operator, fv, now)
		if err != nil {
			return nil, err
		}
		compiled.filters = append(compiled.filters, compiledFilter{
			propertyID: filter.PropertyID,
			operator:   filter.Operator,
			value:      fv,
			match:      match,
		})
	}
	return compiled, nil
}

func compileFilter(propertyID uint, op models.Operator, fv filterValue, now time.Time) (models.Predicate, error) {
	switch op {
	case models.OperatorEquals:
		if fv.isDate {
			from, to := equalsBounds(fv.dateTok, now)
			return timestampBetween(propertyID, from, to), nil
		}
		return func(p *models.Post) bool {
			pv, ok := p.Property(propertyID)
			return ok && scalarEquals(pv, fv)
		}, nil
	case models.OperatorNotEquals:
		if fv.isDate {
			to := notEqualsBound(fv.dateTok, now)
			return timestampBetween(propertyID, 0, to), nil
		}
		// Mirrors storage-level "not equals": a missing property matches.
		return func(p *models.Post) bool {
			pv, ok := p.Property(propertyID)
			return !ok || !scalarEquals(pv, fv)
		}, nil
	case models.OperatorContains:
		needle := strings.ToLower(fv.raw)
		return func(p *models.Post) bool {
			pv, ok := p.Property(propertyID)
			if !ok {
				return false
			}
			s, ok := pv.Text()
			return ok && strings.Contains(strings.ToLower(s), needle)
		}, nil
	case models.OperatorLess:
		return numericCompare(propertyID, fv, func(v, bound float64) bool { return v < bound })
	case models.OperatorLessOrEquals:
		return numericCompare(propertyID, fv, func(v, bound float64) bool { return v <= bound })
	case models.OperatorMore:
		return numericCompare(propertyID, fv, func(v, bound float64) bool { return v > bound })
	case models.OperatorMoreOrEquals:
		return numericCompare(propertyID, fv, func(v, bound float64) bool { return v >= bound })
	case models.OperatorIsNull:
		return func(p *models.Post) bool {
			_, ok := p.Property(propertyID)
			return !ok
		}, nil
	case models.OperatorIsNotNull:
		return func(p *models.Post) bool {
			_, ok := p.Property(propertyID)
			return ok
		}, nil
	default:
		return nil, models.NewConfigurationError(fmt.Sprintf("Unsupported filter operator %q", op))
	}
}

// timestampBetween matches a numeric timestamp property within [from, to];
// either bound may be 0 for open-ended.
func timestampBetween(propertyID uint, from, to int64) models.Predicate {
	return func(p *models.Post) bool {
		pv, ok := p.Property(propertyID)
		if !ok {
			return false
		}
		ts, ok := pv.Number()
		if !ok {
			return false
		}
		if from > 0 && ts < float64(from) {
			return false
		}
		if to > 0 && ts > float64(to) {
			return false
		}
		return from > 0 || to > 0
	}
}

func numericCompare(propertyID uint, fv filterValue, cmp func(v, bound float64) bool) (models.Predicate, error) {
	bound, err := strconv.ParseFloat(fv.raw, 64)
	if err != nil {
		// Non-numeric literal: the comparison can never hold.
		return func(*models.Post) bool { return false }, nil
	}
	return func(p *models.Post) bool {
		pv, ok := p.Property(propertyID)
		if !ok {
			return false
		}
		v, ok := pv.Number()
		return ok && cmp(v, bound)
	}, nil
}

// scalarEquals is strict about types: a string literal never equals a numeric
// property, mirroring storage-level equality.
func scalarEquals(pv models.PropertyValue, fv filterValue) bool {
	if fv.isBool {
		b, ok := pv.Bool()
		return ok && b == fv.boolVal
	}
	if s, ok := pv.Text(); ok {
		return s == fv.raw
	}
	return false
}

// exactMatch is a top-level restriction pinning one property to a resolved
// scalar value; used by overrides.
func exactMatch(propertyID uint, raw string) models.Predicate {
	fv := classifyValue(raw)
	return func(p *models.Post) bool {
		pv, ok := p.Property(propertyID)
		return ok && scalarEquals(pv, fv)
	}
}

// filterValueByProperty returns the resolved literal of the first filter on
// the given property.
func (r *CompiledRule) filterValueByProperty(propertyID uint) (string, bool) {
	for _, f := range r.filters {
		if f.propertyID == propertyID {
			return f.value.raw, true
		}
	}
	return "", false
}

// removeFiltersByProperty drops every filter on the given property.
func (r *CompiledRule) removeFiltersByProperty(propertyID uint) {
	kept := r.filters[:0]
	for _, f := range r.filters {
		if f.propertyID != propertyID {
			kept = append(kept, f)
		}
	}
	r.filters = kept
}

// addRestriction appends a predicate that must hold regardless of the rule's
// filter type.
func (r *CompiledRule) addRestriction(p models.Predicate) {
	r.restrictions = append(r.restrictions, p)
}

// restrictToIDs clamps results to the given id set. An empty set matches
// nothing.
func (r *CompiledRule) restrictToIDs(ids []string) {
	r.ids = ids
	r.restrictIDs = true
}

// Predicate combines the compiled filters per the rule's filter type, ANDed
// with every override restriction. A rule with no remaining filters matches
// everything its restrictions allow.
func (r *CompiledRule) Predicate() models.Predicate {
	restrictions := r.restrictions
	filters := r.filters
	orMode := r.filterType == models.FilterTypeOr
	return func(p *models.Post) bool {
		for _, restrict := range restrictions {
			if !restrict(p) {
				return false
			}
		}
		if len(filters) == 0 {
			return true
		}
		if orMode {
			for _, f := range filters {
				if f.match(p) {
					return true
				}
			}
			return false
		}
		for _, f := range filters {
			if !f.match(p) {
				return false
			}
		}
		return true
	}
}

// Query assembles the executor criteria for this compiled rule.
func (r *CompiledRule) Query(pageID, postType uint, excludeIDs []string, offset, limit int) models.PostQuery {
	return models.PostQuery{
		PageID:        pageID,
		PostType:      postType,
		Statuses:      []models.PostStatus{models.PostStatusActive},
		ExcludeIDs:    excludeIDs,
		IDs:           r.ids,
		RestrictToIDs: r.restrictIDs,
		Match:         r.Predicate(),
		Sorting:       r.sorting,
		Offset:        offset,
		Limit:         limit,
	}
}
