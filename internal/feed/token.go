// Package feed implements the feed resolution engine: it compiles declarative
// feed rules into predicates, applies per-feed overrides, paginates with a
// cross-feed continuation token, injects pinned posts, and enriches results.
package feed

import (
	"encoding/base64"
	"encoding/json"

	"feedc/internal/models"
)

// Default page sizes when a request carries no continuation token.
const (
	DefaultFeedPageSize = 15
	DefaultListPageSize = 10
)

// PageToken is the decoded continuation state. It round-trips through
// Encode/DecodeToken as an opaque string. FeedID is set when pagination has
// hopped to a successor feed; UsedPostIDs accumulates every id already served
// in the chain, in order and without duplicates.
type PageToken struct {
	PageIndex   int      `json:"pageIndex"`
	PageSize    int      `json:"pageSize"`
	FeedID      *uint    `json:"feedId,omitempty"`
	UsedPostIDs []string `json:"usedPostIds,omitempty"`
}

// EncodeToken serializes a token into its opaque wire form.
func EncodeToken(t PageToken) string {
	b, _ := json.Marshal(t)
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeToken parses an opaque token. A corrupt token yields an INVALID_TOKEN
// error; callers treat that as "no token" rather than failing the request.
func DecodeToken(s string) (*PageToken, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, models.NewInvalidTokenError(err)
	}
	var t PageToken
	if err := json.Unmarshal(b, &t); err != nil {
		return nil, models.NewInvalidTokenError(err)
	}
	if t.PageSize <= 0 || t.PageIndex < 0 {
		return nil, models.NewInvalidTokenError(nil)
	}
	return &t, nil
}
