package repository

import (
	"testing"

	"feedc/internal/models"

	"github.com/stretchr/testify/assert"
)

func windowPost(id string, postedAt float64) *models.Post {
	return &models.Post{
		ID: id,
		Properties: models.PropertyMap{
			models.PropPostedAt: {ID: models.PropPostedAt, Type: models.PropertyTypeTimestamp, Value: postedAt},
		},
	}
}

func ids(posts []*models.Post) []string {
	out := make([]string, len(posts))
	for i, p := range posts {
		out[i] = p.ID
	}
	return out
}

func TestSelectWindowFiltersAndSorts(t *testing.T) {
	rows := []*models.Post{
		windowPost("a", 100),
		windowPost("b", 300),
		windowPost("c", 200),
	}
	q := models.PostQuery{
		Match:   func(p *models.Post) bool { return p.ID != "c" },
		Sorting: &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortDesc},
	}

	assert.Equal(t, []string{"b", "a"}, ids(SelectWindow(rows, q)))
}

func TestSelectWindowAscending(t *testing.T) {
	rows := []*models.Post{windowPost("b", 300), windowPost("a", 100), windowPost("c", 200)}
	q := models.PostQuery{Sorting: &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortAsc}}

	assert.Equal(t, []string{"a", "c", "b"}, ids(SelectWindow(rows, q)))
}

func TestSelectWindowOffsetAndLimit(t *testing.T) {
	rows := []*models.Post{
		windowPost("a", 400),
		windowPost("b", 300),
		windowPost("c", 200),
		windowPost("d", 100),
	}
	q := models.PostQuery{
		Sorting: &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortDesc},
		Offset:  1,
		Limit:   2,
	}

	assert.Equal(t, []string{"b", "c"}, ids(SelectWindow(rows, q)))
}

func TestSelectWindowOffsetBeyondMatches(t *testing.T) {
	rows := []*models.Post{windowPost("a", 100)}
	q := models.PostQuery{Offset: 5}

	assert.Empty(t, SelectWindow(rows, q))
}

func TestSelectWindowNilMatchKeepsAll(t *testing.T) {
	rows := []*models.Post{windowPost("a", 100), windowPost("b", 200)}

	assert.Len(t, SelectWindow(rows, models.PostQuery{}), 2)
}

func TestSelectWindowMissingSortValueSortsFirst(t *testing.T) {
	missing := &models.Post{ID: "missing", Properties: models.PropertyMap{}}
	rows := []*models.Post{windowPost("a", 100), missing}
	q := models.PostQuery{Sorting: &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortAsc}}

	assert.Equal(t, []string{"missing", "a"}, ids(SelectWindow(rows, q)))
}

func TestSelectWindowTextSort(t *testing.T) {
	textPost := func(id, v string) *models.Post {
		return &models.Post{ID: id, Properties: models.PropertyMap{
			2: {ID: 2, Type: models.PropertyTypeText, Value: v},
		}}
	}
	rows := []*models.Post{textPost("b", "banana"), textPost("a", "apple")}
	q := models.PostQuery{Sorting: &models.SortSpec{PropertyID: 2, Order: models.SortAsc}}

	assert.Equal(t, []string{"a", "b"}, ids(SelectWindow(rows, q)))
}

func TestSelectWindowStableForEqualKeys(t *testing.T) {
	rows := []*models.Post{windowPost("first", 100), windowPost("second", 100), windowPost("third", 100)}
	q := models.PostQuery{Sorting: &models.SortSpec{PropertyID: models.PropPostedAt, Order: models.SortDesc}}

	assert.Equal(t, []string{"first", "second", "third"}, ids(SelectWindow(rows, q)))
}
