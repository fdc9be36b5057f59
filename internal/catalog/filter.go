package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the items whose title or category contains query,
// ignoring case. An empty query returns every item in original order. The
// result is always a fresh slice.
func Filter(items []Item, query string) []Item {
	if query == "" {
		return slices.Clone(items)
	}

	fold := cases.Fold()
	q := fold.String(query)

	out := make([]Item, 0, len(items))
	for _, it := range items {
		if strings.Contains(fold.String(it.Title), q) || strings.Contains(fold.String(it.Category), q) {
			out = append(out, it)
		}
	}
	return out
}

// Search runs Filter over the whole catalog.
func (c *Catalog) Search(query string) []Item {
	return Filter(c.items, query)
}
