package domain

import "strings"

type SortField string

const (
	SortCreatedAt SortField = "created_at"
	SortPrice     SortField = "price"
	SortTitle     SortField = "title"
)

type Sort struct {
	Field      SortField
	Descending bool
}

// DefaultSort orders newest first.
func DefaultSort() Sort {
	return Sort{Field: SortCreatedAt, Descending: true}
}

// Query is a validated listing query. Zero values mean "no filter".
type Query struct {
	Search   string
	Category Category // empty means any category
	Sort     Sort
}

// ParseQuery validates the raw query parameters and reports every invalid
// one. The sort parameter names a field, optionally prefixed with "-" for
// descending order.
func ParseQuery(search, category, sort string) (Query, error) {
	verr := &ValidationError{}
	q := Query{
		Search: strings.TrimSpace(search),
		Sort:   DefaultSort(),
	}

	if category != "" {
		c := Category(category)
		if !c.Valid() {
			verr.add("category", "must be one of: "+joinCategories())
		} else {
			q.Category = c
		}
	}

	if sort != "" {
		descending := strings.HasPrefix(sort, "-")
		name := strings.TrimPrefix(sort, "-")
		// The web frontend spells the creation-time field in camelCase.
		if name == "createdAt" {
			name = string(SortCreatedAt)
		}
		field := SortField(name)
		switch field {
		case SortCreatedAt, SortPrice, SortTitle:
			q.Sort = Sort{Field: field, Descending: descending}
		default:
			verr.add("sort", "must be one of: created_at, price, title, optionally prefixed with '-'")
		}
	}

	if err := verr.orNil(); err != nil {
		return Query{}, err
	}
	return q, nil
}

// Matches reports whether the listing satisfies the query filters. Both
// filters compose with logical AND; search is a case-insensitive substring
// match over title, description and category.
func (q Query) Matches(l *Listing) bool {
	if q.Category != "" && l.Category != q.Category {
		return false
	}
	if q.Search != "" {
		needle := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(l.Title), needle) &&
			!strings.Contains(strings.ToLower(l.Description), needle) &&
			!strings.Contains(strings.ToLower(string(l.Category)), needle) {
			return false
		}
	}
	return true
}

// Less implements the query ordering: the requested field first, then
// creation time descending, then id, so results are deterministic.
func (q Query) Less(a, b *Listing) bool {
	switch q.Sort.Field {
	case SortPrice:
		if a.Price != b.Price {
			if q.Sort.Descending {
				return a.Price > b.Price
			}
			return a.Price < b.Price
		}
	case SortTitle:
		if a.Title != b.Title {
			if q.Sort.Descending {
				return a.Title > b.Title
			}
			return a.Title < b.Title
		}
	default:
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if q.Sort.Descending {
				return a.CreatedAt.After(b.CreatedAt)
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID < b.ID
}
