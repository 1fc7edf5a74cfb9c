package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CreateInput holds the caller-supplied fields for a new listing.
type CreateInput struct {
	Title       string
	Description string
	Category    Category
	Price       float64
	ImageURL    string
}

// UpdateInput holds a partial update. Nil pointers mean "keep the current
// value". Owner and creation time are not part of the input on purpose.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *Category
	Price       *float64
	ImageURL    *string
}

// ValidateCreate checks every schema constraint and reports all violations
// at once, not just the first.
func ValidateCreate(in CreateInput) error {
	verr := &ValidationError{}
	checkTitle(verr, in.Title)
	checkDescription(verr, in.Description)
	checkCategory(verr, in.Category)
	checkPrice(verr, in.Price)
	return verr.orNil()
}

// ValidateUpdate checks only the fields present in the input.
func ValidateUpdate(in UpdateInput) error {
	verr := &ValidationError{}
	if in.Title != nil {
		checkTitle(verr, *in.Title)
	}
	if in.Description != nil {
		checkDescription(verr, *in.Description)
	}
	if in.Category != nil {
		checkCategory(verr, *in.Category)
	}
	if in.Price != nil {
		checkPrice(verr, *in.Price)
	}
	return verr.orNil()
}

func checkTitle(verr *ValidationError, title string) {
	trimmed := strings.TrimSpace(title)
	switch {
	case trimmed == "":
		verr.add("title", "please provide a product title")
	case utf8.RuneCountInString(trimmed) > MaxTitleLength:
		verr.add("title", fmt.Sprintf("must be at most %d characters long", MaxTitleLength))
	}
}

func checkDescription(verr *ValidationError, description string) {
	switch {
	case strings.TrimSpace(description) == "":
		verr.add("description", "please provide a product description")
	case utf8.RuneCountInString(description) > MaxDescriptionLength:
		verr.add("description", fmt.Sprintf("must be at most %d characters long", MaxDescriptionLength))
	}
}

func checkCategory(verr *ValidationError, category Category) {
	if !category.Valid() {
		verr.add("category", "must be one of: "+joinCategories())
	}
}

func checkPrice(verr *ValidationError, price float64) {
	if price < 0 {
		verr.add("price", "must be greater than or equal to 0")
	}
}

func joinCategories() string {
	names := make([]string, 0, len(Categories()))
	for _, c := range Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
