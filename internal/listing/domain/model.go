package domain

import (
	"time"

	userdomain "github.com/tharun69CS/EcoFinds/internal/user/domain"
)

type Category string

const (
	CategoryFurniture   Category = "Furniture"
	CategoryElectronics Category = "Electronics"
	CategoryClothing    Category = "Clothing"
	CategoryBooks       Category = "Books"
	CategoryHomeDecor   Category = "Home Decor"
	CategoryOther       Category = "Other"
)

// Categories returns the fixed set of allowed listing categories.
func Categories() []Category {
	return []Category{
		CategoryFurniture,
		CategoryElectronics,
		CategoryClothing,
		CategoryBooks,
		CategoryHomeDecor,
		CategoryOther,
	}
}

func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// DefaultImageRef is stored when a listing is created without an image.
const DefaultImageRef = "default-product.jpg"

const (
	MaxTitleLength       = 100
	MaxDescriptionLength = 1000
)

type Listing struct {
	ID          string
	OwnerID     userdomain.ID // immutable after creation
	Title       string
	Description string
	Category    Category
	Price       float64
	ImageURL    string
	CreatedAt   time.Time // server-assigned, immutable
	UpdatedAt   time.Time
}
