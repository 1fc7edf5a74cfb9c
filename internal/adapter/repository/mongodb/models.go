package mongodb

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
	userdomain "github.com/tharun69CS/EcoFinds/internal/user/domain"
)

type listingDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID     string             `bson:"owner_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Category    string             `bson:"category"`
	Price       float64            `bson:"price"`
	ImageURL    string             `bson:"image_url"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func toListingDocument(l *domain.Listing) (*listingDocument, error) {
	doc := &listingDocument{
		OwnerID:     l.OwnerID.String(),
		Title:       l.Title,
		Description: l.Description,
		Category:    string(l.Category),
		Price:       l.Price,
		ImageURL:    l.ImageURL,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
	if l.ID != "" {
		objID, err := primitive.ObjectIDFromHex(l.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid listing id %q: %w", l.ID, err)
		}
		doc.ID = objID
	}
	return doc, nil
}

func toDomainListing(d *listingDocument) *domain.Listing {
	return &domain.Listing{
		ID:          d.ID.Hex(),
		OwnerID:     userdomain.ID(d.OwnerID),
		Title:       d.Title,
		Description: d.Description,
		Category:    domain.Category(d.Category),
		Price:       d.Price,
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type userDocument struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password"`
	CreatedAt    time.Time          `bson:"created_at"`
}

func toDomainUser(d *userDocument) *userdomain.User {
	return &userdomain.User{
		ID:           userdomain.ID(d.ID.Hex()),
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		CreatedAt:    d.CreatedAt,
	}
}
