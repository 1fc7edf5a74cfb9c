package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

type ListingRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewListingRepository(ctx context.Context, db *mongo.Database, log *logger.Logger) *ListingRepository {
	collection := db.Collection("listings")

	// Index creation is idempotent.
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}}},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("ListingRepository: failed to ensure indexes", "error", err.Error())
	}

	return &ListingRepository{collection: collection, logger: log}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	doc, err := toListingDocument(listing)
	if err != nil {
		return err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		r.logger.Error("ListingRepository.Create: insert failed", "error", err.Error())
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	listing.ID = doc.ID.Hex()
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	objID, err := primitive.ObjectIDFromHex(listing.ID)
	if err != nil {
		return domain.ErrListingNotFound
	}

	// Owner and creation time are never part of the update document.
	update := bson.M{"$set": bson.M{
		"title":       listing.Title,
		"description": listing.Description,
		"category":    string(listing.Category),
		"price":       listing.Price,
		"image_url":   listing.ImageURL,
		"updated_at":  listing.UpdatedAt,
	}}

	result, err := r.collection.UpdateByID(ctx, objID, update)
	if err != nil {
		r.logger.Error("ListingRepository.Update: update failed", "listing_id", listing.ID, "error", err.Error())
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if result.MatchedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrListingNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objID})
	if err != nil {
		r.logger.Error("ListingRepository.Delete: delete failed", "listing_id", id, "error", err.Error())
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	if result.DeletedCount == 0 {
		return domain.ErrListingNotFound
	}
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrListingNotFound
	}

	var doc listingDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrListingNotFound
		}
		r.logger.Error("ListingRepository.FindByID: lookup failed", "listing_id", id, "error", err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	return toDomainListing(&doc), nil
}

func (r *ListingRepository) FindByQuery(ctx context.Context, query domain.Query) ([]*domain.Listing, error) {
	filter := bson.M{}
	if query.Search != "" {
		pattern := regexp.QuoteMeta(query.Search)
		filter["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
			{"category": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}
	if query.Category != "" {
		filter["category"] = string(query.Category)
	}

	findOptions := options.Find().SetSort(sortDocument(query.Sort))
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		r.logger.Error("ListingRepository.FindByQuery: query failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}
	defer cursor.Close(ctx)

	var docs []*listingDocument
	if err := cursor.All(ctx, &docs); err != nil {
		r.logger.Error("ListingRepository.FindByQuery: cursor decode failed", "error", err.Error())
		return nil, fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	listings := make([]*domain.Listing, 0, len(docs))
	for _, doc := range docs {
		listings = append(listings, toDomainListing(doc))
	}
	return listings, nil
}

// sortDocument builds the Mongo sort with the deterministic tie-break on
// creation time descending, then id.
func sortDocument(s domain.Sort) bson.D {
	direction := 1
	if s.Descending {
		direction = -1
	}

	field := map[domain.SortField]string{
		domain.SortCreatedAt: "created_at",
		domain.SortPrice:     "price",
		domain.SortTitle:     "title",
	}[s.Field]

	sort := bson.D{{Key: field, Value: direction}}
	if field != "created_at" {
		sort = append(sort, bson.E{Key: "created_at", Value: -1})
	}
	return append(sort, bson.E{Key: "_id", Value: 1})
}
