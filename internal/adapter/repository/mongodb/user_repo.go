package mongodb

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
	"github.com/tharun69CS/EcoFinds/internal/user/domain"
)

type UserRepository struct {
	collection *mongo.Collection
	logger     *logger.Logger
}

func NewUserRepository(ctx context.Context, db *mongo.Database, log *logger.Logger) *UserRepository {
	collection := db.Collection("users")

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
	}
	if _, err := collection.Indexes().CreateMany(ctx, indexes); err != nil {
		log.Warn("UserRepository: failed to ensure indexes", "error", err.Error())
	}

	return &UserRepository{collection: collection, logger: log}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	doc := &userDocument{
		ID:           primitive.NewObjectID(),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		CreatedAt:    user.CreatedAt,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		var writeException mongo.WriteException
		if errors.As(err, &writeException) {
			for _, writeError := range writeException.WriteErrors {
				if writeError.Code == 11000 {
					if strings.Contains(writeError.Message, "email_1") {
						return domain.ErrDuplicateEmail
					}
					if strings.Contains(writeError.Message, "username_1") {
						return domain.ErrDuplicateUsername
					}
				}
			}
		}
		r.logger.Error("UserRepository.Create: insert failed", "email", user.Email, "error", err.Error())
		return fmt.Errorf("failed to create user: %w", err)
	}
	user.ID = domain.ID(doc.ID.Hex())
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id domain.ID) (*domain.User, error) {
	objID, err := primitive.ObjectIDFromHex(id.String())
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	var doc userDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("UserRepository.FindByID: lookup failed", "user_id", id.String(), "error", err.Error())
		return nil, err
	}
	return toDomainUser(&doc), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var doc userDocument
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		r.logger.Error("UserRepository.FindByEmail: lookup failed", "email", email, "error", err.Error())
		return nil, err
	}
	return toDomainUser(&doc), nil
}
