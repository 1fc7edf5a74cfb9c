package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/tharun69CS/EcoFinds/internal/auth"
	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
	"github.com/tharun69CS/EcoFinds/internal/platform/logger"
)

// NATS subjects for listing lifecycle events.
const (
	SubjectListingCreated = "listing.created"
	SubjectListingUpdated = "listing.updated"
	SubjectListingDeleted = "listing.deleted"
)

// EventPublisher broadcasts listing lifecycle events. Publishing is best
// effort; failures are logged, never surfaced to the caller.
type EventPublisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
}

// ListingCache is a read-through cache for single-listing lookups. A nil
// cache disables caching.
type ListingCache interface {
	GetListing(ctx context.Context, id string) (*domain.Listing, error)
	SetListing(ctx context.Context, listing *domain.Listing) error
	DeleteListing(ctx context.Context, id string) error
}

// Mailer notifies a listing owner about lifecycle events.
type Mailer interface {
	SendListingCreated(toEmail, listingTitle string) error
}

type listingEvent struct {
	ID      string  `json:"id"`
	OwnerID string  `json:"owner_id"`
	Title   string  `json:"title"`
	Price   float64 `json:"price"`
}

type ListingUsecase struct {
	repo      domain.ListingRepository
	cache     ListingCache
	publisher EventPublisher
	mailer    Mailer
	logger    *logger.Logger
}

// NewListingUsecase wires the listing access service. cache, publisher and
// mailer may be nil.
func NewListingUsecase(repo domain.ListingRepository, cache ListingCache, publisher EventPublisher, mailer Mailer, log *logger.Logger) *ListingUsecase {
	return &ListingUsecase{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		mailer:    mailer,
		logger:    log,
	}
}

// Create validates the input against the listing schema and persists a new
// listing owned by the caller. Every failing field is reported at once.
func (uc *ListingUsecase) Create(ctx context.Context, identity *auth.Identity, input domain.CreateInput) (*domain.Listing, error) {
	uc.logger.Info("ListingUsecase.Create: creating new listing",
		"user_id", identity.UserID.String(), "title", input.Title)

	// The stored title is the trimmed form, the same one validation sees.
	input.Title = strings.TrimSpace(input.Title)
	if err := domain.ValidateCreate(input); err != nil {
		return nil, err
	}

	imageURL := input.ImageURL
	if imageURL == "" {
		imageURL = domain.DefaultImageRef
	}

	now := time.Now()
	listing := &domain.Listing{
		OwnerID:     identity.UserID,
		Title:       input.Title,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		ImageURL:    imageURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, listing); err != nil {
		uc.logger.Error("ListingUsecase.Create: failed to create listing",
			"user_id", identity.UserID.String(), "error", err.Error())
		return nil, err
	}

	uc.publish(ctx, SubjectListingCreated, listing)
	uc.notifyOwner(identity.Email, listing.Title)
	return listing, nil
}

// Get fetches a single listing. Reads are public, no identity required.
func (uc *ListingUsecase) Get(ctx context.Context, id string) (*domain.Listing, error) {
	if uc.cache != nil {
		cached, err := uc.cache.GetListing(ctx, id)
		if err != nil {
			uc.logger.Warn("ListingUsecase.Get: cache lookup failed", "listing_id", id, "error", err.Error())
		} else if cached != nil {
			return cached, nil
		}
	}

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.SetListing(ctx, listing); err != nil {
			uc.logger.Warn("ListingUsecase.Get: failed to cache listing", "listing_id", id, "error", err.Error())
		}
	}
	return listing, nil
}

// List runs the filtered/sorted/searched query. Public, no identity required.
func (uc *ListingUsecase) List(ctx context.Context, search, category, sort string) ([]*domain.Listing, error) {
	query, err := domain.ParseQuery(search, category, sort)
	if err != nil {
		return nil, err
	}
	listings, err := uc.repo.FindByQuery(ctx, query)
	if err != nil {
		uc.logger.Error("ListingUsecase.List: query failed", "error", err.Error())
		return nil, err
	}
	return listings, nil
}

// Update applies a partial update. Only the owner may update; unspecified
// fields keep their prior values, owner and creation time are immutable.
func (uc *ListingUsecase) Update(ctx context.Context, identity *auth.Identity, id string, input domain.UpdateInput) (*domain.Listing, error) {
	uc.logger.Info("ListingUsecase.Update: updating listing",
		"listing_id", id, "user_id", identity.UserID.String())

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if listing.OwnerID != identity.UserID {
		uc.logger.Warn("ListingUsecase.Update: forbidden",
			"listing_id", id, "owner_id", listing.OwnerID.String(), "user_id", identity.UserID.String())
		return nil, domain.ErrForbidden
	}

	if input.Title != nil {
		trimmed := strings.TrimSpace(*input.Title)
		input.Title = &trimmed
	}
	if err := domain.ValidateUpdate(input); err != nil {
		return nil, err
	}

	if input.Title != nil {
		listing.Title = *input.Title
	}
	if input.Description != nil {
		listing.Description = *input.Description
	}
	if input.Category != nil {
		listing.Category = *input.Category
	}
	if input.Price != nil {
		listing.Price = *input.Price
	}
	if input.ImageURL != nil {
		listing.ImageURL = *input.ImageURL
	}
	listing.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, listing); err != nil {
		uc.logger.Error("ListingUsecase.Update: failed to update listing", "listing_id", id, "error", err.Error())
		return nil, err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectListingUpdated, listing)
	return listing, nil
}

// Delete permanently removes a listing. Only the owner may delete; deleting
// an already-deleted id reports not found.
func (uc *ListingUsecase) Delete(ctx context.Context, identity *auth.Identity, id string) error {
	uc.logger.Info("ListingUsecase.Delete: deleting listing",
		"listing_id", id, "user_id", identity.UserID.String())

	listing, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if listing.OwnerID != identity.UserID {
		uc.logger.Warn("ListingUsecase.Delete: forbidden",
			"listing_id", id, "owner_id", listing.OwnerID.String(), "user_id", identity.UserID.String())
		return domain.ErrForbidden
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		uc.logger.Error("ListingUsecase.Delete: failed to delete listing", "listing_id", id, "error", err.Error())
		return err
	}

	uc.invalidate(ctx, id)
	uc.publish(ctx, SubjectListingDeleted, listing)
	return nil
}

func (uc *ListingUsecase) publish(ctx context.Context, subject string, listing *domain.Listing) {
	if uc.publisher == nil {
		return
	}
	event := listingEvent{
		ID:      listing.ID,
		OwnerID: listing.OwnerID.String(),
		Title:   listing.Title,
		Price:   listing.Price,
	}
	if err := uc.publisher.Publish(ctx, subject, event); err != nil {
		uc.logger.Warn("ListingUsecase: failed to publish event", "subject", subject, "listing_id", listing.ID, "error", err.Error())
	}
}

func (uc *ListingUsecase) notifyOwner(email, title string) {
	if uc.mailer == nil || email == "" {
		return
	}
	if err := uc.mailer.SendListingCreated(email, title); err != nil {
		uc.logger.Warn("ListingUsecase: failed to send listing created email", "email", email, "error", err.Error())
	}
}

func (uc *ListingUsecase) invalidate(ctx context.Context, id string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeleteListing(ctx, id); err != nil {
		uc.logger.Warn("ListingUsecase: failed to invalidate cache", "listing_id", id, "error", err.Error())
	}
}
