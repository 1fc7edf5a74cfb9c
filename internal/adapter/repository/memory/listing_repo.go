// Package memory holds map-backed repositories used in tests and local
// development. They implement the same contracts, including query matching
// and ordering, as the MongoDB repositories.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
)

type ListingRepository struct {
	mutex    sync.RWMutex
	listings map[string]*domain.Listing
}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{listings: make(map[string]*domain.Listing)}
}

func (r *ListingRepository) Create(ctx context.Context, listing *domain.Listing) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if listing.ID == "" {
		listing.ID = uuid.NewString()
	}
	stored := *listing
	r.listings[listing.ID] = &stored
	return nil
}

func (r *ListingRepository) Update(ctx context.Context, listing *domain.Listing) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	current, ok := r.listings[listing.ID]
	if !ok {
		return domain.ErrListingNotFound
	}

	stored := *listing
	stored.OwnerID = current.OwnerID
	stored.CreatedAt = current.CreatedAt
	r.listings[listing.ID] = &stored
	return nil
}

func (r *ListingRepository) Delete(ctx context.Context, id string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, ok := r.listings[id]; !ok {
		return domain.ErrListingNotFound
	}
	delete(r.listings, id)
	return nil
}

func (r *ListingRepository) FindByID(ctx context.Context, id string) (*domain.Listing, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	listing, ok := r.listings[id]
	if !ok {
		return nil, domain.ErrListingNotFound
	}
	copied := *listing
	return &copied, nil
}

func (r *ListingRepository) FindByQuery(ctx context.Context, query domain.Query) ([]*domain.Listing, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	matched := make([]*domain.Listing, 0)
	for _, listing := range r.listings {
		if query.Matches(listing) {
			copied := *listing
			matched = append(matched, &copied)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		return query.Less(matched[i], matched[j])
	})
	return matched, nil
}
