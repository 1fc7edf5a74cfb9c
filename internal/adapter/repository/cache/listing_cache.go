package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tharun69CS/EcoFinds/internal/listing/domain"
)

const listingTTL = 1 * time.Hour

// ListingCache keeps JSON-marshalled listings in Redis keyed by id. A miss
// is reported as (nil, nil) so callers fall through to the repository.
type ListingCache struct {
	client *redis.Client
}

func NewListingCache(ctx context.Context, addr string) (*ListingCache, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return &ListingCache{client: client}, nil
}

func (c *ListingCache) GetListing(ctx context.Context, id string) (*domain.Listing, error) {
	data, err := c.client.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var listing domain.Listing
	if err := json.Unmarshal(data, &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func (c *ListingCache) SetListing(ctx context.Context, listing *domain.Listing) error {
	data, err := json.Marshal(listing)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(listing.ID), data, listingTTL).Err()
}

func (c *ListingCache) DeleteListing(ctx context.Context, id string) error {
	return c.client.Del(ctx, key(id)).Err()
}

func (c *ListingCache) Close() error {
	return c.client.Close()
}

func key(id string) string {
	return "listing:" + id
}
