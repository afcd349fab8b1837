package middleware

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/benx421/payment-gateway/processor/internal/models"
)

// CacheIdempotencyStore keeps replayable responses in process memory until
// they expire. Responses are lost on restart.
type CacheIdempotencyStore struct {
	cache *cache.Cache
}

var _ IdempotencyRepository = (*CacheIdempotencyStore)(nil)

// NewCacheIdempotencyStore creates a store whose entries live for ttl.
func NewCacheIdempotencyStore(ttl time.Duration) *CacheIdempotencyStore {
	return &CacheIdempotencyStore{cache: cache.New(ttl, ttl/2)}
}

func cacheKey(key, requestPath string) string {
	return requestPath + " " + key
}

// Get returns the stored response, or nil when there is none.
func (s *CacheIdempotencyStore) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := s.cache.Get(cacheKey(key, requestPath))
	if !ok {
		return nil, nil
	}
	idemKey := *v.(*models.IdempotencyKey)
	return &idemKey, nil
}

func (s *CacheIdempotencyStore) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stored := *idemKey
	s.cache.SetDefault(cacheKey(idemKey.Key, idemKey.RequestPath), &stored)
	return nil
}
