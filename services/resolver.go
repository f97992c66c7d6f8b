package services

import (
	"context"
	"sync"
	"time"

	"github.com/adtm0/smartbite/utils"
)

// FoodProfile is a food's nutrient content normalized to 100 grams. It is
// resolved per request and never persisted; diary entries capture a scaled
// snapshot instead.
type FoodProfile struct {
	FdcID     string          `json:"fdc_id"`
	Name      string          `json:"name"`
	Nutrients utils.Nutrients `json:"nutrients"` // per 100 g
}

// FoodProfileResolver looks up a per-100g profile by food identifier.
// Implementations return ErrFoodNotFound or ErrUpstreamUnavailable; they
// never fall back to a default profile.
type FoodProfileResolver interface {
	Resolve(ctx context.Context, fdcID string) (*FoodProfile, error)
}

type cachedProfile struct {
	profile   FoodProfile
	expiresAt time.Time
}

// CachingResolver memoizes successful lookups for a TTL. Failures are never
// cached.
type CachingResolver struct {
	inner FoodProfileResolver
	ttl   time.Duration

	mu      sync.RWMutex
	entries map[string]cachedProfile
}

func NewCachingResolver(inner FoodProfileResolver, ttl time.Duration) *CachingResolver {
	return &CachingResolver{
		inner:   inner,
		ttl:     ttl,
		entries: make(map[string]cachedProfile),
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, fdcID string) (*FoodProfile, error) {
	c.mu.RLock()
	item, ok := c.entries[fdcID]
	c.mu.RUnlock()
	if ok && time.Now().Before(item.expiresAt) {
		profile := item.profile
		return &profile, nil
	}

	profile, err := c.inner.Resolve(ctx, fdcID)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.entries[fdcID] = cachedProfile{profile: *profile, expiresAt: time.Now().Add(c.ttl)}
	c.mu.Unlock()

	return profile, nil
}
