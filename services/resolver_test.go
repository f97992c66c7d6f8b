package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adtm0/smartbite/utils"
)

type fakeResolver struct {
	calls    int
	profiles map[string]*FoodProfile
	err      error
}

func (f *fakeResolver) Resolve(ctx context.Context, fdcID string) (*FoodProfile, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.profiles[fdcID]
	if !ok {
		return nil, ErrFoodNotFound
	}
	copied := *p
	return &copied, nil
}

func TestCachingResolver_HitSkipsInner(t *testing.T) {
	inner := &fakeResolver{profiles: map[string]*FoodProfile{
		"1": {FdcID: "1", Name: "Apple", Nutrients: utils.Nutrients{Calories: 52}},
	}}
	resolver := NewCachingResolver(inner, time.Minute)

	first, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	second, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, first, second)
}

func TestCachingResolver_ReturnsCopies(t *testing.T) {
	inner := &fakeResolver{profiles: map[string]*FoodProfile{
		"1": {FdcID: "1", Name: "Apple", Nutrients: utils.Nutrients{Calories: 52}},
	}}
	resolver := NewCachingResolver(inner, time.Minute)

	first, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	first.Nutrients.Calories = 9999

	second, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	assert.InDelta(t, 52, second.Nutrients.Calories, 1e-9)
}

func TestCachingResolver_ExpiryRefetches(t *testing.T) {
	inner := &fakeResolver{profiles: map[string]*FoodProfile{
		"1": {FdcID: "1", Name: "Apple"},
	}}
	resolver := NewCachingResolver(inner, time.Millisecond)

	_, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)

	_, err = resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachingResolver_ErrorsNotCached(t *testing.T) {
	inner := &fakeResolver{err: ErrUpstreamUnavailable}
	resolver := NewCachingResolver(inner, time.Minute)

	_, err := resolver.Resolve(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUpstreamUnavailable)

	// The failure is retried, not served from cache.
	inner.err = nil
	inner.profiles = map[string]*FoodProfile{"1": {FdcID: "1", Name: "Apple"}}

	profile, err := resolver.Resolve(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Apple", profile.Name)
	assert.Equal(t, 2, inner.calls)
}
