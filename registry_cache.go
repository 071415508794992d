package cipherfeed

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// DefaultRegistryTTL is how long a looked-up key set stays cached.
// Keys rotate rarely, so a generous TTL saves a registry round trip per
// post read without letting a rotated key linger for long.
const DefaultRegistryTTL = 5 * time.Minute

// CachedRegistry wraps a KeyRegistry with a TTL cache over Lookup.
// Publish writes through and primes the cache, so a client always sees
// its own freshly published keys.
//
// Negative results are not cached: an unknown user is looked up again
// on every call, since the common cause is keys published moments ago.
type CachedRegistry struct {
	inner KeyRegistry
	cache *gocache.Cache
}

// NewCachedRegistry wraps inner with a lookup cache. A non-positive ttl
// falls back to DefaultRegistryTTL.
func NewCachedRegistry(inner KeyRegistry, ttl time.Duration) *CachedRegistry {
	if ttl <= 0 {
		ttl = DefaultRegistryTTL
	}
	return &CachedRegistry{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (r *CachedRegistry) Publish(ctx context.Context, userID string, keys PublicKeys) error {
	if err := r.inner.Publish(ctx, userID, keys); err != nil {
		return err
	}
	r.cache.SetDefault(userID, keys)
	return nil
}

func (r *CachedRegistry) Lookup(ctx context.Context, userID string) (PublicKeys, error) {
	if cached, ok := r.cache.Get(userID); ok {
		return cached.(PublicKeys), nil
	}
	keys, err := r.inner.Lookup(ctx, userID)
	if err != nil {
		return PublicKeys{}, err
	}
	r.cache.SetDefault(userID, keys)
	return keys, nil
}

// Invalidate drops a user's cached keys, forcing the next Lookup to hit
// the registry. Call it when told out of band that a user rotated keys.
func (r *CachedRegistry) Invalidate(userID string) {
	r.cache.Delete(userID)
}
