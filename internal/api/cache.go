package api

import (
	"time"

	"github.com/google/uuid"
	cache "github.com/patrickmn/go-cache"

	"github.com/rpgo/rothtrad/internal/domain"
)

// resultKeySpace namespaces comparison fingerprints
var resultKeySpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("rothtrad/compare"))

// ComparisonCache memoizes comparison results by request fingerprint. The
// engine is deterministic, so a cached result is exactly what a fresh run
// would return.
type ComparisonCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

// NewComparisonCache creates a cache whose entries expire after ttl
func NewComparisonCache(ttl time.Duration) *ComparisonCache {
	return &ComparisonCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Fingerprint derives the cache key from a normalized (defaulted and
// re-encoded) request body.
func Fingerprint(normalized []byte) string {
	return uuid.NewSHA1(resultKeySpace, normalized).String()
}

// Get retrieves a cached comparison
func (cc *ComparisonCache) Get(key string) (*domain.ComparisonResult, bool) {
	if v, found := cc.cache.Get(key); found {
		if result, ok := v.(*domain.ComparisonResult); ok {
			return result, true
		}
	}
	return nil, false
}

// Set stores a comparison
func (cc *ComparisonCache) Set(key string, result *domain.ComparisonResult) {
	cc.cache.Set(key, result, cc.ttl)
}

// ItemCount returns the number of cached comparisons
func (cc *ComparisonCache) ItemCount() int {
	return cc.cache.ItemCount()
}

// Flush empties the cache
func (cc *ComparisonCache) Flush() {
	cc.cache.Flush()
}
