package lookup

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/tcdirect/direct/internal/cache"
)

// CachedSource fronts a Source with the shared cache. Lookup tables change rarely,
// so entries are kept for ttl and never invalidated explicitly.
type CachedSource struct {
	source Source
	cache  cache.Cache
	ttl    time.Duration
}

func NewCachedSource(source Source, c cache.Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{source: source, cache: c, ttl: ttl}
}

func cacheKey(category Category, names []string) string {
	if names == nil {
		return "lookup:" + string(category) + ":*"
	}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)
	return "lookup:" + string(category) + ":" + strings.Join(sorted, ",")
}

// GetIDs serves from cache when possible. Cache failures are logged and the source is used directly.
func (c *CachedSource) GetIDs(ctx context.Context, category Category, names []string) ([]int64, error) {
	key := cacheKey(category, names)

	var ids []int64
	err := c.cache.Get(ctx, key, &ids)
	if err == nil {
		return ids, nil
	}
	if !errors.Is(err, cache.ErrCacheMiss) {
		logrus.WithError(err).WithField("key", key).Warn("lookup cache read failed")
	}

	ids, err = c.source.GetIDs(ctx, category, names)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}

	if err := c.cache.Set(ctx, key, ids, c.ttl); err != nil {
		logrus.WithError(err).WithField("key", key).Warn("lookup cache write failed")
	}
	return ids, nil
}
