package lookup

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcdirect/direct/internal/cache"
)

func newCachedSource(t *testing.T, src Source) (*CachedSource, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewCachedSource(src, cache.NewRedisCache(client), time.Minute), mr
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, "lookup:technology:.net,java", cacheKey(CategoryTechnology, []string{"java", ".net"}))
	assert.Equal(t, "lookup:draft_project_status:*", cacheKey(CategoryDraftProjectStatus, nil))
}

func TestCachedSourceHitsSourceOnce(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	src.On("GetIDs", ctx, CategoryTechnology, []string{"java"}).Return([]int64{3}, nil).Once()

	cs, mr := newCachedSource(t, src)

	for i := 0; i < 3; i++ {
		ids, err := cs.GetIDs(ctx, CategoryTechnology, []string{"java"})
		require.NoError(t, err)
		assert.Equal(t, []int64{3}, ids)
	}

	src.AssertNumberOfCalls(t, "GetIDs", 1)
	assert.True(t, mr.Exists("lookup:technology:java"))
}

func TestCachedSourceCachesEmptyResults(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	src.On("GetIDs", ctx, CategoryDraftProjectStatus, []string(nil)).Return(nil, nil).Once()

	cs, _ := newCachedSource(t, src)

	ids, err := cs.GetIDs(ctx, CategoryDraftProjectStatus, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = cs.GetIDs(ctx, CategoryDraftProjectStatus, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
	src.AssertNumberOfCalls(t, "GetIDs", 1)
}

func TestCachedSourceFallsBackWhenRedisIsDown(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	src.On("GetIDs", ctx, CategoryPlatform, []string{"aws"}).Return([]int64{9}, nil)

	cs, mr := newCachedSource(t, src)
	mr.Close()

	ids, err := cs.GetIDs(ctx, CategoryPlatform, []string{"aws"})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
}

func TestCachedSourceDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	src := new(mockSource)
	src.On("GetIDs", ctx, CategoryPlatform, []string{"aws"}).Return(nil, assert.AnError).Once()
	src.On("GetIDs", ctx, CategoryPlatform, []string{"aws"}).Return([]int64{9}, nil).Once()

	cs, _ := newCachedSource(t, src)

	_, err := cs.GetIDs(ctx, CategoryPlatform, []string{"aws"})
	assert.ErrorIs(t, err, assert.AnError)

	ids, err := cs.GetIDs(ctx, CategoryPlatform, []string{"aws"})
	require.NoError(t, err)
	assert.Equal(t, []int64{9}, ids)
}
