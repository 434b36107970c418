/*
Copyright 2024 Blnk Finance Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tcdirect/direct/config"
)

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCache(client), mr
}

func TestSetAndGet(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	err := c.Set(ctx, "lookup:technology:java", []int64{3, 7}, 10*time.Minute)
	require.NoError(t, err)

	var ids []int64
	err = c.Get(ctx, "lookup:technology:java", &ids)
	assert.NoError(t, err)
	assert.Equal(t, []int64{3, 7}, ids)
}

func TestGetNonExistentKey(t *testing.T) {
	c, _ := newTestCache(t)

	var ids []int64
	err := c.Get(context.Background(), "nonExistentKey", &ids)
	assert.True(t, errors.Is(err, ErrCacheMiss))
	assert.Nil(t, ids)
}

func TestSetEmptySlice(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "lookup:draft_project_status:*", []int64{}, time.Minute))

	ids := []int64{99}
	err := c.Get(ctx, "lookup:draft_project_status:*", &ids)
	assert.NoError(t, err)
	assert.Empty(t, ids)
}

func TestDelete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "testKey", "testValue", 10*time.Minute))
	require.NoError(t, c.Delete(ctx, "testKey"))

	var value string
	err := c.Get(ctx, "testKey", &value)
	assert.True(t, errors.Is(err, ErrCacheMiss))
}

func TestNewCache(t *testing.T) {
	mr := miniredis.RunT(t)
	config.MockConfig(&config.Configuration{Redis: config.RedisConfig{Dns: mr.Addr()}})

	c, err := NewCache()
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", 42, time.Minute))
	assert.True(t, mr.Exists("k"))
}
