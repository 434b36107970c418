package redis_db

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected *redis.Options
		wantTLS  bool
	}{
		{
			name:     "simple docker style",
			url:      "redis:6379",
			expected: &redis.Options{Addr: "redis:6379"},
		},
		{
			name: "redis url with password",
			url:  "redis://:password123@localhost:6379",
			expected: &redis.Options{
				Addr:     "localhost:6379",
				Password: "password123",
			},
		},
		{
			name: "password without colon",
			url:  "redis://s3cret@cache:6379",
			expected: &redis.Options{
				Addr:     "cache:6379",
				Password: "s3cret",
			},
		},
		{
			name:     "azure redis url",
			url:      "myinstance.redis.cache.windows.net:6380",
			expected: &redis.Options{Addr: "myinstance.redis.cache.windows.net:6380"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRedisURL(tt.url, false)
			require.NoError(t, err)
			assert.Equal(t, tt.expected.Addr, got.Addr)
			assert.Equal(t, tt.expected.Password, got.Password)
		})
	}
}

func TestNewRedisClient(t *testing.T) {
	t.Run("empty addresses", func(t *testing.T) {
		_, err := NewRedisClient([]string{}, false)
		assert.Error(t, err)
	})

	t.Run("single address", func(t *testing.T) {
		mr := miniredis.RunT(t)
		client, err := NewRedisClient([]string{mr.Addr()}, false)
		require.NoError(t, err)
		require.NotNil(t, client.Client())

		ctx := context.Background()
		require.NoError(t, client.Client().Set(ctx, "lookup:platform:aws", "11", time.Minute).Err())
		got, err := mr.Get("lookup:platform:aws")
		require.NoError(t, err)
		assert.Equal(t, "11", got)
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		addr := mr.Addr()
		mr.Close()

		_, err := NewRedisClient([]string{addr}, false)
		assert.Error(t, err)
	})
}

func TestPing(t *testing.T) {
	db, mock := redismock.NewClientMock()
	r := &Redis{client: db}

	mock.ExpectPing().SetVal("PONG")
	assert.NoError(t, r.Ping(context.Background(), time.Second))

	mock.ExpectPing().SetErr(errors.New("LOADING Redis is loading the dataset in memory"))
	assert.Error(t, r.Ping(context.Background(), time.Second))

	assert.NoError(t, mock.ExpectationsWereMet())
}
