package redis

import (
	"context"
	"testing"
	"time"

	"github.com/emx/guzellikharitam-backend/config"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestDetailsKey(t *testing.T) {
	assert.Equal(t, "venue:details:abc:0", DetailsKey("abc", 0))
	assert.Equal(t, "venue:details:abc:7", DetailsKey("abc", 7))
	assert.Equal(t, "venue:details-gen:abc", GenerationKey("abc"))
	assert.NotEqual(t, DetailsKey("abc", 1), DetailsKey("abc", 2))
}

func unreachableClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
}

func TestDetailsCache_Unreachable(t *testing.T) {
	cache := NewDetailsCache(unreachableClient(), time.Minute)
	defer cache.Close()
	ctx := context.Background()

	_, _, ok, err := cache.Get(ctx, "venue-1")
	assert.Error(t, err)
	assert.False(t, ok)

	assert.Error(t, cache.Set(ctx, "venue-1", 0, []byte(`{}`)))
	assert.Error(t, cache.Invalidate(ctx, "venue-1"))
}

func TestConnect_Unreachable(t *testing.T) {
	client, err := Connect(&config.RedisConfig{Host: "127.0.0.1", Port: "1"})
	assert.Error(t, err)
	assert.Nil(t, client)
}
