package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/emx/guzellikharitam-backend/config"
	"github.com/emx/guzellikharitam-backend/pkg/logger"
	"github.com/redis/go-redis/v9"
)

const (
	detailsKeyPrefix        = "venue:details:"
	detailsGenerationPrefix = "venue:details-gen:"
)

// Connect opens a client and verifies it with a ping.
func Connect(cfg *config.RedisConfig) (*redis.Client, error) {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return client, nil
}

// DetailsCache stores the serialized venue details aggregate per venue id. Each venue has a
// generation counter; payloads live under a generation-specific key, and Invalidate bumps the
// counter so a payload written for an older generation is never read again.
type DetailsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewDetailsCache(client *redis.Client, ttl time.Duration) *DetailsCache {
	return &DetailsCache{client: client, ttl: ttl}
}

func DetailsKey(venueID string, generation uint64) string {
	return fmt.Sprintf("%s%s:%d", detailsKeyPrefix, venueID, generation)
}

func GenerationKey(venueID string) string {
	return detailsGenerationPrefix + venueID
}

func (c *DetailsCache) generation(ctx context.Context, venueID string) (uint64, error) {
	gen, err := c.client.Get(ctx, GenerationKey(venueID)).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	return gen, err
}

// Get reports ok=false on a cache miss, along with the generation to hand back to Set.
func (c *DetailsCache) Get(ctx context.Context, venueID string) ([]byte, uint64, bool, error) {
	gen, err := c.generation(ctx, venueID)
	if err != nil {
		logger.Error("Failed to read venue details generation", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return nil, 0, false, err
	}

	val, err := c.client.Get(ctx, DetailsKey(venueID, gen)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, gen, false, nil
	}
	if err != nil {
		logger.Error("Failed to read venue details cache", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return nil, gen, false, err
	}
	return val, gen, true, nil
}

func (c *DetailsCache) Set(ctx context.Context, venueID string, generation uint64, payload []byte) error {
	if err := c.client.Set(ctx, DetailsKey(venueID, generation), payload, c.ttl).Err(); err != nil {
		logger.Error("Failed to write venue details cache", err, map[string]interface{}{
			"venue_id": venueID,
		})
		return err
	}
	return nil
}

// Invalidate starts a new generation and drops the payload of the one it replaces.
func (c *DetailsCache) Invalidate(ctx context.Context, venueID string) error {
	logger.Debug("Invalidating venue details cache", map[string]interface{}{
		"venue_id": venueID,
	})

	next, err := c.client.Incr(ctx, GenerationKey(venueID)).Uint64()
	if err != nil {
		return err
	}
	return c.client.Del(ctx, DetailsKey(venueID, next-1)).Err()
}

// Close closes the underlying client.
func (c *DetailsCache) Close() error {
	if c.client != nil {
		logger.Info("Closing Redis connection", nil)
		return c.client.Close()
	}
	return nil
}
