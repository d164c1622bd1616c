package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client

// InitRedis initializes the Redis client
func InitRedis() error {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	RedisClient = redis.NewClient(opt)

	// Test the connection
	ctx := context.Background()
	_, err = RedisClient.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return nil
}

// AcquireVerificationLock takes a short-lived lock for one gateway order id
// so concurrent verification callbacks for the same payment are serialized.
// Returns false when another callback already holds the lock.
func AcquireVerificationLock(ctx context.Context, gatewayOrderID string) (bool, error) {
	if RedisClient == nil {
		return true, nil
	}
	key := fmt.Sprintf("payment:verify:%s", gatewayOrderID)
	return RedisClient.SetNX(ctx, key, "1", 30*time.Second).Result()
}

// ReleaseVerificationLock drops the lock taken by AcquireVerificationLock
func ReleaseVerificationLock(ctx context.Context, gatewayOrderID string) {
	if RedisClient == nil {
		return
	}
	key := fmt.Sprintf("payment:verify:%s", gatewayOrderID)
	RedisClient.Del(ctx, key)
}

// CacheBookingStatus stores a booking's status for fast status polling
func CacheBookingStatus(ctx context.Context, bookingPublicID, status string) error {
	if RedisClient == nil {
		return nil
	}
	key := fmt.Sprintf("booking:status:%s", bookingPublicID)
	return RedisClient.Set(ctx, key, status, time.Hour).Err()
}

// GetCachedBookingStatus retrieves a cached booking status; empty string on miss
func GetCachedBookingStatus(ctx context.Context, bookingPublicID string) (string, error) {
	if RedisClient == nil {
		return "", nil
	}
	key := fmt.Sprintf("booking:status:%s", bookingPublicID)
	result, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return result, err
}
