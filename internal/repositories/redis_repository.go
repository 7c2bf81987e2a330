package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisRepository keeps revoked access tokens until they would have expired.
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return r.rdb.Set(ctx, "blacklist:"+jti, "true", ttl).Err()
}

func (r *RedisRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, "blacklist:"+jti).Result()
	return exists == 1, err
}
