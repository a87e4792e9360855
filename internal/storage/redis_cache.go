package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iipratte/stuber/internal/models"
)

// RedisCache is a read-through cache in front of another UserStore.
// Cache failures are never surfaced; the inner store is the source of truth.
type RedisCache struct {
	inner  UserStore
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(inner UserStore, addr, password string, ttl time.Duration) *RedisCache {
	c := redis.NewClient(&redis.Options{Addr: addr, Password: password})
	return &RedisCache{inner: inner, client: c, ttl: ttl}
}

const listKey = "users:all"

func userKey(id int64) string { return fmt.Sprintf("users:%d", id) }

func (r *RedisCache) ListUsers(ctx context.Context) ([]models.User, error) {
	if b, err := r.client.Get(ctx, listKey).Bytes(); err == nil {
		var users []models.User
		if json.Unmarshal(b, &users) == nil {
			return users, nil
		}
	}
	users, err := r.inner.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if b, err := json.Marshal(users); err == nil {
		_ = r.client.Set(ctx, listKey, b, r.ttl).Err()
	}
	return users, nil
}

func (r *RedisCache) GetUser(ctx context.Context, id int64) (models.User, error) {
	if b, err := r.client.Get(ctx, userKey(id)).Bytes(); err == nil {
		var u models.User
		if json.Unmarshal(b, &u) == nil {
			return u, nil
		}
	}
	u, err := r.inner.GetUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if b, err := json.Marshal(u); err == nil {
		_ = r.client.Set(ctx, userKey(id), b, r.ttl).Err()
	}
	return u, nil
}

func (r *RedisCache) UpdateUsername(ctx context.Context, id int64, username string) (models.User, error) {
	u, err := r.inner.UpdateUsername(ctx, id, username)
	if err != nil {
		return models.User{}, err
	}
	// Drop stale entries so the next read repopulates.
	_ = r.client.Del(ctx, userKey(id), listKey).Err()
	return u, nil
}

func (r *RedisCache) Close() error { return r.client.Close() }
