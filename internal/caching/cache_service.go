package caching

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"techmart/internal/models"

	"github.com/redis/go-redis/v9"
)

type CacheService interface {
	// Materialized view caching
	GetCategoryView(ctx context.Context, slug string) (*models.CategoryView, error)
	SetCategoryView(ctx context.Context, view *models.CategoryView, ttl time.Duration) error
	DeleteCategoryView(ctx context.Context, slug string) error

	GetProductView(ctx context.Context, slug string) (*models.ProductView, error)
	SetProductView(ctx context.Context, view *models.ProductView, ttl time.Duration) error
	DeleteProductView(ctx context.Context, slug string) error

	// Writes anywhere in the hierarchy invalidate all materialized views.
	InvalidateViews(ctx context.Context) error

	// Generic string operations for OTP and refresh-token state
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
	GetString(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

type redisCacheService struct {
	client *redis.Client
}

func NewRedisCacheService(addr, password string, db int) CacheService {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		log.Printf("WARN: Redis ping failed on initialization: %v (address: %s)", err, addr)
	}

	return &redisCacheService{client: client}
}

// NewCacheServiceWithClient wraps an existing Redis client, letting callers
// share the connection with health checks.
func NewCacheServiceWithClient(client *redis.Client) CacheService {
	return &redisCacheService{client: client}
}

func categoryViewKey(slug string) string { return "techmart:view:category:" + slug }
func productViewKey(slug string) string  { return "techmart:view:product:" + slug }

func (r *redisCacheService) GetCategoryView(ctx context.Context, slug string) (*models.CategoryView, error) {
	data, err := r.client.Get(ctx, categoryViewKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil // cache miss
		}
		return nil, err
	}

	var view models.CategoryView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *redisCacheService) SetCategoryView(ctx context.Context, view *models.CategoryView, ttl time.Duration) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, categoryViewKey(view.Slug), data, ttl).Err()
}

func (r *redisCacheService) DeleteCategoryView(ctx context.Context, slug string) error {
	return r.client.Del(ctx, categoryViewKey(slug)).Err()
}

func (r *redisCacheService) GetProductView(ctx context.Context, slug string) (*models.ProductView, error) {
	data, err := r.client.Get(ctx, productViewKey(slug)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var view models.ProductView
	if err := json.Unmarshal(data, &view); err != nil {
		return nil, err
	}
	return &view, nil
}

func (r *redisCacheService) SetProductView(ctx context.Context, view *models.ProductView, ttl time.Duration) error {
	data, err := json.Marshal(view)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, productViewKey(view.Slug), data, ttl).Err()
}

func (r *redisCacheService) DeleteProductView(ctx context.Context, slug string) error {
	return r.client.Del(ctx, productViewKey(slug)).Err()
}

func (r *redisCacheService) InvalidateViews(ctx context.Context) error {
	iter := r.client.Scan(ctx, 0, "techmart:view:*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("scan view keys: %w", err)
	}
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, keys...).Err()
}

func (r *redisCacheService) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

func (r *redisCacheService) GetString(ctx context.Context, key string) (string, error) {
	value, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (r *redisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, key).Err()
}
