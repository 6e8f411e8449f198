package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"marketwallet/internal/logger"
	"marketwallet/internal/models"
)

// CatalogCacheRepository caches service catalog lookups in Redis. Service
// price and owner change rarely; a short TTL keeps opens cheap without
// making the catalog authoritative state stale for long.
type CatalogCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached entries
}

// NewCatalogCacheRepository creates a new repository instance with the given TTL.
func NewCatalogCacheRepository(client *redis.Client, expiration time.Duration) *CatalogCacheRepository {
	return &CatalogCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// GetService fetches a cached catalog entry for the service.
func (r *CatalogCacheRepository) GetService(ctx context.Context, serviceID uuid.UUID) (*models.ServiceInfo, error) {
	key := fmt.Sprintf("catalog_service:%s", serviceID)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"result", val,
			"error", err,
		)
		if err == redis.Nil {
			return nil, fmt.Errorf("service %s not found in cache", serviceID)
		}
		return nil, err
	}

	var info models.ServiceInfo
	if err := json.Unmarshal([]byte(val), &info); err != nil {
		logger.Log.Infow(
			"key", key,
			"value", val,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"result", info,
		"error", nil,
	)

	return &info, nil
}

// SetService caches a catalog entry with expiration.
func (r *CatalogCacheRepository) SetService(ctx context.Context, info models.ServiceInfo) error {
	key := fmt.Sprintf("catalog_service:%s", info.ServiceID)

	data, err := json.Marshal(info)
	if err != nil {
		return err
	}

	err = r.client.Set(ctx, key, data, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "ok",
		"error", err,
	)

	return err
}
