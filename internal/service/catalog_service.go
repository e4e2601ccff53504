package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"shop-admin-service/internal/client"
	"shop-admin-service/internal/entity"
)

const productCacheTTL = 1 * time.Minute

// CatalogService serves the read-only product projection. Reads go through a
// short-lived Redis cache; the latest successful fetch from the store API
// always wins.
type CatalogService struct {
	store *client.StoreClient
	rdb   *redis.Client
}

// NewCatalogService creates a new instance of CatalogService. rdb may be nil,
// in which case every read hits the store API.
func NewCatalogService(store *client.StoreClient, rdb *redis.Client) *CatalogService {
	return &CatalogService{store: store, rdb: rdb}
}

// GetProducts returns the products in scope. shopID 0 means platform-wide.
func (c *CatalogService) GetProducts(ctx context.Context, shopID int) ([]entity.Product, error) {
	key := fmt.Sprintf("products:shop:%d", shopID)

	if cached := c.getCache(ctx, key); cached != "" {
		var products []entity.Product
		if err := json.Unmarshal([]byte(cached), &products); err == nil {
			return products, nil
		}
		logger.Warn().Msgf("Dropping unreadable cache entry %s", key)
	}

	products, err := c.store.ListProducts(ctx, shopID)
	if err != nil {
		logger.Error().Err(err).Msgf("Error listing products for shop %d", shopID)
		return nil, err
	}

	c.setCache(ctx, key, products)
	return products, nil
}

// GetProduct returns one product by id.
func (c *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	if cached := c.getCache(ctx, key); cached != "" {
		var product entity.Product
		if err := json.Unmarshal([]byte(cached), &product); err == nil {
			return &product, nil
		}
		logger.Warn().Msgf("Dropping unreadable cache entry %s", key)
	}

	product, err := c.store.GetProduct(ctx, id)
	if err != nil {
		logger.Error().Err(err).Msgf("Error getting product by ID %d", id)
		return nil, err
	}

	c.setCache(ctx, key, product)
	return product, nil
}

func (c *CatalogService) getCache(ctx context.Context, key string) string {
	if c.rdb == nil {
		return ""
	}
	val, err := c.rdb.Get(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		logger.Error().Err(err).Msgf("Error reading %s from cache", key)
	}
	return val
}

func (c *CatalogService) setCache(ctx context.Context, key string, v interface{}) {
	if c.rdb == nil {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, data, productCacheTTL).Err(); err != nil {
		logger.Error().Err(err).Msgf("Error setting %s in cache", key)
	}
}
