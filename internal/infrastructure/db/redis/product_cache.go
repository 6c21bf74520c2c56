package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/marketplace/marketplace-api/internal/core/domain"
)

const (
	defaultCacheTTL   = 5 * time.Minute
	keyGeneration     = "products:gen"
	keyProductPrefix  = "products:"
	suffixProductList = ":list"
	infixProductItem  = ":item:"
)

// ProductCache caches the public catalog reads.
// Key format: products:<gen>:list and products:<gen>:item:<id>. The
// generation counter lives at products:gen and never expires; superseded
// entries age out through their TTL.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProductCache wraps client. A non-positive ttl falls back to defaultCacheTTL.
func NewProductCache(client *redis.Client, ttl time.Duration) *ProductCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &ProductCache{client: client, ttl: ttl}
}

// Generation returns the current cache generation; 0 before the first write.
func (c *ProductCache) Generation(ctx context.Context) (int64, error) {
	gen, err := c.client.Get(ctx, keyGeneration).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

func (c *ProductCache) GetList(ctx context.Context, gen int64) ([]*domain.Product, bool, error) {
	var products []*domain.Product
	ok, err := c.get(ctx, listKey(gen), &products)
	if err != nil || !ok {
		return nil, false, err
	}
	return products, true, nil
}

func (c *ProductCache) SetList(ctx context.Context, gen int64, products []*domain.Product) error {
	return c.set(ctx, listKey(gen), products)
}

func (c *ProductCache) GetProduct(ctx context.Context, gen int64, id string) (*domain.Product, bool, error) {
	var p domain.Product
	ok, err := c.get(ctx, itemKey(gen, id), &p)
	if err != nil || !ok {
		return nil, false, err
	}
	return &p, true, nil
}

func (c *ProductCache) SetProduct(ctx context.Context, gen int64, p *domain.Product) error {
	return c.set(ctx, itemKey(gen, p.ID), p)
}

// Invalidate advances the generation, orphaning every list and item entry.
func (c *ProductCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, keyGeneration).Err(); err != nil {
		return fmt.Errorf("cache invalidate: %w", err)
	}
	return nil
}

func listKey(gen int64) string {
	return keyProductPrefix + strconv.FormatInt(gen, 10) + suffixProductList
}

func itemKey(gen int64, id string) string {
	return keyProductPrefix + strconv.FormatInt(gen, 10) + infixProductItem + id
}

func (c *ProductCache) get(ctx context.Context, key string, dst any) (bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("cache decode %s: %w", key, err)
	}
	return true, nil
}

func (c *ProductCache) set(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("cache encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
