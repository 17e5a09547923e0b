package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fieldservice_quotes/internal/config"
	"fieldservice_quotes/internal/domain/entities"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg/logger"

	"github.com/redis/go-redis/v9"
)

const keyNamespace = "quotes:catalog"

type cmdable interface {
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

// CatalogCache is a read-through Redis cache in front of an ICatalog.
//
// Only found records are cached, so a record created in the directory becomes
// visible immediately. Redis failures fall through to the wrapped catalog.
type CatalogCache struct {
	next  interfaces.ICatalog
	store cmdable
	ttl   time.Duration
	log   *logger.Logger
}

var _ interfaces.ICatalog = (*CatalogCache)(nil)

func NewCatalogCache(next interfaces.ICatalog, client *redis.Client, ttl time.Duration, log *logger.Logger) *CatalogCache {
	return newCatalogCache(next, client, ttl, log)
}

func newCatalogCache(next interfaces.ICatalog, store cmdable, ttl time.Duration, log *logger.Logger) *CatalogCache {
	if log == nil {
		log = logger.Nop()
	}
	return &CatalogCache{next: next, store: store, ttl: ttl, log: log}
}

// Connect opens the Redis client and verifies connectivity.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (c *CatalogCache) GetClient(ctx context.Context, id string) (entities.Client, error) {
	return readThrough(ctx, c, "client:"+id, func(v entities.Client) bool { return v.ID != "" },
		func() (entities.Client, error) { return c.next.GetClient(ctx, id) })
}

func (c *CatalogCache) GetPart(ctx context.Context, id string) (entities.Part, error) {
	return readThrough(ctx, c, "part:"+id, func(v entities.Part) bool { return v.ID != "" },
		func() (entities.Part, error) { return c.next.GetPart(ctx, id) })
}

func (c *CatalogCache) GetServiceType(ctx context.Context, id string) (entities.ServiceType, error) {
	return readThrough(ctx, c, "service_type:"+id, func(v entities.ServiceType) bool { return v.ID != "" },
		func() (entities.ServiceType, error) { return c.next.GetServiceType(ctx, id) })
}

func (c *CatalogCache) GetServiceOrder(ctx context.Context, id string) (entities.ServiceOrder, error) {
	return readThrough(ctx, c, "service_order:"+id, func(v entities.ServiceOrder) bool { return v.ID != "" },
		func() (entities.ServiceOrder, error) { return c.next.GetServiceOrder(ctx, id) })
}

// ListServiceOrdersByClient is not cached: orders are opened all the time and
// a stale list would hide a valid originating order.
func (c *CatalogCache) ListServiceOrdersByClient(ctx context.Context, clientID string) ([]entities.ServiceOrder, error) {
	return c.next.ListServiceOrdersByClient(ctx, clientID)
}

func readThrough[T any](ctx context.Context, c *CatalogCache, key string, found func(T) bool, load func() (T, error)) (T, error) {
	key = keyNamespace + ":" + key
	var zero T

	raw, err := c.store.Get(ctx, key).Result()
	switch {
	case err == nil:
		var v T
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v, nil
		}
		c.log.Warn(c.log.WithField(ctx, "key", key), "[catalog][cache] dropping undecodable entry", err)
	case !errors.Is(err, redis.Nil):
		c.log.Warn(c.log.WithField(ctx, "key", key), "[catalog][cache] redis get failed", err)
	}

	v, err := load()
	if err != nil {
		return zero, err
	}
	if !found(v) {
		return v, nil
	}
	body, err := json.Marshal(v)
	if err != nil {
		return v, nil
	}
	if err := c.store.Set(ctx, key, string(body), c.ttl).Err(); err != nil {
		c.log.Warn(c.log.WithField(ctx, "key", key), "[catalog][cache] redis set failed", err)
	}
	return v, nil
}
