package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"service-area-api/internal/domain"
	"service-area-api/internal/platform/obs"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "service-areas:proximity:"

// RedisProximityCache stores ranked proximity results as JSON with a fixed TTL.
type RedisProximityCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisProximityCache(client *redis.Client, ttl time.Duration) *RedisProximityCache {
	return &RedisProximityCache{client: client, ttl: ttl}
}

// Connect to Redis and verify the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect redis %q: %w", addr, err)
	}

	return client, nil
}

type cachedArea struct {
	Name         string  `json:"name"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	Primary      bool    `json:"primary"`
	RadiusMeters int     `json:"radius_meters"`
	DistanceKm   float64 `json:"distance_km"`
	Covered      bool    `json:"covered"`
}

func (c *RedisProximityCache) Get(ctx context.Context, key string) (_ []domain.AreaDistance, _ bool, err error) {
	defer obs.Time(ctx, "proximity.cache.Get")(&err)

	if c.client == nil {
		return nil, false, errors.New("proximity cache: client is nil")
	}

	raw, err := c.client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get proximity cache: %w", err)
	}

	var items []cachedArea
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false, fmt.Errorf("get proximity cache: decode %q: %w", key, err)
	}

	out := make([]domain.AreaDistance, 0, len(items))
	for _, it := range items {
		out = append(out, domain.AreaDistance{
			Area: domain.ServiceArea{
				Name:         it.Name,
				Location:     domain.NewCoordinates(it.Lat, it.Lon),
				Primary:      it.Primary,
				RadiusMeters: it.RadiusMeters,
			},
			DistanceKm: it.DistanceKm,
			Covered:    it.Covered,
		})
	}

	return out, true, nil
}

func (c *RedisProximityCache) Put(ctx context.Context, key string, results []domain.AreaDistance) (err error) {
	defer obs.Time(ctx, "proximity.cache.Put")(&err)

	if c.client == nil {
		return errors.New("proximity cache: client is nil")
	}

	items := make([]cachedArea, 0, len(results))
	for _, r := range results {
		items = append(items, cachedArea{
			Name:         r.Area.Name,
			Lat:          r.Area.Location.Lat,
			Lon:          r.Area.Location.Lon,
			Primary:      r.Area.Primary,
			RadiusMeters: r.Area.RadiusMeters,
			DistanceKm:   r.DistanceKm,
			Covered:      r.Covered,
		})
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("put proximity cache: encode %q: %w", key, err)
	}

	if err := c.client.Set(ctx, keyPrefix+key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("put proximity cache: %w", err)
	}

	return nil
}
