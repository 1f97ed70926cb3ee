package cache

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T, ttl time.Duration) (*RedisRouteCache, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	return NewRedisRouteCache(rdb, ttl), mr
}

func TestRedisRouteCacheRoundTrip(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)
	ctx := context.Background()

	want := ports.RouteResult{
		DistanceMiles: 790.25,
		DurationHours: 15.81,
		FuelStops:     2,
		Geometry: []domain.Coordinates{
			{Lon: -74.0060, Lat: 40.7128},
			{Lon: -87.6298, Lat: 41.8781},
		},
		AverageSpeed: 50,
	}

	key := "New York, NY|Chicago, IL"
	if err := c.Put(ctx, key, want); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected cache hit, got miss")
	}
	if !reflect.DeepEqual(*got, want) {
		t.Errorf("got %+v, want %+v", *got, want)
	}
}

func TestRedisRouteCacheMiss(t *testing.T) {
	c, _ := newTestCache(t, time.Hour)

	got, err := c.Get(context.Background(), "unknown|route")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Errorf("expected miss, got %+v", *got)
	}
}

func TestRedisRouteCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	key := "Dallas, TX|Phoenix, AZ"
	if err := c.Put(ctx, key, ports.RouteResult{DistanceMiles: 887}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	got, err := c.Get(ctx, key)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected entry to expire")
	}
}
