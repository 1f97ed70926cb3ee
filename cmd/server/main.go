package main

import (
	"context"
	"database/sql"
	"eld-trip-service/internal/adapters/cache"
	"eld-trip-service/internal/adapters/repositories"
	"eld-trip-service/internal/adapters/routing"
	"eld-trip-service/internal/api"
	"eld-trip-service/internal/config"
	"eld-trip-service/internal/platform/db"
	"eld-trip-service/internal/ports"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite or Postgres, Redis, ORS) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	port := config.Get("PORT", "8080")

	conn, repo, geocodeCache, err := openStorage()
	if err != nil {
		log.Fatal(err)
	}
	defer conn.Close()

	routeCache := openRouteCache()

	provider, err := buildRouteProvider(geocodeCache, routeCache)
	if err != nil {
		log.Fatal(err)
	}

	router := api.NewRouter(repo, provider)

	// Timeouts are tuned for cold-cache trip calculation (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

// openStorage picks Postgres when DATABASE_URL is set, SQLite otherwise, and
// initializes the schema on startup for local runs.
func openStorage() (*sql.DB, ports.TripRepository, routing.GeocodeCache, error) {
	if databaseURL := os.Getenv("DATABASE_URL"); strings.TrimSpace(databaseURL) != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repositories.InitSchemaPostgres(conn); err != nil {
			conn.Close()
			return nil, nil, nil, fmt.Errorf("init postgres schema: %w", err)
		}
		return conn, repositories.NewPostgresTripRepository(conn), cache.NewSQLGeocodeCache(conn), nil
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	conn, err := db.OpenSQLite(dbPath)
	if err != nil {
		return nil, nil, nil, err
	}
	if err := repositories.InitSchema(conn); err != nil {
		conn.Close()
		return nil, nil, nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return conn, repositories.NewSqliteTripRepository(conn), cache.NewSqliteGeocodeCache(conn), nil
}

// openRouteCache returns a Redis-backed route cache when REDIS_ADDR is set.
// The cache is optional: on connection failure the server runs without it.
func openRouteCache() routing.RouteCache {
	addr := os.Getenv("REDIS_ADDR")
	if strings.TrimSpace(addr) == "" {
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Printf("redis unavailable, running without route cache: addr=%s err=%v", addr, err)
		return nil
	}

	return cache.NewRedisRouteCache(rdb, 24*time.Hour)
}

func buildRouteProvider(geocodeCache routing.GeocodeCache, routeCache routing.RouteCache) (ports.RouteProvider, error) {
	if config.Get("ROUTE_PROVIDER", "ors") == "mock" {
		// Offline mode for local development without an ORS account.
		return routing.NewMockRouteProvider(ports.RouteResult{
			DistanceMiles: 500,
			DurationHours: 10,
			FuelStops:     1,
			AverageSpeed:  50,
		}), nil
	}

	orsKey := os.Getenv("ORS_API_KEY")
	if strings.TrimSpace(orsKey) == "" {
		return nil, fmt.Errorf("ORS_API_KEY is required (or set ROUTE_PROVIDER=mock)")
	}

	return routing.NewORSRouteProvider(orsKey, geocodeCache, routeCache)
}
