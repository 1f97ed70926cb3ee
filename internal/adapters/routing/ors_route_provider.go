package routing

import (
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/platform/obs"
	"eld-trip-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"
)

// GeocodeCache is a persistent address -> coordinates cache consulted before
// calling the external geocoder.
type GeocodeCache interface {
	GetMany(ctx context.Context, addresses []string) (map[string]domain.Coordinates, error)
	PutMany(ctx context.Context, coords map[string]domain.Coordinates) error
}

// RouteCache caches whole route results keyed by the normalized stop
// sequence. Get returns (nil, nil) on a miss.
type RouteCache interface {
	Get(ctx context.Context, key string) (*ports.RouteResult, error)
	Put(ctx context.Context, key string, result ports.RouteResult) error
}

// ORSRouteProvider implements RouteProvider using OpenRouteService.
//
// It coordinates:
//   - Address normalization
//   - Persistent geocode caching
//   - Route result caching
//   - External API calls with retry/backoff
//   - Great-circle fallback when the directions API is unavailable
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session      *http.Client
	apiKey       string
	baseURL      string
	profile      string
	geocodeCache GeocodeCache
	routeCache   RouteCache
}

func NewORSRouteProvider(
	apiKey string,
	geocodeCache GeocodeCache,
	routeCache RouteCache,
) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	provider := &ORSRouteProvider{
		session:      &http.Client{Timeout: 30 * time.Second},
		apiKey:       apiKey,
		baseURL:      "https://api.openrouteservice.org",
		profile:      "driving-car",
		geocodeCache: geocodeCache,
		routeCache:   routeCache,
	}

	return provider, nil
}

// normalize ensures consistent cache keys by collapsing whitespace.
func (o *ORSRouteProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CalculateRoute resolves coordinates for origin -> via... -> destination
// and returns route totals in miles and hours. When the directions API
// fails after retries, totals fall back to a great-circle estimate over the
// geocoded stops.
func (o *ORSRouteProvider) CalculateRoute(
	ctx context.Context,
	origin string,
	destination string,
	via []string,
) (_ ports.RouteResult, err error) {
	defer obs.Time(ctx, "ors.CalculateRoute")(&err)

	stops := make([]string, 0, 2+len(via))
	for _, s := range append(append([]string{origin}, via...), destination) {
		norm := o.normalize(s)
		if norm == "" {
			continue
		}
		stops = append(stops, norm)
	}
	if len(stops) < 2 {
		return ports.RouteResult{}, errors.New("calculate route: need at least origin and destination")
	}

	cacheKey := strings.Join(stops, "|")
	if o.routeCache != nil {
		cached, err := o.routeCache.Get(ctx, cacheKey)
		if err != nil {
			log.Printf("route cache read failed: %v", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	coords, err := o.resolveCoordinates(ctx, stops)
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("calculate route: resolve coordinates: %w", err)
	}

	path := make([]domain.Coordinates, 0, len(stops))
	for _, s := range stops {
		c, ok := coords[s]
		if !ok {
			return ports.RouteResult{}, fmt.Errorf("calculate route: missing coordinate for %q", s)
		}
		path = append(path, c)
	}

	result, err := o.fetchDirections(ctx, path)
	if err != nil {
		// The scheduler only needs totals, so a degraded estimate beats a
		// failed request.
		log.Printf("directions request failed, using great-circle estimate: %v", err)
		result = EstimateRoute(path)
	}

	if o.routeCache != nil {
		if err := o.routeCache.Put(ctx, cacheKey, result); err != nil {
			log.Printf("route cache write failed: %v", err)
		}
	}

	return result, nil
}

// resolveCoordinates retrieves coordinates for all stops, consulting the
// persistent geocode cache first and geocoding only the misses.
func (o *ORSRouteProvider) resolveCoordinates(
	ctx context.Context,
	stops []string,
) (map[string]domain.Coordinates, error) {
	hits := make(map[string]domain.Coordinates)
	if o.geocodeCache != nil {
		var err error
		hits, err = o.geocodeCache.GetMany(ctx, stops)
		if err != nil {
			return nil, fmt.Errorf("geocode cache read: %w", err)
		}
	}

	misses := make([]string, 0, len(stops))
	for _, s := range stops {
		if _, ok := hits[s]; !ok {
			misses = append(misses, s)
		}
	}

	if len(misses) == 0 {
		return hits, nil
	}

	fresh, err := o.geocodeMany(ctx, misses)
	if err != nil {
		return nil, fmt.Errorf("geocoding addresses: %w", err)
	}

	if o.geocodeCache != nil && len(fresh) > 0 {
		if err := o.geocodeCache.PutMany(ctx, fresh); err != nil {
			log.Printf("geocode cache write failed: %v", err)
		}
	}

	out := make(map[string]domain.Coordinates, len(hits)+len(fresh))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fresh {
		out[k] = v
	}

	return out, nil
}
