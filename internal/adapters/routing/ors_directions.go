package routing

import (
	"bytes"
	"context"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
)

const (
	metersPerMile    = 1609.34
	milesPerFuelStop = 500
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Features []struct {
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// fetchDirections requests a driving route through the given coordinate
// path from the OpenRouteService directions endpoint and converts the totals
// to miles and hours.
func (o *ORSRouteProvider) fetchDirections(
	ctx context.Context,
	path []domain.Coordinates,
) (ports.RouteResult, error) {
	if len(path) < 2 {
		return ports.RouteResult{}, errors.New("directions need at least two coordinates")
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	locations := make([][]float64, 0, len(path))
	for _, c := range path {
		locations = append(locations, c.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates:  locations,
		Instructions: false,
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("marshal directions request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		body := bytes.NewReader(payload)
		return o.newRequest(ctx, http.MethodPost, endpoint, body)
	})
	if err != nil {
		return ports.RouteResult{}, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return ports.RouteResult{}, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Features) == 0 {
		return ports.RouteResult{}, errors.New("directions response contains no routes")
	}

	feature := dr.Features[0]
	miles := feature.Properties.Summary.Distance / metersPerMile
	hours := feature.Properties.Summary.Duration / 3600

	geometry := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) != 2 {
			continue
		}
		geometry = append(geometry, domain.Coordinates{Lon: pair[0], Lat: pair[1]})
	}

	averageSpeed := 0.0
	if hours > 0 {
		averageSpeed = round2(miles / hours)
	}

	return ports.RouteResult{
		DistanceMiles: round2(miles),
		DurationHours: round2(hours),
		FuelStops:     int(math.Ceil(miles / milesPerFuelStop)),
		Geometry:      geometry,
		AverageSpeed:  averageSpeed,
	}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
