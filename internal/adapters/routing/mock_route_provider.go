package routing

import (
	"context"
	"eld-trip-service/internal/ports"
)

// MockRouteProvider returns a fixed result for every route request. Used in
// tests and for offline runs without an ORS API key.
type MockRouteProvider struct {
	Result ports.RouteResult
	Err    error
}

func NewMockRouteProvider(result ports.RouteResult) *MockRouteProvider {
	return &MockRouteProvider{Result: result}
}

func (p *MockRouteProvider) CalculateRoute(
	ctx context.Context,
	origin string,
	destination string,
	via []string,
) (ports.RouteResult, error) {
	if p.Err != nil {
		return ports.RouteResult{}, p.Err
	}
	return p.Result, nil
}
