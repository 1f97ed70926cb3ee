package api

import (
	"context"
	"eld-trip-service/internal/adapters/routing"
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/ports"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

type memoryTripRepository struct {
	trips     map[string]*domain.Trip
	order     []string
	schedules map[string][]domain.DailySchedule
}

func newMemoryTripRepository() *memoryTripRepository {
	return &memoryTripRepository{
		trips:     make(map[string]*domain.Trip),
		schedules: make(map[string][]domain.DailySchedule),
	}
}

func (m *memoryTripRepository) SaveTrip(ctx context.Context, trip *domain.Trip, schedules []domain.DailySchedule) error {
	m.trips[trip.ID] = trip
	m.order = append(m.order, trip.ID)
	m.schedules[trip.ID] = schedules
	return nil
}

func (m *memoryTripRepository) GetTrip(ctx context.Context, id string) (*domain.Trip, error) {
	trip, ok := m.trips[id]
	if !ok {
		return nil, ports.ErrTripNotFound
	}
	return trip, nil
}

func (m *memoryTripRepository) ListTrips(ctx context.Context) ([]*domain.Trip, error) {
	trips := make([]*domain.Trip, 0, len(m.order))
	for _, id := range m.order {
		trips = append(trips, m.trips[id])
	}
	return trips, nil
}

func (m *memoryTripRepository) ListDailySchedules(ctx context.Context, tripID string) ([]domain.DailySchedule, error) {
	return m.schedules[tripID], nil
}

func newTestRouter() (http.Handler, *memoryTripRepository) {
	repo := newMemoryTripRepository()
	provider := routing.NewMockRouteProvider(ports.RouteResult{
		DistanceMiles: 1000,
		DurationHours: 20,
		FuelStops:     2,
		AverageSpeed:  50,
	})
	return NewRouter(repo, provider), repo
}

func TestCalculateTripEndpoint(t *testing.T) {
	router, repo := newTestRouter()

	body := `{
		"current_location": "Chicago, IL",
		"pickup_location": "Indianapolis, IN",
		"dropoff_location": "Atlanta, GA",
		"current_cycle_used": 0
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/trips/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body.String())
	}

	var res dto.CalculateTripResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.Trip.TripID == "" {
		t.Fatal("expected a trip_id in the response")
	}
	if res.Trip.TotalDays != 2 {
		t.Fatalf("total_days = %d, want 2", res.Trip.TotalDays)
	}
	if len(res.DailySchedules) != 2 {
		t.Fatalf("got %d daily schedules, want 2", len(res.DailySchedules))
	}
	if res.DailySchedules[0].DayNumber != 1 || res.DailySchedules[1].DayNumber != 2 {
		t.Fatalf("day numbers = %d, %d, want 1, 2",
			res.DailySchedules[0].DayNumber, res.DailySchedules[1].DayNumber)
	}
	if res.Route.DistanceMiles != 1000 || res.Route.DurationHours != 20 {
		t.Fatalf("route = (%g mi, %g h), want (1000, 20)",
			res.Route.DistanceMiles, res.Route.DurationHours)
	}

	if _, ok := repo.trips[res.Trip.TripID]; !ok {
		t.Fatal("trip was not persisted")
	}
}

func TestCalculateTripEndpointRejectsBadInput(t *testing.T) {
	router, _ := newTestRouter()

	cases := []struct {
		name string
		body string
	}{
		{"invalid json", `{`},
		{"unknown field", `{"origin": "Chicago, IL"}`},
		{"missing locations", `{"current_cycle_used": 0}`},
		{"cycle out of range", `{
			"current_location": "A", "pickup_location": "B",
			"dropoff_location": "C", "current_cycle_used": 71
		}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/trips/calculate", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGetTripEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	body := `{
		"current_location": "Chicago, IL",
		"pickup_location": "Indianapolis, IN",
		"dropoff_location": "Atlanta, GA",
		"current_cycle_used": 5
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/trips/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("calculate status = %d, want 201", rec.Code)
	}

	var created dto.CalculateTripResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/trips/"+created.Trip.TripID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var got dto.TripResponse
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.TripID != created.Trip.TripID {
		t.Fatalf("trip_id = %s, want %s", got.TripID, created.Trip.TripID)
	}
	if got.CurrentCycleUsed != 5 {
		t.Fatalf("current_cycle_used = %g, want 5", got.CurrentCycleUsed)
	}
}

func TestGetTripEndpointNotFound(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/trips/no-such-trip", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestTripLogsEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	body := `{
		"current_location": "Chicago, IL",
		"pickup_location": "Indianapolis, IN",
		"dropoff_location": "Atlanta, GA",
		"current_cycle_used": 0
	}`
	req := httptest.NewRequest(http.MethodPost, "/api/trips/calculate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("calculate status = %d, want 201", rec.Code)
	}

	var created dto.CalculateTripResponse
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/trips/"+created.Trip.TripID+"/logs", nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var logs dto.TripLogsResponse
	if err := json.NewDecoder(rec.Body).Decode(&logs); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(logs.DailySchedules) != 2 {
		t.Fatalf("got %d daily schedules, want 2", len(logs.DailySchedules))
	}
	if !logs.Compliance.IsCompliant {
		t.Fatalf("expected compliant trip, violations: %v", logs.Compliance.Violations)
	}
	// 11h + 9h driving days, one break each, plus pickup and dropoff service time.
	if logs.Compliance.CycleUsedEnd != 25 {
		t.Fatalf("cycle_used_end = %g, want 25", logs.Compliance.CycleUsedEnd)
	}
}

func TestListTripsEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	for i := 0; i < 2; i++ {
		body := `{
			"current_location": "Chicago, IL",
			"pickup_location": "Indianapolis, IN",
			"dropoff_location": "Atlanta, GA",
			"current_cycle_used": 0
		}`
		req := httptest.NewRequest(http.MethodPost, "/api/trips/calculate", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("calculate status = %d, want 201", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/trips", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var res dto.ListTripsResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(res.Trips) != 2 {
		t.Fatalf("got %d trips, want 2", len(res.Trips))
	}
}

func TestHealthEndpoint(t *testing.T) {
	router, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := rec.Header().Get("X-Request-ID"); got == "" {
		t.Fatal("expected X-Request-ID header on the response")
	}
}
