package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/domain"
	"eld-trip-service/internal/hos"
	"eld-trip-service/internal/ports"
	"eld-trip-service/internal/services"
	"encoding/json"
	"errors"
	"io"
	"log"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

type TripHandler struct {
	Repo     ports.TripRepository
	Provider ports.RouteProvider
}

// Calculate resolves the route for a trip request, generates the HOS-compliant
// daily schedules, persists the trip, and returns the full plan.
func (h *TripHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req dto.CalculateTripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if req.CurrentCycleUsed < 0 || req.CurrentCycleUsed > hos.CycleLimit8Day {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used must be between 0 and 70")
		return
	}

	depart := time.Now().UTC()
	if req.DepartAt != nil {
		depart = *req.DepartAt
	}

	svcReq := services.CalculateTripRequest{
		CurrentLocation:  req.CurrentLocation,
		PickupLocation:   req.PickupLocation,
		DropoffLocation:  req.DropoffLocation,
		CurrentCycleUsed: req.CurrentCycleUsed,
		DepartAt:         depart,
	}

	result, err := services.CalculateTrip(r.Context(), svcReq, h.Repo, h.Provider)
	if err != nil {
		if errors.Is(err, services.ErrInvalidTripRequest) {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("calculate trip failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	geometry := make([][]float64, 0, len(result.Route.Geometry))
	for _, c := range result.Route.Geometry {
		geometry = append(geometry, c.CoordsToList())
	}

	res := dto.CalculateTripResponse{
		Trip: toTripResponse(result.Trip),
		Route: dto.RouteResponse{
			DistanceMiles: result.Route.DistanceMiles,
			DurationHours: result.Route.DurationHours,
			FuelStops:     result.Route.FuelStops,
			AverageSpeed:  result.Route.AverageSpeed,
			Geometry:      geometry,
		},
		DailySchedules: toScheduleResponses(result.Schedules),
	}

	writeJSON(w, r, http.StatusCreated, res)
}

// List returns all stored trips, most recent first.
func (h *TripHandler) List(w http.ResponseWriter, r *http.Request) {
	trips, err := h.Repo.ListTrips(r.Context())
	if err != nil {
		log.Printf("list trips failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListTripsResponse{Trips: make([]dto.TripResponse, 0, len(trips))}
	for _, t := range trips {
		res.Trips = append(res.Trips, toTripResponse(t))
	}

	writeJSON(w, r, http.StatusOK, res)
}

// Get returns a single trip by ID.
func (h *TripHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripID")

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, toTripResponse(trip))
}

// Logs returns the stored daily schedules for a trip with a compliance summary.
func (h *TripHandler) Logs(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "tripID")

	trip, err := h.Repo.GetTrip(r.Context(), id)
	if errors.Is(err, ports.ErrTripNotFound) {
		writeError(w, r, http.StatusNotFound, "trip not found")
		return
	}
	if err != nil {
		log.Printf("get trip failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	schedules, err := h.Repo.ListDailySchedules(r.Context(), id)
	if err != nil {
		log.Printf("list daily schedules failed: id=%s err=%v", id, err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.TripLogsResponse{
		TripID:         trip.ID,
		DailySchedules: toScheduleResponses(schedules),
		Compliance:     summarizeCompliance(trip, schedules),
	}

	writeJSON(w, r, http.StatusOK, res)
}

func summarizeCompliance(trip *domain.Trip, schedules []domain.DailySchedule) dto.ComplianceSummary {
	summary := dto.ComplianceSummary{
		IsCompliant:   true,
		CycleUsedEnd:  trip.CurrentCycleUsed,
		ViolationDays: make([]int, 0),
		Violations:    make([]string, 0),
	}

	for _, day := range schedules {
		if day.IsRestartDay {
			summary.CycleUsedEnd = 0
			continue
		}
		summary.CycleUsedEnd += day.TotalOnDutyHours
		if !day.HOSCompliant {
			summary.IsCompliant = false
			summary.ViolationDays = append(summary.ViolationDays, day.DayNumber)
			summary.Violations = append(summary.Violations, day.Violations...)
		}
	}

	summary.CycleUsedEnd = math.Round(summary.CycleUsedEnd*100) / 100
	return summary
}

func toTripResponse(t *domain.Trip) dto.TripResponse {
	return dto.TripResponse{
		TripID:            t.ID,
		CurrentLocation:   t.CurrentLocation,
		PickupLocation:    t.PickupLocation,
		DropoffLocation:   t.DropoffLocation,
		CurrentCycleUsed:  t.CurrentCycleUsed,
		TotalDistance:     t.TotalDistance,
		EstimatedDuration: t.EstimatedDuration,
		TotalDays:         t.TotalDays,
		CreatedAt:         t.CreatedAt,
	}
}

func toScheduleResponses(schedules []domain.DailySchedule) []dto.DailyScheduleResponse {
	out := make([]dto.DailyScheduleResponse, 0, len(schedules))
	for _, day := range schedules {
		activities := make([]dto.ActivityResponse, 0, len(day.Activities))
		for _, a := range day.Activities {
			activities = append(activities, dto.ActivityResponse{
				StartTime:     a.StartTime,
				EndTime:       a.EndTime,
				Status:        string(a.Status),
				Description:   a.Description,
				Location:      a.Location,
				DurationHours: a.DurationHours,
			})
		}

		out = append(out, dto.DailyScheduleResponse{
			DayNumber:         day.DayNumber,
			Date:              day.Date.Format("2006-01-02"),
			TotalDrivingHours: day.TotalDrivingHours,
			TotalOnDutyHours:  day.TotalOnDutyHours,
			TotalOffDutyHours: day.TotalOffDutyHours,
			BreaksNeeded:      day.BreaksNeeded,
			EstimatedDistance: day.EstimatedDistance,
			Activities:        activities,
			HOSCompliant:      day.HOSCompliant,
			IsRestartDay:      day.IsRestartDay,
		})
	}
	return out
}
