package handlers

import (
	"eld-trip-service/internal/api/dto"
	"eld-trip-service/internal/hos"
	"encoding/json"
	"io"
	"net/http"
)

// Limits returns the property-carrying HOS limit values. Read-only, no state.
func Limits(w http.ResponseWriter, r *http.Request) {
	res := dto.HOSLimitsResponse{
		PropertyCarryingLimits: dto.HOSLimits{
			DailyDrivingLimit:  hos.DailyDrivingLimit,
			DutyWindowLimit:    hos.DutyWindowLimit,
			CycleLimit7Day:     hos.CycleLimit7Day,
			CycleLimit8Day:     hos.CycleLimit8Day,
			MinBreakDuration:   hos.MinBreakDuration,
			BreakRequiredAfter: hos.BreakRequiredAfter,
			MinOffDuty:         hos.MinOffDuty,
			RestartHours:       hos.RestartHours,
		},
	}

	writeJSON(w, r, http.StatusOK, res)
}

// CheckCompliance evaluates raw cycle-usage figures against the 70-hour cycle
// limit without touching any stored trip.
func CheckCompliance(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckComplianceRequest

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

	if req.CurrentCycleUsed < 0 {
		writeError(w, r, http.StatusBadRequest, "current_cycle_used must not be negative")
		return
	}
	if req.AdditionalHours < 0 {
		writeError(w, r, http.StatusBadRequest, "additional_hours must not be negative")
		return
	}

	// needs_restart reflects the hours already accrued; the planned
	// additional hours only affect is_driving_allowed.
	res := dto.CheckComplianceResponse{
		CurrentCycleUsed:     req.CurrentCycleUsed,
		AdditionalHours:      req.AdditionalHours,
		TotalCycleUsed:       req.CurrentCycleUsed + req.AdditionalHours,
		IsDrivingAllowed:     hos.IsDrivingAllowed(req.CurrentCycleUsed, req.AdditionalHours),
		AvailableDrivingTime: hos.AvailableDrivingTime(req.CurrentCycleUsed),
		NeedsRestart:         hos.NeedsRestart(req.CurrentCycleUsed),
		CycleLimit:           hos.CycleLimit8Day,
	}

	writeJSON(w, r, http.StatusOK, res)
}
