package dto

type HOSLimits struct {
	DailyDrivingLimit  float64 `json:"daily_driving_limit"`
	DutyWindowLimit    float64 `json:"duty_window_limit"`
	CycleLimit7Day     float64 `json:"cycle_limit_7_day"`
	CycleLimit8Day     float64 `json:"cycle_limit_8_day"`
	MinBreakDuration   float64 `json:"min_break_duration"`
	BreakRequiredAfter float64 `json:"break_required_after"`
	MinOffDuty         float64 `json:"min_off_duty"`
	RestartHours       float64 `json:"restart_hours"`
}

type HOSLimitsResponse struct {
	PropertyCarryingLimits HOSLimits `json:"property_carrying_limits"`
}

type CheckComplianceRequest struct {
	CurrentCycleUsed float64 `json:"current_cycle_used"`
	AdditionalHours  float64 `json:"additional_hours"`
}

type CheckComplianceResponse struct {
	CurrentCycleUsed     float64 `json:"current_cycle_used"`
	AdditionalHours      float64 `json:"additional_hours"`
	TotalCycleUsed       float64 `json:"total_cycle_used"`
	IsDrivingAllowed     bool    `json:"is_driving_allowed"`
	AvailableDrivingTime float64 `json:"available_driving_time"`
	NeedsRestart         bool    `json:"needs_restart"`
	CycleLimit           float64 `json:"cycle_limit"`
}
