package dto

// TimelineEntry is one reservation rendered into the report window. The
// interval is the clamped portion of the reservation; the status is the
// effective status at the instant the report was generated.
type TimelineEntry struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	Label         string `json:"label"`
	Status        string `json:"status"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Minutes       int    `json:"minutes"`
}

// BreakdownRow attributes utilized minutes to one user or one equipment
// item. PctOfUtilized is relative to the scope's utilized total and
// PctOfWindow to the whole report window, both rounded to two decimals.
type BreakdownRow struct {
	SubjectID       string  `json:"subject_id"`
	UtilizedMinutes int     `json:"utilized_minutes"`
	PctOfUtilized   float64 `json:"pct_of_utilized"`
	PctOfWindow     float64 `json:"pct_of_window"`
}

// UtilizationResponse summarises booked time against a trailing report
// window. Minutes are whole minutes after clamping each reservation to the
// window; percentages are rounded to two decimal places. The timeline keeps
// the repository's start-time ordering; breakdown rows are ordered by
// utilized minutes, busiest first.
type UtilizationResponse struct {
	SubjectID        string          `json:"subject_id"`
	WindowStart      string          `json:"window_start"`
	WindowEnd        string          `json:"window_end"`
	WindowMinutes    int             `json:"window_minutes"`
	UtilizedMinutes  int             `json:"utilized_minutes"`
	UtilizationPct   float64         `json:"utilization_pct"`
	ReservationCount int             `json:"reservation_count"`
	Timeline         []TimelineEntry `json:"timeline"`
	ByUser           []BreakdownRow  `json:"by_user"`
	ByEquipment      []BreakdownRow  `json:"by_equipment"`
}
