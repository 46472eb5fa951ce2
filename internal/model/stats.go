package model

// FleetStats is the aggregate view of the robots table consumed by the overlay.
type FleetStats struct {
	Total          int64   `json:"total"`
	Idle           int64   `json:"idle"`
	Moving         int64   `json:"moving"`
	Charging       int64   `json:"charging"`
	Error          int64   `json:"error"`
	AverageBattery float64 `json:"average_battery"`
}
