package model

// BatchStats counts the outcome of one batch run over a departure table.
type BatchStats struct {
	Total     int `json:"total"`
	Processed int `json:"processed"`
	Skipped   int `json:"skipped"`
}
