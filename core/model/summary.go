package model

// TrainSummary is the terminal per-train output: totals plus the bottleneck
// staging hour. One per successfully processed train, never mutated.
type TrainSummary struct {
	TrainID       string
	Departure     ClockTime
	Blocks        []string
	TotalCar      int
	TotalCarHours float64
	AvgCarHours   float64
	MinCarHours   float64
	MinCarHour    int // hour 0..23 of the curve minimum, first occurrence
}

// HourDetail is one row of the per-train 24-row detail table.
type HourDetail struct {
	Hour     int
	Arriving int
	Dwell    int     // hours remaining until end of day
	Weighted int     // Arriving * Dwell
	CarHours float64 // curve value at this hour
}

// TrainDetail is the full detail table for one train, consumed by the
// report writer. TotalCar and TotalCarHours repeat per table, mirroring the
// running-total columns of the spreadsheet reports planners are used to.
type TrainDetail struct {
	TrainID       string
	Departure     ClockTime
	Blocks        []string
	Rows          [HoursPerDay]HourDetail
	TotalCar      int
	TotalCarHours float64
}
