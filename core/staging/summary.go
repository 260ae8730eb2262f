package staging

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yardtools/yardcap/core/model"
)

// Summarize reduces a train's recurrence to its TrainSummary. The average
// is defined as zero for a train with no cars, and the curve minimum takes
// the first occurrence on ties.
func Summarize(dep model.DepartureRecord, rec Recurrence) model.TrainSummary {
	avg := 0.0
	if rec.TotalCar != 0 {
		avg = rec.TotalCarHours / float64(rec.TotalCar)
	}
	minIdx := floats.MinIdx(rec.Curve[:])
	return model.TrainSummary{
		TrainID:       dep.TrainID,
		Departure:     dep.Departure,
		Blocks:        dep.Blocks,
		TotalCar:      rec.TotalCar,
		TotalCarHours: rec.TotalCarHours,
		AvgCarHours:   avg,
		MinCarHours:   rec.Curve[minIdx],
		MinCarHour:    minIdx,
	}
}

// BuildDetail assembles the 24-row detail table handed to the report
// writer.
func BuildDetail(dep model.DepartureRecord, arrivals model.HourlyArrivalSeries, rec Recurrence) model.TrainDetail {
	det := model.TrainDetail{
		TrainID:       dep.TrainID,
		Departure:     dep.Departure,
		Blocks:        dep.Blocks,
		TotalCar:      rec.TotalCar,
		TotalCarHours: rec.TotalCarHours,
	}
	for h := 0; h < model.HoursPerDay; h++ {
		det.Rows[h] = model.HourDetail{
			Hour:     h,
			Arriving: arrivals[h],
			Dwell:    rec.Dwell[h],
			Weighted: rec.Weighted[h],
			CarHours: rec.Curve[h],
		}
	}
	return det
}
