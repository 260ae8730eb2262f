package staging

import (
	"gonum.org/v1/gonum/floats"

	"github.com/yardtools/yardcap/core/model"
)

// Recurrence carries everything derived from one train's arrival series:
// the dwell weighting, the day totals, and the backward car-hours curve.
type Recurrence struct {
	Dwell         [model.HoursPerDay]int
	Weighted      [model.HoursPerDay]int
	Curve         model.CarHoursCurve
	TotalCar      int
	TotalCarHours float64
}

// ComputeCarHours derives the car-hours curve from an arrival series.
//
// dwell[h] = 24-h is the time a car arriving at hour h spends in the yard
// until end of day, so weighted[h] = arrivals[h]*dwell[h] and TotalCarHours
// is the day's aggregate dwell. The curve then walks backward from hour 23:
//
//	curve[23] = TotalCarHours - TotalCar + 24*arrivals[23]
//	curve[h]  = curve[h+1]   - TotalCar + 24*arrivals[h]
//
// Each step back consumes one hour of fleet-wide decay (TotalCar) while
// arrivals at that hour each contribute a full day of dwell. Values are
// real and unclamped; a negative slot is a genuine capacity surplus signal.
func ComputeCarHours(arrivals model.HourlyArrivalSeries) Recurrence {
	var rec Recurrence
	weighted := make([]float64, model.HoursPerDay)
	for h := 0; h < model.HoursPerDay; h++ {
		dwell := model.HoursPerDay - h
		rec.Dwell[h] = dwell
		rec.Weighted[h] = arrivals[h] * dwell
		weighted[h] = float64(rec.Weighted[h])
	}
	rec.TotalCar = arrivals.Total()
	rec.TotalCarHours = floats.Sum(weighted)

	decay := float64(rec.TotalCar)
	for h := model.HoursPerDay - 1; h >= 0; h-- {
		gain := model.HoursPerDay * float64(arrivals[h])
		if h == model.HoursPerDay-1 {
			rec.Curve[h] = rec.TotalCarHours - decay + gain
		} else {
			rec.Curve[h] = rec.Curve[h+1] - decay + gain
		}
	}
	return rec
}
