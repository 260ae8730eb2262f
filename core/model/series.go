package model

// HourlyArrivalSeries counts cars becoming available for a train's blocks
// per hour of the operating day. Built once per train, never mutated after
// construction.
type HourlyArrivalSeries [HoursPerDay]int

// Total returns the number of cars across the day.
func (s HourlyArrivalSeries) Total() int {
	total := 0
	for _, n := range s {
		total += n
	}
	return total
}

// CarHoursCurve is the dwell-weighted occupancy projection derived from an
// arrival series: curve[h] is the aggregate car-hours remaining from hour h
// to end of day. Values may legitimately go negative; a negative slot
// signals capacity surplus at that hour and is preserved as-is.
type CarHoursCurve [HoursPerDay]float64
