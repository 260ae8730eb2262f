package staging

import "github.com/yardtools/yardcap/core/model"

// AggregateArrivals builds the 24-slot arrival series for one train: every
// row with a usable hour other than the excluded pull hour adds its
// resolved car count to that hour's slot. Rows with unusable slots
// contribute nothing. The second return is the number of rows that
// contributed; zero means the train had no usable hour at all.
//
// The pull hour is excluded because its row records the yard emptying for
// departure, not new arrivals; counting it would double cars that are
// already leaving.
func AggregateArrivals(rows []model.YardPlanRow, targets BlockSet, excludeHour int) (model.HourlyArrivalSeries, int) {
	var series model.HourlyArrivalSeries
	counted := 0
	for _, row := range rows {
		hour, ok := row.Hour()
		if !ok {
			continue
		}
		if hour == excludeHour {
			continue
		}
		series[hour] += RowCars(row, targets)
		counted++
	}
	return series, counted
}
