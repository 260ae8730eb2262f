package ingest

import (
	"fmt"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/yardtools/yardcap/core/logger"
	"github.com/yardtools/yardcap/core/model"
)

// departureRow mirrors one line of the departure table CSV.
type departureRow struct {
	Train     string `csv:"Train"`
	Departure string `csv:"Scheduled Departure"`
	Blocks    string `csv:"Blocks"`
}

// inboundRow mirrors one line of the optional inbound schedule CSV.
type inboundRow struct {
	Train   string `csv:"Train"`
	Arrival string `csv:"Arrival"`
}

// ReadDepartures loads the departure table. Rows with a blank train ID are
// dropped silently; rows with an unparsable departure time are dropped
// with a warning. Order is preserved, it drives the report order.
func ReadDepartures(path string, log logger.Logger) ([]model.DepartureRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open departure table: %w", err)
	}
	defer f.Close()

	var rows []departureRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse departure table %s: %w", path, err)
	}

	records := make([]model.DepartureRecord, 0, len(rows))
	for _, r := range rows {
		if r.Train == "" {
			continue
		}
		dep, err := model.ParseClock(r.Departure)
		if err != nil {
			log.Warnf("departure table: train %s has unusable departure time %q, dropped", r.Train, r.Departure)
			continue
		}
		records = append(records, model.DepartureRecord{
			TrainID:   r.Train,
			Departure: dep,
			Blocks:    model.ParseBlockList(r.Blocks),
		})
	}
	return records, nil
}

// ReadInbound loads the inbound schedule consumed by the yard wheel chart.
// Same dropping rules as ReadDepartures.
func ReadInbound(path string, log logger.Logger) ([]model.InboundRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open inbound schedule: %w", err)
	}
	defer f.Close()

	var rows []inboundRow
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("parse inbound schedule %s: %w", path, err)
	}

	records := make([]model.InboundRecord, 0, len(rows))
	for _, r := range rows {
		if r.Train == "" {
			continue
		}
		arr, err := model.ParseClock(r.Arrival)
		if err != nil {
			log.Warnf("inbound schedule: train %s has unusable arrival time %q, dropped", r.Train, r.Arrival)
			continue
		}
		records = append(records, model.InboundRecord{TrainID: r.Train, Arrival: arr})
	}
	return records, nil
}
