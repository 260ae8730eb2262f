package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yardtools/yardcap/core/logger"
	"github.com/yardtools/yardcap/core/model"
	"github.com/yardtools/yardcap/core/staging"
)

// Writer persists batch results under one output directory.
type Writer struct {
	dir string
	log logger.Logger
}

// NewWriter creates a Writer rooted at dir. The directory is created on
// the first write.
func NewWriter(dir string, log logger.Logger) *Writer {
	return &Writer{dir: dir, log: log}
}

// Write persists the summary table and one detail table per train.
func (w *Writer) Write(res staging.BatchResult) error {
	trainsDir := filepath.Join(w.dir, "trains")
	if err := os.MkdirAll(trainsDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(w.dir, "summary.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary: %w", err)
	}
	if err := WriteSummaryCSV(f, res.Summaries); err != nil {
		f.Close()
		return fmt.Errorf("write summary: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	w.log.Infof("wrote %s (%d trains)", path, len(res.Summaries))

	for _, d := range res.Details {
		name := SanitizeName(d.TrainID) + "_detail.csv"
		path := filepath.Join(trainsDir, name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create detail for %s: %w", d.TrainID, err)
		}
		if err := WriteDetailCSV(f, d); err != nil {
			f.Close()
			return fmt.Errorf("write detail for %s: %w", d.TrainID, err)
		}
		if err := f.Close(); err != nil {
			return err
		}
	}
	return nil
}

// WriteJSON persists the whole batch result as result.json.
func (w *Writer) WriteJSON(res staging.BatchResult) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(w.dir, "result.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create result.json: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode result.json: %w", err)
	}
	w.log.Infof("wrote %s", path)
	return nil
}

// WriteSummaryCSV writes the per-train summary table to w. Averages and
// minima are rounded to two decimals in the report only; computation keeps
// full precision.
func WriteSummaryCSV(w io.Writer, summaries []model.TrainSummary) error {
	cw := csv.NewWriter(w)
	header := []string{
		"train", "dept_time", "blocks", "total_car", "total_car_hours",
		"avg_car_hours", "min_car_hours", "min_car_hours_time",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range summaries {
		rec := []string{
			s.TrainID,
			s.Departure.String(),
			strings.Join(s.Blocks, ", "),
			strconv.Itoa(s.TotalCar),
			strconv.FormatFloat(s.TotalCarHours, 'f', -1, 64),
			strconv.FormatFloat(s.AvgCarHours, 'f', 2, 64),
			strconv.FormatFloat(s.MinCarHours, 'f', 2, 64),
			fmt.Sprintf("%d:00", s.MinCarHour),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteDetailCSV writes one train's 24-row detail table to w.
func WriteDetailCSV(w io.Writer, d model.TrainDetail) error {
	cw := csv.NewWriter(w)
	header := []string{
		"train", "time", "car_arriving", "dwell_hours", "car_arriving_x_dwell",
		"car_hours", "total_car", "total_car_hours", "departure_time",
	}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, row := range d.Rows {
		rec := []string{
			d.TrainID,
			fmt.Sprintf("%d:00", row.Hour),
			strconv.Itoa(row.Arriving),
			strconv.Itoa(row.Dwell),
			strconv.Itoa(row.Weighted),
			strconv.FormatFloat(row.CarHours, 'f', -1, 64),
			strconv.Itoa(d.TotalCar),
			strconv.FormatFloat(d.TotalCarHours, 'f', -1, 64),
			d.Departure.String(),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
