package ingest

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/yardtools/yardcap/core/logger"
	"github.com/yardtools/yardcap/core/model"
	"github.com/yardtools/yardcap/core/staging"
)

// classifyHeader maps one trimmed header cell to a column kind. Anything
// that is not the time column, a spare column or a pull column is a
// dedicated block column keyed by its header text.
func classifyHeader(header string) model.ColumnKind {
	h := strings.ToLower(strings.TrimSpace(header))
	switch h {
	case "hour", "time", "time_slot":
		return model.ColumnTime
	}
	if strings.Contains(h, "spare") {
		return model.ColumnSpare
	}
	if strings.Contains(h, "pull") {
		return model.ColumnPull
	}
	return model.ColumnBlock
}

// ReadYardPlan loads one or more yard-plan CSVs and merges them row-wise
// into a single plan labeled with the operating alternative. Every file
// must carry a time column; a file without one makes the whole batch
// unprocessable and is reported as a StructuralError.
func ReadYardPlan(label string, paths []string, log logger.Logger) (*model.YardPlan, error) {
	plan := &model.YardPlan{Label: label}
	seen := make(map[string]bool)
	for _, path := range paths {
		if err := readPlanFile(plan, seen, path, log); err != nil {
			return nil, err
		}
	}
	return plan, nil
}

func readPlanFile(plan *model.YardPlan, seen map[string]bool, path string, log logger.Logger) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open yard plan: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // yard exports often carry ragged rows
	records, err := r.ReadAll()
	if err != nil {
		return fmt.Errorf("parse yard plan %s: %w", path, err)
	}
	if len(records) == 0 {
		return &staging.StructuralError{Plan: plan.Label, Reason: fmt.Sprintf("empty yard plan %s", path)}
	}

	header := records[0]
	cols := make([]model.Column, len(header))
	timeIdx := -1
	for i, h := range header {
		id := strings.TrimSpace(h)
		kind := classifyHeader(id)
		cols[i] = model.Column{ID: id, Kind: kind}
		if kind == model.ColumnTime && timeIdx < 0 {
			timeIdx = i
		}
		key := kind.String() + ":" + id
		if !seen[key] {
			seen[key] = true
			plan.Columns = append(plan.Columns, cols[i])
		}
	}
	if timeIdx < 0 {
		return &staging.StructuralError{Plan: plan.Label, Reason: fmt.Sprintf("no time column in %s", path)}
	}

	for _, rec := range records[1:] {
		row := model.YardPlanRow{
			Blocks: make(map[string]string),
			Pulls:  make(map[string]string),
		}
		for i, cell := range rec {
			if i >= len(cols) {
				break
			}
			switch cols[i].Kind {
			case model.ColumnTime:
				if i == timeIdx {
					row.TimeText = cell
				}
			case model.ColumnBlock:
				row.Blocks[cols[i].ID] = cell
			case model.ColumnSpare:
				row.Spares = append(row.Spares, cell)
			case model.ColumnPull:
				row.Pulls[cols[i].ID] = cell
			}
		}
		plan.Rows = append(plan.Rows, row)
	}
	log.Debugf("yard plan %s: %d columns, %d rows from %s", plan.Label, len(header), len(records)-1, path)
	return nil
}
