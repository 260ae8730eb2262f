package scenarios

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/yardtools/yardcap/core/model"
)

// RowDef is one yard-plan time slot of a scenario.
type RowDef struct {
	Time   string            `yaml:"time"`
	Blocks map[string]string `yaml:"blocks,omitempty"`
	Spares []string          `yaml:"spares,omitempty"`
	Pulls  []string          `yaml:"pulls,omitempty"`
}

// TrainDef is one departure record of a scenario.
type TrainDef struct {
	ID        string   `yaml:"id"`
	Departure string   `yaml:"departure"`
	Blocks    []string `yaml:"blocks"`
}

// SummaryExpect pins down one expected train summary. Zero-valued fields
// other than Train are still checked; omit the summary entirely when only
// the counts matter.
type SummaryExpect struct {
	Train         string  `yaml:"train"`
	TotalCar      int     `yaml:"total_car"`
	TotalCarHours float64 `yaml:"total_car_hours"`
	MinHour       int     `yaml:"min_hour"`
}

type Expected struct {
	Processed int             `yaml:"processed"`
	Skipped   int             `yaml:"skipped"`
	Summaries []SummaryExpect `yaml:"summaries,omitempty"`
}

type Scenario struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description,omitempty"`
	Workers     int        `yaml:"workers,omitempty"`
	Rows        []RowDef   `yaml:"rows"`
	Trains      []TrainDef `yaml:"trains"`
	Expected    Expected   `yaml:"expected"`
}

// Load reads one scenario file.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if sc.Name == "" {
		return nil, fmt.Errorf("scenario %s has no name", path)
	}
	return &sc, nil
}

// Plan materializes the scenario rows into a yard plan. Column metadata is
// derived: one time column, the union of block codes, and as many spare
// and pull columns as the widest row uses.
func (s *Scenario) Plan() *model.YardPlan {
	blockSet := make(map[string]bool)
	spareCount, pullCount := 0, 0
	for _, r := range s.Rows {
		for code := range r.Blocks {
			blockSet[code] = true
		}
		if len(r.Spares) > spareCount {
			spareCount = len(r.Spares)
		}
		if len(r.Pulls) > pullCount {
			pullCount = len(r.Pulls)
		}
	}
	blocks := make([]string, 0, len(blockSet))
	for code := range blockSet {
		blocks = append(blocks, code)
	}
	sort.Strings(blocks)

	plan := &model.YardPlan{Label: s.Name}
	plan.Columns = append(plan.Columns, model.Column{ID: "Hour", Kind: model.ColumnTime})
	for _, code := range blocks {
		plan.Columns = append(plan.Columns, model.Column{ID: code, Kind: model.ColumnBlock})
	}
	for i := 0; i < spareCount; i++ {
		plan.Columns = append(plan.Columns, model.Column{ID: fmt.Sprintf("Spare %d", i+1), Kind: model.ColumnSpare})
	}
	for i := 0; i < pullCount; i++ {
		plan.Columns = append(plan.Columns, model.Column{ID: fmt.Sprintf("Pull %d", i+1), Kind: model.ColumnPull})
	}

	for _, r := range s.Rows {
		row := model.YardPlanRow{
			TimeText: r.Time,
			Blocks:   make(map[string]string, len(r.Blocks)),
			Pulls:    make(map[string]string, len(r.Pulls)),
		}
		for code, cell := range r.Blocks {
			row.Blocks[code] = cell
		}
		row.Spares = append(row.Spares, r.Spares...)
		for i, cell := range r.Pulls {
			row.Pulls[fmt.Sprintf("Pull %d", i+1)] = cell
		}
		plan.Rows = append(plan.Rows, row)
	}
	return plan
}

// Departures materializes the scenario trains.
func (s *Scenario) Departures() ([]model.DepartureRecord, error) {
	deps := make([]model.DepartureRecord, len(s.Trains))
	for i, tr := range s.Trains {
		dep, err := model.ParseClock(tr.Departure)
		if err != nil {
			return nil, fmt.Errorf("scenario %s: train %s: %w", s.Name, tr.ID, err)
		}
		deps[i] = model.DepartureRecord{TrainID: tr.ID, Departure: dep, Blocks: tr.Blocks}
	}
	return deps, nil
}
