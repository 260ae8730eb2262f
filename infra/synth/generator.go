// Package synth generates a matching departure-table / yard-plan CSV pair
// for demos and manual testing. Generation is seeded and fully
// deterministic, so two runs with the same config produce byte-identical
// datasets.
package synth

import (
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/yardtools/yardcap/core/logger"
	"github.com/yardtools/yardcap/core/model"
)

// Config holds parameters for dataset generation.
type Config struct {
	Seed    int64
	Trains  int
	Blocks  int
	Inbound int
}

// SetDefaults normalizes unset values.
func (c *Config) SetDefaults() {
	if c.Trains <= 0 {
		c.Trains = 8
	}
	if c.Blocks <= 0 {
		c.Blocks = 6
	}
	if c.Inbound < 0 {
		c.Inbound = 0
	}
}

var (
	blockPrefixes = []string{"CH", "ST", "KC", "MEM", "NB", "GR", "DV", "TX"}
	blockSuffixes = []string{"BR", "G", "A", "L", "W", "X"}
)

// Generator produces yard datasets from a single seeded random stream.
type Generator struct {
	cfg    Config
	rng    *rand.Rand
	blocks []string
}

// New creates a Generator for the given config.
func New(cfg Config) *Generator {
	cfg.SetDefaults()
	g := &Generator{cfg: cfg, rng: rand.New(rand.NewSource(cfg.Seed))}
	g.blocks = g.blockCodes(cfg.Blocks)
	return g
}

// blockCodes builds n distinct block codes from the prefix/suffix pools.
func (g *Generator) blockCodes(n int) []string {
	seen := make(map[string]bool)
	var codes []string
	for len(codes) < n {
		code := blockPrefixes[g.rng.Intn(len(blockPrefixes))] + blockSuffixes[g.rng.Intn(len(blockSuffixes))]
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}
	return codes
}

// Departures generates the outbound schedule. Train IDs are TR-101 and up.
func (g *Generator) Departures() []model.DepartureRecord {
	minutes := []int{0, 15, 30, 45}
	deps := make([]model.DepartureRecord, g.cfg.Trains)
	for i := range deps {
		n := 1 + g.rng.Intn(3)
		picks := g.rng.Perm(len(g.blocks))[:min(n, len(g.blocks))]
		blocks := make([]string, len(picks))
		for j, p := range picks {
			blocks[j] = g.blocks[p]
		}
		deps[i] = model.DepartureRecord{
			TrainID: fmt.Sprintf("TR-%03d", 101+i),
			Departure: model.ClockTime{
				Hour:   g.rng.Intn(model.HoursPerDay),
				Minute: minutes[g.rng.Intn(len(minutes))],
			},
			Blocks: blocks,
		}
	}
	return deps
}

// Inbound generates the arrival schedule consumed by the wheel chart.
func (g *Generator) Inbound() []model.InboundRecord {
	recs := make([]model.InboundRecord, g.cfg.Inbound)
	for i := range recs {
		recs[i] = model.InboundRecord{
			TrainID: fmt.Sprintf("IN-%02d", i+1),
			Arrival: model.ClockTime{Hour: g.rng.Intn(model.HoursPerDay), Minute: g.rng.Intn(60)},
		}
	}
	return recs
}

// YardPlanRecords builds the 24-row yard plan as raw CSV records, header
// first. Half the block pool gets dedicated columns; the rest only ever
// appears in the spare column, so generated data exercises both resolver
// paths. Each departure is pulled exactly once.
func (g *Generator) YardPlanRecords(deps []model.DepartureRecord) [][]string {
	direct := g.blocks[:(len(g.blocks)+1)/2]
	spareOnly := g.blocks[(len(g.blocks)+1)/2:]

	pulls := make(map[int][]string)
	for _, d := range deps {
		h := g.rng.Intn(model.HoursPerDay)
		pulls[h] = append(pulls[h], d.TrainID)
	}

	header := append([]string{"Hour"}, direct...)
	header = append(header, "Spare 1", "Pull 1")
	records := [][]string{header}
	for h := 0; h < model.HoursPerDay; h++ {
		row := []string{fmt.Sprintf("%d:00", h)}
		for range direct {
			if g.rng.Float64() < 0.4 {
				row = append(row, strconv.Itoa(1+g.rng.Intn(5)))
			} else {
				row = append(row, "")
			}
		}
		var pairs []string
		for _, code := range spareOnly {
			if g.rng.Float64() < 0.3 {
				pairs = append(pairs, strconv.Itoa(1+g.rng.Intn(3)), code)
			}
		}
		row = append(row, strings.Join(pairs, " "), strings.Join(pulls[h], " "))
		records = append(records, row)
	}
	return records
}

// WriteDataset generates and writes departures.csv, yard_plan.csv and,
// when configured, inbound.csv under dir.
func WriteDataset(dir string, cfg Config, log logger.Logger) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset dir: %w", err)
	}
	g := New(cfg)
	deps := g.Departures()

	depRecords := [][]string{{"Train", "Scheduled Departure", "Blocks"}}
	for _, d := range deps {
		depRecords = append(depRecords, []string{d.TrainID, d.Departure.String(), strings.Join(d.Blocks, ", ")})
	}
	if err := writeCSV(filepath.Join(dir, "departures.csv"), depRecords); err != nil {
		return err
	}
	if err := writeCSV(filepath.Join(dir, "yard_plan.csv"), g.YardPlanRecords(deps)); err != nil {
		return err
	}
	if g.cfg.Inbound > 0 {
		inRecords := [][]string{{"Train", "Arrival"}}
		for _, r := range g.Inbound() {
			inRecords = append(inRecords, []string{r.TrainID, r.Arrival.String()})
		}
		if err := writeCSV(filepath.Join(dir, "inbound.csv"), inRecords); err != nil {
			return err
		}
	}
	log.Infof("generated dataset in %s: %d trains, %d blocks (seed %d)",
		dir, g.cfg.Trains, g.cfg.Blocks, g.cfg.Seed)
	return nil
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
