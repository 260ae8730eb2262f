package synth

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/yardtools/yardcap/core/staging"
	"github.com/yardtools/yardcap/infra/ingest"
	"github.com/yardtools/yardcap/infra/logger"
)

func TestGeneratorDeterministic(t *testing.T) {
	cfg := Config{Seed: 42, Trains: 5, Blocks: 4}
	a := New(cfg)
	b := New(cfg)
	if !reflect.DeepEqual(a.Departures(), b.Departures()) {
		t.Fatal("same seed produced different departures")
	}
}

func TestGeneratorShape(t *testing.T) {
	g := New(Config{Seed: 1, Trains: 6, Blocks: 5})
	deps := g.Departures()
	if len(deps) != 6 {
		t.Fatalf("trains: %d", len(deps))
	}
	for _, d := range deps {
		if len(d.Blocks) == 0 {
			t.Errorf("train %s generated without blocks", d.TrainID)
		}
	}
	records := g.YardPlanRecords(deps)
	if len(records) != 25 {
		t.Fatalf("plan rows incl header: %d", len(records))
	}
	if records[0][0] != "Hour" {
		t.Errorf("header: %v", records[0])
	}
	pulled := 0
	for _, rec := range records[1:] {
		if rec[len(rec)-1] != "" {
			pulled++
		}
	}
	if pulled == 0 {
		t.Error("no pull cells generated")
	}
}

func TestWriteDatasetRoundTrip(t *testing.T) {
	dir := t.TempDir()
	log := logger.NopLogger{}
	if err := WriteDataset(dir, Config{Seed: 7, Trains: 6, Blocks: 6, Inbound: 3}, log); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	for _, name := range []string{"departures.csv", "yard_plan.csv", "inbound.csv"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s missing: %v", name, err)
		}
	}

	// generated data must feed the full pipeline
	deps, err := ingest.ReadDepartures(filepath.Join(dir, "departures.csv"), log)
	if err != nil {
		t.Fatalf("read departures: %v", err)
	}
	if len(deps) != 6 {
		t.Fatalf("departures: %d", len(deps))
	}
	plan, err := ingest.ReadYardPlan("demo", []string{filepath.Join(dir, "yard_plan.csv")}, log)
	if err != nil {
		t.Fatalf("read plan: %v", err)
	}
	analyzer, err := staging.NewAnalyzer(plan, staging.Config{}, nil, nil, log)
	if err != nil {
		t.Fatalf("analyzer: %v", err)
	}
	res, err := analyzer.Run(context.Background(), deps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if res.Stats.Total != 6 {
		t.Errorf("stats total: %d", res.Stats.Total)
	}
	if res.Stats.Processed+res.Stats.Skipped != res.Stats.Total {
		t.Errorf("stats do not add up: %+v", res.Stats)
	}
}
