package scenarios

import (
	"context"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yardtools/yardcap/core/events"
	"github.com/yardtools/yardcap/core/staging"
	"github.com/yardtools/yardcap/infra/logger"
	"github.com/yardtools/yardcap/infra/metrics"
	"github.com/yardtools/yardcap/internal/eventbus"
)

// RunScenario executes one scenario end to end: plan and departures from
// the yaml, a real Prometheus sink on a private registry, and the event
// bus, then checks the expectations.
func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	bus := eventbus.New[events.Event]()
	sub := bus.Subscribe(128)

	deps, err := sc.Departures()
	if err != nil {
		t.Fatalf("departures: %v", err)
	}
	analyzer, err := staging.NewAnalyzer(sc.Plan(), staging.Config{Workers: sc.Workers}, sink, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("analyzer: %v", err)
	}
	analyzer.SetRun("qa", sc.Name)

	res, err := analyzer.Run(context.Background(), deps)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	bus.Close()

	if res.Stats.Processed != sc.Expected.Processed {
		t.Errorf("processed: got %d, want %d", res.Stats.Processed, sc.Expected.Processed)
	}
	if res.Stats.Skipped != sc.Expected.Skipped {
		t.Errorf("skipped: got %d, want %d", res.Stats.Skipped, sc.Expected.Skipped)
	}

	for _, want := range sc.Expected.Summaries {
		found := false
		for _, got := range res.Summaries {
			if got.TrainID != want.Train {
				continue
			}
			found = true
			if got.TotalCar != want.TotalCar {
				t.Errorf("%s total_car: got %d, want %d", want.Train, got.TotalCar, want.TotalCar)
			}
			if math.Abs(got.TotalCarHours-want.TotalCarHours) > 1e-9 {
				t.Errorf("%s total_car_hours: got %v, want %v", want.Train, got.TotalCarHours, want.TotalCarHours)
			}
			if got.MinCarHour != want.MinHour {
				t.Errorf("%s min_hour: got %d, want %d", want.Train, got.MinCarHour, want.MinHour)
			}
		}
		if !found {
			t.Errorf("expected summary for %s not produced", want.Train)
		}
	}

	if got := counterValue(t, reg, "yard_trains_processed_total"); got != float64(sc.Expected.Processed) {
		t.Errorf("prom processed counter: got %v, want %d", got, sc.Expected.Processed)
	}
	if got := counterValue(t, reg, "yard_trains_skipped_total"); got != float64(sc.Expected.Skipped) {
		t.Errorf("prom skipped counter: got %v, want %d", got, sc.Expected.Skipped)
	}

	processedEvents, skippedEvents := 0, 0
	for ev := range sub {
		switch ev.(type) {
		case events.TrainProcessedEvent:
			processedEvents++
		case events.TrainSkippedEvent:
			skippedEvents++
		}
	}
	if processedEvents != sc.Expected.Processed || skippedEvents != sc.Expected.Skipped {
		t.Errorf("events: got %d processed / %d skipped, want %d / %d",
			processedEvents, skippedEvents, sc.Expected.Processed, sc.Expected.Skipped)
	}
}

// counterValue sums a counter family across all label sets. Missing
// families count as zero, matching a run with no increments.
func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var sum float64
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
	}
	return sum
}
