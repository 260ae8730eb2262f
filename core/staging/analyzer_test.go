package staging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yardtools/yardcap/core/events"
	"github.com/yardtools/yardcap/core/metrics"
	"github.com/yardtools/yardcap/core/model"
	"github.com/yardtools/yardcap/infra/logger"
	"github.com/yardtools/yardcap/internal/eventbus"
)

type captureSink struct {
	results []metrics.TrainResult
	skips   []metrics.TrainSkip
	batches []metrics.BatchRecord
}

func (s *captureSink) RecordTrainResult(r metrics.TrainResult) error {
	s.results = append(s.results, r)
	return nil
}

func (s *captureSink) RecordTrainSkip(sk metrics.TrainSkip) error {
	s.skips = append(s.skips, sk)
	return nil
}

func (s *captureSink) RecordBatch(rec metrics.BatchRecord) error {
	s.batches = append(s.batches, rec)
	return nil
}

type warnLogger struct {
	logger.NopLogger
	warns []string
}

func (l *warnLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func testPlan() *model.YardPlan {
	return &model.YardPlan{
		Label: "alt_1",
		Columns: []model.Column{
			{ID: "Time", Kind: model.ColumnTime},
			{ID: "CHBR", Kind: model.ColumnBlock},
			{ID: "CHG", Kind: model.ColumnBlock},
			{ID: "SPARE 1", Kind: model.ColumnSpare},
			{ID: "PULL 1", Kind: model.ColumnPull},
		},
		Rows: []model.YardPlanRow{
			{TimeText: "2:00", Blocks: map[string]string{"CHBR": "3"}},
			{TimeText: "5:00", Blocks: map[string]string{"CHG": "2"}, Spares: []string{"1 CHBR"}},
			{TimeText: "8:00", Blocks: map[string]string{"CHBR": "4"}, Pulls: map[string]string{"PULL 1": "261"}},
			{TimeText: "11:00", Blocks: map[string]string{"CHBR": "5"}, Pulls: map[string]string{"PULL 1": "571"}},
		},
	}
}

func TestNewAnalyzerRejectsPlanWithoutTimeColumn(t *testing.T) {
	plan := &model.YardPlan{
		Label:   "alt_bad",
		Columns: []model.Column{{ID: "CHBR", Kind: model.ColumnBlock}},
	}
	_, err := NewAnalyzer(plan, Config{}, nil, nil, logger.NopLogger{})
	var serr *StructuralError
	if !errors.As(err, &serr) {
		t.Fatalf("expected StructuralError got %v", err)
	}
	if serr.Plan != "alt_bad" {
		t.Fatalf("expected plan label in error, got %q", serr.Plan)
	}
}

func TestNewAnalyzerNilParams(t *testing.T) {
	if _, err := NewAnalyzer(nil, Config{}, nil, nil, logger.NopLogger{}); err == nil {
		t.Fatalf("expected error for nil plan")
	}
	if _, err := NewAnalyzer(testPlan(), Config{}, nil, nil, nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

func TestAnalyzerRunProcessesTrains(t *testing.T) {
	sink := &captureSink{}
	a, err := NewAnalyzer(testPlan(), Config{}, sink, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	a.SetRun("run-1", "alt_1")
	deps := []model.DepartureRecord{
		{TrainID: "261", Departure: model.ClockTime{Hour: 9}, Blocks: []string{"CHBR", "CHG"}},
		{TrainID: "571", Departure: model.ClockTime{Hour: 12}, Blocks: []string{"CHG"}},
	}
	res, err := a.Run(context.Background(), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Total != 2 || res.Stats.Processed != 2 || res.Stats.Skipped != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	if len(res.Summaries) != 2 || len(res.Details) != 2 {
		t.Fatalf("expected 2 summaries and details, got %d/%d", len(res.Summaries), len(res.Details))
	}

	s := res.Summaries[0]
	if s.TrainID != "261" {
		t.Fatalf("departure order broken: %s first", s.TrainID)
	}
	// 3 cars at 2:00, 2+1 at 5:00, 5 at 11:00; the 8:00 pull row is excluded.
	if s.TotalCar != 11 {
		t.Fatalf("expected 11 cars got %d", s.TotalCar)
	}
	if s.TotalCarHours != 188 {
		t.Fatalf("expected 188 car-hours got %v", s.TotalCarHours)
	}
	if s.AvgCarHours != 188.0/11.0 {
		t.Fatalf("expected avg %v got %v", 188.0/11.0, s.AvgCarHours)
	}
	if s.MinCarHour != 12 || s.MinCarHours != 56 {
		t.Fatalf("expected min 56 at hour 12, got %v at %d", s.MinCarHours, s.MinCarHour)
	}

	if res.Summaries[1].TrainID != "571" || res.Summaries[1].TotalCar != 2 {
		t.Fatalf("unexpected second summary: %+v", res.Summaries[1])
	}

	if len(sink.results) != 2 || len(sink.skips) != 0 || len(sink.batches) != 1 {
		t.Fatalf("sink recorded %d/%d/%d", len(sink.results), len(sink.skips), len(sink.batches))
	}
	if sink.results[0].RunID != "run-1" || sink.results[0].Label != "alt_1" {
		t.Fatalf("run tags not carried: %+v", sink.results[0])
	}
	if sink.batches[0].Stats != res.Stats {
		t.Fatalf("batch record stats mismatch: %+v", sink.batches[0].Stats)
	}
}

func TestAnalyzerSkipsAbsentTrain(t *testing.T) {
	sink := &captureSink{}
	log := &warnLogger{}
	a, err := NewAnalyzer(testPlan(), Config{}, sink, nil, log)
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(context.Background(), []model.DepartureRecord{
		{TrainID: "999", Blocks: []string{"CHBR"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Summaries) != 0 {
		t.Fatalf("absent train must yield no summary, got %d", len(res.Summaries))
	}
	if res.Stats.Skipped != 1 || res.Stats.Processed != 0 {
		t.Fatalf("unexpected stats: %+v", res.Stats)
	}
	if len(sink.skips) != 1 || sink.skips[0].Reason != model.SkipNotFound {
		t.Fatalf("expected one not_found skip, got %+v", sink.skips)
	}
	if len(log.warns) != 1 {
		t.Fatalf("expected one warning line, got %d: %v", len(log.warns), log.warns)
	}
}

func TestAnalyzerSkipsEmptyBlockList(t *testing.T) {
	sink := &captureSink{}
	a, err := NewAnalyzer(testPlan(), Config{}, sink, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(context.Background(), []model.DepartureRecord{{TrainID: "261"}})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Skipped != 1 {
		t.Fatalf("expected skip, got %+v", res.Stats)
	}
	if sink.skips[0].Reason != model.SkipNoBlocks {
		t.Fatalf("expected no_blocks got %s", sink.skips[0].Reason)
	}
}

func TestAnalyzerSkipsWhenOnlyPullRowUsable(t *testing.T) {
	plan := &model.YardPlan{
		Label: "alt_sparse",
		Columns: []model.Column{
			{ID: "Time", Kind: model.ColumnTime},
			{ID: "CHBR", Kind: model.ColumnBlock},
			{ID: "PULL 1", Kind: model.ColumnPull},
		},
		Rows: []model.YardPlanRow{
			{TimeText: "6:00", Pulls: map[string]string{"PULL 1": "261"}},
			{TimeText: "soon", Blocks: map[string]string{"CHBR": "4"}},
		},
	}
	sink := &captureSink{}
	a, err := NewAnalyzer(plan, Config{}, sink, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(context.Background(), []model.DepartureRecord{
		{TrainID: "261", Blocks: []string{"CHBR"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Skipped != 1 {
		t.Fatalf("expected skip, got %+v", res.Stats)
	}
	if sink.skips[0].Reason != model.SkipNoHours {
		t.Fatalf("expected no_hours got %s", sink.skips[0].Reason)
	}
}

func TestAnalyzerParallelPreservesOrder(t *testing.T) {
	cols := []model.Column{
		{ID: "Time", Kind: model.ColumnTime},
		{ID: "CHBR", Kind: model.ColumnBlock},
		{ID: "PULL 1", Kind: model.ColumnPull},
	}
	rows := []model.YardPlanRow{
		{TimeText: "0:00", Blocks: map[string]string{"CHBR": "2"}},
	}
	var deps []model.DepartureRecord
	for i := 0; i < 10; i++ {
		rows = append(rows, model.YardPlanRow{
			TimeText: fmt.Sprintf("%d:00", i+1),
			Pulls:    map[string]string{"PULL 1": fmt.Sprintf("T%d", i)},
		})
		deps = append(deps, model.DepartureRecord{
			TrainID: fmt.Sprintf("T%d", i),
			Blocks:  []string{"CHBR"},
		})
	}
	plan := &model.YardPlan{Label: "alt_2", Columns: cols, Rows: rows}
	a, err := NewAnalyzer(plan, Config{Workers: 8}, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	res, err := a.Run(context.Background(), deps)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Stats.Processed != 10 {
		t.Fatalf("expected 10 processed got %+v", res.Stats)
	}
	for i, s := range res.Summaries {
		if want := fmt.Sprintf("T%d", i); s.TrainID != want {
			t.Fatalf("order broken at %d: got %s want %s", i, s.TrainID, want)
		}
	}
}

func TestAnalyzerPublishesEvents(t *testing.T) {
	bus := eventbus.New[events.Event]()
	defer bus.Close()
	ch := bus.Subscribe(64)
	a, err := NewAnalyzer(testPlan(), Config{}, nil, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	a.SetRun("run-2", "alt_1")
	_, err = a.Run(context.Background(), []model.DepartureRecord{
		{TrainID: "261", Blocks: []string{"CHBR"}},
		{TrainID: "999", Blocks: []string{"CHBR"}},
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	var started, processed, skipped, completed int
	var final events.BatchCompletedEvent
	for {
		select {
		case ev := <-ch:
			switch e := ev.(type) {
			case events.BatchStartedEvent:
				started++
			case events.TrainProcessedEvent:
				processed++
			case events.TrainSkippedEvent:
				skipped++
			case events.BatchCompletedEvent:
				completed++
				final = e
			}
			continue
		default:
		}
		break
	}
	if started != 1 || processed != 1 || skipped != 1 || completed != 1 {
		t.Fatalf("event counts started=%d processed=%d skipped=%d completed=%d",
			started, processed, skipped, completed)
	}
	if final.RunID != "run-2" || final.Stats.Processed != 1 || final.Stats.Skipped != 1 {
		t.Fatalf("unexpected completion event: %+v", final)
	}
}

func TestAnalyzerContextCanceled(t *testing.T) {
	a, err := NewAnalyzer(testPlan(), Config{}, nil, nil, logger.NopLogger{})
	if err != nil {
		t.Fatalf("NewAnalyzer: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := a.Run(ctx, []model.DepartureRecord{
		{TrainID: "261", Blocks: []string{"CHBR"}},
	})
	if err == nil {
		t.Fatalf("expected context error")
	}
	if res.Stats.Processed != 0 {
		t.Fatalf("expected nothing processed after cancel, got %+v", res.Stats)
	}
}
