package staging

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/iter"

	"github.com/yardtools/yardcap/core/events"
	"github.com/yardtools/yardcap/core/logger"
	"github.com/yardtools/yardcap/core/metrics"
	"github.com/yardtools/yardcap/core/model"
	"github.com/yardtools/yardcap/internal/eventbus"
)

// BatchResult aggregates the outcome of one run over a departure table.
// Summaries and Details hold only fully processed trains, in departure
// table order.
type BatchResult struct {
	Summaries []model.TrainSummary
	Details   []model.TrainDetail
	Stats     model.BatchStats
}

// Analyzer computes per-train staging profiles against one yard plan.
// Skipped trains are counted and reported, never returned as errors;
// partial success is the normal case with noisy yard data.
type Analyzer struct {
	plan    *model.YardPlan
	cfg     Config
	logger  logger.Logger
	metrics metrics.RunSink
	bus     eventbus.EventBus[events.Event]
	runID   string
	label   string
}

// trainOutcome carries one train's result from the compute phase to the
// ordered emission phase.
type trainOutcome struct {
	dep     model.DepartureRecord
	skipped bool
	reason  model.SkipReason
	summary model.TrainSummary
	detail  model.TrainDetail
}

// NewAnalyzer creates a new analyzer. The yard plan must carry a time
// column; without one no row can be placed on the clock and the whole
// batch is undefined, reported as a StructuralError. A nil sink falls
// back to NopSink and a nil bus disables event publication.
func NewAnalyzer(plan *model.YardPlan, cfg Config, sink metrics.RunSink, bus eventbus.EventBus[events.Event], log logger.Logger) (*Analyzer, error) {
	if plan == nil || log == nil {
		return nil, fmt.Errorf("staging: nil parameter provided to NewAnalyzer")
	}
	if !plan.HasTimeColumn() {
		return nil, &StructuralError{Plan: plan.Label, Reason: "no time column"}
	}
	cfg.SetDefaults()
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Analyzer{
		plan:    plan,
		cfg:     cfg,
		logger:  log,
		metrics: sink,
		bus:     bus,
	}, nil
}

// SetRun tags subsequent batches with a run identifier and an operating
// alternative label. Both may be empty.
func (a *Analyzer) SetRun(runID, label string) {
	a.runID = runID
	a.label = label
}

// Run analyzes every departure in table order. Each train is either
// processed into a summary and a detail table or skipped with a reason;
// the context is checked between trains. With Workers > 1 the per-train
// computation runs concurrently while emission order stays equal to the
// departure table order.
func (a *Analyzer) Run(ctx context.Context, departures []model.DepartureRecord) (BatchResult, error) {
	res := BatchResult{Stats: model.BatchStats{Total: len(departures)}}
	start := time.Now()
	if a.bus != nil {
		a.bus.Publish(events.BatchStartedEvent{RunID: a.runID, Label: a.label, Trains: len(departures)})
	}
	a.logger.Infof("analyzing %d trains against yard plan %s", len(departures), a.plan.Label)

	var outcomes []trainOutcome
	if a.cfg.Workers > 1 {
		m := iter.Mapper[model.DepartureRecord, trainOutcome]{MaxGoroutines: a.cfg.Workers}
		outcomes = m.Map(departures, func(dep *model.DepartureRecord) trainOutcome {
			return a.analyzeOne(*dep)
		})
	} else {
		outcomes = make([]trainOutcome, 0, len(departures))
		for _, dep := range departures {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			outcomes = append(outcomes, a.analyzeOne(dep))
		}
	}

	for _, out := range outcomes {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if out.skipped {
			a.emitSkipped(out.dep.TrainID, out.reason)
			res.Stats.Skipped++
			continue
		}
		a.emitProcessed(out.summary)
		res.Summaries = append(res.Summaries, out.summary)
		res.Details = append(res.Details, out.detail)
		res.Stats.Processed++
	}

	if a.bus != nil {
		a.bus.Publish(events.BatchCompletedEvent{RunID: a.runID, Label: a.label, Stats: res.Stats})
	}
	if err := a.metrics.RecordBatch(metrics.BatchRecord{
		RunID:    a.runID,
		Label:    a.label,
		Stats:    res.Stats,
		Duration: time.Since(start),
		Time:     time.Now(),
	}); err != nil {
		a.logger.Errorf("batch metrics error: %v", err)
	}
	a.logger.Infof("batch done: %d trains, %d processed, %d skipped",
		res.Stats.Total, res.Stats.Processed, res.Stats.Skipped)
	return res, nil
}

// analyzeOne computes a single train's profile. It only reads the
// immutable plan, so calls are safe to run concurrently.
func (a *Analyzer) analyzeOne(dep model.DepartureRecord) trainOutcome {
	out := trainOutcome{dep: dep}
	if len(dep.Blocks) == 0 {
		out.skipped, out.reason = true, model.SkipNoBlocks
		return out
	}
	pullHour, found := EarliestPullHour(a.plan.Rows, dep.TrainID, a.logger)
	if !found {
		out.skipped, out.reason = true, model.SkipNotFound
		return out
	}
	arrivals, counted := AggregateArrivals(a.plan.Rows, NewBlockSet(dep.Blocks), pullHour)
	if counted == 0 {
		out.skipped, out.reason = true, model.SkipNoHours
		return out
	}
	rec := ComputeCarHours(arrivals)
	out.summary = Summarize(dep, rec)
	out.detail = BuildDetail(dep, arrivals, rec)
	return out
}

// emitSkipped logs, publishes, and records one skipped train.
func (a *Analyzer) emitSkipped(trainID string, reason model.SkipReason) {
	a.logger.Warnf("train %s skipped: %s", trainID, reason)
	if a.bus != nil {
		a.bus.Publish(events.TrainSkippedEvent{RunID: a.runID, TrainID: trainID, Reason: reason})
	}
	if err := a.metrics.RecordTrainSkip(metrics.TrainSkip{
		RunID:   a.runID,
		Label:   a.label,
		TrainID: trainID,
		Reason:  reason,
		Time:    time.Now(),
	}); err != nil {
		a.logger.Errorf("skip metrics error: %v", err)
	}
}

// emitProcessed logs, publishes, and records one processed train.
func (a *Analyzer) emitProcessed(s model.TrainSummary) {
	a.logger.Infof("train %s: %d cars, %.2f car-hours, tightest hour %d:00 (%.2f)",
		s.TrainID, s.TotalCar, s.TotalCarHours, s.MinCarHour, s.MinCarHours)
	a.logger.Debugw("train analyzed", map[string]any{
		"train":     s.TrainID,
		"total_car": s.TotalCar,
		"min_hour":  s.MinCarHour,
	})
	if a.bus != nil {
		a.bus.Publish(events.TrainProcessedEvent{RunID: a.runID, Summary: s})
	}
	if err := a.metrics.RecordTrainResult(metrics.TrainResult{
		RunID:   a.runID,
		Label:   a.label,
		Summary: s,
		Time:    time.Now(),
	}); err != nil {
		a.logger.Errorf("train metrics error: %v", err)
	}
}
