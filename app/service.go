package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/yardtools/yardcap/config"
	"github.com/yardtools/yardcap/core/events"
	coremetrics "github.com/yardtools/yardcap/core/metrics"
	"github.com/yardtools/yardcap/core/model"
	"github.com/yardtools/yardcap/core/staging"
	"github.com/yardtools/yardcap/infra/chart"
	"github.com/yardtools/yardcap/infra/ingest"
	"github.com/yardtools/yardcap/infra/logger"
	"github.com/yardtools/yardcap/infra/metrics"
	"github.com/yardtools/yardcap/infra/report"
	"github.com/yardtools/yardcap/internal/eventbus"
)

// Service wires the configured collaborators around one batch run: ingest
// -> analyzer -> report, with metrics sinks and the event bus in between.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  coremetrics.RunSink
	bus   *eventbus.Bus[events.Event]
	runID string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	sink, err := metrics.NewSink(cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("metrics sink: %w", err)
	}
	return &Service{
		cfg:   cfg,
		log:   logger.New("service"),
		sink:  sink,
		bus:   eventbus.New[events.Event](),
		runID: uuid.NewString(),
	}, nil
}

// RunID returns the identifier tagging this service's batch runs.
func (s *Service) RunID() string { return s.runID }

// Run executes one batch: read both tables, analyze every train, persist
// the report. The returned result carries the batch statistics; partial
// success (skipped trains) is not an error.
func (s *Service) Run(ctx context.Context) (staging.BatchResult, error) {
	var res staging.BatchResult
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			addr := fmt.Sprintf(":%d", s.cfg.Metrics.PrometheusPort)
			if err := metrics.StartPromServer(ctx, addr); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	progressDone := s.narrate()
	defer func() {
		s.bus.Close()
		<-progressDone
	}()

	in := s.cfg.Input
	departures, err := ingest.ReadDepartures(in.Departures, logger.New("ingest"))
	if err != nil {
		return res, err
	}
	plan, err := ingest.ReadYardPlan(in.Label, in.YardPlans, logger.New("ingest"))
	if err != nil {
		return res, err
	}

	analyzer, err := staging.NewAnalyzer(plan, s.cfg.Staging, s.sink, s.bus, logger.New("analyzer"))
	if err != nil {
		return res, err
	}
	analyzer.SetRun(s.runID, in.Label)
	res, err = analyzer.Run(ctx, departures)
	if err != nil {
		return res, err
	}

	writer := report.NewWriter(s.cfg.Output.Dir, logger.New("report"))
	if err := writer.Write(res); err != nil {
		return res, err
	}
	if s.cfg.Output.JSON {
		if err := writer.WriteJSON(res); err != nil {
			return res, err
		}
	}
	if s.cfg.Output.Chart {
		if err := s.writeChart(departures); err != nil {
			return res, err
		}
	}
	return res, nil
}

// narrate consumes bus events into progress log lines until the bus is
// closed. Per-train details are already logged by the analyzer; the
// narration keeps to run-level milestones.
func (s *Service) narrate() <-chan struct{} {
	sub := s.bus.Subscribe(64)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			switch e := ev.(type) {
			case events.BatchStartedEvent:
				s.log.Infof("run %s (%s): analyzing %d trains", e.RunID, e.Label, e.Trains)
			case events.BatchCompletedEvent:
				s.log.Infof("run %s (%s): %d trains, %d processed, %d skipped",
					e.RunID, e.Label, e.Stats.Total, e.Stats.Processed, e.Stats.Skipped)
			case events.TrainProcessedEvent:
				s.log.Debugf("run %s: train %s done", e.RunID, e.Summary.TrainID)
			case events.TrainSkippedEvent:
				s.log.Debugf("run %s: train %s skipped (%s)", e.RunID, e.TrainID, e.Reason)
			}
		}
	}()
	return done
}

// writeChart renders the yard wheel next to the report, with the inbound
// schedule overlaid when one is configured.
func (s *Service) writeChart(departures []model.DepartureRecord) error {
	var inbound []model.InboundRecord
	if s.cfg.Input.Inbound != "" {
		var err error
		inbound, err = ingest.ReadInbound(s.cfg.Input.Inbound, s.log)
		if err != nil {
			return err
		}
	}
	w := chart.Wheel{Title: s.cfg.Input.Label}
	path := filepath.Join(s.cfg.Output.Dir, "wheel.svg")
	if err := w.WriteFile(path, inbound, departures); err != nil {
		return err
	}
	s.log.Infof("wrote %s", path)
	return nil
}
