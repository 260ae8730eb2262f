package metrics

import (
	"time"

	"github.com/yardtools/yardcap/core/model"
)

// TrainResult represents one analyzed train to be recorded.
type TrainResult struct {
	RunID   string
	Label   string
	Summary model.TrainSummary
	Time    time.Time
}

// TrainSkip represents one train dropped from a batch.
type TrainSkip struct {
	RunID   string
	Label   string
	TrainID string
	Reason  model.SkipReason
	Time    time.Time
}

// BatchRecord captures the end-of-run statistics.
type BatchRecord struct {
	RunID    string
	Label    string
	Stats    model.BatchStats
	Duration time.Duration
	Time     time.Time
}

// RunSink records analysis outcomes for observability purposes.
type RunSink interface {
	RecordTrainResult(res TrainResult) error
	RecordTrainSkip(sk TrainSkip) error
	RecordBatch(rec BatchRecord) error
}

// NopSink implements RunSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordTrainResult(TrainResult) error { return nil }
func (NopSink) RecordTrainSkip(TrainSkip) error     { return nil }
func (NopSink) RecordBatch(BatchRecord) error       { return nil }
