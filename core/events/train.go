package events

import "github.com/yardtools/yardcap/core/model"

// TrainProcessedEvent is published once a train's car-hours curve and
// summary have been computed.
type TrainProcessedEvent struct {
	RunID   string
	Summary model.TrainSummary
}

// TrainSkippedEvent is published for each train dropped from the batch.
type TrainSkippedEvent struct {
	RunID   string
	TrainID string
	Reason  model.SkipReason
}
