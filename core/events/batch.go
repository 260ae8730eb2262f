package events

import "github.com/yardtools/yardcap/core/model"

// BatchStartedEvent is published when a run begins.
type BatchStartedEvent struct {
	RunID  string
	Label  string
	Trains int
}

// BatchCompletedEvent closes a run with its final statistics.
type BatchCompletedEvent struct {
	RunID string
	Label string
	Stats model.BatchStats
}
