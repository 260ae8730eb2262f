// Package events defines the batch analysis events emitted on the event bus.
//
// Available event types:
//   - BatchStartedEvent: a run begins, with the departure count
//   - TrainProcessedEvent: one train fully analyzed
//   - TrainSkippedEvent: one train dropped, with its skip reason
//   - BatchCompletedEvent: end-of-run statistics
package events
