package model

// SkipReason classifies why a train produced no TrainSummary. Skips are the
// normal shape of noisy yard data, not failures; each one surfaces as a
// warning line, an event, and a metric label.
type SkipReason int

const (
	// SkipNotFound: the train is never referenced in any pull column, so its
	// clearing hour (and therefore its operating cycle) is undefined.
	SkipNotFound SkipReason = iota
	// SkipNoBlocks: the departure record carries an empty or unparsable
	// block list; there is nothing to attribute arrivals to.
	SkipNoBlocks
	// SkipNoHours: no yard-plan row with a parsable, non-excluded hour
	// existed for this train.
	SkipNoHours
)

// String returns the reason label used in logs and metrics.
func (r SkipReason) String() string {
	switch r {
	case SkipNotFound:
		return "not_found"
	case SkipNoBlocks:
		return "no_blocks"
	case SkipNoHours:
		return "no_hours"
	default:
		return "unknown"
	}
}
