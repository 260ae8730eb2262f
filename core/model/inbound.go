package model

// InboundRecord is one arriving train in the inbound schedule. It carries
// no block information; inbound trains only appear on the yard wheel
// chart, opposite the outbound departures.
type InboundRecord struct {
	TrainID string
	Arrival ClockTime
}
