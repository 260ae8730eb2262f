package metrics

import coremetrics "github.com/yardtools/yardcap/core/metrics"

// MultiSink fans batch outcomes out to multiple sinks.
type MultiSink struct {
	Sinks []coremetrics.RunSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...coremetrics.RunSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordTrainResult forwards the record to all sinks, returning the first
// error encountered.
func (m *MultiSink) RecordTrainResult(r coremetrics.TrainResult) error {
	for _, s := range m.Sinks {
		if err := s.RecordTrainResult(r); err != nil {
			return err
		}
	}
	return nil
}

// RecordTrainSkip forwards skip records.
func (m *MultiSink) RecordTrainSkip(sk coremetrics.TrainSkip) error {
	for _, s := range m.Sinks {
		if err := s.RecordTrainSkip(sk); err != nil {
			return err
		}
	}
	return nil
}

// RecordBatch forwards batch statistics.
func (m *MultiSink) RecordBatch(rec coremetrics.BatchRecord) error {
	for _, s := range m.Sinks {
		if err := s.RecordBatch(rec); err != nil {
			return err
		}
	}
	return nil
}
