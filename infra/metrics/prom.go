package metrics

import (
	coremetrics "github.com/yardtools/yardcap/core/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// PromSink records batch outcomes in Prometheus metrics.
type PromSink struct {
	processed *prometheus.CounterVec
	skipped   *prometheus.CounterVec
	carHours  *prometheus.HistogramVec
	batchSize prometheus.Gauge
}

// NewPromSink registers the yard metrics on the default Prometheus
// registerer. The metrics server is started separately.
func NewPromSink() (coremetrics.RunSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (coremetrics.RunSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	processed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yard_trains_processed_total",
		Help: "Total number of trains fully analyzed",
	}, []string{"alternative"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "yard_trains_skipped_total",
		Help: "Total number of trains skipped, by reason",
	}, []string{"alternative", "reason"})
	carHours := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yard_train_car_hours",
		Help:    "Total car-hours per analyzed train",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	}, []string{"alternative"})
	batchSize := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "yard_batch_trains",
		Help: "Number of trains in the last departure table analyzed",
	})

	if err := reg.Register(processed); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			processed = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(skipped); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			skipped = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(carHours); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			carHours = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(batchSize); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			batchSize = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{processed: processed, skipped: skipped, carHours: carHours, batchSize: batchSize}, nil
}

// RecordTrainResult counts the train and observes its car-hours total.
func (s *PromSink) RecordTrainResult(r coremetrics.TrainResult) error {
	s.processed.WithLabelValues(r.Label).Inc()
	s.carHours.WithLabelValues(r.Label).Observe(r.Summary.TotalCarHours)
	return nil
}

// RecordTrainSkip counts the skip under its reason label.
func (s *PromSink) RecordTrainSkip(sk coremetrics.TrainSkip) error {
	s.skipped.WithLabelValues(sk.Label, sk.Reason.String()).Inc()
	return nil
}

// RecordBatch sets the batch size gauge.
func (s *PromSink) RecordBatch(rec coremetrics.BatchRecord) error {
	s.batchSize.Set(float64(rec.Stats.Total))
	return nil
}
