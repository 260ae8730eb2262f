package metrics

import (
	"fmt"

	coremetrics "github.com/yardtools/yardcap/core/metrics"
)

// NewSink builds the configured sink stack. Prometheus and Influx are both
// optional; with neither enabled the batch records through a NopSink, and
// with both a MultiSink fans out.
func NewSink(cfg coremetrics.Config) (coremetrics.RunSink, error) {
	var sinks []coremetrics.RunSink
	if cfg.PrometheusEnabled {
		ps, err := NewPromSink()
		if err != nil {
			return nil, fmt.Errorf("prometheus sink: %w", err)
		}
		sinks = append(sinks, ps)
	}
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return NewMultiSink(sinks...), nil
	}
}
