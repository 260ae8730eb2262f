// Package metrics defines interfaces for recording batch analysis
// outcomes. Sinks like PromSink and InfluxSink record per-train results
// and end-of-run statistics and can be combined with NewMultiSink. With no
// sink configured the analyzer records through NopSink.
package metrics
