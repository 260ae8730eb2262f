package metrics

import "fmt"

// Config defines settings for metrics sinks. All sinks are optional; with
// everything disabled the analyzer records through a NopSink.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    int    `json:"prometheus_port"`
	InfluxEnabled     bool   `json:"influx_enabled"`
	InfluxURL         string `json:"influx_url"`
	InfluxToken       string `json:"influx_token"`
	InfluxOrg         string `json:"influx_org"`
	InfluxBucket      string `json:"influx_bucket"`
}

// SetDefaults fills unset values.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == 0 {
		c.PrometheusPort = 2112
	}
}

// Validate checks sink settings for consistency.
func (c *Config) Validate() error {
	if c.PrometheusEnabled && (c.PrometheusPort <= 0 || c.PrometheusPort > 65535) {
		return fmt.Errorf("metrics: invalid prometheus port %d", c.PrometheusPort)
	}
	if c.InfluxEnabled {
		if c.InfluxURL == "" {
			return fmt.Errorf("metrics: influx enabled without url")
		}
		if c.InfluxOrg == "" || c.InfluxBucket == "" {
			return fmt.Errorf("metrics: influx enabled without org/bucket")
		}
	}
	return nil
}
