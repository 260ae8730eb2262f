package config

import "fmt"

// OutputConfig defines where and how the batch report is written.
type OutputConfig struct {
	// Dir is the report directory; created if missing.
	Dir string `json:"dir"`
	// JSON additionally writes the whole batch result as result.json.
	JSON bool `json:"json"`
	// Chart additionally renders the 24-hour yard wheel SVG.
	Chart bool `json:"chart"`
}

// SetDefaults applies sane defaults.
func (c *OutputConfig) SetDefaults() {
	if c.Dir == "" {
		c.Dir = "out"
	}
}

// Validate checks mandatory fields.
func (c OutputConfig) Validate() error {
	if c.Dir == "" {
		return fmt.Errorf("output: dir is required")
	}
	return nil
}
