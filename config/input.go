package config

import "fmt"

// InputConfig locates the two source tables of a batch run and names the
// operating alternative they describe.
type InputConfig struct {
	// Label tags the run with the operating alternative, e.g. "alt_1".
	Label string `json:"label"`
	// Departures is the path of the departure table CSV.
	Departures string `json:"departures"`
	// YardPlans lists one or more yard-plan CSVs merged row-wise into a
	// single plan.
	YardPlans []string `json:"yard_plans"`
	// Inbound optionally points at an inbound-train schedule CSV, used
	// only by the yard wheel chart.
	Inbound string `json:"inbound"`
}

// SetDefaults applies sane defaults.
func (c *InputConfig) SetDefaults() {
	if c.Label == "" {
		c.Label = "alt_1"
	}
}

// Validate checks mandatory fields.
func (c InputConfig) Validate() error {
	if c.Departures == "" {
		return fmt.Errorf("input: departures table path is required")
	}
	if len(c.YardPlans) == 0 {
		return fmt.Errorf("input: at least one yard plan path is required")
	}
	return nil
}
