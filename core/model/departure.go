package model

import (
	"fmt"
	"strings"
)

// DepartureRecord is one outbound train in the departure schedule: when it
// leaves and which departure blocks it collects. Records are immutable once
// loaded.
type DepartureRecord struct {
	TrainID   string
	Departure ClockTime
	Blocks    []string // ordered block codes, e.g. ["CHBR", "CHG"]
}

// Validate checks that the record can be processed at all. An empty block
// list is not a validation error; it is a per-train skip (NoValidBlocks).
func (d DepartureRecord) Validate() error {
	if strings.TrimSpace(d.TrainID) == "" {
		return fmt.Errorf("departure record without train id")
	}
	return nil
}

// ParseBlockList splits a comma-separated block list cell ("CHBR, CHG")
// into trimmed codes, dropping empties.
func ParseBlockList(cell string) []string {
	var blocks []string
	for _, b := range strings.Split(cell, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			blocks = append(blocks, b)
		}
	}
	return blocks
}
