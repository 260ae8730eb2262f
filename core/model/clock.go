package model

import (
	"fmt"
	"strconv"
	"strings"
)

// HoursPerDay is the length of the operating day. Every series in this
// package is indexed by hour 0..HoursPerDay-1.
const HoursPerDay = 24

// ClockTime is a time of day with minute resolution. Yard plans and
// departure schedules never carry dates, only wall-clock slots.
type ClockTime struct {
	Hour   int // 0..23
	Minute int // 0..59
}

// ParseClock parses "H", "H:MM" or "H:MM:SS" into a ClockTime. Seconds are
// accepted and discarded. Text that does not resolve to a valid time of day
// is an error; callers decide whether that is a skip or a failure.
func ParseClock(text string) (ClockTime, error) {
	s := strings.TrimSpace(text)
	if s == "" {
		return ClockTime{}, fmt.Errorf("empty time")
	}
	parts := strings.Split(s, ":")
	if len(parts) > 3 {
		return ClockTime{}, fmt.Errorf("malformed time %q", text)
	}
	hour, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ClockTime{}, fmt.Errorf("malformed hour in %q", text)
	}
	if hour < 0 || hour >= HoursPerDay {
		return ClockTime{}, fmt.Errorf("hour %d out of range in %q", hour, text)
	}
	minute := 0
	if len(parts) > 1 {
		minute, err = strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || minute < 0 || minute > 59 {
			return ClockTime{}, fmt.Errorf("malformed minute in %q", text)
		}
	}
	return ClockTime{Hour: hour, Minute: minute}, nil
}

// ParseSlotHour reduces a time-slot cell to its hour, discarding minutes.
// The bool reports whether the cell held a usable time.
func ParseSlotHour(text string) (int, bool) {
	ct, err := ParseClock(text)
	if err != nil {
		return 0, false
	}
	return ct.Hour, true
}

// String renders the time as "H:MM", matching the slot labels used in yard
// plan exports.
func (c ClockTime) String() string {
	return fmt.Sprintf("%d:%02d", c.Hour, c.Minute)
}

// DayFraction returns the position of the time within the operating day in
// [0,1). Hour 0 maps to 0, 18:00 to 0.75. Used by the wheel chart.
func (c ClockTime) DayFraction() float64 {
	return (float64(c.Hour) + float64(c.Minute)/60) / HoursPerDay
}
