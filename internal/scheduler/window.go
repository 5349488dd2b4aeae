// Package scheduler decides when the active theme should switch, driven
// by a fixed tick and by OS appearance changes, and funnels every switch
// through the apply orchestrator.
package scheduler

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// parseHHMM parses a "HH:MM" boundary into a minute-of-day value.
func parseHHMM(s string) (int, error) {
	hh, mm, found := strings.Cut(s, ":")
	if !found {
		return 0, fmt.Errorf("invalid time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour*60 + minute, nil
}

// minuteOfDay converts a wall-clock time to minutes since midnight.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// darkActive reports whether the dark window covers the given minute.
//
// Normal case (light < dark): dark spans [dark, 24:00) and [0:00, light).
// Inverted case (light >= dark): dark spans [dark, light), crossing
// nothing; the light window wraps midnight instead.
func darkActive(now, light, dark int) bool {
	if light < dark {
		return now >= dark || now < light
	}
	return now >= dark && now < light
}
