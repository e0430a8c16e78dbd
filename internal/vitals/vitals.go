// internal/vitals/vitals.go
package vitals

import (
	"errors"
	"fmt"
	"time"
)

// Clock and battery helpers for feeding the filesystem. The core
// consumes only the outputs: a period key, a minute-of-day, and a
// validated battery percentage.

// ErrBatteryRange is returned for readings outside the plausible
// cell voltage window.
var ErrBatteryRange = errors.New("vitals: battery reading out of range")

// Plausible battery window for a 3V lithium cell, in millivolts.
const (
	batteryEmptyMV = 2000
	batteryFullMV  = 3000
)

// DateKey returns the period key for t in YYMMDD form, e.g.
// 2024-01-20 -> 240120. Keys are totally ordered within a century,
// which is all the rotation logic needs.
func DateKey(t time.Time) uint32 {
	y, m, d := t.Date()
	return uint32(y%100)*10000 + uint32(m)*100 + uint32(d)
}

// MinuteOfDay returns the minute 0..1439 for t.
func MinuteOfDay(t time.Time) uint16 {
	return uint16(t.Hour()*60 + t.Minute())
}

// BatteryPercent converts a millivolt reading into a validated
// 0..100 percentage.
func BatteryPercent(mv uint16) (uint8, error) {
	if mv < batteryEmptyMV || mv > batteryFullMV+200 {
		return 0, fmt.Errorf("%w: %d mV", ErrBatteryRange, mv)
	}
	if mv >= batteryFullMV {
		return 100, nil
	}
	return uint8(uint32(mv-batteryEmptyMV) * 100 / (batteryFullMV - batteryEmptyMV)), nil
}
