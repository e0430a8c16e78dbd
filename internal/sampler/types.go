// internal/sampler/types.go
package sampler

import (
	"time"

	"github.com/tamzrod/framfs/internal/fs"
)

// Source abstracts the sensor hardware one cycle reads from.
// Geometry only: no retry, no caching.
type Source interface {
	// Scan returns the proximity devices seen since the last cycle.
	Scan() (ScanResult, error)
	// BatteryMillivolts returns the raw cell voltage reading.
	BatteryMillivolts() (uint16, error)
	// TemperatureC returns the ambient temperature in whole degrees.
	TemperatureC() (int8, error)
}

// ScanResult is the raw outcome of one proximity scan.
type ScanResult struct {
	Motion uint8
	Keys   []fs.Key
	RSSI   []int8
}

// Sink is the exact contract the sampler writes through.
// Satisfied by fs.TimeFS.
type Sink interface {
	AppendDeviceScan(minute uint16, motion uint8, keys []fs.Key, rssi []int8) error
	AppendSimple(minute uint16, recordType uint8) error
	AppendBattery(minute uint16, level uint8) error
	AppendTemperature(minute uint16, degrees int8) error
}

// Result is a snapshot produced by one sample cycle.
type Result struct {
	At      time.Time
	Records int   // records appended this cycle
	Err     error // non-nil means the cycle failed partway
}
