// internal/fs/timefs.go
package fs

import (
	"errors"
	"fmt"

	"github.com/tamzrod/framfs/internal/layout"
)

// Rotated day files are standard sensor logs.
const fileTypeForRotation = layout.TypeSensorLog

const flagValidActive = layout.FlagValid | layout.FlagActive

// DateFunc supplies the current period key, an opaque totally-ordered
// value such as a YYMMDD date. The wrapper rotates files whenever the
// key changes, so callers never do date bookkeeping.
type DateFunc func() uint32

// TimeFS wraps FS with automatic day-file management. Every write
// entry point ensures the active file matches the current period key
// before delegating.
type TimeFS struct {
	fs          *FS
	dateKey     DateFunc
	currentKey  uint32
	currentName string
}

// NewTimeFS wraps an initialized filesystem. No file is created until
// the first write.
func NewTimeFS(f *FS, dateKey DateFunc) (*TimeFS, error) {
	if f == nil || !f.ready {
		return nil, ErrInit
	}
	if dateKey == nil {
		return nil, fmt.Errorf("%w: nil date function", ErrInit)
	}
	t := &TimeFS{fs: f, dateKey: dateKey}
	t.currentKey = dateKey()
	t.currentName = filenameForKey(t.currentKey)
	return t, nil
}

// FS returns the wrapped filesystem for read-side operations.
func (t *TimeFS) FS() *FS {
	return t.fs
}

// EnsureCurrentFile seals and rotates so that the active file is the
// one named after the current period key. With an unchanged key and
// an active file it is a no-op.
func (t *TimeFS) EnsureCurrentFile() error {
	key := t.dateKey()
	if key == t.currentKey && t.fs.active >= 0 {
		return nil
	}

	if t.fs.active >= 0 {
		if err := t.fs.SealActive(); err != nil {
			return err
		}
	}

	t.currentKey = key
	t.currentName = filenameForKey(key)

	err := t.fs.CreateActive(t.currentName, fileTypeForRotation)
	if errors.Is(err, ErrExists) {
		return t.reuseExisting(t.currentName)
	}
	return err
}

// reuseExisting handles rotation onto a name that is already in the
// table: an entry still flagged active is adopted as-is; a sealed one
// is reset in place to start fresh at the current append cursor.
func (t *TimeFS) reuseExisting(name string) error {
	idx := t.fs.findFile(name)
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var e Entry
	if err := t.fs.readEntry(idx, &e); err != nil {
		return err
	}

	if e.Active() {
		t.fs.active = idx
		return nil
	}

	if err := t.fs.readHeader(); err != nil {
		return err
	}
	e.StartAddr = t.fs.header.NextDataAddr
	e.Length = 0
	e.Flags = flagValidActive
	if err := t.fs.writeEntry(idx, &e); err != nil {
		return err
	}
	t.fs.active = idx
	return nil
}

// AppendData ensures the day file then appends raw bytes.
func (t *TimeFS) AppendData(data []byte) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.Append(data)
}

// AppendDeviceScan ensures the day file then appends a scan record.
func (t *TimeFS) AppendDeviceScan(minute uint16, motion uint8, keys []Key, rssi []int8) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.AppendDeviceScan(minute, motion, keys, rssi)
}

// AppendSimple ensures the day file then appends an event record.
func (t *TimeFS) AppendSimple(minute uint16, recordType uint8) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.AppendSimple(minute, recordType)
}

// AppendBattery ensures the day file then appends a battery record.
func (t *TimeFS) AppendBattery(minute uint16, level uint8) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.AppendBattery(minute, level)
}

// AppendTemperature ensures the day file then appends a temperature
// record.
func (t *TimeFS) AppendTemperature(minute uint16, degrees int8) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.AppendTemperature(minute, degrees)
}

// AppendADCBurst ensures the day file then appends a timer-burst
// capture.
func (t *TimeFS) AppendADCBurst(timestamp, microOffset uint32, samples []byte, durationUS uint32) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.AppendADCBurst(timestamp, microOffset, samples, durationUS)
}

// AppendADCEvent ensures the day file then appends a waveform capture
// of any event type.
func (t *TimeFS) AppendADCEvent(timestamp, microOffset uint32, eventType uint8,
	samples []byte, durationUS uint32, peakPositive, peakNegative uint8) error {
	if err := t.EnsureCurrentFile(); err != nil {
		return err
	}
	return t.fs.AppendADCEvent(timestamp, microOffset, eventType,
		samples, durationUS, peakPositive, peakNegative)
}

// CurrentFilename returns the filename for the current period key.
func (t *TimeFS) CurrentFilename() string {
	return t.currentName
}

// AdvanceToNextDay forces a key re-read and rotation check, for
// callers that want the day boundary handled eagerly instead of on
// the next write.
func (t *TimeFS) AdvanceToNextDay() error {
	t.currentKey = 0 // force mismatch
	return t.EnsureCurrentFile()
}

func filenameForKey(key uint32) string {
	return fmt.Sprintf("%06d", key)
}
