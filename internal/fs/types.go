// internal/fs/types.go
package fs

import (
	"github.com/tamzrod/framfs/internal/device"
	"github.com/tamzrod/framfs/internal/layout"
)

// Header is the singleton filesystem header at device offset 0.
type Header struct {
	Magic         uint16
	Version       uint8
	FileCount     uint8
	NextDataAddr  uint32 // append cursor; only ever increases
	TotalDataSize uint32 // cumulative data bytes written
}

// Entry is one slot of the fixed file entry table. Slots are assigned
// in creation order and never reused.
type Entry struct {
	Name      string
	StartAddr uint32
	Length    uint32
	Flags     uint8
	FileType  uint8
}

// Active reports whether the entry is the one accepting appends.
func (e *Entry) Active() bool {
	return e.Flags&layout.FlagActive != 0
}

// Sealed reports whether the entry's length is permanently fixed.
func (e *Entry) Sealed() bool {
	return e.Flags&layout.FlagSealed != 0
}

// Valid reports whether the slot holds a file at all.
func (e *Entry) Valid() bool {
	return e.Flags&layout.FlagValid != 0
}

// KeyHeader heads the deduplicating key table.
type KeyHeader struct {
	Magic      uint16
	Version    uint8
	EntryCount uint8
}

// Key is a fixed-width hardware address.
type Key [layout.KeySize]byte

// KeyEntry is one slot of the key table. Index assignment is stable
// once created, so records can reference keys by index.
type KeyEntry struct {
	Key   Key
	Usage uint8 // saturating at 255
	Flags uint8
}

// Settings is the user settings block, the one mutably rewritten
// region of the data area.
type Settings struct {
	AdvInterval  uint16
	ScanInterval uint16
	SubjectID    string // up to SubjectIDLen-1 chars
	UploadPath   string // up to UploadPathLen-1 chars
}

// ADCConfig controls the waveform acquisition path. It is persisted
// in the settings block so a node resumes the same capture regime
// after a power cycle.
type ADCConfig struct {
	Mode            uint8
	OutputPeaksOnly bool
	ThresholdMV     uint16 // 0 means always trigger (timer mode)
	BufferSize      uint16 // samples per capture, 1..ADCMaxSamples
	DebounceMs      uint32
}

// FS is one filesystem instance over one device. Not safe for
// concurrent use: all mutation must be externally serialized.
type FS struct {
	dev       device.Device
	header    Header
	keyHeader KeyHeader
	settings  Settings
	adcConfig ADCConfig
	active    int // entry index of the active file, -1 if none
	ready     bool
}
