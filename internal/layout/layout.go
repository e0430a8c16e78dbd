// internal/layout/layout.go
package layout

import "fmt"

// Offset functions for the fixed on-device regions. Everything is
// derived from the constants in this package so the layout is fully
// deterministic: header, file entry table, key table, user settings,
// then the growing data region.

// HeaderAddr returns the address of the filesystem header.
func HeaderAddr() uint32 {
	return 0
}

// EntryAddr returns the address of file entry i.
func EntryAddr(i int) uint32 {
	return HeaderSize + uint32(i)*EntrySize
}

// KeyTableAddr returns the address of the key table header.
func KeyTableAddr() uint32 {
	return HeaderSize + MaxFiles*EntrySize
}

// KeyEntryAddr returns the address of key entry i.
func KeyEntryAddr(i int) uint32 {
	return KeyTableAddr() + KeyHeaderSize + uint32(i)*KeyEntrySize
}

// SettingsAddr returns the address of the user settings block.
func SettingsAddr() uint32 {
	return KeyTableAddr() + KeyHeaderSize + MaxKeys*KeyEntrySize
}

// DataStart returns the first byte of the data region.
func DataStart() uint32 {
	return SettingsAddr() + SettingsSize
}

// Check validates that the fixed metadata regions fit the device.
// Called once at init; a failure means the device is unusable.
func Check(capacity uint32) error {
	if capacity <= DataStart() {
		return fmt.Errorf("layout: capacity %d leaves no data region (fixed tables end at %d)",
			capacity, DataStart())
	}
	return nil
}
