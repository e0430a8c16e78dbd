// internal/device/device.go
package device

import "fmt"

// Device abstracts a byte-addressable persistent memory part.
// The filesystem depends on geometry only: an addressable byte array
// with a fixed capacity. Transfers are blocking and bounds-checked.
type Device interface {
	// Read fills buf from the device starting at addr.
	Read(addr uint32, buf []byte) error
	// Write stores data to the device starting at addr.
	Write(addr uint32, data []byte) error
	// Capacity returns the device size in bytes.
	Capacity() uint32
}

// MaxTransfer bounds single transfer size. Larger operations are
// chunked by the caller to cap working-buffer usage.
const MaxTransfer = 256

// CheckBounds validates one transfer against a device capacity.
func CheckBounds(addr uint32, n int, capacity uint32) error {
	if n < 0 {
		return fmt.Errorf("device: negative transfer length %d", n)
	}
	end := uint64(addr) + uint64(n)
	if end > uint64(capacity) {
		return fmt.Errorf("device: transfer [%d,%d) exceeds capacity %d", addr, end, capacity)
	}
	return nil
}
