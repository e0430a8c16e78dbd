// internal/device/mem.go
package device

// Mem is a Device backed by a byte slice. Used by tests and for
// dry-running against no hardware.
type Mem struct {
	buf []byte
}

// NewMem creates an in-memory device of the given capacity, zeroed.
func NewMem(capacity uint32) *Mem {
	return &Mem{buf: make([]byte, capacity)}
}

func (m *Mem) Read(addr uint32, buf []byte) error {
	if err := CheckBounds(addr, len(buf), m.Capacity()); err != nil {
		return err
	}
	copy(buf, m.buf[addr:])
	return nil
}

func (m *Mem) Write(addr uint32, data []byte) error {
	if err := CheckBounds(addr, len(data), m.Capacity()); err != nil {
		return err
	}
	copy(m.buf[addr:], data)
	return nil
}

func (m *Mem) Capacity() uint32 {
	return uint32(len(m.buf))
}
