// internal/fs/fs.go
package fs

import (
	"fmt"

	"github.com/tamzrod/framfs/internal/device"
	"github.com/tamzrod/framfs/internal/layout"
)

// New mounts a filesystem on dev.
//
// An unformatted or unrecognized device (bad header magic) is an
// expected first-boot state and triggers an automatic Format. A
// version mismatch with a good magic is accepted for reading. The key
// table and settings block are likewise initialized in place when
// their magics are invalid.
func New(dev device.Device) (*FS, error) {
	if dev == nil {
		return nil, fmt.Errorf("%w: nil device", ErrInit)
	}
	if err := layout.Check(dev.Capacity()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInit, err)
	}

	f := &FS{dev: dev, active: -1}

	if err := f.readHeader(); err != nil {
		return nil, err
	}
	if f.header.Magic != layout.Magic {
		if err := f.Format(); err != nil {
			return nil, err
		}
	}
	if err := f.checkHeader(); err != nil {
		return nil, err
	}

	var kh KeyHeader
	if err := f.readKeyHeader(&kh); err != nil {
		return nil, err
	}
	f.keyHeader = kh
	if f.keyHeader.Magic != layout.KeyTableMagic {
		if err := f.ClearKeys(); err != nil {
			return nil, err
		}
	}

	if err := f.readSettings(); err != nil {
		return nil, err
	}

	// Pick up an active file left behind by a previous run.
	f.active = f.findActive()
	f.ready = true
	return f, nil
}

// Format rewrites the header to its initial state and zeroes the file
// entry table, key table, and settings. All prior data becomes
// unreachable.
func (f *FS) Format() error {
	f.header = Header{
		Magic:        layout.Magic,
		Version:      layout.Version,
		FileCount:    0,
		NextDataAddr: layout.DataStart(),
	}
	if err := f.writeHeader(); err != nil {
		return err
	}

	zero := make([]byte, layout.EntrySize)
	for i := 0; i < layout.MaxFiles; i++ {
		if err := f.writeAt(layout.EntryAddr(i), zero); err != nil {
			return err
		}
	}
	f.active = -1

	if err := f.ClearKeys(); err != nil {
		return err
	}
	return f.ClearSettings()
}

// checkHeader rejects a header whose fields cannot describe this
// device: the magic matched but the metadata is corrupt.
func (f *FS) checkHeader() error {
	if int(f.header.FileCount) > layout.MaxFiles {
		return fmt.Errorf("%w: file count %d", ErrInvalid, f.header.FileCount)
	}
	if f.header.NextDataAddr < layout.DataStart() || f.header.NextDataAddr > f.dev.Capacity() {
		return fmt.Errorf("%w: append cursor 0x%06X", ErrInvalid, f.header.NextDataAddr)
	}
	return nil
}

// Stats returns a snapshot of the header, re-read from the device.
func (f *FS) Stats() (Header, error) {
	if !f.ready {
		return Header{}, ErrInit
	}
	if err := f.readHeader(); err != nil {
		return Header{}, err
	}
	return f.header, nil
}

// Capacity returns the underlying device capacity in bytes.
func (f *FS) Capacity() uint32 {
	return f.dev.Capacity()
}

// ---- chunked device IO ----

func (f *FS) readAt(addr uint32, buf []byte) error {
	for len(buf) > 0 {
		n := len(buf)
		if n > device.MaxTransfer {
			n = device.MaxTransfer
		}
		if err := f.dev.Read(addr, buf[:n]); err != nil {
			return err
		}
		addr += uint32(n)
		buf = buf[n:]
	}
	return nil
}

func (f *FS) writeAt(addr uint32, data []byte) error {
	for len(data) > 0 {
		n := len(data)
		if n > device.MaxTransfer {
			n = device.MaxTransfer
		}
		if err := f.dev.Write(addr, data[:n]); err != nil {
			return err
		}
		addr += uint32(n)
		data = data[n:]
	}
	return nil
}

// ---- metadata load/persist ----

func (f *FS) readHeader() error {
	buf := make([]byte, layout.HeaderSize)
	if err := f.readAt(layout.HeaderAddr(), buf); err != nil {
		return err
	}
	unpackHeader(buf, &f.header)
	return nil
}

func (f *FS) writeHeader() error {
	return f.writeAt(layout.HeaderAddr(), packHeader(&f.header))
}

func (f *FS) readEntry(i int, e *Entry) error {
	if i < 0 || i >= layout.MaxFiles {
		return fmt.Errorf("%w: entry index %d", ErrSize, i)
	}
	buf := make([]byte, layout.EntrySize)
	if err := f.readAt(layout.EntryAddr(i), buf); err != nil {
		return err
	}
	unpackEntry(buf, e)
	return nil
}

func (f *FS) writeEntry(i int, e *Entry) error {
	if i < 0 || i >= layout.MaxFiles {
		return fmt.Errorf("%w: entry index %d", ErrSize, i)
	}
	return f.writeAt(layout.EntryAddr(i), packEntry(e))
}

// findFile returns the entry index of a valid file by name, -1 on miss.
func (f *FS) findFile(name string) int {
	for i := 0; i < int(f.header.FileCount); i++ {
		var e Entry
		if err := f.readEntry(i, &e); err != nil {
			continue
		}
		if e.Valid() && e.Name == name {
			return i
		}
	}
	return -1
}

// findActive returns the index of the single active entry, -1 if none.
func (f *FS) findActive() int {
	for i := 0; i < int(f.header.FileCount); i++ {
		var e Entry
		if err := f.readEntry(i, &e); err != nil {
			continue
		}
		if e.Valid() && e.Active() {
			return i
		}
	}
	return -1
}
