// internal/device/file.go
package device

import (
	"fmt"
	"os"
)

// File is a Device backed by a fixed-size image file on the host,
// for inspecting or preparing dumped memory images.
type File struct {
	f        *os.File
	capacity uint32
}

// OpenFile opens (or creates) an image file and sizes it to capacity.
// An existing image larger than capacity is rejected rather than
// silently truncated.
func OpenFile(path string, capacity uint32) (*File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("device: open image %s: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("device: stat image %s: %w", path, err)
	}
	if fi.Size() > int64(capacity) {
		f.Close()
		return nil, fmt.Errorf("device: image %s is %d bytes, larger than capacity %d",
			path, fi.Size(), capacity)
	}
	if fi.Size() < int64(capacity) {
		if err := f.Truncate(int64(capacity)); err != nil {
			f.Close()
			return nil, fmt.Errorf("device: size image %s: %w", path, err)
		}
	}

	return &File{f: f, capacity: capacity}, nil
}

func (d *File) Read(addr uint32, buf []byte) error {
	if err := CheckBounds(addr, len(buf), d.capacity); err != nil {
		return err
	}
	if _, err := d.f.ReadAt(buf, int64(addr)); err != nil {
		return fmt.Errorf("device: read at %d: %w", addr, err)
	}
	return nil
}

func (d *File) Write(addr uint32, data []byte) error {
	if err := CheckBounds(addr, len(data), d.capacity); err != nil {
		return err
	}
	if _, err := d.f.WriteAt(data, int64(addr)); err != nil {
		return fmt.Errorf("device: write at %d: %w", addr, err)
	}
	return nil
}

func (d *File) Capacity() uint32 {
	return d.capacity
}

// Close closes the underlying image file.
func (d *File) Close() error {
	return d.f.Close()
}
