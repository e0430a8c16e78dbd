// internal/fs/files.go
package fs

import (
	"fmt"

	"github.com/tamzrod/framfs/internal/layout"
)

// CreateActive appends a new file entry and makes it the active file.
// Any currently active file is sealed first; the seal fully commits
// before the new entry is written. The new file's data region starts
// exactly at the append cursor.
func (f *FS) CreateActive(name string, fileType uint8) error {
	if !f.ready {
		return ErrInit
	}
	if len(name) == 0 || len(name) >= layout.FilenameLen {
		return fmt.Errorf("%w: filename %q", ErrSize, name)
	}
	if f.findFile(name) >= 0 {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}
	if int(f.header.FileCount) >= layout.MaxFiles {
		return fmt.Errorf("%w: file table at %d entries", ErrFull, layout.MaxFiles)
	}

	if f.active >= 0 {
		if err := f.SealActive(); err != nil {
			return err
		}
	}

	e := Entry{
		Name:      name,
		StartAddr: f.header.NextDataAddr,
		Length:    0,
		Flags:     layout.FlagValid | layout.FlagActive,
		FileType:  fileType,
	}

	idx := int(f.header.FileCount)
	if err := f.writeEntry(idx, &e); err != nil {
		return err
	}

	f.header.FileCount++
	if err := f.writeHeader(); err != nil {
		return err
	}

	f.active = idx
	return nil
}

// Append writes data to the end of the active file. Data lands on the
// device before entry and header metadata are updated, so a crash
// mid-append leaves stray unreferenced bytes rather than metadata
// pointing at unwritten ones.
func (f *FS) Append(data []byte) error {
	if !f.ready {
		return ErrInit
	}
	if len(data) == 0 {
		return fmt.Errorf("%w: empty append", ErrSize)
	}
	if f.active < 0 {
		return ErrNoActiveFile
	}

	var e Entry
	if err := f.readEntry(f.active, &e); err != nil {
		return err
	}
	// The tracked entry may have been sealed underneath us.
	if !e.Active() {
		return fmt.Errorf("%w: %s", ErrReadOnly, e.Name)
	}

	writeAddr := e.StartAddr + e.Length
	if uint64(writeAddr)+uint64(len(data)) > uint64(f.dev.Capacity()) {
		return fmt.Errorf("%w: append of %d bytes exceeds capacity", ErrFull, len(data))
	}

	if err := f.writeAt(writeAddr, data); err != nil {
		return err
	}

	e.Length += uint32(len(data))
	if err := f.writeEntry(f.active, &e); err != nil {
		return err
	}

	f.header.NextDataAddr = writeAddr + uint32(len(data))
	f.header.TotalDataSize += uint32(len(data))
	return f.writeHeader()
}

// SealActive marks the active file read-only. Idempotent: sealing
// with no active file succeeds.
func (f *FS) SealActive() error {
	if !f.ready {
		return ErrInit
	}
	if f.active < 0 {
		return nil
	}

	var e Entry
	if err := f.readEntry(f.active, &e); err != nil {
		return err
	}

	e.Flags &^= layout.FlagActive
	e.Flags |= layout.FlagSealed
	if err := f.writeEntry(f.active, &e); err != nil {
		return err
	}

	f.active = -1
	return nil
}

// Read copies up to maxLen bytes from a file starting at off. The
// length is clamped to what remains; reading at or past the end is
// an error.
func (f *FS) Read(name string, off uint32, maxLen int) ([]byte, error) {
	if !f.ready {
		return nil, ErrInit
	}
	if maxLen <= 0 {
		return nil, fmt.Errorf("%w: read length %d", ErrSize, maxLen)
	}

	idx := f.findFile(name)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	var e Entry
	if err := f.readEntry(idx, &e); err != nil {
		return nil, err
	}

	if off >= e.Length {
		return nil, fmt.Errorf("%w: offset %d beyond length %d", ErrSize, off, e.Length)
	}

	n := e.Length - off
	if uint32(maxLen) < n {
		n = uint32(maxLen)
	}

	buf := make([]byte, n)
	if err := f.readAt(e.StartAddr+off, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// FileSize returns the current length of a file in bytes.
func (f *FS) FileSize(name string) (uint32, error) {
	e, err := f.FileInfo(name)
	if err != nil {
		return 0, err
	}
	return e.Length, nil
}

// FileInfo returns the entry for a file by name.
func (f *FS) FileInfo(name string) (Entry, error) {
	if !f.ready {
		return Entry{}, ErrInit
	}
	idx := f.findFile(name)
	if idx < 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	var e Entry
	if err := f.readEntry(idx, &e); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// ListFiles returns the names of all valid files in creation order.
func (f *FS) ListFiles() ([]string, error) {
	if !f.ready {
		return nil, ErrInit
	}
	var names []string
	for i := 0; i < int(f.header.FileCount); i++ {
		var e Entry
		if err := f.readEntry(i, &e); err != nil {
			continue
		}
		if e.Valid() {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

// ActiveFilename returns the name of the active file.
func (f *FS) ActiveFilename() (string, error) {
	if !f.ready {
		return "", ErrInit
	}
	if f.active < 0 {
		return "", ErrNoActiveFile
	}
	var e Entry
	if err := f.readEntry(f.active, &e); err != nil {
		return "", err
	}
	return e.Name, nil
}
