// internal/fs/keytable.go
package fs

import (
	"fmt"

	"github.com/tamzrod/framfs/internal/layout"
)

// Deduplicating key table: records reference repeated hardware
// addresses by a stable small index instead of repeating the 6-byte
// key. Lookup is a linear scan, acceptable at MaxKeys entries on a
// bus this slow.

// FindOrAddKey returns the table index for key, inserting it if new.
// An existing key gets its usage counter incremented (saturating at
// 255). Inserting into a full table fails with ErrKeyTableFull.
func (f *FS) FindOrAddKey(key Key) (uint8, error) {
	if !f.ready {
		return 0, ErrInit
	}

	if idx, err := f.FindKey(key); err == nil {
		return idx, f.incrementKeyUsage(idx)
	}

	if int(f.keyHeader.EntryCount) >= layout.MaxKeys {
		return 0, fmt.Errorf("%w: %d entries", ErrKeyTableFull, layout.MaxKeys)
	}

	e := KeyEntry{Key: key, Usage: 1, Flags: layout.FlagValid}
	idx := f.keyHeader.EntryCount
	if err := f.writeKeyEntry(int(idx), &e); err != nil {
		return 0, err
	}

	f.keyHeader.EntryCount++
	if err := f.writeKeyHeader(); err != nil {
		return 0, err
	}
	return idx, nil
}

// FindKey returns the table index of key without mutating anything.
func (f *FS) FindKey(key Key) (uint8, error) {
	if !f.ready {
		return 0, ErrInit
	}
	for i := 0; i < int(f.keyHeader.EntryCount); i++ {
		var e KeyEntry
		if err := f.readKeyEntry(i, &e); err != nil {
			continue
		}
		if e.Flags&layout.FlagValid != 0 && e.Key == key {
			return uint8(i), nil
		}
	}
	return 0, ErrKeyNotFound
}

// KeyByIndex returns the key stored at a table index.
func (f *FS) KeyByIndex(idx uint8) (Key, error) {
	if !f.ready {
		return Key{}, ErrInit
	}
	if int(idx) >= int(f.keyHeader.EntryCount) {
		return Key{}, fmt.Errorf("%w: key index %d of %d", ErrSize, idx, f.keyHeader.EntryCount)
	}
	var e KeyEntry
	if err := f.readKeyEntry(int(idx), &e); err != nil {
		return Key{}, err
	}
	if e.Flags&layout.FlagValid == 0 {
		return Key{}, fmt.Errorf("%w: key index %d not valid", ErrKeyNotFound, idx)
	}
	return e.Key, nil
}

// Keys returns every valid key in index order, for bulk export. The
// slice offset of each key is its table index.
func (f *FS) Keys() ([]Key, error) {
	if !f.ready {
		return nil, ErrInit
	}
	keys := make([]Key, 0, f.keyHeader.EntryCount)
	for i := 0; i < int(f.keyHeader.EntryCount); i++ {
		var e KeyEntry
		if err := f.readKeyEntry(i, &e); err != nil {
			return nil, err
		}
		keys = append(keys, e.Key)
	}
	return keys, nil
}

// KeyStats returns the entry count and the sum of usage counters.
func (f *FS) KeyStats() (count uint8, totalUsage uint32, err error) {
	if !f.ready {
		return 0, 0, ErrInit
	}
	for i := 0; i < int(f.keyHeader.EntryCount); i++ {
		var e KeyEntry
		if err := f.readKeyEntry(i, &e); err != nil {
			return 0, 0, err
		}
		totalUsage += uint32(e.Usage)
	}
	return f.keyHeader.EntryCount, totalUsage, nil
}

// ClearKeys resets the key table header and zeroes all entries.
func (f *FS) ClearKeys() error {
	f.keyHeader = KeyHeader{
		Magic:      layout.KeyTableMagic,
		Version:    layout.KeyTableVersion,
		EntryCount: 0,
	}
	if err := f.writeKeyHeader(); err != nil {
		return err
	}

	zero := make([]byte, layout.KeyEntrySize)
	for i := 0; i < layout.MaxKeys; i++ {
		if err := f.writeAt(layout.KeyEntryAddr(i), zero); err != nil {
			return err
		}
	}
	return nil
}

// ---- stored-form helpers ----

func (f *FS) incrementKeyUsage(idx uint8) error {
	var e KeyEntry
	if err := f.readKeyEntry(int(idx), &e); err != nil {
		return err
	}
	if e.Flags&layout.FlagValid == 0 {
		return fmt.Errorf("%w: key index %d not valid", ErrKeyNotFound, idx)
	}
	if e.Usage < 255 {
		e.Usage++
		return f.writeKeyEntry(int(idx), &e)
	}
	return nil
}

func (f *FS) readKeyHeader(h *KeyHeader) error {
	buf := make([]byte, layout.KeyHeaderSize)
	if err := f.readAt(layout.KeyTableAddr(), buf); err != nil {
		return err
	}
	unpackKeyHeader(buf, h)
	return nil
}

func (f *FS) writeKeyHeader() error {
	return f.writeAt(layout.KeyTableAddr(), packKeyHeader(&f.keyHeader))
}

func (f *FS) readKeyEntry(i int, e *KeyEntry) error {
	if i < 0 || i >= layout.MaxKeys {
		return fmt.Errorf("%w: key index %d", ErrSize, i)
	}
	buf := make([]byte, layout.KeyEntrySize)
	if err := f.readAt(layout.KeyEntryAddr(i), buf); err != nil {
		return err
	}
	unpackKeyEntry(buf, e)
	return nil
}

func (f *FS) writeKeyEntry(i int, e *KeyEntry) error {
	if i < 0 || i >= layout.MaxKeys {
		return fmt.Errorf("%w: key index %d", ErrSize, i)
	}
	return f.writeAt(layout.KeyEntryAddr(i), packKeyEntry(e))
}
