// internal/fs/errors.go
package fs

import "errors"

// Closed error taxonomy. Every public operation returns one of these
// (possibly wrapped with context) or a transport error surfaced
// verbatim from the device. The package never logs and recovers on
// its own; callers decide whether to retry, abort, or surface.

// ErrInit is returned when the filesystem is used before Init or the
// device is not usable.
var ErrInit = errors.New("framfs: not initialized")

// ErrInvalid is returned when on-device metadata is corrupt or
// unrecognized.
var ErrInvalid = errors.New("framfs: invalid on-device format")

// ErrNotFound is returned for an unknown filename.
var ErrNotFound = errors.New("framfs: file not found")

// ErrFull is returned when the file table or the data region is
// exhausted.
var ErrFull = errors.New("framfs: full")

// ErrExists is returned when creating a file whose name is taken.
var ErrExists = errors.New("framfs: file already exists")

// ErrNoActiveFile is returned when appending with no active file.
var ErrNoActiveFile = errors.New("framfs: no active file")

// ErrReadOnly is returned when a write reaches a sealed file.
var ErrReadOnly = errors.New("framfs: file is sealed")

// ErrSize is returned for out-of-range sizes: long filenames, reads
// past end of file, undersized codec buffers, invalid record counts.
var ErrSize = errors.New("framfs: size out of range")

// ErrKeyTableFull is returned when a new key cannot be added.
var ErrKeyTableFull = errors.New("framfs: key table full")

// ErrKeyNotFound is returned when a key lookup misses.
var ErrKeyNotFound = errors.New("framfs: key not found")
