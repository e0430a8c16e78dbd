// internal/fs/marshal.go
package fs

import (
	"encoding/binary"

	"github.com/tamzrod/framfs/internal/layout"
)

// Stored-form packing for the fixed metadata structures. Every
// multi-byte field is little-endian and packed at an explicit offset
// so the on-device format is independent of host byte order and
// struct padding.

func packHeader(h *Header) []byte {
	buf := make([]byte, layout.HeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.Magic)
	buf[2] = h.Version
	buf[3] = h.FileCount
	binary.LittleEndian.PutUint32(buf[4:8], h.NextDataAddr)
	binary.LittleEndian.PutUint32(buf[8:12], h.TotalDataSize)
	return buf
}

func unpackHeader(buf []byte, h *Header) {
	h.Magic = binary.LittleEndian.Uint16(buf[0:2])
	h.Version = buf[2]
	h.FileCount = buf[3]
	h.NextDataAddr = binary.LittleEndian.Uint32(buf[4:8])
	h.TotalDataSize = binary.LittleEndian.Uint32(buf[8:12])
}

func packEntry(e *Entry) []byte {
	buf := make([]byte, layout.EntrySize)
	copy(buf[0:layout.FilenameLen], e.Name) // remainder stays zero
	binary.LittleEndian.PutUint32(buf[layout.FilenameLen:], e.StartAddr)
	binary.LittleEndian.PutUint32(buf[layout.FilenameLen+4:], e.Length)
	buf[layout.FilenameLen+8] = e.Flags
	buf[layout.FilenameLen+9] = e.FileType
	return buf
}

func unpackEntry(buf []byte, e *Entry) {
	e.Name = cString(buf[0:layout.FilenameLen])
	e.StartAddr = binary.LittleEndian.Uint32(buf[layout.FilenameLen:])
	e.Length = binary.LittleEndian.Uint32(buf[layout.FilenameLen+4:])
	e.Flags = buf[layout.FilenameLen+8]
	e.FileType = buf[layout.FilenameLen+9]
}

func packKeyHeader(h *KeyHeader) []byte {
	buf := make([]byte, layout.KeyHeaderSize)
	binary.LittleEndian.PutUint16(buf[0:2], h.Magic)
	buf[2] = h.Version
	buf[3] = h.EntryCount
	return buf
}

func unpackKeyHeader(buf []byte, h *KeyHeader) {
	h.Magic = binary.LittleEndian.Uint16(buf[0:2])
	h.Version = buf[2]
	h.EntryCount = buf[3]
}

func packKeyEntry(e *KeyEntry) []byte {
	buf := make([]byte, layout.KeyEntrySize)
	copy(buf[0:layout.KeySize], e.Key[:])
	buf[layout.KeySize] = e.Usage
	buf[layout.KeySize+1] = e.Flags
	return buf
}

func unpackKeyEntry(buf []byte, e *KeyEntry) {
	copy(e.Key[:], buf[0:layout.KeySize])
	e.Usage = buf[layout.KeySize]
	e.Flags = buf[layout.KeySize+1]
}

// Settings block stored form: magic(2) version(1) pad(1)
// adv_interval(2) scan_interval(2) subject_id(16) upload_path(32)
// adc_config(10).

const adcConfigOff = 8 + layout.SubjectIDLen + layout.UploadPathLen

func packSettings(s *Settings, a *ADCConfig) []byte {
	buf := make([]byte, layout.SettingsSize)
	binary.LittleEndian.PutUint16(buf[0:2], layout.SettingsMagic)
	buf[2] = layout.SettingsVersion
	binary.LittleEndian.PutUint16(buf[4:6], s.AdvInterval)
	binary.LittleEndian.PutUint16(buf[6:8], s.ScanInterval)
	copyTruncated(buf[8:8+layout.SubjectIDLen], s.SubjectID)
	copyTruncated(buf[8+layout.SubjectIDLen:adcConfigOff], s.UploadPath)

	buf[adcConfigOff] = a.Mode
	if a.OutputPeaksOnly {
		buf[adcConfigOff+1] = 1
	}
	binary.LittleEndian.PutUint16(buf[adcConfigOff+2:], a.ThresholdMV)
	binary.LittleEndian.PutUint16(buf[adcConfigOff+4:], a.BufferSize)
	binary.LittleEndian.PutUint32(buf[adcConfigOff+6:], a.DebounceMs)
	return buf
}

func unpackSettings(buf []byte, s *Settings, a *ADCConfig) (magic uint16, version uint8) {
	magic = binary.LittleEndian.Uint16(buf[0:2])
	version = buf[2]
	s.AdvInterval = binary.LittleEndian.Uint16(buf[4:6])
	s.ScanInterval = binary.LittleEndian.Uint16(buf[6:8])
	s.SubjectID = cString(buf[8 : 8+layout.SubjectIDLen])
	s.UploadPath = cString(buf[8+layout.SubjectIDLen : adcConfigOff])

	a.Mode = buf[adcConfigOff]
	a.OutputPeaksOnly = buf[adcConfigOff+1] != 0
	a.ThresholdMV = binary.LittleEndian.Uint16(buf[adcConfigOff+2:])
	a.BufferSize = binary.LittleEndian.Uint16(buf[adcConfigOff+4:])
	a.DebounceMs = binary.LittleEndian.Uint32(buf[adcConfigOff+6:])
	return magic, version
}

// cString reads a null-terminated string out of a fixed field.
func cString(buf []byte) string {
	for i, b := range buf {
		if b == 0 {
			return string(buf[:i])
		}
	}
	return string(buf)
}

// copyTruncated stores s into a fixed field, always leaving at least
// one null terminator.
func copyTruncated(dst []byte, s string) {
	n := len(dst) - 1
	if len(s) < n {
		n = len(s)
	}
	copy(dst, s[:n])
}
