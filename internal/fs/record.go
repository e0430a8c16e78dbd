// internal/fs/record.go
package fs

import (
	"encoding/binary"
	"fmt"

	"github.com/tamzrod/framfs/internal/layout"
)

// Record codec. Records are self-delimiting: the size is computed
// from the leading fields, so no end marker is stored. All fields are
// packed little-endian at explicit offsets. Encoders and decoders
// reject bad counts and undersized buffers before touching a byte.

// DeviceScanRecord logs the devices seen in one minute. The device
// count doubles as the record type code (0x01..0x80).
type DeviceScanRecord struct {
	Minute     uint16 // 0..1439
	Motion     uint8  // motion events this minute
	KeyIndices []uint8
	RSSI       []int8
}

// SimpleRecord is a 3-byte event marker (no-activity, boot,
// connected, error).
type SimpleRecord struct {
	Minute uint16
	Type   uint8
}

// BatteryRecord stores a validated battery level sample.
type BatteryRecord struct {
	Minute uint16
	Level  uint8 // 0..100, validated by the caller
}

// TemperatureRecord stores a signed whole-degree sample.
type TemperatureRecord struct {
	Minute  uint16
	Degrees int8
}

// Fixed sizes and the per-record fixed header width.
const (
	deviceScanFixedSize   = 4 // minute(2) count(1) motion(1)
	SimpleRecordSize      = 3
	BatteryRecordSize     = 4
	TemperatureRecordSize = 4
)

// DeviceScanSize returns the encoded size for a device count.
func DeviceScanSize(count int) int {
	return deviceScanFixedSize + 2*count
}

// EncodeDeviceScan packs r into buf and returns the encoded size.
// The count must be 1..MaxDevicesPerRecord and KeyIndices and RSSI
// must be the same length.
func EncodeDeviceScan(r *DeviceScanRecord, buf []byte) (int, error) {
	count := len(r.KeyIndices)
	if count < 1 || count > layout.MaxDevicesPerRecord {
		return 0, fmt.Errorf("%w: device count %d", ErrSize, count)
	}
	if len(r.RSSI) != count {
		return 0, fmt.Errorf("%w: %d key indices but %d rssi values", ErrSize, count, len(r.RSSI))
	}
	need := DeviceScanSize(count)
	if len(buf) < need {
		return 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), need)
	}

	binary.LittleEndian.PutUint16(buf[0:2], r.Minute)
	buf[2] = uint8(count)
	buf[3] = r.Motion
	for i := 0; i < count; i++ {
		buf[deviceScanFixedSize+i] = r.KeyIndices[i]
		buf[deviceScanFixedSize+count+i] = byte(r.RSSI[i])
	}
	return need, nil
}

// DecodeDeviceScan unpacks a device scan record and returns it with
// its encoded size.
func DecodeDeviceScan(buf []byte) (DeviceScanRecord, int, error) {
	if len(buf) < deviceScanFixedSize {
		return DeviceScanRecord{}, 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), deviceScanFixedSize)
	}
	count := int(buf[2])
	if count < 1 || count > layout.MaxDevicesPerRecord {
		return DeviceScanRecord{}, 0, fmt.Errorf("%w: device count %d", ErrSize, count)
	}
	need := DeviceScanSize(count)
	if len(buf) < need {
		return DeviceScanRecord{}, 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), need)
	}

	r := DeviceScanRecord{
		Minute:     binary.LittleEndian.Uint16(buf[0:2]),
		Motion:     buf[3],
		KeyIndices: make([]uint8, count),
		RSSI:       make([]int8, count),
	}
	for i := 0; i < count; i++ {
		r.KeyIndices[i] = buf[deviceScanFixedSize+i]
		r.RSSI[i] = int8(buf[deviceScanFixedSize+count+i])
	}
	return r, need, nil
}

// simpleTypeOK reports whether t is one of the simple event codes.
func simpleTypeOK(t uint8) bool {
	switch t {
	case layout.RecordNoActivity, layout.RecordBoot, layout.RecordConnected, layout.RecordError:
		return true
	}
	return false
}

// EncodeSimple packs a simple event record.
func EncodeSimple(r *SimpleRecord, buf []byte) (int, error) {
	if !simpleTypeOK(r.Type) {
		return 0, fmt.Errorf("%w: simple record type 0x%02X", ErrSize, r.Type)
	}
	if len(buf) < SimpleRecordSize {
		return 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), SimpleRecordSize)
	}
	binary.LittleEndian.PutUint16(buf[0:2], r.Minute)
	buf[2] = r.Type
	return SimpleRecordSize, nil
}

// DecodeSimple unpacks a simple event record.
func DecodeSimple(buf []byte) (SimpleRecord, error) {
	if len(buf) < SimpleRecordSize {
		return SimpleRecord{}, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), SimpleRecordSize)
	}
	r := SimpleRecord{
		Minute: binary.LittleEndian.Uint16(buf[0:2]),
		Type:   buf[2],
	}
	if !simpleTypeOK(r.Type) {
		return SimpleRecord{}, fmt.Errorf("%w: simple record type 0x%02X", ErrSize, r.Type)
	}
	return r, nil
}

// EncodeBattery packs a battery record. Level range is the caller's
// responsibility; the codec does not clamp.
func EncodeBattery(r *BatteryRecord, buf []byte) (int, error) {
	if len(buf) < BatteryRecordSize {
		return 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), BatteryRecordSize)
	}
	binary.LittleEndian.PutUint16(buf[0:2], r.Minute)
	buf[2] = layout.RecordBattery
	buf[3] = r.Level
	return BatteryRecordSize, nil
}

// DecodeBattery unpacks a battery record.
func DecodeBattery(buf []byte) (BatteryRecord, error) {
	if len(buf) < BatteryRecordSize {
		return BatteryRecord{}, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), BatteryRecordSize)
	}
	if buf[2] != layout.RecordBattery {
		return BatteryRecord{}, fmt.Errorf("%w: record type 0x%02X is not battery", ErrSize, buf[2])
	}
	return BatteryRecord{
		Minute: binary.LittleEndian.Uint16(buf[0:2]),
		Level:  buf[3],
	}, nil
}

// ADCRecord is a sub-second waveform capture. Unlike the minute
// records it is timestamped absolutely: unix seconds plus a
// microsecond offset into that second. Timer bursts and peri-events
// carry raw samples; a single event carries only the two peak values.
type ADCRecord struct {
	Timestamp    uint32 // unix seconds
	MicroOffset  uint32 // microseconds into the second
	Duration     uint16 // capture duration in microseconds
	EventType    uint8
	Samples      []byte
	PeakPositive uint8 // single event only
	PeakNegative uint8 // single event only
}

// ADCRecordSize returns the encoded size for an event type and sample
// count.
func ADCRecordSize(eventType uint8, sampleCount int) int {
	if eventType == layout.ADCEventSingleEvent {
		return layout.ADCHeaderSize + layout.ADCEventPayloadSize
	}
	return layout.ADCHeaderSize + sampleCount
}

func adcEventTypeOK(t uint8) bool {
	switch t {
	case layout.ADCEventTimerBurst, layout.ADCEventSingleEvent, layout.ADCEventPeriEvent:
		return true
	}
	return false
}

// EncodeADC packs r into buf and returns the encoded size. Sample
// rules follow the event type: a single event must carry no samples,
// the other types must carry 1..ADCMaxSamples.
func EncodeADC(r *ADCRecord, buf []byte) (int, error) {
	if !adcEventTypeOK(r.EventType) {
		return 0, fmt.Errorf("%w: adc event type 0x%02X", ErrSize, r.EventType)
	}
	count := len(r.Samples)
	if r.EventType == layout.ADCEventSingleEvent {
		if count != 0 {
			return 0, fmt.Errorf("%w: single event with %d samples", ErrSize, count)
		}
	} else if count < 1 || count > layout.ADCMaxSamples {
		return 0, fmt.Errorf("%w: adc sample count %d", ErrSize, count)
	}
	need := ADCRecordSize(r.EventType, count)
	if len(buf) < need {
		return 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), need)
	}

	binary.LittleEndian.PutUint32(buf[0:4], r.Timestamp)
	binary.LittleEndian.PutUint32(buf[4:8], r.MicroOffset)
	binary.LittleEndian.PutUint16(buf[8:10], uint16(count))
	binary.LittleEndian.PutUint16(buf[10:12], r.Duration)
	buf[12] = r.EventType

	if r.EventType == layout.ADCEventSingleEvent {
		buf[layout.ADCHeaderSize] = r.PeakPositive
		buf[layout.ADCHeaderSize+1] = r.PeakNegative
		buf[layout.ADCHeaderSize+2] = 0 // reserved
	} else {
		copy(buf[layout.ADCHeaderSize:], r.Samples)
	}
	return need, nil
}

// DecodeADC unpacks an ADC record and returns it with its encoded
// size.
func DecodeADC(buf []byte) (ADCRecord, int, error) {
	if len(buf) < layout.ADCHeaderSize {
		return ADCRecord{}, 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), layout.ADCHeaderSize)
	}
	eventType := buf[12]
	if !adcEventTypeOK(eventType) {
		return ADCRecord{}, 0, fmt.Errorf("%w: adc event type 0x%02X", ErrSize, eventType)
	}
	count := int(binary.LittleEndian.Uint16(buf[8:10]))
	if eventType == layout.ADCEventSingleEvent {
		if count != 0 {
			return ADCRecord{}, 0, fmt.Errorf("%w: single event with count %d", ErrSize, count)
		}
	} else if count < 1 || count > layout.ADCMaxSamples {
		return ADCRecord{}, 0, fmt.Errorf("%w: adc sample count %d", ErrSize, count)
	}
	need := ADCRecordSize(eventType, count)
	if len(buf) < need {
		return ADCRecord{}, 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), need)
	}

	r := ADCRecord{
		Timestamp:   binary.LittleEndian.Uint32(buf[0:4]),
		MicroOffset: binary.LittleEndian.Uint32(buf[4:8]),
		Duration:    binary.LittleEndian.Uint16(buf[10:12]),
		EventType:   eventType,
	}
	if eventType == layout.ADCEventSingleEvent {
		r.PeakPositive = buf[layout.ADCHeaderSize]
		r.PeakNegative = buf[layout.ADCHeaderSize+1]
	} else {
		r.Samples = make([]byte, count)
		copy(r.Samples, buf[layout.ADCHeaderSize:need])
	}
	return r, need, nil
}

// EncodeTemperature packs a temperature record.
func EncodeTemperature(r *TemperatureRecord, buf []byte) (int, error) {
	if len(buf) < TemperatureRecordSize {
		return 0, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), TemperatureRecordSize)
	}
	binary.LittleEndian.PutUint16(buf[0:2], r.Minute)
	buf[2] = layout.RecordTemperature
	buf[3] = byte(r.Degrees)
	return TemperatureRecordSize, nil
}

// DecodeTemperature unpacks a temperature record.
func DecodeTemperature(buf []byte) (TemperatureRecord, error) {
	if len(buf) < TemperatureRecordSize {
		return TemperatureRecord{}, fmt.Errorf("%w: buffer %d < %d", ErrSize, len(buf), TemperatureRecordSize)
	}
	if buf[2] != layout.RecordTemperature {
		return TemperatureRecord{}, fmt.Errorf("%w: record type 0x%02X is not temperature", ErrSize, buf[2])
	}
	return TemperatureRecord{
		Minute:  binary.LittleEndian.Uint16(buf[0:2]),
		Degrees: int8(buf[3]),
	}, nil
}
