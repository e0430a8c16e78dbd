// internal/fs/appends.go
package fs

import (
	"fmt"

	"github.com/tamzrod/framfs/internal/layout"
)

// Record-level appends onto the active file. These run the codec and
// key table so callers hand over raw observations, not wire bytes.

// AppendDeviceScan resolves each key through the dedup table, encodes
// a device scan record, and appends it.
func (f *FS) AppendDeviceScan(minute uint16, motion uint8, keys []Key, rssi []int8) error {
	if !f.ready {
		return ErrInit
	}
	count := len(keys)
	if count < 1 || count > layout.MaxDevicesPerRecord {
		return fmt.Errorf("%w: device count %d", ErrSize, count)
	}
	if len(rssi) != count {
		return fmt.Errorf("%w: %d keys but %d rssi values", ErrSize, count, len(rssi))
	}

	r := DeviceScanRecord{
		Minute:     minute,
		Motion:     motion,
		KeyIndices: make([]uint8, count),
		RSSI:       rssi,
	}
	for i, k := range keys {
		idx, err := f.FindOrAddKey(k)
		if err != nil {
			return err
		}
		r.KeyIndices[i] = idx
	}

	buf := make([]byte, DeviceScanSize(count))
	n, err := EncodeDeviceScan(&r, buf)
	if err != nil {
		return err
	}
	return f.Append(buf[:n])
}

// AppendSimple appends a 3-byte event record.
func (f *FS) AppendSimple(minute uint16, recordType uint8) error {
	if !f.ready {
		return ErrInit
	}
	r := SimpleRecord{Minute: minute, Type: recordType}
	buf := make([]byte, SimpleRecordSize)
	n, err := EncodeSimple(&r, buf)
	if err != nil {
		return err
	}
	return f.Append(buf[:n])
}

// AppendBattery validates the level here, not in the codec, and
// appends a battery record.
func (f *FS) AppendBattery(minute uint16, level uint8) error {
	if !f.ready {
		return ErrInit
	}
	if level > 100 {
		return fmt.Errorf("%w: battery level %d", ErrSize, level)
	}
	r := BatteryRecord{Minute: minute, Level: level}
	buf := make([]byte, BatteryRecordSize)
	n, err := EncodeBattery(&r, buf)
	if err != nil {
		return err
	}
	return f.Append(buf[:n])
}

// clampADCDuration caps a measured duration at what the 16-bit field
// can store. Overflow indicates slow sampling, not a hard error.
func clampADCDuration(durationUS uint32) uint16 {
	if durationUS > layout.ADCDurationMax {
		return layout.ADCDurationMax
	}
	return uint16(durationUS)
}

// AppendADCBurst appends a timer-burst waveform capture.
func (f *FS) AppendADCBurst(timestamp, microOffset uint32, samples []byte, durationUS uint32) error {
	return f.AppendADCEvent(timestamp, microOffset, layout.ADCEventTimerBurst,
		samples, durationUS, 0, 0)
}

// AppendADCEvent appends a waveform capture of any event type. A
// single event carries only the peak pair; the other types require
// samples.
func (f *FS) AppendADCEvent(timestamp, microOffset uint32, eventType uint8,
	samples []byte, durationUS uint32, peakPositive, peakNegative uint8) error {
	if !f.ready {
		return ErrInit
	}
	r := ADCRecord{
		Timestamp:    timestamp,
		MicroOffset:  microOffset,
		Duration:     clampADCDuration(durationUS),
		EventType:    eventType,
		Samples:      samples,
		PeakPositive: peakPositive,
		PeakNegative: peakNegative,
	}
	buf := make([]byte, ADCRecordSize(eventType, len(samples)))
	n, err := EncodeADC(&r, buf)
	if err != nil {
		return err
	}
	return f.Append(buf[:n])
}

// AppendTemperature appends a signed whole-degree sample.
func (f *FS) AppendTemperature(minute uint16, degrees int8) error {
	if !f.ready {
		return ErrInit
	}
	r := TemperatureRecord{Minute: minute, Degrees: degrees}
	buf := make([]byte, TemperatureRecordSize)
	n, err := EncodeTemperature(&r, buf)
	if err != nil {
		return err
	}
	return f.Append(buf[:n])
}
