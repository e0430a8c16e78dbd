// internal/layout/constants.go
package layout

// On-device layout constants.
// These values define the stored format and MUST NOT be configurable.
// Changing any of them requires a version bump and a reformat.

// ---- TABLE GEOMETRY ----

// MaxFiles is the fixed capacity of the file entry table.
const MaxFiles = 64

// FilenameLen is the fixed filename field width, including the
// null terminator. Usable name length is FilenameLen-1.
const FilenameLen = 12

// MaxKeys is the fixed capacity of the key table.
const MaxKeys = 128

// KeySize is the width of one key (a 6-byte hardware address).
const KeySize = 6

// ---- MAGIC / VERSION ----

// Magic identifies a formatted filesystem header ("FS").
const Magic uint16 = 0x4653

// Version is the filesystem format version.
const Version uint8 = 0x01

// KeyTableMagic identifies a formatted key table ("MA").
const KeyTableMagic uint16 = 0x4D41

// KeyTableVersion is the key table format version.
const KeyTableVersion uint8 = 0x01

// SettingsMagic identifies a formatted user settings block ("US").
const SettingsMagic uint16 = 0x5553

// SettingsVersion is the user settings format version.
const SettingsVersion uint8 = 0x01

// ---- ENTRY FLAGS ----

const FlagValid uint8 = 0x01
const FlagActive uint8 = 0x02
const FlagSealed uint8 = 0x04

// ---- FILE TYPES ----

const TypeRawData uint8 = 0x00
const TypeSensorLog uint8 = 0x01
const TypeConfig uint8 = 0x02

// ---- RECORD TYPE CODES ----

// RecordNoActivity marks a minute with nothing observed.
const RecordNoActivity uint8 = 0x00

// Device scan records use the device count itself as the type code.
const RecordDeviceMin uint8 = 0x01
const RecordDeviceMax uint8 = 0x80

const RecordBoot uint8 = 0xF1
const RecordConnected uint8 = 0xF2
const RecordSettings uint8 = 0xF3
const RecordBattery uint8 = 0xF4
const RecordError uint8 = 0xF5
const RecordTemperature uint8 = 0xF6

// MaxDevicesPerRecord caps the device count in one scan record.
const MaxDevicesPerRecord = 128

// MinuteMax is the last valid minute of a day.
const MinuteMax = 1439

// ---- ADC RECORDS ----

// ADC records carry sub-second waveform captures and use a wider
// header than the minute-grained event records.

// ADCHeaderSize: unix_timestamp(4) micro_offset(4) sample_count(2)
// duration_us(2) event_type(1).
const ADCHeaderSize = 13

// ADC event type codes, stored in the record header.
const ADCEventTimerBurst uint8 = 0x01
const ADCEventSingleEvent uint8 = 0x02
const ADCEventPeriEvent uint8 = 0x03

// ADCEventPayloadSize is the fixed payload of a single-event record:
// positive peak, negative peak, reserved.
const ADCEventPayloadSize = 3

// ADCMaxSamples caps one capture; larger bursts overflow the 16-bit
// duration field.
const ADCMaxSamples = 1000

// ADCDurationMax is the largest storable burst duration in
// microseconds. Longer captures are clamped.
const ADCDurationMax = 65535

// ---- ADC ACQUISITION MODES ----

const ADCModeTimerBurst uint8 = 0x00
const ADCModePeriEvent uint8 = 0x01
const ADCModeThresholdEvent uint8 = 0x02

// ---- STORED STRUCT SIZES ----

// HeaderSize: magic(2) version(1) file_count(1) next_data_addr(4)
// total_data_size(4).
const HeaderSize = 12

// EntrySize: name(FilenameLen) start_addr(4) length(4) flags(1)
// file_type(1) pad(2).
const EntrySize = FilenameLen + 4 + 4 + 1 + 1 + 2

// KeyHeaderSize: magic(2) version(1) entry_count(1).
const KeyHeaderSize = 4

// KeyEntrySize: key(KeySize) usage(1) flags(1).
const KeyEntrySize = KeySize + 1 + 1

// SettingsSize: magic(2) version(1) pad(1) adv_interval(2)
// scan_interval(2) subject_id(16) upload_path(32) adc_config(10).
const SettingsSize = 2 + 1 + 1 + 2 + 2 + SubjectIDLen + UploadPathLen + ADCConfigSize

// ADCConfigSize: mode(1) peaks_only(1) threshold_mv(2) buffer_size(2)
// debounce_ms(4).
const ADCConfigSize = 10

// SubjectIDLen is the stored subject identifier width, including
// the null terminator.
const SubjectIDLen = 16

// UploadPathLen is the stored upload path width, including the
// null terminator.
const UploadPathLen = 32
