// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	// DefaultCapacity matches the 128 KiB part the logger ships with.
	DefaultCapacity uint32 = 128 * 1024

	DefaultTimeoutMs = 1000

	DefaultBaudRate = 19200
	DefaultDataBits = 8
	DefaultParity   = "N"
	DefaultStopBits = 1
)

// Normalize applies post-validation normalization.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	d := &cfg.Logger.Device

	if d.Capacity == 0 {
		d.Capacity = DefaultCapacity
	}
	if d.TimeoutMs == 0 {
		d.TimeoutMs = DefaultTimeoutMs
	}

	// ------------------------------------------------------------
	// SERIAL LINE DEFAULTS (modbus-rtu only)
	// ------------------------------------------------------------

	if d.Backend != "modbus-rtu" {
		return
	}
	if d.Serial.BaudRate == 0 {
		d.Serial.BaudRate = DefaultBaudRate
	}
	if d.Serial.DataBits == 0 {
		d.Serial.DataBits = DefaultDataBits
	}
	if d.Serial.Parity == "" {
		d.Serial.Parity = DefaultParity
	}
	if d.Serial.StopBits == 0 {
		d.Serial.StopBits = DefaultStopBits
	}
}
