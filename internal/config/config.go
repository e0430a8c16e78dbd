// internal/config/config.go
package config

type Config struct {
	Logger LoggerConfig `yaml:"logger"`
}

type LoggerConfig struct {
	Device DeviceConfig `yaml:"device"`
}

// ---- DEVICE ----

type DeviceConfig struct {
	// Backend selects how the memory part is reached:
	// "mem", "file", "modbus-tcp", or "modbus-rtu".
	Backend string `yaml:"backend"`

	// Capacity of the part in bytes.
	Capacity uint32 `yaml:"capacity"`

	// Path of the image file (file backend only).
	Path string `yaml:"path"`

	// Endpoint host:port (modbus-tcp backend only).
	Endpoint string `yaml:"endpoint"`

	UnitID    uint8 `yaml:"unit_id"`
	TimeoutMs int   `yaml:"timeout_ms"`

	// Serial line parameters (modbus-rtu backend only).
	Serial SerialConfig `yaml:"serial"`
}

// ---- SERIAL ----

type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
	DataBits int    `yaml:"data_bits"`
	Parity   string `yaml:"parity"`
	StopBits int    `yaml:"stop_bits"`
}
