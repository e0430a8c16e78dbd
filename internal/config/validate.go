// internal/config/validate.go
package config

import (
	"fmt"

	"github.com/tamzrod/framfs/internal/device/modbusdev"
	"github.com/tamzrod/framfs/internal/layout"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	d := &cfg.Logger.Device

	// ------------------------------------------------------------
	// BACKEND SELECTION
	// ------------------------------------------------------------

	switch d.Backend {
	case "mem":
		// nothing else required

	case "file":
		if d.Path == "" {
			return fmt.Errorf("device: backend %q requires path", d.Backend)
		}

	case "modbus-tcp":
		if d.Endpoint == "" {
			return fmt.Errorf("device: backend %q requires endpoint", d.Backend)
		}

	case "modbus-rtu":
		if d.Serial.Port == "" {
			return fmt.Errorf("device: backend %q requires serial.port", d.Backend)
		}

	default:
		return fmt.Errorf("device: unknown backend %q", d.Backend)
	}

	// ------------------------------------------------------------
	// CAPACITY GEOMETRY
	// ------------------------------------------------------------

	if d.Capacity != 0 {
		if err := layout.Check(d.Capacity); err != nil {
			return err
		}
		if d.Backend == "modbus-tcp" || d.Backend == "modbus-rtu" {
			// A register map cannot address half a register at the
			// end, and 16-bit register addressing caps the mapped
			// range.
			if d.Capacity%2 != 0 {
				return fmt.Errorf("device: modbus backends need an even capacity, got %d", d.Capacity)
			}
			if d.Capacity > modbusdev.MaxCapacity {
				return fmt.Errorf("device: modbus backends map at most %d bytes, got %d", modbusdev.MaxCapacity, d.Capacity)
			}
		}
	}

	if d.TimeoutMs < 0 {
		return fmt.Errorf("device: timeout_ms must be >= 0, got %d", d.TimeoutMs)
	}

	return nil
}
