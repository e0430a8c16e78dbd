// internal/config/validate_test.go
package config

import "testing"

// helper to build a device config quickly
func deviceCfg(backend string, capacity uint32) *Config {
	cfg := &Config{}
	cfg.Logger.Device.Backend = backend
	cfg.Logger.Device.Capacity = capacity
	cfg.Logger.Device.Path = "fram.img"
	cfg.Logger.Device.Endpoint = "127.0.0.1:502"
	cfg.Logger.Device.Serial.Port = "/dev/ttyUSB0"
	return cfg
}

// ---- tests ----

func TestValidate_KnownBackends(t *testing.T) {
	for _, backend := range []string{"mem", "file", "modbus-tcp", "modbus-rtu"} {
		cfg := deviceCfg(backend, 131072)
		if err := Validate(cfg); err != nil {
			t.Fatalf("backend %q: unexpected error: %v", backend, err)
		}
	}
}

func TestValidate_UnknownBackend(t *testing.T) {
	cfg := deviceCfg("nvme", 131072)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for unknown backend, got nil")
	}
}

func TestValidate_FileNeedsPath(t *testing.T) {
	cfg := deviceCfg("file", 131072)
	cfg.Logger.Device.Path = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing path, got nil")
	}
}

func TestValidate_TCPNeedsEndpoint(t *testing.T) {
	cfg := deviceCfg("modbus-tcp", 131072)
	cfg.Logger.Device.Endpoint = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing endpoint, got nil")
	}
}

func TestValidate_RTUNeedsPort(t *testing.T) {
	cfg := deviceCfg("modbus-rtu", 131072)
	cfg.Logger.Device.Serial.Port = ""
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for missing serial port, got nil")
	}
}

func TestValidate_CapacityTooSmall(t *testing.T) {
	// smaller than the fixed metadata tables
	cfg := deviceCfg("mem", 1024)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for tiny capacity, got nil")
	}
}

func TestValidate_ModbusOddCapacity(t *testing.T) {
	cfg := deviceCfg("modbus-tcp", 131073)
	if err := Validate(cfg); err == nil {
		t.Fatalf("expected error for odd modbus capacity, got nil")
	}
}

func TestValidate_ModbusCapacityBeyondRegisterMap(t *testing.T) {
	// a 16-bit register space maps 131072 bytes at most
	for _, backend := range []string{"modbus-tcp", "modbus-rtu"} {
		cfg := deviceCfg(backend, 131074)
		if err := Validate(cfg); err == nil {
			t.Fatalf("backend %q: oversized capacity accepted", backend)
		}
	}
	// the same capacity is fine for a plain file backend
	cfg := deviceCfg("file", 131074)
	if err := Validate(cfg); err != nil {
		t.Fatalf("file backend rejected 131074: %v", err)
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := deviceCfg("modbus-rtu", 0)
	cfg.Logger.Device.Serial = SerialConfig{Port: "/dev/ttyUSB0"}

	Normalize(cfg)

	d := cfg.Logger.Device
	if d.Capacity != DefaultCapacity {
		t.Fatalf("capacity default: got %d want %d", d.Capacity, DefaultCapacity)
	}
	if d.TimeoutMs != DefaultTimeoutMs {
		t.Fatalf("timeout default: got %d want %d", d.TimeoutMs, DefaultTimeoutMs)
	}
	if d.Serial.BaudRate != DefaultBaudRate || d.Serial.Parity != DefaultParity {
		t.Fatalf("serial defaults not applied: %+v", d.Serial)
	}
}
