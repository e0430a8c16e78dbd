// internal/device/modbusdev/client.go
package modbusdev

import (
	"errors"
	"fmt"
	"time"

	"github.com/goburrow/modbus"

	"github.com/tamzrod/framfs/internal/device"
)

// registerClient abstracts the two Modbus operations the adapter
// needs, FC 3 and FC 16. Satisfied by modbus.Client.
type registerClient interface {
	ReadHoldingRegisters(address, quantity uint16) ([]byte, error)
	WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error)
}

// Dev exposes a memory part behind a Modbus bridge as a device.Device.
// The bridge maps the chip into holding registers: register r holds
// bytes 2r and 2r+1. This adapter is geometry-only: it translates byte
// ranges into register reads/writes and nothing else.
type Dev struct {
	client   registerClient
	closer   func() error
	capacity uint32
}

// Config is minimal transport config.
type Config struct {
	// Mode selects the transport: "tcp" or "rtu".
	Mode string

	// Endpoint is host:port for tcp, serial device path for rtu.
	Endpoint string

	UnitID  uint8
	Timeout time.Duration

	// Serial parameters (rtu only).
	BaudRate int
	DataBits int
	Parity   string
	StopBits int

	// Capacity of the mapped memory in bytes. Must be even: the
	// register map cannot address half a register at the end.
	Capacity uint32
}

// Modbus quantity limits for FC 3 / FC 16.
const (
	maxReadRegisters  = 125
	maxWriteRegisters = 123
)

// MaxCapacity is the largest byte range a 16-bit register space can
// map: 65536 registers of two bytes each.
const MaxCapacity = 2 * 65536

// New creates a connected Modbus-mapped device.
func New(cfg Config) (*Dev, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("modbusdev: endpoint required")
	}
	if cfg.Capacity == 0 || cfg.Capacity%2 != 0 {
		return nil, fmt.Errorf("modbusdev: capacity must be a positive even byte count, got %d", cfg.Capacity)
	}
	if cfg.Capacity > MaxCapacity {
		return nil, fmt.Errorf("modbusdev: capacity %d exceeds the %d-byte register map", cfg.Capacity, MaxCapacity)
	}

	var client modbus.Client
	var closer func() error

	switch cfg.Mode {
	case "tcp":
		h := modbus.NewTCPClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("modbusdev: connect %s: %w", cfg.Endpoint, err)
		}
		client = modbus.NewClient(h)
		closer = h.Close

	case "rtu":
		h := modbus.NewRTUClientHandler(cfg.Endpoint)
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		if cfg.BaudRate > 0 {
			h.BaudRate = cfg.BaudRate
		}
		if cfg.DataBits > 0 {
			h.DataBits = cfg.DataBits
		}
		if cfg.Parity != "" {
			h.Parity = cfg.Parity
		}
		if cfg.StopBits > 0 {
			h.StopBits = cfg.StopBits
		}
		if err := h.Connect(); err != nil {
			return nil, fmt.Errorf("modbusdev: open %s: %w", cfg.Endpoint, err)
		}
		client = modbus.NewClient(h)
		closer = h.Close

	default:
		return nil, fmt.Errorf("modbusdev: unsupported mode %q", cfg.Mode)
	}

	return &Dev{client: client, closer: closer, capacity: cfg.Capacity}, nil
}

// Close closes the underlying transport.
func (d *Dev) Close() error {
	if d == nil || d.closer == nil {
		return nil
	}
	return d.closer()
}

func (d *Dev) Capacity() uint32 {
	return d.capacity
}

func (d *Dev) Read(addr uint32, buf []byte) error {
	if err := device.CheckBounds(addr, len(buf), d.capacity); err != nil {
		return err
	}
	if len(buf) == 0 {
		return nil
	}

	// Widen to the covering register range.
	firstReg := addr / 2
	lastReg := (addr + uint32(len(buf)) - 1) / 2
	raw, err := d.readRegisters(firstReg, lastReg-firstReg+1)
	if err != nil {
		return err
	}

	copy(buf, raw[addr-firstReg*2:])
	return nil
}

func (d *Dev) Write(addr uint32, data []byte) error {
	if err := device.CheckBounds(addr, len(data), d.capacity); err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}

	firstReg := addr / 2
	lastReg := (addr + uint32(len(data)) - 1) / 2

	// Unaligned edges share a register with neighbouring bytes, so the
	// edge registers are read back and merged before writing.
	raw := make([]byte, (lastReg-firstReg+1)*2)
	if addr%2 != 0 {
		edge, err := d.readRegisters(firstReg, 1)
		if err != nil {
			return err
		}
		copy(raw[0:2], edge)
	}
	if (addr+uint32(len(data)))%2 != 0 {
		edge, err := d.readRegisters(lastReg, 1)
		if err != nil {
			return err
		}
		copy(raw[len(raw)-2:], edge)
	}
	copy(raw[addr-firstReg*2:], data)

	return d.writeRegisters(firstReg, raw)
}

// readRegisters reads qty registers starting at reg, honouring the
// FC 3 quantity limit.
func (d *Dev) readRegisters(reg, qty uint32) ([]byte, error) {
	out := make([]byte, 0, qty*2)
	for qty > 0 {
		n := qty
		if n > maxReadRegisters {
			n = maxReadRegisters
		}
		raw, err := d.client.ReadHoldingRegisters(uint16(reg), uint16(n))
		if err != nil {
			return nil, fmt.Errorf("modbusdev: read reg=%d qty=%d: %w", reg, n, err)
		}
		if len(raw) != int(n)*2 {
			return nil, fmt.Errorf("modbusdev: short read reg=%d: got %d bytes want %d", reg, len(raw), n*2)
		}
		out = append(out, raw...)
		reg += n
		qty -= n
	}
	return out, nil
}

// writeRegisters writes full registers starting at reg, honouring the
// FC 16 quantity limit.
func (d *Dev) writeRegisters(reg uint32, raw []byte) error {
	for len(raw) > 0 {
		n := uint32(len(raw) / 2)
		if n > maxWriteRegisters {
			n = maxWriteRegisters
		}
		chunk := raw[:n*2]
		if _, err := d.client.WriteMultipleRegisters(uint16(reg), uint16(n), chunk); err != nil {
			return fmt.Errorf("modbusdev: write reg=%d qty=%d: %w", reg, n, err)
		}
		raw = raw[n*2:]
		reg += n
	}
	return nil
}
