// cmd/framfsctl/main.go
package main

import (
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/tamzrod/framfs/internal/config"
	"github.com/tamzrod/framfs/internal/device"
	"github.com/tamzrod/framfs/internal/device/modbusdev"
	"github.com/tamzrod/framfs/internal/fs"
)

func main() {
	if len(os.Args) < 3 {
		log.Fatal("usage: framfsctl <config.yaml> <command> [args]\n" +
			"commands: format stats ls info cat export keys export-keys settings set-subject set-upload")
	}

	cfgPath := os.Args[1]
	command := os.Args[2]
	args := os.Args[3:]

	// --------------------
	// Load + validate config
	// --------------------

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("config validation failed: %v", err)
	}
	config.Normalize(cfg)

	// --------------------
	// Open the device backend
	// --------------------

	dev, closeDev, err := buildDevice(cfg.Logger.Device)
	if err != nil {
		log.Fatalf("device open failed: %v", err)
	}
	defer closeDev()

	f, err := fs.New(dev)
	if err != nil {
		log.Fatalf("mount failed: %v", err)
	}

	if err := run(f, command, args); err != nil {
		log.Fatalf("%s failed: %v", command, err)
	}
}

func buildDevice(d config.DeviceConfig) (device.Device, func() error, error) {
	noop := func() error { return nil }

	switch d.Backend {
	case "mem":
		return device.NewMem(d.Capacity), noop, nil

	case "file":
		dev, err := device.OpenFile(d.Path, d.Capacity)
		if err != nil {
			return nil, nil, err
		}
		return dev, dev.Close, nil

	case "modbus-tcp":
		dev, err := modbusdev.New(modbusdev.Config{
			Mode:     "tcp",
			Endpoint: d.Endpoint,
			UnitID:   d.UnitID,
			Timeout:  time.Duration(d.TimeoutMs) * time.Millisecond,
			Capacity: d.Capacity,
		})
		if err != nil {
			return nil, nil, err
		}
		return dev, dev.Close, nil

	case "modbus-rtu":
		dev, err := modbusdev.New(modbusdev.Config{
			Mode:     "rtu",
			Endpoint: d.Serial.Port,
			UnitID:   d.UnitID,
			Timeout:  time.Duration(d.TimeoutMs) * time.Millisecond,
			BaudRate: d.Serial.BaudRate,
			DataBits: d.Serial.DataBits,
			Parity:   d.Serial.Parity,
			StopBits: d.Serial.StopBits,
			Capacity: d.Capacity,
		})
		if err != nil {
			return nil, nil, err
		}
		return dev, dev.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown backend %q", d.Backend)
}

func run(f *fs.FS, command string, args []string) error {
	switch command {
	case "format":
		return f.Format()

	case "stats":
		h, err := f.Stats()
		if err != nil {
			return err
		}
		fmt.Printf("version:      %d\n", h.Version)
		fmt.Printf("files:        %d\n", h.FileCount)
		fmt.Printf("data written: %d bytes\n", h.TotalDataSize)
		fmt.Printf("next addr:    0x%06X\n", h.NextDataAddr)
		fmt.Printf("capacity:     %d bytes\n", f.Capacity())
		return nil

	case "ls":
		names, err := f.ListFiles()
		if err != nil {
			return err
		}
		for _, name := range names {
			e, err := f.FileInfo(name)
			if err != nil {
				return err
			}
			state := "sealed"
			if e.Active() {
				state = "active"
			}
			fmt.Printf("%-12s %8d bytes  type=0x%02X  %s\n", e.Name, e.Length, e.FileType, state)
		}
		return nil

	case "info":
		if len(args) < 1 {
			return fmt.Errorf("usage: info <file>")
		}
		e, err := f.FileInfo(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("name:   %s\n", e.Name)
		fmt.Printf("start:  0x%06X\n", e.StartAddr)
		fmt.Printf("length: %d bytes\n", e.Length)
		fmt.Printf("flags:  0x%02X\n", e.Flags)
		fmt.Printf("type:   0x%02X\n", e.FileType)
		return nil

	case "cat":
		if len(args) < 1 {
			return fmt.Errorf("usage: cat <file>")
		}
		data, err := readAll(f, args[0])
		if err != nil {
			return err
		}
		fmt.Print(hex.Dump(data))
		return nil

	case "export":
		if len(args) < 2 {
			return fmt.Errorf("usage: export <file> <out>")
		}
		data, err := readAll(f, args[0])
		if err != nil {
			return err
		}
		return os.WriteFile(args[1], data, 0644)

	case "keys":
		_, usage, err := f.KeyStats()
		if err != nil {
			return err
		}
		keys, err := f.Keys()
		if err != nil {
			return err
		}
		fmt.Printf("keys: %d, total usage: %d\n", len(keys), usage)
		for i, k := range keys {
			fmt.Printf("%3d  %s\n", i, hex.EncodeToString(k[:]))
		}
		return nil

	case "export-keys":
		if len(args) < 1 {
			return fmt.Errorf("usage: export-keys <out>")
		}
		keys, err := f.Keys()
		if err != nil {
			return err
		}
		out := make([]byte, 0, len(keys)*len(fs.Key{}))
		for _, k := range keys {
			out = append(out, k[:]...)
		}
		return os.WriteFile(args[0], out, 0644)

	case "settings":
		s, err := f.Settings()
		if err != nil {
			return err
		}
		fmt.Printf("adv interval:  %d\n", s.AdvInterval)
		fmt.Printf("scan interval: %d\n", s.ScanInterval)
		fmt.Printf("subject id:    %q\n", s.SubjectID)
		fmt.Printf("upload path:   %q\n", s.UploadPath)
		a, err := f.ADCConfig()
		if err != nil {
			return err
		}
		fmt.Printf("adc mode:      0x%02X\n", a.Mode)
		fmt.Printf("adc peaks:     %v\n", a.OutputPeaksOnly)
		fmt.Printf("adc threshold: %d mV\n", a.ThresholdMV)
		fmt.Printf("adc buffer:    %d samples\n", a.BufferSize)
		fmt.Printf("adc debounce:  %d ms\n", a.DebounceMs)
		return nil

	case "set-subject":
		if len(args) < 1 {
			return fmt.Errorf("usage: set-subject <id>")
		}
		return f.SetSubjectID(args[0])

	case "set-upload":
		if len(args) < 1 {
			return fmt.Errorf("usage: set-upload <path>")
		}
		return f.SetUploadPath(args[0])
	}

	return fmt.Errorf("unknown command %q", command)
}

// readAll reads a whole file in bounded chunks.
func readAll(f *fs.FS, name string) ([]byte, error) {
	size, err := f.FileSize(name)
	if err != nil {
		return nil, err
	}
	if size == 0 {
		return nil, nil
	}

	out := make([]byte, 0, size)
	for off := uint32(0); off < size; {
		chunk, err := f.Read(name, off, device.MaxTransfer)
		if err != nil {
			return nil, err
		}
		out = append(out, chunk...)
		off += uint32(len(chunk))
	}
	return out, nil
}
