// internal/device/modbusdev/client_test.go
package modbusdev

import (
	"bytes"
	"fmt"
	"testing"
)

// fakeBank is an in-memory holding register bank. It records request
// quantities so chunking against the FC limits can be asserted.
type fakeBank struct {
	regs      []byte // 2 bytes per register
	readQtys  []uint16
	writeQtys []uint16
}

func newFakeBank(registers int) *fakeBank {
	return &fakeBank{regs: make([]byte, registers*2)}
}

func (b *fakeBank) ReadHoldingRegisters(address, quantity uint16) ([]byte, error) {
	b.readQtys = append(b.readQtys, quantity)
	off := int(address) * 2
	end := off + int(quantity)*2
	if end > len(b.regs) {
		return nil, fmt.Errorf("fake: read beyond bank")
	}
	out := make([]byte, int(quantity)*2)
	copy(out, b.regs[off:end])
	return out, nil
}

func (b *fakeBank) WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error) {
	b.writeQtys = append(b.writeQtys, quantity)
	if len(value) != int(quantity)*2 {
		return nil, fmt.Errorf("fake: value length %d for qty %d", len(value), quantity)
	}
	off := int(address) * 2
	if off+len(value) > len(b.regs) {
		return nil, fmt.Errorf("fake: write beyond bank")
	}
	copy(b.regs[off:], value)
	return nil, nil
}

func newTestDev(registers int) (*Dev, *fakeBank) {
	bank := newFakeBank(registers)
	return &Dev{client: bank, capacity: uint32(registers * 2)}, bank
}

func TestDev_AlignedRoundTrip(t *testing.T) {
	d, _ := newTestDev(32)

	want := []byte{1, 2, 3, 4, 5, 6}
	if err := d.Write(8, want); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	got := make([]byte, 6)
	if err := d.Read(8, got); err != nil {
		t.Fatalf("Read err=%v", err)
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X want % X", got, want)
	}
}

func TestDev_UnalignedWritePreservesNeighbors(t *testing.T) {
	d, _ := newTestDev(8)

	if err := d.Write(0, []byte{0xA0, 0xA1, 0xA2, 0xA3, 0xA4, 0xA5}); err != nil {
		t.Fatalf("seed err=%v", err)
	}
	// odd start, odd end: both edge registers are shared
	if err := d.Write(1, []byte{0xB1, 0xB2, 0xB3}); err != nil {
		t.Fatalf("Write err=%v", err)
	}

	got := make([]byte, 6)
	if err := d.Read(0, got); err != nil {
		t.Fatalf("Read err=%v", err)
	}
	want := []byte{0xA0, 0xB1, 0xB2, 0xB3, 0xA4, 0xA5}
	if !bytes.Equal(got, want) {
		t.Fatalf("got % X want % X", got, want)
	}
}

func TestDev_UnalignedRead(t *testing.T) {
	d, _ := newTestDev(8)

	if err := d.Write(0, []byte{10, 11, 12, 13}); err != nil {
		t.Fatalf("seed err=%v", err)
	}
	got := make([]byte, 2)
	if err := d.Read(1, got); err != nil {
		t.Fatalf("Read err=%v", err)
	}
	if got[0] != 11 || got[1] != 12 {
		t.Fatalf("got % X", got)
	}
}

func TestDev_ChunksLargeTransfers(t *testing.T) {
	d, bank := newTestDev(300)

	data := make([]byte, 300*2)
	for i := range data {
		data[i] = byte(i)
	}
	if err := d.Write(0, data); err != nil {
		t.Fatalf("Write err=%v", err)
	}
	// 300 registers split at the FC 16 limit: 123 + 123 + 54
	if len(bank.writeQtys) != 3 || bank.writeQtys[0] != maxWriteRegisters || bank.writeQtys[2] != 54 {
		t.Fatalf("write chunks: %v", bank.writeQtys)
	}

	bank.readQtys = nil
	got := make([]byte, len(data))
	if err := d.Read(0, got); err != nil {
		t.Fatalf("Read err=%v", err)
	}
	// 300 registers split at the FC 3 limit: 125 + 125 + 50
	if len(bank.readQtys) != 3 || bank.readQtys[0] != maxReadRegisters || bank.readQtys[2] != 50 {
		t.Fatalf("read chunks: %v", bank.readQtys)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDev_RejectsOutOfBounds(t *testing.T) {
	d, _ := newTestDev(4)
	if err := d.Write(7, []byte{1, 2}); err == nil {
		t.Fatalf("write past capacity accepted")
	}
	if err := d.Read(8, make([]byte, 1)); err == nil {
		t.Fatalf("read past capacity accepted")
	}
}

func TestNew_ValidatesConfig(t *testing.T) {
	if _, err := New(Config{Mode: "tcp", Capacity: 64}); err == nil {
		t.Fatalf("missing endpoint accepted")
	}
	if _, err := New(Config{Mode: "tcp", Endpoint: "h:502", Capacity: 63}); err == nil {
		t.Fatalf("odd capacity accepted")
	}
	// register index 65536 does not exist in a 16-bit register space
	if _, err := New(Config{Mode: "tcp", Endpoint: "h:502", Capacity: MaxCapacity + 2}); err == nil {
		t.Fatalf("capacity beyond the register map accepted")
	}
	if _, err := New(Config{Mode: "ascii", Endpoint: "h:502", Capacity: 64}); err == nil {
		t.Fatalf("unknown mode accepted")
	}
}
