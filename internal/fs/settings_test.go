// internal/fs/settings_test.go
package fs

import (
	"errors"
	"strings"
	"testing"

	"github.com/tamzrod/framfs/internal/device"
	"github.com/tamzrod/framfs/internal/layout"
)

func TestSettings_DefaultsAfterFormat(t *testing.T) {
	f := newTestFS(t)

	s, err := f.Settings()
	if err != nil {
		t.Fatalf("Settings err=%v", err)
	}
	if s.AdvInterval != 0 || s.ScanInterval != 0 {
		t.Fatalf("intervals: got %d/%d want 0/0", s.AdvInterval, s.ScanInterval)
	}
	if s.SubjectID != "" {
		t.Fatalf("subject id: got %q want empty", s.SubjectID)
	}
	if s.UploadPath != DefaultUploadPath {
		t.Fatalf("upload path: got %q want %q", s.UploadPath, DefaultUploadPath)
	}
}

func TestSettings_PersistAcrossRemount(t *testing.T) {
	dev := device.NewMem(testCapacity)
	f, err := New(dev)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	want := Settings{
		AdvInterval:  1000,
		ScanInterval: 30,
		SubjectID:    "SUBJ-042",
		UploadPath:   "/data/2024",
	}
	if err := f.SetSettings(want); err != nil {
		t.Fatalf("SetSettings err=%v", err)
	}

	// remount on the same device
	f2, err := New(dev)
	if err != nil {
		t.Fatalf("remount err=%v", err)
	}
	got, err := f2.Settings()
	if err != nil {
		t.Fatalf("Settings err=%v", err)
	}
	if got != want {
		t.Fatalf("settings after remount: got %+v want %+v", got, want)
	}
}

func TestSettings_FieldSetters(t *testing.T) {
	f := newTestFS(t)

	if err := f.SetSubjectID("RAT-7"); err != nil {
		t.Fatalf("SetSubjectID err=%v", err)
	}
	if err := f.SetUploadPath("/upload"); err != nil {
		t.Fatalf("SetUploadPath err=%v", err)
	}

	s, err := f.Settings()
	if err != nil {
		t.Fatalf("Settings err=%v", err)
	}
	if s.SubjectID != "RAT-7" || s.UploadPath != "/upload" {
		t.Fatalf("got %+v", s)
	}
}

func TestSettings_RejectsOversizedStrings(t *testing.T) {
	f := newTestFS(t)

	longID := strings.Repeat("x", layout.SubjectIDLen)
	if err := f.SetSubjectID(longID); !errors.Is(err, ErrSize) {
		t.Fatalf("SetSubjectID err=%v, want ErrSize", err)
	}
	longPath := strings.Repeat("p", layout.UploadPathLen)
	if err := f.SetUploadPath(longPath); !errors.Is(err, ErrSize) {
		t.Fatalf("SetUploadPath err=%v, want ErrSize", err)
	}
	if err := f.SetSettings(Settings{SubjectID: longID}); !errors.Is(err, ErrSize) {
		t.Fatalf("SetSettings err=%v, want ErrSize", err)
	}

	// maximum legal lengths still fit
	okID := strings.Repeat("x", layout.SubjectIDLen-1)
	if err := f.SetSubjectID(okID); err != nil {
		t.Fatalf("SetSubjectID max len err=%v", err)
	}
	okPath := strings.Repeat("p", layout.UploadPathLen-1)
	if err := f.SetUploadPath(okPath); err != nil {
		t.Fatalf("SetUploadPath max len err=%v", err)
	}
}

func TestADCConfig_DefaultsAfterFormat(t *testing.T) {
	f := newTestFS(t)

	a, err := f.ADCConfig()
	if err != nil {
		t.Fatalf("ADCConfig err=%v", err)
	}
	want := ADCConfig{
		Mode:       layout.ADCModeTimerBurst,
		BufferSize: layout.ADCMaxSamples,
		DebounceMs: 5000,
	}
	if a != want {
		t.Fatalf("defaults: got %+v want %+v", a, want)
	}
}

func TestADCConfig_PersistAcrossRemount(t *testing.T) {
	dev := device.NewMem(testCapacity)
	f, err := New(dev)
	if err != nil {
		t.Fatalf("New err=%v", err)
	}

	want := ADCConfig{
		Mode:            layout.ADCModeThresholdEvent,
		OutputPeaksOnly: true,
		ThresholdMV:     1200,
		BufferSize:      256,
		DebounceMs:      250,
	}
	if err := f.SetADCConfig(want); err != nil {
		t.Fatalf("SetADCConfig err=%v", err)
	}

	f2, err := New(dev)
	if err != nil {
		t.Fatalf("remount err=%v", err)
	}
	got, err := f2.ADCConfig()
	if err != nil {
		t.Fatalf("ADCConfig err=%v", err)
	}
	if got != want {
		t.Fatalf("adc config after remount: got %+v want %+v", got, want)
	}
}

func TestADCConfig_Validates(t *testing.T) {
	f := newTestFS(t)

	cases := []struct {
		name string
		cfg  ADCConfig
	}{
		{"unknown mode", ADCConfig{Mode: 3, BufferSize: 100}},
		{"zero buffer", ADCConfig{Mode: layout.ADCModeTimerBurst}},
		{"buffer over max", ADCConfig{Mode: layout.ADCModeTimerBurst, BufferSize: layout.ADCMaxSamples + 1}},
	}
	for _, tc := range cases {
		if err := f.SetADCConfig(tc.cfg); !errors.Is(err, ErrSize) {
			t.Fatalf("%s: expected ErrSize, got %v", tc.name, err)
		}
	}

	// rejected configs must not overwrite the stored one
	a, err := f.ADCConfig()
	if err != nil {
		t.Fatalf("ADCConfig err=%v", err)
	}
	if a.Mode != layout.ADCModeTimerBurst || a.BufferSize != layout.ADCMaxSamples {
		t.Fatalf("stored config changed: %+v", a)
	}
}

func TestSettings_ClearRestoresDefaults(t *testing.T) {
	f := newTestFS(t)

	if err := f.SetSettings(Settings{AdvInterval: 5, SubjectID: "X", UploadPath: "/y"}); err != nil {
		t.Fatalf("SetSettings err=%v", err)
	}
	if err := f.SetADCConfig(ADCConfig{Mode: layout.ADCModePeriEvent, BufferSize: 10, DebounceMs: 1}); err != nil {
		t.Fatalf("SetADCConfig err=%v", err)
	}
	if err := f.ClearSettings(); err != nil {
		t.Fatalf("ClearSettings err=%v", err)
	}
	s, err := f.Settings()
	if err != nil {
		t.Fatalf("Settings err=%v", err)
	}
	if s.AdvInterval != 0 || s.SubjectID != "" || s.UploadPath != DefaultUploadPath {
		t.Fatalf("after clear: %+v", s)
	}
	a, err := f.ADCConfig()
	if err != nil {
		t.Fatalf("ADCConfig err=%v", err)
	}
	if a.Mode != layout.ADCModeTimerBurst || a.BufferSize != layout.ADCMaxSamples || a.DebounceMs != 5000 {
		t.Fatalf("adc after clear: %+v", a)
	}
}
