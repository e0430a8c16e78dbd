// internal/fs/settings.go
package fs

import (
	"fmt"

	"github.com/tamzrod/framfs/internal/layout"
)

// User settings live in a fixed block between the key table and the
// data region. Unlike file data they are overwritten in place.

// DefaultUploadPath is the upload path written by ClearSettings.
const DefaultUploadPath = "/TEST"

// Settings returns the cached settings block.
func (f *FS) Settings() (Settings, error) {
	if !f.ready {
		return Settings{}, ErrInit
	}
	return f.settings, nil
}

// SetSettings overwrites the whole settings block.
func (f *FS) SetSettings(s Settings) error {
	if !f.ready {
		return ErrInit
	}
	if len(s.SubjectID) >= layout.SubjectIDLen {
		return fmt.Errorf("%w: subject id %q", ErrSize, s.SubjectID)
	}
	if len(s.UploadPath) >= layout.UploadPathLen {
		return fmt.Errorf("%w: upload path %q", ErrSize, s.UploadPath)
	}
	f.settings = s
	return f.writeSettings()
}

// SetSubjectID updates only the subject identifier.
func (f *FS) SetSubjectID(id string) error {
	if !f.ready {
		return ErrInit
	}
	if len(id) >= layout.SubjectIDLen {
		return fmt.Errorf("%w: subject id %q", ErrSize, id)
	}
	f.settings.SubjectID = id
	return f.writeSettings()
}

// SetUploadPath updates only the upload path.
func (f *FS) SetUploadPath(path string) error {
	if !f.ready {
		return ErrInit
	}
	if len(path) >= layout.UploadPathLen {
		return fmt.Errorf("%w: upload path %q", ErrSize, path)
	}
	f.settings.UploadPath = path
	return f.writeSettings()
}

// ADCConfig returns the cached acquisition configuration.
func (f *FS) ADCConfig() (ADCConfig, error) {
	if !f.ready {
		return ADCConfig{}, ErrInit
	}
	return f.adcConfig, nil
}

// SetADCConfig validates and persists a new acquisition configuration.
func (f *FS) SetADCConfig(c ADCConfig) error {
	if !f.ready {
		return ErrInit
	}
	if c.Mode > layout.ADCModeThresholdEvent {
		return fmt.Errorf("%w: adc mode 0x%02X", ErrSize, c.Mode)
	}
	if c.BufferSize < 1 || c.BufferSize > layout.ADCMaxSamples {
		return fmt.Errorf("%w: adc buffer size %d", ErrSize, c.BufferSize)
	}
	f.adcConfig = c
	return f.writeSettings()
}

// defaultADCConfig is the timer-burst regime a fresh node starts in.
func defaultADCConfig() ADCConfig {
	return ADCConfig{
		Mode:            layout.ADCModeTimerBurst,
		ThresholdMV:     0,
		BufferSize:      layout.ADCMaxSamples,
		DebounceMs:      5000,
		OutputPeaksOnly: false,
	}
}

// ClearSettings restores defaults and persists them.
func (f *FS) ClearSettings() error {
	f.settings = Settings{
		AdvInterval:  0,
		ScanInterval: 0,
		SubjectID:    "",
		UploadPath:   DefaultUploadPath,
	}
	f.adcConfig = defaultADCConfig()
	return f.writeSettings()
}

func (f *FS) readSettings() error {
	buf := make([]byte, layout.SettingsSize)
	if err := f.readAt(layout.SettingsAddr(), buf); err != nil {
		return err
	}
	var s Settings
	var a ADCConfig
	magic, _ := unpackSettings(buf, &s, &a)
	if magic != layout.SettingsMagic {
		return f.ClearSettings()
	}
	f.settings = s
	f.adcConfig = a
	return nil
}

func (f *FS) writeSettings() error {
	return f.writeAt(layout.SettingsAddr(), packSettings(&f.settings, &f.adcConfig))
}
