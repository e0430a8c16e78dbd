// internal/sampler/sampler.go
package sampler

import (
	"errors"
	"time"

	"github.com/tamzrod/framfs/internal/layout"
	"github.com/tamzrod/framfs/internal/vitals"
)

// Config is the minimal runtime config the sampler needs.
type Config struct {
	Interval time.Duration

	// Clock supplies the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Sampler is a dumb, clock-driven logger. Each cycle reads the source
// once and appends the resulting records through the sink, which
// handles day-file rotation on its own.
type Sampler struct {
	cfg  Config
	src  Source
	sink Sink
}

// New creates a sampler with immutable config.
func New(cfg Config, src Source, sink Sink) (*Sampler, error) {
	if cfg.Interval <= 0 {
		return nil, errors.New("sampler: interval must be > 0")
	}
	if src == nil {
		return nil, errors.New("sampler: source required")
	}
	if sink == nil {
		return nil, errors.New("sampler: sink required")
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &Sampler{cfg: cfg, src: src, sink: sink}, nil
}

// SampleOnce performs exactly one sample cycle: scan, battery,
// temperature. A failure aborts the cycle; records appended before the
// failure stay appended, the count in the result reflects them.
func (s *Sampler) SampleOnce() Result {
	now := s.cfg.Clock()
	res := Result{At: now}
	minute := vitals.MinuteOfDay(now)

	scan, err := s.src.Scan()
	if err != nil {
		res.Err = err
		return res
	}
	if len(scan.Keys) == 0 {
		err = s.sink.AppendSimple(minute, layout.RecordNoActivity)
	} else {
		err = s.sink.AppendDeviceScan(minute, scan.Motion, scan.Keys, scan.RSSI)
	}
	if err != nil {
		res.Err = err
		return res
	}
	res.Records++

	mv, err := s.src.BatteryMillivolts()
	if err != nil {
		res.Err = err
		return res
	}
	level, err := vitals.BatteryPercent(mv)
	if err != nil {
		res.Err = err
		return res
	}
	if err := s.sink.AppendBattery(minute, level); err != nil {
		res.Err = err
		return res
	}
	res.Records++

	deg, err := s.src.TemperatureC()
	if err != nil {
		res.Err = err
		return res
	}
	if err := s.sink.AppendTemperature(minute, deg); err != nil {
		res.Err = err
		return res
	}
	res.Records++

	return res
}
