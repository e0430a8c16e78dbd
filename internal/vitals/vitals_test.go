// internal/vitals/vitals_test.go
package vitals

import (
	"errors"
	"testing"
	"time"
)

func TestDateKey(t *testing.T) {
	cases := []struct {
		when time.Time
		want uint32
	}{
		{time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), 240120},
		{time.Date(2024, 12, 31, 23, 59, 0, 0, time.UTC), 241231},
		{time.Date(2030, 6, 5, 12, 0, 0, 0, time.UTC), 300605},
		{time.Date(2100, 1, 1, 0, 0, 0, 0, time.UTC), 101},
	}
	for _, tc := range cases {
		if got := DateKey(tc.when); got != tc.want {
			t.Errorf("DateKey(%v): got %d want %d", tc.when, got, tc.want)
		}
	}
}

func TestDateKeyOrderedWithinDay(t *testing.T) {
	d1 := time.Date(2024, 1, 20, 23, 59, 59, 0, time.UTC)
	d2 := d1.Add(time.Second)
	if DateKey(d1) >= DateKey(d2) {
		t.Fatalf("midnight boundary: %d then %d", DateKey(d1), DateKey(d2))
	}
}

func TestMinuteOfDay(t *testing.T) {
	cases := []struct {
		when time.Time
		want uint16
	}{
		{time.Date(2024, 1, 20, 0, 0, 30, 0, time.UTC), 0},
		{time.Date(2024, 1, 20, 1, 5, 0, 0, time.UTC), 65},
		{time.Date(2024, 1, 20, 23, 59, 0, 0, time.UTC), 1439},
	}
	for _, tc := range cases {
		if got := MinuteOfDay(tc.when); got != tc.want {
			t.Errorf("MinuteOfDay(%v): got %d want %d", tc.when, got, tc.want)
		}
	}
}

func TestBatteryPercent(t *testing.T) {
	cases := []struct {
		mv      uint16
		want    uint8
		wantErr bool
	}{
		{2000, 0, false},
		{2500, 50, false},
		{3000, 100, false},
		{3150, 100, false}, // tolerance above full clamps to 100
		{1999, 0, true},
		{3201, 0, true},
	}
	for _, tc := range cases {
		got, err := BatteryPercent(tc.mv)
		if tc.wantErr {
			if !errors.Is(err, ErrBatteryRange) {
				t.Errorf("BatteryPercent(%d): err=%v, want ErrBatteryRange", tc.mv, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("BatteryPercent(%d): err=%v", tc.mv, err)
			continue
		}
		if got != tc.want {
			t.Errorf("BatteryPercent(%d): got %d want %d", tc.mv, got, tc.want)
		}
	}
}
