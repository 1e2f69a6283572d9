package hexapod

import (
	"errors"
	"testing"
	"time"
)

type fakeBattery struct {
	v   float64
	err error
}

func (f fakeBattery) Voltage() (float64, error) { return f.v, f.err }

type fakeRange struct {
	d   float64
	err error
}

func (f fakeRange) Distance() (float64, error) { return f.d, f.err }

func TestReadSensors(t *testing.T) {
	ctrl := New(&mockActuator{}, Options{
		Tick:    time.Millisecond,
		Battery: fakeBattery{v: 7.6},
		Range:   fakeRange{d: 42.3},
	})

	rep := ctrl.ReadSensors()
	if !rep.OK {
		t.Fatalf("expected ok report, got %+v", rep)
	}
	if rep.Battery == nil || *rep.Battery != 7.6 {
		t.Errorf("battery = %v, want 7.6", rep.Battery)
	}
	if rep.BatteryStatus != "FULL" {
		t.Errorf("battery status = %q, want FULL", rep.BatteryStatus)
	}
	if rep.Distance == nil || *rep.Distance != 42.3 {
		t.Errorf("distance = %v, want 42.3", rep.Distance)
	}
	if rep.DistanceStatus != "Clear" {
		t.Errorf("distance status = %q, want Clear", rep.DistanceStatus)
	}
}

func TestReadSensorsPartialFailure(t *testing.T) {
	ctrl := New(&mockActuator{}, Options{
		Tick:    time.Millisecond,
		Battery: fakeBattery{err: errors.New("adc timeout")},
		Range:   fakeRange{d: 8.1},
	})

	rep := ctrl.ReadSensors()
	if rep.OK {
		t.Error("report with a failed sensor must not be ok")
	}
	if rep.BatteryError != "adc timeout" {
		t.Errorf("battery error = %q, want adc timeout", rep.BatteryError)
	}
	// The surviving sensor still reports.
	if rep.Distance == nil || *rep.Distance != 8.1 {
		t.Errorf("distance = %v, want 8.1", rep.Distance)
	}
	if rep.DistanceStatus != "VERY CLOSE" {
		t.Errorf("distance status = %q, want VERY CLOSE", rep.DistanceStatus)
	}
}

func TestBatteryStatusThresholds(t *testing.T) {
	cases := []struct {
		v    float64
		want string
	}{
		{0, "No reading"},
		{6.2, "LOW"},
		{7.0, "OK"},
		{8.4, "FULL"},
	}
	for _, tc := range cases {
		if got := batteryStatus(tc.v); got != tc.want {
			t.Errorf("batteryStatus(%v) = %q, want %q", tc.v, got, tc.want)
		}
	}
}

func TestDistanceStatusThresholds(t *testing.T) {
	cases := []struct {
		d    float64
		want string
	}{
		{-1, "No echo"},
		{5, "VERY CLOSE"},
		{20, "Close"},
		{120, "Clear"},
	}
	for _, tc := range cases {
		if got := distanceStatus(tc.d); got != tc.want {
			t.Errorf("distanceStatus(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}
