package hexapod

// SensorReport carries the latest sensor readings. A failing sensor fills
// its error field instead of failing the whole report, so the dashboard
// can keep showing whatever still works.
type SensorReport struct {
	OK bool `json:"ok"`

	Battery       *float64 `json:"battery,omitempty"`
	BatteryStatus string   `json:"battery_status,omitempty"`
	BatteryError  string   `json:"battery_error,omitempty"`

	Distance       *float64 `json:"distance,omitempty"`
	DistanceStatus string   `json:"distance_status,omitempty"`
	DistanceError  string   `json:"distance_error,omitempty"`
}

// ReadSensors polls the battery monitor and the ultrasonic range finder.
// Sensor reads never touch the shared control state, so a slow echo cannot
// stall a concurrent movement request.
func (c *Controller) ReadSensors() SensorReport {
	rep := SensorReport{OK: true}

	if c.battery == nil {
		rep.OK = false
		rep.BatteryError = "battery monitor not fitted"
	} else if v, err := c.battery.Voltage(); err != nil {
		rep.OK = false
		rep.BatteryError = err.Error()
	} else {
		rep.Battery = &v
		rep.BatteryStatus = batteryStatus(v)
	}

	if c.rng == nil {
		rep.OK = false
		rep.DistanceError = "range finder not fitted"
	} else if d, err := c.rng.Distance(); err != nil {
		rep.OK = false
		rep.DistanceError = err.Error()
	} else {
		rep.Distance = &d
		rep.DistanceStatus = distanceStatus(d)
	}

	return rep
}

func batteryStatus(v float64) string {
	switch {
	case v <= 0:
		return "No reading"
	case v < 6.5:
		return "LOW"
	case v < 7.4:
		return "OK"
	default:
		return "FULL"
	}
}

func distanceStatus(d float64) string {
	switch {
	case d <= 0:
		return "No echo"
	case d < 10:
		return "VERY CLOSE"
	case d < 25:
		return "Close"
	default:
		return "Clear"
	}
}
