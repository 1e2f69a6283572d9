// Package freenove provides the hardware-facing adapters behind the core's
// actuator and peripheral interfaces: an HTTP client for the on-robot
// kinematics daemon, and an in-memory simulator for development and tests.
// Gait computation, servo PWM, LEDs, buzzer, and sensors all live on the
// daemon side; this package only ships requests to it.
package freenove

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/httpc"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hexapod"
)

// DefaultDaemonURL is where the kinematics daemon listens on the robot.
const DefaultDaemonURL = "http://127.0.0.1:8100"

// Daemon is an HTTP client for the kinematics daemon. It implements the
// full hexapod.Actuator plus the peripheral and sensor interfaces.
type Daemon struct {
	baseURL string
	client  *http.Client
}

// NewDaemon creates a client for the daemon at baseURL.
func NewDaemon(baseURL string) *Daemon {
	if baseURL == "" {
		baseURL = DefaultDaemonURL
	}
	return &Daemon{baseURL: baseURL, client: httpc.Client}
}

// ExecuteGaitStep runs one gait cycle increment.
func (d *Daemon) ExecuteGaitStep(p hexapod.GaitParams) error {
	return d.post("/api/gait", map[string]int{
		"mode":        p.Mode,
		"lateral":     p.Lateral,
		"direction":   p.Direction,
		"step_height": p.StepHeight,
		"turn_rate":   p.TurnRate,
	})
}

// MoveToPose moves the body to an absolute pose.
func (d *Daemon) MoveToPose(x, y, z int) error {
	return d.post("/api/pose", map[string]int{"x": x, "y": y, "z": z})
}

// SetServoAngle sets one servo channel.
func (d *Daemon) SetServoAngle(port, angle int) error {
	return d.post("/api/servo", map[string]int{"port": port, "angle": angle})
}

// Relax drops PWM on every servo.
func (d *Daemon) Relax() error {
	return d.post("/api/relax", struct{}{})
}

// SetColor sets the LED strip to one color.
func (d *Daemon) SetColor(r, g, b int) error {
	return d.post("/api/led", map[string]int{"r": r, "g": g, "b": b})
}

// Off turns the LED strip off.
func (d *Daemon) Off() error {
	return d.SetColor(0, 0, 0)
}

// SetState switches the buzzer.
func (d *Daemon) SetState(on bool) error {
	return d.post("/api/buzzer", map[string]bool{"on": on})
}

// Distance reads the ultrasonic sensor in centimeters.
func (d *Daemon) Distance() (float64, error) {
	var out struct {
		Distance float64 `json:"distance"`
	}
	if err := d.get("/api/ultrasonic", &out); err != nil {
		return 0, err
	}
	return out.Distance, nil
}

// Voltage reads the battery voltage in volts.
func (d *Daemon) Voltage() (float64, error) {
	var out struct {
		Voltage float64 `json:"voltage"`
	}
	if err := d.get("/api/battery", &out); err != nil {
		return 0, err
	}
	return out.Voltage, nil
}

func (d *Daemon) post(path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s payload: %w", path, err)
	}
	resp, err := d.client.Post(d.baseURL+path, "application/json", bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("daemon %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("daemon %s: status %s", path, resp.Status)
	}
	return nil
}

func (d *Daemon) get(path string, out any) error {
	resp, err := d.client.Get(d.baseURL + path)
	if err != nil {
		return fmt.Errorf("daemon %s: %w", path, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("daemon %s: status %s", path, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode daemon %s response: %w", path, err)
	}
	return nil
}

var _ hexapod.Actuator = (*Daemon)(nil)
var _ hexapod.LightStrip = (*Daemon)(nil)
var _ hexapod.Sounder = (*Daemon)(nil)
var _ hexapod.RangeFinder = (*Daemon)(nil)
var _ hexapod.BatteryMonitor = (*Daemon)(nil)
