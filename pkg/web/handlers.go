package web

import (
	_ "embed"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/effects"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hexapod"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hub"
)

//go:embed index.html
var indexHTML []byte

// handleIndex serves the embedded control console.
func (s *Server) handleIndex(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(indexHTML)
}

// keyCommands maps the console's single-letter keys onto command names.
// Full command names pass through unchanged.
var keyCommands = map[string]string{
	"w": "forward",
	"s": "backward",
	"a": "strafe-left",
	"d": "strafe-right",
	"j": "turn-left",
	"l": "turn-right",
	"i": "raise",
	"k": "lower",
	"t": "tabletop-pose",
	"r": "reset-pose",
}

// handleCommand dispatches a movement command: GET /cmd?key=w or
// /cmd?key=forward. Unknown keys report ok:false with an explanatory
// message; the robot keeps doing whatever it was doing.
func (s *Server) handleCommand(c *fiber.Ctx) error {
	key := strings.ToLower(c.Query("key"))
	name := key
	if mapped, ok := keyCommands[key]; ok {
		name = mapped
	}
	snap, msg, err := s.motion.SetCommand(name)
	if err != nil {
		return c.JSON(fiber.Map{"ok": false, "key": key, "message": msg})
	}
	return c.JSON(fiber.Map{"ok": true, "key": key, "message": msg, "state": snap})
}

// handleStopAll engages the soft emergency stop.
func (s *Server) handleStopAll(c *fiber.Ctx) error {
	snap, msg := s.motion.StopAll()
	return c.JSON(fiber.Map{"ok": true, "message": msg, "state": snap})
}

// panTiltRequest is the body of POST /pt.
type panTiltRequest struct {
	Rig  string `json:"rig"`
	Cmd  string `json:"cmd"`
	Step int    `json:"step"`
}

// handlePanTilt nudges a pan/tilt rig.
func (s *Server) handlePanTilt(c *fiber.Ctx) error {
	var req panTiltRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "bad request body"})
	}
	if req.Rig == "" {
		req.Rig = hexapod.RigPhone
	}

	snap, msg, err := s.motion.SetPanTilt(req.Rig, req.Cmd, req.Step)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": msg})
	}
	r := snap.Rigs[req.Rig]
	return c.JSON(fiber.Map{"ok": true, "message": msg, "pan": r.Pan, "tilt": r.Tilt})
}

// handleSensors returns battery and ultrasonic readings. A failed sensor
// degrades the report instead of erroring the request.
func (s *Server) handleSensors(c *fiber.Ctx) error {
	return c.JSON(s.motion.ReadSensors())
}

// ledRequest is the body of POST /led.
type ledRequest struct {
	Mode string `json:"mode"`
	R    int    `json:"r"`
	G    int    `json:"g"`
	B    int    `json:"b"`
}

func (s *Server) handleLed(c *fiber.Ctx) error {
	req := ledRequest{Mode: effects.LedSolid}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "bad request body"})
	}

	id, msg, err := s.fx.TriggerLed(req.Mode, effects.Color{R: req.R, G: req.G, B: req.B})
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": msg})
	}
	return c.JSON(fiber.Map{"ok": true, "message": msg, "run_id": id})
}

// buzzerRequest is the body of POST /buzzer.
type buzzerRequest struct {
	Mode string `json:"mode"`
}

func (s *Server) handleBuzzer(c *fiber.Ctx) error {
	req := buzzerRequest{Mode: effects.BuzzPulse}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "bad request body"})
	}

	id, msg, err := s.fx.TriggerBuzzer(req.Mode)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": msg})
	}
	return c.JSON(fiber.Map{"ok": true, "message": msg, "run_id": id})
}

// presetRequest is the body of POST /preset.
type presetRequest struct {
	Name string `json:"name"`
}

func (s *Server) handlePreset(c *fiber.Ctx) error {
	var req presetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": "bad request body"})
	}

	id, msg, err := s.fx.TriggerPreset(req.Name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"ok": false, "message": msg})
	}
	return c.JSON(fiber.Map{"ok": true, "message": msg, "run_id": id})
}

// handleStatus returns the current state snapshot.
func (s *Server) handleStatus(c *fiber.Ctx) error {
	return c.JSON(s.motion.Snapshot())
}

// handleListCommands returns the movement command registry.
func (s *Server) handleListCommands(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"commands": hexapod.CommandNames()})
}

// handleStatusWS subscribes a websocket client to the status feed. The
// first frame is sent immediately; subsequent frames come from statusLoop.
func (s *Server) handleStatusWS(conn *websocket.Conn) {
	conn.WriteJSON(statusPayload{
		State:   s.motion.Snapshot(),
		Sensors: s.motion.ReadSensors(),
	})
	client := hub.NewClient(s.statusHub, conn)
	client.Run()
}
