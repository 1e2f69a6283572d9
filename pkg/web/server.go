// Package web exposes the robot over HTTP: a control console page, JSON
// control endpoints, and a websocket status feed.
package web

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/effects"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hexapod"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hub"
)

// Motion is what the handlers need from the motion supervisor.
// *hexapod.Controller satisfies it.
type Motion interface {
	SetCommand(name string) (hexapod.Snapshot, string, error)
	StopAll() (hexapod.Snapshot, string)
	SetPanTilt(rig, action string, step int) (hexapod.Snapshot, string, error)
	Snapshot() hexapod.Snapshot
	ReadSensors() hexapod.SensorReport
}

// Effects is what the handlers need from the effect engine.
// *effects.Engine satisfies it.
type Effects interface {
	TriggerLed(mode string, color effects.Color) (string, string, error)
	TriggerBuzzer(mode string) (string, string, error)
	TriggerPreset(name string) (string, string, error)
}

// Server is the robot's web frontend.
type Server struct {
	app    *fiber.App
	addr   string
	motion Motion
	fx     Effects

	statusHub *hub.Hub
	stopCh    chan struct{}
}

// NewServer wires the routes over the given motion supervisor and effect
// engine. Call Start to listen.
func NewServer(addr string, motion Motion, fx Effects) *Server {
	s := &Server{
		addr:      addr,
		motion:    motion,
		fx:        fx,
		statusHub: hub.New("status"),
		stopCh:    make(chan struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Hexapod Console",
		DisableStartupMessage: true,
	})

	// Controls get poked from phones on the same LAN.
	app.Use(cors.New())

	app.Get("/", s.handleIndex)
	app.Get("/cmd", s.handleCommand)
	app.Get("/stopall", s.handleStopAll)
	app.Get("/sensors", s.handleSensors)
	app.Post("/pt", s.handlePanTilt)
	app.Post("/led", s.handleLed)
	app.Post("/buzzer", s.handleBuzzer)
	app.Post("/preset", s.handlePreset)

	api := app.Group("/api")
	api.Get("/status", s.handleStatus)
	api.Get("/commands", s.handleListCommands)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/status", websocket.New(s.handleStatusWS))

	s.app = app
	return s
}

// Start runs the status broadcaster and listens. Blocks until Shutdown.
func (s *Server) Start() error {
	go s.statusHub.Run()
	go s.statusLoop()
	log.Info("web console listening", "addr", s.addr)
	return s.app.Listen(s.addr)
}

// statusPayload is one frame of the websocket status feed.
type statusPayload struct {
	State   hexapod.Snapshot     `json:"state"`
	Sensors hexapod.SensorReport `json:"sensors"`
}

// statusLoop pushes a state frame to subscribers once a second. Sensor
// reads happen here, off the control path, so a slow ultrasonic echo only
// delays the feed.
func (s *Server) statusLoop() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			if s.statusHub.ClientCount() == 0 {
				continue
			}
			s.statusHub.BroadcastJSON(statusPayload{
				State:   s.motion.Snapshot(),
				Sensors: s.motion.ReadSensors(),
			})
		case <-s.stopCh:
			return
		}
	}
}

// Shutdown stops the listener, the status loop, and the hub.
func (s *Server) Shutdown() error {
	close(s.stopCh)
	s.statusHub.Stop()
	return s.app.Shutdown()
}
