// hexweb runs the hexapod's web control console: the motion supervisor,
// the effect engine, and the HTTP/websocket frontend.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/config"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/effects"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/freenove"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/hexapod"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/pkg/web"
)

func main() {
	addr := flag.String("addr", config.Env("HEXWEB_ADDR", ":5000"), "listen address")
	daemonURL := flag.String("daemon", config.Env("HEXWEB_DAEMON", freenove.DefaultDaemonURL), "kinematics daemon base URL")
	sim := flag.Bool("sim", false, "use the in-memory simulator instead of the daemon")
	offsetsFile := flag.String("offsets", config.DefaultOffsetsFile, "servo offsets file")
	limitsFile := flag.String("limits", config.DefaultLimitsFile, "pan/tilt limits file")
	logLevel := flag.String("log-level", config.Env("HEXWEB_LOG", "info"), "log level (debug, info, warn, error)")
	flag.Parse()

	log.Init(*logLevel)

	var (
		act     hexapod.Actuator
		leds    hexapod.LightStrip
		buzzer  hexapod.Sounder
		rng     hexapod.RangeFinder
		battery hexapod.BatteryMonitor
	)
	if *sim {
		s := freenove.NewSimulator()
		act, leds, buzzer, rng, battery = s, s, s, s, s
		log.Info("running against simulator")
	} else {
		d := freenove.NewDaemon(*daemonURL)
		act, leds, buzzer, rng, battery = d, d, d, d, d
		log.Info("running against daemon", "url", *daemonURL)
	}

	bounds := config.LoadBounds(*limitsFile)
	ctrl := hexapod.New(act, hexapod.Options{
		Bounds: hexapod.Bounds{
			PanMin: bounds.PanMin, PanMax: bounds.PanMax,
			TiltMin: bounds.TiltMin, TiltMax: bounds.TiltMax,
		},
		Offset:  hexapod.OffsetFunc(config.LoadOffsets(*offsetsFile)),
		Battery: battery,
		Range:   rng,
	})

	if err := ctrl.Home(); err != nil {
		log.Warn("startup homing failed", "error", err)
	}
	go ctrl.Run()

	engine := effects.New(leds, buzzer, ctrl)
	server := web.NewServer(*addr, ctrl, engine)

	errCh := make(chan error, 1)
	go func() { errCh <- server.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("shutting down", "signal", sig.String())
	case err := <-errCh:
		log.Error("server failed", "error", err)
	}

	if err := server.Shutdown(); err != nil {
		log.Warn("server shutdown", "error", err)
	}
	engine.Quiesce()
	ctrl.Shutdown()
}
