// hexctl is a small command-line client for the hexweb console, handy for
// driving the robot from a shell on the same network.
//
//	hexctl cmd forward
//	hexctl pt head pan-left 5
//	hexctl led blink 0 200 255
//	hexctl buzzer triple
//	hexctl preset demo1
//	hexctl stop
//	hexctl sensors
//	hexctl status
//	hexctl watch
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/url"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/gorilla/websocket"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/config"
	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/httpc"
)

func main() {
	server := flag.String("server", config.Env("HEXWEB_URL", "http://127.0.0.1:5000"), "hexweb base URL")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	var err error
	switch args[0] {
	case "cmd":
		err = doCmd(*server, args[1:])
	case "stop":
		err = doGet(*server + "/stopall")
	case "sensors":
		err = doGet(*server + "/sensors")
	case "status":
		err = doGet(*server + "/api/status")
	case "pt":
		err = doPanTilt(*server, args[1:])
	case "led":
		err = doLed(*server, args[1:])
	case "buzzer":
		err = doBuzzer(*server, args[1:])
	case "preset":
		err = doPreset(*server, args[1:])
	case "watch":
		err = doWatch(*server)
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "hexctl:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: hexctl [-server URL] <cmd|stop|sensors|status|pt|led|buzzer|preset|watch> [args]")
}

func doCmd(server string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: cmd <key>")
	}
	return doGet(server + "/cmd?key=" + url.QueryEscape(args[0]))
}

func doPanTilt(server string, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: pt <rig> <action> [step]")
	}
	step := 0
	if len(args) > 2 {
		var err error
		if step, err = strconv.Atoi(args[2]); err != nil {
			return fmt.Errorf("bad step %q: %w", args[2], err)
		}
	}
	return doPost(server+"/pt", map[string]any{"rig": args[0], "cmd": args[1], "step": step})
}

func doLed(server string, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: led <mode> [r g b]")
	}
	body := map[string]any{"mode": args[0]}
	if len(args) == 4 {
		for i, ch := range []string{"r", "g", "b"} {
			v, err := strconv.Atoi(args[i+1])
			if err != nil {
				return fmt.Errorf("bad %s value %q: %w", ch, args[i+1], err)
			}
			body[ch] = v
		}
	}
	return doPost(server+"/led", body)
}

func doBuzzer(server string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: buzzer <mode>")
	}
	return doPost(server+"/buzzer", map[string]any{"mode": args[0]})
}

func doPreset(server string, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: preset <name>")
	}
	return doPost(server+"/preset", map[string]any{"name": args[0]})
}

func doGet(url string) error {
	resp, err := httpc.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printJSON(resp.Body)
}

func doPost(url string, body map[string]any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := httpc.Post(url, "application/json", data)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return printJSON(resp.Body)
}

// printJSON re-indents the server's response for the terminal.
func printJSON(r io.Reader) error {
	var v any
	if err := json.NewDecoder(r).Decode(&v); err != nil {
		return err
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

// doWatch tails the websocket status feed until interrupted.
func doWatch(server string) error {
	wsURL := strings.Replace(server, "http", "ws", 1) + "/ws/status"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		return fmt.Errorf("dial %s: %w", wsURL, err)
	}
	defer conn.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			// Interrupted or server gone; either way we are done.
			return nil
		}
		fmt.Println(string(data))
	}
}
