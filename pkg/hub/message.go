// Package hub fans status updates out to websocket subscribers using the
// channel-based broadcast pattern: one goroutine owns the client set, and
// each client gets a buffered send channel so a stalled browser cannot
// block the robot loop.
package hub

// Message is a pre-encoded JSON payload queued for broadcast.
type Message struct {
	Data []byte
}
