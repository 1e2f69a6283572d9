package hub

import (
	"encoding/json"
	"sync"

	"github.com/Anand830-robot/Codewizards-Hexapod-Code/internal/log"
)

// Hub tracks subscribed clients and broadcasts status payloads to them.
type Hub struct {
	topic string

	clients    map[*Client]bool
	broadcast  chan Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
	once       sync.Once

	mu sync.RWMutex
}

// New creates a hub for the given topic. The topic only appears in logs.
func New(topic string) *Hub {
	return &Hub{
		topic:      topic,
		clients:    make(map[*Client]bool),
		broadcast:  make(chan Message, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run owns the client set. Call it in its own goroutine; it returns after
// Stop, closing every client's send channel.
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			h.clients[c] = true
			n := len(h.clients)
			h.mu.Unlock()
			log.Debug("ws client connected", "topic", h.topic, "clients", n)

		case c := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			log.Debug("ws client disconnected", "topic", h.topic, "clients", n)

		case msg := <-h.broadcast:
			h.mu.Lock()
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// Slow consumer; drop the connection rather than
					// backing up the status loop.
					close(c.send)
					delete(h.clients, c)
					log.Warn("dropped slow ws client", "topic", h.topic)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop shuts the hub down and disconnects all clients. Safe to call twice.
func (h *Hub) Stop() {
	h.once.Do(func() { close(h.done) })
}

// add registers a client, or gives up silently if the hub has stopped.
func (h *Hub) add(c *Client) {
	select {
	case h.register <- c:
	case <-h.done:
	}
}

// drop unregisters a client. After Stop nothing drains the unregister
// channel, so the send must not block a disconnecting client forever.
func (h *Hub) drop(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.done:
	}
}

// BroadcastJSON encodes v and queues it for every client. If the broadcast
// buffer is full the payload is dropped; a fresher one is always coming.
func (h *Hub) BroadcastJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	select {
	case h.broadcast <- Message{Data: data}:
	default:
		log.Warn("broadcast buffer full", "topic", h.topic)
	}
	return nil
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
