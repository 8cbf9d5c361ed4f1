package notices

import (
	"sync"
)

type Client struct {
	DeviceID string
	Send     chan []byte
}

type broadcastMsg struct {
	DeviceID string
	Data     []byte
}

// Hub fans toast frames out to every socket a device has open. A device
// with no connected sockets simply misses the frame; toasts are ephemeral
// and never queued for later delivery.
type Hub struct {
	devices    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	stop       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		devices:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		stop:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.devices[c.DeviceID] == nil {
				h.devices[c.DeviceID] = make(map[*Client]bool)
			}
			h.devices[c.DeviceID][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.devices[c.DeviceID]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.devices[m.DeviceID] {
				select {
				case c.Send <- m.Data:
				default:
					// Slow socket; drop it rather than block the hub.
					close(c.Send)
					delete(h.devices[m.DeviceID], c)
				}
			}
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for _, conns := range h.devices {
				for c := range conns {
					close(c.Send)
				}
			}
			h.devices = make(map[string]map[*Client]bool)
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.stop)
}

// Push hands a frame to the hub without blocking a stopped hub.
func (h *Hub) Push(deviceID string, data []byte) {
	select {
	case h.broadcast <- broadcastMsg{DeviceID: deviceID, Data: data}:
	case <-h.stop:
	}
}

func (h *Hub) Register(c *Client) {
	select {
	case h.register <- c:
	case <-h.stop:
	}
}

func (h *Hub) Unregister(c *Client) {
	select {
	case h.unregister <- c:
	case <-h.stop:
	}
}
