package notices

import (
	"encoding/json"
	"sync"
	"time"

	"darklands/models"
)

// DismissAfter is how long a toast stays visible without interaction.
const DismissAfter = 3000 * time.Millisecond

// Center is the per-device toast state machine: at most one visible
// toast per device, a new Show replaces it and restarts the timer (last
// write wins, nothing is queued), and a toast leaves the screen on
// timeout or explicit dismiss.
type Center struct {
	hub *Hub
	ttl time.Duration

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func NewCenter(hub *Hub, ttl time.Duration) *Center {
	return &Center{
		hub:    hub,
		ttl:    ttl,
		timers: make(map[string]*time.Timer),
	}
}

// Show makes a toast visible on the device, replacing any current one.
func (c *Center) Show(deviceID, message, kind string) {
	c.mu.Lock()
	if t, ok := c.timers[deviceID]; ok {
		t.Stop()
	}
	c.timers[deviceID] = time.AfterFunc(c.ttl, func() {
		c.Dismiss(deviceID)
	})
	c.mu.Unlock()

	c.push(deviceID, models.Toast{Action: "show", Message: message, Kind: kind})
}

// Dismiss hides the device's toast. Dismissing while idle is a no-op.
func (c *Center) Dismiss(deviceID string) {
	c.mu.Lock()
	t, visible := c.timers[deviceID]
	if visible {
		t.Stop()
		delete(c.timers, deviceID)
	}
	c.mu.Unlock()

	if visible {
		c.push(deviceID, models.Toast{Action: "dismiss"})
	}
}

// Visible reports whether the device currently has a toast on screen.
func (c *Center) Visible(deviceID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.timers[deviceID]
	return ok
}

func (c *Center) push(deviceID string, toast models.Toast) {
	data, err := json.Marshal(toast)
	if err != nil {
		return
	}
	c.hub.Push(deviceID, data)
}
