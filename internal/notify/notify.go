package notify

import (
	"sync"
	"time"
)

// TTL is how long a notice stays visible before auto-dismissing.
const TTL = 4 * time.Second

type Kind string

const (
	Error   Kind = "error"
	Success Kind = "success"
	Info    Kind = "info"
)

type Notice struct {
	ID        int
	Kind      Kind
	Message   string
	CreatedAt time.Time
}

// Center holds the dismissible notices shown by the web UI. Notices expire
// TTL after creation; Active prunes expired ones.
type Center struct {
	mu      sync.Mutex
	nextID  int
	notices []Notice
	now     func() time.Time
}

func NewCenter() *Center {
	return &Center{now: time.Now}
}

// Push adds a notice and returns its id.
func (c *Center) Push(kind Kind, message string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.nextID++
	c.notices = append(c.notices, Notice{
		ID:        c.nextID,
		Kind:      kind,
		Message:   message,
		CreatedAt: c.now(),
	})
	return c.nextID
}

// Dismiss removes a notice before its TTL elapses.
func (c *Center) Dismiss(id int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, n := range c.notices {
		if n.ID == id {
			c.notices = append(c.notices[:i], c.notices[i+1:]...)
			return
		}
	}
}

// Active returns the notices still within their TTL and drops the rest.
func (c *Center) Active() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	kept := c.notices[:0]
	for _, n := range c.notices {
		if now.Sub(n.CreatedAt) < TTL {
			kept = append(kept, n)
		}
	}
	c.notices = kept
	out := make([]Notice, len(kept))
	copy(out, kept)
	return out
}
