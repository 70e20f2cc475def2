package server

import (
	"sync"

	"rate-relay/src/logger"
)

// -----------------------------------------------------------------------------
// Connection Registry
// -----------------------------------------------------------------------------

// Conn is one live client channel eligible for broadcast.
type Conn interface {
	RemoteAddr() string
	Send(message []byte) error
}

// -----------------------------------------------------------------------------

// Registry is the authoritative set of connections eligible for broadcast.
// Connection loops run on their own goroutines, so membership changes and
// broadcast iteration are guarded by an explicit mutex.
type Registry struct {
	mu     sync.RWMutex
	conns  map[Conn]string
	names  func() string
	Logger *logger.Logger
}

// -----------------------------------------------------------------------------

// NewRegistry creates a Registry that labels new connections with names().
func NewRegistry(names func() string, log *logger.Logger) *Registry {
	return &Registry{
		conns:  make(map[Conn]string),
		names:  names,
		Logger: log,
	}
}

// -----------------------------------------------------------------------------

// Register assigns a freshly generated display identity to the connection and
// adds it to the set. Identities are labels, not keys; duplicates across
// connections are fine.
func (r *Registry) Register(c Conn) string {
	identity := r.names()

	r.mu.Lock()
	r.conns[c] = identity
	r.mu.Unlock()

	r.Logger.Info("%s connects as %q", c.RemoteAddr(), identity)
	return identity
}

// -----------------------------------------------------------------------------

// Unregister removes the connection from the set. Removing an absent
// connection is a no-op, so redundant unregister calls are safe.
func (r *Registry) Unregister(c Conn) {
	r.mu.Lock()
	_, present := r.conns[c]
	delete(r.conns, c)
	r.mu.Unlock()

	if present {
		r.Logger.Info("%s disconnects", c.RemoteAddr())
	}
}

// -----------------------------------------------------------------------------

// Broadcast sends the message to every currently registered connection. A
// failed send to one recipient never aborts delivery to the rest; the
// recipient that went away mid-broadcast only loses its own copy.
func (r *Registry) Broadcast(message []byte) {
	r.mu.RLock()
	recipients := make([]Conn, 0, len(r.conns))
	for c := range r.conns {
		recipients = append(recipients, c)
	}
	r.mu.RUnlock()

	for _, c := range recipients {
		if err := c.Send(message); err != nil {
			r.Logger.Warning("Send to %s failed: %v", c.RemoteAddr(), err)
		}
	}
}

// -----------------------------------------------------------------------------

// Len returns the current membership count.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns)
}
