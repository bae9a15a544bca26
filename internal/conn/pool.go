package conn

import (
	"sync"

	"github.com/avionics-go/mavrouter/internal/mavpacket"
	"github.com/avionics-go/mavrouter/internal/obs"
)

// Pool is ConnectionPool: the registry of live connections. Fan-out skips
// whichever connection a packet arrived on.
//
// The specification models this as a set of weak references, pruned
// opportunistically as they go stale. Go has no ergonomic weak-reference
// idiom for this outside the runtime/weak package (which targets
// GC-observability, not lifecycle management), so this registry uses
// plain strong references with an explicit Remove — callers are expected
// to Remove a connection when its owning transport shuts down, the same
// discipline net/http and most Go connection managers use.
type Pool struct {
	mu    sync.RWMutex
	conns map[*Connection]struct{}
}

// NewPool builds an empty connection pool.
func NewPool() *Pool {
	return &Pool{conns: make(map[*Connection]struct{})}
}

// Add registers c with the pool.
func (p *Pool) Add(c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.conns[c] = struct{}{}
	obs.ConnectionsLive.Set(float64(len(p.conns)))
}

// Remove deregisters c.
func (p *Pool) Remove(c *Connection) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.conns, c)
	obs.ConnectionsLive.Set(float64(len(p.conns)))
}

// Connections returns a snapshot of the currently registered connections.
func (p *Pool) Connections() []*Connection {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Connection, 0, len(p.conns))
	for c := range p.conns {
		out = append(out, c)
	}
	return out
}

// Send fans packet out to every registered connection except the one it
// arrived on (identified by packet.Connection()).
func (p *Pool) Send(packet *mavpacket.Packet) {
	source, _ := packet.Connection().(*Connection)
	for _, c := range p.Connections() {
		if c == source {
			continue
		}
		c.Send(packet)
	}
}
