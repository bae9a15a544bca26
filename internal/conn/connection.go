// Package conn implements Connection, ConnectionPool, and
// ConnectionFactory: the endpoint abstraction that binds a Filter, an
// AddressPool, and a PacketQueue, and the fan-out registry over a set of
// live connections.
package conn

import (
	"time"

	"github.com/google/uuid"

	"github.com/avionics-go/mavrouter/internal/firewall"
	"github.com/avionics-go/mavrouter/internal/mavaddr"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
	"github.com/avionics-go/mavrouter/internal/obs"
	"github.com/avionics-go/mavrouter/internal/pool"
	"github.com/avionics-go/mavrouter/internal/queue"
)

// Connection is one endpoint: it owns an address pool and a priority
// queue, and decides admission for outbound packets against a shared
// Filter. A mirror connection receives every packet regardless of
// destination-address matching.
type Connection struct {
	ID     uuid.UUID
	Name   string
	Mirror bool

	filter *firewall.Filter
	pool   *pool.Pool
	queue  *queue.Queue
}

// New builds a Connection bound to filter. onPush (may be nil) is invoked
// after every packet the connection's queue accepts; ConnectionFactory
// uses it to wake WaitForPacket.
func New(name string, filter *firewall.Filter, mirror bool, onPush queue.PushFunc) (*Connection, error) {
	if filter == nil {
		return nil, ErrUnboundFilter
	}
	return &Connection{
		ID:     uuid.New(),
		Name:   name,
		Mirror: mirror,
		filter: filter,
		pool:   pool.New(),
		queue:  queue.New(onPush),
	}, nil
}

// AddAddress refreshes the address pool entry for addr.
func (c *Connection) AddAddress(addr mavaddr.Address) {
	c.pool.Add(addr)
}

// Send is the admission path invoked by ConnectionPool fan-out. It
// computes this connection's candidate destination addresses, runs the
// filter against each, and pushes the packet at most once with the
// highest accepted priority across candidates.
func (c *Connection) Send(p *mavpacket.Packet) {
	if c.Mirror {
		c.queue.Push(p, 0)
		obs.QueueDepth.WithLabelValues(c.Name).Set(float64(c.queue.Len()))
		return
	}

	var candidates []mavaddr.Address
	if dest, ok := p.Dest(); ok {
		if !c.pool.Contains(dest) {
			return
		}
		candidates = []mavaddr.Address{dest}
	} else {
		candidates = c.pool.Addresses()
	}

	accepted := false
	var maxPriority int32
	for _, addr := range candidates {
		ok, pr, err := c.filter.WillAccept(p, addr)
		if err != nil {
			obs.RecursionErrors.Inc()
			obs.WithConnection(c.Name).WithError(err).Warn("dropping packet: recursion in filter evaluation")
			obs.FilterAccepts.WithLabelValues(c.Name, "error").Inc()
			return
		}
		obs.FilterAccepts.WithLabelValues(c.Name, boolLabel(ok)).Inc()
		if ok && (!accepted || pr > maxPriority) {
			maxPriority = pr
			accepted = true
		}
	}
	if accepted {
		c.queue.Push(p, maxPriority)
		obs.QueueDepth.WithLabelValues(c.Name).Set(float64(c.queue.Len()))
	}
}

// NextPacket pops from this connection's queue, honoring the same
// timeout semantics as queue.PopTimeout.
func (c *Connection) NextPacket(timeout time.Duration) *mavpacket.Packet {
	p, _ := c.queue.PopTimeout(timeout)
	if p != nil {
		obs.QueueDepth.WithLabelValues(c.Name).Set(float64(c.queue.Len()))
	}
	return p
}

// Close closes the connection's queue; pending and future pops return
// immediately with no packet.
func (c *Connection) Close() {
	c.queue.Close()
}

func boolLabel(b bool) string {
	if b {
		return "accept"
	}
	return "reject"
}
