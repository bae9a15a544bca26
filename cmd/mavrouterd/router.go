package main

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/avionics-go/mavrouter/internal/conn"
	"github.com/avionics-go/mavrouter/internal/config"
	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/firewall"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
	"github.com/avionics-go/mavrouter/internal/obs"
	"github.com/avionics-go/mavrouter/internal/transport"
)

// Router owns the connection pool and the goroutine-per-interface
// ingress/egress loops, grounded on the same lifecycle shape as the
// flight-control process this repository's ancestry uses: a context for
// cancellation, a WaitGroup joined on shutdown.
type Router struct {
	ctx    context.Context
	filter *firewall.Filter
	pool   *conn.Pool
	wg     sync.WaitGroup

	mu          sync.RWMutex
	connections map[string]*conn.Connection
	streams     map[string]transport.Stream
}

// NewRouter builds a Router bound to filter.
func NewRouter(ctx context.Context, filter *firewall.Filter) (*Router, error) {
	if filter == nil {
		return nil, fmt.Errorf("router: no filter")
	}
	return &Router{
		ctx:         ctx,
		filter:      filter,
		pool:        conn.NewPool(),
		connections: make(map[string]*conn.Connection),
		streams:     make(map[string]transport.Stream),
	}, nil
}

// AddInterface opens the interface's transport and binds a Connection to
// it, registered with the router's pool.
func (r *Router) AddInterface(iface config.Interface) error {
	var stream transport.Stream
	var err error
	switch {
	case iface.Serial != nil:
		stream, err = transport.OpenSerial(iface.Serial.Device, iface.Serial.Baud)
	case iface.UDP != nil:
		stream, err = transport.OpenUDP(iface.UDP.Bind, iface.UDP.Remote)
	case iface.PcapReplay != nil:
		stream, err = transport.OpenPcapReplay(iface.PcapReplay.Path)
	default:
		return fmt.Errorf("interface %q names no serial, UDP, or pcap-replay descriptor", iface.Name)
	}
	if err != nil {
		return fmt.Errorf("open interface %q: %w", iface.Name, err)
	}

	c, err := conn.New(iface.Name, r.filter, iface.Mirror, nil)
	if err != nil {
		stream.Close()
		return fmt.Errorf("bind connection %q: %w", iface.Name, err)
	}

	r.mu.Lock()
	r.connections[iface.Name] = c
	r.streams[iface.Name] = stream
	r.mu.Unlock()
	r.pool.Add(c)
	return nil
}

// Connections returns a snapshot of the router's registered connections,
// keyed by interface name.
func (r *Router) Connections() map[string]*conn.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]*conn.Connection, len(r.connections))
	for k, v := range r.connections {
		out[k] = v
	}
	return out
}

// Start launches one ingress and one egress goroutine per interface.
func (r *Router) Start() {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for name, c := range r.connections {
		stream := r.streams[name]
		parser := mavpacket.NewParser(dialect.Common, name)

		r.wg.Add(2)
		go func(name string, c *conn.Connection, stream transport.Stream, parser *mavpacket.Parser) {
			defer r.wg.Done()
			transport.RunIngress(r.ctx, name, stream, parser, func(pkt *mavpacket.Packet) {
				pkt.SetConnection(c)
				c.AddAddress(pkt.Source())
				r.pool.Send(pkt)
			})
		}(name, c, stream, parser)

		go func(name string, c *conn.Connection, stream transport.Stream) {
			defer r.wg.Done()
			transport.RunEgress(r.ctx, name, stream, func(timeout time.Duration) *mavpacket.Packet {
				return c.NextPacket(timeout)
			})
		}(name, c, stream)
	}
}

// Shutdown closes every connection's queue and every transport stream,
// then waits for the ingress/egress goroutines to return. The context
// passed to NewRouter must already be cancelled before calling Shutdown.
func (r *Router) Shutdown() {
	r.mu.RLock()
	for _, c := range r.connections {
		c.Close()
	}
	for name, s := range r.streams {
		if err := s.Close(); err != nil {
			obs.WithInterface(name).WithError(err).Warn("error closing transport stream")
		}
	}
	r.mu.RUnlock()
	r.wg.Wait()
}
