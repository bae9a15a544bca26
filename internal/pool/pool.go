// Package pool implements AddressPool: a time-expiring set of
// MAVAddresses observed on a connection.
package pool

import (
	"sync"
	"time"

	"github.com/avionics-go/mavrouter/internal/mavaddr"
)

// DefaultTTL is the address freshness window used when none is given.
const DefaultTTL = 2 * time.Minute

// Clock supplies the current time, injectable so tests can advance time
// deterministically without sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the Clock backed by time.Now.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

// Pool is AddressPool: thread-safe, TTL-expiring set of addresses.
type Pool struct {
	mu       sync.Mutex
	ttl      time.Duration
	clock    Clock
	lastSeen map[mavaddr.Address]time.Time
}

// New builds a Pool with DefaultTTL and the system clock.
func New() *Pool {
	return NewWithClock(DefaultTTL, SystemClock{})
}

// NewWithTTL builds a Pool with a custom TTL and the system clock.
func NewWithTTL(ttl time.Duration) *Pool {
	return NewWithClock(ttl, SystemClock{})
}

// NewWithClock builds a Pool with a custom TTL and clock source, used by
// tests that need to fake the passage of time.
func NewWithClock(ttl time.Duration, clock Clock) *Pool {
	return &Pool{ttl: ttl, clock: clock, lastSeen: make(map[mavaddr.Address]time.Time)}
}

// Add refreshes addr's last-seen timestamp to now.
func (p *Pool) Add(addr mavaddr.Address) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.lastSeen[addr] = p.clock.Now()
}

// Contains reports whether addr is present and still fresh.
func (p *Pool) Contains(addr mavaddr.Address) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	t, ok := p.lastSeen[addr]
	if !ok {
		return false
	}
	return p.clock.Now().Sub(t) < p.ttl
}

// Addresses returns every address still within its TTL.
func (p *Pool) Addresses() []mavaddr.Address {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.clock.Now()
	out := make([]mavaddr.Address, 0, len(p.lastSeen))
	for addr, t := range p.lastSeen {
		if now.Sub(t) < p.ttl {
			out = append(out, addr)
		}
	}
	return out
}
