package conn

import (
	"sync"
	"time"

	"github.com/avionics-go/mavrouter/internal/firewall"
)

// Factory is ConnectionFactory: it stamps out connections bound to one
// shared filter, and can multiplex-wait across every connection it
// produced.
type Factory struct {
	filter          *firewall.Filter
	acceptByDefault bool

	mu        sync.Mutex
	cond      *sync.Cond
	generation uint64
}

// NewFactory builds a factory. acceptByDefault is optional variadic sugar
// matching the original's two-argument overload; the first value given is
// recorded, defaulting to false. It is not applied to the connections Get
// returns: their fallback policy is the filter's own AcceptByDefault.
func NewFactory(filter *firewall.Filter, acceptByDefault ...bool) (*Factory, error) {
	if filter == nil {
		return nil, ErrUnboundFilter
	}
	f := &Factory{filter: filter}
	if len(acceptByDefault) > 0 {
		f.acceptByDefault = acceptByDefault[0]
	}
	f.cond = sync.NewCond(&f.mu)
	return f, nil
}

// Get returns a new Connection whose pushes also wake WaitForPacket.
func (f *Factory) Get(name string, mirror bool) (*Connection, error) {
	return New(name, f.filter, mirror, f.notify)
}

func (f *Factory) notify() {
	f.mu.Lock()
	f.generation++
	f.mu.Unlock()
	f.cond.Broadcast()
}

// WaitForPacket blocks until any connection this factory produced pushes
// a packet, or timeout elapses (timeout <= 0 waits indefinitely).
// Returns false on timeout.
func (f *Factory) WaitForPacket(timeout time.Duration) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	start := f.generation
	if timeout <= 0 {
		for f.generation == start {
			f.cond.Wait()
		}
		return true
	}

	deadline := time.Now().Add(timeout)
	timer := time.AfterFunc(timeout, func() {
		f.mu.Lock()
		f.cond.Broadcast()
		f.mu.Unlock()
	})
	defer timer.Stop()

	for f.generation == start {
		if !time.Now().Before(deadline) {
			return false
		}
		f.cond.Wait()
	}
	return true
}
