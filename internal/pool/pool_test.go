package pool

import (
	"testing"
	"time"

	"github.com/avionics-go/mavrouter/internal/mavaddr"
)

func TestAddThenContains(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	p := NewWithClock(10*time.Second, clock)
	addr := mavaddr.New(1, 2)
	p.Add(addr)
	if !p.Contains(addr) {
		t.Fatal("expected address present immediately after Add")
	}
}

// Invariant 9: contains(a) iff t - t0 < TTL, where t0 is the last Add.
func TestExpiresAfterTTL(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	p := NewWithClock(100*time.Millisecond, clock)
	addr := mavaddr.New(1, 2)
	p.Add(addr)

	clock.Advance(50 * time.Millisecond)
	if !p.Contains(addr) {
		t.Error("expected address still fresh at 50ms of a 100ms TTL")
	}

	clock.Advance(60 * time.Millisecond)
	if p.Contains(addr) {
		t.Error("expected address expired at 110ms of a 100ms TTL")
	}
}

func TestAddressesOnlyFresh(t *testing.T) {
	clock := NewFakeClock(time.Unix(0, 0))
	p := NewWithClock(100*time.Millisecond, clock)
	fresh := mavaddr.New(1, 1)
	stale := mavaddr.New(2, 2)

	p.Add(stale)
	clock.Advance(150 * time.Millisecond)
	p.Add(fresh)

	addrs := p.Addresses()
	if len(addrs) != 1 || addrs[0] != fresh {
		t.Errorf("Addresses() = %v, want only %v", addrs, fresh)
	}
}

func TestContainsUnknownAddress(t *testing.T) {
	p := New()
	if p.Contains(mavaddr.New(9, 9)) {
		t.Error("expected false for an address never added")
	}
}
