package queue

import (
	"testing"
	"time"

	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

func pkt(t *testing.T, id uint32) *mavpacket.Packet {
	t.Helper()
	frame := []byte{0xFE, 0, 0x01, 1, 2, byte(id), 0, 0}
	p, err := mavpacket.NewV1(frame, dialect.Common)
	if err != nil {
		t.Fatalf("NewV1: %v", err)
	}
	return p
}

func TestPushRejectsNil(t *testing.T) {
	q := New(nil)
	if err := q.Push(nil, 0); err != ErrNullPacket {
		t.Errorf("Push(nil) = %v, want ErrNullPacket", err)
	}
}

// Scenario 5: pushes (A,0),(B,2),(C,2),(D,1) pop as B,C,D,A.
func TestPriorityThenFIFO(t *testing.T) {
	q := New(nil)
	a := pkt(t, dialect.MsgHeartbeat)
	b := pkt(t, dialect.MsgPing)
	c := pkt(t, dialect.MsgSysStatus)
	d := pkt(t, dialect.MsgSetMode)

	q.Push(a, 0)
	q.Push(b, 2)
	q.Push(c, 2)
	q.Push(d, 1)

	want := []*mavpacket.Packet{b, c, d, a}
	for i, w := range want {
		got, ok := q.PopTimeout(0)
		if !ok {
			t.Fatalf("pop %d: queue unexpectedly empty", i)
		}
		if got != w {
			t.Errorf("pop %d = %p, want %p", i, got, w)
		}
	}
}

func TestPopNonBlockingOnEmpty(t *testing.T) {
	q := New(nil)
	if _, ok := q.PopTimeout(0); ok {
		t.Error("expected no packet from an empty queue")
	}
}

func TestPopBlocksUntilPush(t *testing.T) {
	q := New(nil)
	done := make(chan *mavpacket.Packet, 1)
	go func() {
		done <- q.Pop()
	}()
	time.Sleep(10 * time.Millisecond)
	select {
	case <-done:
		t.Fatal("Pop returned before any push")
	default:
	}
	p := pkt(t, dialect.MsgHeartbeat)
	q.Push(p, 0)
	select {
	case got := <-done:
		if got != p {
			t.Error("Pop returned the wrong packet")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after push")
	}
}

func TestCloseWakesAllPops(t *testing.T) {
	q := New(nil)
	done := make(chan bool, 1)
	go func() {
		_, ok := q.PopTimeout(-1)
		done <- ok
	}()
	time.Sleep(10 * time.Millisecond)
	q.Close()
	select {
	case ok := <-done:
		if ok {
			t.Error("expected no packet after close")
		}
	case <-time.After(time.Second):
		t.Fatal("Pop did not wake after close")
	}
	if _, ok := q.PopTimeout(0); ok {
		t.Error("expected closed queue to keep returning no packet")
	}
}

func TestCloseDiscardsAlreadyQueuedPackets(t *testing.T) {
	q := New(nil)
	q.Push(pkt(t, dialect.MsgHeartbeat), 0)
	q.Close()
	if got, ok := q.PopTimeout(0); ok || got != nil {
		t.Errorf("PopTimeout after close = (%v, %v), want (nil, false)", got, ok)
	}
}

func TestPushCallbackInvoked(t *testing.T) {
	called := make(chan struct{}, 1)
	q := New(func() { called <- struct{}{} })
	q.Push(pkt(t, dialect.MsgHeartbeat), 0)
	select {
	case <-called:
	case <-time.After(time.Second):
		t.Fatal("push callback not invoked")
	}
}

func TestPopTimeoutExpires(t *testing.T) {
	q := New(nil)
	start := time.Now()
	_, ok := q.PopTimeout(20 * time.Millisecond)
	if ok {
		t.Error("expected timeout with no packet")
	}
	if elapsed := time.Since(start); elapsed < 15*time.Millisecond {
		t.Errorf("returned too early: %v", elapsed)
	}
}
