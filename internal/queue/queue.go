// Package queue implements PacketQueue: a priority queue with FIFO
// tie-breaking, blocking/timeout/non-blocking pop, and a push-notify hook.
package queue

import (
	"container/heap"
	"errors"
	"sync"
	"time"

	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

// ErrNullPacket is returned by Push when given a nil packet.
var ErrNullPacket = errors.New("queue: given packet is nil")

// PushFunc is invoked after every successful push, used by
// ConnectionFactory to wake a multiplexed waiter.
type PushFunc func()

type entry struct {
	packet   *mavpacket.Packet
	priority int32
	ticket   uint64
}

// entryHeap orders by priority descending, then by ticket ascending under
// modular comparison so ticket wraparound at 2^64 keeps a live queue
// consistent.
type entryHeap []entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority > h[j].priority
	}
	return int64(h[i].ticket-h[j].ticket) < 0
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *entryHeap) Push(x any)   { *h = append(*h, x.(entry)) }
func (h *entryHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Queue is PacketQueue: push stamps a monotonically increasing ticket and
// invokes the optional push callback; pop returns the highest-priority,
// lowest-ticket entry, blocking according to the requested timeout.
type Queue struct {
	mu      sync.Mutex
	cond    *sync.Cond
	heap    entryHeap
	ticket  uint64
	closed  bool
	onPush  PushFunc
}

// New builds an empty queue. onPush may be nil.
func New(onPush PushFunc) *Queue {
	q := &Queue{onPush: onPush}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Push inserts packet at priority, stamping the next ticket. Returns
// ErrNullPacket if packet is nil. A push onto a closed queue is dropped
// silently, matching Connection's "queue closed: pushes are dropped"
// failure mode.
func (q *Queue) Push(packet *mavpacket.Packet, priority int32) error {
	if packet == nil {
		return ErrNullPacket
	}
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	t := q.ticket
	q.ticket++
	heap.Push(&q.heap, entry{packet: packet, priority: priority, ticket: t})
	q.mu.Unlock()
	q.cond.Broadcast()
	if q.onPush != nil {
		q.onPush()
	}
	return nil
}

// Empty reports whether the queue currently holds no entries.
func (q *Queue) Empty() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap) == 0
}

// Len returns the number of entries currently queued.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.heap)
}

// Pop blocks indefinitely until an entry is available or the queue is
// closed.
func (q *Queue) Pop() *mavpacket.Packet {
	p, _ := q.PopTimeout(-1)
	return p
}

// PopTimeout pops with a bound on how long to wait: timeout < 0 blocks
// indefinitely, timeout == 0 is non-blocking, timeout > 0 waits at most
// that long. The second return value reports whether an entry was
// returned (false on timeout or close-with-nothing-queued).
func (q *Queue) PopTimeout(timeout time.Duration) (*mavpacket.Packet, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if timeout == 0 {
		return q.popLocked()
	}

	hasDeadline := timeout > 0
	var timer *time.Timer
	if hasDeadline {
		timer = time.AfterFunc(timeout, func() {
			q.mu.Lock()
			q.cond.Broadcast()
			q.mu.Unlock()
		})
		defer timer.Stop()
	}

	deadline := time.Now().Add(timeout)
	for len(q.heap) == 0 && !q.closed {
		if hasDeadline && !time.Now().Before(deadline) {
			return nil, false
		}
		q.cond.Wait()
	}
	return q.popLocked()
}

func (q *Queue) popLocked() (*mavpacket.Packet, bool) {
	if q.closed || len(q.heap) == 0 {
		return nil, false
	}
	e := heap.Pop(&q.heap).(entry)
	return e.packet, true
}

// Close causes all current and future pops to return immediately with no
// packet, discarding whatever is still queued.
func (q *Queue) Close() {
	q.mu.Lock()
	q.closed = true
	q.heap = nil
	q.mu.Unlock()
	q.cond.Broadcast()
}
