// Package transport supplies the byte-stream producers/consumers the
// routing core treats abstractly: a Stream drives a mavpacket.Parser on
// ingress and drains a conn.Connection's queue on egress. Concrete
// transports (serial, UDP, pcap replay) and the loops that bridge them to
// the filter/routing core live here; none of this package carries
// routing semantics of its own.
package transport

import (
	"context"
	"io"
	"time"

	"github.com/avionics-go/mavrouter/internal/mavpacket"
	"github.com/avionics-go/mavrouter/internal/obs"
)

// Stream is a byte-stream endpoint: bytes read from it feed a parser,
// bytes written to it carry accepted outbound frames.
type Stream interface {
	io.Reader
	io.Writer
	io.Closer
}

// Sink receives every packet a RunIngress loop's parser produces.
type Sink func(*mavpacket.Packet)

// Source supplies the next outbound packet for a RunEgress loop to
// write, honoring queue.PopTimeout's timeout semantics.
type Source func(timeout time.Duration) *mavpacket.Packet

// RunIngress reads from stream until ctx is cancelled or the stream
// returns an error, feeding every byte to parser and invoking sink for
// each packet produced. It returns nil on context cancellation, and the
// read error otherwise.
func RunIngress(ctx context.Context, name string, stream Stream, parser *mavpacket.Parser, sink Sink) error {
	buf := make([]byte, 4096)
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		n, err := stream.Read(buf)
		for i := 0; i < n; i++ {
			if pkt := parser.ParseByte(buf[i]); pkt != nil {
				sink(pkt)
			}
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			obs.WithInterface(name).WithError(err).Warn("ingress read failed")
			return err
		}
	}
}

// RunEgress repeatedly calls source with a short poll timeout and writes
// every packet it returns to stream, until ctx is cancelled.
func RunEgress(ctx context.Context, name string, stream Stream, source Source) error {
	const pollTimeout = 200 * time.Millisecond
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		pkt := source(pollTimeout)
		if pkt == nil {
			continue
		}
		if _, err := stream.Write(pkt.Data()); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			obs.WithInterface(name).WithError(err).Warn("egress write failed")
			return err
		}
	}
}
