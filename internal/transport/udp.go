package transport

import (
	"fmt"
	"net"
	"sync"
)

// udpStream adapts a connectionless net.PacketConn to the Stream
// interface. UDP is datagram-oriented but the engine only needs a byte
// stream (MAVLink's own framing resyncs the parser regardless of where
// datagram boundaries fall), so Read simply returns the bytes of
// whichever datagram arrives next. Writes go to the most recently seen
// remote address, matching how a single UDP "connection" endpoint (one
// bound socket, one active peer) behaves in practice.
type udpStream struct {
	conn *net.UDPConn

	mu   sync.Mutex
	peer *net.UDPAddr
}

// OpenUDP binds a UDP socket at bindAddr (e.g. ":14550") for a listening
// endpoint, or dials remoteAddr directly when bindAddr is empty.
func OpenUDP(bindAddr, remoteAddr string) (Stream, error) {
	if bindAddr != "" {
		laddr, err := net.ResolveUDPAddr("udp", bindAddr)
		if err != nil {
			return nil, fmt.Errorf("resolve UDP bind address %s: %w", bindAddr, err)
		}
		c, err := net.ListenUDP("udp", laddr)
		if err != nil {
			return nil, fmt.Errorf("listen UDP %s: %w", bindAddr, err)
		}
		s := &udpStream{conn: c}
		if remoteAddr != "" {
			if raddr, err := net.ResolveUDPAddr("udp", remoteAddr); err == nil {
				s.peer = raddr
			}
		}
		return s, nil
	}
	raddr, err := net.ResolveUDPAddr("udp", remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("resolve UDP remote address %s: %w", remoteAddr, err)
	}
	c, err := net.DialUDP("udp", nil, raddr)
	if err != nil {
		return nil, fmt.Errorf("dial UDP %s: %w", remoteAddr, err)
	}
	return &udpStream{conn: c, peer: raddr}, nil
}

func (s *udpStream) Read(p []byte) (int, error) {
	n, addr, err := s.conn.ReadFromUDP(p)
	if err != nil {
		return n, err
	}
	s.mu.Lock()
	s.peer = addr
	s.mu.Unlock()
	return n, nil
}

func (s *udpStream) Write(p []byte) (int, error) {
	s.mu.Lock()
	peer := s.peer
	s.mu.Unlock()
	if peer == nil {
		return 0, fmt.Errorf("udp stream: no peer address known yet")
	}
	if s.conn.RemoteAddr() != nil {
		// A dialed socket is connected to its peer and rejects WriteTo.
		return s.conn.Write(p)
	}
	return s.conn.WriteToUDP(p, peer)
}

func (s *udpStream) Close() error {
	return s.conn.Close()
}
