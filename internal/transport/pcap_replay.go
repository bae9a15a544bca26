package transport

import (
	"fmt"
	"io"
	"os"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
)

// PcapReplay is a read-only Stream that replays the UDP payload bytes of
// every packet in a pcap capture, in capture order. It exists so UDP
// ingress can be exercised offline (in tests or through a configured
// pcap_replay interface) without a live socket.
type PcapReplay struct {
	file    *os.File
	source  *gopacket.PacketSource
	pending []byte
}

// OpenPcapReplay opens a pcap file and prepares to replay its UDP
// payloads as a byte stream.
func OpenPcapReplay(path string) (*PcapReplay, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pcap %s: %w", path, err)
	}
	r, err := pcapgo.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("read pcap %s: %w", path, err)
	}
	return &PcapReplay{file: file, source: gopacket.NewPacketSource(r, r.LinkType())}, nil
}

func (r *PcapReplay) Read(p []byte) (int, error) {
	for len(r.pending) == 0 {
		pkt, err := r.source.NextPacket()
		if err != nil {
			return 0, io.EOF
		}
		if udp, ok := pkt.Layer(layers.LayerTypeUDP).(*layers.UDP); ok {
			r.pending = udp.Payload
		}
	}
	n := copy(p, r.pending)
	r.pending = r.pending[n:]
	return n, nil
}

func (r *PcapReplay) Write(p []byte) (int, error) { return len(p), nil }
func (r *PcapReplay) Close() error                { return r.file.Close() }
