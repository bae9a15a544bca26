package transport

import (
	"context"
	"net"
	"os"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"

	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

// writeTestPcap captures a single UDP datagram carrying payload as a pcap
// file at path, matching the link-layer shape OpenPcapReplay expects to
// read back.
func writeTestPcap(t *testing.T, path string, payload []byte) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create pcap: %v", err)
	}
	defer f.Close()

	w := pcapgo.NewWriter(f)
	if err := w.WriteFileHeader(65536, layers.LinkTypeEthernet); err != nil {
		t.Fatalf("write pcap header: %v", err)
	}

	eth := layers.Ethernet{
		SrcMAC:       net.HardwareAddr{0, 0, 0, 0, 0, 1},
		DstMAC:       net.HardwareAddr{0, 0, 0, 0, 0, 2},
		EthernetType: layers.EthernetTypeIPv4,
	}
	ip := layers.IPv4{
		Version:  4,
		TTL:      64,
		Protocol: layers.IPProtocolUDP,
		SrcIP:    net.IPv4(127, 0, 0, 1),
		DstIP:    net.IPv4(127, 0, 0, 1),
	}
	udp := layers.UDP{SrcPort: 14550, DstPort: 14551}
	udp.SetNetworkLayerForChecksum(&ip)

	buf := gopacket.NewSerializeBuffer()
	opts := gopacket.SerializeOptions{FixLengths: true, ComputeChecksums: true}
	if err := gopacket.SerializeLayers(buf, opts, &eth, &ip, &udp, gopacket.Payload(payload)); err != nil {
		t.Fatalf("serialize layers: %v", err)
	}

	ci := gopacket.CaptureInfo{Timestamp: time.Unix(0, 0), CaptureLength: len(buf.Bytes()), Length: len(buf.Bytes())}
	if err := w.WritePacket(ci, buf.Bytes()); err != nil {
		t.Fatalf("write packet: %v", err)
	}
}

func TestPcapReplayFeedsIngressParser(t *testing.T) {
	// HEARTBEAT: magic, len=0, seq, sysid, compid, msgid=0, 2-byte checksum.
	frame := []byte{0xFE, 0x00, 0x01, 0x02, 0x01, 0x00, 0xAB, 0xCD}

	path := t.TempDir() + "/capture.pcap"
	writeTestPcap(t, path, frame)

	stream, err := OpenPcapReplay(path)
	if err != nil {
		t.Fatalf("OpenPcapReplay: %v", err)
	}
	defer stream.Close()

	parser := mavpacket.NewParser(dialect.Common, "pcap-test")

	var got *mavpacket.Packet
	ctx, cancel := context.WithCancel(context.Background())
	err = RunIngress(ctx, "pcap-test", stream, parser, func(pkt *mavpacket.Packet) {
		got = pkt
		cancel()
	})
	if err != nil {
		t.Fatalf("RunIngress: %v", err)
	}
	if got == nil {
		t.Fatal("expected a packet to be parsed from the replayed capture")
	}
	if got.Name() != "HEARTBEAT" {
		t.Errorf("Name() = %q, want HEARTBEAT", got.Name())
	}
}
