// Package mavpacket implements the MAVLink v1/v2 wire format: frame
// validation, the Packet value type, and the byte-stream parser that
// produces Packets from a raw stream.
package mavpacket

import (
	"fmt"

	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/mavaddr"
)

// Version identifies the MAVLink header variant a frame was built with.
type Version int

const (
	V1 Version = 0x0100
	V2 Version = 0x0200
)

func (v Version) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	default:
		return fmt.Sprintf("Version(%#x)", int(v))
	}
}

const (
	magicV1 = 0xFE
	magicV2 = 0xFD

	headerLenV1 = 6
	headerLenV2 = 10

	checksumLen  = 2
	signatureLen = 13

	signedFlag = 0x01
)

// Packet owns the raw bytes of one validated MAVLink frame and exposes its
// semantic fields. Apart from the priority hint and the connection
// back-reference, which have setters, a Packet is not modified after
// construction; it is shared by reference across goroutines.
type Packet struct {
	version Version
	id      uint32
	name    string
	source  mavaddr.Address
	dest    mavaddr.Address
	hasDest bool
	data    []byte
	seq     uint8
	signed  bool

	priority   int32
	connection any // weak back-reference, set by the connection that received it
}

// Version returns V1 or V2.
func (p *Packet) Version() Version { return p.version }

// ID returns the MAVLink message id.
func (p *Packet) ID() uint32 { return p.id }

// Name returns the dialect-resolved message name.
func (p *Packet) Name() string { return p.name }

// Source returns the sysid.compid the frame declares as its origin.
func (p *Packet) Source() mavaddr.Address { return p.source }

// Dest returns the frame's target address, if the message carries one.
func (p *Packet) Dest() (mavaddr.Address, bool) { return p.dest, p.hasDest }

// Data returns the complete frame bytes: magic, header, payload, checksum,
// and (if v2-signed) the trailing signature block.
func (p *Packet) Data() []byte { return p.data }

// Sequence returns the frame's sequence byte.
func (p *Packet) Sequence() uint8 { return p.seq }

// Signed reports whether a v2 frame carries the signature block. Its
// contents are preserved but never cryptographically checked.
func (p *Packet) Signed() bool { return p.signed }

// Priority returns the priority hint attached with SetPriority (default
// 0). Connection.Send does not set it: the queue records the accepted
// priority of each entry separately.
func (p *Packet) Priority() int32 { return p.priority }

// SetPriority attaches a priority hint to the packet.
func (p *Packet) SetPriority(pr int32) { p.priority = pr }

// Connection returns the weak back-reference to the connection this
// packet arrived on, or nil if never set. It exists only so fan-out can
// identify (and skip) the source connection; it is never used to mutate
// that connection.
func (p *Packet) Connection() any { return p.connection }

// SetConnection stamps the weak back-reference to the originating
// connection. Called once by the ingress loop that parsed the frame.
func (p *Packet) SetConnection(c any) { p.connection = c }

// MalformedFrameError reports a frame validation failure: bad magic byte,
// wrong length, or any other structural defect short of an unrecognized
// message id (see dialect.UnknownMessageError for that case).
type MalformedFrameError struct {
	Reason string
	Want   int
	Got    int
}

func (e *MalformedFrameError) Error() string {
	if e.Want != 0 || e.Got != 0 {
		return fmt.Sprintf("malformed MAVLink frame: %s (want %d bytes, got %d)", e.Reason, e.Want, e.Got)
	}
	return fmt.Sprintf("malformed MAVLink frame: %s", e.Reason)
}

// deriveDest applies the target-system/target-component derivation rule
// uniformly to v1 and v2: a field byte at or beyond the payload's declared
// length is trimmed-trailing-zero and defaults to 0, rather than being
// treated as absent. Both frame versions share this rule so a truncated
// target-component field never makes a packet look address-less.
func deriveDest(payload []byte, entry dialect.Entry) (addr mavaddr.Address, ok bool) {
	readField := func(present bool, offset int) (value uint8, fieldOK bool) {
		if !present {
			return 0, false
		}
		if offset < len(payload) {
			return payload[offset], true
		}
		return 0, true
	}
	sysVal, sysOK := readField(entry.HasSystem, entry.SystemOffset)
	compVal, compOK := readField(entry.HasComponent, entry.ComponentOffset)
	switch {
	case sysOK && compOK:
		return mavaddr.New(sysVal, compVal), true
	case sysOK:
		return mavaddr.New(sysVal, 0), true
	default:
		return 0, false
	}
}
