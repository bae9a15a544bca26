package mavpacket

import (
	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/mavaddr"
)

// NewV2 validates and constructs a v2 Packet from a complete frame
// buffer: 0xFD, len, incompat_flags, compat_flags, seq, sysid, compid,
// msgid(3 bytes LE), payload, checksum, optional 13-byte signature.
func NewV2(data []byte, table *dialect.Table) (*Packet, error) {
	if len(data) == 0 {
		return nil, &MalformedFrameError{Reason: "empty frame"}
	}
	if data[0] != magicV2 {
		return nil, &MalformedFrameError{Reason: "bad v2 magic byte"}
	}
	if len(data) < headerLenV2+checksumLen {
		return nil, &MalformedFrameError{Reason: "frame shorter than v2 header+checksum", Want: headerLenV2 + checksumLen, Got: len(data)}
	}
	declaredLen := int(data[1])
	incompat := data[2]
	seq := data[4]
	sysid := data[5]
	compid := data[6]
	msgid := uint32(data[7]) | uint32(data[8])<<8 | uint32(data[9])<<16

	signed := incompat&signedFlag != 0
	want := headerLenV2 + declaredLen + checksumLen
	if signed {
		want += signatureLen
	}
	if len(data) != want {
		return nil, &MalformedFrameError{Reason: "declared length mismatch", Want: want, Got: len(data)}
	}

	name, err := table.NameOf(msgid)
	if err != nil {
		return nil, err
	}
	entry, _ := table.Lookup(msgid)
	payload := data[headerLenV2 : headerLenV2+declaredLen]
	destAddr, hasDest := deriveDest(payload, entry)

	return &Packet{
		version: V2,
		id:      msgid,
		name:    name,
		source:  mavaddr.New(sysid, compid),
		dest:    destAddr,
		hasDest: hasDest,
		data:    data,
		seq:     seq,
		signed:  signed,
	}, nil
}
