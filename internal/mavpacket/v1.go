package mavpacket

import (
	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/mavaddr"
)

// NewV1 validates and constructs a v1 Packet from a complete frame
// buffer: 0xFE, len, seq, sysid, compid, msgid(1 byte), payload, checksum.
func NewV1(data []byte, table *dialect.Table) (*Packet, error) {
	if len(data) == 0 {
		return nil, &MalformedFrameError{Reason: "empty frame"}
	}
	if data[0] != magicV1 {
		return nil, &MalformedFrameError{Reason: "bad v1 magic byte"}
	}
	if len(data) < headerLenV1+checksumLen {
		return nil, &MalformedFrameError{Reason: "frame shorter than v1 header+checksum", Want: headerLenV1 + checksumLen, Got: len(data)}
	}
	declaredLen := int(data[1])
	seq := data[2]
	sysid := data[3]
	compid := data[4]
	msgid := uint32(data[5])

	want := headerLenV1 + declaredLen + checksumLen
	if len(data) != want {
		return nil, &MalformedFrameError{Reason: "declared length mismatch", Want: want, Got: len(data)}
	}

	name, err := table.NameOf(msgid)
	if err != nil {
		return nil, err
	}
	entry, _ := table.Lookup(msgid)
	payload := data[headerLenV1 : headerLenV1+declaredLen]
	destAddr, hasDest := deriveDest(payload, entry)

	return &Packet{
		version: V1,
		id:      msgid,
		name:    name,
		source:  mavaddr.New(sysid, compid),
		dest:    destAddr,
		hasDest: hasDest,
		data:    data,
		seq:     seq,
	}, nil
}
