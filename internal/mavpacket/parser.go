package mavpacket

import (
	"github.com/sirupsen/logrus"

	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/obs"
)

type parserState int

const (
	waitMagic parserState = iota
	inHeader
	inPayload
)

// Parser is a byte-stream state machine that turns a raw MAVLink
// transport stream into a sequence of Packet values. It never returns a
// fatal error: any structural defect (bad magic recovered from already,
// unknown message id, declared-length mismatch) is logged and the parser
// resyncs to waitMagic, so one malformed frame never stalls ingress.
type Parser struct {
	table  *dialect.Table
	log    *logrus.Logger
	source string

	state           parserState
	buf             []byte
	version         Version
	headerRemaining int
	payloadRemaining int
}

// NewParser builds a Parser against the given dialect table. source is a
// free-form label (interface name) attached to log lines for this
// parser's resync events.
func NewParser(table *dialect.Table, source string) *Parser {
	return &Parser{table: table, log: obs.Log, source: source, state: waitMagic}
}

// BytesParsed returns the number of bytes buffered for the frame
// currently in progress.
func (p *Parser) BytesParsed() int { return len(p.buf) }

// Clear discards any partially parsed frame and resets to waitMagic.
func (p *Parser) Clear() {
	p.buf = p.buf[:0]
	p.state = waitMagic
	p.headerRemaining = 0
	p.payloadRemaining = 0
}

// ParseByte feeds one byte into the state machine. It returns a non-nil
// Packet exactly when that byte completes a valid frame.
func (p *Parser) ParseByte(b byte) *Packet {
	switch p.state {
	case waitMagic:
		switch b {
		case magicV1:
			p.buf = append(p.buf[:0], b)
			p.version = V1
			p.headerRemaining = headerLenV1 - 1
			p.state = inHeader
		case magicV2:
			p.buf = append(p.buf[:0], b)
			p.version = V2
			p.headerRemaining = headerLenV2 - 1
			p.state = inHeader
		}
		return nil

	case inHeader:
		p.buf = append(p.buf, b)
		p.headerRemaining--
		if p.headerRemaining > 0 {
			return nil
		}
		declaredLen := int(p.buf[1])
		remaining := declaredLen + checksumLen
		if p.version == V2 && p.buf[2]&signedFlag != 0 {
			remaining += signatureLen
		}
		p.payloadRemaining = remaining
		p.state = inPayload
		if remaining == 0 {
			return p.emit()
		}
		return nil

	case inPayload:
		p.buf = append(p.buf, b)
		p.payloadRemaining--
		if p.payloadRemaining == 0 {
			return p.emit()
		}
		return nil
	}
	return nil
}

func (p *Parser) emit() *Packet {
	data := make([]byte, len(p.buf))
	copy(data, p.buf)

	var pkt *Packet
	var err error
	if p.version == V1 {
		pkt, err = NewV1(data, p.table)
	} else {
		pkt, err = NewV2(data, p.table)
	}
	p.Clear()

	if err != nil {
		reason := "malformed-frame"
		if _, ok := err.(*dialect.UnknownMessageError); ok {
			reason = "unknown-message"
		}
		obs.ParserResyncs.WithLabelValues(reason).Inc()
		if p.log != nil {
			p.log.WithFields(logrus.Fields{
				"source": p.source,
				"reason": reason,
			}).WithError(err).Warn("dropping frame, resyncing parser")
		}
		return nil
	}
	obs.PacketsParsed.Inc()
	return pkt
}
