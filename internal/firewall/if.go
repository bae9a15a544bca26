package firewall

import (
	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/mavaddr"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

// If is an optional (id, source-subnet, dest-subnet) predicate over a
// (packet, address) pair. An empty If matches anything; every present
// field must match for Check to succeed.
type If struct {
	id   *uint32
	from *mavaddr.Subnet
	to   *mavaddr.Subnet
}

// NewIf returns an empty condition that matches any (packet, address).
func NewIf() *If {
	return &If{}
}

// WithID restricts the condition to a specific message id.
func (c *If) WithID(id uint32) *If {
	c.id = &id
	return c
}

// WithName resolves name through the dialect table and restricts the
// condition to that message id. Returns UnknownMessageError on a miss.
func (c *If) WithName(name string, table *dialect.Table) (*If, error) {
	id, err := table.IDOf(name)
	if err != nil {
		return nil, err
	}
	c.id = &id
	return c, nil
}

// From restricts the condition to packets whose source address falls in
// the given subnet.
func (c *If) From(s mavaddr.Subnet) *If {
	c.from = &s
	return c
}

// To restricts the condition to the (packet, address) pair whose address
// falls in the given subnet.
func (c *If) To(s mavaddr.Subnet) *If {
	c.to = &s
	return c
}

// Check reports whether every present predicate matches.
func (c *If) Check(p *mavpacket.Packet, addr mavaddr.Address) bool {
	if c.id != nil && p.ID() != *c.id {
		return false
	}
	if c.from != nil && !c.from.Contains(p.Source()) {
		return false
	}
	if c.to != nil && !c.to.Contains(addr) {
		return false
	}
	return true
}
