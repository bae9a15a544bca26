// Package mavaddr implements MAVLink addresses and subnets: a 16-bit
// system.component address and a CIDR-like mask over it.
package mavaddr

import (
	"fmt"
	"strconv"
	"strings"
)

// Address is a 16-bit system.component value. The high byte is the system
// id, the low byte is the component id. 0.0 is reserved as broadcast.
type Address uint16

// New builds an Address from a system and component byte.
func New(system, component uint8) Address {
	return Address(uint16(system)<<8 | uint16(component))
}

// Parse reads the decimal "SYS.COMP" form, each octet in [0, 255].
func Parse(s string) (Address, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return 0, &InvalidAddressError{Input: s, Reason: "expected SYS.COMP"}
	}
	sys, err := parseOctet(parts[0])
	if err != nil {
		return 0, &InvalidAddressError{Input: s, Reason: err.Error()}
	}
	comp, err := parseOctet(parts[1])
	if err != nil {
		return 0, &InvalidAddressError{Input: s, Reason: err.Error()}
	}
	return New(sys, comp), nil
}

func parseOctet(s string) (uint8, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 || n > 255 {
		return 0, fmt.Errorf("%d out of range [0, 255]", n)
	}
	return uint8(n), nil
}

// System returns the high byte.
func (a Address) System() uint8 { return uint8(a >> 8) }

// Component returns the low byte.
func (a Address) Component() uint8 { return uint8(a & 0xFF) }

// Raw returns the combined 16-bit value.
func (a Address) Raw() uint16 { return uint16(a) }

// Broadcast reports whether this is the reserved 0.0 address.
func (a Address) Broadcast() bool { return a == 0 }

func (a Address) String() string {
	return fmt.Sprintf("%d.%d", a.System(), a.Component())
}

// InvalidAddressError is raised when parsing a malformed address string.
type InvalidAddressError struct {
	Input  string
	Reason string
}

func (e *InvalidAddressError) Error() string {
	return fmt.Sprintf("invalid MAVLink address %q: %s", e.Input, e.Reason)
}
