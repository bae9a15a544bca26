package firewall

import (
	"github.com/avionics-go/mavrouter/internal/mavaddr"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

// Filter is the root evaluation: a default chain plus a fallback policy
// for when that chain neither accepts nor rejects.
type Filter struct {
	Default         *Chain
	AcceptByDefault bool
}

// NewFilter builds a Filter over defaultChain with the given fallback
// policy.
func NewFilter(defaultChain *Chain, acceptByDefault bool) *Filter {
	return &Filter{Default: defaultChain, AcceptByDefault: acceptByDefault}
}

// WillAccept evaluates the default chain against (p, addr) and returns
// whether the packet may egress to addr and at what priority. A
// RecursionError surfaces to the caller, who is expected to drop just the
// triggering packet and continue running.
func (f *Filter) WillAccept(p *mavpacket.Packet, addr mavaddr.Address) (accept bool, priority int32, err error) {
	result, err := f.Default.Action(p, addr)
	if err != nil {
		return false, 0, err
	}
	switch result.Kind {
	case ActionAccept:
		if result.Priority != nil {
			return true, *result.Priority, nil
		}
		return true, 0, nil
	case ActionReject:
		return false, 0, nil
	default: // ActionContinue or ActionDefault
		return f.AcceptByDefault, 0, nil
	}
}
