package firewall

import (
	"github.com/avionics-go/mavrouter/internal/mavaddr"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

// RuleKind is the tag of the Rule sum type: the set of rule bodies is
// closed (Accept/Reject/Call/GoTo), so a tagged struct is preferred here
// over virtual dispatch.
type RuleKind int

const (
	RuleAccept RuleKind = iota
	RuleReject
	RuleCall
	RuleGoTo
)

// Rule is one entry in a Chain. Cond is nil for an unconditional rule.
// Target is only set (and only meaningful) for Call and GoTo.
type Rule struct {
	Kind     RuleKind
	Priority *int32
	Cond     *If
	Target   *Chain
}

// NewAccept builds an unconditional or conditional Accept rule.
func NewAccept(priority *int32, cond *If) *Rule {
	return &Rule{Kind: RuleAccept, Priority: priority, Cond: cond}
}

// NewReject builds a Reject rule. Reject ignores any priority.
func NewReject(cond *If) *Rule {
	return &Rule{Kind: RuleReject, Cond: cond}
}

// NewCall builds a Call rule. target must be non-nil and must not be the
// filter's root default chain, or construction fails InvalidConfigError;
// the default-chain check happens at config-load time (internal/config),
// since a bare Rule has no notion of which chain is "the" root.
func NewCall(target *Chain, priority *int32, cond *If) (*Rule, error) {
	if target == nil {
		return nil, &InvalidConfigError{Reason: "call target chain is nil"}
	}
	return &Rule{Kind: RuleCall, Priority: priority, Cond: cond, Target: target}, nil
}

// NewGoTo builds a GoTo rule, identical to Call except that an inner
// Continue converts to Default instead of staying Continue.
func NewGoTo(target *Chain, priority *int32, cond *If) (*Rule, error) {
	if target == nil {
		return nil, &InvalidConfigError{Reason: "goto target chain is nil"}
	}
	return &Rule{Kind: RuleGoTo, Priority: priority, Cond: cond, Target: target}, nil
}

func (r *Rule) matches(p *mavpacket.Packet, addr mavaddr.Address) bool {
	return r.Cond == nil || r.Cond.Check(p, addr)
}

// evaluate returns this rule's ActionResult for (p, addr). inv is the
// per-top-level-evaluation activation token threaded down through
// Call/GoTo so the recursion guard can tell re-entry within one
// evaluation apart from concurrent, unrelated evaluations (see
// recursion.go).
func (r *Rule) evaluate(p *mavpacket.Packet, addr mavaddr.Address, inv *activation) (ActionResult, error) {
	switch r.Kind {
	case RuleAccept:
		if !r.matches(p, addr) {
			return Continue(), nil
		}
		return Accept(r.Priority), nil

	case RuleReject:
		if !r.matches(p, addr) {
			return Continue(), nil
		}
		return Reject(), nil

	case RuleCall:
		if !r.matches(p, addr) {
			return Continue(), nil
		}
		inner, err := r.Target.action(p, addr, inv)
		if err != nil {
			return ActionResult{}, err
		}
		return promote(inner, r.Priority), nil

	case RuleGoTo:
		if !r.matches(p, addr) {
			return Continue(), nil
		}
		inner, err := r.Target.action(p, addr, inv)
		if err != nil {
			return ActionResult{}, err
		}
		result := promote(inner, r.Priority)
		if result.Kind == ActionContinue {
			result = Default()
		}
		return result, nil
	}
	return Continue(), nil
}

// promote substitutes the Call/GoTo's own priority into an Accept result
// that did not carry one of its own; every other result passes through
// unchanged.
func promote(inner ActionResult, callPriority *int32) ActionResult {
	if inner.Kind == ActionAccept && inner.Priority == nil && callPriority != nil {
		return Accept(int32ptr(*callPriority))
	}
	return inner
}
