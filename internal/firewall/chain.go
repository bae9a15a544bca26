package firewall

import (
	"strings"
	"sync"

	"github.com/avionics-go/mavrouter/internal/mavaddr"
	"github.com/avionics-go/mavrouter/internal/mavpacket"
)

// Chain is a named, ordered list of Rules. A chain's identity (including
// its name) never changes after construction; rules may only be
// appended.
type Chain struct {
	name  string
	mu    sync.RWMutex
	rules []*Rule
	guard *recursionGuard
}

// NewChain builds an empty chain. name must not contain whitespace.
func NewChain(name string) (*Chain, error) {
	if strings.ContainsAny(name, " \t\n\r") {
		return nil, &InvalidConfigError{Reason: "chain name \"" + name + "\" contains whitespace"}
	}
	return &Chain{name: name, guard: newRecursionGuard()}, nil
}

// Name returns the chain's name.
func (c *Chain) Name() string { return c.name }

// AddRule appends a rule to the chain's ordered list.
func (c *Chain) AddRule(r *Rule) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rules = append(c.rules, r)
}

// Rules returns a snapshot of the chain's rule list.
func (c *Chain) Rules() []*Rule {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// Action evaluates the chain's rules in order against (p, addr) and
// returns the first non-Continue result, or Continue if every rule
// yields Continue. Re-entering a chain already on the current
// evaluation's call stack raises RecursionError.
func (c *Chain) Action(p *mavpacket.Packet, addr mavaddr.Address) (ActionResult, error) {
	return c.action(p, addr, newActivation())
}

func (c *Chain) action(p *mavpacket.Packet, addr mavaddr.Address, inv *activation) (ActionResult, error) {
	if err := c.guard.enter(inv, c.name); err != nil {
		return ActionResult{}, err
	}
	defer c.guard.exit(inv)

	for _, r := range c.Rules() {
		result, err := r.evaluate(p, addr, inv)
		if err != nil {
			return ActionResult{}, err
		}
		if result.Kind != ActionContinue {
			return result, nil
		}
	}
	return Continue(), nil
}

// Equal reports whether two chains have the same name and an equivalent
// rule sequence. Targets of Call/GoTo rules are compared by chain name
// only, so Equal terminates even when chains reference each other
// cyclically.
func (c *Chain) Equal(other *Chain) bool {
	if other == nil {
		return false
	}
	if c.name != other.name {
		return false
	}
	a, b := c.Rules(), other.Rules()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !ruleEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

func ruleEqual(a, b *Rule) bool {
	if a.Kind != b.Kind {
		return false
	}
	if (a.Priority == nil) != (b.Priority == nil) {
		return false
	}
	if a.Priority != nil && *a.Priority != *b.Priority {
		return false
	}
	if (a.Target == nil) != (b.Target == nil) {
		return false
	}
	if a.Target != nil && a.Target.Name() != b.Target.Name() {
		return false
	}
	return ifEqual(a.Cond, b.Cond)
}

func ifEqual(a, b *If) bool {
	if a == nil || b == nil {
		return a == b
	}
	if (a.id == nil) != (b.id == nil) || (a.id != nil && *a.id != *b.id) {
		return false
	}
	if (a.from == nil) != (b.from == nil) || (a.from != nil && *a.from != *b.from) {
		return false
	}
	if (a.to == nil) != (b.to == nil) || (a.to != nil && *a.to != *b.to) {
		return false
	}
	return true
}
