package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/avionics-go/mavrouter/internal/dialect"
	"github.com/avionics-go/mavrouter/internal/firewall"
	"github.com/avionics-go/mavrouter/internal/mavaddr"
)

// Load reads and validates a configuration document, returning a fully
// constructed Filter and the interface descriptors to attach to fresh
// Connections. table resolves by-name message conditions.
func Load(path string, table *dialect.Table) (*firewall.Filter, []Interface, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var doc Document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	filter, err := Build(&doc, table)
	if err != nil {
		return nil, nil, err
	}
	return filter, doc.Interfaces, nil
}

// Build resolves a parsed Document into a Filter, rejecting every
// InvalidConfig case: no default chain named, a Call/GoTo that targets
// the default chain, a chain name with whitespace (surfaced by
// firewall.NewChain), or a Call/GoTo naming a chain that does not exist.
func Build(doc *Document, table *dialect.Table) (*firewall.Filter, error) {
	if doc.Default == "" {
		return nil, &firewall.InvalidConfigError{Reason: "no default chain named"}
	}

	chains := make(map[string]*firewall.Chain, len(doc.Chains))
	for _, spec := range doc.Chains {
		c, err := firewall.NewChain(spec.Name)
		if err != nil {
			return nil, err
		}
		chains[spec.Name] = c
	}

	defaultChain, ok := chains[doc.Default]
	if !ok {
		return nil, &firewall.InvalidConfigError{Reason: fmt.Sprintf("default chain %q is not defined", doc.Default)}
	}

	for _, spec := range doc.Chains {
		chain := chains[spec.Name]
		for _, ruleSpec := range spec.Rules {
			rule, err := buildRule(ruleSpec, chains, doc.Default, table)
			if err != nil {
				return nil, err
			}
			chain.AddRule(rule)
		}
	}

	return firewall.NewFilter(defaultChain, doc.AcceptByDefault), nil
}

func buildRule(spec RuleSpec, chains map[string]*firewall.Chain, defaultName string, table *dialect.Table) (*firewall.Rule, error) {
	cond, err := buildIf(spec.If, table)
	if err != nil {
		return nil, err
	}

	switch spec.Action {
	case "accept":
		return firewall.NewAccept(spec.Priority, cond), nil
	case "reject":
		return firewall.NewReject(cond), nil
	case "call", "goto":
		if spec.Chain == defaultName {
			return nil, &firewall.InvalidConfigError{Reason: fmt.Sprintf("%s targets the root default chain %q", spec.Action, defaultName)}
		}
		target, ok := chains[spec.Chain]
		if !ok {
			return nil, &firewall.InvalidConfigError{Reason: fmt.Sprintf("%s targets undefined chain %q", spec.Action, spec.Chain)}
		}
		if spec.Action == "call" {
			return firewall.NewCall(target, spec.Priority, cond)
		}
		return firewall.NewGoTo(target, spec.Priority, cond)
	default:
		return nil, &firewall.InvalidConfigError{Reason: fmt.Sprintf("unknown rule action %q", spec.Action)}
	}
}

func buildIf(spec *IfSpec, table *dialect.Table) (*firewall.If, error) {
	if spec == nil {
		return nil, nil
	}
	cond := firewall.NewIf()
	switch {
	case spec.ID != nil:
		cond = cond.WithID(*spec.ID)
	case spec.Name != "":
		var err error
		cond, err = cond.WithName(spec.Name, table)
		if err != nil {
			return nil, err
		}
	}
	if spec.From != "" {
		sn, err := mavaddr.ParseSubnet(spec.From)
		if err != nil {
			return nil, err
		}
		cond = cond.From(sn)
	}
	if spec.To != "" {
		sn, err := mavaddr.ParseSubnet(spec.To)
		if err != nil {
			return nil, err
		}
		cond = cond.To(sn)
	}
	return cond, nil
}
