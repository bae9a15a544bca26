package config

import (
	"testing"

	"github.com/avionics-go/mavrouter/internal/dialect"
)

func TestBuildSimpleFilter(t *testing.T) {
	doc := &Document{
		Default:         "default",
		AcceptByDefault: false,
		Chains: []ChainSpec{
			{Name: "default", Rules: []RuleSpec{
				{Action: "accept", If: &IfSpec{Name: "PING", From: "192.168", To: "127.0/8"}},
				{Action: "reject"},
			}},
		},
	}
	filter, err := Build(doc, dialect.Common)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if filter.Default.Name() != "default" {
		t.Errorf("default chain = %q, want %q", filter.Default.Name(), "default")
	}
}

func TestBuildRejectsGoToDefaultChain(t *testing.T) {
	doc := &Document{
		Default: "default",
		Chains: []ChainSpec{
			{Name: "default", Rules: []RuleSpec{{Action: "goto", Chain: "default"}}},
		},
	}
	if _, err := Build(doc, dialect.Common); err == nil {
		t.Error("expected error when goto targets the default chain")
	}
}

func TestBuildRejectsUndefinedChain(t *testing.T) {
	doc := &Document{
		Default: "default",
		Chains: []ChainSpec{
			{Name: "default", Rules: []RuleSpec{{Action: "call", Chain: "missing"}}},
		},
	}
	if _, err := Build(doc, dialect.Common); err == nil {
		t.Error("expected error when call targets an undefined chain")
	}
}

func TestBuildRejectsMissingDefault(t *testing.T) {
	doc := &Document{Default: "nope"}
	if _, err := Build(doc, dialect.Common); err == nil {
		t.Error("expected error when the default chain is not defined")
	}
}

func TestBuildRejectsUnknownMessageName(t *testing.T) {
	doc := &Document{
		Default: "default",
		Chains: []ChainSpec{
			{Name: "default", Rules: []RuleSpec{{Action: "accept", If: &IfSpec{Name: "NOT_A_REAL_MESSAGE"}}}},
		},
	}
	if _, err := Build(doc, dialect.Common); err == nil {
		t.Error("expected error for an unknown message name in an If condition")
	}
}
