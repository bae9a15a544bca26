// Package config loads the YAML configuration document the core treats
// as an external collaborator: a fully constructed Filter plus a list of
// interface descriptors. Parsing the document's grammar and discovering
// it on disk are this package's job, not the routing core's; the core
// only ever sees the Filter and Interface values this package produces.
package config

// Document is the on-disk configuration shape.
type Document struct {
	Default         string        `yaml:"default"`
	AcceptByDefault bool          `yaml:"accept_by_default"`
	Chains          []ChainSpec   `yaml:"chains"`
	Interfaces      []Interface   `yaml:"interfaces"`
}

// ChainSpec describes one named chain and its ordered rules.
type ChainSpec struct {
	Name  string     `yaml:"name"`
	Rules []RuleSpec `yaml:"rules"`
}

// RuleSpec describes one rule. Action is one of "accept", "reject",
// "call", "goto". Chain names the Call/GoTo target; ignored otherwise.
type RuleSpec struct {
	Action   string   `yaml:"action"`
	Priority *int32   `yaml:"priority,omitempty"`
	Chain    string   `yaml:"chain,omitempty"`
	If       *IfSpec  `yaml:"if,omitempty"`
}

// IfSpec describes an optional If condition. Either ID or Name may
// select the message type; From/To are subnet strings.
type IfSpec struct {
	ID   *uint32 `yaml:"id,omitempty"`
	Name string  `yaml:"name,omitempty"`
	From string  `yaml:"from,omitempty"`
	To   string  `yaml:"to,omitempty"`
}

// Interface describes one transport endpoint. Exactly one of Serial, UDP,
// or PcapReplay should be set.
type Interface struct {
	Name       string      `yaml:"name"`
	Mirror     bool        `yaml:"mirror"`
	Serial     *Serial     `yaml:"serial,omitempty"`
	UDP        *UDP        `yaml:"udp,omitempty"`
	PcapReplay *PcapReplay `yaml:"pcap_replay,omitempty"`
}

// PcapReplay describes an offline capture to replay as ingress traffic,
// used to exercise the router against a recorded session without a live
// link.
type PcapReplay struct {
	Path string `yaml:"path"`
}

// Serial describes a serial interface descriptor: device path, baud
// rate, and flow control.
type Serial struct {
	Device      string `yaml:"device"`
	Baud        int    `yaml:"baud"`
	FlowControl string `yaml:"flow_control"`
}

// UDP describes a UDP interface descriptor: bind address and remote
// address/port.
type UDP struct {
	Bind   string `yaml:"bind"`
	Remote string `yaml:"remote"`
}
