// Package dialect is the read-only MAVLink message table: id<->name
// lookup and the byte offsets of the target-system/target-component
// fields inside each message's payload.
package dialect

import "fmt"

// Entry describes one message definition's target-addressing metadata.
type Entry struct {
	ID            uint32
	Name          string
	HasSystem     bool
	SystemOffset  int
	HasComponent  bool
	ComponentOffset int
}

// Table is a read-only dialect lookup.
type Table struct {
	byID   map[uint32]Entry
	byName map[string]uint32
}

// UnknownMessageError is raised when a message id or name is not present
// in the dialect table.
type UnknownMessageError struct {
	ID   uint32
	Name string
}

func (e *UnknownMessageError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("unknown MAVLink message name %q", e.Name)
	}
	return fmt.Sprintf("unknown MAVLink message id %d", e.ID)
}

// New builds a Table from a list of entries.
func New(entries []Entry) *Table {
	t := &Table{
		byID:   make(map[uint32]Entry, len(entries)),
		byName: make(map[string]uint32, len(entries)),
	}
	for _, e := range entries {
		t.byID[e.ID] = e
		t.byName[e.Name] = e.ID
	}
	return t
}

// NameOf returns the message name for an id.
func (t *Table) NameOf(id uint32) (string, error) {
	e, ok := t.byID[id]
	if !ok {
		return "", &UnknownMessageError{ID: id}
	}
	return e.Name, nil
}

// IDOf returns the message id for a name.
func (t *Table) IDOf(name string) (uint32, error) {
	id, ok := t.byName[name]
	if !ok {
		return 0, &UnknownMessageError{Name: name}
	}
	return id, nil
}

// Lookup returns the full entry for an id.
func (t *Table) Lookup(id uint32) (Entry, bool) {
	e, ok := t.byID[id]
	return e, ok
}

// Targets returns the target-system/target-component presence flags and
// payload byte offsets for a message id, matching the External Interfaces
// contract: (has_system, sys_offset, has_component, comp_offset).
func (t *Table) Targets(id uint32) (hasSystem bool, sysOffset int, hasComponent bool, compOffset int, ok bool) {
	e, ok := t.byID[id]
	if !ok {
		return false, 0, false, 0, false
	}
	return e.HasSystem, e.SystemOffset, e.HasComponent, e.ComponentOffset, true
}
