// Package statemachine provides an explicit finite-state-machine description
// shared by the order and delivery coordinators. The state set and transition
// relation are declared once, validated at construction, and consulted on
// every status change instead of scattering inline transition tables through
// handlers.
package statemachine

import (
	"fmt"
	"sort"

	"marketplace/internal/pkg/errs"
)

// Machine is an immutable transition table over string states.
//
// Repeating the current state is always accepted as an idempotent no-op so
// transition requests tolerate at-least-once delivery; IsNoOp distinguishes
// that case for callers that must suppress duplicate side effects.
type Machine struct {
	entity      string
	transitions map[string][]string
}

// New builds a Machine for the named entity from its transition relation and
// validates it: every state must appear as a source, and every target must be
// a declared state. Terminal states are declared with an empty target set.
func New(entity string, transitions map[string][]string) (Machine, error) {
	if entity == "" {
		return Machine{}, errs.NewValueIsRequiredError("entity")
	}
	if len(transitions) == 0 {
		return Machine{}, errs.NewValueIsRequiredError("transitions")
	}

	for from, targets := range transitions {
		for _, to := range targets {
			if _, ok := transitions[to]; !ok {
				return Machine{}, errs.NewValueIsInvalidErrorWithCause(
					"transitions",
					fmt.Errorf("%s -> %s references undeclared state %q", from, to, to),
				)
			}
		}
	}

	copied := make(map[string][]string, len(transitions))
	for from, targets := range transitions {
		copied[from] = append([]string(nil), targets...)
	}

	return Machine{entity: entity, transitions: copied}, nil
}

// MustNew is New that panics on error. Use for the package-level tables that
// are validated once at startup.
func MustNew(entity string, transitions map[string][]string) Machine {
	m, err := New(entity, transitions)
	if err != nil {
		panic(err)
	}
	return m
}

// Entity returns the name the machine reports in transition errors.
func (m Machine) Entity() string {
	return m.entity
}

// IsState reports whether s is a declared state.
func (m Machine) IsState(s string) bool {
	_, ok := m.transitions[s]
	return ok
}

// IsTerminal reports whether s has no outgoing transitions.
func (m Machine) IsTerminal(s string) bool {
	targets, ok := m.transitions[s]
	return ok && len(targets) == 0
}

// IsNoOp reports whether a from→to request repeats the current state.
func (m Machine) IsNoOp(from, to string) bool {
	return from == to && m.IsState(from)
}

// Check validates a from→to request. It returns nil for an allowed transition
// or an idempotent repeat of the current state, and InvalidTransitionError
// otherwise.
func (m Machine) Check(from, to string) error {
	if m.IsNoOp(from, to) {
		return nil
	}

	targets, ok := m.transitions[from]
	if !ok {
		return errs.NewInvalidTransitionError(m.entity, from, to)
	}

	for _, target := range targets {
		if target == to {
			return nil
		}
	}

	return errs.NewInvalidTransitionError(m.entity, from, to)
}

// States returns all declared states in sorted order.
func (m Machine) States() []string {
	states := make([]string, 0, len(m.transitions))
	for s := range m.transitions {
		states = append(states, s)
	}
	sort.Strings(states)
	return states
}
