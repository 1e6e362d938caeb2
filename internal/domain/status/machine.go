package status

import (
	"fmt"
	"strings"

	"github.com/BruksfildServices01/site-backend/internal/domain"
)

// Machine holds the enumerated status domain of one entity kind. Every
// state may move to every other state.
type Machine[S ~string] struct {
	initial S
	states  []S
	aliases map[string]S
}

func New[S ~string](initial S, states ...S) *Machine[S] {
	m := &Machine[S]{
		initial: initial,
		states:  states,
		aliases: map[string]S{},
	}
	if !m.Valid(initial) {
		panic(fmt.Sprintf("status: initial %q is not part of the domain", initial))
	}
	return m
}

// WithAliases registers alternative spellings accepted by Parse.
func (m *Machine[S]) WithAliases(aliases map[string]S) *Machine[S] {
	for k, v := range aliases {
		m.aliases[normalize(k)] = v
	}
	return m
}

func (m *Machine[S]) Initial() S {
	return m.initial
}

func (m *Machine[S]) Valid(s S) bool {
	for _, st := range m.states {
		if st == s {
			return true
		}
	}
	return false
}

// Parse resolves raw input (case-insensitive, aliases included) to a state.
func (m *Machine[S]) Parse(raw string) (S, error) {
	key := normalize(raw)
	if s := S(key); m.Valid(s) {
		return s, nil
	}
	if s, ok := m.aliases[key]; ok {
		return s, nil
	}
	var zero S
	return zero, fmt.Errorf("%w: %q (allowed: %s)", domain.ErrInvalidStatus, raw, m.allowedList())
}

func (m *Machine[S]) Transition(current, requested S) (S, error) {
	if !m.Valid(requested) {
		var zero S
		return zero, fmt.Errorf("%w: %q (allowed: %s)", domain.ErrInvalidStatus, requested, m.allowedList())
	}
	return requested, nil
}

func (m *Machine[S]) allowedList() string {
	parts := make([]string, len(m.states))
	for i, s := range m.states {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}

func normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
