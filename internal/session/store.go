// Package session holds the interactive control layer over the external
// co-simulation engine: the parameter store, the cross-run state
// continuation bookkeeping, and the run controller.
package session

import (
	"math"
	"strings"
)

// InitSuffix marks a logical name as an initial value rather than a
// run-time parameter.
const InitSuffix = "_start"

// Values is a read-only view of current parameter values, handed to
// constraint predicates.
type Values map[string]float64

// Constraint is an advisory predicate over the parameter store. Expr is the
// textual form reported when the predicate evaluates false. Constraints are
// checked after updates apply and never roll anything back.
type Constraint struct {
	Expr  string
	Check func(Values) bool
}

// Rejection records one update that was refused and why.
type Rejection struct {
	Name   string
	Reason string
}

// UpdateReport is the outcome of a SetParameters or SetInitialValues call.
// Accepted values are already applied when the report is returned.
type UpdateReport struct {
	Rejected []Rejection
	Violated []string
}

// OK reports whether every update was accepted and every constraint holds.
func (r *UpdateReport) OK() bool {
	return len(r.Rejected) == 0 && len(r.Violated) == 0
}

type entry struct {
	location string
	value    float64
}

// ParameterStore is the authoritative mapping of logical parameter and
// initial-value names to engine locations and current values. Names must be
// declared before they can be updated.
type ParameterStore struct {
	order   []string
	entries map[string]*entry
	checks  []Constraint
}

func NewParameterStore() *ParameterStore {
	return &ParameterStore{entries: make(map[string]*entry)}
}

// Declare registers a logical name with its engine location and starting
// value. Redeclaring a name overwrites its location and value.
func (s *ParameterStore) Declare(name, location string, value float64) {
	if _, ok := s.entries[name]; !ok {
		s.order = append(s.order, name)
	}
	s.entries[name] = &entry{location: location, value: value}
}

// AddConstraint registers an advisory validity check.
func (s *ParameterStore) AddConstraint(c Constraint) {
	s.checks = append(s.checks, c)
}

// SetParameters applies updates for known names and reports the rest.
// Accepted updates apply atomically as a group; afterwards every registered
// constraint is evaluated against the new values and violations are listed
// by their textual form. Violations do not roll values back.
func (s *ParameterStore) SetParameters(updates map[string]float64) *UpdateReport {
	report := &UpdateReport{}
	staged := make(map[string]float64, len(updates))
	for name, v := range updates {
		if _, ok := s.entries[name]; ok {
			staged[name] = v
		} else {
			report.Rejected = append(report.Rejected, Rejection{
				Name:   name,
				Reason: "seems not an accessible parameter - check the spelling",
			})
		}
	}
	for name, v := range staged {
		s.entries[name].value = v
	}
	values := s.Values()
	for _, c := range s.checks {
		if !c.Check(values) {
			report.Violated = append(report.Violated, c.Expr)
		}
	}
	return report
}

// SetInitialValues is SetParameters restricted to names carrying the
// initial-value naming convention. Other names are rejected with a pointer
// to SetParameters; no constraint pass runs here.
func (s *ParameterStore) SetInitialValues(updates map[string]float64) *UpdateReport {
	report := &UpdateReport{}
	staged := make(map[string]float64, len(updates))
	for name, v := range updates {
		if !strings.Contains(name, InitSuffix) {
			report.Rejected = append(report.Rejected, Rejection{
				Name:   name,
				Reason: "seems not an initial value, use a parameter update instead - check the spelling",
			})
			continue
		}
		if _, ok := s.entries[name]; ok {
			staged[name] = v
		} else {
			report.Rejected = append(report.Rejected, Rejection{
				Name:   name,
				Reason: "seems not an accessible parameter - check the spelling",
			})
		}
	}
	for name, v := range staged {
		s.entries[name].value = v
	}
	return report
}

// Value returns the current value of a declared name.
func (s *ParameterStore) Value(name string) (float64, bool) {
	e, ok := s.entries[name]
	if !ok {
		return 0, false
	}
	return e.value, true
}

// Location returns the engine location of a declared name.
func (s *ParameterStore) Location(name string) (string, bool) {
	e, ok := s.entries[name]
	if !ok {
		return "", false
	}
	return e.location, true
}

// Names lists declared names in declaration order.
func (s *ParameterStore) Names() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Values snapshots the current values.
func (s *ParameterStore) Values() Values {
	v := make(Values, len(s.entries))
	for name, e := range s.entries {
		v[name] = e.value
	}
	return v
}

// Missing lists declared names whose value is absent (NaN), in declaration
// order.
func (s *ParameterStore) Missing() []string {
	var missing []string
	for _, name := range s.order {
		if math.IsNaN(s.entries[name].value) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Each visits every entry in declaration order.
func (s *ParameterStore) Each(fn func(name, location string, value float64) error) error {
	for _, name := range s.order {
		e := s.entries[name]
		if err := fn(name, e.location, e.value); err != nil {
			return err
		}
	}
	return nil
}
