/*
Package boundaries defines the per-field boundary-condition table
consumed by the tendency engine. A condition is specified per axis and
per face (lower/upper) and is immutable after setup; the engine applies
it as an additive flux correction to the field's tendency at
boundary-adjacent cells.
*/
package boundaries

import (
	"fmt"
	"sort"
)

// Kind is the boundary-condition variant.
type Kind uint8

const (
	// NoFlux contributes nothing (default for every field and face).
	NoFlux Kind = iota
	// Flux prescribes a boundary flux, positive into the domain.
	Flux
	// Gradient prescribes the outward-normal gradient of the field at
	// the boundary; converted to an equivalent diffusive flux.
	Gradient
	// Value prescribes the field value on the boundary; converted to an
	// equivalent diffusive flux through the half cell.
	Value
)

func (k Kind) String() string {
	switch k {
	case NoFlux:
		return "NoFlux"
	case Flux:
		return "Flux"
	case Gradient:
		return "Gradient"
	case Value:
		return "Value"
	}
	return "Unknown"
}

// FluxFunc lets a Flux condition depend on position along the boundary
// plane, time, and the field's boundary-adjacent value. Must be pure.
type FluxFunc func(a, b, t, fieldValue float64) float64

// Condition is one boundary condition. For Flux, Func (when non-nil)
// overrides the constant Value.
type Condition struct {
	Kind  Kind
	Value float64
	Func  FluxFunc
}

// Face selects the lower or upper boundary along an axis. Along z,
// Upper is the surface and Lower the bottom.
type Face int

const (
	Lower Face = iota
	Upper
)

// FieldBCs holds the six conditions of one field, indexed [axis][face].
type FieldBCs struct {
	X, Y, Z [2]Condition
}

// NoFluxBCs is the default: no-flux on all six faces.
func NoFluxBCs() FieldBCs { return FieldBCs{} }

// Table maps field names to their boundary conditions. Fields absent
// from the table get NoFluxBCs.
type Table map[string]FieldBCs

// Validate checks that every table entry names an existing field.
// Specifying a condition for a nonexistent field is a setup error.
func (t Table) Validate(fieldNames []string) error {
	have := make(map[string]bool, len(fieldNames))
	for _, n := range fieldNames {
		have[n] = true
	}
	var bad []string
	for name := range t {
		if !have[name] {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("boundary conditions specified for nonexistent fields %v (have %v)", bad, fieldNames)
	}
	return nil
}

// For returns the conditions for a field, defaulting to no-flux.
func (t Table) For(name string) FieldBCs {
	if bcs, ok := t[name]; ok {
		return bcs
	}
	return NoFluxBCs()
}
