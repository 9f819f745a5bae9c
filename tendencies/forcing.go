package tendencies

import (
	"fmt"
	"sort"
)

// ForcingFunc is a user source term evaluated at a field's own staggered
// position. Must be pure: no side effects, no state mutation.
type ForcingFunc func(x, y, z, t float64, s *State) float64

// Forcing maps prognostic field names to their forcing functions.
type Forcing map[string]ForcingFunc

// Validate checks that every forcing entry names an existing field.
func (f Forcing) Validate(fieldNames []string) error {
	have := make(map[string]bool, len(fieldNames))
	for _, n := range fieldNames {
		have[n] = true
	}
	var bad []string
	for name := range f {
		if !have[name] {
			bad = append(bad, name)
		}
	}
	if len(bad) > 0 {
		sort.Strings(bad)
		return fmt.Errorf("forcing specified for nonexistent fields %v (have %v)", bad, fieldNames)
	}
	return nil
}
