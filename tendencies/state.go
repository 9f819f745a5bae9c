/*
Package tendencies computes the right-hand-side (tendency) of every
prognostic field each timestep: advection, Coriolis, turbulence-closure
stress and flux divergences, hydrostatic pressure, surface-wave forcing,
user forcing, and boundary-flux corrections, executed as a sequence of
barrier-separated data-parallel phases.
*/
package tendencies

import (
	"github.com/oceanmodels/goocean/closures"
	"github.com/oceanmodels/goocean/grid"
	"github.com/oceanmodels/goocean/physics"
)

// State is the simulation's current-state container: velocities, tracers
// and the hydrostatic pressure column updated by the engine each step.
type State struct {
	Grid        *grid.Grid
	U, V, W     *grid.Field
	TracerNames []string
	Tracers     map[string]*grid.Field
	PHydro      *grid.Field
}

func NewState(g *grid.Grid, tracerNames []string) *State {
	s := &State{
		Grid:        g,
		U:           grid.NewField("u", grid.LocU, g),
		V:           grid.NewField("v", grid.LocV, g),
		W:           grid.NewField("w", grid.LocW, g),
		TracerNames: append([]string(nil), tracerNames...),
		Tracers:     make(map[string]*grid.Field, len(tracerNames)),
		PHydro:      grid.NewField("pHY", grid.LocCenter, g),
	}
	for _, name := range tracerNames {
		s.Tracers[name] = grid.NewField(name, grid.LocCenter, g)
	}
	return s
}

// FieldNames lists the prognostic fields: velocities then tracers.
func (s *State) FieldNames() []string {
	names := []string{"u", "v", "w"}
	return append(names, s.TracerNames...)
}

// Field returns a prognostic field by name, nil if unknown.
func (s *State) Field(name string) *grid.Field {
	switch name {
	case "u":
		return s.U
	case "v":
		return s.V
	case "w":
		return s.W
	}
	return s.Tracers[name]
}

// View exposes the state to closures, with buoyancy evaluated through
// the given model (nil for none).
func (s *State) View(b physics.Buoyancy) closures.StateView {
	sv := closures.StateView{
		U: s.U, V: s.V, W: s.W,
		TracerNames: s.TracerNames,
		Tracers:     s.Tracers,
	}
	if b != nil {
		sv.BuoyancyAt = func(i, j, k int) float64 {
			return b.Perturbation(s.Grid, s.Tracers, i, j, k)
		}
	}
	return sv
}
