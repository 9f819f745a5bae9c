package physics

import (
	"fmt"

	"github.com/oceanmodels/goocean/grid"
)

// Buoyancy supplies the buoyancy perturbation at cell centers from tracer
// state. It declares the tracers it requires; the tendency engine
// validates the declaration against the simulation's tracer set at setup.
type Buoyancy interface {
	RequiredTracers() []string
	Perturbation(g *grid.Grid, tracers map[string]*grid.Field, i, j, k int) float64
}

// BuoyancyTracer treats the tracer "b" directly as buoyancy.
type BuoyancyTracer struct{}

func (BuoyancyTracer) RequiredTracers() []string { return []string{"b"} }

func (BuoyancyTracer) Perturbation(g *grid.Grid, tracers map[string]*grid.Field, i, j, k int) float64 {
	return tracers["b"].Data[g.Idx(i, j, k)]
}

// SeawaterBuoyancy computes buoyancy from temperature and salinity with a
// linear equation of state:
//
//	b = g0 * (alpha*(T - T0) - beta*(S - S0))
type SeawaterBuoyancy struct {
	G0     float64 // gravitational acceleration
	Alpha  float64 // thermal expansion coefficient
	Beta   float64 // haline contraction coefficient
	T0, S0 float64 // reference temperature and salinity
}

func (SeawaterBuoyancy) RequiredTracers() []string { return []string{"T", "S"} }

func (b SeawaterBuoyancy) Perturbation(g *grid.Grid, tracers map[string]*grid.Field, i, j, k int) float64 {
	ind := g.Idx(i, j, k)
	return b.G0 * (b.Alpha*(tracers["T"].Data[ind]-b.T0) - b.Beta*(tracers["S"].Data[ind]-b.S0))
}

// ValidateBuoyancy checks a buoyancy model's tracer requirements against
// the declared tracer set.
func ValidateBuoyancy(b Buoyancy, tracerNames []string) error {
	if b == nil {
		return nil
	}
	have := make(map[string]bool, len(tracerNames))
	for _, n := range tracerNames {
		have[n] = true
	}
	for _, n := range b.RequiredTracers() {
		if !have[n] {
			return fmt.Errorf("buoyancy model requires tracer %q which is not in the tracer set %v", n, tracerNames)
		}
	}
	return nil
}
