/*
Package closures implements the turbulence-closure abstraction: each
closure supplies eddy viscosity/diffusivity representing unresolved
subgrid transport, a stress-divergence operator per momentum component,
and a flux-divergence operator per tracer. All per-cell operations are
pure functions of (index, grid, parameters, state, diffusivities); the
only mutable state is the DiffusivityFields container recomputed each
timestep.
*/
package closures

import "github.com/oceanmodels/goocean/grid"

// Axis identifies a grid direction for direction-dependent coefficients.
type Axis uint8

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// StateView is the read-only slice of simulation state a closure may
// consult: velocities, tracers, and the buoyancy perturbation at cell
// centers (nil when the simulation carries no buoyancy model).
type StateView struct {
	U, V, W     *grid.Field
	TracerNames []string
	Tracers     map[string]*grid.Field
	BuoyancyAt  func(i, j, k int) float64
}

// DiffusivityFields holds a closure's mutable per-timestep state: eddy
// viscosity at cell centers and one eddy diffusivity field per tracer.
// Constant-coefficient closures carry none and return nil.
type DiffusivityFields struct {
	Nu    *grid.Field
	Kappa map[string]*grid.Field
}

func NewDiffusivityFields(g *grid.Grid, tracers []string) *DiffusivityFields {
	K := &DiffusivityFields{
		Nu:    grid.NewField("nu_e", grid.LocCenter, g),
		Kappa: make(map[string]*grid.Field, len(tracers)),
	}
	for _, name := range tracers {
		K.Kappa[name] = grid.NewField("kappa_e_"+name, grid.LocCenter, g)
	}
	return K
}

// Closure is the contract every turbulence model satisfies.
//
// UpdateDiffusivities recomputes K at one cell from the current state;
// the engine sweeps it over the interior between the tendency-store and
// tendency-compute phases. ViscousFluxDiv* give the closure's
// contribution to the momentum tendencies at the component's own
// staggered point, DiffusiveFluxDiv the contribution to a tracer
// tendency at the cell center. NuAt/KappaAt expose the effective
// coefficient along an axis for boundary-flux conversion.
type Closure interface {
	Name() string
	RequiredTracers() []string
	WithTracers(names []string) (Closure, error)
	DiffusivityFields(g *grid.Grid, tracers []string) *DiffusivityFields
	UpdateDiffusivities(K *DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int)
	ViscousFluxDivU(g *grid.Grid, K *DiffusivityFields, sv StateView, i, j, k int) float64
	ViscousFluxDivV(g *grid.Grid, K *DiffusivityFields, sv StateView, i, j, k int) float64
	ViscousFluxDivW(g *grid.Grid, K *DiffusivityFields, sv StateView, i, j, k int) float64
	DiffusiveFluxDiv(g *grid.Grid, K *DiffusivityFields, sv StateView, name string, i, j, k int) float64
	NuAt(K *DiffusivityFields, g *grid.Grid, ax Axis, i, j, k int) float64
	KappaAt(K *DiffusivityFields, g *grid.Grid, name string, ax Axis, i, j, k int) float64
}

// Tuple composes closures by pure superposition: every operation sums the
// per-closure contributions, and each closure owns its own
// DiffusivityFields slot. Composing n identical closures yields exactly n
// times the single-closure result.
type Tuple struct {
	Closures []Closure
}

func NewTuple(cs ...Closure) Tuple {
	return Tuple{Closures: cs}
}

func (t Tuple) RequiredTracers() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range t.Closures {
		for _, n := range c.RequiredTracers() {
			if !seen[n] {
				seen[n] = true
				names = append(names, n)
			}
		}
	}
	return names
}

// WithTracers rebuilds every member closure against the actual tracer
// name set, per the setup-time resolution contract.
func (t Tuple) WithTracers(names []string) (Tuple, error) {
	out := Tuple{Closures: make([]Closure, len(t.Closures))}
	for n, c := range t.Closures {
		rebuilt, err := c.WithTracers(names)
		if err != nil {
			return Tuple{}, err
		}
		out.Closures[n] = rebuilt
	}
	return out, nil
}

func (t Tuple) DiffusivityFields(g *grid.Grid, tracers []string) []*DiffusivityFields {
	Ks := make([]*DiffusivityFields, len(t.Closures))
	for n, c := range t.Closures {
		Ks[n] = c.DiffusivityFields(g, tracers)
	}
	return Ks
}

func (t Tuple) UpdateDiffusivities(Ks []*DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int) {
	for n, c := range t.Closures {
		c.UpdateDiffusivities(Ks[n], g, sv, i, j, k)
	}
}

func (t Tuple) ViscousFluxDivU(g *grid.Grid, Ks []*DiffusivityFields, sv StateView, i, j, k int) (sum float64) {
	for n, c := range t.Closures {
		sum += c.ViscousFluxDivU(g, Ks[n], sv, i, j, k)
	}
	return
}

func (t Tuple) ViscousFluxDivV(g *grid.Grid, Ks []*DiffusivityFields, sv StateView, i, j, k int) (sum float64) {
	for n, c := range t.Closures {
		sum += c.ViscousFluxDivV(g, Ks[n], sv, i, j, k)
	}
	return
}

func (t Tuple) ViscousFluxDivW(g *grid.Grid, Ks []*DiffusivityFields, sv StateView, i, j, k int) (sum float64) {
	for n, c := range t.Closures {
		sum += c.ViscousFluxDivW(g, Ks[n], sv, i, j, k)
	}
	return
}

func (t Tuple) DiffusiveFluxDiv(g *grid.Grid, Ks []*DiffusivityFields, sv StateView, name string, i, j, k int) (sum float64) {
	for n, c := range t.Closures {
		sum += c.DiffusiveFluxDiv(g, Ks[n], sv, name, i, j, k)
	}
	return
}

func (t Tuple) NuAt(Ks []*DiffusivityFields, g *grid.Grid, ax Axis, i, j, k int) (sum float64) {
	for n, c := range t.Closures {
		sum += c.NuAt(Ks[n], g, ax, i, j, k)
	}
	return
}

func (t Tuple) KappaAt(Ks []*DiffusivityFields, g *grid.Grid, name string, ax Axis, i, j, k int) (sum float64) {
	for n, c := range t.Closures {
		sum += c.KappaAt(Ks[n], g, name, ax, i, j, k)
	}
	return
}
