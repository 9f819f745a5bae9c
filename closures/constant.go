package closures

import (
	"github.com/oceanmodels/goocean/grid"
	"github.com/oceanmodels/goocean/operators"
)

// NoClosure contributes nothing: zero stress, zero flux, no diffusivity
// state.
type NoClosure struct{}

func (NoClosure) Name() string                                   { return "NoClosure" }
func (NoClosure) RequiredTracers() []string                      { return nil }
func (n NoClosure) WithTracers([]string) (Closure, error)        { return n, nil }
func (NoClosure) DiffusivityFields(*grid.Grid, []string) *DiffusivityFields { return nil }
func (NoClosure) UpdateDiffusivities(*DiffusivityFields, *grid.Grid, StateView, int, int, int) {
}
func (NoClosure) ViscousFluxDivU(*grid.Grid, *DiffusivityFields, StateView, int, int, int) float64 {
	return 0
}
func (NoClosure) ViscousFluxDivV(*grid.Grid, *DiffusivityFields, StateView, int, int, int) float64 {
	return 0
}
func (NoClosure) ViscousFluxDivW(*grid.Grid, *DiffusivityFields, StateView, int, int, int) float64 {
	return 0
}
func (NoClosure) DiffusiveFluxDiv(*grid.Grid, *DiffusivityFields, StateView, string, int, int, int) float64 {
	return 0
}
func (NoClosure) NuAt(*DiffusivityFields, *grid.Grid, Axis, int, int, int) float64 { return 0 }
func (NoClosure) KappaAt(*DiffusivityFields, *grid.Grid, string, Axis, int, int, int) float64 {
	return 0
}

// IsotropicDiffusivity applies a constant viscosity Nu to momentum and a
// constant diffusivity to every tracer: Kappa by default, overridden per
// tracer by PerTracer. There is no per-timestep diffusivity work.
type IsotropicDiffusivity struct {
	Nu        float64
	Kappa     float64
	PerTracer map[string]float64
}

func (c IsotropicDiffusivity) Name() string { return "IsotropicDiffusivity" }

func (c IsotropicDiffusivity) RequiredTracers() []string {
	names := make([]string, 0, len(c.PerTracer))
	for n := range c.PerTracer {
		names = append(names, n)
	}
	return names
}

// WithTracers rebuilds the per-tracer table against the actual tracer
// set: entries for absent tracers are dropped, missing tracers fall back
// to the default Kappa.
func (c IsotropicDiffusivity) WithTracers(names []string) (Closure, error) {
	if len(c.PerTracer) == 0 {
		return c, nil
	}
	rebuilt := make(map[string]float64, len(names))
	for _, n := range names {
		if v, ok := c.PerTracer[n]; ok {
			rebuilt[n] = v
		}
	}
	c.PerTracer = rebuilt
	return c, nil
}

func (c IsotropicDiffusivity) kappaFor(name string) float64 {
	if v, ok := c.PerTracer[name]; ok {
		return v
	}
	return c.Kappa
}

func (IsotropicDiffusivity) DiffusivityFields(*grid.Grid, []string) *DiffusivityFields {
	return nil
}

func (IsotropicDiffusivity) UpdateDiffusivities(*DiffusivityFields, *grid.Grid, StateView, int, int, int) {
}

func (c IsotropicDiffusivity) ViscousFluxDivU(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return c.Nu * operators.Laplacian(g, sv.U.Data, i, j, k)
}

func (c IsotropicDiffusivity) ViscousFluxDivV(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return c.Nu * operators.Laplacian(g, sv.V.Data, i, j, k)
}

func (c IsotropicDiffusivity) ViscousFluxDivW(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return c.Nu * operators.Laplacian(g, sv.W.Data, i, j, k)
}

func (c IsotropicDiffusivity) DiffusiveFluxDiv(g *grid.Grid, _ *DiffusivityFields, sv StateView, name string, i, j, k int) float64 {
	return c.kappaFor(name) * operators.Laplacian(g, sv.Tracers[name].Data, i, j, k)
}

func (c IsotropicDiffusivity) NuAt(*DiffusivityFields, *grid.Grid, Axis, int, int, int) float64 {
	return c.Nu
}

func (c IsotropicDiffusivity) KappaAt(_ *DiffusivityFields, _ *grid.Grid, name string, _ Axis, _, _, _ int) float64 {
	return c.kappaFor(name)
}

// AnisotropicDiffusivity applies direction-dependent constant viscosity
// and tracer diffusivity.
type AnisotropicDiffusivity struct {
	NuX, NuY, NuZ          float64
	KappaX, KappaY, KappaZ float64
}

func (c AnisotropicDiffusivity) Name() string              { return "AnisotropicDiffusivity" }
func (AnisotropicDiffusivity) RequiredTracers() []string   { return nil }
func (c AnisotropicDiffusivity) WithTracers([]string) (Closure, error) { return c, nil }
func (AnisotropicDiffusivity) DiffusivityFields(*grid.Grid, []string) *DiffusivityFields {
	return nil
}
func (AnisotropicDiffusivity) UpdateDiffusivities(*DiffusivityFields, *grid.Grid, StateView, int, int, int) {
}

func anisoLaplacian(g *grid.Grid, a []float64, nx, ny, nz float64, i, j, k int) float64 {
	c := a[g.Idx(i, j, k)]
	return nx*(a[g.Idx(i+1, j, k)]-2*c+a[g.Idx(i-1, j, k)])/(g.Dx*g.Dx) +
		ny*(a[g.Idx(i, j+1, k)]-2*c+a[g.Idx(i, j-1, k)])/(g.Dy*g.Dy) +
		nz*(a[g.Idx(i, j, k+1)]-2*c+a[g.Idx(i, j, k-1)])/(g.Dz*g.Dz)
}

func (c AnisotropicDiffusivity) ViscousFluxDivU(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return anisoLaplacian(g, sv.U.Data, c.NuX, c.NuY, c.NuZ, i, j, k)
}

func (c AnisotropicDiffusivity) ViscousFluxDivV(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return anisoLaplacian(g, sv.V.Data, c.NuX, c.NuY, c.NuZ, i, j, k)
}

func (c AnisotropicDiffusivity) ViscousFluxDivW(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return anisoLaplacian(g, sv.W.Data, c.NuX, c.NuY, c.NuZ, i, j, k)
}

func (c AnisotropicDiffusivity) DiffusiveFluxDiv(g *grid.Grid, _ *DiffusivityFields, sv StateView, name string, i, j, k int) float64 {
	return anisoLaplacian(g, sv.Tracers[name].Data, c.KappaX, c.KappaY, c.KappaZ, i, j, k)
}

func (c AnisotropicDiffusivity) NuAt(_ *DiffusivityFields, _ *grid.Grid, ax Axis, _, _, _ int) float64 {
	switch ax {
	case AxisX:
		return c.NuX
	case AxisY:
		return c.NuY
	default:
		return c.NuZ
	}
}

func (c AnisotropicDiffusivity) KappaAt(_ *DiffusivityFields, _ *grid.Grid, _ string, ax Axis, _, _, _ int) float64 {
	switch ax {
	case AxisX:
		return c.KappaX
	case AxisY:
		return c.KappaY
	default:
		return c.KappaZ
	}
}

// AnisotropicBiharmonicDiffusivity applies fourth-order hyperdiffusion
// with separate horizontal and vertical coefficients. Its stencils are
// the reason the grid carries two halo cells.
type AnisotropicBiharmonicDiffusivity struct {
	NuH, NuZ       float64
	KappaH, KappaZ float64
}

func (c AnisotropicBiharmonicDiffusivity) Name() string { return "AnisotropicBiharmonicDiffusivity" }
func (AnisotropicBiharmonicDiffusivity) RequiredTracers() []string { return nil }
func (c AnisotropicBiharmonicDiffusivity) WithTracers([]string) (Closure, error) {
	return c, nil
}
func (AnisotropicBiharmonicDiffusivity) DiffusivityFields(*grid.Grid, []string) *DiffusivityFields {
	return nil
}
func (AnisotropicBiharmonicDiffusivity) UpdateDiffusivities(*DiffusivityFields, *grid.Grid, StateView, int, int, int) {
}

func biharmonic(g *grid.Grid, a []float64, nh, nz float64, i, j, k int) float64 {
	d4 := g.Dx * g.Dx * g.Dx * g.Dx
	out := -nh * operators.Delta4X(g, a, i, j, k) / d4
	d4 = g.Dy * g.Dy * g.Dy * g.Dy
	out -= nh * operators.Delta4Y(g, a, i, j, k) / d4
	d4 = g.Dz * g.Dz * g.Dz * g.Dz
	out -= nz * operators.Delta4Z(g, a, i, j, k) / d4
	return out
}

func (c AnisotropicBiharmonicDiffusivity) ViscousFluxDivU(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return biharmonic(g, sv.U.Data, c.NuH, c.NuZ, i, j, k)
}

func (c AnisotropicBiharmonicDiffusivity) ViscousFluxDivV(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return biharmonic(g, sv.V.Data, c.NuH, c.NuZ, i, j, k)
}

func (c AnisotropicBiharmonicDiffusivity) ViscousFluxDivW(g *grid.Grid, _ *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return biharmonic(g, sv.W.Data, c.NuH, c.NuZ, i, j, k)
}

func (c AnisotropicBiharmonicDiffusivity) DiffusiveFluxDiv(g *grid.Grid, _ *DiffusivityFields, sv StateView, name string, i, j, k int) float64 {
	return biharmonic(g, sv.Tracers[name].Data, c.KappaH, c.KappaZ, i, j, k)
}

// A biharmonic coefficient has no gradient-diffusion equivalent, so the
// boundary-flux conversion sees zero.
func (AnisotropicBiharmonicDiffusivity) NuAt(*DiffusivityFields, *grid.Grid, Axis, int, int, int) float64 {
	return 0
}
func (AnisotropicBiharmonicDiffusivity) KappaAt(*DiffusivityFields, *grid.Grid, string, Axis, int, int, int) float64 {
	return 0
}
