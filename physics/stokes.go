package physics

import "github.com/oceanmodels/goocean/grid"

// UniformStokesDrift is surface-wave (Craik-Leibovich) forcing from a
// horizontally uniform Stokes drift profile. Only the vertical shear of
// the drift enters the vortex force, prescribed as functions of (z, t).
type UniformStokesDrift struct {
	DzUStokes func(z, t float64) float64
	DzVStokes func(z, t float64) float64
}

func (s *UniformStokesDrift) dzU(z, t float64) float64 {
	if s.DzUStokes == nil {
		return 0
	}
	return s.DzUStokes(z, t)
}

func (s *UniformStokesDrift) dzV(z, t float64) float64 {
	if s.DzVStokes == nil {
		return 0
	}
	return s.DzVStokes(z, t)
}

// TendencyU is the vortex force w̄ * dz(uˢ) at the u point (i,j,k).
func (s *UniformStokesDrift) TendencyU(g *grid.Grid, w []float64, i, j, k int, t float64) float64 {
	wbar := 0.25 * (w[g.Idx(i-1, j, k)] + w[g.Idx(i, j, k)] +
		w[g.Idx(i-1, j, k+1)] + w[g.Idx(i, j, k+1)])
	return wbar * s.dzU(g.ZC(k), t)
}

// TendencyV is the vortex force w̄ * dz(vˢ) at the v point (i,j,k).
func (s *UniformStokesDrift) TendencyV(g *grid.Grid, w []float64, i, j, k int, t float64) float64 {
	wbar := 0.25 * (w[g.Idx(i, j-1, k)] + w[g.Idx(i, j, k)] +
		w[g.Idx(i, j-1, k+1)] + w[g.Idx(i, j, k+1)])
	return wbar * s.dzV(g.ZC(k), t)
}

// TendencyW is the vortex force -(ū*dz(uˢ) + v̄*dz(vˢ)) at the w point
// (i,j,k), which sits on the top face of cell k at z = ZF(k).
func (s *UniformStokesDrift) TendencyW(g *grid.Grid, u, v []float64, i, j, k int, t float64) float64 {
	z := g.ZF(k)
	ubar := 0.25 * (u[g.Idx(i, j, k-1)] + u[g.Idx(i+1, j, k-1)] +
		u[g.Idx(i, j, k)] + u[g.Idx(i+1, j, k)])
	vbar := 0.25 * (v[g.Idx(i, j, k-1)] + v[g.Idx(i, j+1, k-1)] +
		v[g.Idx(i, j, k)] + v[g.Idx(i, j+1, k)])
	return -(ubar*s.dzU(z, t) + vbar*s.dzV(z, t))
}
