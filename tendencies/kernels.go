package tendencies

import (
	"github.com/oceanmodels/goocean/closures"
	"github.com/oceanmodels/goocean/grid"
)

/*
Per-cell tendency kernels. Each kernel assembles

	tendency = advection + Coriolis + closure divergence
	         + pressure/buoyancy (w only) + Stokes drift + forcing

at the field's own staggered point. All spatial coupling happens through
the operator primitives; the kernels never interpolate on their own.

Advection is second-order centered in flux form. Index conventions: an
x- or y-face of index i/j is the lower face of that cell; a z-face of
index k is the top face of cell k (z up, k down).
*/

// divMomentumFluxU is div(u*velocity) at the u point (x-face i).
func divMomentumFluxU(g *grid.Grid, sv closures.StateView, i, j, k int) float64 {
	var (
		u = sv.U.Data
		v = sv.V.Data
		w = sv.W.Data
	)
	// x flux u*u at the two neighboring cell centers.
	uE := 0.5 * (u[g.Idx(i+1, j, k)] + u[g.Idx(i, j, k)])
	uW := 0.5 * (u[g.Idx(i, j, k)] + u[g.Idx(i-1, j, k)])
	fx := (uE*uE - uW*uW) / g.Dx

	// y flux v*u at the two xy-corners.
	cornerY := func(jj int) float64 {
		vb := 0.5 * (v[g.Idx(i-1, jj, k)] + v[g.Idx(i, jj, k)])
		ub := 0.5 * (u[g.Idx(i, jj, k)] + u[g.Idx(i, jj-1, k)])
		return vb * ub
	}
	fy := (cornerY(j+1) - cornerY(j)) / g.Dy

	// z flux w*u at the top (k) and bottom (k+1) xz-corners.
	cornerZ := func(kk int) float64 {
		wb := 0.5 * (w[g.Idx(i-1, j, kk)] + w[g.Idx(i, j, kk)])
		ub := 0.5 * (u[g.Idx(i, j, kk)] + u[g.Idx(i, j, kk-1)])
		return wb * ub
	}
	fz := (cornerZ(k) - cornerZ(k+1)) / g.Dz

	return fx + fy + fz
}

// divMomentumFluxV is div(u*velocity) at the v point (y-face j).
func divMomentumFluxV(g *grid.Grid, sv closures.StateView, i, j, k int) float64 {
	var (
		u = sv.U.Data
		v = sv.V.Data
		w = sv.W.Data
	)
	cornerX := func(ii int) float64 {
		ub := 0.5 * (u[g.Idx(ii, j-1, k)] + u[g.Idx(ii, j, k)])
		vb := 0.5 * (v[g.Idx(ii, j, k)] + v[g.Idx(ii-1, j, k)])
		return ub * vb
	}
	fx := (cornerX(i+1) - cornerX(i)) / g.Dx

	vN := 0.5 * (v[g.Idx(i, j+1, k)] + v[g.Idx(i, j, k)])
	vS := 0.5 * (v[g.Idx(i, j, k)] + v[g.Idx(i, j-1, k)])
	fy := (vN*vN - vS*vS) / g.Dy

	cornerZ := func(kk int) float64 {
		wb := 0.5 * (w[g.Idx(i, j-1, kk)] + w[g.Idx(i, j, kk)])
		vb := 0.5 * (v[g.Idx(i, j, kk)] + v[g.Idx(i, j, kk-1)])
		return wb * vb
	}
	fz := (cornerZ(k) - cornerZ(k+1)) / g.Dz

	return fx + fy + fz
}

// divMomentumFluxW is div(u*velocity) at the w point (z-face k).
func divMomentumFluxW(g *grid.Grid, sv closures.StateView, i, j, k int) float64 {
	var (
		u = sv.U.Data
		v = sv.V.Data
		w = sv.W.Data
	)
	cornerX := func(ii int) float64 {
		ub := 0.5 * (u[g.Idx(ii, j, k-1)] + u[g.Idx(ii, j, k)])
		wb := 0.5 * (w[g.Idx(ii, j, k)] + w[g.Idx(ii-1, j, k)])
		return ub * wb
	}
	fx := (cornerX(i+1) - cornerX(i)) / g.Dx

	cornerY := func(jj int) float64 {
		vb := 0.5 * (v[g.Idx(i, jj, k-1)] + v[g.Idx(i, jj, k)])
		wb := 0.5 * (w[g.Idx(i, jj, k)] + w[g.Idx(i, jj-1, k)])
		return vb * wb
	}
	fy := (cornerY(j+1) - cornerY(j)) / g.Dy

	// z flux w*w at the neighboring cell centers; center k-1 is above.
	center := func(kk int) float64 {
		wb := 0.5 * (w[g.Idx(i, j, kk)] + w[g.Idx(i, j, kk+1)])
		return wb * wb
	}
	fz := (center(k-1) - center(k)) / g.Dz

	return fx + fy + fz
}

// divTracerFlux is div(u*c) at the cell center.
func divTracerFlux(g *grid.Grid, sv closures.StateView, c []float64, i, j, k int) float64 {
	var (
		u = sv.U.Data
		v = sv.V.Data
		w = sv.W.Data
	)
	faceX := func(ii int) float64 {
		return u[g.Idx(ii, j, k)] * 0.5 * (c[g.Idx(ii, j, k)] + c[g.Idx(ii-1, j, k)])
	}
	fx := (faceX(i+1) - faceX(i)) / g.Dx

	faceY := func(jj int) float64 {
		return v[g.Idx(i, jj, k)] * 0.5 * (c[g.Idx(i, jj, k)] + c[g.Idx(i, jj-1, k)])
	}
	fy := (faceY(j+1) - faceY(j)) / g.Dy

	faceZ := func(kk int) float64 {
		return w[g.Idx(i, j, kk)] * 0.5 * (c[g.Idx(i, j, kk)] + c[g.Idx(i, j, kk-1)])
	}
	fz := (faceZ(k) - faceZ(k+1)) / g.Dz

	return fx + fy + fz
}

func (e *Engine) uTendency(sv closures.StateView, i, j, k int, t float64) float64 {
	g := e.grid
	out := -divMomentumFluxU(g, sv, i, j, k)
	out += e.closure.ViscousFluxDivU(g, e.Ks, sv, i, j, k)
	if e.coriolis != nil {
		out += e.coriolis.TendencyU(g, sv.V.Data, i, j, k)
	}
	if e.stokes != nil {
		out += e.stokes.TendencyU(g, sv.W.Data, i, j, k, t)
	}
	if f, ok := e.forcing["u"]; ok {
		out += f(g.XF(i), g.YC(j), g.ZC(k), t, e.state)
	}
	return out
}

func (e *Engine) vTendency(sv closures.StateView, i, j, k int, t float64) float64 {
	g := e.grid
	out := -divMomentumFluxV(g, sv, i, j, k)
	out += e.closure.ViscousFluxDivV(g, e.Ks, sv, i, j, k)
	if e.coriolis != nil {
		out += e.coriolis.TendencyV(g, sv.U.Data, i, j, k)
	}
	if e.stokes != nil {
		out += e.stokes.TendencyV(g, sv.W.Data, i, j, k, t)
	}
	if f, ok := e.forcing["v"]; ok {
		out += f(g.XC(i), g.YF(j), g.ZC(k), t, e.state)
	}
	return out
}

// wTendency consumes the hydrostatic pressure column updated earlier in
// the phase sequence; buoyancy enters the momentum budget only through
// -dz(pHY'), evaluated at the w face between cells k-1 and k.
func (e *Engine) wTendency(sv closures.StateView, i, j, k int, t float64) float64 {
	g := e.grid
	out := -divMomentumFluxW(g, sv, i, j, k)
	out += e.closure.ViscousFluxDivW(g, e.Ks, sv, i, j, k)

	ph := e.state.PHydro.Data
	out += (ph[g.Idx(i, j, k)] - ph[g.Idx(i, j, k-1)]) / g.Dz

	if e.stokes != nil {
		out += e.stokes.TendencyW(g, sv.U.Data, sv.V.Data, i, j, k, t)
	}
	if f, ok := e.forcing["w"]; ok {
		out += f(g.XC(i), g.YC(j), g.ZF(k), t, e.state)
	}
	return out
}

func (e *Engine) tracerTendency(sv closures.StateView, name string, i, j, k int, t float64) float64 {
	g := e.grid
	out := -divTracerFlux(g, sv, sv.Tracers[name].Data, i, j, k)
	out += e.closure.DiffusiveFluxDiv(g, e.Ks, sv, name, i, j, k)
	if f, ok := e.forcing[name]; ok {
		out += f(g.XC(i), g.YC(j), g.ZC(k), t, e.state)
	}
	return out
}
