package closures

import "github.com/oceanmodels/goocean/grid"

/*
Shared stencil helpers for the variable-coefficient closures.

Eddy coefficients live at cell centers. Stress and flux divergences are
assembled in flux form: coefficient interpolated to the flux location,
multiplied by the local gradient, then differenced back onto the field's
own staggered point. With a spatially constant coefficient every helper
reduces exactly to coefficient times the discrete Laplacian.

Index conventions follow the grid package: a face of index i is the lower
face of cell i in x and y; a z-face of index k is the TOP face of cell k
(z points up, k grows downward), so vertical gradients at face k use
(a[k-1]-a[k])/Dz and vertical divergences at cell k use F(k)-F(k+1).
*/

func nuCornerXY(g *grid.Grid, nu []float64, i, j, k int) float64 {
	return 0.25 * (nu[g.Idx(i-1, j-1, k)] + nu[g.Idx(i, j-1, k)] +
		nu[g.Idx(i-1, j, k)] + nu[g.Idx(i, j, k)])
}

func nuCornerXZ(g *grid.Grid, nu []float64, i, j, k int) float64 {
	return 0.25 * (nu[g.Idx(i-1, j, k-1)] + nu[g.Idx(i, j, k-1)] +
		nu[g.Idx(i-1, j, k)] + nu[g.Idx(i, j, k)])
}

func nuCornerYZ(g *grid.Grid, nu []float64, i, j, k int) float64 {
	return 0.25 * (nu[g.Idx(i, j-1, k-1)] + nu[g.Idx(i, j, k-1)] +
		nu[g.Idx(i, j-1, k)] + nu[g.Idx(i, j, k)])
}

// varNuFluxDivU is div(nu grad u) at the u point (x-face i).
func varNuFluxDivU(g *grid.Grid, nu, u []float64, i, j, k int) float64 {
	var (
		fxp = nu[g.Idx(i, j, k)] * (u[g.Idx(i+1, j, k)] - u[g.Idx(i, j, k)]) / g.Dx
		fxm = nu[g.Idx(i-1, j, k)] * (u[g.Idx(i, j, k)] - u[g.Idx(i-1, j, k)]) / g.Dx

		fyp = nuCornerXY(g, nu, i, j+1, k) * (u[g.Idx(i, j+1, k)] - u[g.Idx(i, j, k)]) / g.Dy
		fym = nuCornerXY(g, nu, i, j, k) * (u[g.Idx(i, j, k)] - u[g.Idx(i, j-1, k)]) / g.Dy

		fzt = nuCornerXZ(g, nu, i, j, k) * (u[g.Idx(i, j, k-1)] - u[g.Idx(i, j, k)]) / g.Dz
		fzb = nuCornerXZ(g, nu, i, j, k+1) * (u[g.Idx(i, j, k)] - u[g.Idx(i, j, k+1)]) / g.Dz
	)
	return (fxp-fxm)/g.Dx + (fyp-fym)/g.Dy + (fzt-fzb)/g.Dz
}

// varNuFluxDivV is div(nu grad v) at the v point (y-face j).
func varNuFluxDivV(g *grid.Grid, nu, v []float64, i, j, k int) float64 {
	var (
		fxp = nuCornerXY(g, nu, i+1, j, k) * (v[g.Idx(i+1, j, k)] - v[g.Idx(i, j, k)]) / g.Dx
		fxm = nuCornerXY(g, nu, i, j, k) * (v[g.Idx(i, j, k)] - v[g.Idx(i-1, j, k)]) / g.Dx

		fyp = nu[g.Idx(i, j, k)] * (v[g.Idx(i, j+1, k)] - v[g.Idx(i, j, k)]) / g.Dy
		fym = nu[g.Idx(i, j-1, k)] * (v[g.Idx(i, j, k)] - v[g.Idx(i, j-1, k)]) / g.Dy

		fzt = nuCornerYZ(g, nu, i, j, k) * (v[g.Idx(i, j, k-1)] - v[g.Idx(i, j, k)]) / g.Dz
		fzb = nuCornerYZ(g, nu, i, j, k+1) * (v[g.Idx(i, j, k)] - v[g.Idx(i, j, k+1)]) / g.Dz
	)
	return (fxp-fxm)/g.Dx + (fyp-fym)/g.Dy + (fzt-fzb)/g.Dz
}

// varNuFluxDivW is div(nu grad w) at the w point (z-face k).
func varNuFluxDivW(g *grid.Grid, nu, w []float64, i, j, k int) float64 {
	var (
		fxp = nuCornerXZ(g, nu, i+1, j, k) * (w[g.Idx(i+1, j, k)] - w[g.Idx(i, j, k)]) / g.Dx
		fxm = nuCornerXZ(g, nu, i, j, k) * (w[g.Idx(i, j, k)] - w[g.Idx(i-1, j, k)]) / g.Dx

		fyp = nuCornerYZ(g, nu, i, j+1, k) * (w[g.Idx(i, j+1, k)] - w[g.Idx(i, j, k)]) / g.Dy
		fym = nuCornerYZ(g, nu, i, j, k) * (w[g.Idx(i, j, k)] - w[g.Idx(i, j-1, k)]) / g.Dy

		fzt = nu[g.Idx(i, j, k-1)] * (w[g.Idx(i, j, k-1)] - w[g.Idx(i, j, k)]) / g.Dz
		fzb = nu[g.Idx(i, j, k)] * (w[g.Idx(i, j, k)] - w[g.Idx(i, j, k+1)]) / g.Dz
	)
	return (fxp-fxm)/g.Dx + (fyp-fym)/g.Dy + (fzt-fzb)/g.Dz
}

// varKappaFluxDiv is div(kappa grad c) at the cell center, for a
// center-located tracer and center-located diffusivity.
func varKappaFluxDiv(g *grid.Grid, kap, c []float64, i, j, k int) float64 {
	var (
		fxp = 0.5 * (kap[g.Idx(i, j, k)] + kap[g.Idx(i+1, j, k)]) * (c[g.Idx(i+1, j, k)] - c[g.Idx(i, j, k)]) / g.Dx
		fxm = 0.5 * (kap[g.Idx(i-1, j, k)] + kap[g.Idx(i, j, k)]) * (c[g.Idx(i, j, k)] - c[g.Idx(i-1, j, k)]) / g.Dx

		fyp = 0.5 * (kap[g.Idx(i, j, k)] + kap[g.Idx(i, j+1, k)]) * (c[g.Idx(i, j+1, k)] - c[g.Idx(i, j, k)]) / g.Dy
		fym = 0.5 * (kap[g.Idx(i, j-1, k)] + kap[g.Idx(i, j, k)]) * (c[g.Idx(i, j, k)] - c[g.Idx(i, j-1, k)]) / g.Dy

		fzt = 0.5 * (kap[g.Idx(i, j, k-1)] + kap[g.Idx(i, j, k)]) * (c[g.Idx(i, j, k-1)] - c[g.Idx(i, j, k)]) / g.Dz
		fzb = 0.5 * (kap[g.Idx(i, j, k)] + kap[g.Idx(i, j, k+1)]) * (c[g.Idx(i, j, k)] - c[g.Idx(i, j, k+1)]) / g.Dz
	)
	return (fxp-fxm)/g.Dx + (fyp-fym)/g.Dy + (fzt-fzb)/g.Dz
}

/*
gradTensor evaluates the resolved velocity-gradient tensor at the center
of cell (i,j,k). Row a is the derivative direction (x,y,z with z up),
column b the velocity component. Diagonal entries are exact at centers;
off-diagonal entries are four-point averages of the natural corner
values.
*/
func gradTensor(g *grid.Grid, sv StateView, i, j, k int) (G [3][3]float64) {
	var (
		u = sv.U.Data
		v = sv.V.Data
		w = sv.W.Data
	)
	// Diagonals.
	G[0][0] = (u[g.Idx(i+1, j, k)] - u[g.Idx(i, j, k)]) / g.Dx
	G[1][1] = (v[g.Idx(i, j+1, k)] - v[g.Idx(i, j, k)]) / g.Dy
	G[2][2] = (w[g.Idx(i, j, k)] - w[g.Idx(i, j, k+1)]) / g.Dz

	// du/dy at the four xy-corners of the cell.
	dudy := func(ii, jj int) float64 { return (u[g.Idx(ii, jj, k)] - u[g.Idx(ii, jj-1, k)]) / g.Dy }
	G[1][0] = 0.25 * (dudy(i, j) + dudy(i+1, j) + dudy(i, j+1) + dudy(i+1, j+1))

	// du/dz at the four xz-corners (z up: cell k-1 sits above cell k).
	dudz := func(ii, kk int) float64 { return (u[g.Idx(ii, j, kk-1)] - u[g.Idx(ii, j, kk)]) / g.Dz }
	G[2][0] = 0.25 * (dudz(i, k) + dudz(i+1, k) + dudz(i, k+1) + dudz(i+1, k+1))

	// dv/dx at the four xy-corners.
	dvdx := func(ii, jj int) float64 { return (v[g.Idx(ii, jj, k)] - v[g.Idx(ii-1, jj, k)]) / g.Dx }
	G[0][1] = 0.25 * (dvdx(i, j) + dvdx(i+1, j) + dvdx(i, j+1) + dvdx(i+1, j+1))

	// dv/dz at the four yz-corners.
	dvdz := func(jj, kk int) float64 { return (v[g.Idx(i, jj, kk-1)] - v[g.Idx(i, jj, kk)]) / g.Dz }
	G[2][1] = 0.25 * (dvdz(j, k) + dvdz(j+1, k) + dvdz(j, k+1) + dvdz(j+1, k+1))

	// dw/dx at the four xz-corners.
	dwdx := func(ii, kk int) float64 { return (w[g.Idx(ii, j, kk)] - w[g.Idx(ii-1, j, kk)]) / g.Dx }
	G[0][2] = 0.25 * (dwdx(i, k) + dwdx(i+1, k) + dwdx(i, k+1) + dwdx(i+1, k+1))

	// dw/dy at the four yz-corners.
	dwdy := func(jj, kk int) float64 { return (w[g.Idx(i, jj, kk)] - w[g.Idx(i, jj-1, kk)]) / g.Dy }
	G[1][2] = 0.25 * (dwdy(j, k) + dwdy(j+1, k) + dwdy(j, k+1) + dwdy(j+1, k+1))
	return
}

// strainNormSq returns 2*S_ij*S_ij from a velocity-gradient tensor.
func strainNormSq(G [3][3]float64) (ss float64) {
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			s := 0.5 * (G[a][b] + G[b][a])
			ss += 2 * s * s
		}
	}
	return
}

// tracerGrad is the centered tracer gradient at a cell center, z up.
func tracerGrad(g *grid.Grid, c []float64, i, j, k int) (gc [3]float64) {
	gc[0] = (c[g.Idx(i+1, j, k)] - c[g.Idx(i-1, j, k)]) / (2 * g.Dx)
	gc[1] = (c[g.Idx(i, j+1, k)] - c[g.Idx(i, j-1, k)]) / (2 * g.Dy)
	gc[2] = (c[g.Idx(i, j, k-1)] - c[g.Idx(i, j, k+1)]) / (2 * g.Dz)
	return
}
