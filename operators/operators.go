/*
Package operators provides the finite-difference and interpolation stencil
primitives of the staggered grid. Each primitive is a pure function of a
flat field array and a storage index triple; callers are responsible for
supplying data whose staggered location matches the operator, and for
dividing raw differences by the grid spacing.

Naming: DeltaXF is the two-point difference in x evaluated at an x-face
(uses cells i-1 and i); DeltaXC is the difference evaluated at a cell
center (uses faces i and i+1). AvgXF/AvgXC are the matching two-point
interpolations. The same pattern applies in y and z. Note that k increases
downward while z points up, so vertical derivative signs are handled by
callers.
*/
package operators

import "github.com/oceanmodels/goocean/grid"

// Two-point differences.

func DeltaXF(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j, k)] - a[g.Idx(i-1, j, k)]
}

func DeltaXC(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i+1, j, k)] - a[g.Idx(i, j, k)]
}

func DeltaYF(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j, k)] - a[g.Idx(i, j-1, k)]
}

func DeltaYC(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j+1, k)] - a[g.Idx(i, j, k)]
}

func DeltaZF(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j, k)] - a[g.Idx(i, j, k-1)]
}

func DeltaZC(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j, k+1)] - a[g.Idx(i, j, k)]
}

// Two-point interpolations.

func AvgXF(g *grid.Grid, a []float64, i, j, k int) float64 {
	return 0.5 * (a[g.Idx(i, j, k)] + a[g.Idx(i-1, j, k)])
}

func AvgXC(g *grid.Grid, a []float64, i, j, k int) float64 {
	return 0.5 * (a[g.Idx(i+1, j, k)] + a[g.Idx(i, j, k)])
}

func AvgYF(g *grid.Grid, a []float64, i, j, k int) float64 {
	return 0.5 * (a[g.Idx(i, j, k)] + a[g.Idx(i, j-1, k)])
}

func AvgYC(g *grid.Grid, a []float64, i, j, k int) float64 {
	return 0.5 * (a[g.Idx(i, j+1, k)] + a[g.Idx(i, j, k)])
}

func AvgZF(g *grid.Grid, a []float64, i, j, k int) float64 {
	return 0.5 * (a[g.Idx(i, j, k)] + a[g.Idx(i, j, k-1)])
}

func AvgZC(g *grid.Grid, a []float64, i, j, k int) float64 {
	return 0.5 * (a[g.Idx(i, j, k+1)] + a[g.Idx(i, j, k)])
}

// Laplacian of a center-located field at a cell center, or of a
// face-located field at its own face; valid for either because the
// stencil is symmetric in storage index space.
func Laplacian(g *grid.Grid, a []float64, i, j, k int) float64 {
	var (
		c = a[g.Idx(i, j, k)]
	)
	return (a[g.Idx(i+1, j, k)]-2*c+a[g.Idx(i-1, j, k)])/(g.Dx*g.Dx) +
		(a[g.Idx(i, j+1, k)]-2*c+a[g.Idx(i, j-1, k)])/(g.Dy*g.Dy) +
		(a[g.Idx(i, j, k+1)]-2*c+a[g.Idx(i, j, k-1)])/(g.Dz*g.Dz)
}

// Fourth differences along a single axis, used by biharmonic closures.
// These require two halo cells.

func Delta4X(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i-2, j, k)] - 4*a[g.Idx(i-1, j, k)] + 6*a[g.Idx(i, j, k)] -
		4*a[g.Idx(i+1, j, k)] + a[g.Idx(i+2, j, k)]
}

func Delta4Y(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j-2, k)] - 4*a[g.Idx(i, j-1, k)] + 6*a[g.Idx(i, j, k)] -
		4*a[g.Idx(i, j+1, k)] + a[g.Idx(i, j+2, k)]
}

func Delta4Z(g *grid.Grid, a []float64, i, j, k int) float64 {
	return a[g.Idx(i, j, k-2)] - 4*a[g.Idx(i, j, k-1)] + 6*a[g.Idx(i, j, k)] -
		4*a[g.Idx(i, j, k+1)] + a[g.Idx(i, j, k+2)]
}

// Divergence of the velocity field at the center of cell (i,j,k).
// u is x-face located, v y-face, w z-face; w is positive upward and a
// z-face of index k is the top face of cell k.
func Divergence(g *grid.Grid, u, v, w []float64, i, j, k int) float64 {
	return DeltaXC(g, u, i, j, k)/g.Dx +
		DeltaYC(g, v, i, j, k)/g.Dy +
		(w[g.Idx(i, j, k)]-w[g.Idx(i, j, k+1)])/g.Dz
}

// VorticityZ is the vertical vorticity dv/dx - du/dy evaluated at the
// horizontal corner (x-face i, y-face j) of cell (i,j,k).
func VorticityZ(g *grid.Grid, u, v []float64, i, j, k int) float64 {
	return DeltaXF(g, v, i, j, k)/g.Dx - DeltaYF(g, u, i, j, k)/g.Dy
}
