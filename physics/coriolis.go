package physics

import "github.com/oceanmodels/goocean/grid"

// FPlane is rotation with a constant Coriolis parameter f. Only the
// horizontal momentum components feel it.
type FPlane struct {
	F float64
}

// TendencyU is the Coriolis contribution +f*v̄ at the u point (i,j,k),
// with v interpolated from its y-face location.
func (c *FPlane) TendencyU(g *grid.Grid, v []float64, i, j, k int) float64 {
	vbar := 0.25 * (v[g.Idx(i-1, j, k)] + v[g.Idx(i, j, k)] +
		v[g.Idx(i-1, j+1, k)] + v[g.Idx(i, j+1, k)])
	return c.F * vbar
}

// TendencyV is the Coriolis contribution -f*ū at the v point (i,j,k).
func (c *FPlane) TendencyV(g *grid.Grid, u []float64, i, j, k int) float64 {
	ubar := 0.25 * (u[g.Idx(i, j-1, k)] + u[g.Idx(i+1, j-1, k)] +
		u[g.Idx(i, j, k)] + u[g.Idx(i+1, j, k)])
	return -c.F * ubar
}
