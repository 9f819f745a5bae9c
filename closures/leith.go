package closures

import (
	"math"

	"github.com/oceanmodels/goocean/grid"
	"github.com/oceanmodels/goocean/operators"
)

// DefaultLeithConstant is the standard Leith model constant.
const DefaultLeithConstant = 0.3

// TwoDimensionalLeith computes eddy viscosity from the magnitude of the
// horizontal vorticity gradient:
//
//	nu_e = (C * Dh)^3 * |grad_h zeta| + Nu
//
// with Dh the horizontal grid scale. Tracers are mixed with the same
// eddy coefficient plus the background Kappa.
type TwoDimensionalLeith struct {
	eddyViscosityBase
	C     float64
	Nu    float64 // background viscosity
	Kappa float64 // background tracer diffusivity
}

func (c TwoDimensionalLeith) Name() string            { return "TwoDimensionalLeith" }
func (TwoDimensionalLeith) RequiredTracers() []string { return nil }
func (c TwoDimensionalLeith) WithTracers([]string) (Closure, error) {
	if c.C == 0 {
		c.C = DefaultLeithConstant
	}
	return c, nil
}

func (c TwoDimensionalLeith) UpdateDiffusivities(K *DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int) {
	var (
		u = sv.U.Data
		v = sv.V.Data
	)
	// Vertical vorticity at the four horizontal corners of the cell.
	z00 := operators.VorticityZ(g, u, v, i, j, k)
	z10 := operators.VorticityZ(g, u, v, i+1, j, k)
	z01 := operators.VorticityZ(g, u, v, i, j+1, k)
	z11 := operators.VorticityZ(g, u, v, i+1, j+1, k)

	dzdx := 0.5 * ((z10 - z00) + (z11 - z01)) / g.Dx
	dzdy := 0.5 * ((z01 - z00) + (z11 - z10)) / g.Dy

	dh := math.Sqrt(g.Dx * g.Dy)
	cd := c.C * dh
	nuE := cd * cd * cd * math.Hypot(dzdx, dzdy)

	K.Nu.Set(i, j, k, c.Nu+nuE)
	for _, name := range sv.TracerNames {
		K.Kappa[name].Set(i, j, k, c.Kappa+nuE)
	}
}
