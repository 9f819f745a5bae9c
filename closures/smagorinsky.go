package closures

import (
	"math"

	"github.com/oceanmodels/goocean/grid"
)

const (
	// DefaultSmagorinskyConstant is the classical Lilly calibration.
	DefaultSmagorinskyConstant = 0.16

	// DefaultBuoyancyModification weights the stratification correction.
	DefaultBuoyancyModification = 1.0

	// DefaultTurbulentPrandtl relates eddy viscosity to eddy diffusivity.
	DefaultTurbulentPrandtl = 1.0

	vonKarman = 0.41
)

// SmagorinskyLilly computes eddy viscosity from the resolved strain rate
// with Lilly's stratification correction:
//
//	nu_e = Nu + (C*D)^2 * |S| * s,   s = sqrt(max(0, 1 - Cb*N^2/(Pr*|S|^2)))
//
// where |S| = sqrt(2 S_ij S_ij), D is the geometric-mean grid scale and
// N^2 the local buoyancy frequency. The stability factor s is clipped at
// zero so stable stratification can extinguish the eddy viscosity but
// never make it negative.
type SmagorinskyLilly struct {
	eddyViscosityBase
	C     float64
	Cb    float64
	Pr    float64
	Nu    float64 // background viscosity
	Kappa float64 // background tracer diffusivity
}

func (c SmagorinskyLilly) Name() string            { return "SmagorinskyLilly" }
func (SmagorinskyLilly) RequiredTracers() []string { return nil }
func (c SmagorinskyLilly) WithTracers([]string) (Closure, error) {
	if c.C == 0 {
		c.C = DefaultSmagorinskyConstant
	}
	if c.Cb == 0 {
		c.Cb = DefaultBuoyancyModification
	}
	if c.Pr == 0 {
		c.Pr = DefaultTurbulentPrandtl
	}
	return c, nil
}

func (c SmagorinskyLilly) UpdateDiffusivities(K *DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int) {
	G := gradTensor(g, sv, i, j, k)
	ss := strainNormSq(G) // 2 S_ij S_ij

	var nuE float64
	if ss > 0 {
		var n2 float64
		if sv.BuoyancyAt != nil {
			// Centered buoyancy frequency, z up.
			n2 = (sv.BuoyancyAt(i, j, k-1) - sv.BuoyancyAt(i, j, k+1)) / (2 * g.Dz)
		}
		stab := 1 - c.Cb*n2/(c.Pr*ss)
		if stab < 0 {
			stab = 0
		}
		d := math.Cbrt(g.Dx * g.Dy * g.Dz)
		nuE = c.C * c.C * d * d * math.Sqrt(ss) * math.Sqrt(stab)
	}

	K.Nu.Set(i, j, k, c.Nu+nuE)
	for _, name := range sv.TracerNames {
		K.Kappa[name].Set(i, j, k, c.Kappa+nuE/c.Pr)
	}
}

// BlasiusSmagorinsky replaces the fixed Smagorinsky length with a
// boundary-layer mixing length that grows linearly away from the
// vertical walls, capped at ML0:
//
//	L(z) = min(ML0, vonKarman * d(z)),   nu_e = Nu + L^2 * |S|
//
// with d(z) the distance to the nearer of the surface and the bottom.
// On a vertically periodic grid L = ML0 everywhere.
type BlasiusSmagorinsky struct {
	eddyViscosityBase
	ML0   float64 // asymptotic mixing length
	Pr    float64
	Nu    float64
	Kappa float64
}

func (c BlasiusSmagorinsky) Name() string            { return "BlasiusSmagorinsky" }
func (BlasiusSmagorinsky) RequiredTracers() []string { return nil }
func (c BlasiusSmagorinsky) WithTracers([]string) (Closure, error) {
	if c.Pr == 0 {
		c.Pr = DefaultTurbulentPrandtl
	}
	return c, nil
}

func (c BlasiusSmagorinsky) mixingLength(g *grid.Grid, k int) float64 {
	ml := c.ML0
	if ml == 0 {
		ml = math.Cbrt(g.Dx * g.Dy * g.Dz)
	}
	if g.TopoZ == grid.Bounded {
		z := g.ZC(k)
		d := math.Min(-z, g.Lz+z) // distance to surface or bottom
		if wall := vonKarman * d; wall < ml {
			ml = wall
		}
	}
	return ml
}

func (c BlasiusSmagorinsky) UpdateDiffusivities(K *DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int) {
	G := gradTensor(g, sv, i, j, k)
	ss := strainNormSq(G)

	var nuE float64
	if ss > 0 {
		l := c.mixingLength(g, k)
		nuE = l * l * math.Sqrt(ss)
	}

	K.Nu.Set(i, j, k, c.Nu+nuE)
	for _, name := range sv.TracerNames {
		K.Kappa[name].Set(i, j, k, c.Kappa+nuE/c.Pr)
	}
}
