package closures

import "github.com/oceanmodels/goocean/grid"

// DefaultAMDConstant is the Poincare constant for second-order
// discretizations.
const DefaultAMDConstant = 1.0 / 12.0

// amdDenominatorFloor guards the AMD quotients against division by a
// vanishing gradient norm; below it the eddy coefficient is zero.
const amdDenominatorFloor = 1e-16

/*
Anisotropic minimum dissipation (AMD) closures choose the smallest eddy
coefficient that dissipates the resolved gradient energy, from the
velocity-gradient tensor with direction-dependent grid-spacing weights:

	nu_e    = max(0, -C * sum_abc d_a^2 G_ab G_ac S_bc / D_nu)
	kappa_e = max(0, -C * sum_ab  d_a^2 G_ab dc_a dc_b / sum_a dc_a^2)

where G_ab = du_b/dx_a, S the strain tensor, dc the tracer gradient and
d_a the grid spacings. The clip at zero is the "minimum dissipation"
floor and is a required stability invariant, not an optimization.

The two variants differ in the viscosity normalization D_nu: Verstappen
divides by the squared gradient norm sum(G_ab^2), Rozema by the squared
strain norm 2*S_ij*S_ij.
*/

func amdNumeratorNu(g *grid.Grid, G [3][3]float64) (num float64) {
	d2 := [3]float64{g.Dx * g.Dx, g.Dy * g.Dy, g.Dz * g.Dz}
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			for c := 0; c < 3; c++ {
				s := 0.5 * (G[b][c] + G[c][b])
				num += d2[a] * G[a][b] * G[a][c] * s
			}
		}
	}
	return
}

func amdKappa(g *grid.Grid, C float64, G [3][3]float64, gc [3]float64) float64 {
	var den float64
	for a := 0; a < 3; a++ {
		den += gc[a] * gc[a]
	}
	if den < amdDenominatorFloor {
		return 0
	}
	d2 := [3]float64{g.Dx * g.Dx, g.Dy * g.Dy, g.Dz * g.Dz}
	var num float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			num += d2[a] * G[a][b] * gc[a] * gc[b]
		}
	}
	if ke := -C * num / den; ke > 0 {
		return ke
	}
	return 0
}

// VerstappenAMD is the minimum-dissipation model with gradient-norm
// viscosity normalization.
type VerstappenAMD struct {
	eddyViscosityBase
	C     float64
	Nu    float64 // background viscosity
	Kappa float64 // background tracer diffusivity
}

func (c VerstappenAMD) Name() string            { return "VerstappenAMD" }
func (VerstappenAMD) RequiredTracers() []string { return nil }
func (c VerstappenAMD) WithTracers([]string) (Closure, error) {
	if c.C == 0 {
		c.C = DefaultAMDConstant
	}
	return c, nil
}

func (c VerstappenAMD) UpdateDiffusivities(K *DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int) {
	G := gradTensor(g, sv, i, j, k)

	var den float64
	for a := 0; a < 3; a++ {
		for b := 0; b < 3; b++ {
			den += G[a][b] * G[a][b]
		}
	}
	var nuE float64
	if den >= amdDenominatorFloor {
		if v := -c.C * amdNumeratorNu(g, G) / den; v > 0 {
			nuE = v
		}
	}
	K.Nu.Set(i, j, k, c.Nu+nuE)

	for _, name := range sv.TracerNames {
		gc := tracerGrad(g, sv.Tracers[name].Data, i, j, k)
		K.Kappa[name].Set(i, j, k, c.Kappa+amdKappa(g, c.C, G, gc))
	}
}

// RozemaAMD is the minimum-dissipation model with strain-norm viscosity
// normalization.
type RozemaAMD struct {
	eddyViscosityBase
	C     float64
	Nu    float64
	Kappa float64
}

func (c RozemaAMD) Name() string            { return "RozemaAMD" }
func (RozemaAMD) RequiredTracers() []string { return nil }
func (c RozemaAMD) WithTracers([]string) (Closure, error) {
	if c.C == 0 {
		c.C = DefaultAMDConstant
	}
	return c, nil
}

func (c RozemaAMD) UpdateDiffusivities(K *DiffusivityFields, g *grid.Grid, sv StateView, i, j, k int) {
	G := gradTensor(g, sv, i, j, k)

	den := strainNormSq(G)
	var nuE float64
	if den >= amdDenominatorFloor {
		if v := -c.C * amdNumeratorNu(g, G) / den; v > 0 {
			nuE = v
		}
	}
	K.Nu.Set(i, j, k, c.Nu+nuE)

	for _, name := range sv.TracerNames {
		gc := tracerGrad(g, sv.Tracers[name].Data, i, j, k)
		K.Kappa[name].Set(i, j, k, c.Kappa+amdKappa(g, c.C, G, gc))
	}
}
