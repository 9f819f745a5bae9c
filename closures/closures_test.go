package closures

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanmodels/goocean/grid"
)

func testGrid(t *testing.T) *grid.Grid {
	g, err := grid.New(8, 8, 8, 8, 8, 8, grid.Periodic, grid.Periodic, grid.Periodic)
	assert.NoError(t, err)
	return g
}

// fillBy fills the whole storage array, halos included, from an
// index-triple formula so stencils see a consistent analytic field.
func fillBy(f *grid.Field, fn func(i, j, k int) float64) {
	g := f.G
	for k := 0; k < g.Sz; k++ {
		for j := 0; j < g.Sy; j++ {
			for i := 0; i < g.Sx; i++ {
				f.Data[g.Idx(i, j, k)] = fn(i, j, k)
			}
		}
	}
}

func uniformView(g *grid.Grid, u0, v0, w0 float64, tracerNames ...string) StateView {
	sv := StateView{
		U:           grid.NewField("u", grid.LocU, g),
		V:           grid.NewField("v", grid.LocV, g),
		W:           grid.NewField("w", grid.LocW, g),
		TracerNames: tracerNames,
		Tracers:     make(map[string]*grid.Field, len(tracerNames)),
	}
	fillBy(sv.U, func(i, j, k int) float64 { return u0 })
	fillBy(sv.V, func(i, j, k int) float64 { return v0 })
	fillBy(sv.W, func(i, j, k int) float64 { return w0 })
	for _, name := range tracerNames {
		sv.Tracers[name] = grid.NewField(name, grid.LocCenter, g)
	}
	return sv
}

func randomView(g *grid.Grid, seed int64, tracerNames ...string) StateView {
	rng := rand.New(rand.NewSource(seed))
	sv := uniformView(g, 0, 0, 0, tracerNames...)
	fields := []*grid.Field{sv.U, sv.V, sv.W}
	for _, name := range tracerNames {
		fields = append(fields, sv.Tracers[name])
	}
	for _, f := range fields {
		for k := grid.Halo; k < grid.Halo+g.Nz; k++ {
			for j := grid.Halo; j < grid.Halo+g.Ny; j++ {
				for i := grid.Halo; i < grid.Halo+g.Nx; i++ {
					f.Set(i, j, k, rng.Float64()-0.5)
				}
			}
		}
		f.FillHalos()
	}
	return sv
}

func TestNoClosure(t *testing.T) {
	g := testGrid(t)
	sv := randomView(g, 1, "b")
	var (
		H = grid.Halo
		c = NoClosure{}
	)
	assert.Nil(t, c.DiffusivityFields(g, []string{"b"}))
	assert.Equal(t, 0., c.ViscousFluxDivU(g, nil, sv, H+2, H+2, H+2))
	assert.Equal(t, 0., c.ViscousFluxDivV(g, nil, sv, H+2, H+2, H+2))
	assert.Equal(t, 0., c.ViscousFluxDivW(g, nil, sv, H+2, H+2, H+2))
	assert.Equal(t, 0., c.DiffusiveFluxDiv(g, nil, sv, "b", H+2, H+2, H+2))
	assert.Equal(t, 0., c.NuAt(nil, g, AxisZ, H, H, H))
}

func TestConstantDiffusivities(t *testing.T) {
	g := testGrid(t)
	var (
		H       = grid.Halo
		i, j, k = H + 3, H + 3, H + 3
	)
	{ // Isotropic viscous term is Nu times the Laplacian: x^2 gives 2*Nu
		sv := uniformView(g, 0, 0, 0, "b")
		fillBy(sv.U, func(ii, jj, kk int) float64 { x := g.XF(ii); return x * x })
		c := IsotropicDiffusivity{Nu: 0.5, Kappa: 0.25}
		assert.InDelta(t, 1., c.ViscousFluxDivU(g, nil, sv, i, j, k), 1.e-12)

		fillBy(sv.Tracers["b"], func(ii, jj, kk int) float64 { y := g.YC(jj); return y * y })
		assert.InDelta(t, 0.5, c.DiffusiveFluxDiv(g, nil, sv, "b", i, j, k), 1.e-12)
	}
	{ // Per-tracer override, and rebuild drops entries for absent tracers
		c := IsotropicDiffusivity{Kappa: 1, PerTracer: map[string]float64{"T": 3, "q": 7}}
		assert.ElementsMatch(t, []string{"T", "q"}, c.RequiredTracers())
		rebuilt, err := c.WithTracers([]string{"T"})
		assert.NoError(t, err)
		assert.Equal(t, []string{"T"}, rebuilt.RequiredTracers())
		assert.Equal(t, 3., rebuilt.KappaAt(nil, g, "T", AxisX, i, j, k))
		assert.Equal(t, 1., rebuilt.KappaAt(nil, g, "q", AxisX, i, j, k))
	}
	{ // Anisotropic coefficients resolve by axis
		c := AnisotropicDiffusivity{NuX: 1, NuY: 2, NuZ: 3, KappaX: 4, KappaY: 5, KappaZ: 6}
		assert.Equal(t, 1., c.NuAt(nil, g, AxisX, i, j, k))
		assert.Equal(t, 2., c.NuAt(nil, g, AxisY, i, j, k))
		assert.Equal(t, 3., c.NuAt(nil, g, AxisZ, i, j, k))
		assert.Equal(t, 5., c.KappaAt(nil, g, "b", AxisY, i, j, k))
	}
	{ // Biharmonic damps an isolated spike and hides from flux conversion
		sv := uniformView(g, 0, 0, 0)
		sv.U.Set(i, j, k, 1)
		c := AnisotropicBiharmonicDiffusivity{NuH: 2, NuZ: 1}
		// Delta4 of a unit spike is 6 on each axis; Dx=Dy=Dz=1 here.
		assert.InDelta(t, -(2*6 + 2*6 + 1*6), c.ViscousFluxDivU(g, nil, sv, i, j, k), 1.e-12)
		assert.Equal(t, 0., c.NuAt(nil, g, AxisX, i, j, k))
		assert.Equal(t, 0., c.KappaAt(nil, g, "b", AxisZ, i, j, k))
	}
}

func TestZeroStrainGivesBackgroundCoefficients(t *testing.T) {
	g := testGrid(t)
	sv := uniformView(g, 1.3, -0.7, 0.2, "b")
	eddies := []Closure{
		TwoDimensionalLeith{Nu: 1.e-4, Kappa: 1.e-5},
		SmagorinskyLilly{Nu: 1.e-4, Kappa: 1.e-5},
		BlasiusSmagorinsky{Nu: 1.e-4, Kappa: 1.e-5},
		VerstappenAMD{Nu: 1.e-4, Kappa: 1.e-5},
		RozemaAMD{Nu: 1.e-4, Kappa: 1.e-5},
	}
	var (
		H       = grid.Halo
		i, j, k = H + 3, H + 3, H + 3
	)
	for _, raw := range eddies {
		c, err := raw.WithTracers([]string{"b"})
		assert.NoError(t, err)
		K := c.DiffusivityFields(g, []string{"b"})
		c.UpdateDiffusivities(K, g, sv, i, j, k)
		assert.Equal(t, 1.e-4, K.Nu.At(i, j, k), c.Name())
		assert.Equal(t, 1.e-5, K.Kappa["b"].At(i, j, k), c.Name())
	}
}

func TestTupleSuperposition(t *testing.T) {
	g := testGrid(t)
	sv := randomView(g, 42, "b")
	var (
		H       = grid.Halo
		i, j, k = H + 3, H + 3, H + 3
	)
	{ // Two identical constant closures give exactly twice one
		one := NewTuple(IsotropicDiffusivity{Nu: 0.3, Kappa: 0.1})
		two := NewTuple(IsotropicDiffusivity{Nu: 0.3, Kappa: 0.1},
			IsotropicDiffusivity{Nu: 0.3, Kappa: 0.1})
		K1 := one.DiffusivityFields(g, []string{"b"})
		K2 := two.DiffusivityFields(g, []string{"b"})
		assert.Equal(t, 2*one.ViscousFluxDivU(g, K1, sv, i, j, k), two.ViscousFluxDivU(g, K2, sv, i, j, k))
		assert.Equal(t, 2*one.ViscousFluxDivW(g, K1, sv, i, j, k), two.ViscousFluxDivW(g, K2, sv, i, j, k))
		assert.Equal(t, 2*one.DiffusiveFluxDiv(g, K1, sv, "b", i, j, k), two.DiffusiveFluxDiv(g, K2, sv, "b", i, j, k))
		assert.Equal(t, 2*one.NuAt(K1, g, AxisX, i, j, k), two.NuAt(K2, g, AxisX, i, j, k))
	}
	{ // Same for a computed-coefficient closure: each slot owns its state
		one, err := NewTuple(SmagorinskyLilly{}).WithTracers([]string{"b"})
		assert.NoError(t, err)
		two, err := NewTuple(SmagorinskyLilly{}, SmagorinskyLilly{}).WithTracers([]string{"b"})
		assert.NoError(t, err)
		K1 := one.DiffusivityFields(g, []string{"b"})
		K2 := two.DiffusivityFields(g, []string{"b"})
		for kk := grid.Halo; kk < grid.Halo+g.Nz; kk++ {
			for jj := grid.Halo; jj < grid.Halo+g.Ny; jj++ {
				for ii := grid.Halo; ii < grid.Halo+g.Nx; ii++ {
					one.UpdateDiffusivities(K1, g, sv, ii, jj, kk)
					two.UpdateDiffusivities(K2, g, sv, ii, jj, kk)
				}
			}
		}
		for _, K := range append(K1, K2...) {
			K.Nu.FillHalos()
			K.Kappa["b"].FillHalos()
		}
		assert.InDelta(t, 2*one.ViscousFluxDivU(g, K1, sv, i, j, k), two.ViscousFluxDivU(g, K2, sv, i, j, k), 1.e-15)
		assert.InDelta(t, 2*one.DiffusiveFluxDiv(g, K1, sv, "b", i, j, k), two.DiffusiveFluxDiv(g, K2, sv, "b", i, j, k), 1.e-15)
	}
	{ // RequiredTracers is the union without duplicates
		tup := NewTuple(IsotropicDiffusivity{PerTracer: map[string]float64{"T": 1}},
			IsotropicDiffusivity{PerTracer: map[string]float64{"T": 2}})
		assert.Equal(t, []string{"T"}, tup.RequiredTracers())
	}
}

func TestSmagorinskyLilly(t *testing.T) {
	g := testGrid(t)
	var (
		H       = grid.Halo
		i, j, k = H + 3, H + 3, H + 3
	)
	{ // Pure horizontal shear u = y: |S| = 1, nu_e = (C*D)^2
		sv := uniformView(g, 0, 0, 0, "b")
		fillBy(sv.U, func(ii, jj, kk int) float64 { return g.YC(jj) })
		raw, _ := SmagorinskyLilly{}.WithTracers([]string{"b"})
		c := raw.(SmagorinskyLilly)
		K := c.DiffusivityFields(g, []string{"b"})
		c.UpdateDiffusivities(K, g, sv, i, j, k)
		d := math.Cbrt(g.Dx * g.Dy * g.Dz)
		assert.InDelta(t, c.C*c.C*d*d, K.Nu.At(i, j, k), 1.e-12)
		assert.InDelta(t, K.Nu.At(i, j, k)/c.Pr, K.Kappa["b"].At(i, j, k), 1.e-12)
	}
	{ // Strong stable stratification extinguishes the eddy viscosity
		sv := uniformView(g, 0, 0, 0, "b")
		fillBy(sv.U, func(ii, jj, kk int) float64 { return 0.001 * g.YC(jj) })
		sv.BuoyancyAt = func(ii, jj, kk int) float64 { return -1000 * float64(kk) }
		raw, _ := SmagorinskyLilly{Nu: 1.e-6}.WithTracers([]string{"b"})
		c := raw.(SmagorinskyLilly)
		K := c.DiffusivityFields(g, []string{"b"})
		c.UpdateDiffusivities(K, g, sv, i, j, k)
		assert.Equal(t, 1.e-6, K.Nu.At(i, j, k))
	}
}

func TestBlasiusMixingLength(t *testing.T) {
	{ // Bounded in z: length grows linearly from the walls, capped at ML0
		g, _ := grid.New(4, 4, 10, 4, 4, 10, grid.Periodic, grid.Periodic, grid.Bounded)
		c, _ := BlasiusSmagorinsky{ML0: 1.5}.WithTracers(nil)
		b := c.(BlasiusSmagorinsky)
		// Surface-adjacent cell center sits at depth Dz/2.
		assert.InDelta(t, vonKarman*0.5, b.mixingLength(g, grid.Halo), 1.e-12)
		assert.InDelta(t, vonKarman*0.5, b.mixingLength(g, grid.Halo+g.Nz-1), 1.e-12)
		// Mid-depth is far enough from both walls to hit the cap.
		assert.InDelta(t, 1.5, b.mixingLength(g, grid.Halo+g.Nz/2), 1.e-12)
	}
	{ // Periodic in z: the cap applies everywhere
		g, _ := grid.New(4, 4, 10, 4, 4, 10, grid.Periodic, grid.Periodic, grid.Periodic)
		c, _ := BlasiusSmagorinsky{ML0: 1.5}.WithTracers(nil)
		b := c.(BlasiusSmagorinsky)
		assert.Equal(t, 1.5, b.mixingLength(g, grid.Halo))
	}
}

func TestAMD(t *testing.T) {
	g := testGrid(t)
	var (
		H       = grid.Halo
		i, j, k = H + 3, H + 3, H + 3
	)
	{ // Pure shear produces no AMD dissipation in either variant
		sv := uniformView(g, 0, 0, 0)
		fillBy(sv.U, func(ii, jj, kk int) float64 { return g.YC(jj) })
		va, _ := VerstappenAMD{}.WithTracers(nil)
		ra, _ := RozemaAMD{}.WithTracers(nil)
		for _, c := range []Closure{va, ra} {
			K := c.DiffusivityFields(g, nil)
			c.UpdateDiffusivities(K, g, sv, i, j, k)
			assert.Equal(t, 0., K.Nu.At(i, j, k), c.Name())
		}
	}
	{ // Eddy coefficients never drop below the background for random fields
		va, _ := VerstappenAMD{Nu: 1.e-5, Kappa: 2.e-6}.WithTracers([]string{"b"})
		ra, _ := RozemaAMD{Nu: 1.e-5, Kappa: 2.e-6}.WithTracers([]string{"b"})
		for seed := int64(0); seed < 5; seed++ {
			sv := randomView(g, seed, "b")
			for _, c := range []Closure{va, ra} {
				K := c.DiffusivityFields(g, []string{"b"})
				for kk := grid.Halo; kk < grid.Halo+g.Nz; kk++ {
					for jj := grid.Halo; jj < grid.Halo+g.Ny; jj++ {
						for ii := grid.Halo; ii < grid.Halo+g.Nx; ii++ {
							c.UpdateDiffusivities(K, g, sv, ii, jj, kk)
							assert.GreaterOrEqual(t, K.Nu.At(ii, jj, kk), 1.e-5, c.Name())
							assert.GreaterOrEqual(t, K.Kappa["b"].At(ii, jj, kk), 2.e-6, c.Name())
						}
					}
				}
			}
		}
	}
}

func TestVariableCoefficientReduction(t *testing.T) {
	// With a spatially constant coefficient field, the flux-form
	// divergences must reduce to coefficient times the Laplacian, which
	// the constant-coefficient closure computes directly.
	g := testGrid(t)
	sv := randomView(g, 7, "b")
	var (
		H     = grid.Halo
		nu    = 0.37
		kap   = 0.11
		K     = NewDiffusivityFields(g, []string{"b"})
		iso   = IsotropicDiffusivity{Nu: nu, Kappa: kap}
		base  = eddyViscosityBase{}
		probe = [][3]int{{H + 1, H + 2, H + 3}, {H + 4, H + 1, H + 2}}
	)
	fillBy(K.Nu, func(i, j, k int) float64 { return nu })
	fillBy(K.Kappa["b"], func(i, j, k int) float64 { return kap })
	for _, p := range probe {
		i, j, k := p[0], p[1], p[2]
		assert.InDelta(t, iso.ViscousFluxDivU(g, nil, sv, i, j, k), base.ViscousFluxDivU(g, K, sv, i, j, k), 1.e-13)
		assert.InDelta(t, iso.ViscousFluxDivV(g, nil, sv, i, j, k), base.ViscousFluxDivV(g, K, sv, i, j, k), 1.e-13)
		assert.InDelta(t, iso.ViscousFluxDivW(g, nil, sv, i, j, k), base.ViscousFluxDivW(g, K, sv, i, j, k), 1.e-13)
		assert.InDelta(t, iso.DiffusiveFluxDiv(g, nil, sv, "b", i, j, k), base.DiffusiveFluxDiv(g, K, sv, "b", i, j, k), 1.e-13)
	}
}
