package closures

import "github.com/oceanmodels/goocean/grid"

// eddyViscosityBase is shared by closures that store computed eddy
// coefficients in DiffusivityFields: the stress and flux divergences are
// always the variable-coefficient flux forms over K, regardless of how
// the particular model fills K.
type eddyViscosityBase struct{}

func (eddyViscosityBase) DiffusivityFields(g *grid.Grid, tracers []string) *DiffusivityFields {
	return NewDiffusivityFields(g, tracers)
}

func (eddyViscosityBase) ViscousFluxDivU(g *grid.Grid, K *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return varNuFluxDivU(g, K.Nu.Data, sv.U.Data, i, j, k)
}

func (eddyViscosityBase) ViscousFluxDivV(g *grid.Grid, K *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return varNuFluxDivV(g, K.Nu.Data, sv.V.Data, i, j, k)
}

func (eddyViscosityBase) ViscousFluxDivW(g *grid.Grid, K *DiffusivityFields, sv StateView, i, j, k int) float64 {
	return varNuFluxDivW(g, K.Nu.Data, sv.W.Data, i, j, k)
}

func (eddyViscosityBase) DiffusiveFluxDiv(g *grid.Grid, K *DiffusivityFields, sv StateView, name string, i, j, k int) float64 {
	return varKappaFluxDiv(g, K.Kappa[name].Data, sv.Tracers[name].Data, i, j, k)
}

func (eddyViscosityBase) NuAt(K *DiffusivityFields, g *grid.Grid, _ Axis, i, j, k int) float64 {
	return K.Nu.Data[g.Idx(i, j, k)]
}

func (eddyViscosityBase) KappaAt(K *DiffusivityFields, g *grid.Grid, name string, _ Axis, i, j, k int) float64 {
	return K.Kappa[name].Data[g.Idx(i, j, k)]
}
