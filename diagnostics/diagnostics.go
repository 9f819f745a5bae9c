/*
Package diagnostics provides the field reductions used for progress
reporting: horizontal-mean profiles, extrema and infinity norms over the
interior (halo cells never contribute).
*/
package diagnostics

import (
	"math"

	"github.com/ctessum/sparse"
	"gonum.org/v1/gonum/floats"

	"github.com/oceanmodels/goocean/grid"
)

// HorizontalMeans returns the level-by-level horizontal mean of a
// field's interior, indexed by level with 0 the surface-adjacent level.
func HorizontalMeans(f *grid.Field) *sparse.DenseArray {
	g := f.G
	prof := sparse.ZerosDense(g.Nz)
	n := float64(g.Nx * g.Ny)
	for k := 0; k < g.Nz; k++ {
		var sum float64
		for j := grid.Halo; j < grid.Halo+g.Ny; j++ {
			for i := grid.Halo; i < grid.Halo+g.Nx; i++ {
				sum += f.Data[g.Idx(i, j, grid.Halo+k)]
			}
		}
		prof.Set(sum/n, k)
	}
	return prof
}

// Extrema returns the interior minimum and maximum of a field.
func Extrema(f *grid.Field) (min, max float64) {
	vals := interior(f)
	return floats.Min(vals), floats.Max(vals)
}

// MaxAbs returns the interior infinity norm of a field.
func MaxAbs(f *grid.Field) float64 {
	return floats.Norm(interior(f), math.Inf(1))
}

func interior(f *grid.Field) []float64 {
	g := f.G
	vals := make([]float64, 0, g.Nx*g.Ny*g.Nz)
	for k := grid.Halo; k < grid.Halo+g.Nz; k++ {
		for j := grid.Halo; j < grid.Halo+g.Ny; j++ {
			for i := grid.Halo; i < grid.Halo+g.Nx; i++ {
				vals = append(vals, f.Data[g.Idx(i, j, k)])
			}
		}
	}
	return vals
}
