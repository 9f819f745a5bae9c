package tendencies

import (
	"sync"

	"github.com/oceanmodels/goocean/boundaries"
	"github.com/oceanmodels/goocean/closures"
	"github.com/oceanmodels/goocean/grid"
)

/*
applyBoundaryFluxes adds the boundary-condition corrections to the
tendencies at boundary-adjacent cells. A prescribed flux q, positive
into the domain, changes the budget of its cell by q/delta. Gradient
and Value conditions are first converted into equivalent diffusive
fluxes using the closure's effective coefficient at the adjacent cell:

	Gradient g (outward-normal): q = coef * g
	Value v:                     q = 2 * coef * (v - c_adjacent) / delta

Only bounded axes carry boundary conditions; periodic axes are skipped
regardless of the table contents. Fields work in parallel; within a
field the six faces touch disjoint cell sets except at edges, where
the corrections are additive, so a single goroutine per field suffices.
*/
func (e *Engine) applyBoundaryFluxes(t float64) {
	wg := sync.WaitGroup{}
	for _, name := range e.state.FieldNames() {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			e.applyFieldBoundaryFluxes(name, t)
		}(name)
	}
	wg.Wait()
}

func (e *Engine) applyFieldBoundaryFluxes(name string, t float64) {
	var (
		g    = e.grid
		f    = e.state.Field(name)
		Gt   = e.G.Field(name)
		bcs  = e.bcs.For(name)
		wall = func(loc grid.Loc) int {
			// Wall-adjacent offset from the lower wall: face-located
			// fields sit one index in because the wall face is pinned.
			if loc == grid.Face {
				return 1
			}
			return 0
		}
	)

	jLo, jHi := ownedRange(g.Ny, f.Loc.Y, g.TopoY)
	kLo, kHi := ownedRange(g.Nz, f.Loc.Z, g.TopoZ)
	if g.TopoX == grid.Bounded {
		for face := boundaries.Lower; face <= boundaries.Upper; face++ {
			cond := bcs.X[face]
			if cond.Kind == boundaries.NoFlux {
				continue
			}
			i := grid.Halo + wall(f.Loc.X)
			if face == boundaries.Upper {
				i = grid.Halo + g.Nx - 1
			}
			for j := jLo; j < jHi; j++ {
				for k := kLo; k < kHi; k++ {
					e.addBoundaryFlux(Gt, f, name, closures.AxisX, cond, g.Dx,
						yPos(g, f.Loc.Y, j), zPos(g, f.Loc.Z, k), t, i, j, k)
				}
			}
		}
	}

	iLo, iHi := ownedRange(g.Nx, f.Loc.X, g.TopoX)
	if g.TopoY == grid.Bounded {
		for face := boundaries.Lower; face <= boundaries.Upper; face++ {
			cond := bcs.Y[face]
			if cond.Kind == boundaries.NoFlux {
				continue
			}
			j := grid.Halo + wall(f.Loc.Y)
			if face == boundaries.Upper {
				j = grid.Halo + g.Ny - 1
			}
			for i := iLo; i < iHi; i++ {
				for k := kLo; k < kHi; k++ {
					e.addBoundaryFlux(Gt, f, name, closures.AxisY, cond, g.Dy,
						xPos(g, f.Loc.X, i), zPos(g, f.Loc.Z, k), t, i, j, k)
				}
			}
		}
	}

	// Along z the Upper face is the surface, which sits at the LOW end
	// of the index range (k increases downward).
	if g.TopoZ == grid.Bounded {
		for face := boundaries.Lower; face <= boundaries.Upper; face++ {
			cond := bcs.Z[face]
			if cond.Kind == boundaries.NoFlux {
				continue
			}
			k := grid.Halo + g.Nz - 1
			if face == boundaries.Upper {
				k = grid.Halo + wall(f.Loc.Z)
			}
			for i := iLo; i < iHi; i++ {
				for j := jLo; j < jHi; j++ {
					e.addBoundaryFlux(Gt, f, name, closures.AxisZ, cond, g.Dz,
						xPos(g, f.Loc.X, i), yPos(g, f.Loc.Y, j), t, i, j, k)
				}
			}
		}
	}
}

// addBoundaryFlux converts one condition into an inward flux q and adds
// q/delta to the tendency at the boundary-adjacent point (i,j,k). The
// (a,b) pair holds the field's own coordinates along the two tangential
// axes, in axis order.
func (e *Engine) addBoundaryFlux(Gt, f *grid.Field, name string, ax closures.Axis,
	cond boundaries.Condition, delta, a, b, t float64, i, j, k int) {
	cur := f.At(i, j, k)
	var q float64
	switch cond.Kind {
	case boundaries.Flux:
		q = cond.Value
		if cond.Func != nil {
			q = cond.Func(a, b, t, cur)
		}
	case boundaries.Gradient:
		q = e.boundaryCoef(name, ax, i, j, k) * cond.Value
	case boundaries.Value:
		q = 2 * e.boundaryCoef(name, ax, i, j, k) * (cond.Value - cur) / delta
	default:
		return
	}
	Gt.Add(i, j, k, q/delta)
}

// boundaryCoef is the effective diffusion coefficient used to convert
// Gradient and Value conditions: eddy viscosity for velocities, the
// tracer's eddy diffusivity otherwise.
func (e *Engine) boundaryCoef(name string, ax closures.Axis, i, j, k int) float64 {
	switch name {
	case "u", "v", "w":
		return e.closure.NuAt(e.Ks, e.grid, ax, i, j, k)
	}
	return e.closure.KappaAt(e.Ks, e.grid, name, ax, i, j, k)
}

// ownedRange is the half-open interior index range a field owns along
// one axis: face-located fields on a bounded axis exclude the pinned
// wall face at the lower end.
func ownedRange(n int, loc grid.Loc, topo grid.Topology) (lo, hi int) {
	lo, hi = grid.Halo, grid.Halo+n
	if loc == grid.Face && topo == grid.Bounded {
		lo++
	}
	return
}

func xPos(g *grid.Grid, loc grid.Loc, i int) float64 {
	if loc == grid.Face {
		return g.XF(i)
	}
	return g.XC(i)
}

func yPos(g *grid.Grid, loc grid.Loc, j int) float64 {
	if loc == grid.Face {
		return g.YF(j)
	}
	return g.YC(j)
}

func zPos(g *grid.Grid, loc grid.Loc, k int) float64 {
	if loc == grid.Face {
		return g.ZF(k)
	}
	return g.ZC(k)
}
