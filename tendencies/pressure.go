package tendencies

import (
	"sync"

	"github.com/oceanmodels/goocean/grid"
)

/*
updateHydrostaticPressure integrates the buoyancy perturbation downward
from the surface into pHY':

	pHY'(surface cell) = Dz/2 * B(surface cell)
	pHY'(k)            = pHY'(k-1) + Dz/2 * (B(k-1) + B(k))

so that -dz(pHY') recovers the interpolated buoyancy at interior w
faces. The recurrence is sequential within each column but independent
across columns, so the sweep parallelizes over columns. The phase must
complete before any w-tendency kernel runs; the engine's phase order
guarantees it.

For a constant perturbation B the result is exactly linear in depth
with slope B*Dz per level.
*/
func (e *Engine) updateHydrostaticPressure() {
	var (
		g  = e.grid
		ph = e.state.PHydro
		wg = sync.WaitGroup{}
	)
	if e.buoyancy == nil {
		ph.Zero()
		return
	}
	for np := 0; np < e.NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			cMin, cMax := e.partitions.GetBucketRange(np)
			for c := cMin; c < cMax; c++ {
				i, j := g.Column(c)
				bAbove := e.buoyancy.Perturbation(g, e.state.Tracers, i, j, grid.Halo)
				ph.Set(i, j, grid.Halo, 0.5*g.Dz*bAbove)
				for k := grid.Halo + 1; k < grid.Halo+g.Nz; k++ {
					b := e.buoyancy.Perturbation(g, e.state.Tracers, i, j, k)
					ph.Set(i, j, k, ph.At(i, j, k-1)+0.5*g.Dz*(bAbove+b))
					bAbove = b
				}
			}
		}(np)
	}
	wg.Wait()
	ph.FillHalos()
}
