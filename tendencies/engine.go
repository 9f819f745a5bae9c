package tendencies

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/oceanmodels/goocean/boundaries"
	"github.com/oceanmodels/goocean/closures"
	"github.com/oceanmodels/goocean/grid"
	"github.com/oceanmodels/goocean/physics"
	"github.com/oceanmodels/goocean/utils"
)

// Config assembles everything the tendency engine needs. Grid and State
// are required; all physics are optional.
type Config struct {
	Grid           *grid.Grid
	State          *State
	Closure        closures.Tuple
	Coriolis       *physics.FPlane
	Buoyancy       physics.Buoyancy
	StokesDrift    *physics.UniformStokesDrift
	Forcing        Forcing
	BCs            boundaries.Table
	ParallelDegree int // goroutines per phase; 0 means GOMAXPROCS
}

/*
Engine computes per-timestep tendencies in a fixed phase order:

 1. snapshot current tendencies into the shadow container
 2. fill state halos
 3. recompute closure diffusivities
 4. integrate the hydrostatic pressure columns
 5. compute interior tendencies per field
 6. apply boundary-flux corrections

Each phase is a parallel-for over PartitionMap shards of the interior
columns joined by a WaitGroup barrier; no two phases interleave writes
and no two shards write the same cell, so no locking is needed. The
grid, closure parameters and boundary table are shared read-only.
*/
type Engine struct {
	grid    *grid.Grid
	state   *State
	closure closures.Tuple
	Ks      []*closures.DiffusivityFields

	coriolis *physics.FPlane
	buoyancy physics.Buoyancy
	stokes   *physics.UniformStokesDrift
	forcing  Forcing
	bcs      boundaries.Table

	G, Gprev *Tendencies

	partitions *utils.PartitionMap
	NP         int
}

func NewEngine(cfg Config) (*Engine, error) {
	if cfg.Grid == nil || cfg.State == nil {
		return nil, fmt.Errorf("engine requires a grid and a state")
	}
	st := cfg.State

	// Rebuild the closure tuple against the actual tracer set, then
	// verify nothing it still requires is missing.
	closure, err := cfg.Closure.WithTracers(st.TracerNames)
	if err != nil {
		return nil, err
	}
	have := make(map[string]bool, len(st.TracerNames))
	for _, n := range st.TracerNames {
		have[n] = true
	}
	for _, n := range closure.RequiredTracers() {
		if !have[n] {
			return nil, fmt.Errorf("closure requires tracer %q which is not in the tracer set %v", n, st.TracerNames)
		}
	}

	if err := physics.ValidateBuoyancy(cfg.Buoyancy, st.TracerNames); err != nil {
		return nil, err
	}
	if err := cfg.BCs.Validate(st.FieldNames()); err != nil {
		return nil, err
	}
	if err := cfg.Forcing.Validate(st.FieldNames()); err != nil {
		return nil, err
	}

	np := cfg.ParallelDegree
	if np <= 0 {
		np = runtime.GOMAXPROCS(0)
	}
	if np > cfg.Grid.NumColumns() {
		np = cfg.Grid.NumColumns()
	}

	e := &Engine{
		grid:       cfg.Grid,
		state:      st,
		closure:    closure,
		Ks:         closure.DiffusivityFields(cfg.Grid, st.TracerNames),
		coriolis:   cfg.Coriolis,
		buoyancy:   cfg.Buoyancy,
		stokes:     cfg.StokesDrift,
		forcing:    cfg.Forcing,
		bcs:        cfg.BCs,
		G:          NewTendencies(cfg.Grid, st.TracerNames),
		Gprev:      NewTendencies(cfg.Grid, st.TracerNames),
		partitions: utils.NewPartitionMap(np, cfg.Grid.NumColumns()),
		NP:         np,
	}
	return e, nil
}

// State returns the engine's state container.
func (e *Engine) State() *State { return e.state }

// Tendencies exposes the live and previous containers to the external
// time integrator, which is their sole consumer.
func (e *Engine) Tendencies() (G, Gprev *Tendencies) { return e.G, e.Gprev }

// ComputeTendencies runs one full tendency evaluation at simulation
// time t. On return G holds the new tendencies and Gprev the previous
// step's values.
func (e *Engine) ComputeTendencies(t float64) {
	e.storePreviousTendencies()
	e.fillStateHalos()
	e.calculateDiffusivities()
	e.updateHydrostaticPressure()
	e.computeInteriorTendencies(t)
	e.applyBoundaryFluxes(t)
}

// storePreviousTendencies snapshots G into G⁻ field by field. The
// barrier at the end guarantees every shadow copy completes before any
// new tendency value is written.
func (e *Engine) storePreviousTendencies() {
	var (
		wg   = sync.WaitGroup{}
		live = e.G.Fields()
		prev = e.Gprev.Fields()
	)
	for n := range live {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			prev[n].CopyFrom(live[n])
		}(n)
	}
	wg.Wait()
}

func (e *Engine) fillStateHalos() {
	var (
		wg     = sync.WaitGroup{}
		fields = []*grid.Field{e.state.U, e.state.V, e.state.W}
	)
	for _, name := range e.state.TracerNames {
		fields = append(fields, e.state.Tracers[name])
	}
	for _, f := range fields {
		wg.Add(1)
		go func(f *grid.Field) {
			defer wg.Done()
			f.FillHalos()
		}(f)
	}
	wg.Wait()
}

// calculateDiffusivities sweeps every closure's per-cell diffusivity
// update over the interior, then refreshes the halo cells of the
// computed coefficient fields so flux stencils can straddle boundaries.
func (e *Engine) calculateDiffusivities() {
	anyK := false
	for _, K := range e.Ks {
		if K != nil {
			anyK = true
			break
		}
	}
	if !anyK {
		return
	}
	var (
		g  = e.grid
		sv = e.state.View(e.buoyancy)
		wg = sync.WaitGroup{}
	)
	for np := 0; np < e.NP; np++ {
		wg.Add(1)
		go func(np int) {
			defer wg.Done()
			cMin, cMax := e.partitions.GetBucketRange(np)
			for c := cMin; c < cMax; c++ {
				i, j := g.Column(c)
				for k := grid.Halo; k < grid.Halo+g.Nz; k++ {
					e.closure.UpdateDiffusivities(e.Ks, g, sv, i, j, k)
				}
			}
		}(np)
	}
	wg.Wait()

	wg = sync.WaitGroup{}
	for _, K := range e.Ks {
		if K == nil {
			continue
		}
		fields := []*grid.Field{K.Nu}
		for _, name := range e.state.TracerNames {
			fields = append(fields, K.Kappa[name])
		}
		for _, f := range fields {
			wg.Add(1)
			go func(f *grid.Field) {
				defer wg.Done()
				f.FillHalos()
			}(f)
		}
	}
	wg.Wait()
}

// computeInteriorTendencies evaluates one kernel invocation per (field,
// cell). Invocations for distinct fields are independent and all observe
// the same state snapshot; nothing here reads a tendency being written.
func (e *Engine) computeInteriorTendencies(t float64) {
	var (
		g  = e.grid
		sv = e.state.View(e.buoyancy)
		wg = sync.WaitGroup{}
	)

	// Wall-normal velocity faces on bounded axes are pinned to zero, so
	// their tendencies start one face in.
	iu := grid.Halo
	if g.TopoX == grid.Bounded {
		iu++
	}
	jv := grid.Halo
	if g.TopoY == grid.Bounded {
		jv++
	}
	kw := grid.Halo
	if g.TopoZ == grid.Bounded {
		kw++
	}

	for np := 0; np < e.NP; np++ {
		cMin, cMax := e.partitions.GetBucketRange(np)

		wg.Add(1)
		go func(cMin, cMax int) {
			defer wg.Done()
			for c := cMin; c < cMax; c++ {
				i, j := g.Column(c)
				if i < iu {
					continue
				}
				for k := grid.Halo; k < grid.Halo+g.Nz; k++ {
					e.G.U.Set(i, j, k, e.uTendency(sv, i, j, k, t))
				}
			}
		}(cMin, cMax)

		wg.Add(1)
		go func(cMin, cMax int) {
			defer wg.Done()
			for c := cMin; c < cMax; c++ {
				i, j := g.Column(c)
				if j < jv {
					continue
				}
				for k := grid.Halo; k < grid.Halo+g.Nz; k++ {
					e.G.V.Set(i, j, k, e.vTendency(sv, i, j, k, t))
				}
			}
		}(cMin, cMax)

		wg.Add(1)
		go func(cMin, cMax int) {
			defer wg.Done()
			for c := cMin; c < cMax; c++ {
				i, j := g.Column(c)
				for k := kw; k < grid.Halo+g.Nz; k++ {
					e.G.W.Set(i, j, k, e.wTendency(sv, i, j, k, t))
				}
			}
		}(cMin, cMax)

		for _, name := range e.state.TracerNames {
			wg.Add(1)
			go func(name string, cMin, cMax int) {
				defer wg.Done()
				Gc := e.G.Tracers[name]
				for c := cMin; c < cMax; c++ {
					i, j := g.Column(c)
					for k := grid.Halo; k < grid.Halo+g.Nz; k++ {
						Gc.Set(i, j, k, e.tracerTendency(sv, name, i, j, k, t))
					}
				}
			}(name, cMin, cMax)
		}
	}
	wg.Wait()
}
