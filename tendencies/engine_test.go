package tendencies

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oceanmodels/goocean/boundaries"
	"github.com/oceanmodels/goocean/closures"
	"github.com/oceanmodels/goocean/grid"
	"github.com/oceanmodels/goocean/physics"
)

const H = grid.Halo

func channelGrid(t *testing.T) *grid.Grid {
	g, err := grid.New(4, 4, 4, 4, 4, 4, grid.Periodic, grid.Periodic, grid.Bounded)
	assert.NoError(t, err)
	return g
}

func TestNewEngineValidation(t *testing.T) {
	g := channelGrid(t)
	{ // Missing pieces
		_, err := NewEngine(Config{})
		assert.Error(t, err)
	}
	{ // Buoyancy model needs its tracers present
		st := NewState(g, []string{"T"})
		_, err := NewEngine(Config{Grid: g, State: st, Buoyancy: physics.BuoyancyTracer{}})
		assert.Error(t, err)
	}
	{ // Boundary conditions for a nonexistent field
		st := NewState(g, []string{"b"})
		_, err := NewEngine(Config{Grid: g, State: st,
			BCs: boundaries.Table{"salt": boundaries.NoFluxBCs()}})
		assert.Error(t, err)
	}
	{ // Forcing for a nonexistent field
		st := NewState(g, []string{"b"})
		_, err := NewEngine(Config{Grid: g, State: st,
			Forcing: Forcing{"q": func(x, y, z, t float64, s *State) float64 { return 1 }}})
		assert.Error(t, err)
	}
	{ // Parallel degree is capped at the column count
		st := NewState(g, []string{"b"})
		e, err := NewEngine(Config{Grid: g, State: st, ParallelDegree: 1000})
		assert.NoError(t, err)
		assert.Equal(t, g.NumColumns(), e.NP)
	}
}

func TestHydrostaticPressure(t *testing.T) {
	{ // Constant buoyancy: pHY' is linear in depth with slope B*Dz
		g := channelGrid(t)
		st := NewState(g, []string{"b"})
		B := 0.7
		for k := H; k < H+g.Nz; k++ {
			for j := H; j < H+g.Ny; j++ {
				for i := H; i < H+g.Nx; i++ {
					st.Tracers["b"].Set(i, j, k, B)
				}
			}
		}
		e, err := NewEngine(Config{Grid: g, State: st, Buoyancy: physics.BuoyancyTracer{}})
		assert.NoError(t, err)
		e.updateHydrostaticPressure()
		for m := 0; m < g.Nz; m++ {
			want := (float64(m) + 0.5) * g.Dz * B
			assert.InDelta(t, want, st.PHydro.At(H+1, H+2, H+m), 1.e-14)
		}
	}
	{ // No buoyancy model: the column is zeroed
		g := channelGrid(t)
		st := NewState(g, nil)
		st.PHydro.Set(H, H, H, 123)
		e, err := NewEngine(Config{Grid: g, State: st})
		assert.NoError(t, err)
		e.updateHydrostaticPressure()
		assert.Equal(t, 0., st.PHydro.At(H, H, H))
	}
}

func TestStorePreviousTendencies(t *testing.T) {
	g := channelGrid(t)
	st := NewState(g, []string{"b"})
	e, err := NewEngine(Config{Grid: g, State: st})
	assert.NoError(t, err)

	e.G.U.Set(H+1, H+1, H+1, 3.5)
	e.G.Tracers["b"].Set(H+2, H, H+3, -1.25)
	e.storePreviousTendencies()
	assert.Equal(t, 3.5, e.Gprev.U.At(H+1, H+1, H+1))
	assert.Equal(t, -1.25, e.Gprev.Tracers["b"].At(H+2, H, H+3))

	// The shadow is a copy: overwriting the live buffer leaves it alone.
	e.G.U.Set(H+1, H+1, H+1, 99)
	assert.Equal(t, 3.5, e.Gprev.U.At(H+1, H+1, H+1))
	assert.Equal(t, 99., e.G.U.At(H+1, H+1, H+1))
}

func TestCoriolisOnlyTendencies(t *testing.T) {
	// Uniform horizontal flow on a triply periodic grid: advection and
	// diffusion vanish, leaving the pure rotation (+f*v, -f*u).
	g, err := grid.New(4, 4, 4, 4, 4, 4, grid.Periodic, grid.Periodic, grid.Periodic)
	assert.NoError(t, err)
	st := NewState(g, nil)
	for n := range st.U.Data {
		st.U.Data[n], st.V.Data[n] = 2, 3
	}
	e, err := NewEngine(Config{Grid: g, State: st, Coriolis: &physics.FPlane{F: 1.e-4}})
	assert.NoError(t, err)
	e.ComputeTendencies(0)
	for k := H; k < H+g.Nz; k++ {
		for j := H; j < H+g.Ny; j++ {
			for i := H; i < H+g.Nx; i++ {
				assert.InDelta(t, 3.e-4, e.G.U.At(i, j, k), 1.e-18)
				assert.InDelta(t, -2.e-4, e.G.V.At(i, j, k), 1.e-18)
				assert.InDelta(t, 0., e.G.W.At(i, j, k), 1.e-18)
			}
		}
	}
}

func TestSingleCellBuoyancyEndToEnd(t *testing.T) {
	// Resting fluid with buoyancy in one cell and a tracer source there:
	// only the w faces straddling that cell and the forced tracer cell
	// pick up tendencies; u and v stay exactly zero.
	g := channelGrid(t)
	st := NewState(g, []string{"b"})
	var (
		i0, j0, k0 = H + 1, H + 2, H + 1
		B          = 0.3
		F          = 2.5
	)
	st.Tracers["b"].Set(i0, j0, k0, B)
	forcing := Forcing{
		"b": func(x, y, z, tm float64, s *State) float64 {
			if x == g.XC(i0) && y == g.YC(j0) && z == g.ZC(k0) {
				return F
			}
			return 0
		},
	}
	e, err := NewEngine(Config{
		Grid:     g,
		State:    st,
		Closure:  closures.NewTuple(closures.NoClosure{}),
		Buoyancy: physics.BuoyancyTracer{},
		Forcing:  forcing,
	})
	assert.NoError(t, err)
	e.ComputeTendencies(0)

	for k := H; k < H+g.Nz; k++ {
		for j := H; j < H+g.Ny; j++ {
			for i := H; i < H+g.Nx; i++ {
				assert.Equal(t, 0., e.G.U.At(i, j, k))
				assert.Equal(t, 0., e.G.V.At(i, j, k))

				wantW := 0.
				if i == i0 && j == j0 && (k == k0 || k == k0+1) {
					// -dz(pHY') across the half-cell ramps is B/2.
					wantW = B / 2
				}
				assert.InDelta(t, wantW, e.G.W.At(i, j, k), 1.e-14)

				wantB := 0.
				if i == i0 && j == j0 && k == k0 {
					wantB = F
				}
				assert.InDelta(t, wantB, e.G.Tracers["b"].At(i, j, k), 1.e-14)
			}
		}
	}
}

func TestBoundaryFluxCorrections(t *testing.T) {
	{ // No-flux table entries change nothing
		g := channelGrid(t)
		run := func(bcs boundaries.Table) *Tendencies {
			st := NewState(g, []string{"b"})
			st.Tracers["b"].Set(H+1, H+1, H+1, 1)
			st.U.Set(H+2, H+1, H+1, 0.5)
			e, err := NewEngine(Config{Grid: g, State: st,
				Closure: closures.NewTuple(closures.IsotropicDiffusivity{Nu: 0.1, Kappa: 0.2}),
				BCs:     bcs})
			assert.NoError(t, err)
			e.ComputeTendencies(0)
			return e.G
		}
		bare := run(nil)
		explicit := run(boundaries.Table{
			"u": boundaries.NoFluxBCs(),
			"b": boundaries.NoFluxBCs(),
		})
		assert.Equal(t, bare.U.Data, explicit.U.Data)
		assert.Equal(t, bare.W.Data, explicit.W.Data)
		assert.Equal(t, bare.Tracers["b"].Data, explicit.Tracers["b"].Data)
	}
	{ // Prescribed surface flux enters the top cell as q/Dz
		g := channelGrid(t)
		st := NewState(g, []string{"b"})
		q := -2.e-5
		e, err := NewEngine(Config{Grid: g, State: st,
			BCs: boundaries.Table{"b": {Z: [2]boundaries.Condition{
				boundaries.Upper: {Kind: boundaries.Flux, Value: q},
			}}}})
		assert.NoError(t, err)
		e.ComputeTendencies(0)
		assert.InDelta(t, q/g.Dz, e.G.Tracers["b"].At(H+1, H+1, H), 1.e-18)
		assert.Equal(t, 0., e.G.Tracers["b"].At(H+1, H+1, H+1))
		assert.Equal(t, 0., e.G.Tracers["b"].At(H+1, H+1, H+g.Nz-1))
	}
	{ // Flux functions see boundary-plane coordinates and the field value
		g := channelGrid(t)
		st := NewState(g, []string{"b"})
		c0 := 0.25
		for j := H; j < H+g.Ny; j++ {
			for i := H; i < H+g.Nx; i++ {
				st.Tracers["b"].Set(i, j, H, c0)
			}
		}
		e, err := NewEngine(Config{Grid: g, State: st,
			BCs: boundaries.Table{"b": {Z: [2]boundaries.Condition{
				boundaries.Upper: {Kind: boundaries.Flux,
					Func: func(x, y, tm, c float64) float64 { return x + 10*c }},
			}}}})
		assert.NoError(t, err)
		e.ComputeTendencies(0)
		want := (g.XC(H+2) + 10*c0) / g.Dz
		assert.InDelta(t, want, e.G.Tracers["b"].At(H+2, H+1, H), 1.e-14)
	}
	{ // Gradient and Value conditions convert through the diffusivity
		g := channelGrid(t)
		st := NewState(g, []string{"b"})
		c0, kap := 0.5, 0.2
		for n := range st.Tracers["b"].Data {
			st.Tracers["b"].Data[n] = c0
		}
		gamma, v := 1.e-3, 2.0
		e, err := NewEngine(Config{Grid: g, State: st,
			Closure: closures.NewTuple(closures.IsotropicDiffusivity{Kappa: kap}),
			BCs: boundaries.Table{"b": {Z: [2]boundaries.Condition{
				boundaries.Lower: {Kind: boundaries.Gradient, Value: gamma},
				boundaries.Upper: {Kind: boundaries.Value, Value: v},
			}}}})
		assert.NoError(t, err)
		e.ComputeTendencies(0)
		// Bottom: inward diffusive flux kappa*gamma over the cell height.
		assert.InDelta(t, kap*gamma/g.Dz, e.G.Tracers["b"].At(H+1, H+1, H+g.Nz-1), 1.e-15)
		// Top: restoring flux through the half cell.
		assert.InDelta(t, 2*kap*(v-c0)/(g.Dz*g.Dz), e.G.Tracers["b"].At(H+1, H+1, H), 1.e-15)
	}
	{ // Surface momentum flux lands on the u tendency's top row
		g := channelGrid(t)
		st := NewState(g, nil)
		tau := -1.e-5
		e, err := NewEngine(Config{Grid: g, State: st,
			BCs: boundaries.Table{"u": {Z: [2]boundaries.Condition{
				boundaries.Upper: {Kind: boundaries.Flux, Value: tau},
			}}}})
		assert.NoError(t, err)
		e.ComputeTendencies(0)
		assert.InDelta(t, tau/g.Dz, e.G.U.At(H+1, H+1, H), 1.e-18)
		assert.Equal(t, 0., e.G.U.At(H+1, H+1, H+1))
	}
}
