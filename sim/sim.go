/*
Package sim advances the simulation state in time. The stepper is
second-order Adams-Bashforth over the tendency engine's live and shadow
containers:

	u_{n+1} = u_n + dt * (1.5*G_n - 0.5*G_{n-1})

with a forward-Euler first step while G⁻ is still empty.
*/
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/floats"

	"github.com/oceanmodels/goocean/diagnostics"
	"github.com/oceanmodels/goocean/tendencies"
)

type Simulation struct {
	Engine *tendencies.Engine
	Dt     float64
	Time   float64
	Step   int

	// LogEvery logs a diagnostic line every n steps; 0 disables logging.
	LogEvery int
	Log      *logrus.Logger
}

func New(e *tendencies.Engine, dt float64) (*Simulation, error) {
	if e == nil {
		return nil, fmt.Errorf("simulation requires an engine")
	}
	if dt <= 0 {
		return nil, fmt.Errorf("timestep must be positive, got %g", dt)
	}
	return &Simulation{
		Engine:   e,
		Dt:       dt,
		LogEvery: 1,
		Log:      logrus.StandardLogger(),
	}, nil
}

// RunStep computes tendencies at the current time and advances every
// prognostic field by one timestep.
func (s *Simulation) RunStep() {
	e := s.Engine
	e.ComputeTendencies(s.Time)
	G, Gprev := e.Tendencies()

	a, b := 1.5*s.Dt, -0.5*s.Dt
	if s.Step == 0 {
		a, b = s.Dt, 0
	}
	st := e.State()
	for _, name := range st.FieldNames() {
		f := st.Field(name)
		floats.AddScaled(f.Data, a, G.Field(name).Data)
		if b != 0 {
			floats.AddScaled(f.Data, b, Gprev.Field(name).Data)
		}
	}
	s.Time += s.Dt
	s.Step++
}

// Run steps until the clock reaches finalTime.
func (s *Simulation) Run(finalTime float64) {
	for s.Time < finalTime-1e-12*s.Dt {
		s.RunStep()
		if s.LogEvery > 0 && s.Step%s.LogEvery == 0 {
			s.logDiagnostics()
		}
	}
}

// CFL is the advective Courant number diagnostic for the current state.
func (s *Simulation) CFL() float64 {
	var (
		st = s.Engine.State()
		g  = st.Grid
	)
	return s.Dt * (diagnostics.MaxAbs(st.U)/g.Dx +
		diagnostics.MaxAbs(st.V)/g.Dy +
		diagnostics.MaxAbs(st.W)/g.Dz)
}

func (s *Simulation) logDiagnostics() {
	st := s.Engine.State()
	fields := logrus.Fields{
		"step": s.Step,
		"time": s.Time,
		"cfl":  s.CFL(),
		"maxW": diagnostics.MaxAbs(st.W),
	}
	for _, name := range st.TracerNames {
		lo, hi := diagnostics.Extrema(st.Tracers[name])
		fields["min_"+name] = lo
		fields["max_"+name] = hi
	}
	s.Log.WithFields(fields).Info("step complete")
}
