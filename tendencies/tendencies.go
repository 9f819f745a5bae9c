package tendencies

import "github.com/oceanmodels/goocean/grid"

// Tendencies holds one tendency array per prognostic field. The engine
// owns two instances: the live container G overwritten each step, and
// the shadow G⁻ holding the previous step's values for the multi-step
// time integrator. The two are distinct allocations and never alias.
type Tendencies struct {
	Grid        *grid.Grid
	U, V, W     *grid.Field
	TracerNames []string
	Tracers     map[string]*grid.Field
}

func NewTendencies(g *grid.Grid, tracerNames []string) *Tendencies {
	t := &Tendencies{
		Grid:        g,
		U:           grid.NewField("Gu", grid.LocU, g),
		V:           grid.NewField("Gv", grid.LocV, g),
		W:           grid.NewField("Gw", grid.LocW, g),
		TracerNames: append([]string(nil), tracerNames...),
		Tracers:     make(map[string]*grid.Field, len(tracerNames)),
	}
	for _, name := range tracerNames {
		t.Tracers[name] = grid.NewField("G"+name, grid.LocCenter, g)
	}
	return t
}

// Field returns the tendency array for a prognostic field name.
func (t *Tendencies) Field(name string) *grid.Field {
	switch name {
	case "u":
		return t.U
	case "v":
		return t.V
	case "w":
		return t.W
	}
	return t.Tracers[name]
}

// Fields returns all tendency arrays in prognostic order.
func (t *Tendencies) Fields() []*grid.Field {
	fs := []*grid.Field{t.U, t.V, t.W}
	for _, name := range t.TracerNames {
		fs = append(fs, t.Tracers[name])
	}
	return fs
}
