/*
Package config parses the YAML simulation input file and builds the
runtime objects (grid, closures, buoyancy, boundary conditions) from it.
All name resolution happens here; an unknown closure, buoyancy model,
topology or boundary kind is a setup error, never a silent default.
*/
package config

import (
	"fmt"
	"sort"

	"github.com/ghodss/yaml"

	"github.com/oceanmodels/goocean/boundaries"
	"github.com/oceanmodels/goocean/closures"
	"github.com/oceanmodels/goocean/grid"
	"github.com/oceanmodels/goocean/physics"
)

// ClosureSpec selects one turbulence closure by name with a free-form
// coefficient map; missing coefficients fall back to the closure's
// documented defaults.
type ClosureSpec struct {
	Type         string             `yaml:"Type"`
	Coefficients map[string]float64 `yaml:"Coefficients"`
}

// BCSpec is one boundary condition in the input file. Kind is one of
// NoFlux, Flux, Gradient, Value.
type BCSpec struct {
	Kind  string  `yaml:"Kind"`
	Value float64 `yaml:"Value"`
}

// Parameters obtained from the YAML input file
type SimulationParameters struct {
	Title string `yaml:"Title"`

	Nx int `yaml:"Nx"`
	Ny int `yaml:"Ny"`
	Nz int `yaml:"Nz"`

	Lx float64 `yaml:"Lx"`
	Ly float64 `yaml:"Ly"`
	Lz float64 `yaml:"Lz"`

	TopologyX string `yaml:"TopologyX"` // Periodic | Bounded
	TopologyY string `yaml:"TopologyY"`
	TopologyZ string `yaml:"TopologyZ"`

	Dt        float64 `yaml:"Dt"`
	FinalTime float64 `yaml:"FinalTime"`

	Tracers  []string      `yaml:"Tracers"`
	Closures []ClosureSpec `yaml:"Closures"`

	CoriolisF float64 `yaml:"CoriolisF"`

	// Buoyancy is "", "Tracer" or "Seawater".
	Buoyancy          string  `yaml:"Buoyancy"`
	Gravity           float64 `yaml:"Gravity"`
	ThermalExpansion  float64 `yaml:"ThermalExpansion"`
	HalineContraction float64 `yaml:"HalineContraction"`
	ReferenceT        float64 `yaml:"ReferenceT"`
	ReferenceS        float64 `yaml:"ReferenceS"`

	// BCs: first key is the field name, second the face name (West,
	// East, South, North, Bottom, Top).
	BCs map[string]map[string]BCSpec `yaml:"BCs"`

	ParallelDegree int `yaml:"ParallelDegree"`
}

func (sp *SimulationParameters) Parse(data []byte) error {
	return yaml.Unmarshal(data, sp)
}

func (sp *SimulationParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", sp.Title)
	fmt.Printf("[%d x %d x %d]\t\t= Grid Size\n", sp.Nx, sp.Ny, sp.Nz)
	fmt.Printf("[%g x %g x %g]\t= Domain Extent\n", sp.Lx, sp.Ly, sp.Lz)
	fmt.Printf("[%s %s %s]\t= Topology\n", sp.TopologyX, sp.TopologyY, sp.TopologyZ)
	fmt.Printf("%8.5f\t\t= Dt\n", sp.Dt)
	fmt.Printf("%8.5f\t\t= FinalTime\n", sp.FinalTime)
	fmt.Printf("%v\t\t= Tracers\n", sp.Tracers)
	for _, cs := range sp.Closures {
		fmt.Printf("Closure[%s] = %v\n", cs.Type, cs.Coefficients)
	}
	if sp.Buoyancy != "" {
		fmt.Printf("[%s]\t\t= Buoyancy\n", sp.Buoyancy)
	}
	if sp.CoriolisF != 0 {
		fmt.Printf("%8.5f\t\t= CoriolisF\n", sp.CoriolisF)
	}
	keys := make([]string, 0, len(sp.BCs))
	for k := range sp.BCs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("BCs[%s] = %v\n", key, sp.BCs[key])
	}
}

func parseTopology(name string) (grid.Topology, error) {
	switch name {
	case "Periodic", "periodic":
		return grid.Periodic, nil
	case "Bounded", "bounded":
		return grid.Bounded, nil
	}
	return 0, fmt.Errorf("unknown topology %q (want Periodic or Bounded)", name)
}

// BuildGrid constructs the grid from the parsed dimensions, extents and
// topologies.
func (sp *SimulationParameters) BuildGrid() (*grid.Grid, error) {
	tx, err := parseTopology(sp.TopologyX)
	if err != nil {
		return nil, err
	}
	ty, err := parseTopology(sp.TopologyY)
	if err != nil {
		return nil, err
	}
	tz, err := parseTopology(sp.TopologyZ)
	if err != nil {
		return nil, err
	}
	return grid.New(sp.Nx, sp.Ny, sp.Nz, sp.Lx, sp.Ly, sp.Lz, tx, ty, tz)
}

// BuildClosure resolves the closure specs into a tuple. An empty spec
// list yields a tuple holding NoClosure.
func (sp *SimulationParameters) BuildClosure() (closures.Tuple, error) {
	if len(sp.Closures) == 0 {
		return closures.NewTuple(closures.NoClosure{}), nil
	}
	cs := make([]closures.Closure, len(sp.Closures))
	for n, spec := range sp.Closures {
		c, err := buildOneClosure(spec)
		if err != nil {
			return closures.Tuple{}, err
		}
		cs[n] = c
	}
	return closures.NewTuple(cs...), nil
}

func buildOneClosure(spec ClosureSpec) (closures.Closure, error) {
	coef := func(name string) float64 { return spec.Coefficients[name] }
	switch spec.Type {
	case "None":
		return closures.NoClosure{}, nil
	case "Isotropic":
		return closures.IsotropicDiffusivity{Nu: coef("Nu"), Kappa: coef("Kappa")}, nil
	case "Anisotropic":
		return closures.AnisotropicDiffusivity{
			NuX: coef("NuX"), NuY: coef("NuY"), NuZ: coef("NuZ"),
			KappaX: coef("KappaX"), KappaY: coef("KappaY"), KappaZ: coef("KappaZ"),
		}, nil
	case "AnisotropicBiharmonic":
		return closures.AnisotropicBiharmonicDiffusivity{
			NuH: coef("NuH"), NuZ: coef("NuZ"),
			KappaH: coef("KappaH"), KappaZ: coef("KappaZ"),
		}, nil
	case "Leith":
		return closures.TwoDimensionalLeith{
			C: coef("C"), Nu: coef("Nu"), Kappa: coef("Kappa"),
		}, nil
	case "Smagorinsky":
		return closures.SmagorinskyLilly{
			C: coef("C"), Cb: coef("Cb"), Pr: coef("Pr"),
			Nu: coef("Nu"), Kappa: coef("Kappa"),
		}, nil
	case "BlasiusSmagorinsky":
		return closures.BlasiusSmagorinsky{
			ML0: coef("ML0"), Pr: coef("Pr"),
			Nu: coef("Nu"), Kappa: coef("Kappa"),
		}, nil
	case "VerstappenAMD":
		return closures.VerstappenAMD{
			C: coef("C"), Nu: coef("Nu"), Kappa: coef("Kappa"),
		}, nil
	case "RozemaAMD":
		return closures.RozemaAMD{
			C: coef("C"), Nu: coef("Nu"), Kappa: coef("Kappa"),
		}, nil
	}
	return nil, fmt.Errorf("unknown closure type %q", spec.Type)
}

// BuildBuoyancy resolves the buoyancy model name; nil means no buoyancy.
func (sp *SimulationParameters) BuildBuoyancy() (physics.Buoyancy, error) {
	switch sp.Buoyancy {
	case "":
		return nil, nil
	case "Tracer", "tracer":
		return physics.BuoyancyTracer{}, nil
	case "Seawater", "seawater":
		return physics.SeawaterBuoyancy{
			G0:    sp.Gravity,
			Alpha: sp.ThermalExpansion,
			Beta:  sp.HalineContraction,
			T0:    sp.ReferenceT,
			S0:    sp.ReferenceS,
		}, nil
	}
	return nil, fmt.Errorf("unknown buoyancy model %q", sp.Buoyancy)
}

// BuildCoriolis returns the f-plane rotation, nil when f is zero.
func (sp *SimulationParameters) BuildCoriolis() *physics.FPlane {
	if sp.CoriolisF == 0 {
		return nil
	}
	return &physics.FPlane{F: sp.CoriolisF}
}

func parseBCKind(name string) (boundaries.Kind, error) {
	switch name {
	case "", "NoFlux":
		return boundaries.NoFlux, nil
	case "Flux":
		return boundaries.Flux, nil
	case "Gradient":
		return boundaries.Gradient, nil
	case "Value":
		return boundaries.Value, nil
	}
	return 0, fmt.Errorf("unknown boundary-condition kind %q", name)
}

// BuildBCs assembles the boundary-condition table from the per-field,
// per-face specs. Face names follow compass-and-depth convention: West
// and East bound x, South and North bound y, Bottom and Top bound z.
func (sp *SimulationParameters) BuildBCs() (boundaries.Table, error) {
	if len(sp.BCs) == 0 {
		return nil, nil
	}
	table := make(boundaries.Table, len(sp.BCs))
	for field, faces := range sp.BCs {
		fb := boundaries.NoFluxBCs()
		for face, spec := range faces {
			kind, err := parseBCKind(spec.Kind)
			if err != nil {
				return nil, fmt.Errorf("field %q face %q: %w", field, face, err)
			}
			cond := boundaries.Condition{Kind: kind, Value: spec.Value}
			switch face {
			case "West":
				fb.X[boundaries.Lower] = cond
			case "East":
				fb.X[boundaries.Upper] = cond
			case "South":
				fb.Y[boundaries.Lower] = cond
			case "North":
				fb.Y[boundaries.Upper] = cond
			case "Bottom":
				fb.Z[boundaries.Lower] = cond
			case "Top":
				fb.Z[boundaries.Upper] = cond
			default:
				return nil, fmt.Errorf("field %q: unknown face %q", field, face)
			}
		}
		table[field] = fb
	}
	return table, nil
}

// Validate checks the scalar parameters a build cannot catch.
func (sp *SimulationParameters) Validate() error {
	if sp.Dt <= 0 {
		return fmt.Errorf("Dt must be positive, got %g", sp.Dt)
	}
	if sp.FinalTime < 0 {
		return fmt.Errorf("FinalTime must be non-negative, got %g", sp.FinalTime)
	}
	return nil
}
