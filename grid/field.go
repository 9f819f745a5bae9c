package grid

import "fmt"

// Loc is the staggered position of a field along one axis.
type Loc uint8

const (
	Center Loc = iota
	Face
)

// Location is the per-axis staggered position triple of a field.
type Location struct {
	X, Y, Z Loc
}

var (
	LocU      = Location{Face, Center, Center}
	LocV      = Location{Center, Face, Center}
	LocW      = Location{Center, Center, Face}
	LocCenter = Location{Center, Center, Center}
)

// Field is a named scalar array located at a staggered grid position,
// stored flat with halo cells on every side. Fields are mutated in place
// each timestep.
type Field struct {
	Name string
	Loc  Location
	G    *Grid
	Data []float64
}

func NewField(name string, loc Location, g *Grid) *Field {
	return &Field{
		Name: name,
		Loc:  loc,
		G:    g,
		Data: make([]float64, g.Size()),
	}
}

func (f *Field) At(i, j, k int) float64 {
	return f.Data[f.G.Idx(i, j, k)]
}

func (f *Field) Set(i, j, k int, v float64) {
	f.Data[f.G.Idx(i, j, k)] = v
}

func (f *Field) Add(i, j, k int, v float64) {
	f.Data[f.G.Idx(i, j, k)] += v
}

func (f *Field) Zero() {
	for i := range f.Data {
		f.Data[i] = 0
	}
}

// CopyFrom copies src's data into f. Mismatched grid or location is a
// programming error.
func (f *Field) CopyFrom(src *Field) {
	if f.G != src.G || f.Loc != src.Loc {
		panic(fmt.Sprintf("field %q: copy from %q with mismatched grid or location", f.Name, src.Name))
	}
	copy(f.Data, src.Data)
}

/*
FillHalos populates halo cells from the interior, one axis at a time so
that edge and corner halos are covered by composition.

Periodic axes wrap the opposite interior cells. Bounded axes copy the
nearest interior value (zero-gradient), except for the field's own
face-normal component on a bounded axis: the boundary faces themselves
and the halos beyond are set to zero (impenetrable boundary), since a
wall-normal velocity must vanish on the wall.
*/
func (f *Field) FillHalos() {
	g := f.G
	// x axis
	for k := 0; k < g.Sz; k++ {
		for j := 0; j < g.Sy; j++ {
			for h := 0; h < Halo; h++ {
				lo, hi := h, g.Sx-1-h // halo positions, outermost inward
				switch {
				case g.TopoX == Periodic:
					f.Data[g.Idx(lo, j, k)] = f.Data[g.Idx(lo+g.Nx, j, k)]
					f.Data[g.Idx(hi, j, k)] = f.Data[g.Idx(hi-g.Nx, j, k)]
				case f.Loc.X == Face:
					f.Data[g.Idx(lo, j, k)] = 0
					f.Data[g.Idx(hi, j, k)] = 0
				default:
					f.Data[g.Idx(lo, j, k)] = f.Data[g.Idx(Halo, j, k)]
					f.Data[g.Idx(hi, j, k)] = f.Data[g.Idx(Halo+g.Nx-1, j, k)]
				}
			}
			if g.TopoX == Bounded && f.Loc.X == Face {
				f.Data[g.Idx(Halo, j, k)] = 0        // lower wall face
				f.Data[g.Idx(Halo+g.Nx, j, k)] = 0   // upper wall face
			}
		}
	}
	// y axis
	for k := 0; k < g.Sz; k++ {
		for i := 0; i < g.Sx; i++ {
			for h := 0; h < Halo; h++ {
				lo, hi := h, g.Sy-1-h
				switch {
				case g.TopoY == Periodic:
					f.Data[g.Idx(i, lo, k)] = f.Data[g.Idx(i, lo+g.Ny, k)]
					f.Data[g.Idx(i, hi, k)] = f.Data[g.Idx(i, hi-g.Ny, k)]
				case f.Loc.Y == Face:
					f.Data[g.Idx(i, lo, k)] = 0
					f.Data[g.Idx(i, hi, k)] = 0
				default:
					f.Data[g.Idx(i, lo, k)] = f.Data[g.Idx(i, Halo, k)]
					f.Data[g.Idx(i, hi, k)] = f.Data[g.Idx(i, Halo+g.Ny-1, k)]
				}
			}
			if g.TopoY == Bounded && f.Loc.Y == Face {
				f.Data[g.Idx(i, Halo, k)] = 0
				f.Data[g.Idx(i, Halo+g.Ny, k)] = 0
			}
		}
	}
	// z axis
	for j := 0; j < g.Sy; j++ {
		for i := 0; i < g.Sx; i++ {
			for h := 0; h < Halo; h++ {
				lo, hi := h, g.Sz-1-h
				switch {
				case g.TopoZ == Periodic:
					f.Data[g.Idx(i, j, lo)] = f.Data[g.Idx(i, j, lo+g.Nz)]
					f.Data[g.Idx(i, j, hi)] = f.Data[g.Idx(i, j, hi-g.Nz)]
				case f.Loc.Z == Face:
					f.Data[g.Idx(i, j, lo)] = 0
					f.Data[g.Idx(i, j, hi)] = 0
				default:
					f.Data[g.Idx(i, j, lo)] = f.Data[g.Idx(i, j, Halo)]
					f.Data[g.Idx(i, j, hi)] = f.Data[g.Idx(i, j, Halo+g.Nz-1)]
				}
			}
			if g.TopoZ == Bounded && f.Loc.Z == Face {
				f.Data[g.Idx(i, j, Halo)] = 0      // surface face
				f.Data[g.Idx(i, j, Halo+g.Nz)] = 0 // bottom face
			}
		}
	}
}
