package grid

import "fmt"

// Topology describes the boundary connectivity of one grid axis.
type Topology uint8

const (
	Periodic Topology = iota
	Bounded
)

func (t Topology) String() string {
	if t == Periodic {
		return "Periodic"
	}
	return "Bounded"
}

// Halo is the number of halo cells carried on every side of every axis.
// Two cells are required so that biharmonic (fourth-difference) stencils
// can be evaluated at boundary-adjacent interior cells.
const Halo = 2

/*
Grid is an immutable regular rectilinear staggered 3D discretization.

Storage layout is a flat array of dimension Sx*Sy*Sz where S = N + 2*Halo
along each axis. Interior cells occupy index range [Halo, Halo+N).

Orientation: x and y are horizontal, z is positive upward. The vertical
index k increases downward, so k = Halo is the surface-adjacent cell row
and k = Halo+Nz-1 sits at the bottom. A z-face with index k is the top
face of cell k.
*/
type Grid struct {
	Nx, Ny, Nz int     // Interior cell counts
	Lx, Ly, Lz float64 // Domain extents
	Dx, Dy, Dz float64 // Uniform cell spacings
	Sx, Sy, Sz int     // Storage dimensions including halos

	TopoX, TopoY, TopoZ Topology
}

func New(nx, ny, nz int, lx, ly, lz float64, tx, ty, tz Topology) (*Grid, error) {
	if nx < 1 || ny < 1 || nz < 1 {
		return nil, fmt.Errorf("grid dimensions must be positive, have (%d,%d,%d)", nx, ny, nz)
	}
	if lx <= 0 || ly <= 0 || lz <= 0 {
		return nil, fmt.Errorf("grid extents must be positive, have (%g,%g,%g)", lx, ly, lz)
	}
	g := &Grid{
		Nx: nx, Ny: ny, Nz: nz,
		Lx: lx, Ly: ly, Lz: lz,
		Dx: lx / float64(nx), Dy: ly / float64(ny), Dz: lz / float64(nz),
		Sx: nx + 2*Halo, Sy: ny + 2*Halo, Sz: nz + 2*Halo,
		TopoX: tx, TopoY: ty, TopoZ: tz,
	}
	return g, nil
}

// Idx maps a (possibly halo) index triple to the flat storage offset.
func (g *Grid) Idx(i, j, k int) int {
	return i + g.Sx*(j+g.Sy*k)
}

// Size is the flat storage length including halos.
func (g *Grid) Size() int {
	return g.Sx * g.Sy * g.Sz
}

// NumColumns is the number of interior (i,j) columns.
func (g *Grid) NumColumns() int {
	return g.Nx * g.Ny
}

// Column maps a flat interior column number to its (i,j) storage indices.
func (g *Grid) Column(c int) (i, j int) {
	i = Halo + c%g.Nx
	j = Halo + c/g.Nx
	return
}

// Coordinates of cell centers and faces. ZC/ZF are negative below the
// surface, with ZF(Halo) = 0 at the surface.
func (g *Grid) XC(i int) float64 { return (float64(i-Halo) + 0.5) * g.Dx }
func (g *Grid) XF(i int) float64 { return float64(i-Halo) * g.Dx }
func (g *Grid) YC(j int) float64 { return (float64(j-Halo) + 0.5) * g.Dy }
func (g *Grid) YF(j int) float64 { return float64(j-Halo) * g.Dy }
func (g *Grid) ZC(k int) float64 { return -(float64(k-Halo) + 0.5) * g.Dz }
func (g *Grid) ZF(k int) float64 { return -float64(k-Halo) * g.Dz }
