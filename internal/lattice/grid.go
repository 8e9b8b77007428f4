package lattice

import (
	"fmt"

	"github.com/san-kum/springlab/internal/vec"
)

// GridSpec parameterizes a rectangular lattice build.
type GridSpec struct {
	Rows, Cols int
	Origin     vec.Vec2
	CellSize   float64
	Mass       float64
	Stiffness  float64
	Damping    float64
}

// GridSpringCount is the exact number of springs a rows×cols lattice needs
// under the half-edge scheme: one to the right neighbor per cell that has
// one, one to the neighbor below likewise. No duplicates, no diagonals.
func GridSpringCount(rows, cols int) int {
	return rows*(cols-1) + (rows-1)*cols
}

// BuildGrid clears sys and populates it with a rows×cols lattice of masses in
// row-major order at origin + (col,row)*cellSize, joined by right and down
// neighbor springs with restLength = cellSize. Row 0 is fixed. If the lattice
// would exceed either capacity the build aborts and sys is left empty.
func BuildGrid(sys *System, spec GridSpec) error {
	sys.Clear()

	if spec.Rows <= 0 || spec.Cols <= 0 {
		return fmt.Errorf("%dx%d: %w", spec.Rows, spec.Cols, ErrGridSize)
	}
	if n := spec.Rows * spec.Cols; n > cap(sys.masses) {
		return fmt.Errorf("%d masses exceed capacity %d: %w", n, cap(sys.masses), ErrMassCapacity)
	}
	if n := GridSpringCount(spec.Rows, spec.Cols); n > cap(sys.springs) {
		return fmt.Errorf("%d springs exceed capacity %d: %w", n, cap(sys.springs), ErrSpringCapacity)
	}

	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Cols; c++ {
			offset := vec.Vec2{X: float64(c), Y: float64(r)}.Scale(spec.CellSize)
			_, err := sys.AddMass(MassInit{
				Position: spec.Origin.Add(offset),
				Mass:     spec.Mass,
				Fixed:    r == 0,
			})
			if err != nil {
				sys.Clear()
				return err
			}
		}
	}

	init := SpringInit{
		RestLength: spec.CellSize,
		Stiffness:  spec.Stiffness,
		Damping:    spec.Damping,
	}
	for r := 0; r < spec.Rows; r++ {
		for c := 0; c < spec.Cols; c++ {
			at := r*spec.Cols + c
			if c < spec.Cols-1 {
				if err := sys.AddSpring(init, at, at+1); err != nil {
					sys.Clear()
					return err
				}
			}
			if r < spec.Rows-1 {
				if err := sys.AddSpring(init, at, at+spec.Cols); err != nil {
					sys.Clear()
					return err
				}
			}
		}
	}
	return nil
}
