package morph

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidKernel is returned by Validate for kernels without active cells.
	ErrInvalidKernel = errors.New("kernel has no active cells")

	// ErrInvalidSize is returned for kernel sizes below 1 or non-square grids.
	ErrInvalidSize = errors.New("invalid kernel size")

	// ErrUnknownShape is returned when a shape name cannot be parsed.
	ErrUnknownShape = errors.New("unknown kernel shape")
)

// Shape identifies one of the canonical structuring element shapes.
type Shape int

const (
	// Rectangle activates every cell of the K×K grid.
	Rectangle Shape = iota
	// Cross activates the center row and the center column.
	Cross
	// Ellipse activates the cells inside the inscribed ellipse.
	Ellipse
)

// Shapes lists the canonical shapes in a stable order.
var Shapes = []Shape{Rectangle, Cross, Ellipse}

// String returns the short name used in tool arguments and file names.
func (s Shape) String() string {
	switch s {
	case Rectangle:
		return "rect"
	case Cross:
		return "cross"
	case Ellipse:
		return "ellipse"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape converts a shape name into a Shape.
//
// Accepted names (case-insensitive):
//   - "rect", "rectangle", "square"
//   - "cross"
//   - "ellipse", "circle"
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rect", "rectangle", "square":
		return Rectangle, nil
	case "cross":
		return Cross, nil
	case "ellipse", "circle":
		return Ellipse, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// Kernel is a square structuring element of odd side length.
//
// Cells are stored row-major. A Kernel is immutable once built.
type Kernel struct {
	size  int
	cells []bool
}

// BuildKernel creates a canonical kernel of the given shape.
//
// Parameters:
//   - shape: Rectangle, Cross or Ellipse.
//   - size: side length. Even values are rounded up to the next odd value so the
//     kernel has a well-defined center.
//
// Returns:
//   - *Kernel: the structuring element. Every canonical shape has its center
//     cell active.
//   - error: ErrInvalidSize for size < 1, ErrUnknownShape for unknown shapes.
//
// # Ellipse
//
// A cell (r, c) is active when ((r-c0)/a)² + ((c-c0)/a)² <= 1 with c0 = a = K/2
// (integer division). At K = 3 this produces the same cells as Cross, and K = 1
// yields the single center cell.
func BuildKernel(shape Shape, size int) (*Kernel, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	if size%2 == 0 {
		size++
	}

	k := &Kernel{size: size, cells: make([]bool, size*size)}
	center := size / 2

	switch shape {
	case Rectangle:
		for i := range k.cells {
			k.cells[i] = true
		}
	case Cross:
		for r := 0; r < size; r++ {
			for c := 0; c < size; c++ {
				k.cells[r*size+c] = r == center || c == center
			}
		}
	case Ellipse:
		if center == 0 {
			k.cells[0] = true
			break
		}
		a := float64(center)
		for r := 0; r < size; r++ {
			dy := float64(r-center) / a
			for c := 0; c < size; c++ {
				dx := float64(c-center) / a
				k.cells[r*size+c] = dx*dx+dy*dy <= 1
			}
		}
	default:
		return nil, fmt.Errorf("%w: %v", ErrUnknownShape, shape)
	}

	return k, nil
}

// NewKernel builds a custom kernel from a square grid of odd side.
// The grid is copied. A grid with no active cells is accepted; callers that
// need a usable kernel should call Validate.
func NewKernel(grid [][]bool) (*Kernel, error) {
	n := len(grid)
	if n == 0 || n%2 == 0 {
		return nil, fmt.Errorf("%w: kernel side must be odd, got %d", ErrInvalidSize, n)
	}

	k := &Kernel{size: n, cells: make([]bool, n*n)}
	for r, row := range grid {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrInvalidSize, r, len(row), n)
		}
		copy(k.cells[r*n:(r+1)*n], row)
	}
	return k, nil
}

// Size returns the side length K.
func (k *Kernel) Size() int { return k.size }

// Radius returns the padding needed on each side, (K-1)/2.
func (k *Kernel) Radius() int { return (k.size - 1) / 2 }

// Active reports whether cell (r, c) takes part in the reduction.
// Out-of-range cells are inactive.
func (k *Kernel) Active(r, c int) bool {
	if r < 0 || c < 0 || r >= k.size || c >= k.size {
		return false
	}
	return k.cells[r*k.size+c]
}

// ActiveCount returns the number of active cells.
func (k *Kernel) ActiveCount() int {
	n := 0
	for _, on := range k.cells {
		if on {
			n++
		}
	}
	return n
}

// IsRectangle reports whether every cell is active, which allows the
// separable running-minimum path.
func (k *Kernel) IsRectangle() bool {
	return k.ActiveCount() == len(k.cells)
}

// Validate returns ErrInvalidKernel when the kernel has no active cells.
func (k *Kernel) Validate() error {
	if k.ActiveCount() == 0 {
		return ErrInvalidKernel
	}
	return nil
}

// Grid returns a copy of the kernel as rows of booleans.
func (k *Kernel) Grid() [][]bool {
	grid := make([][]bool, k.size)
	for r := range grid {
		grid[r] = make([]bool, k.size)
		copy(grid[r], k.cells[r*k.size:(r+1)*k.size])
	}
	return grid
}

// offsets lists the (row, col) offsets of active cells relative to the window's
// top-left corner.
func (k *Kernel) offsets() []cell {
	cells := make([]cell, 0, len(k.cells))
	for r := 0; r < k.size; r++ {
		for c := 0; c < k.size; c++ {
			if k.cells[r*k.size+c] {
				cells = append(cells, cell{r: r, c: c})
			}
		}
	}
	return cells
}

type cell struct {
	r, c int
}
