package morph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// activeCells returns the active (row, col) pairs of k in row-major order.
func activeCells(k *Kernel) [][2]int {
	var cells [][2]int
	for r := 0; r < k.Size(); r++ {
		for c := 0; c < k.Size(); c++ {
			if k.Active(r, c) {
				cells = append(cells, [2]int{r, c})
			}
		}
	}
	return cells
}

func TestBuildKernel_Size3(t *testing.T) {
	rect, err := BuildKernel(Rectangle, 3)
	require.NoError(t, err)
	require.Equal(t, 9, rect.ActiveCount())
	require.True(t, rect.IsRectangle())

	cross, err := BuildKernel(Cross, 3)
	require.NoError(t, err)
	want := [][2]int{{0, 1}, {1, 0}, {1, 1}, {1, 2}, {2, 1}}
	require.Equal(t, want, activeCells(cross))

	ellipse, err := BuildKernel(Ellipse, 3)
	require.NoError(t, err)
	require.Equal(t, cross.Grid(), ellipse.Grid(), "ellipse at size 3 excludes corners")
}

func TestBuildKernel_EvenSizeRoundsUp(t *testing.T) {
	for _, shape := range Shapes {
		t.Run(shape.String(), func(t *testing.T) {
			k, err := BuildKernel(shape, 4)
			require.NoError(t, err)
			assert.Equal(t, 5, k.Size())
			assert.Equal(t, 2, k.Radius())
		})
	}
}

func TestBuildKernel_CenterAlwaysActive(t *testing.T) {
	for _, shape := range Shapes {
		for size := 1; size <= 15; size += 2 {
			k, err := BuildKernel(shape, size)
			require.NoError(t, err)
			c := size / 2
			assert.True(t, k.Active(c, c), "%v size %d", shape, size)
			assert.NoError(t, k.Validate())
		}
	}
}

func TestBuildKernel_Size1(t *testing.T) {
	for _, shape := range Shapes {
		k, err := BuildKernel(shape, 1)
		require.NoError(t, err)
		assert.Equal(t, 1, k.ActiveCount(), shape.String())
	}
}

func TestBuildKernel_Ellipse5(t *testing.T) {
	k, err := BuildKernel(Ellipse, 5)
	require.NoError(t, err)

	want := [][]bool{
		{false, false, true, false, false},
		{false, true, true, true, false},
		{true, true, true, true, true},
		{false, true, true, true, false},
		{false, false, true, false, false},
	}
	require.Equal(t, want, k.Grid())
}

func TestBuildKernel_Errors(t *testing.T) {
	_, err := BuildKernel(Rectangle, 0)
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = BuildKernel(Shape(42), 3)
	require.ErrorIs(t, err, ErrUnknownShape)
}

func TestParseShape(t *testing.T) {
	tests := []struct {
		name string
		want Shape
	}{
		{"rect", Rectangle},
		{"Rectangle", Rectangle},
		{"square", Rectangle},
		{"cross", Cross},
		{" ELLIPSE ", Ellipse},
		{"circle", Ellipse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseShape(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseShape("star")
	require.ErrorIs(t, err, ErrUnknownShape)
}

func TestNewKernel(t *testing.T) {
	k, err := NewKernel([][]bool{
		{false, true, false},
		{false, true, false},
		{false, true, false},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, k.ActiveCount())
	assert.False(t, k.IsRectangle())
	assert.False(t, k.Active(-1, 0))

	empty, err := NewKernel([][]bool{{false, false, false}, {false, false, false}, {false, false, false}})
	require.NoError(t, err)
	require.ErrorIs(t, empty.Validate(), ErrInvalidKernel)

	_, err = NewKernel([][]bool{{true, true}, {true, true}})
	require.ErrorIs(t, err, ErrInvalidSize)

	_, err = NewKernel([][]bool{{true}, {true, true}, {true}})
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestKernel_GridIsCopy(t *testing.T) {
	k, err := BuildKernel(Rectangle, 3)
	require.NoError(t, err)

	g := k.Grid()
	g[0][0] = false
	assert.True(t, k.Active(0, 0))
}
