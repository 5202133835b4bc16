package morph

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grayFromRows builds a *image.Gray from row-major samples.
func grayFromRows(rows [][]uint8) *image.Gray {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y, row := range rows {
		copy(img.Pix[y*img.Stride:], row)
	}
	return img
}

// rowsFromGray returns the samples of img as rows.
func rowsFromGray(img *image.Gray) [][]uint8 {
	b := img.Bounds()
	rows := make([][]uint8, b.Dy())
	for y := range rows {
		rows[y] = make([]uint8, b.Dx())
		for x := range rows[y] {
			rows[y][x] = img.GrayAt(b.Min.X+x, b.Min.Y+y).Y
		}
	}
	return rows
}

func TestReflectIndex(t *testing.T) {
	tests := []struct {
		i, n, want int
	}{
		{-2, 4, 2},
		{-1, 4, 1},
		{0, 4, 0},
		{3, 4, 3},
		{4, 4, 2},
		{5, 4, 1},
		{-5, 2, 1},
		{7, 3, 1},
		{-3, 1, 0},
		{9, 1, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, reflectIndex(tt.i, tt.n), "reflectIndex(%d, %d)", tt.i, tt.n)
	}
}

func TestPad_Row(t *testing.T) {
	const a, b, c, d = 10, 20, 30, 40
	img := grayFromRows([][]uint8{{a, b, c, d}})

	padded := Pad(img, 2)
	require.Equal(t, image.Rect(0, 0, 8, 5), padded.Bounds())

	want := []uint8{c, b, a, b, c, d, c, b}
	for _, row := range rowsFromGray(padded) {
		assert.Equal(t, want, row)
	}
}

func TestPad_Corners(t *testing.T) {
	img := grayFromRows([][]uint8{
		{1, 2, 3},
		{4, 5, 6},
		{7, 8, 9},
	})

	want := [][]uint8{
		{5, 4, 5, 6, 5},
		{2, 1, 2, 3, 2},
		{5, 4, 5, 6, 5},
		{8, 7, 8, 9, 8},
		{5, 4, 5, 6, 5},
	}
	assert.Equal(t, want, rowsFromGray(Pad(img, 1)))
}

func TestPad_NonZeroOrigin(t *testing.T) {
	base := grayFromRows([][]uint8{
		{0, 0, 0, 0},
		{0, 1, 2, 0},
		{0, 3, 4, 0},
	})
	sub := base.SubImage(image.Rect(1, 1, 3, 3)).(*image.Gray)

	want := [][]uint8{
		{4, 3, 4, 3},
		{2, 1, 2, 1},
		{4, 3, 4, 3},
		{2, 1, 2, 1},
	}
	assert.Equal(t, want, rowsFromGray(Pad(sub, 1)))
}

func TestPad_Zero(t *testing.T) {
	img := grayFromRows([][]uint8{{1, 2}, {3, 4}})
	assert.Equal(t, rowsFromGray(img), rowsFromGray(Pad(img, 0)))
}
