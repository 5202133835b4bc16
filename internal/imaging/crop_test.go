package imaging

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createPatternImage creates an image with different colors in each quadrant
func createPatternImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c color.Color
			if x < width/2 && y < height/2 {
				c = color.RGBA{255, 0, 0, 255} // Red top-left
			} else if x >= width/2 && y < height/2 {
				c = color.RGBA{0, 255, 0, 255} // Green top-right
			} else if x < width/2 && y >= height/2 {
				c = color.RGBA{0, 0, 255, 255} // Blue bottom-left
			} else {
				c = color.RGBA{255, 255, 255, 255} // White bottom-right
			}
			img.Set(x, y, c)
		}
	}
	return img
}

func TestCrop(t *testing.T) {
	result, err := Crop(createPatternImage(100, 100), Region{X1: 0, Y1: 0, X2: 50, Y2: 40})
	require.NoError(t, err)

	assert.Equal(t, image.Rect(0, 0, 50, 40), result.Bounds())
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, result.NRGBAAt(10, 10), "top-left crop should be red")
}

func TestCrop_Offset(t *testing.T) {
	result, err := Crop(createPatternImage(100, 100), Region{X1: 50, Y1: 50, X2: 60, Y2: 60})
	require.NoError(t, err)
	assert.Equal(t, color.NRGBA{255, 255, 255, 255}, result.NRGBAAt(0, 0), "bottom-right crop should be white")
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createPatternImage(100, 100)

	tests := []struct {
		name string
		r    Region
	}{
		{"outside right", Region{0, 0, 101, 50}},
		{"outside bottom", Region{0, 0, 50, 101}},
		{"negative", Region{-1, 0, 50, 50}},
		{"inverted x", Region{50, 0, 10, 50}},
		{"empty", Region{10, 10, 10, 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Crop(img, tt.r)
			assert.Error(t, err)
		})
	}
}

func TestNamedRegion(t *testing.T) {
	bounds := image.Rect(0, 0, 100, 80)

	tests := []struct {
		name string
		want Region
	}{
		{"top-left", Region{0, 0, 50, 40}},
		{"top-right", Region{50, 0, 100, 40}},
		{"bottom-left", Region{0, 40, 50, 80}},
		{"bottom-right", Region{50, 40, 100, 80}},
		{"top-half", Region{0, 0, 100, 40}},
		{"bottom-half", Region{0, 40, 100, 80}},
		{"left-half", Region{0, 0, 50, 80}},
		{"right-half", Region{50, 0, 100, 80}},
		{"center", Region{25, 20, 75, 60}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NamedRegion(bounds, tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNamedRegion_Offset(t *testing.T) {
	got, err := NamedRegion(image.Rect(10, 20, 30, 40), "bottom-right")
	require.NoError(t, err)
	assert.Equal(t, Region{20, 30, 30, 40}, got)
}

func TestNamedRegion_Unknown(t *testing.T) {
	_, err := NamedRegion(image.Rect(0, 0, 10, 10), "middle-ish")
	assert.Error(t, err)
}
