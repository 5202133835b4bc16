package imaging

import (
	"fmt"
	"image"
)

// Boundary returns the inner morphological boundary original - eroded.
//
// Erosion never raises a sample, so the difference is non-negative for a real
// erosion result; the subtraction saturates at 0 anyway so arbitrary pairs of
// images of equal size are accepted. The result has a zero bounds origin.
func Boundary(original, eroded *image.Gray) (*image.Gray, error) {
	ob, eb := original.Bounds(), eroded.Bounds()
	if ob.Dx() != eb.Dx() || ob.Dy() != eb.Dy() {
		return nil, fmt.Errorf("boundary size mismatch: original %dx%d, eroded %dx%d",
			ob.Dx(), ob.Dy(), eb.Dx(), eb.Dy())
	}

	out := image.NewGray(image.Rect(0, 0, ob.Dx(), ob.Dy()))
	for y := 0; y < ob.Dy(); y++ {
		src := original.Pix[original.PixOffset(ob.Min.X, ob.Min.Y+y):]
		sub := eroded.Pix[eroded.PixOffset(eb.Min.X, eb.Min.Y+y):]
		dst := out.Pix[y*out.Stride : y*out.Stride+ob.Dx()]
		for x := range dst {
			if src[x] > sub[x] {
				dst[x] = src[x] - sub[x]
			}
		}
	}
	return out, nil
}
