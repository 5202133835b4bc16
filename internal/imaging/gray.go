package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// GrayMode selects how color images are reduced to a single 8-bit channel.
type GrayMode string

const (
	// GrayBT601 uses the ITU-R BT.601 luma weights (0.299R + 0.587G + 0.114B),
	// matching what common image libraries do when reading a file as grayscale.
	GrayBT601 GrayMode = "bt601"

	// GrayLab uses the CIE L* lightness channel, which is perceptually uniform.
	GrayLab GrayMode = "lab"
)

// ParseGrayMode converts a mode name into a GrayMode. The empty string selects
// GrayBT601.
func ParseGrayMode(name string) (GrayMode, error) {
	switch GrayMode(name) {
	case "", GrayBT601:
		return GrayBT601, nil
	case GrayLab:
		return GrayLab, nil
	default:
		return "", fmt.Errorf("unknown gray mode: %s", name)
	}
}

// ToGray converts img into a new *image.Gray with a zero bounds origin.
//
// Alpha is ignored. An input that is already *image.Gray is copied sample for
// sample in either mode, so callers always own the returned buffer.
func ToGray(img image.Image, mode GrayMode) (*image.Gray, error) {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if g, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
		}
		return out, nil
	}

	switch mode {
	case "", GrayBT601:
		// imaging.Grayscale writes the same luma into R, G and B.
		n := imaging.Grayscale(img)
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				out.Pix[y*out.Stride+x] = n.Pix[y*n.Stride+x*4]
			}
		}
	case GrayLab:
		for y := 0; y < b.Dy(); y++ {
			for x := 0; x < b.Dx(); x++ {
				c, ok := colorful.MakeColor(img.At(b.Min.X+x, b.Min.Y+y))
				if !ok {
					continue
				}
				l, _, _ := c.Lab()
				out.Pix[y*out.Stride+x] = uint8(math.Round(clampUnit(l) * 255))
			}
		}
	default:
		return nil, fmt.Errorf("unknown gray mode: %s", mode)
	}
	return out, nil
}

// Binarize maps every sample to 0 or 255. Samples at or above level become
// 255. The result has a zero bounds origin.
func Binarize(img *image.Gray, level uint8) *image.Gray {
	var lut [256]uint8
	for v := int(level); v < 256; v++ {
		lut[v] = 255
	}

	// Gray samples expand to R = G = B, so the red channel is the exact sample.
	rgba := adjust.Apply(img, func(c color.RGBA) color.RGBA {
		v := lut[c.R]
		return color.RGBA{R: v, G: v, B: v, A: 255}
	})

	w, h := rgba.Rect.Dx(), rgba.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := range row {
			row[x] = rgba.Pix[y*rgba.Stride+x*4]
		}
	}
	return out
}

// IsBinary reports whether every sample of img is 0 or 255.
func IsBinary(img *image.Gray) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y) : img.PixOffset(b.Min.X, y)+b.Dx()]
		for _, v := range row {
			if v != 0 && v != 255 {
				return false
			}
		}
	}
	return true
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
