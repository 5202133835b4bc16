package imaging

import (
	"fmt"
	"image"
	"math"
)

// Stats summarizes the samples of a grayscale image.
type Stats struct {
	Min  uint8   `json:"min"`
	Max  uint8   `json:"max"`
	Mean float64 `json:"mean"`

	// Foreground counts samples at or above the measuring level.
	Foreground      int     `json:"foreground"`
	ForegroundRatio float64 `json:"foreground_ratio"`
	TotalPixels     int     `json:"total_pixels"`
}

// Measure computes sample statistics for img. Samples >= level count as
// foreground.
func Measure(img *image.Gray, level uint8) Stats {
	b := img.Bounds()
	st := Stats{Min: 255, TotalPixels: b.Dx() * b.Dy()}
	if st.TotalPixels == 0 {
		st.Min = 0
		return st
	}

	var sum int
	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := img.Pix[img.PixOffset(b.Min.X, y):img.PixOffset(b.Max.X, y)]
		for _, v := range row {
			sum += int(v)
			if v < st.Min {
				st.Min = v
			}
			if v > st.Max {
				st.Max = v
			}
			if v >= level {
				st.Foreground++
			}
		}
	}

	st.Mean = math.Round(float64(sum)/float64(st.TotalPixels)*100) / 100
	st.ForegroundRatio = math.Round(float64(st.Foreground)/float64(st.TotalPixels)*1000) / 1000
	return st
}

// ChangeStats describes how an erosion changed an image.
type ChangeStats struct {
	PixelsChanged int     `json:"pixels_changed"`
	TotalPixels   int     `json:"total_pixels"`
	ChangedRatio  float64 `json:"changed_ratio"`
	MeanDecrease  float64 `json:"mean_decrease"`
}

// Compare counts the samples that differ between before and after, which must
// have the same size.
func Compare(before, after *image.Gray) (*ChangeStats, error) {
	bb, ab := before.Bounds(), after.Bounds()
	if bb.Dx() != ab.Dx() || bb.Dy() != ab.Dy() {
		return nil, fmt.Errorf("size mismatch: %dx%d vs %dx%d", bb.Dx(), bb.Dy(), ab.Dx(), ab.Dy())
	}

	total := bb.Dx() * bb.Dy()
	changed := 0
	var totalDiff int
	for y := 0; y < bb.Dy(); y++ {
		for x := 0; x < bb.Dx(); x++ {
			b := before.Pix[before.PixOffset(bb.Min.X+x, bb.Min.Y+y)]
			a := after.Pix[after.PixOffset(ab.Min.X+x, ab.Min.Y+y)]
			if a != b {
				changed++
			}
			totalDiff += int(b) - int(a)
		}
	}

	res := &ChangeStats{PixelsChanged: changed, TotalPixels: total}
	if total > 0 {
		res.ChangedRatio = math.Round(float64(changed)/float64(total)*1000) / 1000
		res.MeanDecrease = math.Round(float64(totalDiff)/float64(total)*100) / 100
	}
	return res, nil
}
