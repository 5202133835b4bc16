package morph

import (
	"context"
	"image"
)

// separableBand computes output rows [y0, y1) for a fully active size×size
// kernel. The rectangle minimum splits into a horizontal running minimum over
// the padded rows followed by a vertical one, each computed with the
// van Herk/Gil-Werman algorithm in O(1) comparisons per sample regardless of
// the kernel size.
func separableBand(ctx context.Context, padded, out *image.Gray, size, y0, y1 int) error {
	w := out.Rect.Dx()
	pw := padded.Rect.Dx()
	bandRows := y1 - y0 + size - 1

	// Horizontal minima of the padded rows this band reads.
	hmin := make([]uint8, bandRows*w)
	left := make([]uint8, pw)
	right := make([]uint8, pw)
	for r := 0; r < bandRows; r++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		py := y0 + r
		src := padded.Pix[py*padded.Stride : py*padded.Stride+pw]
		runningMin(hmin[r*w:(r+1)*w], src, size, left, right)
	}

	col := make([]uint8, bandRows)
	res := make([]uint8, y1-y0)
	if bandRows > pw {
		left = make([]uint8, bandRows)
		right = make([]uint8, bandRows)
	}
	for x := 0; x < w; x++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		for r := 0; r < bandRows; r++ {
			col[r] = hmin[r*w+x]
		}
		runningMin(res, col, size, left, right)
		for i, v := range res {
			out.Pix[(y0+i)*out.Stride+x] = v
		}
	}
	return nil
}

// runningMin writes dst[i] = min(src[i : i+k]) for every full window.
// len(dst) must be len(src)-k+1; left and right are scratch buffers of at
// least len(src).
func runningMin(dst, src []uint8, k int, left, right []uint8) {
	n := len(src)
	if k == 1 {
		copy(dst, src)
		return
	}

	// Prefix minima restart at every block of k samples.
	for i := 0; i < n; i++ {
		if i%k == 0 || src[i] < left[i-1] {
			left[i] = src[i]
		} else {
			left[i] = left[i-1]
		}
	}
	// Suffix minima restart at the end of every block.
	for i := n - 1; i >= 0; i-- {
		if i == n-1 || i%k == k-1 || src[i] < right[i+1] {
			right[i] = src[i]
		} else {
			right[i] = right[i+1]
		}
	}

	for i := range dst {
		a, b := right[i], left[i+k-1]
		if a < b {
			dst[i] = a
		} else {
			dst[i] = b
		}
	}
}
