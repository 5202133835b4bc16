package morph

import "image"

// Pad extends img by pad pixels on every side using reflect-101 mirroring.
//
// The result has bounds image.Rect(0, 0, W+2*pad, H+2*pad); padded pixel
// (x+pad, y+pad) holds source pixel (x, y) relative to img.Bounds().Min.
// The edge sample is never duplicated: the row [a b c d] padded by 2 becomes
// [c b a b c d c b]. Pads wider than the image keep folding until they land
// inside it.
func Pad(img *image.Gray, pad int) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := image.NewGray(image.Rect(0, 0, w+2*pad, h+2*pad))
	if w == 0 || h == 0 {
		return out
	}

	// Column lookup is shared by every row.
	cols := make([]int, w+2*pad)
	for x := range cols {
		cols[x] = reflectIndex(x-pad, w)
	}

	for y := 0; y < h+2*pad; y++ {
		sy := reflectIndex(y-pad, h)
		src := img.Pix[img.PixOffset(b.Min.X, b.Min.Y+sy):]
		dst := out.Pix[y*out.Stride : y*out.Stride+out.Rect.Dx()]
		for x, sx := range cols {
			dst[x] = src[sx]
		}
	}
	return out
}

// reflectIndex folds i into [0, n) by mirroring about the first and last
// sample without repeating them.
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	period := 2 * (n - 1)
	i %= period
	if i < 0 {
		i += period
	}
	if i >= n {
		i = period - i
	}
	return i
}
