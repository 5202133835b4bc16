package morph

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
)

var (
	// ErrInvalidIterations is returned when fewer than one pass is requested.
	ErrInvalidIterations = errors.New("iterations must be at least 1")

	// ErrNilInput is returned when the image or the kernel is nil.
	ErrNilInput = errors.New("image and kernel must not be nil")
)

// Option tunes how a pass is executed. Options never change the output.
type Option func(*options)

type options struct {
	workers int
	direct  bool
}

// WithWorkers splits the rows of each pass across n goroutines.
// Values below 2 run the pass on the calling goroutine.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithDirectScan forces the K² windowed scan even for rectangular kernels.
func WithDirectScan() Option {
	return func(o *options) {
		o.direct = true
	}
}

// ErodeBinary erodes a two-valued image.
//
// Binary erosion is the neighborhood minimum restricted to the {0, 255}
// domain, so it shares the grayscale primitive. Values outside that domain are
// not rejected; they are reduced like any other sample.
func ErodeBinary(img *image.Gray, k *Kernel, iterations int) (*image.Gray, error) {
	return ErodeBinaryContext(context.Background(), img, k, iterations)
}

// ErodeBinaryContext is ErodeBinary with cancellation and execution options.
func ErodeBinaryContext(ctx context.Context, img *image.Gray, k *Kernel, iterations int, opts ...Option) (*image.Gray, error) {
	return Erode(ctx, img, k, iterations, opts...)
}

// ErodeGrayscale erodes an image with arbitrary 8-bit intensities.
//
// Parameters:
//   - img: source image. It is not modified.
//   - k: structuring element.
//   - iterations: number of passes, at least 1.
//
// Returns:
//   - *image.Gray: a new image with bounds image.Rect(0, 0, W, H).
//   - error: ErrNilInput or ErrInvalidIterations.
//
// When k has no active cells every pass returns its input unchanged.
func ErodeGrayscale(img *image.Gray, k *Kernel, iterations int) (*image.Gray, error) {
	return ErodeGrayscaleContext(context.Background(), img, k, iterations)
}

// ErodeGrayscaleContext is ErodeGrayscale with cancellation and execution
// options.
func ErodeGrayscaleContext(ctx context.Context, img *image.Gray, k *Kernel, iterations int, opts ...Option) (*image.Gray, error) {
	return Erode(ctx, img, k, iterations, opts...)
}

// Erode runs iterations passes of the neighborhood-minimum filter.
//
// Each pass pads the previous pass's output with reflect-101 borders and takes,
// for every pixel, the minimum over the active kernel cells of the K×K window
// centered on it. Passes are strictly sequential. The context is checked
// between passes and between rows; on cancellation the context error is
// returned and no partial image is.
func Erode(ctx context.Context, img *image.Gray, k *Kernel, iterations int, opts ...Option) (*image.Gray, error) {
	if img == nil || k == nil {
		return nil, ErrNilInput
	}
	if iterations < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidIterations, iterations)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cur := clone(img)
	if k.ActiveCount() == 0 {
		return cur, nil
	}

	for i := 0; i < iterations; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := erodePass(ctx, cur, k, o)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}

// erodePass performs a single windowed pass over src, which must have a zero
// bounds origin.
func erodePass(ctx context.Context, src *image.Gray, k *Kernel, o options) (*image.Gray, error) {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return out, nil
	}

	padded := Pad(src, k.Radius())

	var band func(y0, y1 int) error
	if k.IsRectangle() && !o.direct {
		band = func(y0, y1 int) error {
			return separableBand(ctx, padded, out, k.Size(), y0, y1)
		}
	} else {
		offs := k.offsets()
		band = func(y0, y1 int) error {
			return directBand(ctx, padded, out, offs, y0, y1)
		}
	}

	workers := o.workers
	if workers > h {
		workers = h
	}
	if workers < 2 {
		if err := band(0, h); err != nil {
			return nil, err
		}
		return out, nil
	}

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	rows := (h + workers - 1) / workers
	for y0 := 0; y0 < h; y0 += rows {
		y1 := y0 + rows
		if y1 > h {
			y1 = h
		}
		wg.Add(1)
		go func(y0, y1 int) {
			defer wg.Done()
			if err := band(y0, y1); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(y0, y1)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return out, nil
}

// directBand computes output rows [y0, y1) by scanning every active cell of
// the window.
func directBand(ctx context.Context, padded, out *image.Gray, offs []cell, y0, y1 int) error {
	w := out.Rect.Dx()
	for y := y0; y < y1; y++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		for x := range row {
			m := uint8(255)
			for _, o := range offs {
				v := padded.Pix[(y+o.r)*padded.Stride+x+o.c]
				if v < m {
					m = v
					if m == 0 {
						break
					}
				}
			}
			row[x] = m
		}
	}
	return nil
}

// clone copies img into a new image with a zero bounds origin.
func clone(img *image.Gray) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], img.Pix[img.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}
