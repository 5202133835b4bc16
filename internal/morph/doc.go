// Package morph implements morphological erosion over 8-bit grayscale images.
//
// Erosion replaces every pixel with the minimum sample found under the active
// cells of a structuring element (kernel) centered on it. Bright regions shrink,
// dark regions grow. Binary images are handled by the same neighborhood-minimum
// primitive; for inputs restricted to {0, 255} the result is the classic
// "all active neighbors must be foreground" rule.
//
// # Kernels
//
// Kernels are square K×K boolean grids with K odd. BuildKernel produces the
// three canonical shapes:
//   - Rectangle: every cell active
//   - Cross: center row and center column
//   - Ellipse: cells inside the ellipse inscribed in the K×K box
//
// Custom kernels can be built with NewKernel. A kernel without active cells is
// representable but invalid; Validate reports ErrInvalidKernel and the erosion
// functions fall back to copying the input.
//
// # Borders
//
// Images are padded by (K-1)/2 pixels on every side using reflect-101
// mirroring: the edge sample is not repeated, so the row [a b c d] padded by 2
// becomes [c b | a b c d | c b].
//
// # Iterations
//
// Applying N iterations runs the single pass N times, each pass consuming the
// full output of the previous one with freshly computed padding.
//
// # Thread Safety
//
// All functions are stateless and never mutate their inputs. Each call
// allocates its own padded and output buffers, so concurrent calls are safe.
package morph
