// Package imaging provides the image plumbing around the erosion engine.
//
// It decodes source files (with EXIF orientation applied) into a shared
// cache, reduces color sources to a single gray channel, thresholds them for
// binary erosion, crops regions of interest, measures results, and encodes
// or saves outputs. It also keeps the session history of erosion results.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based, with (0,0) at the
// top-left corner. For regions, (x1,y1) is inclusive and (x2,y2) is exclusive.
//
// # Gray Conversion
//
// Two reductions are available:
//   - bt601: luma weights 0.299 R + 0.587 G + 0.114 B
//   - lab: CIE L* lightness scaled to 0-255
//
// Inputs that are already *image.Gray are copied unchanged.
//
// # Thread Safety
//
// ImageCache and ResultHistory are safe for concurrent use. The remaining
// functions are stateless and never mutate their inputs.
//
// # Performance Considerations
//
// Large images may consume significant memory when cached. Use Evict() or
// Clear() to manage memory for long-running processes.
package imaging
