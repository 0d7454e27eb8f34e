// Package scale computes responsive design values across viewport
// breakpoints.
//
// A Config names a set of breakpoints and designates one of them as the
// base. Every other breakpoint relates to the base through a precomputed
// scalar ratio derived from a configurable origin dimension (width, height,
// min, max, diagonal, or area). Scaling a value multiplies it by that ratio
// and, when a token rule applies, runs the result through a fixed pipeline:
// scale factor, curve, min/max clamp, step quantization, precision rounding.
//
// The Engine memoizes results per (value, breakpoint, options) tuple and
// keeps running performance metrics. It is safe for concurrent use.
package scale
