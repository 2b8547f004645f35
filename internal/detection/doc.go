// Package detection implements the edge-based pipeline used to locate a QR code
// in a photograph.
//
// The pipeline operates on grid.Grid values and runs strictly in sequence:
//
//  1. Greyscale: RGB channels -> luminance using ITU-R BT.601 weights
//     (0.299*R + 0.587*G + 0.114*B), rounded half-to-even
//
//  2. Gradients: 3x3 Sobel kernels for vertical and horizontal edges, each
//     response divided by 8 and made absolute. The edge magnitude is the sum
//     of both absolute responses (an L1 norm, not sqrt(v² + h²))
//
//  3. Smoothing: a 3x3 box average applied repeatedly (8 passes by default),
//     rounding every pass to 3 decimal places
//
//  4. Normalization: global min-max rescale to 0-255 with rounding
//
//  5. Thresholding: cells below the cutoff (70 by default) become 0, all
//     others 255
//
// # Border Policy
//
// Convolution stages never read outside the grid. They skip the outermost row
// and column on every side and leave those cells at 0. The zero border takes
// part in the global min/max of the normalization stage, so it must not be
// replaced with padded or clamped values.
//
// # Ownership
//
// Every stage allocates a fresh output grid and never modifies its input.
// Grids are safe to read concurrently once produced.
//
// # Rounding
//
// All rounding uses math.RoundToEven. Rounding to 3 decimals is computed as
// RoundToEven(v*1000)/1000.
package detection
