// Package imaging connects the detection pipeline to real image files.
//
// It is the boundary between image.Image values and the grid.Grid values the
// pipeline works on:
//
//   - Source side: ImageCache decodes PNG, JPEG and GIF files (applying EXIF
//     orientation) and SplitChannels turns an image into 8-bit red, green and
//     blue grids.
//   - Sink side: ToGray converts a grid back into an 8-bit greyscale image,
//     DrawOverlay paints the region-of-interest rectangle, and PNGSink and
//     FigureSink write the result to disk.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Grid cell (y, x) maps to
// image pixel (x, y) relative to the image bounds' minimum point.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The conversion and drawing functions
// are stateless and always allocate new images.
package imaging
