package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"github.com/anthonynsimon/bild/imgio"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/qr-locate/internal/detection"
	"github.com/ironsheep/qr-locate/internal/grid"
)

// Overlay defaults: a green outline 3 pixels wide.
const (
	DefaultOverlayColor     = "#00FF00"
	DefaultOverlayLineWidth = 3
)

// EncodedImage is an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// ParseColor parses a "#RRGGBB" or "#RGB" hex string into an opaque colour.
func ParseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid overlay color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// DrawOverlay returns a copy of img with the outline of rect painted on top.
//
// The outline is drawn inside rect with the given line width. Parts of the
// rectangle outside the image are clipped. An invalid colorHex falls back to
// DefaultOverlayColor and a non-positive lineWidth to
// DefaultOverlayLineWidth.
func DrawOverlay(img image.Image, rect detection.Rect, colorHex string, lineWidth int) *image.RGBA {
	bounds := img.Bounds()
	result := image.NewRGBA(bounds)
	draw.Draw(result, bounds, img, bounds.Min, draw.Src)

	if rect.Empty() {
		return result
	}

	c, err := ParseColor(colorHex)
	if err != nil {
		c, _ = ParseColor(DefaultOverlayColor)
	}
	if lineWidth <= 0 {
		lineWidth = DefaultOverlayLineWidth
	}

	outer := rect.Bounds().Add(bounds.Min)
	inner := outer.Inset(lineWidth)
	src := image.NewUniform(c)

	// Four bands: top, bottom, left, right.
	bands := []image.Rectangle{
		image.Rect(outer.Min.X, outer.Min.Y, outer.Max.X, inner.Min.Y),
		image.Rect(outer.Min.X, inner.Max.Y, outer.Max.X, outer.Max.Y),
		image.Rect(outer.Min.X, inner.Min.Y, inner.Min.X, inner.Max.Y),
		image.Rect(inner.Max.X, inner.Min.Y, outer.Max.X, inner.Max.Y),
	}
	for _, band := range bands {
		draw.Draw(result, band.Intersect(bounds), src, image.Point{}, draw.Src)
	}
	return result
}

// RenderOverlay converts g to greyscale and draws rect over it.
func RenderOverlay(g *grid.Grid, rect detection.Rect, colorHex string, lineWidth int) *image.RGBA {
	return DrawOverlay(ToGray(g), rect, colorHex, lineWidth)
}

// EncodeBase64PNG encodes img as a base64 PNG.
func EncodeBase64PNG(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// PNGSink writes the final grid with its overlay rectangle to a PNG file.
type PNGSink struct {
	Path      string
	Color     string
	LineWidth int
}

// Show implements detection.Sink.
func (s PNGSink) Show(g *grid.Grid, overlay detection.Rect) error {
	img := RenderOverlay(g, overlay, s.Color, s.LineWidth)
	if err := imgio.Save(s.Path, img, imgio.PNGEncoder()); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.Path, err)
	}
	return nil
}
