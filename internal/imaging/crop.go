package imaging

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/qr-locate/internal/detection"
)

// CropRegion extracts rect from img, optionally scaling it, and returns it as
// base64 PNG. Use it to inspect the overlay region of the source photograph.
//
// Parameters:
//   - img: Source image. rect is relative to img.Bounds().Min.
//   - rect: Region to extract. It must have positive width and height and lie
//     entirely inside the image.
//   - scale: Resize factor applied after cropping with Lanczos resampling.
//     Values of 1.0 or <= 0 leave the crop at its original size.
//
// Returns:
//   - *EncodedImage: The cropped region; Width and Height are the scaled size.
//   - error: Non-nil if rect is empty, out of bounds, or encoding fails.
//
// # Errors
//
//   - Returns error if rect has zero or negative width or height
//   - Returns error if rect extends outside the image bounds
func CropRegion(img image.Image, rect detection.Rect, scale float64) (*EncodedImage, error) {
	bounds := img.Bounds()
	r := rect.Bounds().Add(bounds.Min)

	if rect.Empty() {
		return nil, fmt.Errorf("invalid crop region: width and height must be positive")
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds %dx%d",
			rect.X, rect.Y, rect.X+rect.Width, rect.Y+rect.Height, bounds.Dx(), bounds.Dy())
	}

	cropped := imaging.Crop(img, r)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.Lanczos)
	}

	return EncodeBase64PNG(cropped)
}
