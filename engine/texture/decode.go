package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/Carmen-Shannon/oxy-pano/common"
	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension is the largest texture edge uploaded without scaling.
// It matches the maxTextureDimension2D limit requested from the device.
const DefaultMaxDimension = 8192

// DecodeFile opens and decodes an image file into RGBA staging data.
// Supported formats: JPEG, PNG, GIF (first frame), WebP, BMP and TIFF.
//
// Parameters:
//   - path: file path of the image
//   - maxDim: largest allowed width or height; larger images are scaled down preserving aspect. 0 disables scaling
//
// Returns:
//   - *common.TextureStagingData: decoded RGBA pixels
//   - error: error if the file cannot be opened or decoded
func DecodeFile(path string, maxDim int) (*common.TextureStagingData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file %s: %w", path, err)
	}
	defer file.Close()

	data, err := Decode(file, maxDim)
	if err != nil {
		return nil, fmt.Errorf("failed to decode texture file %s: %w", path, err)
	}
	return data, nil
}

// DecodeBytes decodes an in-memory encoded image.
//
// Parameters:
//   - data: encoded image bytes
//   - maxDim: largest allowed width or height, 0 disables scaling
//
// Returns:
//   - *common.TextureStagingData: decoded RGBA pixels
//   - error: error if decoding fails
func DecodeBytes(data []byte, maxDim int) (*common.TextureStagingData, error) {
	return Decode(bytes.NewReader(data), maxDim)
}

// Decode reads an encoded image from r.
//
// Parameters:
//   - r: reader over encoded image bytes
//   - maxDim: largest allowed width or height, 0 disables scaling
//
// Returns:
//   - *common.TextureStagingData: decoded RGBA pixels
//   - error: error if decoding fails
func Decode(r io.Reader, maxDim int) (*common.TextureStagingData, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return ToStaging(img, maxDim)
}

// ToStaging converts any image to tightly packed RGBA, scaling it down when
// either edge exceeds maxDim.
//
// Parameters:
//   - img: source image
//   - maxDim: largest allowed width or height, 0 disables scaling
//
// Returns:
//   - *common.TextureStagingData: RGBA pixels with origin at (0, 0)
//   - error: error if the image is empty
func ToStaging(img image.Image, maxDim int) (*common.TextureStagingData, error) {
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	w, h := FitWithin(bounds.Dx(), bounds.Dy(), maxDim)
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	if w == bounds.Dx() && h == bounds.Dy() {
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	} else {
		draw.CatmullRom.Scale(rgba, rgba.Bounds(), img, bounds, draw.Src, nil)
	}

	return &common.TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(w),
		Height: uint32(h),
	}, nil
}

// FitWithin returns w and h scaled so that neither exceeds maxDim, keeping the
// aspect ratio. Dimensions never drop below 1.
func FitWithin(w, h, maxDim int) (int, int) {
	if maxDim <= 0 || (w <= maxDim && h <= maxDim) {
		return w, h
	}
	if w >= h {
		return maxDim, max(1, h*maxDim/w)
	}
	return max(1, w*maxDim/h), maxDim
}
