// Package imaging opens raster images for page composition: it decodes the
// common formats, turns embedded EXIF rotation into upright pixels, and
// re-encodes frames as baseline JPEG for embedding.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	// Register decoders for the formats the deck accepts.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ReencodeQuality is the JPEG quality used when an image is re-encoded for
// embedding. Part of the output contract; changing it changes output bytes.
const ReencodeQuality = 95

// Open decodes the image at path and applies any embedded EXIF rotation so
// the returned image displays upright. The file is fully read and released
// before returning; nothing is cached.
func Open(path string) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image %s: %w", path, err)
	}
	return NormalizeOrientation(img, readOrientation(data)), nil
}

// ToRGB converts img to a three-channel representation. Images already in an
// RGB-compatible model pass through unchanged.
func ToRGB(img image.Image) image.Image {
	switch img.(type) {
	case *image.NRGBA, *image.RGBA, *image.YCbCr:
		return img
	}
	b := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

// EncodeJPEG re-encodes img as three-channel baseline JPEG at
// ReencodeQuality.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, ToRGB(img), &jpeg.Options{Quality: ReencodeQuality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
