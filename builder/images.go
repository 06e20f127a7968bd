package builder

import (
	"image"

	"classdeck/document"
	"classdeck/imaging"
)

// ImageFromFile loads the image at path, normalizes its orientation, and
// converts it to an embeddable *document.Image.
func ImageFromFile(path string) (*document.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, err
	}
	return FromImage(img)
}

// FromImage converts a decoded Go image to a *document.Image by re-encoding
// it as three-channel JPEG. The pixel data is not retained beyond the
// encoded stream.
func FromImage(src image.Image) (*document.Image, error) {
	data, err := imaging.EncodeJPEG(src)
	if err != nil {
		return nil, err
	}
	b := src.Bounds()
	return &document.Image{
		Width:            b.Dx(),
		Height:           b.Dy(),
		ColorSpace:       "DeviceRGB",
		BitsPerComponent: 8,
		Filter:           "DCTDecode",
		Data:             data,
	}, nil
}
