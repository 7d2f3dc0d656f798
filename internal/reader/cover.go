package reader

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// CoverThumbnail decodes the cover and scales it to fit within width x height,
// keeping its aspect ratio.
func CoverThumbnail(data []byte, width, height int) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("no cover image")
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover: %w", err)
	}
	if width < 1 || height < 1 {
		return img, nil
	}
	return imaging.Fit(img, width, height, imaging.Lanczos), nil
}
