package classifier

import (
	"bytes"
	"errors"
	"image"

	// Register decoders for the formats the screening tool accepts.
	_ "image/jpeg"
	_ "image/png"
)

// ErrUnsupportedImage is returned when an upload is not a decodable
// JPEG or PNG.
var ErrUnsupportedImage = errors.New("unsupported or corrupt image")

var contentTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
}

// SniffImage checks that data decodes as a supported image format and
// returns its MIME content type. Only the header is decoded; the full
// pixel data is never materialized here.
func SniffImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", ErrUnsupportedImage
	}
	ct, ok := contentTypes[format]
	if !ok {
		return "", ErrUnsupportedImage
	}
	return ct, nil
}
