package storage

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"net/http"
	"os"

	// Register the decoders image.DecodeConfig probes dimensions with.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/atinyakov/BookmarkKeeper/internal/models"
)

// EncodeImageFile reads the file at path and returns the NewImage payload
// for it.
func EncodeImageFile(path string) (models.NewImage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.NewImage{}, fmt.Errorf("read image: %w", err)
	}
	return EncodeImage(data), nil
}

// EncodeImage builds the self-describing data-URI representation of raw
// image bytes: the content type is sniffed from the payload and prefixed
// onto the base64 encoding. Width and height are filled in when the format
// is one of png/jpeg/gif.
func EncodeImage(data []byte) models.NewImage {
	contentType := http.DetectContentType(data)

	img := models.NewImage{
		ImageURL:    "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		ContentType: contentType,
	}

	size := int64(len(data))
	img.SizeBytes = &size

	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		w, h := int64(cfg.Width), int64(cfg.Height)
		img.WidthPx, img.HeightPx = &w, &h
	}
	return img
}
