// Package media normalizes uploaded images. A finalize submission may carry
// an image either as a multipart file part or as an inline base64 data-URL;
// both paths produce the same EmbeddedImage value so nothing downstream ever
// branches on the original representation.
package media

import (
	"encoding/base64"
	"fmt"
	"io"
	"mime/multipart"
	"strings"

	"vistoria-service/models"
)

// FromFilePart reads a multipart file part into an EmbeddedImage.
func FromFilePart(fh *multipart.FileHeader) (*models.EmbeddedImage, error) {
	if fh == nil {
		return nil, nil
	}
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %q: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %q: %w", fh.Filename, err)
	}

	return &models.EmbeddedImage{
		OriginalName: fh.Filename,
		MimeType:     fh.Header.Get("Content-Type"),
		Size:         int64(len(data)),
		Buffer:       base64.StdEncoding.EncodeToString(data),
	}, nil
}

// FromDataURL parses an inline "data:<mime>;base64,<payload>" string into an
// EmbeddedImage. Returns nil when the input is absent or not a data-URL; the
// caller decides whether that is an error.
//
// Size is estimated from the encoded payload length as ceil(len*3/4); the
// payload is stored as-is and never decoded here.
func FromDataURL(dataURL, fallbackName string) *models.EmbeddedImage {
	if !strings.HasPrefix(dataURL, "data:") {
		return nil
	}
	meta, payload, ok := strings.Cut(dataURL, ",")
	if !ok {
		return nil
	}

	mime := "image/png"
	if m := strings.TrimPrefix(meta, "data:"); m != "" {
		if i := strings.Index(m, ";"); i >= 0 {
			m = m[:i]
		}
		if m != "" {
			mime = m
		}
	}

	return &models.EmbeddedImage{
		OriginalName: fallbackName,
		MimeType:     mime,
		Size:         int64((len(payload)*3 + 3) / 4),
		Buffer:       payload,
	}
}
