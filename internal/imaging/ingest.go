package imaging

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxBytes bounds the decoded size of an item image.
const DefaultMaxBytes = 5 * 1024 * 1024

var (
	ErrTooLarge          = errors.New("image exceeds the maximum size")
	ErrUnsupportedFormat = errors.New("unsupported image format")
	ErrEmpty             = errors.New("image is empty")
)

// AllowedMIME lists the accepted image types, detected from content.
var AllowedMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// Ingest reads an uploaded image and returns it as an embeddable data URI.
// The declared content type of the upload is ignored; the format is sniffed.
func Ingest(r io.Reader, maxBytes int) (string, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	data, err := io.ReadAll(io.LimitReader(r, int64(maxBytes)+1))
	if err != nil {
		return "", fmt.Errorf("reading image data: %w", err)
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}
	if len(data) > maxBytes {
		return "", ErrTooLarge
	}

	detected := mimetype.Detect(data).String()
	if !AllowedMIME[detected] {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, detected)
	}

	return "data:" + detected + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

// PayloadSize returns the number of bytes an image reference occupies:
// the decoded payload of a data URI, or the length of any other reference.
func PayloadSize(image string) int {
	if len(image) < len(dataScheme) || !strings.EqualFold(image[:len(dataScheme)], dataScheme) {
		return len(image)
	}

	header, payload, found := strings.Cut(image, ",")
	if !found {
		return len(image)
	}

	if !hasFoldSuffix(header, ";base64") {
		return len(payload)
	}

	// line-wrapped base64 is still valid
	payload = strings.Join(strings.Fields(payload), "")
	payload = strings.TrimRight(payload, "=")
	return base64.RawStdEncoding.DecodedLen(len(payload))
}

const dataScheme = "data:"

func hasFoldSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
