// Package media converts stored binary image payloads to and from the
// data-URL form used at the API boundary.
package media

import (
	"encoding/base64"
	"errors"
	"strings"
)

const base64Marker = ";base64,"

var ErrMissingInput = errors.New("image data and content type are required")

// Encode renders a binary payload and its MIME type as a self-describing
// data URL usable directly as an image source. Both inputs are required;
// callers check presence first and emit null for records without an image.
// The content type is trusted as supplied by the uploading client.
func Encode(data []byte, contentType string) (string, error) {
	if len(data) == 0 || contentType == "" {
		return "", ErrMissingInput
	}
	return "data:" + contentType + base64Marker + base64.StdEncoding.EncodeToString(data), nil
}

// Decode is the inverse of Encode. A leading "data:<type>;base64," prefix
// is stripped if present, so both bare base64 strings and full data URLs
// are accepted.
func Decode(s string) ([]byte, error) {
	if s == "" {
		return nil, errors.New("empty image payload")
	}
	if strings.HasPrefix(s, "data:") {
		if i := strings.Index(s, base64Marker); i >= 0 {
			s = s[i+len(base64Marker):]
		}
	}
	return base64.StdEncoding.DecodeString(s)
}
