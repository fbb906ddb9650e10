package storage

import (
	"encoding/base64"
	"errors"
	"strings"
)

var ErrInvalidBase64Image = errors.New("invalid base64 image")

// DecodeBase64Image accepts either a bare base64 payload or a data URI
// such as "data:image/png;base64,iVBORw0...".
func DecodeBase64Image(encoded string) ([]byte, error) {
	encoded = strings.TrimSpace(encoded)
	if encoded == "" {
		return nil, ErrInvalidBase64Image
	}

	if strings.HasPrefix(encoded, "data:") {
		header, payload, found := strings.Cut(encoded, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, ErrInvalidBase64Image
		}
		encoded = payload
	}

	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrInvalidBase64Image
	}
	if len(data) == 0 {
		return nil, ErrInvalidBase64Image
	}
	return data, nil
}
