package classifier

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	// Register the decoders the scoring endpoint accepts.
	_ "image/jpeg"
	_ "image/png"
)

// DecodeBase64Image decodes one scoring payload entry into an image. Both
// standard and URL-safe base64 alphabets are accepted.
func DecodeBase64Image(s string) (image.Image, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(s)
	}
	if err != nil {
		return nil, fmt.Errorf("decode base64 payload: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}
