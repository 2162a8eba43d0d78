package qrgen

import (
	"encoding/base64"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

// DataURL encodes text as a QR code and returns it as a base64 PNG data URL,
// ready to drop into an <img src>. Size is the edge length in pixels.
func DataURL(text string, size int) (string, error) {
	if size <= 0 {
		size = 256
	}
	png, err := qrcode.Encode(text, qrcode.Medium, size)
	if err != nil {
		return "", fmt.Errorf("failed to encode qr code: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
