package session

import (
	"encoding/base64"

	qrcode "github.com/skip2/go-qrcode"
)

const defaultQRSize = 256

// renderQR encodes a pairing payload as a PNG data URI.
func renderQR(data string, size int) (string, error) {
	if size <= 0 {
		size = defaultQRSize
	}

	png, err := qrcode.Encode(data, qrcode.Medium, size)
	if err != nil {
		return "", err
	}

	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}
