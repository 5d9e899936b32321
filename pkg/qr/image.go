package qr

import (
	"bytes"
	"encoding/base64"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"
)

const imageSize = 512

// RenderPNGBase64 renders url as a QR code PNG and returns it base64-encoded.
// Rendering depends only on the input URL, so the result is cacheable.
func RenderPNGBase64(url string) (string, error) {
	code, err := qr.Encode(url, qr.M, qr.Auto)
	if err != nil {
		return "", err
	}

	scaled, err := barcode.Scale(code, imageSize, imageSize)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
