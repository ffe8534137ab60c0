package prompt

import (
	"github.com/skip2/go-qrcode"
)

// RenderQR draws the payment QR code with half-block characters.
func RenderQR(paymentURI string) (string, error) {
	q, err := qrcode.New(paymentURI, qrcode.Medium)
	if err != nil {
		return "", err
	}
	return q.ToSmallString(false), nil
}

// WriteQRPNG saves the payment QR code as a PNG, for printing or sharing.
func WriteQRPNG(paymentURI, path string) error {
	return qrcode.WriteFile(paymentURI, qrcode.Medium, 256, path)
}
