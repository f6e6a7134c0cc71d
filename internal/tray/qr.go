package tray

import (
	"github.com/skip2/go-qrcode"
)

// QREncoder renders content as a QR code image file.
type QREncoder interface {
	WriteFile(content, path string) error
}

// PNGEncoder writes square PNG QR codes with medium error correction.
type PNGEncoder struct {
	Size int // pixels per side
}

func (e PNGEncoder) WriteFile(content, path string) error {
	return qrcode.WriteFile(content, qrcode.Medium, e.Size, path)
}
