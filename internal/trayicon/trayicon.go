// Package trayicon supplies the tray icon image.
package trayicon

import (
	"bytes"
	_ "embed"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"go.uber.org/zap"
)

//go:embed tray_icon.png
var resource []byte

// Load returns PNG icon bytes. An override path, when set and readable as a
// PNG, wins over the embedded tray_icon.png; if neither decodes, a drawn
// glyph is used.
func Load(override string, logger *zap.Logger) []byte {
	if logger == nil {
		logger = zap.NewNop()
	}
	if override != "" {
		data, err := os.ReadFile(override)
		if err == nil && isPNG(data) {
			return data
		}
		logger.Warn("ignoring icon override", zap.String("path", override), zap.Error(err))
	}
	return pick(resource, logger)
}

func pick(embedded []byte, logger *zap.Logger) []byte {
	if isPNG(embedded) {
		return embedded
	}
	logger.Warn("embedded tray icon unreadable, drawing fallback")
	var buf bytes.Buffer
	if err := png.Encode(&buf, Draw()); err != nil {
		logger.Error("encoding fallback icon", zap.Error(err))
		return nil
	}
	return buf.Bytes()
}

func isPNG(data []byte) bool {
	_, err := png.DecodeConfig(bytes.NewReader(data))
	return err == nil
}

// Draw renders a 22x22 broadcast glyph: a filled centre dot inside two
// concentric rings. White on transparent with antialiased edges.
func Draw() *image.NRGBA {
	const size = 22
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			fx := float64(x) + 0.5
			fy := float64(y) + 0.5
			d := math.Hypot(fx-11.0, fy-11.0)

			// Centre dot (radius 3).
			alpha := edge(3.0-d, 0.8)
			// Inner ring (radius 6.5, 1.5 wide) and outer ring (radius 10, 1.5 wide).
			alpha = math.Max(alpha, edge(0.75-math.Abs(d-6.5), 0.8))
			alpha = math.Max(alpha, edge(0.75-math.Abs(d-10.0), 0.8))

			if alpha > 0 {
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: 255, A: uint8(math.Min(alpha, 1.0) * 255.0)})
			}
		}
	}
	return img
}

// edge maps a signed distance inside a shape to coverage, fading over width
// pixels outside it.
func edge(inside, width float64) float64 {
	if inside >= 0 {
		return 1.0
	}
	if inside > -width {
		return (width + inside) / width
	}
	return 0
}

// ICO wraps PNG bytes in a single-image ICO container. Windows accepts PNG
// payloads inside ICO files since Vista.
func ICO(pngData []byte) []byte {
	cfg, err := png.DecodeConfig(bytes.NewReader(pngData))
	if err != nil {
		return nil
	}
	// Dimensions of 256 and above are stored as 0.
	dim := func(v int) byte {
		if v >= 256 {
			return 0
		}
		return byte(v)
	}

	const headerSize, entrySize = 6, 16
	var buf bytes.Buffer
	buf.Grow(headerSize + entrySize + len(pngData))

	_ = binary.Write(&buf, binary.LittleEndian, [3]uint16{0, 1, 1}) // reserved, type icon, count
	buf.WriteByte(dim(cfg.Width))
	buf.WriteByte(dim(cfg.Height))
	buf.WriteByte(0) // palette size
	buf.WriteByte(0) // reserved
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))  // colour planes
	_ = binary.Write(&buf, binary.LittleEndian, uint16(32)) // bits per pixel
	_ = binary.Write(&buf, binary.LittleEndian, uint32(len(pngData)))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(headerSize+entrySize))
	buf.Write(pngData)
	return buf.Bytes()
}
