//go:build windows

package trayicon

// ForPlatform converts PNG icon bytes to the format the tray expects.
func ForPlatform(pngData []byte) []byte { return ICO(pngData) }
