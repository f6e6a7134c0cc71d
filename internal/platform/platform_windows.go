//go:build windows

package platform

import "go.uber.org/zap"

// New returns the Windows implementation. The URL protocol handler opens
// both URLs and file paths.
func New(logger *zap.Logger) Platform {
	return newDesktop([]string{"rundll32", "url.dll,FileProtocolHandler"}, logger)
}
