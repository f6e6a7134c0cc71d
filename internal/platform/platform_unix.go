//go:build !darwin && !windows

package platform

import "go.uber.org/zap"

// New returns the freedesktop implementation. URLs and files open with
// xdg-open.
func New(logger *zap.Logger) Platform {
	return newDesktop([]string{"xdg-open"}, logger)
}
