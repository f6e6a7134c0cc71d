//go:build darwin

package platform

import "go.uber.org/zap"

// New returns the macOS implementation.
func New(logger *zap.Logger) Platform {
	return newDesktop([]string{"open"}, logger)
}
