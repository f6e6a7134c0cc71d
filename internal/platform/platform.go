// Package platform opens URLs and files in the user's default viewer and
// writes text to the system clipboard.
package platform

import (
	"errors"
	"fmt"
	"os/exec"
	"slices"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"
)

// ErrNoClipboard is returned by CopyToClipboard when no clipboard utility
// was found on the host.
var ErrNoClipboard = errors.New("no clipboard utility available")

// Platform abstracts the OS-specific desktop operations.
type Platform interface {
	// OpenURL opens a URL or file path with the registered handler.
	OpenURL(target string) error
	CopyToClipboard(text string) error
}

// desktop implements Platform. The opener is started and not waited on; a
// reaper goroutine logs unsuccessful exits. Clipboard writes run in the
// background and only their failures are logged.
type desktop struct {
	opener      []string
	writeAll    func(text string) error
	unsupported bool
	logger      *zap.Logger
}

func newDesktop(opener []string, logger *zap.Logger) *desktop {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &desktop{
		opener:      opener,
		writeAll:    clipboard.WriteAll,
		unsupported: clipboard.Unsupported,
		logger:      logger,
	}
}

func (p *desktop) OpenURL(target string) error {
	argv := append(slices.Clone(p.opener), target)
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting %s: %w", argv[0], err)
	}
	go func() {
		if err := cmd.Wait(); err != nil {
			p.logger.Warn("external command failed",
				zap.String("command", argv[0]),
				zap.Error(err))
		}
	}()
	return nil
}

func (p *desktop) CopyToClipboard(text string) error {
	if p.unsupported {
		return ErrNoClipboard
	}
	go func() {
		if err := p.writeAll(text); err != nil {
			p.logger.Warn("clipboard write failed", zap.Error(err))
		}
	}()
	return nil
}
