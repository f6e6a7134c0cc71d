// Package tray dispatches tray menu actions. Actions arrive on a single
// channel and are handled one at a time, each to completion, by the only
// consumer of that channel.
package tray

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.uber.org/zap"

	"lanserve/internal/netloc"
	"lanserve/internal/platform"
	"lanserve/internal/server"
)

// ServerState reports the lifecycle state of the HTTP server.
type ServerState interface {
	State() server.State
}

// Options configures a Controller.
type Options struct {
	Platform platform.Platform
	Encoder  QREncoder
	Server   ServerState
	// Port is the local HTTP port used for the OpenApp URL.
	Port int
	// LAN is the address computed at startup. It is never re-read.
	LAN netloc.Address
	// QRPath is where ShowQR writes its image; relative to the working directory.
	QRPath string
	Logger *zap.Logger
}

// Controller handles menu actions.
type Controller struct {
	platform platform.Platform
	encoder  QREncoder
	server   ServerState
	localURL string
	lan      netloc.Address
	qrPath   string
	logger   *zap.Logger
	running  atomic.Bool
}

// New constructs a Controller. Platform and Encoder are required.
func New(opts Options) *Controller {
	if opts.Platform == nil || opts.Encoder == nil {
		panic("tray.New: platform and encoder are required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Controller{
		platform: opts.Platform,
		encoder:  opts.Encoder,
		server:   opts.Server,
		localURL: fmt.Sprintf("http://localhost:%d", opts.Port),
		lan:      opts.LAN,
		qrPath:   opts.QRPath,
		logger:   opts.Logger,
	}
}

// LocalURL is the address OpenApp opens.
func (c *Controller) LocalURL() string { return c.localURL }

// Running reports whether Run is currently consuming actions.
func (c *Controller) Running() bool { return c.running.Load() }

// Run consumes actions until Quit arrives or actions is closed, returning
// nil in both cases. A value received on failures ends the loop with that
// error; a closed failures channel is ignored. Cancelling ctx returns
// ctx.Err(). Actions still queued after Quit are not handled.
func (c *Controller) Run(ctx context.Context, actions <-chan Action, failures <-chan error) error {
	if !c.running.CompareAndSwap(false, true) {
		return fmt.Errorf("tray: Run already in progress")
	}
	defer c.running.Store(false)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case err, ok := <-failures:
			if !ok {
				failures = nil
				continue
			}
			return fmt.Errorf("server stopped: %w", err)

		case action, ok := <-actions:
			if !ok {
				return nil
			}
			if action == Quit {
				c.logger.Info("quit requested")
				return nil
			}
			c.handle(action)
		}
	}
}

// handle runs one action to completion. Failures are logged, never returned.
func (c *Controller) handle(action Action) {
	logger := c.logger.With(zap.Stringer("action", action))

	if c.server != nil {
		if st := c.server.State(); st != server.Running {
			logger.Warn("server not running, ignoring action", zap.Stringer("state", st))
			return
		}
	}

	switch action {
	case OpenApp:
		if err := c.platform.OpenURL(c.localURL); err != nil {
			logger.Error("failed to open browser", zap.Error(err))
		}

	case CopyURL:
		if !c.lan.Available() {
			logger.Warn("no LAN address available")
			return
		}
		if err := c.platform.CopyToClipboard(c.lan.URL()); err != nil {
			logger.Error("failed to copy to clipboard", zap.Error(err))
		}

	case ShowQR:
		if !c.lan.Available() {
			logger.Warn("no LAN address available")
			return
		}
		if err := c.encoder.WriteFile(c.lan.URL(), c.qrPath); err != nil {
			logger.Error("failed to write QR code", zap.String("path", c.qrPath), zap.Error(err))
			return
		}
		if err := c.platform.OpenURL(c.qrPath); err != nil {
			logger.Error("failed to open QR code", zap.String("path", c.qrPath), zap.Error(err))
		}

	default:
		logger.Warn("unknown action")
	}
}
