package main

import (
	"context"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"go.uber.org/zap"

	"lanserve/internal/tray"
)

const shutdownTimeout = 5 * time.Second

// service is the part of the HTTP server the app drives.
type service interface {
	Done() <-chan error
	Shutdown(ctx context.Context) error
}

// AppOptions configures an App.
type AppOptions struct {
	Controller *tray.Controller
	Server     service
	Logger     *zap.Logger
	Icon       []byte
	Tooltip    string
}

// App hosts the tray controller. Menu clicks and OS signals are funnelled
// into one ordered action channel that only the controller reads.
type App struct {
	ctrl    *tray.Controller
	srv     service
	logger  *zap.Logger
	icon    []byte
	tooltip string

	actions  chan tray.Action
	stopped  chan struct{}
	exitCode atomic.Int32
}

// NewApp wires a controller to the server it fronts.
func NewApp(opts AppOptions) *App {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &App{
		ctrl:    opts.Controller,
		srv:     opts.Server,
		logger:  opts.Logger,
		icon:    opts.Icon,
		tooltip: opts.Tooltip,
		actions: make(chan tray.Action),
		stopped: make(chan struct{}),
	}
}

// send queues an action unless the dispatch loop has already finished.
func (a *App) send(action tray.Action) {
	select {
	case a.actions <- action:
	case <-a.stopped:
	}
}

// dispatch runs the controller until Quit or a server failure, then closes
// stopped so producers stop sending. Signals are subscribed before the
// controller starts consuming.
func (a *App) dispatch() {
	defer close(a.stopped)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go a.forwardSignals(sigCh)

	a.logger.Info("entering action loop", zap.String("local_url", a.ctrl.LocalURL()))
	if err := a.ctrl.Run(context.Background(), a.actions, a.srv.Done()); err != nil {
		a.logger.Error("action loop ended", zap.Error(err))
		a.exitCode.Store(1)
	}
}

// forwardSignals turns the first SIGINT/SIGTERM into a Quit action.
func (a *App) forwardSignals(sigCh <-chan os.Signal) {
	select {
	case sig := <-sigCh:
		a.logger.Info("received signal", zap.Stringer("signal", sig))
		a.send(tray.Quit)
	case <-a.stopped:
	}
}

func (a *App) shutdown() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(ctx); err != nil {
		a.logger.Warn("server shutdown", zap.Error(err))
	}
	a.logger.Info("stopped")
}
