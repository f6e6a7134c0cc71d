package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"lanserve/internal/config"
	"lanserve/internal/logging"
	"lanserve/internal/netloc"
	"lanserve/internal/platform"
	"lanserve/internal/server"
	"lanserve/internal/tray"
	"lanserve/internal/trayicon"
	"lanserve/web"
)

func main() {
	os.Exit(run())
}

func run() int {
	settings, settingsErr := config.Load(config.Path())

	logger, closeLog := newLogger(settings)
	defer closeLog()
	if settingsErr != nil {
		logger.Warn("settings partly ignored", zap.Error(settingsErr))
	}

	return serve(settings, platform.New(logger.Named("platform")), logger)
}

// serve starts the HTTP server and runs the tray until Quit. It returns the
// process exit code.
func serve(settings *config.Settings, desktop platform.Platform, logger *zap.Logger) int {
	content, err := web.Open(settings.ContentRoot)
	if err != nil {
		logger.Error("failed to open content", zap.Error(err))
		return 1
	}

	lan := netloc.Locate(settings.Port, logger.Named("netloc"))
	if lan.Available() {
		logger.Info("serving", zap.String("lan_url", lan.URL()))
	} else {
		logger.Warn("no LAN address found, Copy LAN URL and Show QR Code will do nothing")
	}

	srv := server.New(content, server.Options{
		Port:   settings.Port,
		Logger: logger.Named("http"),
	})
	if err := srv.Start(); err != nil {
		logger.Error("failed to start server", zap.Error(err))
		return 1
	}

	ctrl := tray.New(tray.Options{
		Platform: desktop,
		Encoder:  tray.PNGEncoder{Size: settings.QRSize},
		Server:   srv,
		Port:     settings.Port,
		LAN:      lan,
		QRPath:   settings.QRFile,
		Logger:   logger.Named("tray"),
	})

	app := NewApp(AppOptions{
		Controller: ctrl,
		Server:     srv,
		Logger:     logger,
		Icon:       trayicon.ForPlatform(trayicon.Load(settings.IconPath, logger)),
		Tooltip:    tooltip(lan, ctrl.LocalURL()),
	})
	return app.Run()
}

// tooltip names the LAN URL, or the local one when no LAN address exists.
func tooltip(lan netloc.Address, localURL string) string {
	if !lan.Available() {
		return "Serving at " + localURL + " (no LAN address)"
	}
	return "Serving at " + lan.URL()
}

func newLogger(settings *config.Settings) (*zap.Logger, func()) {
	opts := logging.Options{Level: settings.LogLevel}
	if settings.FileLogging() {
		opts.Dir = config.LogDir()
	}
	logger, closeFn, err := logging.New(opts)
	if err == nil {
		return logger, closeFn
	}
	fmt.Fprintf(os.Stderr, "[lanserve] logging: %v, using console at info level\n", err)
	logger, closeFn, err = logging.New(logging.Options{Level: config.DefaultLogLevel})
	if err != nil {
		return zap.NewNop(), func() {}
	}
	return logger, closeFn
}
