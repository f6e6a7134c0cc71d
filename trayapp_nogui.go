//go:build nogui

package main

// Run drives the action loop on the main goroutine without a tray icon.
// Only SIGINT/SIGTERM produce actions, so the process serves until stopped.
func (a *App) Run() int {
	a.logger.Info("built without tray support, press Ctrl+C to stop")
	a.dispatch()
	a.shutdown()
	return int(a.exitCode.Load())
}
