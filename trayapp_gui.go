//go:build !nogui

package main

import (
	"github.com/getlantern/systray"

	"lanserve/internal/tray"
)

// Run blocks the main thread in the native tray loop and returns the exit code.
func (a *App) Run() int {
	systray.Run(a.onReady, a.shutdown)
	return int(a.exitCode.Load())
}

func (a *App) onReady() {
	systray.SetIcon(a.icon)
	systray.SetTitle("lanserve")
	systray.SetTooltip(a.tooltip)

	items := make([]*systray.MenuItem, len(tray.Actions))
	for i, action := range tray.Actions {
		if action == tray.Quit {
			systray.AddSeparator()
		}
		items[i] = systray.AddMenuItem(action.Label(), action.Tooltip())
	}
	a.logger.Debug("menu built")

	go a.forwardClicks(items)
	go func() {
		a.dispatch()
		systray.Quit()
	}()
}

// forwardClicks passes menu clicks, in arrival order, onto the action channel.
func (a *App) forwardClicks(items []*systray.MenuItem) {
	for {
		select {
		case <-items[tray.OpenApp].ClickedCh:
			a.send(tray.OpenApp)
		case <-items[tray.CopyURL].ClickedCh:
			a.send(tray.CopyURL)
		case <-items[tray.ShowQR].ClickedCh:
			a.send(tray.ShowQR)
		case <-items[tray.Quit].ClickedCh:
			a.send(tray.Quit)
		case <-a.stopped:
			return
		}
	}
}
