//go:build darwin && !nogui

package main

import "runtime"

// The status bar item and its run loop belong to the process's main thread.
func init() {
	runtime.LockOSThread()
}
