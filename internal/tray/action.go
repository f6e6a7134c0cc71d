package tray

import "fmt"

// Action is a menu entry the user can trigger.
type Action int

const (
	OpenApp Action = iota
	CopyURL
	ShowQR
	Quit
)

// Actions lists every action in menu order.
var Actions = []Action{OpenApp, CopyURL, ShowQR, Quit}

// Label is the menu entry text.
func (a Action) Label() string {
	switch a {
	case OpenApp:
		return "Open App"
	case CopyURL:
		return "Copy LAN URL"
	case ShowQR:
		return "Show QR Code"
	case Quit:
		return "Quit"
	}
	return ""
}

// Tooltip is the hover text for the menu entry.
func (a Action) Tooltip() string {
	switch a {
	case OpenApp:
		return "Open in browser"
	case CopyURL:
		return "Copy link to clipboard"
	case ShowQR:
		return "Open QR code for phone"
	case Quit:
		return "Stop the server"
	}
	return ""
}

func (a Action) String() string {
	switch a {
	case OpenApp:
		return "open-app"
	case CopyURL:
		return "copy-url"
	case ShowQR:
		return "show-qr"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("Action(%d)", int(a))
}
