// Package device classifies the terminal as touch-primary or pointer-primary.
package device

import "os"

// Detector reports whether the session runs on a touch-primary device.
type Detector struct {
	// Force overrides detection when set.
	Force *bool
	// Getenv defaults to os.Getenv.
	Getenv func(string) string
}

// TouchPrimary implements game.DeviceDetector.
func (d Detector) TouchPrimary() bool {
	if d.Force != nil {
		return *d.Force
	}
	getenv := d.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	// Termux on Android is the common touch-only terminal.
	return getenv("TERMUX_VERSION") != ""
}
