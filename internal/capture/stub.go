//go:build !(linux || freebsd || openbsd || netbsd || dragonfly)

package capture

import "image"

func portalScreenshot(bool, Options) (*image.RGBA, error) {
	return nil, ErrUnavailable
}

func x11Screenshot() (*image.RGBA, error) {
	return nil, ErrUnavailable
}

func listMonitors() ([]MonitorInfo, error) {
	return nil, ErrUnavailable
}

func runningOnWayland() bool { return false }
