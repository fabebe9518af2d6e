package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

// Options tune how the capture providers take the screenshot.
type Options struct {
	// IncludeCursor embeds the pointer in the captured image.
	IncludeCursor bool
}

var (
	// ErrCancelled is returned when the user dismisses the portal dialog
	// without taking a screenshot.
	ErrCancelled = errors.New("capture cancelled")
	// ErrUnavailable is returned when no capture backend can serve the
	// request on this system.
	ErrUnavailable = errors.New("no capture backend available")

	errNoMonitors = errors.New("no monitors available")
)

// Indirection points for tests.
var (
	portalScreenshotFn = portalScreenshot
	x11ScreenshotFn    = x11Screenshot
	listMonitorsFn     = listMonitors
)

// Screen captures the full desktop. When a display selector is given the
// result is cropped to the matching monitor. The portal is tried first;
// on X11 sessions a direct root window grab serves as fallback.
func Screen(display string, opts Options) (*image.RGBA, error) {
	img, err := fullScreenshot(opts)
	if err != nil {
		return nil, err
	}
	if display == "" {
		return img, nil
	}
	monitors, err := listMonitorsFn()
	if err != nil {
		return nil, err
	}
	monitor, err := FindMonitor(monitors, display)
	if err != nil {
		return nil, err
	}
	return cropToRect(img, monitor.Rect)
}

// Region asks the portal to let the user pick a region interactively.
func Region(opts Options) (*image.RGBA, error) {
	return portalScreenshotFn(true, opts)
}

// ScreenRect captures a specific rectangle in global screen coordinates.
func ScreenRect(rect image.Rectangle, opts Options) (*image.RGBA, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("region is empty")
	}
	shot, err := fullScreenshot(opts)
	if err != nil {
		return nil, err
	}
	return cropToRect(shot, rect)
}

func fullScreenshot(opts Options) (*image.RGBA, error) {
	img, portalErr := portalScreenshotFn(false, opts)
	if portalErr == nil {
		return img, nil
	}
	if errors.Is(portalErr, ErrCancelled) {
		return nil, portalErr
	}
	if runningOnWayland() {
		// Wayland compositors do not allow direct framebuffer reads.
		return nil, portalErr
	}
	img, x11Err := x11ScreenshotFn()
	if x11Err != nil {
		return nil, fmt.Errorf("portal: %v; x11 grab: %w", portalErr, x11Err)
	}
	return img, nil
}

func cropToRect(src *image.RGBA, rect image.Rectangle) (*image.RGBA, error) {
	rect = rect.Intersect(src.Bounds())
	if rect.Empty() {
		return nil, fmt.Errorf("requested region outside captured image")
	}
	dst := image.NewRGBA(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	draw.Draw(dst, dst.Bounds(), src, rect.Min, draw.Src)
	return dst, nil
}
