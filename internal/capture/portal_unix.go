//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"strings"

	"github.com/godbus/dbus/v5"
	"github.com/google/uuid"
)

var portalHandleToken = newPortalHandleToken

// portalScreenshot takes a screenshot through the xdg-desktop-portal
// Screenshot interface and waits for the Request.Response signal that
// carries the file URI.
func portalScreenshot(interactive bool, captureOpts Options) (*image.RGBA, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("dbus connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "dbus close: %v\n", cerr)
		}
	}()

	obj := conn.Object("org.freedesktop.portal.Desktop", "/org/freedesktop/portal/desktop")
	opts := portalScreenshotOptions(interactive, captureOpts)
	var handle dbus.ObjectPath
	call := obj.Call("org.freedesktop.portal.Screenshot.Screenshot", 0, "", opts)
	if call.Err != nil {
		return nil, fmt.Errorf("portal screenshot call: %w", call.Err)
	}
	if err := call.Store(&handle); err != nil {
		return nil, fmt.Errorf("portal screenshot response: %w", err)
	}

	sigc := make(chan *dbus.Signal, 1)
	conn.Signal(sigc)
	rule := fmt.Sprintf("type='signal',interface='org.freedesktop.portal.Request',member='Response',path='%s'", handle)
	if err := conn.BusObject().Call("org.freedesktop.DBus.AddMatch", 0, rule).Err; err != nil {
		return nil, fmt.Errorf("portal screenshot subscribe: %w", err)
	}
	defer conn.BusObject().Call("org.freedesktop.DBus.RemoveMatch", 0, rule)

	for sig := range sigc {
		if sig.Path != handle || sig.Name != "org.freedesktop.portal.Request.Response" {
			continue
		}
		if len(sig.Body) < 2 {
			break
		}
		if code, ok := sig.Body[0].(uint32); ok && code != 0 {
			if code == 1 {
				return nil, ErrCancelled
			}
			return nil, fmt.Errorf("portal screenshot: response code %d", code)
		}
		res, ok := sig.Body[1].(map[string]dbus.Variant)
		if !ok {
			break
		}
		uriVar, ok := res["uri"]
		if !ok {
			break
		}
		uri, _ := uriVar.Value().(string)
		path := strings.TrimPrefix(uri, "file://")
		img, err := loadPNG(path)
		if err != nil {
			return nil, fmt.Errorf("portal screenshot image: %w", err)
		}
		return img, nil
	}
	return nil, fmt.Errorf("portal screenshot: response missing image data")
}

// newPortalHandleToken builds a token usable as a request object path
// element, so only letters, digits and underscores.
func newPortalHandleToken() string {
	return "snapmark_" + strings.ReplaceAll(uuid.NewString(), "-", "_")
}

func portalScreenshotOptions(interactive bool, captureOpts Options) map[string]dbus.Variant {
	cursorMode := "hidden"
	if captureOpts.IncludeCursor {
		cursorMode = "embedded"
	}
	return map[string]dbus.Variant{
		"interactive":  dbus.MakeVariant(interactive),
		"handle_token": dbus.MakeVariant(portalHandleToken()),
		"modal":        dbus.MakeVariant(interactive),
		"cursor_mode":  dbus.MakeVariant(cursorMode),
	}
}

func loadPNG(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			fmt.Fprintf(os.Stderr, "close %s: %v\n", path, cerr)
		}
	}()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "remove %s: %v\n", path, err)
		}
	}() // best effort cleanup

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, image.Point{}, draw.Src)
	return rgba, nil
}
