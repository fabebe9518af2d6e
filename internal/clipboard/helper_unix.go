//go:build linux || freebsd || openbsd || netbsd || dragonfly

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"os/exec"

	"github.com/example/snapmark/internal/editor"
)

// Helper process fallbacks for when the in-process clipboard backend
// cannot be used. wl-copy serves Wayland sessions; xclip serves X11 with
// image/png first and image/bmp for consumers that reject PNG.

func isWayland() bool {
	return os.Getenv("WAYLAND_DISPLAY") != ""
}

// CopyImage places img on the clipboard, trying the in-process backend
// first and falling back to external helpers. It returns a short label
// describing which route succeeded.
func CopyImage(img image.Image) (string, error) {
	inline := WriteImage(img)
	if inline == nil {
		return "png", nil
	}

	pngData, err := editor.EncodePNG(img)
	if err != nil {
		return "", err
	}

	var errs []error
	errs = append(errs, inline)
	if isWayland() {
		if err := copyViaWlCopy(pngData); err == nil {
			return "wl-copy png", nil
		} else {
			errs = append(errs, err)
		}
	}
	if err := copyViaXclip("image/png", pngData); err == nil {
		return "xclip png", nil
	} else {
		errs = append(errs, err)
	}
	bmpData, err := editor.EncodeBMP(img)
	if err != nil {
		errs = append(errs, err)
	} else if err := copyViaXclip("image/bmp", bmpData); err == nil {
		return "xclip bmp", nil
	} else {
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

// copyViaWlCopy hands the data to wl-copy, which keeps serving the
// clipboard from its own process. The helper is left running; Wayland
// clipboards are lost when their owner exits.
func copyViaWlCopy(data []byte) error {
	cmd := exec.Command("wl-copy", "--type", "image/png", "--foreground")
	cmd.Stdin = bytes.NewReader(data)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("starting wl-copy: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

// copyViaXclip runs xclip, which forks itself to keep serving the
// selection, so Run returns once the data is handed over.
func copyViaXclip(mime string, data []byte) error {
	cmd := exec.Command("xclip", "-selection", "clipboard", "-t", mime, "-i")
	cmd.Stdin = bytes.NewReader(data)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("running xclip: %w", err)
	}
	return nil
}
