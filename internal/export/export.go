// Package export writes composed images to disk.
package export

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/example/snapmark/internal/editor"
)

// DefaultFileName is used when the caller supplies a directory or
// nothing at all.
const DefaultFileName = "snapmark.png"

// SaveImage writes img to path, creating parent directories as needed.
// The format follows the extension: .bmp writes BMP, anything else PNG.
// It returns the path actually written.
func SaveImage(img image.Image, path string) (string, error) {
	if path == "" {
		path = DefaultFileName
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, DefaultFileName)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".bmp") {
		data, err = editor.EncodeBMP(img)
	} else {
		data, err = editor.EncodePNG(img)
	}
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

// TimestampedName returns a capture file name like
// snapmark-20260830-151405.png inside dir.
func TimestampedName(dir string) string {
	name := fmt.Sprintf("snapmark-%s.png", time.Now().Format("20060102-150405"))
	if dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}
