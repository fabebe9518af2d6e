package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/editor"
)

func stubCapture(t *testing.T, img *image.RGBA, err error) {
	t.Helper()
	origScreen := captureScreenFn
	origRegion := captureRegionFn
	origRect := captureScreenRectFn
	captureScreenFn = func(string, capture.Options) (*image.RGBA, error) { return img, err }
	captureRegionFn = func(capture.Options) (*image.RGBA, error) { return img, err }
	captureScreenRectFn = func(image.Rectangle, capture.Options) (*image.RGBA, error) { return img, err }
	t.Cleanup(func() {
		captureScreenFn = origScreen
		captureRegionFn = origRegion
		captureScreenRectFn = origRect
	})
}

func testImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for i := range img.Pix {
		img.Pix[i] = 0xFF
	}
	return img
}

func containsAll(haystack string, needles []string) bool {
	for _, needle := range needles {
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

func TestSnapshotRunCaptureError(t *testing.T) {
	stubCapture(t, nil, errors.New("portal offline"))
	cmd := &snapshotCmd{mode: "screen", stdout: true}
	err := cmd.Run()
	if err == nil || !containsAll(err.Error(), []string{"snapshot screen", "portal offline"}) {
		t.Fatalf("expected wrapped capture error, got %v", err)
	}
}

func TestSnapshotStdoutWritesPNG(t *testing.T) {
	stubCapture(t, testImage(), nil)
	cmd := &snapshotCmd{mode: "screen"}
	var buf bytes.Buffer
	if err := cmd.writeStdout(testImage(), &buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG\r\n\x1a\n")) {
		t.Fatal("stdout output is not PNG")
	}
}

func TestSnapshotSavesFile(t *testing.T) {
	stubCapture(t, testImage(), nil)
	out := filepath.Join(t.TempDir(), "shot.png")
	cmd := &snapshotCmd{mode: "screen", output: out}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestParseSnapshotCmdModeOperand(t *testing.T) {
	cmd, err := parseSnapshotCmd([]string{"region", "0,0,10,10"}, &root{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cmd.mode != "region" || cmd.rect != "0,0,10,10" {
		t.Fatalf("mode=%q rect=%q", cmd.mode, cmd.rect)
	}
}

func TestParseSnapshotCmdRejectsStdoutClipboard(t *testing.T) {
	if _, err := parseSnapshotCmd([]string{"-stdout", "-to-clipboard", "screen"}, &root{}); err == nil {
		t.Fatal("expected conflict error")
	}
}

func TestParseRect(t *testing.T) {
	r, err := parseRect("10, 20, 30, 40")
	if err != nil {
		t.Fatal(err)
	}
	if r != image.Rect(10, 20, 30, 40) {
		t.Fatalf("rect = %v", r)
	}
	if _, err := parseRect("1,2,3"); err == nil {
		t.Fatal("expected error for short rect")
	}
	if _, err := parseRect("0,0,0,0"); err == nil {
		t.Fatal("expected error for empty rect")
	}
}

func TestEditRunCaptureError(t *testing.T) {
	stubCapture(t, nil, errors.New("dbus busy"))
	cmd := &editCmd{mode: "screen", root: &root{}}
	err := cmd.Run()
	if err == nil || !containsAll(err.Error(), []string{"edit: capture screen", "dbus busy"}) {
		t.Fatalf("expected edit capture error, got %v", err)
	}
}

func TestEditRunCancelledIsNotAnError(t *testing.T) {
	stubCapture(t, nil, capture.ErrCancelled)
	cmd := &editCmd{mode: "region", root: &root{}}
	if err := cmd.Run(); err != nil {
		t.Fatalf("cancelled capture should not error, got %v", err)
	}
}

func TestEditRunReachesEditor(t *testing.T) {
	stubCapture(t, testImage(), nil)
	orig := runEditorFn
	var got *image.RGBA
	runEditorFn = func(e *editCmd, img *image.RGBA) error {
		got = img
		return nil
	}
	t.Cleanup(func() { runEditorFn = orig })

	cmd := &editCmd{mode: "screen", root: &root{}}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if got == nil || got.Bounds().Dx() != 8 {
		t.Fatalf("editor did not receive the capture: %v", got)
	}
}

func TestEditOpenMissingFile(t *testing.T) {
	cmd := &editCmd{file: "missing.png", root: &root{}}
	err := cmd.Run()
	if err == nil || !strings.Contains(err.Error(), "missing.png") {
		t.Fatalf("expected open error context, got %v", err)
	}
}

func TestShadowOptionsClamp(t *testing.T) {
	cmd := &snapshotCmd{shadowRadius: -4, shadowOpacity: 3}
	opts := cmd.shadowOptions()
	if opts.Radius != 0 {
		t.Errorf("radius = %d, want 0", opts.Radius)
	}
	if opts.Opacity != 1 {
		t.Errorf("opacity = %g, want 1", opts.Opacity)
	}
}

func TestApplyEditorDefaults(t *testing.T) {
	cfg := config.New()
	cfg.Editor.Color = "#00FF00"
	cfg.Editor.Size = 5
	cfg.Editor.Tool = "arrow"
	r := &root{config: cfg}

	sess := editor.NewSession(testImage(), editor.Sinks{})
	applyEditorDefaults(sess, r)
	if got := sess.Color(); got != (color.RGBA{0, 255, 0, 255}) {
		t.Errorf("color = %v", got)
	}
	if sess.Size() != 5 {
		t.Errorf("size = %g", sess.Size())
	}
	if sess.Tool() != editor.ToolArrow {
		t.Errorf("tool = %v", sess.Tool())
	}
}

func TestApplyEditorDefaultsIgnoresBadValues(t *testing.T) {
	cfg := config.New()
	cfg.Editor.Color = "green"
	cfg.Editor.Tool = "laser"
	r := &root{config: cfg}

	sess := editor.NewSession(testImage(), editor.Sinks{})
	before := sess.Color()
	applyEditorDefaults(sess, r)
	if sess.Color() != before {
		t.Errorf("invalid color applied: %v", sess.Color())
	}
	if sess.Tool() != editor.ToolSelect {
		t.Errorf("invalid tool applied: %v", sess.Tool())
	}
}
