package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/export"
	"github.com/example/snapmark/internal/theme"
	"github.com/example/snapmark/internal/ui"
)

// Indirection for tests.
var (
	captureScreenFn = capture.Screen
	captureRegionFn = capture.Region
	runEditorFn     = runEditor
)

type editCmd struct {
	mode          string
	display       string
	file          string
	output        string
	includeCursor bool
	*root
	fs *flag.FlagSet
}

func (e *editCmd) FlagSet() *flag.FlagSet {
	return e.fs
}

func parseEditCmd(args []string, r *root) (*editCmd, error) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	e := &editCmd{root: r, fs: fs}
	fs.Usage = usageFunc(e)
	saveDir := ""
	if r != nil && r.config != nil {
		saveDir = r.config.SaveDir
	}
	fs.StringVar(&e.mode, "mode", "screen", "capture mode: screen or region")
	fs.StringVar(&e.display, "display", "", "target monitor selector for screen captures (name, #N, or primary)")
	fs.StringVar(&e.file, "file", "", "annotate an existing PNG instead of capturing")
	fs.StringVar(&e.output, "output", saveDir, "file or directory the editor saves to")
	fs.BoolVar(&e.includeCursor, "include-cursor", false, "embed the cursor in the capture when supported")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	e.mode = strings.ToLower(strings.TrimSpace(e.mode))
	if e.file != "" {
		return e, nil
	}
	switch e.mode {
	case "screen", "region":
	default:
		return nil, &UsageError{of: e}
	}
	return e, nil
}

func (e *editCmd) Run() error {
	img, err := e.acquire()
	if err != nil {
		if errors.Is(err, capture.ErrCancelled) {
			fmt.Fprintln(os.Stderr, "capture cancelled")
			return nil
		}
		return fmt.Errorf("edit: capture %s: %w", e.mode, err)
	}
	if e.root != nil {
		e.root.notifyCapture(e.describe(), img)
	}
	return runEditorFn(e, img)
}

func (e *editCmd) acquire() (*image.RGBA, error) {
	opts := capture.Options{IncludeCursor: e.includeCursor}
	if e.file != "" {
		return loadPNGFile(e.file)
	}
	if e.mode == "region" {
		return captureRegionFn(opts)
	}
	return captureScreenFn(e.display, opts)
}

func (e *editCmd) describe() string {
	if e.file != "" {
		return filepath.Base(e.file)
	}
	if e.mode == "screen" && strings.TrimSpace(e.display) != "" {
		return fmt.Sprintf("screen %s", e.display)
	}
	return e.mode
}

func runEditor(e *editCmd, img *image.RGBA) error {
	r := e.root
	sinks := editor.Sinks{
		Copy: func(out *image.RGBA) (string, error) {
			detail, err := clipboard.CopyImage(out)
			if err == nil && r != nil {
				r.notifyCopy(detail)
			}
			return detail, err
		},
		Save: func(out *image.RGBA) (string, error) {
			path, err := export.SaveImage(out, e.output)
			if err == nil && r != nil {
				r.notifySave(path)
			}
			return path, err
		},
	}
	sess := editor.NewSession(img, sinks)
	applyEditorDefaults(sess, r)

	var th *theme.Theme
	if r != nil {
		th = r.activeTheme
	}
	app := ui.New(ui.WithSession(sess), ui.WithTheme(th), ui.WithTitle("SnapMark"))
	app.Run()
	return nil
}

// applyEditorDefaults seeds the session with the configured startup
// color, size, and tool.
func applyEditorDefaults(sess *editor.Session, r *root) {
	if r == nil || r.config == nil {
		return
	}
	ed := r.config.Editor
	if ed.Color != "" {
		if col, err := config.ParseColor(ed.Color); err == nil {
			sess.SetColor(col)
		}
	}
	if ed.Size > 0 {
		sess.SetSize(ed.Size)
	}
	if ed.Tool != "" {
		if t, ok := editor.ToolByName(ed.Tool); ok {
			sess.SetTool(t)
		}
	}
}

func loadPNGFile(path string) (*image.RGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba, nil
	}
	rgba := image.NewRGBA(img.Bounds())
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}
