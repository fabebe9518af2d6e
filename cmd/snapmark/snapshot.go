package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/example/snapmark/internal/capture"
	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/export"
)

var captureScreenRectFn = capture.ScreenRect

// snapshotCmd captures without opening the editor.
type snapshotCmd struct {
	output        string
	stdout        bool
	toClipboard   bool
	mode          string
	display       string
	rect          string
	includeCursor bool
	shadow        bool
	shadowRadius  int
	shadowOffset  string
	shadowPoint   image.Point
	shadowOpacity float64
	*root
	fs *flag.FlagSet
}

func (s *snapshotCmd) FlagSet() *flag.FlagSet {
	return s.fs
}

func parseSnapshotCmd(args []string, r *root) (*snapshotCmd, error) {
	fs := flag.NewFlagSet("snapshot", flag.ExitOnError)
	s := &snapshotCmd{root: r, fs: fs}
	fs.Usage = usageFunc(s)
	defaults := export.DefaultShadowOptions()
	fs.StringVar(&s.output, "output", export.DefaultFileName, "write the capture to this file path")
	fs.StringVar(&s.mode, "mode", "", "capture mode: screen or region")
	fs.StringVar(&s.display, "display", "", "target monitor selector for screen captures")
	fs.StringVar(&s.rect, "rect", "", "capture rectangle x0,y0,x1,y1 when targeting a region")
	fs.BoolVar(&s.stdout, "stdout", false, "write PNG data to stdout")
	fs.BoolVar(&s.toClipboard, "to-clipboard", false, "copy the capture to the clipboard")
	fs.BoolVar(&s.includeCursor, "include-cursor", false, "embed the cursor in captures when supported")
	fs.BoolVar(&s.shadow, "shadow", false, "apply a drop shadow to the captured image")
	fs.IntVar(&s.shadowRadius, "shadow-radius", defaults.Radius, "drop shadow blur radius in pixels")
	fs.StringVar(&s.shadowOffset, "shadow-offset", formatOffset(defaults.Offset), "drop shadow offset as dx,dy")
	fs.Float64Var(&s.shadowOpacity, "shadow-opacity", defaults.Opacity, "drop shadow opacity between 0 and 1")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	pt, err := parseOffset(s.shadowOffset)
	if err != nil {
		return nil, err
	}
	s.shadowPoint = pt
	if s.toClipboard && s.stdout {
		return nil, fmt.Errorf("-stdout cannot be used with -to-clipboard")
	}
	operands := fs.Args()
	if strings.TrimSpace(s.mode) == "" {
		if len(operands) == 0 {
			return nil, &UsageError{of: s}
		}
		s.mode = strings.ToLower(strings.TrimSpace(operands[0]))
		operands = operands[1:]
	} else {
		s.mode = strings.ToLower(strings.TrimSpace(s.mode))
	}
	switch s.mode {
	case "screen", "region":
	default:
		return nil, &UsageError{of: s}
	}
	if len(operands) > 0 {
		arg := strings.TrimSpace(strings.Join(operands, " "))
		switch s.mode {
		case "screen":
			if s.display == "" {
				s.display = arg
			}
		case "region":
			if s.rect == "" {
				s.rect = arg
			}
		}
	}
	return s, nil
}

func (s *snapshotCmd) Run() error {
	img, err := s.capture()
	if err != nil {
		return fmt.Errorf("snapshot %s: %w", s.mode, err)
	}
	if s.shadow {
		img, _ = export.ApplyShadow(img, s.shadowOptions())
	}
	if s.root != nil {
		s.root.notifyCapture(s.describe(), img)
	}
	if s.toClipboard {
		detail, err := clipboard.CopyImage(img)
		if err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		if s.root != nil {
			s.root.notifyCopy(detail)
		}
		return nil
	}
	if s.stdout {
		return s.writeStdout(img, os.Stdout)
	}
	saved, err := export.SaveImage(img, s.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "saved %s\n", saved)
	if s.root != nil {
		s.root.notifySave(saved)
	}
	return nil
}

func (s *snapshotCmd) writeStdout(img *image.RGBA, w io.Writer) error {
	data, err := editor.EncodePNG(img)
	if err != nil {
		return fmt.Errorf("write PNG to stdout: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write PNG to stdout: %w", err)
	}
	fmt.Fprintln(os.Stderr, "wrote PNG data to stdout")
	return nil
}

func (s *snapshotCmd) capture() (*image.RGBA, error) {
	opts := capture.Options{IncludeCursor: s.includeCursor}
	switch s.mode {
	case "screen":
		return captureScreenFn(s.display, opts)
	case "region":
		if strings.TrimSpace(s.rect) == "" {
			return captureRegionFn(opts)
		}
		rect, err := parseRect(s.rect)
		if err != nil {
			return nil, err
		}
		return captureScreenRectFn(rect, opts)
	default:
		return nil, errors.New("unsupported capture mode")
	}
}

func (s *snapshotCmd) describe() string {
	switch s.mode {
	case "screen":
		if target := strings.TrimSpace(s.display); target != "" {
			return fmt.Sprintf("screen %s", target)
		}
	case "region":
		if region := strings.TrimSpace(s.rect); region != "" {
			return fmt.Sprintf("region %s", region)
		}
	}
	return s.mode
}

func (s *snapshotCmd) shadowOptions() export.ShadowOptions {
	opts := export.DefaultShadowOptions()
	if s.shadowRadius >= 0 {
		opts.Radius = s.shadowRadius
	} else {
		opts.Radius = 0
	}
	opts.Offset = s.shadowPoint
	switch {
	case s.shadowOpacity <= 0:
		opts.Opacity = 0
	case s.shadowOpacity >= 1:
		opts.Opacity = 1
	default:
		opts.Opacity = s.shadowOpacity
	}
	return opts
}

func parseOffset(val string) (image.Point, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 2 {
		return image.Point{}, fmt.Errorf("invalid offset %q", val)
	}
	vals := make([]int, 2)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Point{}, fmt.Errorf("invalid offset %q", val)
		}
		vals[i] = v
	}
	return image.Pt(vals[0], vals[1]), nil
}

func formatOffset(pt image.Point) string {
	return fmt.Sprintf("%d,%d", pt.X, pt.Y)
}

func parseRect(val string) (image.Rectangle, error) {
	parts := strings.Split(val, ",")
	if len(parts) != 4 {
		return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
	}
	nums := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return image.Rectangle{}, fmt.Errorf("invalid region %q", val)
		}
		nums[i] = v
	}
	rect := image.Rect(nums[0], nums[1], nums[2], nums[3])
	if rect.Empty() {
		return image.Rectangle{}, fmt.Errorf("region %q is empty", val)
	}
	return rect, nil
}
