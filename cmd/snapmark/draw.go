package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
	"os"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/example/snapmark/internal/clipboard"
	"github.com/example/snapmark/internal/config"
	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/export"
)

// drawCmd stamps one annotation onto an image without opening the
// editor, so shell scripts can mark up captures.
type drawCmd struct {
	file          string
	output        string
	fromClipboard bool
	toClipboard   bool
	colorSpec     string
	color         color.RGBA
	size          float64
	shape         editor.Shape
	*root
	fs *flag.FlagSet
}

func (d *drawCmd) FlagSet() *flag.FlagSet { return d.fs }

// parseShapeColor accepts SVG color names alongside hex values.
func parseShapeColor(s string) (color.RGBA, error) {
	spec := strings.ToLower(strings.TrimSpace(s))
	if spec == "" {
		return color.RGBA{}, fmt.Errorf("color cannot be empty")
	}
	if c, ok := colornames.Map[spec]; ok {
		return c, nil
	}
	return config.ParseColor(spec)
}

func parseDrawCmd(args []string, r *root) (*drawCmd, error) {
	fs := flag.NewFlagSet("draw", flag.ExitOnError)
	d := &drawCmd{root: r, fs: fs}
	fs.Usage = usageFunc(d)
	fs.StringVar(&d.file, "file", "", "input PNG file")
	fs.StringVar(&d.output, "output", "", "output file path (defaults to the input file)")
	fs.BoolVar(&d.fromClipboard, "from-clipboard", false, "read the input image from the clipboard")
	fs.BoolVar(&d.toClipboard, "to-clipboard", false, "copy the result to the clipboard")
	fs.StringVar(&d.colorSpec, "color", "red", "stroke color name or #RRGGBB value")
	fs.Float64Var(&d.size, "size", 3, "stroke width in pixels")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	operands := fs.Args()
	if len(operands) < 1 {
		return nil, &UsageError{of: d}
	}
	col, err := parseShapeColor(d.colorSpec)
	if err != nil {
		return nil, err
	}
	d.color = col
	if d.size < 1 {
		d.size = 1
	}
	if d.shape, err = d.buildShape(strings.ToLower(operands[0]), operands[1:]); err != nil {
		return nil, err
	}

	if d.fromClipboard {
		if d.output == "" {
			d.output = d.file
		}
	} else {
		if d.file == "" {
			return nil, fmt.Errorf("input file is required")
		}
		if d.output == "" {
			d.output = d.file
		}
	}
	if d.output == "" && !d.toClipboard {
		return nil, fmt.Errorf("output file is required when reading from the clipboard")
	}
	return d, nil
}

// buildShape maps a shape word and its operands onto a committed
// annotation in image coordinates.
func (d *drawCmd) buildShape(kind string, args []string) (editor.Shape, error) {
	pt := func(v []int, i int) editor.Point {
		return editor.Pt(float64(v[2*i]), float64(v[2*i+1]))
	}
	switch kind {
	case "line", "arrow", "box", "circle":
		v, err := expectInts(args, 4, kind)
		if err != nil {
			return nil, err
		}
		a, b := pt(v, 0), pt(v, 1)
		switch kind {
		case "line":
			return &editor.Line{Start: a, End: b, Color: d.color, Size: d.size}, nil
		case "arrow":
			return &editor.Arrow{Start: a, End: b, Color: d.color, Size: d.size}, nil
		case "box":
			return &editor.Box{Start: a, End: b, Color: d.color, Size: d.size}, nil
		default:
			return &editor.Circle{Start: a, End: b, Color: d.color, Size: d.size}, nil
		}
	case "count":
		v, err := expectInts(args, 3, kind)
		if err != nil {
			return nil, err
		}
		center := pt(v, 0)
		return &editor.CircleCount{
			Center: center, Pointer: center,
			Color: d.color, Size: d.size, Count: v[2],
		}, nil
	case "text":
		if len(args) < 3 {
			return nil, fmt.Errorf("text requires x y and content")
		}
		v, err := expectInts(args[:2], 2, kind)
		if err != nil {
			return nil, err
		}
		content := strings.Join(args[2:], " ")
		if strings.TrimSpace(content) == "" {
			return nil, fmt.Errorf("text content cannot be empty")
		}
		size := d.size
		if size < 8 {
			size = 8
		}
		return &editor.Text{Pos: pt(v, 0), Text: content, Color: d.color, Size: size}, nil
	case "pixelate", "blur":
		v, err := expectInts(args, 4, kind)
		if err != nil {
			return nil, err
		}
		e := &editor.Effect{Start: pt(v, 0), End: pt(v, 1), Kind: editor.EffectPixelate}
		e.Strength = math.Max(math.Round(d.size), 4)
		if kind == "blur" {
			e.Kind = editor.EffectBlur
			e.Strength = math.Max(math.Round(d.size), 2)
		}
		return e, nil
	default:
		return nil, fmt.Errorf("unsupported shape %q", kind)
	}
}

func expectInts(args []string, n int, shape string) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("%s requires %d integer arguments", shape, n)
	}
	vals := make([]int, n)
	for i, raw := range args {
		v, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid integer %q", raw)
		}
		vals[i] = v
	}
	return vals, nil
}

func (d *drawCmd) Run() error {
	src, err := d.loadSource()
	if err != nil {
		return err
	}
	out := editor.Render(src, []editor.Shape{d.shape}, nil)
	if d.output != "" {
		saved, err := export.SaveImage(out, d.output)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s\n", saved)
		d.notifySave(saved)
	}
	if d.toClipboard {
		detail, err := clipboard.CopyImage(out)
		if err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to clipboard\n", detail)
		d.notifyCopy(detail)
	}
	return nil
}

func (d *drawCmd) loadSource() (*image.RGBA, error) {
	if d.fromClipboard {
		img, err := clipboard.ReadImage()
		if err != nil {
			return nil, fmt.Errorf("read clipboard image: %w", err)
		}
		rgba := image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
		return rgba, nil
	}
	return loadPNGFile(d.file)
}
