package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/snapmark/internal/editor"
)

func writeTestPNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{255, 255, 255, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestParseShapeColor(t *testing.T) {
	tests := []struct {
		spec string
		want color.RGBA
		ok   bool
	}{
		{"red", color.RGBA{255, 0, 0, 255}, true},
		{"Lime", color.RGBA{0, 255, 0, 255}, true},
		{"#0000FF", color.RGBA{0, 0, 255, 255}, true},
		{"not-a-color", color.RGBA{}, false},
		{"", color.RGBA{}, false},
	}
	for _, tc := range tests {
		got, err := parseShapeColor(tc.spec)
		if tc.ok != (err == nil) {
			t.Errorf("parseShapeColor(%q) err = %v", tc.spec, err)
			continue
		}
		if tc.ok && got != tc.want {
			t.Errorf("parseShapeColor(%q) = %v, want %v", tc.spec, got, tc.want)
		}
	}
}

func TestParseDrawCmdShapes(t *testing.T) {
	base := []string{"-file", "in.png", "-color", "#FF0000"}
	t.Run("line", func(t *testing.T) {
		d, err := parseDrawCmd(append(base, "line", "1", "2", "3", "4"), nil)
		if err != nil {
			t.Fatal(err)
		}
		ln, ok := d.shape.(*editor.Line)
		if !ok {
			t.Fatalf("shape is %T, want *editor.Line", d.shape)
		}
		if ln.Start != editor.Pt(1, 2) || ln.End != editor.Pt(3, 4) {
			t.Errorf("line spans %v-%v", ln.Start, ln.End)
		}
	})
	t.Run("count", func(t *testing.T) {
		d, err := parseDrawCmd(append(base, "count", "10", "20", "7"), nil)
		if err != nil {
			t.Fatal(err)
		}
		cc, ok := d.shape.(*editor.CircleCount)
		if !ok {
			t.Fatalf("shape is %T, want *editor.CircleCount", d.shape)
		}
		if cc.Count != 7 || cc.Center != editor.Pt(10, 20) {
			t.Errorf("callout %v count %d", cc.Center, cc.Count)
		}
	})
	t.Run("text floors size", func(t *testing.T) {
		d, err := parseDrawCmd(append(base, "-size", "2", "text", "5", "6", "hello", "world"), nil)
		if err != nil {
			t.Fatal(err)
		}
		tx, ok := d.shape.(*editor.Text)
		if !ok {
			t.Fatalf("shape is %T, want *editor.Text", d.shape)
		}
		if tx.Text != "hello world" {
			t.Errorf("text %q", tx.Text)
		}
		if tx.Size != 8 {
			t.Errorf("text size %g, want floor of 8", tx.Size)
		}
	})
	t.Run("blur floors strength", func(t *testing.T) {
		d, err := parseDrawCmd(append(base, "-size", "1", "blur", "0", "0", "4", "4"), nil)
		if err != nil {
			t.Fatal(err)
		}
		ef, ok := d.shape.(*editor.Effect)
		if !ok {
			t.Fatalf("shape is %T, want *editor.Effect", d.shape)
		}
		if ef.Kind != editor.EffectBlur || ef.Strength != 2 {
			t.Errorf("effect kind %v strength %g", ef.Kind, ef.Strength)
		}
	})
}

func TestParseDrawCmdErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input file", []string{"line", "1", "2", "3", "4"}},
		{"bad color", []string{"-file", "in.png", "-color", "nope", "line", "1", "2", "3", "4"}},
		{"unknown shape", []string{"-file", "in.png", "spiral", "1", "2"}},
		{"wrong arity", []string{"-file", "in.png", "line", "1", "2"}},
		{"empty text", []string{"-file", "in.png", "text", "1", "2", " "}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := parseDrawCmd(tc.args, nil); err == nil {
				t.Errorf("parseDrawCmd(%v) accepted bad input", tc.args)
			}
		})
	}
}

func TestDrawRunStampsShape(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	writeTestPNG(t, in, 12, 12)

	d, err := parseDrawCmd([]string{
		"-file", in, "-output", out, "-color", "#FF0000",
		"line", "1", "6", "10", "6",
	}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Run(); err != nil {
		t.Fatal(err)
	}

	img, err := loadPNGFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if got := img.RGBAAt(5, 6); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("segment pixel (5,6) = %v, want red", got)
	}
	if got := img.RGBAAt(5, 0); got != (color.RGBA{255, 255, 255, 255}) {
		t.Errorf("pixel off the segment changed: %v", got)
	}
}
