package editor

import (
	"image/color"
	"testing"
)

func TestGlyphCoverage(t *testing.T) {
	for r := '0'; r <= '9'; r++ {
		if _, ok := glyphFor(r); !ok {
			t.Errorf("missing glyph for %q", r)
		}
	}
	for r := 'A'; r <= 'Z'; r++ {
		if _, ok := glyphFor(r); !ok {
			t.Errorf("missing glyph for %q", r)
		}
	}
}

func TestGlyphLowercaseFolds(t *testing.T) {
	a, _ := glyphFor('a')
	upper, _ := glyphFor('A')
	if a != upper {
		t.Errorf("lowercase lookup does not fold to uppercase")
	}
}

func TestUnsupportedRunesSkipped(t *testing.T) {
	img := newCanvas(50, 20)
	DrawText(img, Pt(0, 0), "@é世", color.RGBA{255, 255, 255, 255}, 1)
	for i := range img.Pix {
		if img.Pix[i] != 0 {
			t.Fatalf("unsupported runes produced pixels")
		}
	}
	if w, h := TextSize("@é世", 1); w != 0 || h != 0 {
		t.Errorf("TextSize of unsupported runes = %dx%d, want 0x0", w, h)
	}
}

func TestTextSize(t *testing.T) {
	tests := []struct {
		s     string
		scale int
		wantW int
		wantH int
	}{
		{"1", 1, 5, 7},
		{"12", 1, 11, 7},
		{"12", 3, 33, 21},
		{"", 2, 0, 0},
	}
	for _, tc := range tests {
		w, h := TextSize(tc.s, tc.scale)
		if w != tc.wantW || h != tc.wantH {
			t.Errorf("TextSize(%q, %d) = %dx%d, want %dx%d", tc.s, tc.scale, w, h, tc.wantW, tc.wantH)
		}
	}
}

func TestDrawTextScales(t *testing.T) {
	one := newCanvas(60, 30)
	two := newCanvas(60, 30)
	col := color.RGBA{255, 255, 255, 255}
	DrawText(one, Pt(0, 0), "I", col, 1)
	DrawText(two, Pt(0, 0), "I", col, 2)
	count := func(img []uint8) int {
		n := 0
		for i := 3; i < len(img); i += 4 {
			if img[i] != 0 {
				n++
			}
		}
		return n
	}
	c1 := count(one.Pix)
	c2 := count(two.Pix)
	if c2 != 4*c1 {
		t.Errorf("scale 2 stamped %d pixels, want 4x the %d at scale 1", c2, c1)
	}
}

func TestDrawTextClipped(t *testing.T) {
	img := newCanvas(4, 4)
	// Must clip quietly when the text extends past the buffer.
	DrawText(img, Pt(-2, -2), "888", color.RGBA{255, 0, 0, 255}, 3)
}

func TestCalloutTextScaleFits(t *testing.T) {
	for _, label := range []string{"1", "9", "12", "128"} {
		for _, radius := range []float64{16.0, 20.0, 40.0} {
			scale := CalloutTextScale(radius, label)
			if scale < 1 {
				t.Fatalf("scale %d below 1 for %q", scale, label)
			}
			if scale > 1 {
				w, _ := TextSize(label, scale)
				if float64(w) > 2*radius-2*calloutPadding {
					t.Errorf("label %q at radius %v overflows the bubble", label, radius)
				}
			}
		}
	}
}
