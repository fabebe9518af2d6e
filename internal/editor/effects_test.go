package editor

import (
	"image"
	"image/color"
	"testing"
)

func fillUniform(img *image.RGBA, col color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7 % 256), G: uint8(y * 11 % 256), B: uint8((x + y) % 256), A: 255})
		}
	}
	return img
}

func TestPixelateUniformUnchanged(t *testing.T) {
	col := color.RGBA{40, 80, 120, 255}
	for _, block := range []int{2, 3, 7, 16} {
		img := newCanvas(33, 21)
		fillUniform(img, col)
		Pixelate(img, Rect{Min: Pt(0, 0), Max: Pt(33, 21)}, block)
		for y := 0; y < 21; y++ {
			for x := 0; x < 33; x++ {
				if img.RGBAAt(x, y) != col {
					t.Fatalf("block %d changed uniform pixel (%d,%d)", block, x, y)
				}
			}
		}
	}
}

func TestPixelateCellMean(t *testing.T) {
	img := newCanvas(2, 2)
	img.SetRGBA(0, 0, color.RGBA{0, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{100, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 200, 0, 255})
	img.SetRGBA(1, 1, color.RGBA{0, 0, 103, 255})
	Pixelate(img, Rect{Min: Pt(0, 0), Max: Pt(2, 2)}, 2)
	// Means truncate: R = 100/4 = 25, G = 200/4 = 50, B = 103/4 = 25.
	want := color.RGBA{25, 50, 25, 255}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			if got := img.RGBAAt(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestPixelateBlockFloor(t *testing.T) {
	a := gradient(8, 8)
	b := gradient(8, 8)
	Pixelate(a, Rect{Max: Pt(8, 8)}, 0)
	Pixelate(b, Rect{Max: Pt(8, 8)}, 2)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("block 0 not clamped to 2")
		}
	}
}

func TestPixelateOutsideRectUntouched(t *testing.T) {
	img := gradient(30, 30)
	orig := cloneRGBA(img)
	Pixelate(img, Rect{Min: Pt(10, 10), Max: Pt(20, 20)}, 4)
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			inside := x >= 10 && x < 20 && y >= 10 && y < 20
			if !inside && img.RGBAAt(x, y) != orig.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) outside the rect changed", x, y)
			}
		}
	}
}

func TestBlurUniformUnchanged(t *testing.T) {
	col := color.RGBA{10, 20, 30, 255}
	img := newCanvas(20, 20)
	fillUniform(img, col)
	Blur(img, Rect{Max: Pt(20, 20)}, 3)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if img.RGBAAt(x, y) != col {
				t.Fatalf("blur changed uniform pixel (%d,%d)", x, y)
			}
		}
	}
}

func TestBlurEdgeClipping(t *testing.T) {
	// A rect touching the image edge must not panic and must leave
	// pixels outside it untouched.
	img := gradient(16, 16)
	orig := cloneRGBA(img)
	Blur(img, Rect{Min: Pt(0, 0), Max: Pt(8, 16)}, 5)
	for y := 0; y < 16; y++ {
		for x := 8; x < 16; x++ {
			if img.RGBAAt(x, y) != orig.RGBAAt(x, y) {
				t.Fatalf("pixel (%d,%d) outside the rect changed", x, y)
			}
		}
	}
}

func TestBlurCornerWindowSmaller(t *testing.T) {
	// Half black, half white split. The corner pixel averages a window
	// clipped to the rect, so it sees fewer white pixels than an
	// interior pixel at the same distance from the split and stays
	// darker than the midpoint row average.
	img := newCanvas(12, 12)
	for y := 0; y < 12; y++ {
		for x := 0; x < 12; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if x >= 6 {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	Blur(img, Rect{Max: Pt(12, 12)}, 4)
	corner := img.RGBAAt(0, 0)
	center := img.RGBAAt(5, 6)
	if corner.R >= center.R {
		t.Errorf("corner %v not darker than near-split interior %v", corner, center)
	}
}

func TestBlurRadiusCap(t *testing.T) {
	a := gradient(10, 10)
	b := gradient(10, 10)
	Blur(a, Rect{Max: Pt(10, 10)}, MaxBlurRadius)
	Blur(b, Rect{Max: Pt(10, 10)}, MaxBlurRadius+50)
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("radius above the cap produced a different result")
		}
	}
}

func TestBlurWindowClipsLowSideAtImageEdge(t *testing.T) {
	// Pixels left of the rect feed the average, pixels right of it do
	// not.
	img := newCanvas(12, 12)
	fillUniform(img, color.RGBA{0, 0, 0, 255})
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < 12; y++ {
		img.SetRGBA(0, y, white)
		img.SetRGBA(1, y, white)
		img.SetRGBA(10, y, white)
		img.SetRGBA(11, y, white)
	}
	Blur(img, Rect{Min: Pt(4, 0), Max: Pt(8, 12)}, 4)
	if img.RGBAAt(4, 6).R == 0 {
		t.Errorf("white pixels left of the rect did not contribute")
	}
	if got := img.RGBAAt(7, 6).R; got != 0 {
		t.Errorf("white pixels right of the rect contributed: R=%d", got)
	}
}
