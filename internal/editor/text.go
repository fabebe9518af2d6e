package editor

import (
	"image"
	"image/color"
	"math"
)

// Glyphs are 5 columns by 7 rows, one byte per row with the leftmost
// column in bit 4. Lowercase letters are folded to uppercase before
// lookup; runes without a glyph produce no pixels.

const (
	glyphWidth  = 5
	glyphHeight = 7
	// One blank column between glyphs.
	glyphAdvance = glyphWidth + 1
)

var glyphs = map[rune][glyphHeight]byte{
	' ':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
	'0':  {0x0E, 0x11, 0x13, 0x15, 0x19, 0x11, 0x0E},
	'1':  {0x04, 0x0C, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'2':  {0x0E, 0x11, 0x01, 0x02, 0x04, 0x08, 0x1F},
	'3':  {0x1F, 0x02, 0x04, 0x02, 0x01, 0x11, 0x0E},
	'4':  {0x02, 0x06, 0x0A, 0x12, 0x1F, 0x02, 0x02},
	'5':  {0x1F, 0x10, 0x1E, 0x01, 0x01, 0x11, 0x0E},
	'6':  {0x06, 0x08, 0x10, 0x1E, 0x11, 0x11, 0x0E},
	'7':  {0x1F, 0x01, 0x02, 0x04, 0x08, 0x08, 0x08},
	'8':  {0x0E, 0x11, 0x11, 0x0E, 0x11, 0x11, 0x0E},
	'9':  {0x0E, 0x11, 0x11, 0x0F, 0x01, 0x02, 0x0C},
	'A':  {0x0E, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'B':  {0x1E, 0x11, 0x11, 0x1E, 0x11, 0x11, 0x1E},
	'C':  {0x0E, 0x11, 0x10, 0x10, 0x10, 0x11, 0x0E},
	'D':  {0x1C, 0x12, 0x11, 0x11, 0x11, 0x12, 0x1C},
	'E':  {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x1F},
	'F':  {0x1F, 0x10, 0x10, 0x1E, 0x10, 0x10, 0x10},
	'G':  {0x0E, 0x11, 0x10, 0x17, 0x11, 0x11, 0x0F},
	'H':  {0x11, 0x11, 0x11, 0x1F, 0x11, 0x11, 0x11},
	'I':  {0x0E, 0x04, 0x04, 0x04, 0x04, 0x04, 0x0E},
	'J':  {0x07, 0x02, 0x02, 0x02, 0x02, 0x12, 0x0C},
	'K':  {0x11, 0x12, 0x14, 0x18, 0x14, 0x12, 0x11},
	'L':  {0x10, 0x10, 0x10, 0x10, 0x10, 0x10, 0x1F},
	'M':  {0x11, 0x1B, 0x15, 0x15, 0x11, 0x11, 0x11},
	'N':  {0x11, 0x19, 0x15, 0x13, 0x11, 0x11, 0x11},
	'O':  {0x0E, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'P':  {0x1E, 0x11, 0x11, 0x1E, 0x10, 0x10, 0x10},
	'Q':  {0x0E, 0x11, 0x11, 0x11, 0x15, 0x12, 0x0D},
	'R':  {0x1E, 0x11, 0x11, 0x1E, 0x14, 0x12, 0x11},
	'S':  {0x0F, 0x10, 0x10, 0x0E, 0x01, 0x01, 0x1E},
	'T':  {0x1F, 0x04, 0x04, 0x04, 0x04, 0x04, 0x04},
	'U':  {0x11, 0x11, 0x11, 0x11, 0x11, 0x11, 0x0E},
	'V':  {0x11, 0x11, 0x11, 0x11, 0x11, 0x0A, 0x04},
	'W':  {0x11, 0x11, 0x11, 0x15, 0x15, 0x15, 0x0A},
	'X':  {0x11, 0x11, 0x0A, 0x04, 0x0A, 0x11, 0x11},
	'Y':  {0x11, 0x11, 0x0A, 0x04, 0x04, 0x04, 0x04},
	'Z':  {0x1F, 0x01, 0x02, 0x04, 0x08, 0x10, 0x1F},
	'.':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x0C, 0x0C},
	',':  {0x00, 0x00, 0x00, 0x00, 0x0C, 0x04, 0x08},
	':':  {0x00, 0x0C, 0x0C, 0x00, 0x0C, 0x0C, 0x00},
	';':  {0x00, 0x0C, 0x0C, 0x00, 0x0C, 0x04, 0x08},
	'!':  {0x04, 0x04, 0x04, 0x04, 0x04, 0x00, 0x04},
	'?':  {0x0E, 0x11, 0x01, 0x02, 0x04, 0x00, 0x04},
	'-':  {0x00, 0x00, 0x00, 0x1F, 0x00, 0x00, 0x00},
	'+':  {0x00, 0x04, 0x04, 0x1F, 0x04, 0x04, 0x00},
	'=':  {0x00, 0x00, 0x1F, 0x00, 0x1F, 0x00, 0x00},
	'_':  {0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x1F},
	'/':  {0x01, 0x01, 0x02, 0x04, 0x08, 0x10, 0x10},
	'(':  {0x02, 0x04, 0x08, 0x08, 0x08, 0x04, 0x02},
	')':  {0x08, 0x04, 0x02, 0x02, 0x02, 0x04, 0x08},
	'\'': {0x04, 0x04, 0x08, 0x00, 0x00, 0x00, 0x00},
	'"':  {0x0A, 0x0A, 0x00, 0x00, 0x00, 0x00, 0x00},
	'#':  {0x0A, 0x1F, 0x0A, 0x0A, 0x0A, 0x1F, 0x0A},
	'%':  {0x19, 0x1A, 0x02, 0x04, 0x08, 0x0B, 0x13},
}

func glyphFor(r rune) ([glyphHeight]byte, bool) {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	g, ok := glyphs[r]
	return g, ok
}

// TextSize returns the pixel dimensions of s at the given scale. Runes
// without a glyph take no space.
func TextSize(s string, scale int) (w, h int) {
	if scale < 1 {
		scale = 1
	}
	n := 0
	for _, r := range s {
		if _, ok := glyphFor(r); ok {
			n++
		}
	}
	if n == 0 {
		return 0, 0
	}
	return (n*glyphAdvance - 1) * scale, glyphHeight * scale
}

// DrawText stamps s starting at the top-left position pos. Each set font
// bit fills a scale by scale block, clipped to the buffer.
func DrawText(img *image.RGBA, pos Point, s string, col color.RGBA, scale int) {
	if scale < 1 {
		scale = 1
	}
	x := int(pos.X)
	y := int(pos.Y)
	for _, r := range s {
		g, ok := glyphFor(r)
		if !ok {
			continue
		}
		for row := 0; row < glyphHeight; row++ {
			bits := g[row]
			for colIdx := 0; colIdx < glyphWidth; colIdx++ {
				if bits&(1<<(glyphWidth-1-colIdx)) == 0 {
					continue
				}
				fillBlock(img, x+colIdx*scale, y+row*scale, scale, col)
			}
		}
		x += glyphAdvance * scale
	}
}

func fillBlock(img *image.RGBA, x0, y0, size int, col color.RGBA) {
	b := img.Bounds()
	for y := y0; y < y0+size; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x < x0+size; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			img.SetRGBA(x, y, col)
		}
	}
}

// CalloutTextScale picks the largest scale at which label still fits
// inside the bubble, leaving a little padding, never below 1.
func CalloutTextScale(radius float64, label string) int {
	scale := int(math.Round(radius / 7))
	if scale < 1 {
		scale = 1
	}
	limit := 2*radius - 2*calloutPadding
	for scale > 1 {
		w, _ := TextSize(label, scale)
		if float64(w) <= limit {
			break
		}
		scale--
	}
	return scale
}
