package editor

import "image"

// MaxBlurRadius bounds the box blur window so a single pass stays cheap
// even on large captures.
const MaxBlurRadius = 12

// Pixelate replaces each block by block cell inside rect with the
// integer mean of its pixels, per channel. Cells at the rectangle edge
// shrink to fit. Block sizes under 2 are clamped up.
func Pixelate(img *image.RGBA, rect Rect, block int) {
	if block < 2 {
		block = 2
	}
	r := rect.PixelBounds(img.Bounds())
	if r.Empty() {
		return
	}
	for y := r.Min.Y; y < r.Max.Y; y += block {
		for x := r.Min.X; x < r.Max.X; x += block {
			x1 := x + block
			if x1 > r.Max.X {
				x1 = r.Max.X
			}
			y1 := y + block
			if y1 > r.Max.Y {
				y1 = r.Max.Y
			}
			averageCell(img, x, y, x1, y1)
		}
	}
}

func averageCell(img *image.RGBA, x0, y0, x1, y1 int) {
	var sr, sg, sb, sa uint64
	count := uint64((x1 - x0) * (y1 - y0))
	if count == 0 {
		return
	}
	for y := y0; y < y1; y++ {
		i := img.PixOffset(x0, y)
		for x := x0; x < x1; x++ {
			sr += uint64(img.Pix[i])
			sg += uint64(img.Pix[i+1])
			sb += uint64(img.Pix[i+2])
			sa += uint64(img.Pix[i+3])
			i += 4
		}
	}
	ar := byte(sr / count)
	ag := byte(sg / count)
	ab := byte(sb / count)
	aa := byte(sa / count)
	for y := y0; y < y1; y++ {
		i := img.PixOffset(x0, y)
		for x := x0; x < x1; x++ {
			img.Pix[i] = ar
			img.Pix[i+1] = ag
			img.Pix[i+2] = ab
			img.Pix[i+3] = aa
			i += 4
		}
	}
}

// Blur box-blurs rect with the given radius, reading every sample from a
// snapshot taken before the pass so earlier writes never smear into
// later ones. The sample window clips at the image edge on the low side
// and at the rectangle edge on the high side, and the mean divides by
// the clipped window size.
func Blur(img *image.RGBA, rect Rect, radius int) {
	if radius < 1 {
		radius = 1
	}
	if radius > MaxBlurRadius {
		radius = MaxBlurRadius
	}
	r := rect.PixelBounds(img.Bounds())
	if r.Empty() {
		return
	}
	src := cloneRGBA(img)
	ib := img.Bounds()
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			x0 := x - radius
			if x0 < ib.Min.X {
				x0 = ib.Min.X
			}
			x1 := x + radius + 1
			if x1 > r.Max.X {
				x1 = r.Max.X
			}
			y0 := y - radius
			if y0 < ib.Min.Y {
				y0 = ib.Min.Y
			}
			y1 := y + radius + 1
			if y1 > r.Max.Y {
				y1 = r.Max.Y
			}
			var sr, sg, sb, sa uint64
			for sy := y0; sy < y1; sy++ {
				i := src.PixOffset(x0, sy)
				for sx := x0; sx < x1; sx++ {
					sr += uint64(src.Pix[i])
					sg += uint64(src.Pix[i+1])
					sb += uint64(src.Pix[i+2])
					sa += uint64(src.Pix[i+3])
					i += 4
				}
			}
			count := uint64((x1 - x0) * (y1 - y0))
			i := img.PixOffset(x, y)
			img.Pix[i] = byte(sr / count)
			img.Pix[i+1] = byte(sg / count)
			img.Pix[i+2] = byte(sb / count)
			img.Pix[i+3] = byte(sa / count)
		}
	}
}

// PixelateFull and BlurFull apply the effect to the whole buffer. The
// preview path uses these to build a texture for one effect shape
// without baking the rest of the shape list.

func PixelateFull(img *image.RGBA, block int) {
	Pixelate(img, wholeRect(img), block)
}

func BlurFull(img *image.RGBA, radius int) {
	Blur(img, wholeRect(img), radius)
}

func wholeRect(img *image.RGBA) Rect {
	b := img.Bounds()
	return Rect{
		Min: Point{float64(b.Min.X), float64(b.Min.Y)},
		Max: Point{float64(b.Max.X), float64(b.Max.Y)},
	}
}

func cloneRGBA(img *image.RGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	copy(out.Pix, img.Pix)
	return out
}
