package export

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow decoration applied to an
// exported capture.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// DefaultShadowOptions returns a conservative drop shadow that works
// well with most screenshots.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  24,
		Offset:  image.Pt(16, 16),
		Opacity: 0.55,
	}
}

// ApplyShadow composites img onto an expanded canvas with a blurred
// drop shadow behind it. The returned point reports how far the
// original content shifted on the new canvas. When the options disable
// the shadow the input image is returned unchanged.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) (*image.RGBA, image.Point) {
	if img == nil || img.Bounds().Empty() {
		return img, image.Point{}
	}
	opacity := opts.Opacity
	if opacity <= 0 {
		return img, image.Point{}
	}
	if opacity > 1 {
		opacity = 1
	}
	radius := opts.Radius
	if radius < 0 {
		radius = 0
	}

	src := img.Bounds()
	padded := src
	if radius > 0 {
		padded = padded.Inset(-radius)
	}
	shadow := padded.Add(opts.Offset)
	composite := src.Union(shadow)
	out := image.NewRGBA(composite.Sub(composite.Min))
	if out.Bounds().Empty() {
		return img, image.Point{}
	}

	// Build an alpha silhouette of the content, blur it, and stamp it
	// as the shadow before the content itself goes on top.
	mask := image.NewGray(padded.Sub(padded.Min))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlurGray(mask, radius)

	draw.Draw(out, out.Bounds(), image.Transparent, image.Point{}, draw.Src)
	alpha := uint8(opacity*255 + 0.5)
	if alpha > 0 {
		origin := shadow.Min.Sub(composite.Min)
		draw.DrawMask(out, blurred.Bounds().Add(origin),
			image.NewUniform(color.RGBA{0, 0, 0, alpha}), image.Point{},
			blurred, blurred.Bounds().Min, draw.Over)
	}
	draw.Draw(out, src.Sub(composite.Min), img, src.Min, draw.Over)

	return out, src.Min.Sub(composite.Min)
}

// boxBlurGray runs a separable box blur over the grayscale mask using
// per-row and per-column prefix sums.
func boxBlurGray(src *image.Gray, radius int) *image.Gray {
	if radius <= 0 {
		out := image.NewGray(src.Bounds())
		copy(out.Pix, src.Pix)
		return out
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewGray(b)
	out := image.NewGray(b)

	for y := 0; y < h; y++ {
		row := y * src.Stride
		prefix := make([]int, w+1)
		for x := 0; x < w; x++ {
			prefix[x+1] = prefix[x] + int(src.Pix[row+x])
		}
		for x := 0; x < w; x++ {
			lo, hi := x-radius, x+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= w {
				hi = w - 1
			}
			tmp.Pix[y*tmp.Stride+x] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
	for x := 0; x < w; x++ {
		prefix := make([]int, h+1)
		for y := 0; y < h; y++ {
			prefix[y+1] = prefix[y] + int(tmp.Pix[y*tmp.Stride+x])
		}
		for y := 0; y < h; y++ {
			lo, hi := y-radius, y+radius
			if lo < 0 {
				lo = 0
			}
			if hi >= h {
				hi = h - 1
			}
			out.Pix[y*out.Stride+x] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
		}
	}
	return out
}
