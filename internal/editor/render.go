package editor

import (
	"image"
	"math"
)

// previewEllipseSteps keeps in-progress ellipses cheap while dragging;
// the committed render uses the full sample count.
const previewEllipseSteps = 40

// Render replays shapes in commit order onto a copy of base and then
// overlays the in-progress active shape, if any. base is never written.
// The result is a pure function of its inputs, which the preview cache
// and the export path both rely on.
func Render(base *image.RGBA, shapes []Shape, active Shape) *image.RGBA {
	out := cloneRGBA(base)
	for _, s := range shapes {
		drawShape(out, s, false)
	}
	if active != nil {
		drawShape(out, active, true)
	}
	return out
}

// RenderWithoutEffects replays only the non-effect shapes. The effect
// preview path uses this as the image an effect would read from.
func RenderWithoutEffects(base *image.RGBA, shapes []Shape) *image.RGBA {
	out := cloneRGBA(base)
	for _, s := range shapes {
		if _, ok := s.(*Effect); ok {
			continue
		}
		drawShape(out, s, false)
	}
	return out
}

func drawShape(img *image.RGBA, s Shape, preview bool) {
	switch v := s.(type) {
	case *Stroke:
		for i := 1; i < len(v.Points); i++ {
			DrawLine(img, v.Points[i-1], v.Points[i], v.Color, v.Size)
		}
	case *Line:
		DrawLine(img, v.Start, v.End, v.Color, v.Size)
	case *Arrow:
		DrawArrow(img, v.Start, v.End, v.Color, v.Size)
	case *Box:
		DrawRect(img, v.Start, v.End, v.Color, v.Size)
	case *Circle:
		steps := ellipseSteps
		if preview {
			steps = previewEllipseSteps
		}
		DrawEllipse(img, v.Start, v.End, v.Color, v.Size, steps)
	case *CircleCount:
		DrawCallout(img, v.Center, v.Pointer, v.Color, v.Size, v.Count)
	case *Text:
		scale := int(math.Round(v.Size / 6))
		DrawText(img, v.Pos, v.Text, v.Color, scale)
	case *Effect:
		r := RectFromPoints(v.Start, v.End)
		switch v.Kind {
		case EffectPixelate:
			Pixelate(img, r, int(math.Round(v.Strength)))
		case EffectBlur:
			Blur(img, r, int(math.Round(v.Strength)))
		}
	}
}

// Crop copies the sub-image covered by r, expanded to whole pixels and
// clamped to bounds. An empty result falls back to a copy of the whole
// image so export always produces something visible.
func Crop(img *image.RGBA, r Rect) *image.RGBA {
	px := r.PixelBounds(img.Bounds())
	if px.Empty() {
		return cloneRGBA(img)
	}
	out := image.NewRGBA(image.Rect(0, 0, px.Dx(), px.Dy()))
	for y := 0; y < px.Dy(); y++ {
		src := img.PixOffset(px.Min.X, px.Min.Y+y)
		dst := out.PixOffset(0, y)
		copy(out.Pix[dst:dst+px.Dx()*4], img.Pix[src:src+px.Dx()*4])
	}
	return out
}

// Preview is a rendered effect texture and the pixel region it covers.
type Preview struct {
	Image *image.RGBA
	Rect  image.Rectangle
}

type previewKey struct {
	rect     image.Rectangle
	kind     EffectKind
	strength float64
	version  uint64
}

type previewSlot struct {
	key previewKey
	img *Preview
}

// PreviewCache memoizes one rendered texture per effect shape. Slots are
// positional: effect identity is its index among the committed effect
// shapes, which is stable within a frame. Any shape-list mutation
// changes the version and therefore misses every slot.
type PreviewCache struct {
	slots []previewSlot
}

// Preview returns the texture for the effect at slot idx, rendering it
// if the cached entry does not match the current parameters. base must
// already contain every non-effect shape.
func (c *PreviewCache) Preview(base *image.RGBA, e *Effect, idx int, version uint64) *Preview {
	r := RectFromPoints(e.Start, e.End)
	px := r.PixelBounds(base.Bounds())
	key := previewKey{rect: px, kind: e.Kind, strength: e.Strength, version: version}
	for idx >= len(c.slots) {
		c.slots = append(c.slots, previewSlot{})
	}
	if c.slots[idx].img != nil && c.slots[idx].key == key {
		return c.slots[idx].img
	}
	if px.Empty() {
		return nil
	}
	tile := Crop(base, r)
	switch e.Kind {
	case EffectPixelate:
		PixelateFull(tile, int(math.Round(e.Strength)))
	case EffectBlur:
		BlurFull(tile, int(math.Round(e.Strength)))
	}
	p := &Preview{Image: tile, Rect: px}
	c.slots[idx] = previewSlot{key: key, img: p}
	return p
}
