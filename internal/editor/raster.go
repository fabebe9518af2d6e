package editor

import (
	"image"
	"image/color"
	"math"
	"strconv"
)

// The rasterizer writes pixels directly with Set semantics rather than
// alpha blending. Translucent tools (marker) store their alpha in the
// stamped color so repeated renders of the same shape list always produce
// the same bytes.

// DrawLine stamps a square brush of the given size along the segment from
// a to b. The step count equals the larger axis delta so every pixel
// column or row along the segment receives a stamp.
func DrawLine(img *image.RGBA, a, b Point, col color.RGBA, size float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	steps := int(math.Max(math.Abs(dx), math.Abs(dy)))
	if steps < 1 {
		steps = 1
	}
	radius := int(math.Ceil(math.Max(size, 1) / 2))
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		stampSquare(img, a.X+dx*t, a.Y+dy*t, radius, col)
	}
}

func stampSquare(img *image.RGBA, cx, cy float64, radius int, col color.RGBA) {
	b := img.Bounds()
	x0 := int(math.Round(cx)) - radius
	y0 := int(math.Round(cy)) - radius
	for y := y0; y <= y0+2*radius; y++ {
		if y < b.Min.Y || y >= b.Max.Y {
			continue
		}
		for x := x0; x <= x0+2*radius; x++ {
			if x < b.Min.X || x >= b.Max.X {
				continue
			}
			img.SetRGBA(x, y, col)
		}
	}
}

// DrawRect outlines the rectangle spanned by two corners with four lines.
func DrawRect(img *image.RGBA, a, b Point, col color.RGBA, size float64) {
	r := RectFromPoints(a, b)
	tl := r.Min
	tr := Point{r.Max.X, r.Min.Y}
	bl := Point{r.Min.X, r.Max.Y}
	br := r.Max
	DrawLine(img, tl, tr, col, size)
	DrawLine(img, tr, br, col, size)
	DrawLine(img, br, bl, col, size)
	DrawLine(img, bl, tl, col, size)
}

func edgeFunction(a, b, c Point) float64 {
	return (c.X-a.X)*(b.Y-a.Y) - (c.Y-a.Y)*(b.X-a.X)
}

// FillTriangle fills the triangle abc by scanning its bounding box and
// testing pixel centers against the three edge functions. Pixels are
// inside when all three weights share a sign, which keeps the fill
// independent of winding order. Degenerate triangles draw nothing.
func FillTriangle(img *image.RGBA, a, b, c Point, col color.RGBA) {
	if edgeFunction(a, b, c) == 0 {
		return
	}
	bounds := img.Bounds()
	minX := clampInt(int(math.Floor(math.Min(a.X, math.Min(b.X, c.X)))), bounds.Min.X, bounds.Max.X-1)
	maxX := clampInt(int(math.Ceil(math.Max(a.X, math.Max(b.X, c.X)))), bounds.Min.X, bounds.Max.X-1)
	minY := clampInt(int(math.Floor(math.Min(a.Y, math.Min(b.Y, c.Y)))), bounds.Min.Y, bounds.Max.Y-1)
	maxY := clampInt(int(math.Ceil(math.Max(a.Y, math.Max(b.Y, c.Y)))), bounds.Min.Y, bounds.Max.Y-1)
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			p := Point{float64(x) + 0.5, float64(y) + 0.5}
			w0 := edgeFunction(a, b, p)
			w1 := edgeFunction(b, c, p)
			w2 := edgeFunction(c, a, p)
			if (w0 >= 0 && w1 >= 0 && w2 >= 0) || (w0 <= 0 && w1 <= 0 && w2 <= 0) {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// FillQuad fills the quad abcd as the triangles abc and acd.
func FillQuad(img *image.RGBA, a, b, c, d Point, col color.RGBA) {
	FillTriangle(img, a, b, c, col)
	FillTriangle(img, a, c, d, col)
}

// FillCircle fills the disc of the given radius around center, testing
// pixel centers against the squared radius.
func FillCircle(img *image.RGBA, center Point, radius float64, col color.RGBA) {
	if radius <= 0 {
		return
	}
	bounds := img.Bounds()
	minX := clampInt(int(math.Floor(center.X-radius)), bounds.Min.X, bounds.Max.X-1)
	maxX := clampInt(int(math.Ceil(center.X+radius)), bounds.Min.X, bounds.Max.X-1)
	minY := clampInt(int(math.Floor(center.Y-radius)), bounds.Min.Y, bounds.Max.Y-1)
	maxY := clampInt(int(math.Ceil(center.Y+radius)), bounds.Min.Y, bounds.Max.Y-1)
	rr := radius * radius
	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			dx := float64(x) + 0.5 - center.X
			dy := float64(y) + 0.5 - center.Y
			if dx*dx+dy*dy <= rr {
				img.SetRGBA(x, y, col)
			}
		}
	}
}

// ellipseSteps is the number of parametric samples used for a committed
// ellipse outline. Live previews may use fewer.
const ellipseSteps = 80

// EllipsePoints samples the ellipse inscribed in the rectangle spanned by
// a and b at the given number of parametric steps.
func EllipsePoints(a, b Point, steps int) []Point {
	r := RectFromPoints(a, b)
	cx := (r.Min.X + r.Max.X) / 2
	cy := (r.Min.Y + r.Max.Y) / 2
	rx := r.Width() / 2
	ry := r.Height() / 2
	pts := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps) * 2 * math.Pi
		pts = append(pts, Point{cx + rx*math.Cos(t), cy + ry*math.Sin(t)})
	}
	return pts
}

// DrawEllipse outlines the ellipse inscribed in the rectangle spanned by
// a and b by connecting parametric samples with line segments.
func DrawEllipse(img *image.RGBA, a, b Point, col color.RGBA, size float64, steps int) {
	pts := EllipsePoints(a, b, steps)
	for i := 1; i < len(pts); i++ {
		DrawLine(img, pts[i-1], pts[i], col, size)
	}
}

// ArrowHead computes the shaft end and the two barb points for an arrow
// from start to end. Head length and width scale with the stroke size but
// are clamped so short arrows keep a visible shaft.
func ArrowHead(start, end Point, size float64) (base, left, right Point, ok bool) {
	length := start.Dist(end)
	if length == 0 {
		return Point{}, Point{}, Point{}, false
	}
	dirX := (end.X - start.X) / length
	dirY := (end.Y - start.Y) / length
	headLen := math.Min(math.Max(size*4, 10), 0.8*length)
	headW := math.Min(math.Max(size*3, 6), 0.6*length)
	base = Point{end.X - dirX*headLen, end.Y - dirY*headLen}
	perpX := -dirY
	perpY := dirX
	left = Point{base.X + perpX*headW/2, base.Y + perpY*headW/2}
	right = Point{base.X - perpX*headW/2, base.Y - perpY*headW/2}
	return base, left, right, true
}

// DrawArrow draws a line from start to the head base and a filled
// triangular head ending at end.
func DrawArrow(img *image.RGBA, start, end Point, col color.RGBA, size float64) {
	base, left, right, ok := ArrowHead(start, end, size)
	if !ok {
		// a click without a drag still leaves a dot
		DrawLine(img, start, end, col, size)
		return
	}
	DrawLine(img, start, base, col, size)
	FillTriangle(img, end, left, right, col)
}

// Callout bubble geometry. The bubble radius grows with the stroke size
// so thicker annotation settings produce proportionally larger badges.
const (
	calloutRadiusOffset = 15
	calloutPadding      = 2
)

func CalloutRadius(size float64) float64 {
	return size + calloutRadiusOffset
}

// ContrastColors returns a text color and an outer ring color chosen for
// legibility against col using its relative luminance.
func ContrastColors(col color.RGBA) (text, ring color.RGBA) {
	lum := 0.2126*float64(col.R) + 0.7152*float64(col.G) + 0.0722*float64(col.B)
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	if lum < 128 {
		return white, black
	}
	return black, white
}

// DrawCallout draws a numbered badge: an outer disc in the ring color, a
// one pixel ellipse outline in the text color, the inner disc in the
// shape color, and the count label centered inside. When the pointer sits
// outside the bubble a tapered leader connects the bubble to it.
func DrawCallout(img *image.RGBA, center, pointer Point, col color.RGBA, size float64, count int) {
	bubble := CalloutRadius(size)
	textCol, ringCol := ContrastColors(col)

	if pointer.Dist(center) > bubble {
		perpX, perpY := leaderPerp(center, pointer)
		FillQuad(img,
			center,
			Point{center.X + perpX*bubble, center.Y + perpY*bubble},
			pointer,
			Point{center.X - perpX*bubble, center.Y - perpY*bubble},
			col)
	}

	FillCircle(img, center, bubble+2, ringCol)
	DrawEllipse(img,
		Point{center.X - bubble, center.Y - bubble},
		Point{center.X + bubble, center.Y + bubble},
		textCol, 1, ellipseSteps)
	FillCircle(img, center, bubble, col)

	label := strconv.Itoa(count)
	scale := CalloutTextScale(bubble, label)
	w, h := TextSize(label, scale)
	DrawText(img,
		Point{center.X - float64(w)/2, center.Y - float64(h)/2},
		label, textCol, scale)
}

func leaderPerp(center, pointer Point) (float64, float64) {
	dx := pointer.X - center.X
	dy := pointer.Y - center.Y
	length := math.Hypot(dx, dy)
	return -dy / length, dx / length
}
