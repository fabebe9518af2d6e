package editor

import (
	"image"
	"math"
)

// Point is a position in image pixel space. Pointer input is converted
// from window coordinates before it reaches the editor, so everything in
// this package works in the same space as the captured bitmap.
type Point struct {
	X, Y float64
}

func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

func (p Point) Dist(q Point) float64 {
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}

// Rect is an axis-aligned rectangle in image pixel space. Min and Max are
// not required to be ordered until Normalize is called; drag handling
// builds rectangles corner-first and normalizes afterwards.
type Rect struct {
	Min, Max Point
}

// RectFromPoints returns the normalized rectangle spanned by two corners.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		Min: Point{math.Min(a.X, b.X), math.Min(a.Y, b.Y)},
		Max: Point{math.Max(a.X, b.X), math.Max(a.Y, b.Y)},
	}
}

func (r Rect) Normalize() Rect {
	return RectFromPoints(r.Min, r.Max)
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Point {
	return Point{(r.Min.X + r.Max.X) / 2, (r.Min.Y + r.Max.Y) / 2}
}

func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

func (r Rect) Intersect(o Rect) Rect {
	out := Rect{
		Min: Point{math.Max(r.Min.X, o.Min.X), math.Max(r.Min.Y, o.Min.Y)},
		Max: Point{math.Min(r.Max.X, o.Max.X), math.Min(r.Max.Y, o.Max.Y)},
	}
	if out.Min.X > out.Max.X || out.Min.Y > out.Max.Y {
		return Rect{Min: out.Min, Max: out.Min}
	}
	return out
}

// PixelBounds converts the rectangle to whole pixels, expanding outwards
// (floor on Min, ceil on Max) and clamping to the given image bounds.
func (r Rect) PixelBounds(bounds image.Rectangle) image.Rectangle {
	x0 := clampInt(int(math.Floor(r.Min.X)), bounds.Min.X, bounds.Max.X)
	y0 := clampInt(int(math.Floor(r.Min.Y)), bounds.Min.Y, bounds.Max.Y)
	x1 := clampInt(int(math.Ceil(r.Max.X)), bounds.Min.X, bounds.Max.X)
	y1 := clampInt(int(math.Ceil(r.Max.Y)), bounds.Min.Y, bounds.Max.Y)
	if x1 < x0 {
		x1 = x0
	}
	if y1 < y0 {
		y1 = y0
	}
	return image.Rect(x0, y0, x1, y1)
}

// Corner identifies one of the four selection handles.
type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

func (r Rect) Corner(c Corner) Point {
	switch c {
	case CornerTopLeft:
		return r.Min
	case CornerTopRight:
		return Point{r.Max.X, r.Min.Y}
	case CornerBottomLeft:
		return Point{r.Min.X, r.Max.Y}
	default:
		return r.Max
	}
}

// HitCorner reports which corner of r lies within radius of p, checking
// corners in top-left, top-right, bottom-left, bottom-right order.
func HitCorner(r Rect, p Point, radius float64) (Corner, bool) {
	for _, c := range []Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight} {
		q := r.Corner(c)
		dx := p.X - q.X
		dy := p.Y - q.Y
		if dx*dx+dy*dy <= radius*radius {
			return c, true
		}
	}
	return 0, false
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// LayoutButtons places count buttons of buttonSize around a selection,
// filling the row below it first, then the column to its right, the row
// above, and the column to its left as space runs out. Each row or
// column centers on the selection edge it hugs, holds at most as many
// buttons as span the selection, and is clamped to bounds. A selection
// touching every edge falls back to a row just inside its bottom edge.
// Returned points are button top-left corners.
func LayoutButtons(selection, bounds Rect, buttonSize Point, spacing float64, count int) []Point {
	var positions []Point
	remaining := count
	stepX := buttonSize.X + spacing
	stepY := buttonSize.Y + spacing

	maxFitRow := int(math.Max(math.Floor((bounds.Width()+spacing)/stepX), 0))
	maxFitCol := int(math.Max(math.Floor((bounds.Height()+spacing)/stepY), 0))
	if maxFitRow == 0 && maxFitCol == 0 {
		return positions
	}

	if rowY := selection.Max.Y + spacing; rowY >= bounds.Min.Y && rowY+buttonSize.Y <= bounds.Max.Y {
		n := minInt(remaining, spanCapacity(selection.Width(), buttonSize.X, spacing), maxFitRow)
		if n > 0 {
			row := rowPositions(selection.Center().X, rowY, n, buttonSize, spacing, bounds)
			remaining -= len(row)
			positions = append(positions, row...)
		}
	}
	if remaining > 0 {
		if colX := selection.Max.X + spacing; colX >= bounds.Min.X && colX+buttonSize.X <= bounds.Max.X {
			n := minInt(remaining, spanCapacity(selection.Height(), buttonSize.Y, spacing), maxFitCol)
			if n > 0 {
				col := colPositions(selection.Center().Y, colX, n, buttonSize, spacing, bounds)
				remaining -= len(col)
				positions = append(positions, col...)
			}
		}
	}
	if remaining > 0 {
		if rowY := selection.Min.Y - spacing - buttonSize.Y; rowY >= bounds.Min.Y && rowY+buttonSize.Y <= bounds.Max.Y {
			n := minInt(remaining, spanCapacity(selection.Width(), buttonSize.X, spacing), maxFitRow)
			if n > 0 {
				row := rowPositions(selection.Center().X, rowY, n, buttonSize, spacing, bounds)
				remaining -= len(row)
				positions = append(positions, row...)
			}
		}
	}
	if remaining > 0 {
		if colX := selection.Min.X - spacing - buttonSize.X; colX >= bounds.Min.X && colX+buttonSize.X <= bounds.Max.X {
			n := minInt(remaining, spanCapacity(selection.Height(), buttonSize.Y, spacing), maxFitCol)
			if n > 0 {
				col := colPositions(selection.Center().Y, colX, n, buttonSize, spacing, bounds)
				remaining -= len(col)
				positions = append(positions, col...)
			}
		}
	}

	if remaining > 0 && len(positions) == 0 {
		y := clampFloat(selection.Max.Y-buttonSize.Y, bounds.Min.Y, bounds.Max.Y-buttonSize.Y)
		n := maxFitRow
		if n < 1 {
			n = 1
		}
		if remaining < n {
			n = remaining
		}
		positions = append(positions, rowPositions(selection.Center().X, y, n, buttonSize, spacing, bounds)...)
	}

	return positions
}

// spanCapacity is how many buttons fit along an edge of the given span,
// never less than one.
func spanCapacity(span, size, spacing float64) int {
	n := math.Floor((math.Max(span, size) + spacing) / (size + spacing))
	if n < 1 {
		n = 1
	}
	return int(n)
}

func rowPositions(centerX, y float64, count int, buttonSize Point, spacing float64, bounds Rect) []Point {
	total := float64(count)*buttonSize.X + float64(count-1)*spacing
	startX := clampFloat(centerX-total/2, bounds.Min.X, bounds.Max.X-total)
	out := make([]Point, count)
	for i := range out {
		out[i] = Point{startX + float64(i)*(buttonSize.X+spacing), y}
	}
	return out
}

func colPositions(centerY, x float64, count int, buttonSize Point, spacing float64, bounds Rect) []Point {
	total := float64(count)*buttonSize.Y + float64(count-1)*spacing
	startY := clampFloat(centerY-total/2, bounds.Min.Y, bounds.Max.Y-total)
	out := make([]Point, count)
	for i := range out {
		out[i] = Point{x, startY + float64(i)*(buttonSize.Y+spacing)}
	}
	return out
}

func minInt(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
