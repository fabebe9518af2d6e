package editor

import "math"

// CursorKind is the pointer affordance the frontend should show. It is
// derived from the selection state and pointer position every frame, not
// stored.
type CursorKind int

const (
	CursorDefault CursorKind = iota
	CursorCrosshair
	CursorGrab
	CursorGrabbing
	CursorResizeNWSE
	CursorResizeNESW
)

type dragKind int

const (
	dragNone dragKind = iota
	dragCreating
	dragMoving
	dragResizing
)

// Selector owns the crop rectangle and its drag state machine. The
// rectangle is always normalized and clipped to the image bounds while a
// drag is in progress; releases that leave it under a pixel wide or tall
// discard it.
type Selector struct {
	bounds Rect

	rect Rect
	has  bool

	drag   dragKind
	anchor Point
	offset Point
	corner Corner
}

// NewSelector returns a selector for an image of the given size.
func NewSelector(width, height int) *Selector {
	return &Selector{bounds: Rect{Max: Point{float64(width), float64(height)}}}
}

// Rect returns the current selection, if any.
func (s *Selector) Rect() (Rect, bool) { return s.rect, s.has }

// Set replaces the selection with r clipped to the image.
func (s *Selector) Set(r Rect) {
	s.rect = r.Normalize().Intersect(s.bounds)
	s.has = true
}

// Clear drops the selection and any drag in progress.
func (s *Selector) Clear() {
	s.has = false
	s.drag = dragNone
}

// Dragging reports whether a pointer drag is in progress.
func (s *Selector) Dragging() bool { return s.drag != dragNone }

// Press starts a drag. Corner handles win over the interior; anywhere
// else begins a fresh selection replacing the old one.
func (s *Selector) Press(p Point, handleRadius float64) {
	if s.has {
		if c, ok := HitCorner(s.rect, p, handleRadius); ok {
			s.drag = dragResizing
			s.corner = c
			return
		}
		if s.rect.Contains(p) {
			s.drag = dragMoving
			s.offset = p.Sub(s.rect.Min)
			return
		}
	}
	s.drag = dragCreating
	s.anchor = p
	s.rect = Rect{Min: p, Max: p}
	s.has = true
}

// Drag updates the selection for the current pointer position.
func (s *Selector) Drag(p Point) {
	switch s.drag {
	case dragCreating:
		s.rect = RectFromPoints(s.anchor, p).Intersect(s.bounds)
	case dragMoving:
		w := s.rect.Width()
		h := s.rect.Height()
		min := p.Sub(s.offset)
		min.X = clampFloat(min.X, 0, s.bounds.Max.X-w)
		min.Y = clampFloat(min.Y, 0, s.bounds.Max.Y-h)
		s.rect = Rect{Min: min, Max: Point{min.X + w, min.Y + h}}
	case dragResizing:
		r := s.rect
		switch s.corner {
		case CornerTopLeft:
			r.Min = p
		case CornerTopRight:
			r.Min.Y = p.Y
			r.Max.X = p.X
		case CornerBottomLeft:
			r.Min.X = p.X
			r.Max.Y = p.Y
		case CornerBottomRight:
			r.Max = p
		}
		s.rect = r.Normalize().Intersect(s.bounds).Normalize()
	}
}

// Release ends the drag, discarding selections under one pixel in either
// dimension. It reports whether a selection remains.
func (s *Selector) Release() bool {
	s.drag = dragNone
	if s.has && (s.rect.Width() < 1 || s.rect.Height() < 1) {
		s.has = false
	}
	return s.has
}

// Cursor returns the affordance for the pointer at p. down should be
// true while the primary button is held.
func (s *Selector) Cursor(p Point, handleRadius float64, down bool) CursorKind {
	if s.drag == dragResizing {
		return resizeCursor(s.corner)
	}
	if s.drag == dragMoving {
		return CursorGrabbing
	}
	if s.has {
		if c, ok := HitCorner(s.rect, p, handleRadius); ok {
			return resizeCursor(c)
		}
		if s.rect.Contains(p) {
			if down {
				return CursorGrabbing
			}
			return CursorGrab
		}
	}
	if s.bounds.Contains(p) {
		return CursorCrosshair
	}
	return CursorDefault
}

func resizeCursor(c Corner) CursorKind {
	if c == CornerTopLeft || c == CornerBottomRight {
		return CursorResizeNWSE
	}
	return CursorResizeNESW
}

// HandleRadius converts the fixed on-screen handle size to image pixels
// for the given device pixel ratio.
func HandleRadius(scale float64) float64 {
	return 6 * math.Max(scale, 1)
}
