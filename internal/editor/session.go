package editor

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
)

// Sinks are the export targets a session hands its composed image to.
// Both are allowed to fail; failures set a status message and keep the
// session open so the user can retry.
type Sinks struct {
	// Copy places the image on the system clipboard.
	Copy func(img *image.RGBA) (string, error)
	// Save writes the image to disk and returns the path used.
	Save func(img *image.RGBA) (string, error)
}

// TextInput is the pending inline text entry, if any. The frontend draws
// the box and caret; the session owns the buffer.
type TextInput struct {
	Pos  Point
	Text string
}

// Session is the annotation editor state for one capture. It is owned by
// a single goroutine; the frontend feeds it events and reads it back
// when painting a frame.
type Session struct {
	base *image.RGBA
	hist History

	sel    *Selector
	active Shape
	text   *TextInput

	tool         Tool
	lastDrawTool Tool
	color        color.RGBA
	size         float64

	origin  Point
	scale   float64
	uiRects []image.Rectangle

	cache       PreviewCache
	flatBase    *image.RGBA
	flatVersion uint64
	flatValid   bool

	status string
	closed bool

	sinks Sinks
}

// NewSession wraps a captured image in an editor session.
func NewSession(base *image.RGBA, sinks Sinks) *Session {
	b := base.Bounds()
	return &Session{
		base:         base,
		sel:          NewSelector(b.Dx(), b.Dy()),
		tool:         ToolSelect,
		lastDrawTool: ToolPencil,
		color:        color.RGBA{R: 255, A: 255},
		size:         3,
		scale:        1,
		sinks:        sinks,
	}
}

func (s *Session) Image() *image.RGBA    { return s.base }
func (s *Session) Tool() Tool            { return s.tool }
func (s *Session) Color() color.RGBA     { return s.color }
func (s *Session) Size() float64         { return s.size }
func (s *Session) Status() string        { return s.status }
func (s *Session) Closed() bool          { return s.closed }
func (s *Session) Version() uint64       { return s.hist.Version() }
func (s *Session) TextInput() *TextInput { return s.text }
func (s *Session) ActiveShape() Shape    { return s.active }

func (s *Session) SetColor(c color.RGBA) { s.color = c }

func (s *Session) SetSize(size float64) {
	s.size = clampFloat(size, 1, 64)
}

// SetTool switches tools, remembering the last drawing tool so Enter can
// jump back to it from Select.
func (s *Session) SetTool(t Tool) {
	s.tool = t
	if t.IsDrawTool() && t != ToolText {
		s.lastDrawTool = t
	}
	s.active = nil
}

// SetViewport tells the session where the image sits in the window and
// the device pixel ratio, so pointer events can be mapped to image
// pixels.
func (s *Session) SetViewport(origin Point, scale float64) {
	s.origin = origin
	if scale > 0 {
		s.scale = scale
	}
}

// SetUIRects replaces the chrome regions, in window coordinates, that
// swallow pointer events before they reach the canvas. The frontend
// reports these once per frame.
func (s *Session) SetUIRects(rects []image.Rectangle) {
	s.uiRects = rects
}

// ToImage converts a window coordinate to image pixel space.
func (s *Session) ToImage(wx, wy float64) Point {
	return Point{(wx - s.origin.X) * s.scale, (wy - s.origin.Y) * s.scale}
}

func (s *Session) overUI(wx, wy float64) bool {
	p := image.Pt(int(wx), int(wy))
	for _, r := range s.uiRects {
		if p.In(r) {
			return true
		}
	}
	return false
}

// SelectionRect returns the crop region, if one exists.
func (s *Session) SelectionRect() (Rect, bool) { return s.sel.Rect() }

// SetSelection replaces the crop region, clipped to the image.
func (s *Session) SetSelection(r Rect) { s.sel.Set(r) }

// Cursor returns the pointer affordance for the window position.
func (s *Session) Cursor(wx, wy float64, down bool) CursorKind {
	if s.overUI(wx, wy) {
		return CursorDefault
	}
	if s.tool != ToolSelect {
		return CursorCrosshair
	}
	return s.sel.Cursor(s.ToImage(wx, wy), HandleRadius(s.scale), down)
}

// PointerPressed handles a primary button press at a window coordinate.
func (s *Session) PointerPressed(wx, wy float64) {
	if s.closed || s.overUI(wx, wy) {
		return
	}
	p := s.ToImage(wx, wy)
	if s.tool == ToolSelect {
		s.sel.Press(p, HandleRadius(s.scale))
		return
	}
	sel, ok := s.sel.Rect()
	if !ok || !sel.Contains(p) {
		return
	}
	s.active = s.newShapeAt(p)
}

func (s *Session) newShapeAt(p Point) Shape {
	switch s.tool {
	case ToolPencil:
		return &Stroke{Points: []Point{p}, Color: s.color, Size: s.size}
	case ToolMarker:
		return &Stroke{Points: []Point{p}, Color: markerColor(s.color), Size: markerSize(s.size)}
	case ToolMarkerLine:
		return &Line{Start: p, End: p, Color: markerColor(s.color), Size: markerSize(s.size)}
	case ToolLine:
		return &Line{Start: p, End: p, Color: s.color, Size: s.size}
	case ToolArrow:
		return &Arrow{Start: p, End: p, Color: s.color, Size: s.size}
	case ToolRect:
		return &Box{Start: p, End: p, Color: s.color, Size: s.size}
	case ToolCircle:
		return &Circle{Start: p, End: p, Color: s.color, Size: s.size}
	case ToolCircleCount:
		return &CircleCount{Center: p, Pointer: p, Color: s.color, Size: s.size, Count: s.hist.NextCount()}
	case ToolPixelate:
		return &Effect{Start: p, End: p, Kind: EffectPixelate, Strength: math.Max(math.Round(s.size), 4)}
	case ToolBlur:
		return &Effect{Start: p, End: p, Kind: EffectBlur, Strength: math.Max(math.Round(s.size), 2)}
	case ToolText:
		s.text = &TextInput{Pos: p}
		return nil
	}
	return nil
}

// The marker variants stamp a translucent wide stroke; the alpha lives
// in the stored color so renders stay deterministic.
const markerAlpha = 120

func markerColor(c color.RGBA) color.RGBA {
	c.A = markerAlpha
	return c
}

func markerSize(size float64) float64 { return math.Max(size, 6) }

// PointerDragged extends the selection drag or the active shape.
func (s *Session) PointerDragged(wx, wy float64) {
	if s.closed {
		return
	}
	p := s.ToImage(wx, wy)
	if s.sel.Dragging() {
		s.sel.Drag(p)
		return
	}
	switch v := s.active.(type) {
	case *Stroke:
		v.Points = append(v.Points, p)
	case *Line:
		v.End = p
	case *Arrow:
		v.End = p
	case *Box:
		v.End = p
	case *Circle:
		v.End = p
	case *CircleCount:
		v.Pointer = p
	case *Effect:
		v.End = p
	}
}

// PointerReleased commits the active shape or finishes the selection
// drag.
func (s *Session) PointerReleased(wx, wy float64) {
	if s.closed {
		return
	}
	if s.sel.Dragging() {
		s.PointerDragged(wx, wy)
		s.sel.Release()
		return
	}
	if s.active != nil {
		s.hist.Commit(s.active)
		s.active = nil
	}
}

// Undo, Redo, and ClearShapes mirror the history operations and cancel
// any in-progress shape first.

func (s *Session) Undo() {
	s.active = nil
	s.hist.Undo()
}

func (s *Session) Redo() {
	s.active = nil
	s.hist.Redo()
}

func (s *Session) ClearShapes() {
	s.active = nil
	s.hist.Clear()
}

// InsertRune appends to the pending text entry, if one is open.
func (s *Session) InsertRune(r rune) {
	if s.text == nil {
		return
	}
	s.text.Text += string(r)
}

// DeleteRune removes the last rune from the pending text entry.
func (s *Session) DeleteRune() {
	if s.text == nil || s.text.Text == "" {
		return
	}
	rs := []rune(s.text.Text)
	s.text.Text = string(rs[:len(rs)-1])
}

// Enter commits pending text input, or switches back to the last drawing
// tool when the Select tool is active over a selection.
func (s *Session) Enter() {
	if s.text != nil {
		trimmed := strings.TrimSpace(s.text.Text)
		if trimmed != "" {
			s.hist.Commit(&Text{
				Pos:   s.text.Pos,
				Text:  trimmed,
				Color: s.color,
				Size:  math.Max(s.size, 8),
			})
		}
		s.text = nil
		return
	}
	if s.tool == ToolSelect {
		if _, ok := s.sel.Rect(); ok {
			s.SetTool(s.lastDrawTool)
		}
	}
}

// Escape cancels pending text input, or closes the session.
func (s *Session) Escape() {
	if s.text != nil {
		s.text = nil
		return
	}
	s.closed = true
}

// Export renders the final image: the full shape list replayed onto the
// base, cropped to the selection when one exists.
func (s *Session) Export() *image.RGBA {
	img := Render(s.base, s.hist.Shapes(), nil)
	if r, ok := s.sel.Rect(); ok {
		return Crop(img, r)
	}
	return img
}

// CopyToClipboard exports and hands the image to the clipboard sink. On
// success the session closes; on failure it stays open with a status
// message.
func (s *Session) CopyToClipboard() {
	if s.sinks.Copy == nil {
		s.status = "Clipboard not available"
		return
	}
	detail, err := s.sinks.Copy(s.Export())
	if err != nil {
		s.status = fmt.Sprintf("Clipboard copy failed: %v", err)
		return
	}
	if detail != "" {
		s.status = fmt.Sprintf("Copied to clipboard (%s)", detail)
	} else {
		s.status = "Copied to clipboard"
	}
	s.closed = true
}

// SaveToFile exports and hands the image to the file sink. On success
// the session closes; on failure it stays open with a status message.
func (s *Session) SaveToFile() {
	if s.sinks.Save == nil {
		s.status = "Saving not available"
		return
	}
	path, err := s.sinks.Save(s.Export())
	if err != nil {
		s.status = fmt.Sprintf("Save failed: %v", err)
		return
	}
	s.status = fmt.Sprintf("Saved to %s", path)
	s.closed = true
}

// flattened returns the base with every non-effect shape baked in,
// cached against the history version.
func (s *Session) flattened() *image.RGBA {
	if !s.flatValid || s.flatVersion != s.hist.Version() {
		s.flatBase = RenderWithoutEffects(s.base, s.hist.Shapes())
		s.flatVersion = s.hist.Version()
		s.flatValid = true
	}
	return s.flatBase
}

// Composite builds the frame the editor shows: non-effect shapes baked
// onto the base, effect previews blitted over their regions, and the
// active shape drawn on top. Effect previews approximate the strict
// in-order replay that Export performs, trading exactness for cheap
// interactive updates via the preview cache.
func (s *Session) Composite() *image.RGBA {
	flat := s.flattened()
	out := cloneRGBA(flat)
	idx := 0
	for _, sh := range s.hist.Shapes() {
		e, ok := sh.(*Effect)
		if !ok {
			continue
		}
		if p := s.cache.Preview(flat, e, idx, s.hist.Version()); p != nil {
			blit(out, p)
		}
		idx++
	}
	if s.active != nil {
		drawShape(out, s.active, true)
	}
	return out
}

func blit(dst *image.RGBA, p *Preview) {
	w := p.Rect.Dx()
	for y := 0; y < p.Rect.Dy(); y++ {
		src := p.Image.PixOffset(p.Image.Bounds().Min.X, p.Image.Bounds().Min.Y+y)
		di := dst.PixOffset(p.Rect.Min.X, p.Rect.Min.Y+y)
		copy(dst.Pix[di:di+w*4], p.Image.Pix[src:src+w*4])
	}
}
