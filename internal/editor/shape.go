package editor

import "image/color"

// Tool identifies the annotation mode selected in the toolbar.
type Tool int

const (
	ToolSelect Tool = iota
	ToolPencil
	ToolMarker
	ToolMarkerLine
	ToolLine
	ToolArrow
	ToolRect
	ToolCircle
	ToolCircleCount
	ToolText
	ToolPixelate
	ToolBlur
)

var toolNames = map[Tool]string{
	ToolSelect:      "select",
	ToolPencil:      "pencil",
	ToolMarker:      "marker",
	ToolMarkerLine:  "marker-line",
	ToolLine:        "line",
	ToolArrow:       "arrow",
	ToolRect:        "rect",
	ToolCircle:      "circle",
	ToolCircleCount: "count",
	ToolText:        "text",
	ToolPixelate:    "pixelate",
	ToolBlur:        "blur",
}

func (t Tool) String() string {
	if s, ok := toolNames[t]; ok {
		return s
	}
	return "unknown"
}

// ToolByName resolves a tool from its configuration name.
func ToolByName(name string) (Tool, bool) {
	for t, s := range toolNames {
		if s == name {
			return t, true
		}
	}
	return 0, false
}

// IsDrawTool reports whether the tool creates shapes when dragging on the
// canvas. Select is the only non-drawing tool.
func (t Tool) IsDrawTool() bool { return t != ToolSelect }

// EffectKind selects the redaction algorithm of an Effect shape.
type EffectKind int

const (
	EffectPixelate EffectKind = iota
	EffectBlur
)

// Shape is a committed annotation. The set is closed; rendering switches
// exhaustively over these types. All coordinates are image pixel space
// and shapes are treated as immutable once committed.
type Shape interface {
	isShape()
}

// Stroke is a freehand polyline stamped point to point.
type Stroke struct {
	Points []Point
	Color  color.RGBA
	Size   float64
}

// Line is a straight segment between two endpoints.
type Line struct {
	Start, End Point
	Color      color.RGBA
	Size       float64
}

// Arrow is a line with a filled triangular head at End.
type Arrow struct {
	Start, End Point
	Color      color.RGBA
	Size       float64
}

// Box is a rectangle outline spanned by two corners.
type Box struct {
	Start, End Point
	Color      color.RGBA
	Size       float64
}

// Circle is an ellipse outline inscribed in the rectangle spanned by two
// corners.
type Circle struct {
	Start, End Point
	Color      color.RGBA
	Size       float64
}

// CircleCount is a numbered callout bubble with an optional leader wedge
// toward Pointer.
type CircleCount struct {
	Center  Point
	Pointer Point
	Color   color.RGBA
	Size    float64
	Count   int
}

// Text is a bitmap text label anchored at its top-left corner.
type Text struct {
	Pos   Point
	Text  string
	Color color.RGBA
	Size  float64
}

// Effect redacts the rectangle spanned by two corners. Strength is the
// pixelate block size or the blur radius depending on Kind.
type Effect struct {
	Start, End Point
	Strength   float64
	Kind       EffectKind
}

func (*Stroke) isShape()      {}
func (*Line) isShape()        {}
func (*Arrow) isShape()       {}
func (*Box) isShape()         {}
func (*Circle) isShape()      {}
func (*CircleCount) isShape() {}
func (*Text) isShape()        {}
func (*Effect) isShape()      {}

// History holds the committed shape list and the redo stack. The version
// counter changes on every mutation and keys the effect preview cache;
// only equality of versions is ever tested so wraparound is harmless.
type History struct {
	shapes  []Shape
	redo    []Shape
	version uint64
}

// Shapes returns the committed list in commit order. Callers must not
// mutate the returned slice.
func (h *History) Shapes() []Shape { return h.shapes }

func (h *History) Len() int { return len(h.shapes) }

func (h *History) Version() uint64 { return h.version }

// Commit appends s and discards any redoable shapes.
func (h *History) Commit(s Shape) {
	h.shapes = append(h.shapes, s)
	h.redo = h.redo[:0]
	h.version++
}

// Undo removes the most recent shape onto the redo stack. It reports
// whether anything changed.
func (h *History) Undo() bool {
	if len(h.shapes) == 0 {
		return false
	}
	last := h.shapes[len(h.shapes)-1]
	h.shapes = h.shapes[:len(h.shapes)-1]
	h.redo = append(h.redo, last)
	h.version++
	return true
}

// Redo restores the most recently undone shape.
func (h *History) Redo() bool {
	if len(h.redo) == 0 {
		return false
	}
	last := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.shapes = append(h.shapes, last)
	h.version++
	return true
}

// Clear drops all shapes and the redo stack. A clear of an already empty
// history is a no-op and does not bump the version.
func (h *History) Clear() bool {
	if len(h.shapes) == 0 {
		return false
	}
	h.shapes = nil
	h.redo = nil
	h.version++
	return true
}

// NextCount returns one more than the highest callout count in the list,
// starting at 1. Numbering is max-based so undoing or clearing unrelated
// shapes never reuses a number that is still visible.
func (h *History) NextCount() int {
	max := 0
	for _, s := range h.shapes {
		if c, ok := s.(*CircleCount); ok && c.Count > max {
			max = c.Count
		}
	}
	return max + 1
}
