package ui

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/theme"
)

const bottomHeight = 24

var toolbarWidth = 72

var (
	palette = []color.RGBA{
		{0, 0, 0, 255},       // black
		{255, 255, 255, 255}, // white
		{255, 0, 0, 255},
		{0, 255, 0, 255},
		{0, 0, 255, 255},
		{255, 255, 0, 255},
		{0, 255, 255, 255},
		{255, 0, 255, 255},
		{128, 0, 0, 255},
		{0, 128, 0, 255},
		{0, 0, 128, 255},
		{128, 128, 0, 255},
		{0, 128, 128, 255},
		{128, 0, 128, 255},
		{192, 192, 192, 255},
		{128, 128, 128, 255},
	}
)

var sizeOptions = []float64{1, 2, 3, 4, 6, 8, 12}

// toolEntries lists the toolbar buttons in display order.
var toolEntries = []struct {
	label string
	tool  editor.Tool
}{
	{"S:Select", editor.ToolSelect},
	{"P:Pencil", editor.ToolPencil},
	{"M:Marker", editor.ToolMarker},
	{"L:Line", editor.ToolLine},
	{"K:MkLine", editor.ToolMarkerLine},
	{"A:Arrow", editor.ToolArrow},
	{"X:Box", editor.ToolRect},
	{"O:Circle", editor.ToolCircle},
	{"N:Count", editor.ToolCircleCount},
	{"T:Text", editor.ToolText},
	{"I:Pixel", editor.ToolPixelate},
	{"U:Blur", editor.ToolBlur},
}

// measureToolbarWidth widens the toolbar so the title and every tool
// label fit without clipping.
func measureToolbarWidth(title string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	max := d.MeasureString(title).Ceil() + 8
	for _, te := range toolEntries {
		w := d.MeasureString(te.label).Ceil() + 8
		if w > max {
			max = w
		}
	}
	if max < toolbarWidth {
		return toolbarWidth
	}
	return max
}

func drawBorder(dst *image.RGBA, rect image.Rectangle, col color.Color) {
	for x := rect.Min.X; x < rect.Max.X; x++ {
		dst.Set(x, rect.Min.Y, col)
		dst.Set(x, rect.Max.Y-1, col)
	}
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		dst.Set(rect.Min.X, y, col)
		dst.Set(rect.Max.X-1, y, col)
	}
}

// chrome tracks hit rectangles for the interactive regions of a frame.
// Rebuilt on every paint and handed to the session so canvas events do
// not fire underneath the controls.
type chrome struct {
	theme         *theme.Theme
	toolButtons   []*CacheButton
	actionButtons []*CacheButton
	paletteRect   []image.Rectangle
	sizeRect      []image.Rectangle

	hoverTool    int
	hoverPalette int
	hoverSize    int
	hoverAction  int
}

func newChrome(th *theme.Theme) *chrome {
	return &chrome{theme: th, hoverTool: -1, hoverPalette: -1, hoverSize: -1, hoverAction: -1}
}

// rects returns every chrome rectangle the canvas must not see,
// including the floating action buttons at their last painted spots.
func (c *chrome) rects(width, height int) []image.Rectangle {
	out := []image.Rectangle{
		image.Rect(0, 0, toolbarWidth, height),
		image.Rect(0, height-bottomHeight, width, height),
	}
	for _, cb := range c.actionButtons {
		if r := cb.Rect(); !r.Empty() {
			out = append(out, r)
		}
	}
	return out
}

func (c *chrome) drawToolbar(dst *image.RGBA, height int, sess *editor.Session) {
	draw.Draw(dst, image.Rect(0, 0, toolbarWidth, height),
		&image.Uniform{c.theme.ToolbarBackground}, image.Point{}, draw.Src)

	title := &font.Drawer{Dst: dst, Src: image.NewUniform(c.theme.Foreground),
		Face: basicfont.Face7x13, Dot: fixed.P(4, 16)}
	title.DrawString("SnapMark")

	y := 24
	for i, cb := range c.toolButtons {
		r := image.Rect(0, y, toolbarWidth, y+24)
		cb.SetRect(r)
		tb := cb.Button.(*ToolButton)
		state := StateDefault
		if editor.Tool(tb.tool) == sess.Tool() {
			state = StatePressed
		} else if i == c.hoverTool {
			state = StateHover
		}
		cb.Draw(dst, state)
		y += 24
	}

	// color swatches below the tools
	y += 4
	x := 4
	c.paletteRect = c.paletteRect[:0]
	cur := sess.Color()
	selected := color.RGBA{cur.R, cur.G, cur.B, 255}
	for i, p := range palette {
		rect := image.Rect(x, y, x+16, y+16)
		draw.Draw(dst, rect, &image.Uniform{p}, image.Point{}, draw.Src)
		if i == c.hoverPalette {
			draw.Draw(dst, rect, &image.Uniform{color.RGBA{255, 255, 255, 80}}, image.Point{}, draw.Over)
		}
		if p == selected {
			drawBorder(dst, rect, c.theme.SelectionBorder)
		}
		c.paletteRect = append(c.paletteRect, rect)
		x += 18
		if x+16 > toolbarWidth {
			x = 4
			y += 18
		}
	}
	if x != 4 {
		y += 18
	}

	// stroke size options with a sample line in the current color
	y += 4
	c.sizeRect = c.sizeRect[:0]
	for i, sz := range sizeOptions {
		rect := image.Rect(0, y, toolbarWidth, y+16)
		bg := c.theme.ButtonBackground
		if sz == sess.Size() {
			bg = c.theme.ButtonBackgroundPress
		} else if i == c.hoverSize {
			bg = c.theme.ButtonBackgroundHover
		}
		draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
		d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.theme.ButtonText),
			Face: basicfont.Face7x13, Dot: fixed.P(4, y+12)}
		d.DrawString(fmt.Sprintf("%g", sz))
		lineY := float64(y + 8)
		editor.DrawLine(dst, editor.Pt(30, lineY), editor.Pt(float64(toolbarWidth-4), lineY), cur, sz)
		c.sizeRect = append(c.sizeRect, rect)
		y += 16
	}
}

const (
	actionButtonW = 58
	actionButtonH = 20
	actionSpacing = 6
)

// drawActions floats the action buttons around the selection, filling
// the row below it first and spilling to the sides as space runs out.
func (c *chrome) drawActions(dst *image.RGBA, sel, canvas image.Rectangle) {
	selRect := editor.Rect{
		Min: editor.Pt(float64(sel.Min.X), float64(sel.Min.Y)),
		Max: editor.Pt(float64(sel.Max.X), float64(sel.Max.Y)),
	}
	bounds := editor.Rect{
		Min: editor.Pt(float64(canvas.Min.X), float64(canvas.Min.Y)),
		Max: editor.Pt(float64(canvas.Max.X), float64(canvas.Max.Y)),
	}
	size := editor.Pt(actionButtonW, actionButtonH)
	pts := editor.LayoutButtons(selRect, bounds, size, actionSpacing, len(c.actionButtons))
	for i, cb := range c.actionButtons {
		if i >= len(pts) {
			cb.SetRect(image.Rectangle{})
			continue
		}
		x, y := int(pts[i].X), int(pts[i].Y)
		cb.SetRect(image.Rect(x, y, x+actionButtonW, y+actionButtonH))
		state := StateDefault
		if i == c.hoverAction {
			state = StateHover
		}
		cb.Draw(dst, state)
	}
}

// hideActions clears the action hit rects while no selection exists.
func (c *chrome) hideActions() {
	for _, cb := range c.actionButtons {
		cb.SetRect(image.Rectangle{})
	}
}

func (c *chrome) drawStatus(dst *image.RGBA, width, height int, sess *editor.Session) {
	rect := image.Rect(0, height-bottomHeight, width, height)
	draw.Draw(dst, rect, &image.Uniform{c.theme.StatusBackground}, image.Point{}, draw.Src)

	line := sess.Status()
	if line == "" {
		line = statusHint(sess)
	}
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c.theme.StatusText),
		Face: basicfont.Face7x13, Dot: fixed.P(toolbarWidth+4, height-bottomHeight+16)}
	d.DrawString(line)
}

func statusHint(sess *editor.Session) string {
	if _, ok := sess.SelectionRect(); !ok {
		return "Drag to select a region"
	}
	if sess.TextInput() != nil {
		return "Type text, Enter to place, Esc to cancel"
	}
	return fmt.Sprintf("%s  |  ^Z:undo ^Y:redo ^C:copy ^S:save Esc:close", sess.Tool())
}

// press dispatches a click inside the chrome. Returns true when the
// click was consumed by a control.
func (c *chrome) press(p image.Point, sess *editor.Session) bool {
	for _, cb := range c.toolButtons {
		if p.In(cb.Rect()) {
			cb.Activate()
			return true
		}
	}
	for _, cb := range c.actionButtons {
		if p.In(cb.Rect()) {
			cb.Activate()
			return true
		}
	}
	for i, r := range c.paletteRect {
		if p.In(r) {
			col := palette[i]
			if sess.Tool() == editor.ToolMarker || sess.Tool() == editor.ToolMarkerLine {
				// markers keep their translucency when recolored
				prev := sess.Color()
				col.A = prev.A
			}
			sess.SetColor(col)
			return true
		}
	}
	for i, r := range c.sizeRect {
		if p.In(r) {
			sess.SetSize(sizeOptions[i])
			return true
		}
	}
	return p.X < toolbarWidth
}

// hover updates the hover indices and reports whether they changed.
func (c *chrome) hover(p image.Point) bool {
	tool, pal, size, action := -1, -1, -1, -1
	for i, cb := range c.toolButtons {
		if p.In(cb.Rect()) {
			tool = i
			break
		}
	}
	for i, cb := range c.actionButtons {
		if p.In(cb.Rect()) {
			action = i
			break
		}
	}
	for i, r := range c.paletteRect {
		if p.In(r) {
			pal = i
			break
		}
	}
	for i, r := range c.sizeRect {
		if p.In(r) {
			size = i
			break
		}
	}
	changed := tool != c.hoverTool || pal != c.hoverPalette ||
		size != c.hoverSize || action != c.hoverAction
	c.hoverTool, c.hoverPalette, c.hoverSize, c.hoverAction = tool, pal, size, action
	return changed
}

func (c *chrome) buildButtons(sess *editor.Session) {
	c.toolButtons = c.toolButtons[:0]
	for _, te := range toolEntries {
		t := te.tool
		tb := &ToolButton{label: te.label, tool: int(t), theme: c.theme}
		tb.onSelect = func() { sess.SetTool(t) }
		c.toolButtons = append(c.toolButtons, &CacheButton{Button: tb})
	}
}

// bindActions appends toolbar buttons for the named session actions.
func (c *chrome) bindActions(actions map[string]func()) {
	c.actionButtons = c.actionButtons[:0]
	for _, entry := range []struct{ label, name string }{
		{"^Z:Undo", "undo"},
		{"^Y:Redo", "redo"},
		{"Del:Clear", "clear"},
		{"^C:Copy", "copy"},
		{"^S:Save", "save"},
	} {
		fn := actions[entry.name]
		if fn == nil {
			continue
		}
		ab := &ActionButton{label: entry.label, theme: c.theme, onActivate: fn}
		c.actionButtons = append(c.actionButtons, &CacheButton{Button: ab})
	}
}
