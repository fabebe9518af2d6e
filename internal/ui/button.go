package ui

import (
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/theme"
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StatePressed
)

// Button represents an interactive UI element.
// Activate performs the button's action when clicked.
type Button interface {
	Draw(dst *image.RGBA, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
}

// CacheButton wraps another Button and caches its rendered states.
// It delegates all interface methods to the wrapped Button while
// caching the result of Draw for each state.
type CacheButton struct {
	Button
	cache [3]*image.RGBA
}

var _ Button = (*CacheButton)(nil)

func (cb *CacheButton) Draw(dst *image.RGBA, state ButtonState) {
	if cb.cache[state] == nil {
		rect := cb.Button.Rect()
		img := image.NewRGBA(rect)
		cb.Button.Draw(img, state)
		cb.cache[state] = img
	}
	draw.Draw(dst, cb.Button.Rect(), cb.cache[state], cb.Button.Rect().Min, draw.Src)
}

func (cb *CacheButton) Rect() image.Rectangle { return cb.Button.Rect() }

func (cb *CacheButton) SetRect(r image.Rectangle) {
	if r != cb.Button.Rect() {
		cb.Button.SetRect(r)
		cb.cache = [3]*image.RGBA{}
	}
}

func (cb *CacheButton) Activate() { cb.Button.Activate() }

// ActionButton is a labelled toolbar button that triggers an action.
type ActionButton struct {
	label      string
	theme      *theme.Theme
	rect       image.Rectangle
	onActivate func()
}

func (ab *ActionButton) Draw(dst *image.RGBA, state ButtonState) {
	drawButtonFace(dst, ab.rect, ab.label, ab.theme, state)
}

func (ab *ActionButton) Rect() image.Rectangle { return ab.rect }

func (ab *ActionButton) SetRect(r image.Rectangle) {
	if r != ab.rect {
		ab.rect = r
	}
}

func (ab *ActionButton) Activate() {
	if ab.onActivate != nil {
		ab.onActivate()
	}
}

// ToolButton is a toolbar button that selects an editing tool.
type ToolButton struct {
	label string
	tool  int
	theme *theme.Theme
	rect  image.Rectangle
	// onSelect is called when the button is activated.
	onSelect func()
}

func (tb *ToolButton) Draw(dst *image.RGBA, state ButtonState) {
	drawButtonFace(dst, tb.rect, tb.label, tb.theme, state)
}

func (tb *ToolButton) Rect() image.Rectangle { return tb.rect }

func (tb *ToolButton) SetRect(r image.Rectangle) {
	if r != tb.rect {
		tb.rect = r
	}
}

func (tb *ToolButton) Activate() {
	if tb.onSelect != nil {
		tb.onSelect()
	}
}

func drawButtonFace(dst *image.RGBA, rect image.Rectangle, label string, th *theme.Theme, state ButtonState) {
	bg := th.ButtonBackground
	fg := th.ButtonText
	switch state {
	case StateHover:
		bg = th.ButtonBackgroundHover
		fg = th.ButtonTextHover
	case StatePressed:
		bg = th.ButtonBackgroundPress
		fg = th.ButtonTextPress
	}
	draw.Draw(dst, rect, &image.Uniform{bg}, image.Point{}, draw.Src)
	drawBorder(dst, rect, th.ButtonBorder)
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(fg), Face: basicfont.Face7x13,
		Dot: fixed.P(rect.Min.X+4, rect.Min.Y+16)}
	d.DrawString(label)
}
