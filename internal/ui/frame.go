package ui

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"

	"golang.org/x/exp/shiny/screen"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/example/snapmark/internal/editor"
)

// frameDropThreshold specifies how many consecutive frames can be canceled
// before a draw is allowed to complete to keep the UI responsive.
const frameDropThreshold = 10

var messageFace font.Face

func init() {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		log.Fatalf("parse font: %v", err)
	}
	messageFace, err = opentype.NewFace(f, &opentype.FaceOptions{Size: 28, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		log.Fatalf("font face: %v", err)
	}
}

// backdropCache holds a cached checkerboard backdrop.
var backdropCache *image.RGBA

// drawCheckerboard fills rect of dst with a checkerboard pattern of the given
// colors. size controls the checker square size.
func drawCheckerboard(dst *image.RGBA, rect image.Rectangle, size int, light, dark color.Color) {
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if ((x/size)+(y/size))%2 == 0 {
				dst.Set(x, y, light)
			} else {
				dst.Set(x, y, dark)
			}
		}
	}
}

func drawBackdrop(dst *image.RGBA, light, dark color.RGBA) {
	b := dst.Bounds()
	if backdropCache == nil || backdropCache.Bounds() != b {
		backdropCache = image.NewRGBA(b)
		drawCheckerboard(backdropCache, backdropCache.Bounds(), 8, light, dark)
	}
	draw.Draw(dst, b, backdropCache, image.Point{}, draw.Src)
}

func drawDashedHLine(dst *image.RGBA, x0, x1, y, dash int, c1, c2 color.Color) {
	if x1 < x0 {
		x0, x1 = x1, x0
	}
	for x := x0; x <= x1; x++ {
		col := c1
		if ((x-x0)/dash)%2 == 1 {
			col = c2
		}
		dst.Set(x, y, col)
	}
}

func drawDashedVLine(dst *image.RGBA, x, y0, y1, dash int, c1, c2 color.Color) {
	if y1 < y0 {
		y0, y1 = y1, y0
	}
	for y := y0; y <= y1; y++ {
		col := c1
		if ((y-y0)/dash)%2 == 1 {
			col = c2
		}
		dst.Set(x, y, col)
	}
}

func drawDashedRect(dst *image.RGBA, rect image.Rectangle, dash int, c1, c2 color.Color) {
	drawDashedHLine(dst, rect.Min.X, rect.Max.X-1, rect.Min.Y, dash, c1, c2)
	drawDashedHLine(dst, rect.Min.X, rect.Max.X-1, rect.Max.Y-1, dash, c1, c2)
	drawDashedVLine(dst, rect.Min.X, rect.Min.Y, rect.Max.Y-1, dash, c1, c2)
	drawDashedVLine(dst, rect.Max.X-1, rect.Min.Y, rect.Max.Y-1, dash, c1, c2)
}

// hudAnchor places the dimension readout just inside the selection,
// pulled back so it never leaves the window.
func hudAnchor(sel, win image.Rectangle, w, h int) image.Point {
	p := sel.Min.Add(image.Pt(6, 6))
	if p.X+w > win.Max.X {
		p.X = win.Max.X - w
	}
	if p.Y+h > win.Max.Y {
		p.Y = win.Max.Y - h
	}
	if p.X < win.Min.X {
		p.X = win.Min.X
	}
	if p.Y < win.Min.Y {
		p.Y = win.Min.Y
	}
	return p
}

type paintState struct {
	width, height int
	zoom          float64
	origin        image.Point
	pointer       image.Point
	pointerValid  bool
	pointerDown   bool
}

type frontend struct {
	sess   *editor.Session
	chrome *chrome
}

// imageToWindow maps an image-space rectangle into window pixels.
func imageToWindow(r editor.Rect, origin image.Point, zoom float64) image.Rectangle {
	return image.Rect(
		origin.X+int(r.Min.X*zoom),
		origin.Y+int(r.Min.Y*zoom),
		origin.X+int(r.Max.X*zoom),
		origin.Y+int(r.Max.Y*zoom),
	)
}

func (f *frontend) drawFrame(ctx context.Context, s screen.Screen, w screen.Window, st paintState) {
	b, err := s.NewBuffer(image.Point{st.width, st.height})
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()

	th := f.chrome.theme
	dst := b.RGBA()
	drawBackdrop(dst, th.CheckerLight, th.CheckerDark)
	if ctx.Err() != nil {
		return
	}

	frame := f.sess.Composite()
	if ti := f.sess.TextInput(); ti != nil {
		// pending text with a caret, drawn in image space so it scales
		// with the canvas
		scale := int(f.sess.Size() / 6)
		if scale < 1 {
			scale = 1
		}
		editor.DrawText(frame, ti.Pos, ti.Text+"_", f.sess.Color(), scale)
	}
	if ctx.Err() != nil {
		return
	}

	ib := frame.Bounds()
	dstRect := image.Rect(
		st.origin.X, st.origin.Y,
		st.origin.X+int(float64(ib.Dx())*st.zoom),
		st.origin.Y+int(float64(ib.Dy())*st.zoom),
	)
	xdraw.NearestNeighbor.Scale(dst, dstRect, frame, ib, draw.Over, nil)
	if ctx.Err() != nil {
		return
	}

	if sel, ok := f.sess.SelectionRect(); ok {
		f.drawSelection(dst, sel, dstRect, st)
	} else {
		f.chrome.hideActions()
		f.drawHelp(dst, dstRect)
	}
	if ctx.Err() != nil {
		return
	}

	if st.pointerValid {
		f.drawPointerHint(dst, st)
	}

	f.chrome.drawToolbar(dst, st.height, f.sess)
	f.chrome.drawStatus(dst, st.width, st.height, f.sess)
	if ctx.Err() != nil {
		return
	}

	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}

func (f *frontend) drawSelection(dst *image.RGBA, sel editor.Rect, canvas image.Rectangle, st paintState) {
	th := f.chrome.theme
	r := imageToWindow(sel, st.origin, st.zoom).Intersect(canvas)
	if r.Empty() {
		f.chrome.hideActions()
		return
	}

	// shade everything outside the selection
	over := &image.Uniform{th.DimOverlay}
	draw.Draw(dst, image.Rect(canvas.Min.X, canvas.Min.Y, canvas.Max.X, r.Min.Y), over, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(canvas.Min.X, r.Max.Y, canvas.Max.X, canvas.Max.Y), over, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(canvas.Min.X, r.Min.Y, r.Min.X, r.Max.Y), over, image.Point{}, draw.Over)
	draw.Draw(dst, image.Rect(r.Max.X, r.Min.Y, canvas.Max.X, r.Max.Y), over, image.Point{}, draw.Over)

	drawDashedRect(dst, r, 4, th.SelectionBorder, color.RGBA{0, 0, 0, 255})

	hs := 3
	for _, p := range []image.Point{r.Min, {r.Max.X - 1, r.Min.Y}, {r.Min.X, r.Max.Y - 1}, {r.Max.X - 1, r.Max.Y - 1}} {
		hr := image.Rect(p.X-hs, p.Y-hs, p.X+hs+1, p.Y+hs+1)
		draw.Draw(dst, hr, &image.Uniform{th.SelectionHandle}, image.Point{}, draw.Src)
		drawBorder(dst, hr, color.RGBA{0, 0, 0, 255})
	}

	label := fmt.Sprintf("%dx%d  %d,%d", int(sel.Width()), int(sel.Height()), int(sel.Min.X), int(sel.Min.Y))
	d := &font.Drawer{Face: basicfont.Face7x13}
	tw := d.MeasureString(label).Ceil()
	pos := hudAnchor(r, canvas, tw+8, 18)
	panel := image.Rect(pos.X, pos.Y, pos.X+tw+8, pos.Y+18)
	draw.Draw(dst, panel, &image.Uniform{th.HudBackground}, image.Point{}, draw.Over)
	d.Dst = dst
	d.Src = image.NewUniform(th.HudText)
	d.Dot = fixed.P(panel.Min.X+4, panel.Min.Y+13)
	d.DrawString(label)

	f.chrome.drawActions(dst, r, canvas)
}

// drawHelp shows the startup hints centered on the canvas until a
// selection exists.
func (f *frontend) drawHelp(dst *image.RGBA, canvas image.Rectangle) {
	th := f.chrome.theme
	title := "SnapMark"
	lines := []string{
		"Drag to select the region to keep",
		"Pick a tool, then draw inside the selection",
		"Ctrl+C copies, Ctrl+S saves, Esc closes",
	}

	td := &font.Drawer{Face: messageFace}
	tw := td.MeasureString(title).Ceil()
	ld := &font.Drawer{Face: basicfont.Face7x13}
	maxW := tw
	for _, l := range lines {
		if w := ld.MeasureString(l).Ceil(); w > maxW {
			maxW = w
		}
	}

	totalH := 40 + len(lines)*16 + 16
	cx := (canvas.Min.X + canvas.Max.X) / 2
	cy := (canvas.Min.Y + canvas.Max.Y) / 2
	panel := image.Rect(cx-maxW/2-16, cy-totalH/2, cx+maxW/2+16, cy+totalH/2)
	if !panel.In(canvas) {
		return
	}
	draw.Draw(dst, panel, &image.Uniform{th.HudBackground}, image.Point{}, draw.Over)
	drawBorder(dst, panel, th.SelectionBorder)

	td.Dst = dst
	td.Src = image.NewUniform(th.HudText)
	td.Dot = fixed.P(cx-tw/2, panel.Min.Y+36)
	td.DrawString(title)

	y := panel.Min.Y + 40 + 16
	ld.Dst = dst
	ld.Src = image.NewUniform(th.HudText)
	for _, l := range lines {
		lw := ld.MeasureString(l).Ceil()
		ld.Dot = fixed.P(cx-lw/2, y)
		ld.DrawString(l)
		y += 16
	}
}

// drawPointerHint paints a software cursor matching the session's
// pointer affordance.
func (f *frontend) drawPointerHint(dst *image.RGBA, st paintState) {
	kind := f.sess.Cursor(float64(st.pointer.X), float64(st.pointer.Y), st.pointerDown)
	th := f.chrome.theme
	p := st.pointer
	switch kind {
	case editor.CursorCrosshair:
		r := int(f.sess.Size() * st.zoom / 2)
		if r < 4 {
			r = 4
		}
		drawDashedHLine(dst, p.X-r, p.X+r, p.Y, 2, th.SelectionBorder, color.RGBA{0, 0, 0, 255})
		drawDashedVLine(dst, p.X, p.Y-r, p.Y+r, 2, th.SelectionBorder, color.RGBA{0, 0, 0, 255})
	case editor.CursorResizeNWSE, editor.CursorResizeNESW, editor.CursorGrab, editor.CursorGrabbing:
		hr := image.Rect(p.X-3, p.Y-3, p.X+4, p.Y+4)
		drawBorder(dst, hr, th.SelectionHandle)
	}
}
