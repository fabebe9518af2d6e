package ui

import (
	"image"
	"image/color"
	"testing"

	"golang.org/x/mobile/event/mouse"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/theme"
)

func TestMeasureToolbarWidth(t *testing.T) {
	w := measureToolbarWidth("SnapMark")
	if w < toolbarWidth {
		t.Errorf("width %d smaller than minimum %d", w, toolbarWidth)
	}
	if wide := measureToolbarWidth("a very long window title indeed"); wide <= w {
		t.Errorf("long title did not widen the toolbar: %d <= %d", wide, w)
	}
}

func TestImageToWindow(t *testing.T) {
	r := editor.Rect{Min: editor.Pt(10, 20), Max: editor.Pt(30, 40)}
	got := imageToWindow(r, image.Pt(100, 0), 2)
	want := image.Rect(120, 40, 160, 80)
	if got != want {
		t.Errorf("imageToWindow = %v, want %v", got, want)
	}
}

func TestHudAnchor(t *testing.T) {
	win := image.Rect(0, 0, 200, 100)
	tests := []struct {
		name string
		sel  image.Rectangle
		want image.Point
	}{
		{"inside", image.Rect(10, 10, 80, 80), image.Pt(16, 16)},
		{"clamped right", image.Rect(190, 10, 200, 80), image.Pt(150, 16)},
		{"clamped bottom", image.Rect(10, 95, 80, 100), image.Pt(16, 80)},
		{"clamped origin", image.Rect(-20, -20, 30, 30), image.Pt(0, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := hudAnchor(tt.sel, win, 50, 20)
			if got != tt.want {
				t.Errorf("hudAnchor = %v, want %v", got, tt.want)
			}
			panel := image.Rect(got.X, got.Y, got.X+50, got.Y+20)
			if !panel.In(win) {
				t.Errorf("panel %v escapes window %v", panel, win)
			}
		})
	}
}

func TestChromeRectsCoverControls(t *testing.T) {
	ch := newChrome(theme.Default())
	rects := ch.rects(800, 600)
	if len(rects) == 0 {
		t.Fatal("no chrome rects")
	}
	covered := func(p image.Point) bool {
		for _, r := range rects {
			if p.In(r) {
				return true
			}
		}
		return false
	}
	if !covered(image.Pt(2, 300)) {
		t.Error("toolbar not covered")
	}
	if !covered(image.Pt(400, 590)) {
		t.Error("status bar not covered")
	}
	if covered(image.Pt(400, 300)) {
		t.Error("canvas should not be covered")
	}
}

func TestDrawCheckerboard(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 16, 16))
	light := color.RGBA{200, 200, 200, 255}
	dark := color.RGBA{100, 100, 100, 255}
	drawCheckerboard(img, img.Bounds(), 8, light, dark)
	if got := img.RGBAAt(0, 0); got != light {
		t.Errorf("(0,0) = %v, want light", got)
	}
	if got := img.RGBAAt(8, 0); got != dark {
		t.Errorf("(8,0) = %v, want dark", got)
	}
	if got := img.RGBAAt(8, 8); got != light {
		t.Errorf("(8,8) = %v, want light", got)
	}
}

func TestDrawDashedRectAlternates(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	white := color.RGBA{255, 255, 255, 255}
	black := color.RGBA{0, 0, 0, 255}
	drawDashedRect(img, image.Rect(0, 0, 20, 20), 4, white, black)
	if got := img.RGBAAt(0, 0); got != white {
		t.Errorf("(0,0) = %v, want first color", got)
	}
	if got := img.RGBAAt(4, 0); got != black {
		t.Errorf("(4,0) = %v, want second color", got)
	}
	if got := img.RGBAAt(8, 0); got != white {
		t.Errorf("(8,0) = %v, want first color again", got)
	}
}

func TestChromePressSelectsToolAndColor(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sess := editor.NewSession(base, editor.Sinks{})
	ch := newChrome(theme.Default())
	ch.buildButtons(sess)

	// lay out the chrome once so the rects exist
	frame := image.NewRGBA(image.Rect(0, 0, 400, 600))
	ch.drawToolbar(frame, 600, sess)

	pencil := ch.toolButtons[1] // second entry selects the pencil
	if !ch.press(pencil.Rect().Min.Add(image.Pt(2, 2)), sess) {
		t.Fatal("tool button press not consumed")
	}
	if sess.Tool() != editor.ToolPencil {
		t.Errorf("tool = %v, want pencil", sess.Tool())
	}

	if !ch.press(ch.paletteRect[4].Min.Add(image.Pt(2, 2)), sess) {
		t.Fatal("palette press not consumed")
	}
	if got := sess.Color(); got != palette[4] {
		t.Errorf("color = %v, want %v", got, palette[4])
	}

	if !ch.press(ch.sizeRect[3].Min.Add(image.Pt(2, 2)), sess) {
		t.Fatal("size press not consumed")
	}
	if got := sess.Size(); got != sizeOptions[3] {
		t.Errorf("size = %g, want %g", got, sizeOptions[3])
	}
}

func TestChromePressMarkerKeepsAlpha(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 100, 100))
	sess := editor.NewSession(base, editor.Sinks{})
	ch := newChrome(theme.Default())
	ch.buildButtons(sess)
	frame := image.NewRGBA(image.Rect(0, 0, 400, 600))
	ch.drawToolbar(frame, 600, sess)

	sess.SetTool(editor.ToolMarker)
	sess.SetColor(color.RGBA{255, 0, 0, 120})
	ch.press(ch.paletteRect[4].Min.Add(image.Pt(2, 2)), sess)
	if got := sess.Color().A; got != 120 {
		t.Errorf("alpha = %d, want 120", got)
	}
}

func TestToolEntriesNameEveryTool(t *testing.T) {
	seen := map[editor.Tool]bool{}
	for _, te := range toolEntries {
		if te.tool.String() == "unknown" {
			t.Errorf("toolbar entry %q maps to an unknown tool", te.label)
		}
		seen[te.tool] = true
	}
	if !seen[editor.ToolRect] {
		t.Errorf("no toolbar entry selects the rectangle tool")
	}
}

func TestHandleMousePreservesFractionalCoords(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 200, 200))
	sess := editor.NewSession(base, editor.Sinks{})
	sess.SetViewport(editor.Pt(0, 0), 1)
	fe := &frontend{sess: sess, chrome: newChrome(theme.Default())}

	var pt pointerState
	fe.handleMouse(mouse.Event{X: 80.5, Y: 10.5, Button: mouse.ButtonLeft, Direction: mouse.DirPress}, &pt)
	if !pt.down {
		t.Fatal("press did not mark the pointer down")
	}
	fe.handleMouse(mouse.Event{X: 110.25, Y: 50.75, Direction: mouse.DirNone}, &pt)
	fe.handleMouse(mouse.Event{X: 110.25, Y: 50.75, Button: mouse.ButtonLeft, Direction: mouse.DirRelease}, &pt)

	sel, ok := sess.SelectionRect()
	if !ok {
		t.Fatal("drag did not create a selection")
	}
	want := editor.Rect{Min: editor.Pt(80.5, 10.5), Max: editor.Pt(110.25, 50.75)}
	if sel != want {
		t.Errorf("selection %v, want %v", sel, want)
	}
}

func TestActionButtonsHugSelection(t *testing.T) {
	ch := newChrome(theme.Default())
	noop := func() {}
	ch.bindActions(map[string]func(){
		"undo": noop, "redo": noop, "clear": noop, "copy": noop, "save": noop,
	})

	canvas := image.Rect(0, 0, 400, 300)
	sel := image.Rect(100, 100, 200, 150)
	dst := image.NewRGBA(canvas)
	ch.drawActions(dst, sel, canvas)

	for i, cb := range ch.actionButtons {
		r := cb.Rect()
		if r.Empty() {
			t.Fatalf("action button %d has no rect", i)
		}
		if !r.In(canvas) {
			t.Errorf("action button %d rect %v escapes the canvas", i, r)
		}
		if r.Overlaps(sel) {
			t.Errorf("action button %d rect %v covers the selection", i, r)
		}
	}
	if got := len(ch.rects(400, 300)); got != 2+len(ch.actionButtons) {
		t.Errorf("chrome rects missing floating buttons: got %d", got)
	}

	ch.hideActions()
	for i, cb := range ch.actionButtons {
		if !cb.Rect().Empty() {
			t.Errorf("action button %d still has a rect after hide", i)
		}
	}
}
