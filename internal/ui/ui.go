// Package ui runs the annotation window: it translates shiny input
// events into session calls and paints the composite frame with the
// selection overlay and toolbar chrome.
package ui

import (
	"context"
	"image"
	"log"
	"sync"
	"unicode"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/snapmark/internal/editor"
	"github.com/example/snapmark/internal/theme"
)

// App holds the state needed to run the editor window.
type App struct {
	Session *editor.Session
	Theme   *theme.Theme
	Title   string

	onClose   func()
	closeOnce sync.Once
}

// Option modifies an App during creation.
type Option func(*App)

// WithSession sets the editing session driven by the window.
func WithSession(sess *editor.Session) Option { return func(a *App) { a.Session = sess } }

// WithTheme sets the chrome colors.
func WithTheme(th *theme.Theme) Option { return func(a *App) { a.Theme = th } }

// WithTitle sets the window title.
func WithTitle(title string) Option { return func(a *App) { a.Title = title } }

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(a *App) { a.onClose = fn } }

// New creates an App with the provided options.
func New(opts ...Option) *App {
	a := &App{Title: "SnapMark"}
	for _, o := range opts {
		o(a)
	}
	if a.Theme == nil {
		a.Theme = theme.Default()
	}
	return a
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Run executes the UI loop using shiny's driver. It blocks until the
// window closes.
func (a *App) Run() { driver.Main(a.Main) }

// KeyShortcut describes a keyboard combination that triggers an action.
type KeyShortcut struct {
	Rune      rune
	Code      key.Code
	Modifiers key.Modifiers
}

// KeyboardShortcuts returns the shortcuts associated with an action.
type KeyboardShortcuts interface {
	KeyboardShortcuts() []KeyShortcut
}

// shortcutList is a helper to easily satisfy the KeyboardShortcuts interface.
type shortcutList []KeyShortcut

func (s shortcutList) KeyboardShortcuts() []KeyShortcut { return []KeyShortcut(s) }

func (a *App) Main(s screen.Screen) {
	sess := a.Session
	if sess == nil {
		log.Print("ui: no session")
		return
	}

	toolbarWidth = measureToolbarWidth(a.Title)

	ib := sess.Image().Bounds()
	width := ib.Dx() + toolbarWidth
	height := ib.Dy() + bottomHeight
	w, err := s.NewWindow(&screen.NewWindowOptions{Width: width, Height: height, Title: a.Title})
	if err != nil {
		log.Fatalf("new window: %v", err)
	}
	defer w.Release()
	defer a.notifyClose()

	ch := newChrome(a.Theme)
	ch.buildButtons(sess)
	fe := &frontend{sess: sess, chrome: ch}

	zoom := 1.0
	origin := image.Pt(toolbarWidth, 0)
	applyViewport := func() {
		sess.SetViewport(editor.Pt(float64(origin.X), float64(origin.Y)), 1/zoom)
		sess.SetUIRects(ch.rects(width, height))
	}
	fitZoom := func() float64 {
		zx := float64(width-toolbarWidth) / float64(ib.Dx())
		zy := float64(height-bottomHeight) / float64(ib.Dy())
		z := zx
		if zy < z {
			z = zy
		}
		if z > 1 {
			z = 1
		}
		if z < 0.1 {
			z = 0.1
		}
		return z
	}
	applyViewport()

	var pt pointerState
	var pointer image.Point
	var pointerValid bool
	var pointerDown bool

	var paintMu sync.Mutex
	var paintCancel context.CancelFunc
	var dropCount int
	paintCh := make(chan paintState, 1)
	go func() {
		for st := range paintCh {
			ctx, cancel := context.WithCancel(context.Background())
			paintMu.Lock()
			paintCancel = cancel
			paintMu.Unlock()
			fe.drawFrame(ctx, s, w, st)
			paintMu.Lock()
			paintCancel = nil
			if ctx.Err() == nil {
				dropCount = 0
			}
			paintMu.Unlock()
		}
	}()
	cancelPaint := func() {
		paintMu.Lock()
		if paintCancel != nil {
			paintCancel()
		}
		paintMu.Unlock()
	}
	repaint := func() { w.Send(paint.Event{}) }

	keyboardAction := map[KeyShortcut]string{}
	actions := map[string]func(){}
	register := func(name string, keys KeyboardShortcuts, fn func()) {
		actions[name] = fn
		if keys != nil {
			for _, sc := range keys.KeyboardShortcuts() {
				keyboardAction[sc] = name
			}
		}
	}

	register("undo", shortcutList{{Rune: 'z', Modifiers: key.ModControl}}, sess.Undo)
	register("redo", shortcutList{
		{Rune: 'y', Modifiers: key.ModControl},
		{Rune: 'z', Modifiers: key.ModControl | key.ModShift},
	}, sess.Redo)
	register("copy", shortcutList{{Rune: 'c', Modifiers: key.ModControl}}, sess.CopyToClipboard)
	register("save", shortcutList{{Rune: 's', Modifiers: key.ModControl}}, sess.SaveToFile)
	register("clear", shortcutList{{Code: key.CodeDeleteForward}}, sess.ClearShapes)
	register("enter", shortcutList{{Code: key.CodeReturnEnter}}, sess.Enter)
	register("escape", shortcutList{{Code: key.CodeEscape}}, sess.Escape)
	ch.bindActions(actions)

	toolKeys := map[rune]editor.Tool{
		's': editor.ToolSelect,
		'p': editor.ToolPencil,
		'm': editor.ToolMarker,
		'l': editor.ToolLine,
		'k': editor.ToolMarkerLine,
		'a': editor.ToolArrow,
		'x': editor.ToolRect,
		'o': editor.ToolCircle,
		'n': editor.ToolCircleCount,
		't': editor.ToolText,
		'i': editor.ToolPixelate,
		'u': editor.ToolBlur,
	}

	repaint()

	for {
		e := w.NextEvent()
		switch e := e.(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				cancelPaint()
				return
			}
		case size.Event:
			width = e.WidthPx
			height = e.HeightPx
			zoom = fitZoom()
			applyViewport()
			repaint()
		case paint.Event:
			paintMu.Lock()
			if paintCancel != nil && dropCount < frameDropThreshold {
				paintCancel()
				dropCount++
			}
			paintMu.Unlock()
			sess.SetUIRects(ch.rects(width, height))
			st := paintState{
				width: width, height: height,
				zoom: zoom, origin: origin,
				pointer: pointer, pointerValid: pointerValid, pointerDown: pointerDown,
			}
			select {
			case paintCh <- st:
			default:
				<-paintCh
				paintCh <- st
			}
		case mouse.Event:
			if fe.handleMouse(e, &pt) {
				repaint()
			}
			pointer = pt.pos
			pointerValid = pt.valid
			pointerDown = pt.down
			if sess.Closed() {
				cancelPaint()
				return
			}
		case key.Event:
			if e.Direction != key.DirPress {
				continue
			}
			if ti := sess.TextInput(); ti != nil {
				switch e.Code {
				case key.CodeReturnEnter:
					sess.Enter()
				case key.CodeEscape:
					sess.Escape()
				case key.CodeDeleteBackspace:
					sess.DeleteRune()
				default:
					if e.Rune > 0 && e.Modifiers&key.ModControl == 0 {
						sess.InsertRune(e.Rune)
					}
				}
				if sess.Closed() {
					cancelPaint()
					return
				}
				repaint()
				continue
			}
			// non-printing keys report a rune of -1; normalize so they
			// match shortcuts registered by code alone
			r := e.Rune
			if r < 0 {
				r = 0
			} else {
				r = unicode.ToLower(r)
			}
			ks := KeyShortcut{Rune: r, Code: e.Code, Modifiers: e.Modifiers}
			if action, ok := keyboardAction[ks]; ok {
				if fn, ok := actions[action]; ok {
					fn()
				}
				if sess.Closed() {
					cancelPaint()
					return
				}
				repaint()
				continue
			}
			if e.Modifiers == 0 {
				if t, ok := toolKeys[unicode.ToLower(e.Rune)]; ok {
					sess.SetTool(t)
					repaint()
					continue
				}
			}
			switch e.Rune {
			case '+', '=':
				zoom *= 1.25
				if zoom > 8 {
					zoom = 8
				}
				applyViewport()
				repaint()
			case '-':
				zoom /= 1.25
				if zoom < 0.1 {
					zoom = 0.1
				}
				applyViewport()
				repaint()
			}
		}
	}
}

// pointerState tracks the last known mouse position so the software
// cursor and drag routing survive between events.
type pointerState struct {
	pos   image.Point
	valid bool
	down  bool
}

// handleMouse routes a mouse event to the chrome or the session and
// reports whether the frame needs repainting.
func (f *frontend) handleMouse(e mouse.Event, pt *pointerState) bool {
	p := image.Point{int(e.X), int(e.Y)}
	pt.pos = p
	pt.valid = true
	switch e.Direction {
	case mouse.DirPress:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		pt.down = true
		if f.chrome.press(p, f.sess) {
			return true
		}
		f.sess.PointerPressed(float64(e.X), float64(e.Y))
		return true
	case mouse.DirRelease:
		if e.Button != mouse.ButtonLeft {
			return false
		}
		pt.down = false
		f.sess.PointerReleased(float64(e.X), float64(e.Y))
		return true
	case mouse.DirNone:
		f.chrome.hover(p)
		if pt.down {
			f.sess.PointerDragged(float64(e.X), float64(e.Y))
		}
		// repaint either way so the software cursor follows
		return true
	}
	return false
}
