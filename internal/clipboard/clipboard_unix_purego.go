//go:build (linux || freebsd || openbsd || netbsd || dragonfly) && !cgo

package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"sync"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"
)

// Pure X11 clipboard backend used when cgo is unavailable. It owns the
// CLIPBOARD selection with a hidden window and serves conversion
// requests from its own event loop, advertising every format that has
// data alongside UTF8_STRING for text.

var (
	initOnce     sync.Once
	initErr      error
	errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")
	backend      *x11Selection
)

func ensureInit() error {
	initOnce.Do(func() {
		if os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
			initErr = errNoDisplay
			return
		}
		sel := &x11Selection{}
		if err := sel.initialize(); err != nil {
			initErr = err
			return
		}
		backend = sel
	})
	return initErr
}

// WriteImage encodes the provided image as PNG and publishes it to the clipboard.
func WriteImage(img image.Image) error {
	if err := ensureInit(); err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return err
	}
	return backend.publish(map[string][]byte{"image/png": buf.Bytes()})
}

// ReadImage retrieves PNG image data from the clipboard and decodes it.
func ReadImage() (image.Image, error) {
	if err := ensureInit(); err != nil {
		return nil, err
	}
	data, err := backend.readSelection(backend.atomFor("image/png"))
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("clipboard does not contain image data")
	}
	return png.Decode(bytes.NewReader(data))
}

// WriteText writes text data to the clipboard.
func WriteText(text string) error {
	if err := ensureInit(); err != nil {
		return err
	}
	return backend.publish(map[string][]byte{"UTF8_STRING": []byte(text)})
}

// ReadText returns UTF-8 text data from the clipboard.
func ReadText() (string, error) {
	if err := ensureInit(); err != nil {
		return "", err
	}
	data, err := backend.readSelection(backend.atomFor("UTF8_STRING"))
	if err != nil {
		data, err = backend.readSelection(xproto.AtomString)
		if err != nil {
			return "", err
		}
	}
	if len(data) == 0 {
		return "", fmt.Errorf("clipboard does not contain text data")
	}
	// Trim trailing null byte some applications include in STRING responses.
	if data[len(data)-1] == 0 {
		data = data[:len(data)-1]
	}
	return string(data), nil
}

// targetNames lists the conversion targets the backend can serve, in the
// order they are advertised to TARGETS queries.
var targetNames = []string{"UTF8_STRING", "text/plain;charset=utf-8", "image/png", "image/bmp"}

type x11Selection struct {
	conn   *xgb.Conn
	window xproto.Window

	clipboard xproto.Atom
	targets   xproto.Atom
	property  xproto.Atom
	byName    map[string]xproto.Atom

	mu   sync.RWMutex
	data map[string][]byte
}

func (c *x11Selection) initialize() error {
	conn, err := xgb.NewConn()
	if err != nil {
		return err
	}
	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)
	window, err := xproto.NewWindowId(conn)
	if err != nil {
		conn.Close()
		return err
	}
	const eventMask = xproto.EventMaskPropertyChange | xproto.EventMaskStructureNotify
	if err := xproto.CreateWindowChecked(conn, screen.RootDepth, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOutput, screen.RootVisual, xproto.CwEventMask, []uint32{eventMask}).Check(); err != nil {
		conn.Close()
		return err
	}

	intern := func(name string) (xproto.Atom, error) {
		reply, err := xproto.InternAtom(conn, false, uint16(len(name)), name).Reply()
		if err != nil {
			return 0, err
		}
		return reply.Atom, nil
	}
	c.byName = make(map[string]xproto.Atom, len(targetNames))
	for _, name := range targetNames {
		atom, err := intern(name)
		if err != nil {
			conn.Close()
			return err
		}
		c.byName[name] = atom
	}
	if c.clipboard, err = intern("CLIPBOARD"); err != nil {
		conn.Close()
		return err
	}
	if c.targets, err = intern("TARGETS"); err != nil {
		conn.Close()
		return err
	}
	if c.property, err = intern("SNAPMARK_CLIPBOARD"); err != nil {
		conn.Close()
		return err
	}

	c.conn = conn
	c.window = window
	go c.eventLoop()
	return nil
}

func (c *x11Selection) atomFor(name string) xproto.Atom {
	return c.byName[name]
}

// publish replaces the clipboard contents with the given formats and
// claims selection ownership.
func (c *x11Selection) publish(data map[string][]byte) error {
	c.mu.Lock()
	c.data = data
	c.mu.Unlock()
	return xproto.SetSelectionOwnerChecked(c.conn, c.window, c.clipboard, xproto.TimeCurrentTime).Check()
}

func (c *x11Selection) eventLoop() {
	for {
		ev, err := c.conn.WaitForEvent()
		if err != nil {
			return
		}
		switch e := ev.(type) {
		case xproto.SelectionRequestEvent:
			c.handleSelectionRequest(e)
		case xproto.SelectionClearEvent:
			c.mu.Lock()
			c.data = nil
			c.mu.Unlock()
		}
	}
}

func (c *x11Selection) handleSelectionRequest(e xproto.SelectionRequestEvent) {
	property := e.Property
	if property == xproto.AtomNone {
		property = e.Target
	}

	c.mu.RLock()
	data := c.data
	c.mu.RUnlock()

	var (
		targetType xproto.Atom
		format     byte
		payload    []byte
	)

	switch {
	case e.Target == c.targets:
		targets := []xproto.Atom{c.targets}
		for _, name := range targetNames {
			if len(data[name]) > 0 {
				targets = append(targets, c.byName[name])
			}
		}
		if len(data["UTF8_STRING"]) > 0 {
			targets = append(targets, xproto.AtomString)
		}
		payload = atomsToBytes(targets)
		targetType = xproto.AtomAtom
		format = 32
	case e.Target == xproto.AtomString, e.Target == c.byName["text/plain;charset=utf-8"]:
		payload = data["UTF8_STRING"]
		targetType = c.byName["UTF8_STRING"]
		format = 8
	default:
		for _, name := range targetNames {
			if c.byName[name] == e.Target {
				payload = data[name]
				targetType = e.Target
				format = 8
				break
			}
		}
	}

	if len(payload) == 0 && e.Target != c.targets {
		property = xproto.AtomNone
	}

	if property != xproto.AtomNone {
		length := uint32(len(payload))
		if format == 32 {
			length = uint32(len(payload) / 4)
		}
		xproto.ChangeProperty(c.conn, xproto.PropModeReplace, e.Requestor, property, targetType, format, length, payload)
	}

	notify := xproto.SelectionNotifyEvent{
		Time:      e.Time,
		Requestor: e.Requestor,
		Selection: e.Selection,
		Target:    e.Target,
		Property:  property,
	}
	_ = xproto.SendEvent(c.conn, false, e.Requestor, 0, string(notify.Bytes()))
}

func (c *x11Selection) readSelection(target xproto.Atom) ([]byte, error) {
	conn, err := xgb.NewConn()
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	setup := xproto.Setup(conn)
	screen := setup.DefaultScreen(conn)

	window, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, err
	}
	if err := xproto.CreateWindowChecked(conn, 0, window, screen.Root, 0, 0, 1, 1, 0, xproto.WindowClassInputOnly, 0, xproto.CwEventMask, []uint32{xproto.EventMaskPropertyChange}).Check(); err != nil {
		return nil, err
	}
	defer xproto.DestroyWindow(conn, window)

	if err := xproto.DeletePropertyChecked(conn, window, c.property).Check(); err != nil {
		return nil, err
	}
	if err := xproto.ConvertSelectionChecked(conn, window, c.clipboard, target, c.property, xproto.TimeCurrentTime).Check(); err != nil {
		return nil, err
	}

	for {
		ev, err := conn.WaitForEvent()
		if err != nil {
			return nil, err
		}
		switch e := ev.(type) {
		case xproto.SelectionNotifyEvent:
			if e.Property == xproto.AtomNone {
				return nil, fmt.Errorf("clipboard target unavailable")
			}
			if e.Property != c.property {
				continue
			}
			reply, err := xproto.GetProperty(conn, false, window, c.property, xproto.GetPropertyTypeAny, 0, (1<<31)-1).Reply()
			if err != nil {
				return nil, err
			}
			data := make([]byte, len(reply.Value))
			copy(data, reply.Value)
			return data, nil
		}
	}
}

func atomsToBytes(atoms []xproto.Atom) []byte {
	buf := make([]byte, len(atoms)*4)
	for i, atom := range atoms {
		xgb.Put32(buf[i*4:], uint32(atom))
	}
	return buf
}
