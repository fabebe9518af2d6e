package editor

import "testing"

func TestSelectorCreate(t *testing.T) {
	s := NewSelector(200, 100)
	s.Press(Pt(10, 10), 6)
	s.Drag(Pt(60, 40))
	if !s.Release() {
		t.Fatalf("selection discarded after a valid drag")
	}
	r, ok := s.Rect()
	if !ok {
		t.Fatalf("no selection after release")
	}
	want := Rect{Min: Pt(10, 10), Max: Pt(60, 40)}
	if r != want {
		t.Errorf("rect = %v, want %v", r, want)
	}
}

func TestSelectorCreateReversed(t *testing.T) {
	s := NewSelector(200, 100)
	s.Press(Pt(60, 40), 6)
	s.Drag(Pt(10, 10))
	s.Release()
	r, _ := s.Rect()
	if r.Min != Pt(10, 10) || r.Max != Pt(60, 40) {
		t.Errorf("reversed drag rect = %v, want normalized (10,10)-(60,40)", r)
	}
}

func TestSelectorClampsToImage(t *testing.T) {
	s := NewSelector(100, 50)
	s.Press(Pt(90, 40), 6)
	s.Drag(Pt(500, 500))
	s.Release()
	r, ok := s.Rect()
	if !ok {
		t.Fatalf("selection lost")
	}
	if r.Min.X < 0 || r.Min.Y < 0 || r.Max.X > 100 || r.Max.Y > 50 {
		t.Errorf("rect %v exceeds image bounds", r)
	}
	if r.Min.X > r.Max.X || r.Min.Y > r.Max.Y {
		t.Errorf("rect %v is inverted", r)
	}
}

func TestSelectorDegenerateDiscarded(t *testing.T) {
	s := NewSelector(100, 100)
	s.Press(Pt(20, 20), 6)
	s.Drag(Pt(20.5, 80))
	if s.Release() {
		t.Fatalf("sub-pixel wide selection survived release")
	}
	if _, ok := s.Rect(); ok {
		t.Errorf("Rect() still reports a selection")
	}
}

func TestSelectorMoveClamped(t *testing.T) {
	s := NewSelector(100, 100)
	s.Set(Rect{Min: Pt(10, 10), Max: Pt(40, 30)})
	s.Press(Pt(20, 20), 6)
	if !s.Dragging() {
		t.Fatalf("press inside selection did not start a drag")
	}
	s.Drag(Pt(95, 95))
	s.Release()
	r, _ := s.Rect()
	if r.Width() != 30 || r.Height() != 20 {
		t.Errorf("moving changed size to %vx%v", r.Width(), r.Height())
	}
	if r.Max.X > 100 || r.Max.Y > 100 {
		t.Errorf("moved rect %v escaped image bounds", r)
	}
}

func TestSelectorResizeCorner(t *testing.T) {
	s := NewSelector(100, 100)
	s.Set(Rect{Min: Pt(20, 20), Max: Pt(60, 60)})
	// Grab the top-left handle and drag past the opposite corner; the
	// rect must re-normalize instead of inverting.
	s.Press(Pt(20, 20), 6)
	s.Drag(Pt(80, 80))
	s.Release()
	r, ok := s.Rect()
	if !ok {
		t.Fatalf("selection lost after resize")
	}
	if r.Min != Pt(60, 60) || r.Max != Pt(80, 80) {
		t.Errorf("rect = %v, want (60,60)-(80,80)", r)
	}
}

func TestSelectorReplaceOnOutsidePress(t *testing.T) {
	s := NewSelector(100, 100)
	s.Set(Rect{Min: Pt(10, 10), Max: Pt(30, 30)})
	s.Press(Pt(70, 70), 6)
	s.Drag(Pt(90, 95))
	s.Release()
	r, _ := s.Rect()
	if r.Min != Pt(70, 70) || r.Max != Pt(90, 95) {
		t.Errorf("press outside old selection did not start a new one: %v", r)
	}
}

func TestSelectorCursor(t *testing.T) {
	s := NewSelector(100, 100)
	s.Set(Rect{Min: Pt(20, 20), Max: Pt(60, 60)})
	tests := []struct {
		name string
		p    Point
		down bool
		want CursorKind
	}{
		{"top-left handle", Pt(20, 20), false, CursorResizeNWSE},
		{"bottom-right handle", Pt(60, 60), false, CursorResizeNWSE},
		{"top-right handle", Pt(60, 20), false, CursorResizeNESW},
		{"bottom-left handle", Pt(20, 60), false, CursorResizeNESW},
		{"interior", Pt(40, 40), false, CursorGrab},
		{"interior held", Pt(40, 40), true, CursorGrabbing},
		{"outside selection", Pt(80, 80), false, CursorCrosshair},
		{"outside image", Pt(300, 300), false, CursorDefault},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := s.Cursor(tc.p, 6, tc.down); got != tc.want {
				t.Errorf("Cursor(%v) = %v, want %v", tc.p, got, tc.want)
			}
		})
	}
}
