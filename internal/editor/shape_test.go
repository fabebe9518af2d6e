package editor

import "testing"

func TestHistoryUndoRedoDuality(t *testing.T) {
	var h History
	a := &Line{Start: Pt(0, 0), End: Pt(5, 5)}
	b := &Line{Start: Pt(1, 1), End: Pt(6, 6)}
	h.Commit(a)
	h.Commit(b)
	if !h.Undo() {
		t.Fatalf("Undo returned false with shapes present")
	}
	if got := h.Len(); got != 1 {
		t.Fatalf("after undo Len() = %d, want 1", got)
	}
	if h.Shapes()[0] != Shape(a) {
		t.Errorf("after undo list does not match pre-commit state")
	}
	if !h.Redo() {
		t.Fatalf("Redo returned false after undo")
	}
	if got := h.Len(); got != 2 {
		t.Fatalf("after redo Len() = %d, want 2", got)
	}
	if h.Shapes()[1] != Shape(b) {
		t.Errorf("redo did not restore the undone shape")
	}
}

func TestHistoryRedoInvalidation(t *testing.T) {
	var h History
	x := &Line{End: Pt(1, 1)}
	y := &Line{End: Pt(2, 2)}
	h.Commit(x)
	h.Undo()
	h.Commit(y)
	if h.Redo() {
		t.Fatalf("Redo succeeded after an intervening commit")
	}
	if got := h.Len(); got != 1 || h.Shapes()[0] != Shape(y) {
		t.Errorf("list = %d shapes, want exactly the second commit", got)
	}
}

func TestHistoryNoOpsDoNotBumpVersion(t *testing.T) {
	var h History
	v := h.Version()
	if h.Undo() || h.Redo() || h.Clear() {
		t.Fatalf("empty history mutations reported success")
	}
	if h.Version() != v {
		t.Errorf("no-op changed version from %d to %d", v, h.Version())
	}
	h.Commit(&Line{})
	if h.Version() == v {
		t.Errorf("commit did not change version")
	}
}

func TestHistoryClear(t *testing.T) {
	var h History
	h.Commit(&Line{})
	h.Commit(&Box{})
	h.Undo()
	if !h.Clear() {
		t.Fatalf("Clear returned false with shapes present")
	}
	if h.Len() != 0 {
		t.Errorf("Len() = %d after clear, want 0", h.Len())
	}
	if h.Redo() {
		t.Errorf("Redo succeeded after clear")
	}
}

func TestNextCount(t *testing.T) {
	var h History
	if got := h.NextCount(); got != 1 {
		t.Fatalf("NextCount() on empty history = %d, want 1", got)
	}
	h.Commit(&CircleCount{Count: h.NextCount()})
	h.Commit(&Line{End: Pt(3, 3)})
	h.Commit(&CircleCount{Count: h.NextCount()})
	h.Commit(&Box{End: Pt(4, 4)})
	h.Commit(&CircleCount{Count: h.NextCount()})

	counts := []int{}
	for _, s := range h.Shapes() {
		if c, ok := s.(*CircleCount); ok {
			counts = append(counts, c.Count)
		}
	}
	want := []int{1, 2, 3}
	for i := range want {
		if counts[i] != want[i] {
			t.Fatalf("counts = %v, want %v", counts, want)
		}
	}

	// Undoing the last callout and drawing a new one reuses its number.
	h.Undo()
	if got := h.NextCount(); got != 3 {
		t.Errorf("NextCount() after undo = %d, want 3", got)
	}

	// Numbering is max-based, not length-based: with only count=3 left,
	// the next number is 4.
	h.Clear()
	h.Commit(&CircleCount{Count: 3})
	if got := h.NextCount(); got != 4 {
		t.Errorf("NextCount() with max 3 present = %d, want 4", got)
	}
}

func TestToolByName(t *testing.T) {
	for tool, name := range toolNames {
		got, ok := ToolByName(name)
		if !ok || got != tool {
			t.Errorf("ToolByName(%q) = %v, %v; want %v", name, got, ok, tool)
		}
	}
	if _, ok := ToolByName("bogus"); ok {
		t.Errorf("ToolByName accepted an unknown name")
	}
}
