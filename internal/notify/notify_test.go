package notify

import (
	"image"
	"testing"

	"github.com/example/snapmark/internal/platform"
)

type sentNotification struct {
	title string
	body  string
	opts  platform.Options
}

func captureNotifications(t *testing.T) *[]sentNotification {
	t.Helper()
	var sent []sentNotification
	orig := notifyFn
	notifyFn = func(title, body string, opts platform.Options) error {
		sent = append(sent, sentNotification{title: title, body: body, opts: opts})
		return nil
	}
	t.Cleanup(func() { notifyFn = orig })
	return &sent
}

func TestDefaultPreferences(t *testing.T) {
	prefs := DefaultPreferences()
	if prefs.Title != "SnapMark" {
		t.Errorf("Title = %q, want SnapMark", prefs.Title)
	}
	for _, event := range []Event{EventCapture, EventSave, EventCopy} {
		if prefs.Events[event].Template == "" {
			t.Errorf("missing template for %s", event)
		}
	}
}

func TestLoadPreferencesEnvOverride(t *testing.T) {
	t.Setenv("SNAPMARK_NOTIFY_TITLE", "Shots")
	t.Setenv("SNAPMARK_NOTIFY_SAVE_TEXT", "Wrote %s")
	prefs := LoadPreferences()
	if prefs.Title != "Shots" {
		t.Errorf("Title = %q, want Shots", prefs.Title)
	}
	if got := prefs.Events[EventSave].Template; got != "Wrote %s" {
		t.Errorf("save template = %q", got)
	}
	if got := prefs.Events[EventCopy].Template; got != DefaultPreferences().Events[EventCopy].Template {
		t.Errorf("copy template = %q, want default", got)
	}
}

func TestNotifierDisabledByDefault(t *testing.T) {
	sent := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Copy("image")
	n.Save("/tmp/out.png")
	if len(*sent) != 0 {
		t.Fatalf("sent %d notifications, want 0", len(*sent))
	}
}

func TestNotifierCopy(t *testing.T) {
	sent := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("png")
	if len(*sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*sent))
	}
	got := (*sent)[0]
	if got.title != "SnapMark" {
		t.Errorf("title = %q", got.title)
	}
	if got.body != "Copied png to clipboard" {
		t.Errorf("body = %q", got.body)
	}
}

func TestNotifierCopyEmptyDetail(t *testing.T) {
	sent := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Enable(EventCopy, true)
	n.Copy("  ")
	if len(*sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*sent))
	}
	if got := (*sent)[0].body; got != "Copied image to clipboard" {
		t.Errorf("body = %q", got)
	}
}

func TestNotifierCapturePreview(t *testing.T) {
	sent := captureNotifications(t)
	n := New(DefaultPreferences())
	n.Enable(EventCapture, true)
	n.Capture("screen", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if len(*sent) != 1 {
		t.Fatalf("sent %d notifications, want 1", len(*sent))
	}
	if (*sent)[0].opts.IconPath == "" {
		t.Error("expected a preview icon path")
	}
}

func TestNilNotifierIsSafe(t *testing.T) {
	var n *Notifier
	n.Enable(EventCopy, true)
	n.Copy("png")
	n.Save("x")
	n.Capture("y", nil)
}
