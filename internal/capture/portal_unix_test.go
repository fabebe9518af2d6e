//go:build linux || freebsd || openbsd || netbsd || dragonfly

package capture

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestPortalHandleTokenIsObjectPathSafe(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 8; i++ {
		token := newPortalHandleToken()
		if token == "" {
			t.Fatalf("empty handle token")
		}
		for _, r := range token {
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			default:
				t.Fatalf("token %q contains %q, not valid in an object path element", token, r)
			}
		}
		if seen[token] {
			t.Fatalf("token %q repeated", token)
		}
		seen[token] = true
	}
}

func TestPortalScreenshotOptions(t *testing.T) {
	orig := portalHandleToken
	portalHandleToken = func() string { return "snapmark_test" }
	defer func() { portalHandleToken = orig }()

	opts := portalScreenshotOptions(true, Options{IncludeCursor: true})
	if got := opts["interactive"]; got != dbus.MakeVariant(true) {
		t.Errorf("interactive = %v", got)
	}
	if got := opts["modal"]; got != dbus.MakeVariant(true) {
		t.Errorf("modal = %v", got)
	}
	if got := opts["cursor_mode"]; got != dbus.MakeVariant("embedded") {
		t.Errorf("cursor_mode = %v", got)
	}
	if got := opts["handle_token"]; got != dbus.MakeVariant("snapmark_test") {
		t.Errorf("handle_token = %v", got)
	}

	opts = portalScreenshotOptions(false, Options{})
	if got := opts["cursor_mode"]; got != dbus.MakeVariant("hidden") {
		t.Errorf("cursor_mode without cursor = %v", got)
	}
	if got := opts["interactive"]; got != dbus.MakeVariant(false) {
		t.Errorf("interactive for silent capture = %v", got)
	}
}
