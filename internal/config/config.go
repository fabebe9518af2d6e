package config

import (
	"fmt"
	"image/color"
	"sort"
	"strings"

	"github.com/example/snapmark/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Capture bool
	Save    bool
	Copy    bool
}

// Editor holds startup defaults for the annotation editor. Zero values
// mean "unset" and fall back to the built-in defaults.
type Editor struct {
	Color string  // annotation color as #RRGGBB
	Size  float64 // brush and effect size
	Tool  string  // initial tool name
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	Notify  Notify
	Editor  Editor
	Themes  map[string]*theme.Theme
}

// New creates a new Config with defaults.
func New() *Config {
	return &Config{
		Theme: "", // Default to empty to allow fallback to Env/Default
		Notify: Notify{
			Capture: false,
			Save:    false,
			Copy:    false,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	// Root section
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	sb.WriteString("\n")

	// Notify section
	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "capture = %v\n", c.Notify.Capture)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	// Editor section, only when something is set
	if c.Editor != (Editor{}) {
		sb.WriteString("[editor]\n")
		if c.Editor.Color != "" {
			fmt.Fprintf(&sb, "color = %s\n", c.Editor.Color)
		}
		if c.Editor.Size != 0 {
			fmt.Fprintf(&sb, "size = %g\n", c.Editor.Size)
		}
		if c.Editor.Tool != "" {
			fmt.Fprintf(&sb, "tool = %s\n", c.Editor.Tool)
		}
		sb.WriteString("\n")
	}

	// Themes sections
	// Sort keys for deterministic output
	var themeNames []string
	for name := range c.Themes {
		themeNames = append(themeNames, name)
	}
	sort.Strings(themeNames)

	for _, name := range themeNames {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		fmt.Fprintf(&sb, "Background: %s\n", toHex(t.Background))
		fmt.Fprintf(&sb, "Foreground: %s\n", toHex(t.Foreground))
		fmt.Fprintf(&sb, "ToolbarBackground: %s\n", toHex(t.ToolbarBackground))
		fmt.Fprintf(&sb, "ButtonBackground: %s\n", toHex(t.ButtonBackground))
		fmt.Fprintf(&sb, "ButtonBackgroundHover: %s\n", toHex(t.ButtonBackgroundHover))
		fmt.Fprintf(&sb, "ButtonBackgroundPress: %s\n", toHex(t.ButtonBackgroundPress))
		fmt.Fprintf(&sb, "ButtonText: %s\n", toHex(t.ButtonText))
		fmt.Fprintf(&sb, "ButtonTextHover: %s\n", toHex(t.ButtonTextHover))
		fmt.Fprintf(&sb, "ButtonTextPress: %s\n", toHex(t.ButtonTextPress))
		fmt.Fprintf(&sb, "ButtonBorder: %s\n", toHex(t.ButtonBorder))
		fmt.Fprintf(&sb, "SelectionBorder: %s\n", toHex(t.SelectionBorder))
		fmt.Fprintf(&sb, "SelectionHandle: %s\n", toHex(t.SelectionHandle))
		fmt.Fprintf(&sb, "DimOverlay: %s\n", toHex(t.DimOverlay))
		fmt.Fprintf(&sb, "HudBackground: %s\n", toHex(t.HudBackground))
		fmt.Fprintf(&sb, "HudText: %s\n", toHex(t.HudText))
		fmt.Fprintf(&sb, "StatusBackground: %s\n", toHex(t.StatusBackground))
		fmt.Fprintf(&sb, "StatusText: %s\n", toHex(t.StatusText))
		fmt.Fprintf(&sb, "CheckerLight: %s\n", toHex(t.CheckerLight))
		fmt.Fprintf(&sb, "CheckerDark: %s\n", toHex(t.CheckerDark))
		sb.WriteString("\n")
	}

	return sb.String()
}

func toHex(c interface{ RGBA() (r, g, b, a uint32) }) string {
	if rgba, ok := c.(color.RGBA); ok {
		if rgba.A == 255 {
			return fmt.Sprintf("#%02X%02X%02X", rgba.R, rgba.G, rgba.B)
		}
		return fmt.Sprintf("#%02X%02X%02X%02X", rgba.R, rgba.G, rgba.B, rgba.A)
	}

	// Fallback for non-color.RGBA types (though unlikely in this app's context)
	r, g, b, a := c.RGBA()
	if a == 0 {
		return "#00000000"
	}
	r8 := uint8(r >> 8)
	g8 := uint8(g >> 8)
	b8 := uint8(b >> 8)
	a8 := uint8(a >> 8)

	if a8 == 255 {
		return fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", r8, g8, b8, a8)
}
