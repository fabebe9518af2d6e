package theme

import (
	"image/color"
)

// Theme defines the color palette for the editor chrome.
type Theme struct {
	Name string

	// General
	Background color.RGBA // Window background around the capture
	Foreground color.RGBA // Main text color

	// Toolbar
	ToolbarBackground color.RGBA

	// Tool Buttons
	ButtonBackground      color.RGBA
	ButtonBackgroundHover color.RGBA
	ButtonBackgroundPress color.RGBA
	ButtonText            color.RGBA
	ButtonTextHover       color.RGBA
	ButtonTextPress       color.RGBA
	ButtonBorder          color.RGBA

	// Selection overlay
	SelectionBorder color.RGBA
	SelectionHandle color.RGBA
	DimOverlay      color.RGBA // Translucent shade over unselected areas
	HudBackground   color.RGBA
	HudText         color.RGBA

	// Status bar
	StatusBackground color.RGBA
	StatusText       color.RGBA

	// Canvas
	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the hardcoded default dark theme (fallback).
func Default() *Theme {
	return &Theme{
		Name:                  "Default",
		Background:            color.RGBA{32, 32, 32, 255},
		Foreground:            color.RGBA{235, 235, 235, 255},
		ToolbarBackground:     color.RGBA{48, 48, 48, 255},
		ButtonBackground:      color.RGBA{64, 64, 64, 255},
		ButtonBackgroundHover: color.RGBA{84, 84, 84, 255},
		ButtonBackgroundPress: color.RGBA{110, 110, 110, 255},
		ButtonText:            color.RGBA{235, 235, 235, 255},
		ButtonTextHover:       color.RGBA{255, 255, 255, 255},
		ButtonTextPress:       color.RGBA{255, 255, 255, 255},
		ButtonBorder:          color.RGBA{20, 20, 20, 255},
		SelectionBorder:       color.RGBA{255, 255, 255, 255},
		SelectionHandle:       color.RGBA{255, 255, 255, 255},
		DimOverlay:            color.RGBA{0, 0, 0, 120},
		HudBackground:         color.RGBA{0, 0, 0, 180},
		HudText:               color.RGBA{255, 255, 255, 255},
		StatusBackground:      color.RGBA{48, 48, 48, 255},
		StatusText:            color.RGBA{235, 235, 235, 255},
		CheckerLight:          color.RGBA{220, 220, 220, 255},
		CheckerDark:           color.RGBA{192, 192, 192, 255},
	}
}
