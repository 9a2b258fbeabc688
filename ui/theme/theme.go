package theme

// Centralized theming for the viewfinder UI. Provides palette values and
// InitStyles to activate a base theme and configure semantic widget styles.

import (
	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Light palette.
const (
	ColorBg        = "#f4f5f7"
	ColorSurface   = "#ffffff"
	ColorBorder    = "#d0d7de"
	ColorPrimary   = "#2563eb"
	ColorDanger    = "#dc2626"
	ColorAccent    = "#10b981"
	ColorText      = "#1e293b"
	ColorTextMuted = "#64748b"
)

// Dark palette. The camera background matches a phone viewfinder.
const (
	DarkBg        = "#0d0e11"
	DarkSurface   = "#1b1d22"
	DarkBorder    = "#2e3138"
	DarkPrimary   = "#3b82f6"
	DarkDanger    = "#ef4444"
	DarkAccent    = "#10b981"
	DarkText      = "#f1f5f9"
	DarkTextMuted = "#94a3b8"
)

// PaletteSnapshot represents resolved colors for the active mode.
type PaletteSnapshot struct {
	AppBg     string
	Surface   string
	Border    string
	Primary   string
	Danger    string
	Accent    string
	Text      string
	TextMuted string
}

// CurrentPalette returns colors for the current dark/light mode.
func CurrentPalette() PaletteSnapshot { return paletteFor(darkMode) }

func paletteFor(dark bool) PaletteSnapshot {
	if dark {
		return PaletteSnapshot{
			AppBg:     DarkBg,
			Surface:   DarkSurface,
			Border:    DarkBorder,
			Primary:   DarkPrimary,
			Danger:    DarkDanger,
			Accent:    DarkAccent,
			Text:      DarkText,
			TextMuted: DarkTextMuted,
		}
	}
	return PaletteSnapshot{
		AppBg:     ColorBg,
		Surface:   ColorSurface,
		Border:    ColorBorder,
		Primary:   ColorPrimary,
		Danger:    ColorDanger,
		Accent:    ColorAccent,
		Text:      ColorText,
		TextMuted: ColorTextMuted,
	}
}

// style names used with Style("shutter.TButton") etc.
const (
	StyleShutterButton = "shutter.TButton"
	StyleRecordButton  = "record.TButton"
)

// internal flag for current mode
var darkMode bool

// InitStyles (re)applies styles for the current darkMode value.
func InitStyles() { applyStyles(darkMode) }

// SetDark sets the mode and reapplies styles. Returns the new mode value.
func SetDark(dark bool) bool {
	darkMode = dark
	applyStyles(darkMode)
	return darkMode
}

// IsDark reports current mode.
func IsDark() bool { return darkMode }

func applyStyles(dark bool) {
	p := paletteFor(dark)
	if dark {
		_ = ActivateTheme("azure dark")
	} else {
		_ = ActivateTheme("azure light")
	}
	App.Configure(Background(p.AppBg))

	StyleConfigure(StyleShutterButton,
		Background(p.Surface),
		Foreground(p.Text),
		Padding("8p 8p"),
		Borderwidth(2),
		Relief("ridge"),
	)
	StyleConfigure(StyleRecordButton,
		Background(p.Danger),
		Foreground("white"),
		Padding("8p 8p"),
		Borderwidth(2),
		Relief("ridge"),
	)
}
