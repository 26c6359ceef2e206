package app

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

// RingrouteTheme is the viewer theme: copper accents on the default theme.
type RingrouteTheme struct{}

var _ fyne.Theme = (*RingrouteTheme)(nil)

func (t *RingrouteTheme) Color(name fyne.ThemeColorName, variant fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0xC8, G: 0x6B, B: 0x2E, A: 0xFF} // Copper
	case theme.ColorNameSelection:
		return color.NRGBA{R: 0x4D, G: 0x7F, B: 0xC4, A: 0x80} // Back copper blue
	case theme.ColorNameBackground:
		if variant == theme.VariantDark {
			return color.NRGBA{R: 0x0C, G: 0x1E, B: 0x14, A: 0xFF} // Solder mask
		}
		return theme.DefaultTheme().Color(name, variant)
	default:
		return theme.DefaultTheme().Color(name, variant)
	}
}

func (t *RingrouteTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

func (t *RingrouteTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

func (t *RingrouteTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNameScrollBar:
		return 16
	default:
		return theme.DefaultTheme().Size(name)
	}
}
