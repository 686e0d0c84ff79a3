// internal/platform/ui/colors.go
package ui

import "github.com/pterm/pterm"

// Paleta de colores
var (
	// SignalGreen - hosts vivos, operaciones exitosas
	SignalGreen = pterm.NewRGB(46, 204, 113)

	// AlertRed - errores
	AlertRed = pterm.NewRGB(215, 38, 56)

	// AmberYellow - advertencias, 403
	AmberYellow = pterm.NewRGB(255, 182, 39)

	// SlateGray - texto secundario
	SlateGray = pterm.NewRGB(110, 110, 110)

	// RadarCyan - acentos, headers
	RadarCyan = pterm.NewRGB(0, 206, 209)
)

// Estilos preconfigurados para diferentes contextos
var (
	StyleSuccess   = SignalGreen.ToRGBStyle()
	StyleWarning   = AmberYellow.ToRGBStyle()
	StyleError     = AlertRed.ToRGBStyle()
	StyleSecondary = SlateGray.ToRGBStyle()
	StyleAccent    = RadarCyan.ToRGBStyle()
)
