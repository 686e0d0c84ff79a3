// internal/platform/ui/symbols.go
package ui

import (
	"github.com/pterm/pterm"

	"subprobe/internal/core/domain"
)

// OutcomeSymbol retorna el símbolo para cada tipo de resultado
func OutcomeSymbol(k domain.OutcomeKind) string {
	switch k {
	case domain.OutcomeLive:
		return "[+]"
	case domain.OutcomeNotFound, domain.OutcomeForbidden:
		return "[-]"
	case domain.OutcomeTimedOut:
		return "[~]"
	case domain.OutcomeConnectionFailed, domain.OutcomeProtocolError:
		return "[x]"
	default:
		return "[?]"
	}
}

// OutcomeColor retorna el color pterm para cada tipo de resultado
func OutcomeColor(k domain.OutcomeKind) pterm.Color {
	switch k {
	case domain.OutcomeLive:
		return pterm.FgGreen
	case domain.OutcomeForbidden:
		return pterm.FgYellow
	case domain.OutcomeNotFound:
		return pterm.FgGray
	case domain.OutcomeTimedOut:
		return pterm.FgMagenta
	case domain.OutcomeConnectionFailed, domain.OutcomeProtocolError:
		return pterm.FgRed
	default:
		return pterm.FgDefault
	}
}

// OutcomeStyle retorna un pterm.Style configurado para el tipo
func OutcomeStyle(k domain.OutcomeKind) *pterm.Style {
	return pterm.NewStyle(OutcomeColor(k))
}

// Icons globales para diferentes elementos de la UI
var (
	IconTarget  = "🎯"
	IconTime    = "⏱"
	IconWorkers = "⚙️"
	IconFound   = "✓"
	IconFile    = "📄"
)

// Separadores y bordes
var (
	SeparatorHeavy = "━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	SeparatorLight = "────────────────────────────────────────────"
)
