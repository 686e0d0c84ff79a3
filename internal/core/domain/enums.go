// internal/core/domain/enums.go
package domain

import "strings"

// ScanMode define qué formas de candidato se generan y cómo se nombra el
// archivo de resultados.
type ScanMode string

const (
	// ScanModeSubdomains genera label.domain.tld para cada label y cada TLD
	ScanModeSubdomains ScanMode = "subdomains"

	// ScanModeTLDs genera solo la forma desnuda domain.tld
	ScanModeTLDs ScanMode = "tlds"

	// ScanModeAll combina ambas formas
	ScanModeAll ScanMode = "all"
)

// ScanModes lista los modos en el orden mostrado al usuario.
var ScanModes = []ScanMode{ScanModeSubdomains, ScanModeTLDs, ScanModeAll}

// ParseScanMode convierte un string en ScanMode.
func ParseScanMode(s string) (ScanMode, error) {
	m := ScanMode(strings.ToLower(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidScanMode
	}
	return m, nil
}

// IsValid verifica si el modo de escaneo es válido.
func (m ScanMode) IsValid() bool {
	switch m {
	case ScanModeSubdomains, ScanModeTLDs, ScanModeAll:
		return true
	default:
		return false
	}
}

// IncludesLabels indica si el modo necesita la wordlist de labels.
func (m ScanMode) IncludesLabels() bool {
	return m == ScanModeSubdomains || m == ScanModeAll
}

// IncludesBare indica si el modo incluye la forma domain.tld.
func (m ScanMode) IncludesBare() bool {
	return m == ScanModeTLDs || m == ScanModeAll
}

// String retorna la representación string del modo.
func (m ScanMode) String() string {
	return string(m)
}
