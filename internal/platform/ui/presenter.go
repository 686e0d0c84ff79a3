// internal/platform/ui/presenter.go
package ui

import (
	"fmt"
	"strings"
	"time"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
)

// UIMode define el modo de visualización
type UIMode string

const (
	UIModePretty UIMode = "pretty" // Colores, cajas y tablas (default)
	UIModeRaw    UIMode = "raw"    // Una línea logfmt por evento
	UIModeJSON   UIMode = "json"   // Una línea JSON por evento
	UIModeQuiet  UIMode = "quiet"  // Sin UI visual
)

// ParseUIMode convierte un string en UIMode.
func ParseUIMode(s string) (UIMode, error) {
	m := UIMode(strings.ToLower(strings.TrimSpace(s)))
	switch m {
	case UIModePretty, UIModeRaw, UIModeJSON, UIModeQuiet:
		return m, nil
	case "":
		return UIModePretty, nil
	default:
		return "", fmt.Errorf("unknown ui mode %q", s)
	}
}

// New crea el presenter correspondiente al modo.
func New(mode UIMode, opts Options) Presenter {
	switch mode {
	case UIModeQuiet:
		return NewNoopPresenter()
	case UIModeRaw:
		return NewRawPresenter(LogFormatText, opts)
	case UIModeJSON:
		return NewRawPresenter(LogFormatJSON, opts)
	default:
		return NewPTermPresenter(opts)
	}
}

// Presenter define la interfaz para presentar el progreso del escaneo en
// terminal. Recibe los eventos del motor como ports.ProbeObserver, por lo
// que sus métodos de observer se invocan desde varios workers a la vez.
type Presenter interface {
	ports.ProbeObserver

	// Start inicia la presentación con información del escaneo
	Start(info ScanInfo)

	// Info muestra un mensaje informativo
	Info(msg string)

	// Warning muestra una advertencia
	Warning(msg string)

	// Error muestra un error
	Error(msg string)

	// Finish finaliza la presentación con el resumen del escaneo
	Finish(summary *domain.ScanSummary)

	// Close limpia recursos del presenter
	Close() error
}

// ScanInfo contiene información inicial del escaneo
type ScanInfo struct {
	Domain      string
	Mode        domain.ScanMode
	Candidates  int
	Labels      int
	TLDs        int
	Concurrency int
	Timeout     time.Duration
	Schemes     []string
	OutputPath  string
	RateLimit   float64
	ProxyOn     bool
}

// Options configura los presenters con salida.
type Options struct {
	// OnlyLive oculta los intentos no vivos
	OnlyLive bool

	// Progress muestra una barra de progreso por candidatos
	Progress bool
}
