// internal/core/domain/scan_summary.go
package domain

import (
	"time"
)

// ScanSummary agrega los resultados de una ejecución completa.
// Solo es significativo cuando la secuencia de resultados se ha agotado.
type ScanSummary struct {
	// RunID identificador de la ejecución
	RunID string

	// Domain dominio base
	Domain string

	// Mode modo de análisis
	Mode ScanMode

	// Candidates número de candidatos generados
	Candidates int

	// Probed número de candidatos con resultado (menor que Candidates si se canceló)
	Probed int

	// ByKind conteo de resultados finales por tipo
	ByKind map[OutcomeKind]int

	// Live resultados vivos en orden de generación
	Live []Result

	// StartTime y Elapsed tiempos de la ejecución
	StartTime time.Time
	Elapsed   time.Duration

	// PeakInFlight máximo de candidatos sondeados a la vez
	PeakInFlight int64

	// OutputPath archivo de descubrimientos escrito (si aplica)
	OutputPath string

	// Canceled indica que la ejecución se interrumpió antes de agotar los candidatos
	Canceled bool
}

// NewScanSummary crea un resumen vacío.
func NewScanSummary(domain string, mode ScanMode, candidates int) *ScanSummary {
	return &ScanSummary{
		Domain:     domain,
		Mode:       mode,
		Candidates: candidates,
		ByKind:     make(map[OutcomeKind]int),
		Live:       []Result{},
		StartTime:  time.Now(),
	}
}

// Add incorpora un resultado al resumen.
func (s *ScanSummary) Add(r Result) {
	s.Probed++
	s.ByKind[r.Outcome.Kind]++
	if r.Outcome.IsLive() {
		s.Live = append(s.Live, r)
	}
}

// Finish cierra el resumen ordenando los vivos por orden de generación.
func (s *ScanSummary) Finish() {
	s.Elapsed = time.Since(s.StartTime)
	SortByIndex(s.Live)
}

// Found retorna el número de candidatos vivos.
func (s *ScanSummary) Found() int {
	return len(s.Live)
}

// LiveHosts retorna los hostnames vivos en orden de generación.
func (s *ScanSummary) LiveHosts() []string {
	hosts := make([]string, 0, len(s.Live))
	for _, r := range s.Live {
		hosts = append(hosts, r.Candidate.String())
	}
	return hosts
}
