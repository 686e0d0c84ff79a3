// internal/adapters/output/json.go
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"subprobe/internal/core/domain"
)

// sanitizeDomainName convierte un nombre de dominio en un nombre de archivo válido.
// Ejemplo: "example.com" -> "example_com"
func sanitizeDomainName(name string) string {
	sanitized := strings.ReplaceAll(name, ".", "_")
	sanitized = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			return r
		}
		return '_'
	}, sanitized)
	if sanitized == "" {
		return "unknown"
	}
	return sanitized
}

// Report es el reporte JSON completo de una ejecución.
type Report struct {
	RunID      string         `json:"run_id"`
	Domain     string         `json:"domain"`
	Mode       string         `json:"mode"`
	StartedAt  time.Time      `json:"started_at"`
	ElapsedMS  int64          `json:"elapsed_ms"`
	Candidates int            `json:"candidates"`
	Probed     int            `json:"probed"`
	Found      int            `json:"found"`
	Canceled   bool           `json:"canceled"`
	PeakFlight int64          `json:"peak_in_flight"`
	ByKind     map[string]int `json:"by_kind"`
	Live       []string       `json:"live"`
	OutputPath string         `json:"output_path,omitempty"`
	Results    []ReportEntry  `json:"results"`
}

// ReportEntry es el resultado de un candidato en el reporte.
type ReportEntry struct {
	Index      int            `json:"index"`
	Candidate  string         `json:"candidate"`
	Outcome    string         `json:"outcome"`
	URL        string         `json:"url,omitempty"`
	StatusCode int            `json:"status_code,omitempty"`
	Cause      string         `json:"cause,omitempty"`
	DurationMS int64          `json:"duration_ms"`
	Attempts   []AttemptEntry `json:"attempts"`
}

// AttemptEntry es un intento individual dentro de ReportEntry.
type AttemptEntry struct {
	Scheme     string `json:"scheme"`
	URL        string `json:"url"`
	Outcome    string `json:"outcome"`
	StatusCode int    `json:"status_code,omitempty"`
	Cause      string `json:"cause,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// NewReportEntry convierte un resultado en su entrada de reporte.
func NewReportEntry(r domain.Result) ReportEntry {
	entry := ReportEntry{
		Index:      r.Index,
		Candidate:  r.Candidate.String(),
		Outcome:    r.Outcome.Kind.String(),
		URL:        r.Outcome.URL,
		StatusCode: r.Outcome.StatusCode,
		Cause:      r.Outcome.CauseString(),
		DurationMS: r.Duration.Milliseconds(),
		Attempts:   make([]AttemptEntry, 0, len(r.Attempts)),
	}
	for _, a := range r.Attempts {
		entry.Attempts = append(entry.Attempts, AttemptEntry{
			Scheme:     a.Scheme,
			URL:        a.URL,
			Outcome:    a.Kind.String(),
			StatusCode: a.StatusCode,
			Cause:      a.CauseString(),
			DurationMS: a.Duration.Milliseconds(),
		})
	}
	return entry
}

// BuildReport construye el reporte a partir del resumen y los resultados
// (se ordenan por orden de generación).
func BuildReport(summary *domain.ScanSummary, results []domain.Result) Report {
	sorted := append([]domain.Result(nil), results...)
	domain.SortByIndex(sorted)

	byKind := make(map[string]int, len(domain.OutcomeKinds))
	for _, k := range domain.OutcomeKinds {
		byKind[k.String()] = summary.ByKind[k]
	}

	report := Report{
		RunID:      summary.RunID,
		Domain:     summary.Domain,
		Mode:       summary.Mode.String(),
		StartedAt:  summary.StartTime,
		ElapsedMS:  summary.Elapsed.Milliseconds(),
		Candidates: summary.Candidates,
		Probed:     summary.Probed,
		Found:      summary.Found(),
		Canceled:   summary.Canceled,
		PeakFlight: summary.PeakInFlight,
		ByKind:     byKind,
		Live:       summary.LiveHosts(),
		OutputPath: summary.OutputPath,
		Results:    make([]ReportEntry, 0, len(sorted)),
	}
	for _, r := range sorted {
		report.Results = append(report.Results, NewReportEntry(r))
	}
	return report
}

// ReportFilename genera el nombre del reporte JSON.
// Formato: {domain}_report_{mode}_{timestamp}.json
func ReportFilename(report Report, now time.Time) string {
	return fmt.Sprintf("%s_report_%s_%s.json",
		sanitizeDomainName(report.Domain),
		report.Mode,
		now.Format("20060102_150405"),
	)
}

// OutputJSON exporta el reporte en formato JSON y retorna la ruta escrita.
func OutputJSON(dir string, report Report) (string, error) {
	if dir == "" {
		dir = "."
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create output directory: %w", domain.ErrExportFailed, err)
	}

	path := filepath.Join(dir, ReportFilename(report, time.Now()))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create output file: %w", domain.ErrExportFailed, err)
	}
	defer f.Close()

	// Codificar JSON con indentación
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return "", fmt.Errorf("%w: failed to encode JSON: %w", domain.ErrExportFailed, err)
	}

	return path, nil
}

// JSONReportSink acumula todos los resultados y escribe el reporte JSON al
// finalizar. Implementa ports.ResultSink.
type JSONReportSink struct {
	dir string

	mu      sync.Mutex
	results []domain.Result
	path    string
}

// NewJSONReportSink crea el sink de reporte JSON.
func NewJSONReportSink(dir string) *JSONReportSink {
	return &JSONReportSink{dir: dir}
}

// Name identifica el sink en logs y errores.
func (s *JSONReportSink) Name() string {
	return "json-report"
}

// Write acumula un resultado.
func (s *JSONReportSink) Write(r domain.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = append(s.results, r)
	return nil
}

// Finalize escribe el reporte.
func (s *JSONReportSink) Finalize(summary *domain.ScanSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if summary == nil {
		return nil
	}
	path, err := OutputJSON(s.dir, BuildReport(summary, s.results))
	if err != nil {
		return err
	}
	s.path = path
	return nil
}

// Path retorna la ruta del reporte escrito (vacía antes de Finalize).
func (s *JSONReportSink) Path() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.path
}
