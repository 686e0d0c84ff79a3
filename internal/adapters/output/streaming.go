// internal/adapters/output/streaming.go
package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"subprobe/internal/core/domain"
	"subprobe/internal/platform/logx"
)

// StreamingWriter escribe los hosts vivos a disco a medida que llegan, de
// modo que una ejecución interrumpida conserva lo descubierto hasta ese
// momento. Al finalizar reescribe el archivo en orden de generación.
//
// Implementa ports.ResultSink.
type StreamingWriter struct {
	dir    string
	domain string
	mode   domain.ScanMode
	logger logx.Logger

	mu      sync.Mutex
	f       *os.File
	written int
}

// NewStreamingWriter crea un nuevo writer de streaming.
func NewStreamingWriter(dir, baseDomain string, mode domain.ScanMode, logger logx.Logger) *StreamingWriter {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = logx.New()
	}
	return &StreamingWriter{
		dir:    dir,
		domain: baseDomain,
		mode:   mode,
		logger: logger.With("component", "streaming-writer"),
	}
}

// DiscoveredFilename genera el nombre del archivo de descubrimientos.
// Formato: {domain}_discovered_{mode}.txt
func DiscoveredFilename(baseDomain string, mode domain.ScanMode) string {
	return fmt.Sprintf("%s_discovered_%s.txt", sanitizeDomainName(baseDomain), mode)
}

// Path retorna la ruta completa del archivo de descubrimientos.
func (w *StreamingWriter) Path() string {
	return filepath.Join(w.dir, DiscoveredFilename(w.domain, w.mode))
}

// Name identifica el sink en logs y errores.
func (w *StreamingWriter) Name() string {
	return "discovered-file"
}

// Write añade el candidato al archivo si su resultado es Live.
func (w *StreamingWriter) Write(r domain.Result) error {
	if !r.Outcome.IsLive() {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.open(); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w.f, r.Candidate.String()); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrExportFailed, w.Path(), err)
	}
	w.written++
	return nil
}

// open crea el directorio y trunca el archivo en la primera escritura.
func (w *StreamingWriter) open() error {
	if w.f != nil {
		return nil
	}
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %w", domain.ErrExportFailed, err)
	}
	f, err := os.Create(w.Path())
	if err != nil {
		return fmt.Errorf("%w: failed to create output file: %w", domain.ErrExportFailed, err)
	}
	w.f = f
	return nil
}

// Finalize cierra el archivo y lo reescribe con los hosts vivos del resumen
// en orden de generación. Registra la ruta en summary.OutputPath.
func (w *StreamingWriter) Finalize(summary *domain.ScanSummary) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.f != nil {
		if err := w.f.Close(); err != nil {
			w.logger.Warn("failed to close streaming file", "error", err.Error())
		}
		w.f = nil
	}
	if summary == nil {
		return nil
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("%w: failed to create output directory: %w", domain.ErrExportFailed, err)
	}

	path := w.Path()
	tmp := path + ".tmp"

	var b strings.Builder
	for _, host := range summary.LiveHosts() {
		b.WriteString(host)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(tmp, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %w", domain.ErrExportFailed, tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("%w: rename %s: %w", domain.ErrExportFailed, path, err)
	}

	summary.OutputPath = path
	w.logger.Debug("discovered file written",
		"file", path,
		"hosts", summary.Found(),
		"streamed", w.written,
	)
	return nil
}
