// internal/platform/ui/raw_presenter.go
package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"subprobe/internal/core/domain"
)

// LogFormat define el formato de salida para el modo raw
type LogFormat string

const (
	LogFormatText LogFormat = "text" // Formato logfmt (default)
	LogFormatJSON LogFormat = "json" // Formato JSON estructurado
)

// RawPresenter implementa el Presenter para modo raw (eventos sin formato
// visual, una línea por evento). Pensado para salidas redirigidas.
type RawPresenter struct {
	format   LogFormat
	out      io.Writer
	onlyLive bool

	mu        sync.Mutex
	startTime time.Time
}

// NewRawPresenter crea un nuevo RawPresenter sobre stdout
func NewRawPresenter(format LogFormat, opts Options) *RawPresenter {
	return NewRawPresenterWithWriter(os.Stdout, format, opts)
}

// NewRawPresenterWithWriter crea un RawPresenter sobre un writer arbitrario
func NewRawPresenterWithWriter(w io.Writer, format LogFormat, opts Options) *RawPresenter {
	if w == nil {
		w = os.Stdout
	}
	if format != LogFormatJSON {
		format = LogFormatText
	}
	return &RawPresenter{
		format:    format,
		out:       w,
		onlyLive:  opts.OnlyLive,
		startTime: time.Now(),
	}
}

// log escribe un evento en el formato configurado
func (r *RawPresenter) log(level, message string, fields map[string]interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()

	timestamp := time.Now().UTC().Format(time.RFC3339)

	if r.format == LogFormatJSON {
		r.logJSON(timestamp, level, message, fields)
	} else {
		r.logText(timestamp, level, message, fields)
	}
}

// logText escribe en formato logfmt: timestamp LEVEL message key=value key2=value2
func (r *RawPresenter) logText(timestamp, level, message string, fields map[string]interface{}) {
	parts := []string{timestamp, fmt.Sprintf("%-5s", level), message}

	// Orden estable de campos
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%s", k, r.formatValue(fields[k])))
	}

	fmt.Fprintln(r.out, strings.Join(parts, " "))
}

// logJSON escribe en formato JSON estructurado
func (r *RawPresenter) logJSON(timestamp, level, message string, fields map[string]interface{}) {
	logEntry := map[string]interface{}{
		"timestamp": timestamp,
		"level":     level,
		"message":   message,
	}

	if len(fields) > 0 {
		data := make(map[string]interface{}, len(fields))
		for k, v := range fields {
			if d, ok := v.(time.Duration); ok {
				v = d.String()
			}
			data[k] = v
		}
		logEntry["data"] = data
	}

	jsonBytes, _ := json.Marshal(logEntry)
	fmt.Fprintln(r.out, string(jsonBytes))
}

// formatValue formatea valores para logfmt (entrecomilla strings con espacios)
func (r *RawPresenter) formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		if val == "" || strings.ContainsAny(val, " =\"") {
			return fmt.Sprintf("%q", val)
		}
		return val
	case time.Duration:
		return val.String()
	case float64:
		return fmt.Sprintf("%.1f", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Start inicia la presentación
func (r *RawPresenter) Start(info ScanInfo) {
	r.mu.Lock()
	r.startTime = time.Now()
	r.mu.Unlock()

	r.log("INFO", "scan_started", map[string]interface{}{
		"domain":      info.Domain,
		"mode":        info.Mode.String(),
		"candidates":  info.Candidates,
		"concurrency": info.Concurrency,
		"timeout":     info.Timeout,
		"schemes":     strings.Join(info.Schemes, ","),
		"output":      info.OutputPath,
		"log_format":  string(r.format),
	})
}

// AttemptFinished registra cada intento (solo los Live con OnlyLive)
func (r *RawPresenter) AttemptFinished(candidate domain.Candidate, attempt domain.Outcome) {
	if !attempt.IsLive() && r.onlyLive {
		return
	}

	fields := map[string]interface{}{
		"candidate": candidate.String(),
		"url":       attempt.URL,
		"outcome":   attempt.Kind.String(),
		"duration":  attempt.Duration,
	}
	if attempt.StatusCode != 0 {
		fields["status"] = attempt.StatusCode
	}
	if attempt.Cause != nil {
		fields["cause"] = attempt.CauseString()
	}

	level := "INFO"
	if !attempt.IsLive() {
		level = "DEBUG"
	}
	r.log(level, "attempt", fields)
}

// CandidateFinished no produce salida; el resumen llega en Finish
func (r *RawPresenter) CandidateFinished(domain.Result) {}

// Info muestra un mensaje informativo
func (r *RawPresenter) Info(msg string) {
	r.log("INFO", msg, nil)
}

// Warning muestra una advertencia
func (r *RawPresenter) Warning(msg string) {
	r.log("WARN", msg, nil)
}

// Error muestra un error
func (r *RawPresenter) Error(msg string) {
	r.log("ERROR", msg, nil)
}

// Finish finaliza la presentación con estadísticas finales
func (r *RawPresenter) Finish(summary *domain.ScanSummary) {
	if summary == nil {
		return
	}

	fields := map[string]interface{}{
		"run_id":     summary.RunID,
		"duration":   summary.Elapsed,
		"candidates": summary.Candidates,
		"probed":     summary.Probed,
		"found":      summary.Found(),
		"canceled":   summary.Canceled,
		"output":     summary.OutputPath,
	}
	r.log("INFO", "scan_completed", fields)

	breakdown := make(map[string]interface{}, len(domain.OutcomeKinds))
	for _, k := range domain.OutcomeKinds {
		breakdown[k.String()] = summary.ByKind[k]
	}
	r.log("INFO", "outcomes_by_kind", breakdown)
}

// Close limpia recursos
func (r *RawPresenter) Close() error {
	return nil
}
