// internal/core/domain/outcome.go
package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// OutcomeKind clasifica el resultado de un intento de sondeo.
type OutcomeKind int

const (
	// OutcomeInconclusive: status no clasificado o error inesperado
	OutcomeInconclusive OutcomeKind = iota
	OutcomeLive
	OutcomeNotFound
	OutcomeForbidden
	OutcomeConnectionFailed
	OutcomeTimedOut
	OutcomeProtocolError
)

// OutcomeKinds lista todos los tipos en orden estable (para reportes).
var OutcomeKinds = []OutcomeKind{
	OutcomeLive,
	OutcomeNotFound,
	OutcomeForbidden,
	OutcomeConnectionFailed,
	OutcomeTimedOut,
	OutcomeProtocolError,
	OutcomeInconclusive,
}

// String retorna el nombre del tipo.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeLive:
		return "live"
	case OutcomeNotFound:
		return "not_found"
	case OutcomeForbidden:
		return "forbidden"
	case OutcomeConnectionFailed:
		return "connection_failed"
	case OutcomeTimedOut:
		return "timed_out"
	case OutcomeProtocolError:
		return "protocol_error"
	default:
		return "inconclusive"
	}
}

// MarshalJSON serializa el tipo como su nombre.
func (k OutcomeKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// IsClassified indica si el intento produjo una clasificación concreta.
// Los intentos inconclusos no sobrescriben el resultado final del candidato.
func (k OutcomeKind) IsClassified() bool {
	return k != OutcomeInconclusive
}

// Outcome es el resultado etiquetado de un intento (o el resultado reducido
// de un candidato).
type Outcome struct {
	Kind       OutcomeKind   `json:"kind"`
	URL        string        `json:"url,omitempty"`
	Scheme     string        `json:"scheme,omitempty"`
	StatusCode int           `json:"status_code,omitempty"`
	Cause      error         `json:"-"`
	Duration   time.Duration `json:"duration_ns,omitempty"`
}

// Live construye un resultado vivo (HTTP 200).
func Live(url, scheme string, status int) Outcome {
	return Outcome{Kind: OutcomeLive, URL: url, Scheme: scheme, StatusCode: status}
}

// NotFound construye un resultado 404.
func NotFound(url, scheme string) Outcome {
	return Outcome{Kind: OutcomeNotFound, URL: url, Scheme: scheme, StatusCode: 404}
}

// Forbidden construye un resultado 403.
func Forbidden(url, scheme string) Outcome {
	return Outcome{Kind: OutcomeForbidden, URL: url, Scheme: scheme, StatusCode: 403}
}

// ConnectionFailed construye un resultado de fallo de conexión (incluye DNS).
func ConnectionFailed(url, scheme string, cause error) Outcome {
	return Outcome{Kind: OutcomeConnectionFailed, URL: url, Scheme: scheme, Cause: cause}
}

// TimedOut construye un resultado de timeout.
func TimedOut(url, scheme string) Outcome {
	return Outcome{Kind: OutcomeTimedOut, URL: url, Scheme: scheme}
}

// ProtocolError construye un resultado de error de transporte/protocolo.
func ProtocolError(url, scheme string, cause error) Outcome {
	return Outcome{Kind: OutcomeProtocolError, URL: url, Scheme: scheme, Cause: cause}
}

// Inconclusive construye un resultado sin clasificación (status distinto de
// 200/403/404, o error inesperado).
func Inconclusive(url, scheme string, status int, cause error) Outcome {
	return Outcome{Kind: OutcomeInconclusive, URL: url, Scheme: scheme, StatusCode: status, Cause: cause}
}

// IsLive indica si el resultado es Live.
func (o Outcome) IsLive() bool {
	return o.Kind == OutcomeLive
}

// CauseString retorna el mensaje de la causa o string vacío.
func (o Outcome) CauseString() string {
	if o.Cause == nil {
		return ""
	}
	return o.Cause.Error()
}

// String retorna una representación legible.
func (o Outcome) String() string {
	switch {
	case o.Cause != nil:
		return fmt.Sprintf("%s %s: %v", o.Kind, o.URL, o.Cause)
	case o.StatusCode != 0:
		return fmt.Sprintf("%s %s (%d)", o.Kind, o.URL, o.StatusCode)
	default:
		return fmt.Sprintf("%s %s", o.Kind, o.URL)
	}
}
