// internal/core/ports/prober.go
package ports

import (
	"context"
	"time"

	"subprobe/internal/core/domain"
)

// ProbeRequest describe un intento: un candidato bajo un scheme.
type ProbeRequest struct {
	Candidate domain.Candidate
	Scheme    string

	// Timeout timeout duro de la petición (0 = el del prober)
	Timeout time.Duration
}

// URL retorna la URL del intento.
func (r ProbeRequest) URL() string {
	return r.Candidate.URL(r.Scheme)
}

// Prober es el port para sondear un candidato bajo un scheme.
// Nunca retorna error: toda falla queda clasificada en el Outcome.
type Prober interface {
	Probe(ctx context.Context, req ProbeRequest) domain.Outcome
}

// ProberFunc adapta una función a Prober.
type ProberFunc func(ctx context.Context, req ProbeRequest) domain.Outcome

// Probe implementa Prober.
func (f ProberFunc) Probe(ctx context.Context, req ProbeRequest) domain.Outcome {
	return f(ctx, req)
}
