// internal/core/ports/observer.go
package ports

import (
	"subprobe/internal/core/domain"
)

// ProbeObserver recibe eventos del motor de sondeo. Se invoca desde los
// workers de forma concurrente: las implementaciones deben ser seguras
// para uso concurrente y no bloquear.
type ProbeObserver interface {
	// AttemptFinished se invoca tras cada intento (un scheme de un candidato)
	AttemptFinished(candidate domain.Candidate, attempt domain.Outcome)

	// CandidateFinished se invoca con el resultado reducido del candidato
	CandidateFinished(result domain.Result)
}

// MultiObserver reenvía eventos a varios observers en orden.
type MultiObserver []ProbeObserver

// AttemptFinished implementa ProbeObserver.
func (m MultiObserver) AttemptFinished(candidate domain.Candidate, attempt domain.Outcome) {
	for _, o := range m {
		if o != nil {
			o.AttemptFinished(candidate, attempt)
		}
	}
}

// CandidateFinished implementa ProbeObserver.
func (m MultiObserver) CandidateFinished(result domain.Result) {
	for _, o := range m {
		if o != nil {
			o.CandidateFinished(result)
		}
	}
}

// NopObserver ignora todos los eventos.
type NopObserver struct{}

func (NopObserver) AttemptFinished(domain.Candidate, domain.Outcome) {}
func (NopObserver) CandidateFinished(domain.Result)                  {}
