// internal/core/usecases/generator.go
package usecases

import (
	"fmt"
	"iter"

	"subprobe/internal/core/domain"
	"subprobe/internal/platform/validator"
)

// GeneratorOptions configura el generador de candidatos.
type GeneratorOptions struct {
	// Domain dominio base sin puntos (p.ej. "example")
	Domain string

	// Labels labels de subdominio; puede estar vacío si IncludeBare está activo
	Labels domain.WordList

	// TLDs TLDs o sufijos (com, co.uk)
	TLDs domain.WordList

	// IncludeBare añade la forma desnuda domain.tld tras los label.domain.tld
	IncludeBare bool
}

// CandidateGenerator enumera de forma determinista los hostnames a sondear.
// Es puro: no hace I/O y sus secuencias pueden recorrerse varias veces.
type CandidateGenerator struct {
	domain      string
	labels      domain.WordList
	tlds        domain.WordList
	includeBare bool
}

// NewCandidateGenerator valida las opciones y crea el generador.
func NewCandidateGenerator(opts GeneratorOptions) (*CandidateGenerator, error) {
	if validator.IsEmpty(opts.Domain) {
		return nil, domain.ErrEmptyDomain
	}
	if !validator.IsBaseDomain(opts.Domain) {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidDomain, opts.Domain)
	}
	if opts.TLDs.IsEmpty() {
		return nil, fmt.Errorf("%w: tlds", domain.ErrEmptyWordList)
	}
	if opts.Labels.IsEmpty() && !opts.IncludeBare {
		return nil, fmt.Errorf("%w: labels", domain.ErrEmptyWordList)
	}

	return &CandidateGenerator{
		domain:      validator.NormalizeBaseDomain(opts.Domain),
		labels:      opts.Labels,
		tlds:        opts.TLDs,
		includeBare: opts.IncludeBare,
	}, nil
}

// Domain retorna el dominio base normalizado.
func (g *CandidateGenerator) Domain() string {
	return g.domain
}

// Count retorna |labels| × |tlds| (+ |tlds| con forma desnuda).
func (g *CandidateGenerator) Count() int {
	n := g.labels.Len() * g.tlds.Len()
	if g.includeBare {
		n += g.tlds.Len()
	}
	return n
}

// All retorna los candidatos en orden: cada label (externo) por cada tld
// (interno), y después la forma desnuda por cada tld.
func (g *CandidateGenerator) All() iter.Seq[domain.Candidate] {
	return func(yield func(domain.Candidate) bool) {
		for _, c := range g.Indexed() {
			if !yield(c) {
				return
			}
		}
	}
}

// Indexed es como All pero acompaña cada candidato con su posición.
func (g *CandidateGenerator) Indexed() iter.Seq2[int, domain.Candidate] {
	return func(yield func(int, domain.Candidate) bool) {
		i := 0
		for _, label := range g.labels {
			for _, tld := range g.tlds {
				if !yield(i, domain.NewCandidate(label, g.domain, tld)) {
					return
				}
				i++
			}
		}
		if !g.includeBare {
			return
		}
		for _, tld := range g.tlds {
			if !yield(i, domain.NewCandidate("", g.domain, tld)) {
				return
			}
			i++
		}
	}
}
