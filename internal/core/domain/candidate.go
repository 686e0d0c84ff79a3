// internal/core/domain/candidate.go
package domain

// Candidate es un hostname completo a sondear (label.domain.tld o domain.tld).
type Candidate string

// NewCandidate construye un candidato. Un label vacío produce la forma desnuda.
func NewCandidate(label, base, tld string) Candidate {
	if label == "" {
		return Candidate(base + "." + tld)
	}
	return Candidate(label + "." + base + "." + tld)
}

// URL retorna la URL a sondear para un scheme dado.
func (c Candidate) URL(scheme string) string {
	return scheme + "://" + string(c)
}

// String retorna el hostname.
func (c Candidate) String() string {
	return string(c)
}
