// internal/core/domain/result.go
package domain

import (
	"sort"
	"time"
)

// Result es el resultado final de un candidato.
type Result struct {
	// Index posición del candidato en el orden de generación
	Index int `json:"index"`

	// Candidate hostname sondeado
	Candidate Candidate `json:"candidate"`

	// Outcome resultado reducido (last-scheme-wins si ninguno fue Live)
	Outcome Outcome `json:"outcome"`

	// Attempts un resultado por scheme intentado, en orden
	Attempts []Outcome `json:"attempts"`

	// Duration tiempo total del candidato
	Duration time.Duration `json:"duration_ns"`
}

// SortByIndex ordena resultados según el orden de generación.
func SortByIndex(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].Index < results[j].Index
	})
}
