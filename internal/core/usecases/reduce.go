// internal/core/usecases/reduce.go
package usecases

import (
	"subprobe/internal/core/domain"
)

// ReduceOutcomes reduce los intentos de un candidato (uno por scheme, en
// orden) a su resultado final:
//   - un intento Live gana (el motor deja de probar schemes tras él);
//   - si ninguno es Live, gana el último intento clasificado;
//   - si todos son inconclusos, el último intento.
//
// Así un 404 por http seguido de un 403 por https termina en Forbidden.
func ReduceOutcomes(attempts []domain.Outcome) domain.Outcome {
	if len(attempts) == 0 {
		return domain.Inconclusive("", "", 0, nil)
	}

	final := attempts[len(attempts)-1]
	for i := len(attempts) - 1; i >= 0; i-- {
		if attempts[i].IsLive() {
			return attempts[i]
		}
	}
	for i := len(attempts) - 1; i >= 0; i-- {
		if attempts[i].Kind.IsClassified() {
			return attempts[i]
		}
	}
	return final
}
