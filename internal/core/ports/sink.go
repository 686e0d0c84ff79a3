// internal/core/ports/sink.go
package ports

import (
	"subprobe/internal/core/domain"
)

// ResultSink es el port para persistir resultados a medida que llegan.
// Write se invoca desde un único goroutine (el consumidor del stream).
type ResultSink interface {
	// Name retorna el nombre del sink (para logs)
	Name() string

	// Write recibe cada resultado en orden de finalización
	Write(result domain.Result) error

	// Finalize se invoca una vez agotado el stream, con el resumen completo
	Finalize(summary *domain.ScanSummary) error
}
