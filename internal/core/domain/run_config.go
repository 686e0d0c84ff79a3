// internal/core/domain/run_config.go
package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultConcurrency límite de sondeos simultáneos por defecto
	DefaultConcurrency = 50

	// MinConcurrency y MaxConcurrency acotan el límite aceptado por la CLI
	MinConcurrency = 10
	MaxConcurrency = 200

	// WarnConcurrency por encima de este valor se advierte al usuario
	WarnConcurrency = 100

	// DefaultRequestTimeout timeout duro por petición
	DefaultRequestTimeout = 10 * time.Second
)

// DefaultSchemes orden de prueba por candidato; el primero que responde 200 gana.
var DefaultSchemes = []string{"http", "https"}

// RunConfig configura el motor de sondeo.
type RunConfig struct {
	// Concurrency máximo de candidatos (y por tanto de peticiones) en vuelo
	Concurrency int

	// RequestTimeout timeout por petición HTTP
	RequestTimeout time.Duration

	// Schemes schemes a probar por candidato, en orden
	Schemes []string
}

// DefaultRunConfig retorna la configuración por defecto.
func DefaultRunConfig() RunConfig {
	return RunConfig{
		Concurrency:    DefaultConcurrency,
		RequestTimeout: DefaultRequestTimeout,
		Schemes:        append([]string(nil), DefaultSchemes...),
	}
}

// Validate verifica la configuración del motor. El rango 10-200 lo impone
// la capa de configuración; aquí solo se exige un límite positivo.
func (c RunConfig) Validate() error {
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: %d", ErrInvalidConcurrency, c.Concurrency)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("%w: %s", ErrInvalidTimeout, c.RequestTimeout)
	}
	if len(c.Schemes) == 0 {
		return ErrNoSchemes
	}
	for _, s := range c.Schemes {
		if !IsSupportedScheme(s) {
			return fmt.Errorf("%w: %q", ErrInvalidScheme, s)
		}
	}
	return nil
}

// IsSupportedScheme indica si el scheme es http o https.
func IsSupportedScheme(s string) bool {
	switch strings.ToLower(s) {
	case "http", "https":
		return true
	default:
		return false
	}
}
