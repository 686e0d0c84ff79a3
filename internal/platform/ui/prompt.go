// internal/platform/ui/prompt.go
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"

	"subprobe/internal/core/domain"
	"subprobe/internal/platform/validator"
)

// AskFunc lee una línea de texto del usuario.
type AskFunc func(prompt string) (string, error)

// ChooseFunc pide al usuario elegir una opción de la lista.
type ChooseFunc func(prompt string, options []string, def string) (string, error)

// Prompter pide interactivamente los parámetros del escaneo. Cada pregunta
// se repite hasta obtener un valor válido o un error de entrada.
type Prompter struct {
	ask    AskFunc
	choose ChooseFunc
	warn   func(msg string)
}

// NewPrompter crea un prompter sobre los componentes interactivos de pterm.
func NewPrompter() *Prompter {
	return NewPrompterWith(ptermAsk, ptermChoose, func(msg string) {
		pterm.Warning.Println(msg)
	})
}

// NewPrompterWith crea un prompter con entrada y salida inyectadas.
func NewPrompterWith(ask AskFunc, choose ChooseFunc, warn func(msg string)) *Prompter {
	if warn == nil {
		warn = func(string) {}
	}
	return &Prompter{ask: ask, choose: choose, warn: warn}
}

// Domain pide el dominio base (sin subdominios ni TLD).
func (p *Prompter) Domain() (string, error) {
	for {
		answer, err := p.ask("Please enter the domain (without TLD, e.g., 'example')")
		if err != nil {
			return "", fmt.Errorf("read domain: %w", err)
		}
		answer = strings.TrimSpace(answer)
		if answer != "" && validator.IsBaseDomain(answer) {
			return validator.NormalizeBaseDomain(answer), nil
		}
		p.warn("Invalid domain. Please enter the base domain without any subdomains or TLDs.")
	}
}

// Mode pide el modo de escaneo.
func (p *Prompter) Mode(def domain.ScanMode) (domain.ScanMode, error) {
	options := make([]string, 0, len(domain.ScanModes))
	for _, m := range domain.ScanModes {
		options = append(options, m.String())
	}
	if !def.IsValid() {
		def = domain.ScanModeSubdomains
	}

	for {
		answer, err := p.choose("Select the scan mode", options, def.String())
		if err != nil {
			return "", fmt.Errorf("read mode: %w", err)
		}
		if strings.TrimSpace(answer) == "" {
			return def, nil
		}
		mode, err := domain.ParseScanMode(answer)
		if err == nil {
			return mode, nil
		}
		p.warn(fmt.Sprintf("Invalid mode %q. Choose one of: %s.", answer, strings.Join(options, ", ")))
	}
}

// Concurrency pide el límite de sondeos simultáneos. Una respuesta vacía
// acepta def.
func (p *Prompter) Concurrency(def int) (int, error) {
	prompt := fmt.Sprintf("Max concurrent probes (%d-%d) [%d]",
		domain.MinConcurrency, domain.MaxConcurrency, def)

	for {
		answer, err := p.ask(prompt)
		if err != nil {
			return 0, fmt.Errorf("read concurrency: %w", err)
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return def, nil
		}
		n, err := strconv.Atoi(answer)
		if err == nil && n >= domain.MinConcurrency && n <= domain.MaxConcurrency {
			if n > domain.WarnConcurrency {
				p.warn(fmt.Sprintf("Concurrency %d is high; remote hosts may throttle or block the scan.", n))
			}
			return n, nil
		}
		p.warn(fmt.Sprintf("Invalid concurrency %q. Enter a number between %d and %d.",
			answer, domain.MinConcurrency, domain.MaxConcurrency))
	}
}

func ptermAsk(prompt string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(prompt)
}

func ptermChoose(prompt string, options []string, def string) (string, error) {
	return pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultOption(def).
		Show(prompt)
}
