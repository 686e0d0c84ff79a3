// internal/core/domain/wordlist.go
package domain

import (
	"fmt"
	"strings"
)

// WordList es una secuencia ordenada de entradas no vacías (labels o TLDs).
// Es de solo lectura durante una ejecución.
type WordList []string

// NewWordList normaliza las entradas: trim de espacios, minúsculas, sin
// puntos iniciales ni finales, sin duplicados (se conserva la primera
// aparición). Las entradas con prefijo de scheme se rechazan y se retornan
// aparte para que el llamador pueda reportarlas.
func NewWordList(entries []string) (WordList, []string) {
	seen := make(map[string]struct{}, len(entries))
	out := make(WordList, 0, len(entries))
	var rejected []string

	for _, raw := range entries {
		entry, err := NormalizeEntry(raw)
		if err != nil {
			if strings.TrimSpace(raw) != "" {
				rejected = append(rejected, raw)
			}
			continue
		}
		if _, dup := seen[entry]; dup {
			continue
		}
		seen[entry] = struct{}{}
		out = append(out, entry)
	}

	return out, rejected
}

// NormalizeEntry normaliza una entrada individual de wordlist.
func NormalizeEntry(raw string) (string, error) {
	entry := strings.ToLower(strings.TrimSpace(raw))
	if strings.Contains(entry, "://") {
		return "", fmt.Errorf("%w: scheme prefix in %q", ErrInvalidEntry, raw)
	}
	entry = strings.Trim(entry, ".")
	if entry == "" {
		return "", fmt.Errorf("%w: empty entry", ErrInvalidEntry)
	}
	if strings.ContainsAny(entry, " \t/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidEntry, raw)
	}
	return entry, nil
}

// Len retorna el número de entradas.
func (w WordList) Len() int {
	return len(w)
}

// IsEmpty indica si la wordlist no tiene entradas.
func (w WordList) IsEmpty() bool {
	return len(w) == 0
}
