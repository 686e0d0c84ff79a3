// internal/platform/validator/validator.go
package validator

import (
	"net"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
)

var (
	// Una etiqueta DNS: alfanumérica, guiones internos, hasta 63 caracteres.
	baseDomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$`)

	// Labels de wordlist: se admite '_' (p.ej. _dmarc) y varios niveles (api.dev).
	labelPartRegex = regexp.MustCompile(`^[a-z0-9_]([a-z0-9_\-]{0,61}[a-z0-9_])?$`)

	tldPartRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$`)

	domainRegex = regexp.MustCompile(`^([a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?\.)*[a-zA-Z0-9]([a-zA-Z0-9\-]{0,61}[a-zA-Z0-9])?$`)
)

// Domain validators

// IsBaseDomain verifica que el dominio base no tenga puntos y sea una
// etiqueta DNS válida (tras convertir IDN a punycode).
func IsBaseDomain(domain string) bool {
	if strings.Contains(domain, ".") {
		return false
	}
	ascii, err := ToASCII(domain)
	if err != nil {
		return false
	}
	return baseDomainRegex.MatchString(ascii)
}

// NormalizeBaseDomain normaliza el dominio base: trim, minúsculas, punycode.
func NormalizeBaseDomain(domain string) string {
	ascii, err := ToASCII(domain)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(domain))
	}
	return ascii
}

// IsDomain verifica si un string es un dominio válido (FQDN sin punto final).
func IsDomain(domain string) bool {
	if len(domain) == 0 || len(domain) > 253 {
		return false
	}
	if !domainRegex.MatchString(domain) {
		return false
	}
	// Verificar que no sea una IP
	return net.ParseIP(domain) == nil
}

// Wordlist validators

// NormalizeLabel normaliza un label de subdominio a ASCII. Retorna false si
// el resultado no es un label válido.
func NormalizeLabel(label string) (string, bool) {
	ascii, err := ToASCII(label)
	if err != nil || ascii == "" || len(ascii) > 253 {
		return "", false
	}
	for _, part := range strings.Split(ascii, ".") {
		if !labelPartRegex.MatchString(part) {
			return "", false
		}
	}
	return ascii, true
}

// NormalizeTLD normaliza un TLD (o sufijo multinivel como co.uk) a ASCII.
func NormalizeTLD(tld string) (string, bool) {
	ascii, err := ToASCII(tld)
	if err != nil || ascii == "" {
		return "", false
	}
	parts := strings.Split(ascii, ".")
	for _, part := range parts {
		if !tldPartRegex.MatchString(part) {
			return "", false
		}
	}
	// El último nivel no puede ser puramente numérico
	if isNumeric(parts[len(parts)-1]) {
		return "", false
	}
	return ascii, true
}

// IsPublicSuffix indica si tld es un sufijo público gestionado por ICANN
// según la Public Suffix List embebida en x/net.
func IsPublicSuffix(tld string) bool {
	tld = strings.Trim(strings.ToLower(strings.TrimSpace(tld)), ".")
	if tld == "" {
		return false
	}
	suffix, icann := publicsuffix.PublicSuffix("probe." + tld)
	return icann && suffix == tld
}

// ToASCII convierte un nombre (posiblemente IDN) a su forma punycode en
// minúsculas, sin espacios ni puntos en los extremos.
func ToASCII(name string) (string, error) {
	name = strings.Trim(strings.ToLower(strings.TrimSpace(name)), ".")
	return idna.Punycode.ToASCII(name)
}

// URL validators

// IsURL verifica si un string es una URL válida con scheme y host.
func IsURL(urlStr string) bool {
	if len(urlStr) == 0 {
		return false
	}
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}

// IsProxyURL verifica que la URL use un scheme de proxy soportado.
func IsProxyURL(urlStr string) bool {
	if !IsURL(urlStr) {
		return false
	}
	parsed, _ := url.Parse(urlStr)
	switch parsed.Scheme {
	case "http", "https", "socks5", "socks5h":
		return true
	default:
		return false
	}
}

// Generic validators

// IsEmpty verifica si un string está vacío o solo contiene espacios.
func IsEmpty(s string) bool {
	return len(strings.TrimSpace(s)) == 0
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
