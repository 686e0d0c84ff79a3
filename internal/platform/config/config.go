// internal/platform/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"subprobe/internal/core/domain"
	"subprobe/internal/platform/logx"
	"subprobe/internal/platform/validator"
)

// EnvPrefix prefijo de las variables de entorno.
const EnvPrefix = "SUBPROBE_"

type Config struct {
	Core    Core    `yaml:"core" json:"core"`
	Scan    Scan    `yaml:"scan" json:"scan"`
	Output  Output  `yaml:"output" json:"output"`
	Network Network `yaml:"network" json:"network"`

	// LogLevel nivel del logger (debug, info, warn, error)
	LogLevel string `yaml:"log_level" json:"log_level"`

	// ConfigFile archivo YAML cargado (vacío si ninguno)
	ConfigFile string `yaml:"-" json:"config_file,omitempty"`
}

type Core struct {
	// Domain dominio base sin TLD (p.ej. "example")
	Domain string `yaml:"domain" json:"domain"`

	// Mode subdomains | tlds | all
	Mode string `yaml:"mode" json:"mode"`

	// Interactive pide por terminal los valores que falten
	Interactive bool `yaml:"interactive" json:"interactive"`

	PrintVersion bool `yaml:"-" json:"-"`
	PrintHelp    bool `yaml:"-" json:"-"`
}

type Scan struct {
	// Concurrency sondeos simultáneos (10-200)
	Concurrency int `yaml:"concurrency" json:"concurrency"`

	// Timeout timeout duro por petición
	Timeout time.Duration `yaml:"timeout" json:"timeout"`

	// Schemes orden de prueba por candidato
	Schemes []string `yaml:"schemes" json:"schemes"`

	TLDFile      string `yaml:"tld_file" json:"tld_file"`
	WordlistFile string `yaml:"wordlist_file" json:"wordlist_file"`

	// ICANNOnly descarta TLDs que no estén en la sección ICANN de la PSL
	ICANNOnly bool `yaml:"icann_only" json:"icann_only"`
}

type Output struct {
	Dir string `yaml:"dir" json:"dir"`

	// UI modo de consola: pretty | raw | json | quiet
	UI string `yaml:"ui" json:"ui"`

	// Quiet desactiva la UI (solo resumen en tabla); equivale a UI=quiet
	Quiet bool `yaml:"quiet" json:"quiet"`

	// OnlyLive oculta los intentos no vivos; por defecto se imprime una
	// línea por intento
	OnlyLive bool `yaml:"only_live" json:"only_live"`

	// JSONReport escribe el informe completo por candidato
	JSONReport bool `yaml:"json_report" json:"json_report"`

	// MetricsFile ruta del textfile de Prometheus (vacío = desactivado)
	MetricsFile string `yaml:"metrics_file" json:"metrics_file"`
}

type Network struct {
	ProxyURL string `yaml:"proxy_url" json:"proxy_url"`

	// RateLimit peticiones por segundo (0 = sin límite)
	RateLimit float64 `yaml:"rate_limit" json:"rate_limit"`

	// Retries reintentos por fallo de conexión o protocolo
	Retries int `yaml:"retries" json:"retries"`

	UserAgent   string `yaml:"user_agent" json:"user_agent"`
	InsecureTLS bool   `yaml:"insecure_tls" json:"insecure_tls"`
}

// MaxRetries cota superior de reintentos aceptada.
const MaxRetries = 5

// DefaultConfig retorna una configuración por defecto.
func DefaultConfig() Config {
	return Config{
		Core: Core{
			Domain:      "",
			Mode:        string(domain.ScanModeSubdomains),
			Interactive: false,
		},
		Scan: Scan{
			Concurrency:  domain.DefaultConcurrency,
			Timeout:      domain.DefaultRequestTimeout,
			Schemes:      append([]string(nil), domain.DefaultSchemes...),
			TLDFile:      "tlds.txt",
			WordlistFile: "subdomains.txt",
		},
		Output: Output{
			Dir: "discovered",
			UI:  "pretty",
		},
		Network: Network{
			UserAgent: "subprobe/1.0",
		},
		LogLevel: "info",
	}
}

// Load inicializa la configuración: defaults -> YAML (--config) -> ENV ->
// FLAGS. Solo los flags presentes en args sobrescriben valores anteriores.
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()

	path := findConfigPath(args)
	if path == "" {
		path = getenv(EnvPrefix+"CONFIG", "")
	}
	if path != "" {
		if err := loadFromFile(&cfg, path); err != nil {
			return cfg, err
		}
		cfg.ConfigFile = path
	}

	// Cargar desde ENV
	loadFromEnv(&cfg)

	// Parsear flags (overrides ENV)
	if err := loadFromFlags(&cfg, args); err != nil {
		return cfg, err
	}

	// Normalizar
	normalize(&cfg)

	return cfg, nil
}

// loadFromFile carga un archivo YAML sobre la configuración actual.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrConfigLoadFailed, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrConfigLoadFailed, path, err)
	}
	return nil
}

// loadFromEnv carga configuración desde variables de entorno.
func loadFromEnv(cfg *Config) {
	if v := getenv(EnvPrefix+"DOMAIN", ""); v != "" {
		cfg.Core.Domain = v
	}
	if v := getenv(EnvPrefix+"MODE", ""); v != "" {
		cfg.Core.Mode = v
	}
	if v := getenv(EnvPrefix+"INTERACTIVE", ""); v != "" {
		cfg.Core.Interactive = parseBool(v)
	}

	// Scan
	if v := getenv(EnvPrefix+"CONCURRENCY", ""); v != "" {
		cfg.Scan.Concurrency = parseInt(v, cfg.Scan.Concurrency)
	}
	if v := getenv(EnvPrefix+"TIMEOUT", ""); v != "" {
		cfg.Scan.Timeout = parseDuration(v, cfg.Scan.Timeout)
	}
	if v := getenv(EnvPrefix+"SCHEMES", ""); v != "" {
		cfg.Scan.Schemes = splitList(v)
	}
	if v := getenv(EnvPrefix+"TLD_FILE", ""); v != "" {
		cfg.Scan.TLDFile = v
	}
	if v := getenv(EnvPrefix+"WORDLIST_FILE", ""); v != "" {
		cfg.Scan.WordlistFile = v
	}
	if v := getenv(EnvPrefix+"ICANN_ONLY", ""); v != "" {
		cfg.Scan.ICANNOnly = parseBool(v)
	}

	// Output
	if v := getenv(EnvPrefix+"OUTPUT_DIR", ""); v != "" {
		cfg.Output.Dir = v
	}
	if v := getenv(EnvPrefix+"UI", ""); v != "" {
		cfg.Output.UI = v
	}
	if v := getenv(EnvPrefix+"QUIET", ""); v != "" {
		cfg.Output.Quiet = parseBool(v)
	}
	if v := getenv(EnvPrefix+"ONLY_LIVE", ""); v != "" {
		cfg.Output.OnlyLive = parseBool(v)
	}
	if v := getenv(EnvPrefix+"JSON_REPORT", ""); v != "" {
		cfg.Output.JSONReport = parseBool(v)
	}
	if v := getenv(EnvPrefix+"METRICS_FILE", ""); v != "" {
		cfg.Output.MetricsFile = v
	}

	// Network
	if v := getenv(EnvPrefix+"PROXY_URL", ""); v != "" {
		cfg.Network.ProxyURL = v
	}
	if v := getenv(EnvPrefix+"RATE_LIMIT", ""); v != "" {
		cfg.Network.RateLimit = parseFloat(v, cfg.Network.RateLimit)
	}
	if v := getenv(EnvPrefix+"RETRIES", ""); v != "" {
		cfg.Network.Retries = parseInt(v, cfg.Network.Retries)
	}
	if v := getenv(EnvPrefix+"USER_AGENT", ""); v != "" {
		cfg.Network.UserAgent = v
	}
	if v := getenv(EnvPrefix+"INSECURE_TLS", ""); v != "" {
		cfg.Network.InsecureTLS = parseBool(v)
	}

	if v := getenv(logx.EnvLogLevel, ""); v != "" {
		cfg.LogLevel = v
	}
}

// loadFromFlags parsea flags de CLI. Los defaults de cada flag son los
// valores ya cargados, así que un flag ausente no pisa YAML ni ENV.
func loadFromFlags(cfg *Config, args []string) error {
	fs := pflag.NewFlagSet("subprobe", pflag.ContinueOnError)
	fs.Usage = func() { fmt.Fprint(os.Stderr, helpText) }

	var configPath string
	fs.StringVarP(&configPath, "config", "c", cfg.ConfigFile, "Archivo de configuración YAML")

	// Core
	fs.StringVarP(&cfg.Core.Domain, "domain", "d", cfg.Core.Domain, "Dominio base sin TLD (e.g., example)")
	fs.StringVarP(&cfg.Core.Mode, "mode", "m", cfg.Core.Mode, "Modo: subdomains | tlds | all")
	fs.BoolVarP(&cfg.Core.Interactive, "interactive", "i", cfg.Core.Interactive, "Pedir por terminal los valores que falten")

	// Scan
	fs.IntVarP(&cfg.Scan.Concurrency, "concurrency", "n", cfg.Scan.Concurrency, "Sondeos simultáneos (10-200)")
	fs.DurationVarP(&cfg.Scan.Timeout, "timeout", "T", cfg.Scan.Timeout, "Timeout por petición")
	fs.StringSliceVar(&cfg.Scan.Schemes, "schemes", cfg.Scan.Schemes, "Schemes a probar, en orden")
	fs.StringVarP(&cfg.Scan.TLDFile, "tlds", "t", cfg.Scan.TLDFile, "Wordlist de TLDs")
	fs.StringVarP(&cfg.Scan.WordlistFile, "wordlist", "w", cfg.Scan.WordlistFile, "Wordlist de labels de subdominio")
	fs.BoolVar(&cfg.Scan.ICANNOnly, "icann-only", cfg.Scan.ICANNOnly, "Descartar TLDs fuera de la sección ICANN de la PSL")

	// Output
	fs.StringVarP(&cfg.Output.Dir, "out", "o", cfg.Output.Dir, "Directorio de salida")
	fs.StringVar(&cfg.Output.UI, "ui", cfg.Output.UI, "Modo de consola: pretty | raw | json | quiet")
	fs.BoolVarP(&cfg.Output.Quiet, "quiet", "q", cfg.Output.Quiet, "Sin UI; solo resumen en tabla")
	fs.BoolVar(&cfg.Output.OnlyLive, "only-live", cfg.Output.OnlyLive, "Mostrar solo los intentos vivos")
	fs.BoolVar(&cfg.Output.JSONReport, "json", cfg.Output.JSONReport, "Escribir informe JSON por candidato")
	fs.StringVar(&cfg.Output.MetricsFile, "metrics-file", cfg.Output.MetricsFile, "Escribir métricas Prometheus en este archivo")

	// Network
	fs.StringVarP(&cfg.Network.ProxyURL, "proxy", "p", cfg.Network.ProxyURL, "Proxy HTTP(S) o SOCKS5")
	fs.Float64Var(&cfg.Network.RateLimit, "rate", cfg.Network.RateLimit, "Peticiones por segundo (0 = sin límite)")
	fs.IntVarP(&cfg.Network.Retries, "retries", "r", cfg.Network.Retries, "Reintentos por fallo de conexión o protocolo")
	fs.StringVar(&cfg.Network.UserAgent, "user-agent", cfg.Network.UserAgent, "User-Agent")
	fs.BoolVarP(&cfg.Network.InsecureTLS, "insecure", "k", cfg.Network.InsecureTLS, "No verificar certificados TLS")

	// Info
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Nivel de log (debug, info, warn, error)")
	fs.BoolVarP(&cfg.Core.PrintVersion, "version", "v", false, "Imprimir versión y salir")
	fs.BoolVarP(&cfg.Core.PrintHelp, "help", "h", false, "Mostrar ayuda")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}
	if fs.NArg() > 0 && cfg.Core.Domain == "" {
		// Primer argumento posicional como dominio
		cfg.Core.Domain = fs.Arg(0)
	}
	return nil
}

// findConfigPath localiza --config/-c antes de parsear el resto de flags.
func findConfigPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		switch {
		case a == "--":
			return ""
		case strings.HasPrefix(a, "--config="):
			return strings.TrimPrefix(a, "--config=")
		case strings.HasPrefix(a, "-c="):
			return strings.TrimPrefix(a, "-c=")
		case a == "--config" || a == "-c":
			if i+1 < len(args) {
				return args[i+1]
			}
		}
	}
	return ""
}

func normalize(c *Config) {
	c.Core.Domain = strings.TrimSpace(strings.ToLower(c.Core.Domain))
	c.Core.Mode = strings.TrimSpace(strings.ToLower(c.Core.Mode))
	if c.Core.Mode == "" {
		c.Core.Mode = string(domain.ScanModeSubdomains)
	}

	schemes := make([]string, 0, len(c.Scan.Schemes))
	seen := make(map[string]bool, len(c.Scan.Schemes))
	for _, s := range c.Scan.Schemes {
		s = strings.ToLower(strings.TrimSpace(strings.TrimSuffix(s, "://")))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		schemes = append(schemes, s)
	}
	c.Scan.Schemes = schemes

	if c.Output.Dir == "" {
		c.Output.Dir = "discovered"
	}
	c.Output.UI = strings.ToLower(strings.TrimSpace(c.Output.UI))
	if c.Output.UI == "" {
		c.Output.UI = "pretty"
	}
	if c.Output.Quiet {
		c.Output.UI = "quiet"
	}
	if c.Network.RateLimit < 0 {
		c.Network.RateLimit = 0
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate verifica la configuración. Con Interactive activo se permiten
// dominio vacío y modo por decidir: el prompt los completará.
func (c Config) Validate() error {
	if c.Core.Domain == "" {
		if !c.Core.Interactive {
			return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, domain.ErrEmptyDomain)
		}
	} else if !validator.IsBaseDomain(c.Core.Domain) {
		return fmt.Errorf("%w: %w: %q must not contain dots", domain.ErrInvalidConfig, domain.ErrInvalidDomain, c.Core.Domain)
	}

	mode, err := domain.ParseScanMode(c.Core.Mode)
	if err != nil {
		return fmt.Errorf("%w: %w: %q", domain.ErrInvalidConfig, err, c.Core.Mode)
	}

	if err := ValidateConcurrency(c.Scan.Concurrency); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}
	if err := c.RunConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrInvalidConfig, err)
	}

	if validator.IsEmpty(c.Scan.TLDFile) {
		return fmt.Errorf("%w: tld wordlist path is required", domain.ErrInvalidConfig)
	}
	if mode.IncludesLabels() && validator.IsEmpty(c.Scan.WordlistFile) {
		return fmt.Errorf("%w: subdomain wordlist path is required for mode %s", domain.ErrInvalidConfig, mode)
	}

	if c.Network.ProxyURL != "" && !validator.IsProxyURL(c.Network.ProxyURL) {
		return fmt.Errorf("%w: invalid proxy url %q", domain.ErrInvalidConfig, c.Network.ProxyURL)
	}
	if c.Network.Retries < 0 || c.Network.Retries > MaxRetries {
		return fmt.Errorf("%w: retries must be between 0 and %d", domain.ErrInvalidConfig, MaxRetries)
	}
	switch c.Output.UI {
	case "pretty", "raw", "json", "quiet":
	default:
		return fmt.Errorf("%w: unknown ui mode %q", domain.ErrInvalidConfig, c.Output.UI)
	}
	if !logx.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("%w: unknown log level %q", domain.ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

// ValidateConcurrency aplica el rango aceptado por la CLI.
func ValidateConcurrency(n int) error {
	if n < domain.MinConcurrency || n > domain.MaxConcurrency {
		return fmt.Errorf("%w: %d not in [%d, %d]",
			domain.ErrInvalidConcurrency, n, domain.MinConcurrency, domain.MaxConcurrency)
	}
	return nil
}

// Warnings retorna advertencias no fatales sobre la configuración.
func (c Config) Warnings() []string {
	var warnings []string
	if c.Scan.Concurrency > domain.WarnConcurrency {
		warnings = append(warnings, fmt.Sprintf(
			"concurrency %d is above %d: expect more timeouts and possible blocking",
			c.Scan.Concurrency, domain.WarnConcurrency))
	}
	if c.Network.InsecureTLS {
		warnings = append(warnings, "TLS certificate verification is disabled")
	}
	return warnings
}

// ScanMode retorna el modo parseado (subdomains si es inválido).
func (c Config) ScanMode() domain.ScanMode {
	mode, err := domain.ParseScanMode(c.Core.Mode)
	if err != nil {
		return domain.ScanModeSubdomains
	}
	return mode
}

// RunConfig retorna la configuración del motor de sondeo.
func (c Config) RunConfig() domain.RunConfig {
	return domain.RunConfig{
		Concurrency:    c.Scan.Concurrency,
		RequestTimeout: c.Scan.Timeout,
		Schemes:        append([]string(nil), c.Scan.Schemes...),
	}
}

// ToJSON serializa la configuración a JSON (útil para debugging).
func (c Config) ToJSON() (string, error) {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Helpers

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	default:
		return false
	}
}

func parseInt(v string, def int) int {
	i, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return def
	}
	return i
}

func parseFloat(v string, def float64) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil {
		return def
	}
	return f
}

// parseDuration acepta "10s", "1m30s" o un entero en segundos.
func parseDuration(v string, def time.Duration) time.Duration {
	v = strings.TrimSpace(v)
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if s, err := strconv.Atoi(v); err == nil {
		return time.Duration(s) * time.Second
	}
	return def
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
