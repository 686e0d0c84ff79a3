// internal/platform/config/help.go
package config

import (
	"fmt"
	"io"
	"runtime"
)

const helpText = `
subprobe - Subdomain and TLD liveness prober

USAGE:
  subprobe -d <domain> [options]
  subprobe -i                      (interactive: prompts for missing values)

IMPORTANT:
  The domain is the base name WITHOUT TLD: "example", not "example.com".
  Use double dash (--) for long flag names and single dash (-) for short ones.

CORE OPTIONS:
  -d, --domain string        Base domain without TLD (e.g., example)
  -m, --mode string          subdomains | tlds | all (default: subdomains)
  -i, --interactive          Prompt for domain, mode and concurrency
  -c, --config string        YAML configuration file

SCAN OPTIONS:
  -n, --concurrency int      Simultaneous probes, 10-200 (default: 50)
                             Values above 100 are accepted with a warning
  -T, --timeout duration     Hard timeout per request (default: 10s)
      --schemes strings      Schemes to try per candidate, in order (default: http,https)
  -t, --tlds string          TLD wordlist, one per line (default: tlds.txt)
  -w, --wordlist string      Subdomain label wordlist, one per line (default: subdomains.txt)
      --icann-only           Drop TLDs outside the ICANN section of the Public Suffix List

OUTPUT OPTIONS:
  -o, --out string           Output directory, created on demand (default: discovered)
      --ui string            Console mode: pretty | raw | json | quiet (default: pretty)
  -q, --quiet                No live UI; print a summary table at the end (same as --ui quiet)
      --only-live            Print only live attempts (default: one line per attempt)
      --json                 Write a per-candidate JSON report
      --metrics-file string  Write Prometheus metrics to this file

NETWORK OPTIONS:
  -p, --proxy string         HTTP(S) or SOCKS5 proxy URL
      --rate float           Max requests per second, 0 = unlimited (default: 0)
  -r, --retries int          Retries on connection or protocol errors, 0-5 (default: 0)
      --user-agent string    User-Agent header (default: subprobe/1.0)
  -k, --insecure             Skip TLS certificate verification

INFO:
      --log-level string     debug | info | warn | error (default: info)
  -v, --version              Print version information and exit
  -h, --help                 Show this help message

SCAN MODES:
  subdomains   label.domain.tld for every label and every TLD
  tlds         domain.tld for every TLD (no label wordlist needed)
  all          both of the above

  Live hosts are written to <out>/<domain>_discovered_<mode>.txt,
  one per line, in generation order.

EXAMPLES:
  Basic scan:
    subprobe -d example

  Bare domain across many TLDs:
    subprobe -d example -m tlds -t tlds.txt

  Everything, higher concurrency, https first:
    subprobe -d example -m all -n 150 --schemes https,http

  Through a proxy with a rate cap:
    subprobe -d example -p socks5://127.0.0.1:1080 --rate 20

ENVIRONMENT VARIABLES:
  Most flags can be set via environment variables with SUBPROBE_ prefix:

  SUBPROBE_DOMAIN=example           Base domain
  SUBPROBE_MODE=all                 Scan mode
  SUBPROBE_CONCURRENCY=100          Simultaneous probes
  SUBPROBE_TIMEOUT=5s               Per-request timeout
  SUBPROBE_SCHEMES=https,http       Scheme order
  SUBPROBE_TLD_FILE=/path           TLD wordlist
  SUBPROBE_WORDLIST_FILE=/path      Label wordlist
  SUBPROBE_OUTPUT_DIR=/path         Output directory
  SUBPROBE_UI=raw                   Console mode
  SUBPROBE_PROXY_URL=http://...     Proxy URL
  SUBPROBE_RATE_LIMIT=20            Requests per second
  SUBPROBE_CONFIG=/path/cfg.yaml    YAML configuration file
  SUBPROBE_LOG_LEVEL=debug          Log level

  Precedence: defaults < YAML file < environment < flags.

Only probe domains you are authorized to test.
`

// PrintHelp writes the help message.
func PrintHelp(w io.Writer) {
	fmt.Fprint(w, helpText)
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer, version, commit, date string) {
	fmt.Fprintf(w, "subprobe %s\n", version)
	fmt.Fprintf(w, "  Commit:  %s\n", commit)
	fmt.Fprintf(w, "  Built:   %s\n", date)
	fmt.Fprintf(w, "  Go:      %s\n", getGoVersion())
}

func getGoVersion() string {
	return runtime.Version()
}
