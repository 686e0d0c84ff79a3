// internal/platform/ui/pterm_presenter.go
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"subprobe/internal/core/domain"
)

// PTermPresenter implementa Presenter usando la biblioteca pterm para
// renderizar colores, símbolos, cajas y tablas en la terminal.
//
// Los métodos de observer se llaman desde varios workers; todo el
// renderizado pasa por mu.
type PTermPresenter struct {
	mu sync.Mutex

	out  io.Writer
	opts Options

	progress *pterm.ProgressbarPrinter
	found    int
}

// NewPTermPresenter crea una nueva instancia del presenter con pterm
// escribiendo en stdout.
func NewPTermPresenter(opts Options) *PTermPresenter {
	return NewPTermPresenterWithWriter(os.Stdout, opts)
}

// NewPTermPresenterWithWriter crea el presenter sobre un writer arbitrario.
func NewPTermPresenterWithWriter(w io.Writer, opts Options) *PTermPresenter {
	if w == nil {
		w = os.Stdout
	}
	return &PTermPresenter{out: w, opts: opts}
}

// Start inicia la presentación mostrando el header del escaneo
func (p *PTermPresenter) Start(info ScanInfo) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.found = 0

	pterm.Fprintln(p.out, StyleAccent.Sprint(Banner))

	header := pterm.DefaultHeader.
		WithBackgroundStyle(pterm.NewStyle(pterm.BgCyan)).
		WithTextStyle(pterm.NewStyle(pterm.FgBlack)).
		Sprint("subprobe - Subdomain & TLD discovery")
	pterm.Fprintln(p.out, header)

	var b strings.Builder
	fmt.Fprintf(&b, "%s Domain: %s\n", IconTarget, pterm.Cyan(info.Domain))
	fmt.Fprintf(&b, "   Mode: %s\n", pterm.Yellow(info.Mode.String()))
	fmt.Fprintf(&b, "   Candidates: %d (%d labels x %d TLDs)\n", info.Candidates, info.Labels, info.TLDs)
	fmt.Fprintf(&b, "%s Concurrency: %d\n", IconWorkers, info.Concurrency)
	fmt.Fprintf(&b, "%s Timeout: %s\n", IconTime, formatDuration(info.Timeout))
	fmt.Fprintf(&b, "   Schemes: %s\n", strings.Join(info.Schemes, " -> "))
	fmt.Fprintf(&b, "   Rate limit: %s\n", rateString(info.RateLimit))
	fmt.Fprintf(&b, "   Proxy: %s", boolToString(info.ProxyOn))
	if info.OutputPath != "" {
		fmt.Fprintf(&b, "\n%s Output: %s", IconFile, info.OutputPath)
	}

	box := pterm.DefaultBox.
		WithTitle("Scan Configuration").
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).
		Sprint(b.String())
	pterm.Fprintln(p.out, box)
	pterm.Fprintln(p.out, pterm.LightBlue(SeparatorHeavy))

	if p.opts.Progress && info.Candidates > 0 {
		bar, err := pterm.DefaultProgressbar.
			WithTotal(info.Candidates).
			WithTitle("Probing").
			WithRemoveWhenDone(true).
			Start()
		if err == nil {
			p.progress = bar
		}
	}
}

// AttemptFinished imprime una línea por intento; con OnlyLive solo los Live.
func (p *PTermPresenter) AttemptFinished(candidate domain.Candidate, attempt domain.Outcome) {
	if !attempt.IsLive() && p.opts.OnlyLive {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Fprintln(p.out, AttemptLine(attempt))
}

// CandidateFinished avanza el progreso y cuenta hosts vivos.
func (p *PTermPresenter) CandidateFinished(result domain.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if result.Outcome.IsLive() {
		p.found++
	}
	if p.progress != nil {
		p.progress.UpdateTitle(fmt.Sprintf("Probing (%d found)", p.found))
		p.progress.Increment()
	}
}

// Info muestra un mensaje informativo
func (p *PTermPresenter) Info(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Fprintln(p.out, pterm.Info.Sprint(msg))
}

// Warning muestra una advertencia
func (p *PTermPresenter) Warning(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Fprintln(p.out, pterm.Warning.Sprint(msg))
}

// Error muestra un error
func (p *PTermPresenter) Error(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	pterm.Fprintln(p.out, pterm.Error.Sprint(msg))
}

// Finish detiene el progreso y muestra el resumen final: hosts
// descubiertos, conteo por tipo de resultado y tiempo total.
func (p *PTermPresenter) Finish(summary *domain.ScanSummary) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopProgress()
	if summary == nil {
		return
	}

	pterm.Fprintln(p.out)
	pterm.Fprintln(p.out, pterm.DefaultSection.Sprint("Discovered hosts"))
	if summary.Found() == 0 {
		pterm.Fprintln(p.out, StyleSecondary.Sprint("  (none)"))
	}
	for _, host := range summary.LiveHosts() {
		pterm.Fprintln(p.out, "  "+StyleSuccess.Sprint(host))
	}
	pterm.Fprintln(p.out)

	data := pterm.TableData{{"Outcome", "Count"}}
	for _, k := range domain.OutcomeKinds {
		data = append(data, []string{
			OutcomeStyle(k).Sprint(k.String()),
			fmt.Sprintf("%d", summary.ByKind[k]),
		})
	}
	if table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender(); err == nil {
		pterm.Fprintln(p.out, table)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s Found: %s of %d candidates\n", IconFound, pterm.Green(summary.Found()), summary.Candidates)
	fmt.Fprintf(&b, "   Probed: %d\n", summary.Probed)
	fmt.Fprintf(&b, "   Peak in flight: %d\n", summary.PeakInFlight)
	if summary.OutputPath != "" {
		fmt.Fprintf(&b, "%s Results saved to: %s\n", IconFile, summary.OutputPath)
	}
	fmt.Fprintf(&b, "%s Total time taken: %s", IconTime, FormatElapsed(summary.Elapsed))

	title := "Scan Summary"
	style := pterm.NewStyle(pterm.FgGreen)
	if summary.Canceled {
		title = "Scan Summary (canceled)"
		style = pterm.NewStyle(pterm.FgYellow)
	}
	box := pterm.DefaultBox.
		WithTitle(title).
		WithTitleTopCenter().
		WithRightPadding(4).
		WithLeftPadding(4).
		WithBoxStyle(style).
		Sprint(b.String())
	pterm.Fprintln(p.out, box)
	pterm.Fprintln(p.out, StyleSecondary.Sprint(Goodbye))
}

// Close limpia recursos del presenter
func (p *PTermPresenter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.stopProgress()
	return nil
}

func (p *PTermPresenter) stopProgress() {
	if p.progress != nil {
		_, _ = p.progress.Stop()
		p.progress = nil
	}
}

// AttemptLine formatea un intento como línea de consola.
func AttemptLine(o domain.Outcome) string {
	style := OutcomeStyle(o.Kind)
	switch {
	case o.IsLive():
		return style.Sprintf("%s Active subdomain detected: %s", OutcomeSymbol(o.Kind), o.URL)
	case o.Cause != nil:
		return style.Sprintf("%s %s %s: %v", OutcomeSymbol(o.Kind), o.Kind, o.URL, o.Cause)
	case o.StatusCode != 0:
		return style.Sprintf("%s %s %s (%d)", OutcomeSymbol(o.Kind), o.Kind, o.URL, o.StatusCode)
	default:
		return style.Sprintf("%s %s %s", OutcomeSymbol(o.Kind), o.Kind, o.URL)
	}
}

func rateString(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return fmt.Sprintf("%.1f req/s", rps)
}
