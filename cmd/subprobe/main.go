// cmd/subprobe/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"subprobe/internal/adapters/output"
	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
	"subprobe/internal/core/usecases"
	"subprobe/internal/platform/config"
	"subprobe/internal/platform/httpclient"
	"subprobe/internal/platform/logx"
	"subprobe/internal/platform/metrics"
	"subprobe/internal/platform/ui"
	"subprobe/internal/platform/validator"
	"subprobe/internal/platform/wordlist"
)

var (
	// Rellenables con -ldflags en build
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// probeTransport reemplaza el transporte HTTP del prober (tests).
var probeTransport http.RoundTripper

// Códigos de salida
const (
	exitOK     = 0
	exitOutput = 1
	exitInput  = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run ejecuta la CLI completa y retorna el código de salida.
func run(args []string, stdout, stderr io.Writer) int {
	// 1. Load centralized config
	cfg, err := config.Load(args)
	if err != nil {
		fmt.Fprintf(stderr, "Error: configuration load failed: %v\n", err)
		return exitInput
	}
	if cfg.Core.PrintHelp {
		config.PrintHelp(stdout)
		return exitOK
	}
	if cfg.Core.PrintVersion {
		config.PrintVersion(stdout, version, commit, date)
		return exitOK
	}

	// 2. Interactive prompts (re-prompt until valid)
	if cfg.Core.Interactive {
		if err := promptMissing(&cfg, ui.NewPrompter()); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitInput
		}
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fmt.Fprintln(stderr, "Usage: subprobe -d <domain> [-m subdomains|tlds|all]")
		fmt.Fprintln(stderr, "Try: subprobe -h for help")
		return exitInput
	}

	// 3. Shared logger
	logger := logx.NewWithLevel(logx.ParseLevel(cfg.LogLevel))
	mode := cfg.ScanMode()
	baseDomain := validator.NormalizeBaseDomain(cfg.Core.Domain)

	logger.Info("subprobe starting",
		"version", version,
		"commit", commit,
		"domain", baseDomain,
		"mode", mode.String(),
		"concurrency", cfg.Scan.Concurrency,
	)

	uiMode, _ := ui.ParseUIMode(cfg.Output.UI)
	presenter := ui.New(uiMode, ui.Options{
		OnlyLive: cfg.Output.OnlyLive,
		Progress: uiMode == ui.UIModePretty,
	})
	defer presenter.Close()

	for _, w := range cfg.Warnings() {
		presenter.Warning(w)
		logger.Warn(w)
	}

	// 4. Wordlists (fatal before any probing)
	labels, tlds, err := loadWordlists(cfg, mode, logger)
	if err != nil {
		presenter.Error(err.Error())
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}

	// 5. Prober
	prober, err := httpclient.New(httpclient.Config{
		Timeout:            cfg.Scan.Timeout,
		MaxRetries:         cfg.Network.Retries,
		UserAgent:          cfg.Network.UserAgent,
		RateLimit:          cfg.Network.RateLimit,
		ProxyURL:           cfg.Network.ProxyURL,
		InsecureSkipVerify: cfg.Network.InsecureTLS,
		Transport:          probeTransport,
	}, logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}
	logger.Debug("prober configured", "client", prober.String())

	// 6. Observers: presenter + metrics
	observers := ports.MultiObserver{presenter}
	var recorder *metrics.Recorder
	if cfg.Output.MetricsFile != "" {
		recorder, err = metrics.NewRecorder(metrics.Options{
			ConstLabels: prometheus.Labels{"domain": baseDomain, "mode": mode.String()},
		})
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitOutput
		}
		observers = append(observers, recorder)
	}

	// 7. Sinks
	streaming := output.NewStreamingWriter(cfg.Output.Dir, baseDomain, mode, logger)
	sinks := []ports.ResultSink{streaming}
	var report *output.JSONReportSink
	if cfg.Output.JSONReport {
		report = output.NewJSONReportSink(cfg.Output.Dir)
		sinks = append(sinks, report)
	}

	service := usecases.NewScanService(usecases.ScanServiceOptions{
		Prober:   prober,
		Observer: observers,
		Sinks:    sinks,
		Logger:   logger,
	})

	req := usecases.ScanRequest{
		Domain: baseDomain,
		Mode:   mode,
		Labels: labels,
		TLDs:   tlds,
		Config: cfg.RunConfig(),
	}

	gen, _, err := service.Prepare(req)
	if err != nil {
		presenter.Error(err.Error())
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitInput
	}

	presenter.Start(ui.ScanInfo{
		Domain:      gen.Domain(),
		Mode:        mode,
		Candidates:  gen.Count(),
		Labels:      labels.Len(),
		TLDs:        tlds.Len(),
		Concurrency: cfg.Scan.Concurrency,
		Timeout:     cfg.Scan.Timeout,
		Schemes:     cfg.Scan.Schemes,
		OutputPath:  streaming.Path(),
		RateLimit:   cfg.Network.RateLimit,
		ProxyOn:     cfg.Network.ProxyURL != "",
	})

	// 8. Context and signals for clean shutdown
	ctx, cancel := rootContextWithSignals(presenter)
	defer cancel()

	// 9. Execute scan
	summary, runErr := service.Run(ctx, req)

	code := exitOK
	if summary != nil {
		presenter.Finish(summary)
		if uiMode == ui.UIModeQuiet {
			if err := output.OutputTable(stdout, summary); err != nil {
				logger.Err(err, "phase", "output")
				code = exitOutput
			}
		}
		if report != nil && report.Path() != "" {
			logger.Info("json report written", "file", report.Path())
		}
		if recorder != nil {
			recorder.Finish(summary)
			if err := recorder.WriteTextfile(cfg.Output.MetricsFile); err != nil {
				logger.Err(err, "phase", "metrics")
				code = exitOutput
			}
		}
	}

	// 10. Handle execution errors
	switch {
	case runErr == nil:
	case errors.Is(runErr, domain.ErrScanCanceled):
		logger.Warn("scan canceled; partial results kept", "probed", summary.Probed, "candidates", summary.Candidates)
		code = exitOutput
	case errors.Is(runErr, domain.ErrExportFailed):
		logger.Err(runErr, "phase", "output")
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		code = exitOutput
	default:
		logger.Err(runErr, "phase", "run")
		fmt.Fprintf(stderr, "Error: %v\n", runErr)
		code = exitInput
	}

	if summary != nil {
		logger.Info("subprobe finished",
			"run_id", summary.RunID,
			"found", summary.Found(),
			"probed", summary.Probed,
			"elapsed", ui.FormatElapsed(summary.Elapsed),
		)
	}
	return code
}

// promptMissing completa por terminal el dominio (si falta o no es válido),
// el modo y la concurrencia.
func promptMissing(cfg *config.Config, p *ui.Prompter) error {
	if !validator.IsBaseDomain(cfg.Core.Domain) {
		d, err := p.Domain()
		if err != nil {
			return err
		}
		cfg.Core.Domain = d
	}

	mode, err := p.Mode(cfg.ScanMode())
	if err != nil {
		return err
	}
	cfg.Core.Mode = mode.String()

	n, err := p.Concurrency(cfg.Scan.Concurrency)
	if err != nil {
		return err
	}
	cfg.Scan.Concurrency = n
	return nil
}

// loadWordlists carga TLDs y, si el modo los usa, labels.
func loadWordlists(cfg config.Config, mode domain.ScanMode, logger logx.Logger) (labels, tlds domain.WordList, err error) {
	tlds, stats, err := wordlist.Load(cfg.Scan.TLDFile, wordlist.Options{
		Kind:      wordlist.KindTLDs,
		ICANNOnly: cfg.Scan.ICANNOnly,
	})
	if err != nil {
		return nil, nil, err
	}
	logWordlistStats(logger, cfg.Scan.TLDFile, stats)

	if !mode.IncludesLabels() {
		return nil, tlds, nil
	}

	labels, stats, err = wordlist.Load(cfg.Scan.WordlistFile, wordlist.Options{Kind: wordlist.KindLabels})
	if err != nil {
		return nil, nil, err
	}
	logWordlistStats(logger, cfg.Scan.WordlistFile, stats)

	return labels, tlds, nil
}

func logWordlistStats(logger logx.Logger, path string, stats wordlist.Stats) {
	logger.Info("wordlist loaded",
		"file", path,
		"accepted", stats.Accepted,
		"duplicates", stats.Duplicates,
		"filtered", stats.Filtered,
	)
	if stats.Invalid > 0 {
		logger.Warn("wordlist entries skipped",
			"file", path,
			"invalid", stats.Invalid,
			"samples", fmt.Sprintf("%q", stats.InvalidSamples),
		)
	}
}

// rootContextWithSignals crea el contexto raíz cancelado por SIGINT/SIGTERM.
// Cancelar solo detiene la admisión: los sondeos en vuelo terminan por su
// propio timeout y sus resultados se escriben.
func rootContextWithSignals(presenter ui.Presenter) (context.Context, context.CancelFunc) {
	base, baseCancel := context.WithCancel(context.Background())

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-ch:
			presenter.Warning(fmt.Sprintf("received %s, waiting for in-flight probes", sig))
			baseCancel()
		case <-base.Done():
		}
	}()

	cleanupCancel := func() {
		signal.Stop(ch)
		baseCancel()
	}

	return base, cleanupCancel
}
