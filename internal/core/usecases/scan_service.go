// internal/core/usecases/scan_service.go
package usecases

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
	"subprobe/internal/platform/errors"
	"subprobe/internal/platform/logx"
)

// ScanRequest describe una ejecución completa.
type ScanRequest struct {
	Domain string
	Mode   domain.ScanMode
	Labels domain.WordList
	TLDs   domain.WordList
	Config domain.RunConfig
}

// ScanServiceOptions configura el servicio de escaneo.
type ScanServiceOptions struct {
	Prober   ports.Prober
	Observer ports.ProbeObserver
	Sinks    []ports.ResultSink
	Logger   logx.Logger
}

// ScanService coordina generador, motor y sinks para una ejecución.
type ScanService struct {
	prober   ports.Prober
	observer ports.ProbeObserver
	sinks    []ports.ResultSink
	logger   logx.Logger
}

// NewScanService crea el servicio.
func NewScanService(opts ScanServiceOptions) *ScanService {
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	if opts.Observer == nil {
		opts.Observer = ports.NopObserver{}
	}

	return &ScanService{
		prober:   opts.Prober,
		observer: opts.Observer,
		sinks:    opts.Sinks,
		logger:   opts.Logger.With("component", "scan"),
	}
}

// Prepare valida la petición y construye generador y motor sin sondear nada.
// Cualquier error aquí es de configuración y aborta la ejecución.
func (s *ScanService) Prepare(req ScanRequest) (*CandidateGenerator, *ProbeEngine, error) {
	if !req.Mode.IsValid() {
		return nil, nil, fmt.Errorf("%w: %q", domain.ErrInvalidScanMode, req.Mode)
	}

	labels := req.Labels
	if !req.Mode.IncludesLabels() {
		labels = nil
	} else if labels.IsEmpty() {
		return nil, nil, fmt.Errorf("%w: labels", domain.ErrEmptyWordList)
	}

	gen, err := NewCandidateGenerator(GeneratorOptions{
		Domain:      req.Domain,
		Labels:      labels,
		TLDs:        req.TLDs,
		IncludeBare: req.Mode.IncludesBare(),
	})
	if err != nil {
		return nil, nil, err
	}

	engine, err := NewProbeEngine(ProbeEngineOptions{
		Prober:   s.prober,
		Observer: s.observer,
		Logger:   s.logger,
		Config:   req.Config,
	})
	if err != nil {
		return nil, nil, err
	}

	return gen, engine, nil
}

// Run ejecuta el escaneo completo. Los resultados se entregan a los sinks a
// medida que terminan; el resumen se cierra al agotarse la secuencia.
//
// Solo los errores de configuración abortan antes de sondear. Los fallos de
// sinks no detienen el sondeo: se retornan junto al resumen envueltos en
// ErrExportFailed.
func (s *ScanService) Run(ctx context.Context, req ScanRequest) (*domain.ScanSummary, error) {
	gen, engine, err := s.Prepare(req)
	if err != nil {
		return nil, err
	}

	summary := domain.NewScanSummary(gen.Domain(), req.Mode, gen.Count())
	summary.RunID = uuid.NewString()
	logger := s.logger.With("run_id", summary.RunID)

	logger.Info("starting scan",
		"domain", gen.Domain(),
		"mode", req.Mode.String(),
		"candidates", gen.Count(),
		"concurrency", req.Config.Concurrency,
		"sinks", len(s.sinks),
	)

	var sinkErrs []error
	failed := make(map[string]bool, len(s.sinks))

	for result := range engine.ProbeAll(ctx, gen.Indexed()) {
		summary.Add(result)

		for _, sink := range s.sinks {
			if failed[sink.Name()] {
				continue
			}
			if err := sink.Write(result); err != nil {
				// Un sink roto se desactiva; el sondeo sigue
				failed[sink.Name()] = true
				logger.Warn("sink write failed", "sink", sink.Name(), "error", err)
				sinkErrs = append(sinkErrs, errors.Wrapf(err, "sink %s", sink.Name()))
			}
		}
	}

	summary.Canceled = ctx.Err() != nil && summary.Probed < summary.Candidates
	summary.PeakInFlight = engine.Stats().PeakInFlight
	summary.Finish()

	for _, sink := range s.sinks {
		if err := sink.Finalize(summary); err != nil {
			logger.Warn("sink finalize failed", "sink", sink.Name(), "error", err)
			sinkErrs = append(sinkErrs, errors.Wrapf(err, "sink %s", sink.Name()))
		}
	}

	logger.Info("scan completed",
		"probed", summary.Probed,
		"found", summary.Found(),
		"canceled", summary.Canceled,
		"peak_in_flight", summary.PeakInFlight,
		"duration_ms", summary.Elapsed.Milliseconds(),
	)

	if len(sinkErrs) > 0 {
		return summary, fmt.Errorf("%w: %w", domain.ErrExportFailed, errors.Join(sinkErrs...))
	}
	if summary.Canceled {
		return summary, domain.ErrScanCanceled
	}
	return summary, nil
}
