// internal/core/usecases/engine.go
package usecases

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"time"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
	"subprobe/internal/platform/logx"
	"subprobe/internal/platform/workerpool"
)

// ProbeEngineOptions configura el motor de sondeo.
type ProbeEngineOptions struct {
	Prober   ports.Prober
	Observer ports.ProbeObserver
	Logger   logx.Logger
	Config   domain.RunConfig
}

// ProbeEngine resuelve la vivacidad de cada candidato con concurrencia
// acotada. Cada candidato ocupa un worker mientras prueba sus schemes en
// secuencia, así que nunca hay más de Concurrency peticiones en vuelo.
type ProbeEngine struct {
	prober   ports.Prober
	observer ports.ProbeObserver
	logger   logx.Logger
	config   domain.RunConfig

	mu       sync.Mutex
	lastPool *workerpool.WorkerPool[indexedCandidate, domain.Result]
}

// indexedCandidate lleva la posición de generación a través del pool.
type indexedCandidate struct {
	index     int
	candidate domain.Candidate
}

func (ic indexedCandidate) String() string {
	return fmt.Sprintf("#%d %s", ic.index, ic.candidate)
}

// NewProbeEngine crea el motor. Falla si la configuración es inválida.
func NewProbeEngine(opts ProbeEngineOptions) (*ProbeEngine, error) {
	if opts.Prober == nil {
		return nil, fmt.Errorf("%w: prober is required", domain.ErrInvalidConfig)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	if opts.Observer == nil {
		opts.Observer = ports.NopObserver{}
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}

	return &ProbeEngine{
		prober:   opts.Prober,
		observer: opts.Observer,
		logger:   opts.Logger.With("component", "engine"),
		config:   opts.Config,
	}, nil
}

// ProbeAll sondea cada candidato y retorna un canal con un resultado por
// candidato admitido, en orden de finalización. El canal se cierra cuando
// la secuencia se agota y todos los sondeos terminan.
//
// Cancelar ctx detiene la admisión de nuevos candidatos; los sondeos en
// vuelo terminan por su cuenta (respuesta o timeout por petición) y sus
// resultados se entregan. El llamador debe drenar el canal.
func (e *ProbeEngine) ProbeAll(ctx context.Context, candidates iter.Seq2[int, domain.Candidate]) <-chan domain.Result {
	pool := workerpool.NewWorkerPool(workerpool.WorkerPoolConfig{
		Workers: e.config.Concurrency,
		Name:    "probe-pool",
		Logger:  e.logger,
	}, e.probeCandidate).WithRecover(e.recoverCandidate)

	e.mu.Lock()
	e.lastPool = pool
	e.mu.Unlock()

	e.logger.Debug("probing candidates",
		"concurrency", e.config.Concurrency,
		"timeout", e.config.RequestTimeout.String(),
		"schemes", fmt.Sprint(e.config.Schemes),
	)

	items := func(yield func(indexedCandidate) bool) {
		for i, c := range candidates {
			if !yield(indexedCandidate{index: i, candidate: c}) {
				return
			}
		}
	}

	return pool.Stream(ctx, items)
}

// Stats retorna las estadísticas del pool de la última ejecución.
func (e *ProbeEngine) Stats() workerpool.WorkerPoolStats {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.lastPool == nil {
		return workerpool.WorkerPoolStats{Workers: e.config.Concurrency}
	}
	return e.lastPool.Stats()
}

// probeCandidate prueba los schemes en orden hasta el primer Live.
func (e *ProbeEngine) probeCandidate(ctx context.Context, item indexedCandidate) domain.Result {
	// Los sondeos en vuelo no se cancelan con la ejecución
	probeCtx := context.WithoutCancel(ctx)
	start := time.Now()

	attempts := make([]domain.Outcome, 0, len(e.config.Schemes))
	for _, scheme := range e.config.Schemes {
		outcome := e.probeScheme(probeCtx, item.candidate, scheme)
		attempts = append(attempts, outcome)
		e.observer.AttemptFinished(item.candidate, outcome)

		if outcome.IsLive() {
			break
		}
	}

	result := domain.Result{
		Index:     item.index,
		Candidate: item.candidate,
		Outcome:   ReduceOutcomes(attempts),
		Attempts:  attempts,
		Duration:  time.Since(start),
	}
	e.observer.CandidateFinished(result)
	return result
}

// probeScheme ejecuta un intento. Un pánico del prober cuenta como intento
// inconcluso para ese scheme y el candidato sigue con el siguiente.
func (e *ProbeEngine) probeScheme(ctx context.Context, candidate domain.Candidate, scheme string) (outcome domain.Outcome) {
	defer func() {
		if p := recover(); p != nil {
			e.logger.Warn("prober panic", "candidate", candidate.String(), "scheme", scheme, "panic", fmt.Sprint(p))
			outcome = domain.Inconclusive(candidate.URL(scheme), scheme, 0, fmt.Errorf("probe panic: %v", p))
		}
	}()

	return e.prober.Probe(ctx, ports.ProbeRequest{
		Candidate: candidate,
		Scheme:    scheme,
		Timeout:   e.config.RequestTimeout,
	})
}

// recoverCandidate es el último recurso del pool: un pánico fuera del prober
// (p.ej. en el observer) deja un resultado inconcluso. No vuelve a notificar
// al observer, que pudo ser el origen del pánico.
func (e *ProbeEngine) recoverCandidate(item indexedCandidate, panicValue any) domain.Result {
	url := ""
	if len(e.config.Schemes) > 0 {
		url = item.candidate.URL(e.config.Schemes[0])
	}
	outcome := domain.Inconclusive(url, "", 0, fmt.Errorf("probe panic: %v", panicValue))

	result := domain.Result{
		Index:     item.index,
		Candidate: item.candidate,
		Outcome:   outcome,
		Attempts:  []domain.Outcome{outcome},
	}
	return result
}
