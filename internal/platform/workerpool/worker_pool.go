// internal/platform/workerpool/worker_pool.go
package workerpool

import (
	"context"
	"fmt"
	"iter"
	"sync"
	"sync/atomic"
	"time"

	"subprobe/internal/platform/logx"
)

// Handler procesa un elemento y produce su resultado.
type Handler[T, R any] func(ctx context.Context, item T) R

// RecoverFunc construye un resultado para un elemento cuyo handler entró en pánico.
type RecoverFunc[T, R any] func(item T, panicValue any) R

// WorkerPoolConfig configura el worker pool.
type WorkerPoolConfig struct {
	// Workers número de elementos procesados simultáneamente (cota dura)
	Workers int

	// Name nombre para logs
	Name string

	Logger logx.Logger
}

// WorkerPool gestiona la ejecución concurrente de un handler sobre una
// secuencia de elementos con un número fijo de workers.
//
// La admisión es por demanda: la cola de tareas no tiene buffer, así que un
// elemento solo se extrae de la secuencia cuando un worker está libre. Nunca
// hay más de Workers handlers en ejecución.
type WorkerPool[T, R any] struct {
	workers int
	name    string
	handler Handler[T, R]
	onPanic RecoverFunc[T, R]
	logger  logx.Logger

	submitted atomic.Int64
	completed atomic.Int64
	panicked  atomic.Int64
	inFlight  atomic.Int64
	peak      atomic.Int64
}

// NewWorkerPool crea un nuevo worker pool.
func NewWorkerPool[T, R any](cfg WorkerPoolConfig, handler Handler[T, R]) *WorkerPool[T, R] {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.Name == "" {
		cfg.Name = "worker-pool"
	}
	if cfg.Logger == nil {
		cfg.Logger = logx.New()
	}

	return &WorkerPool[T, R]{
		workers: cfg.Workers,
		name:    cfg.Name,
		handler: handler,
		logger:  cfg.Logger.With("component", cfg.Name),
	}
}

// WithRecover registra un constructor de resultados para handlers que entran
// en pánico. Sin él, el elemento se descarta y se registra el error.
func (wp *WorkerPool[T, R]) WithRecover(fn RecoverFunc[T, R]) *WorkerPool[T, R] {
	wp.onPanic = fn
	return wp
}

// Stream consume items y retorna un canal con un resultado por elemento
// procesado, en orden de finalización. El canal se cierra cuando la
// secuencia se agota (o ctx se cancela) y todos los workers terminan.
//
// Cancelar ctx solo detiene la admisión: los elementos ya admitidos terminan
// y sus resultados se entregan. El llamador debe drenar el canal.
func (wp *WorkerPool[T, R]) Stream(ctx context.Context, items iter.Seq[T]) <-chan R {
	taskQueue := make(chan T)
	results := make(chan R, wp.workers)

	wp.logger.Debug("starting worker pool", "workers", wp.workers)

	var wg sync.WaitGroup
	for i := 0; i < wp.workers; i++ {
		wg.Add(1)
		go wp.worker(ctx, i, taskQueue, results, &wg)
	}

	// Productor: admite el siguiente elemento cuando un worker lo recibe
	go func() {
		defer close(taskQueue)
		for item := range items {
			if ctx.Err() != nil {
				wp.logger.Debug("admission stopped", "reason", ctx.Err())
				return
			}
			select {
			case taskQueue <- item:
				wp.submitted.Add(1)
			case <-ctx.Done():
				wp.logger.Debug("admission stopped", "reason", ctx.Err())
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
		wp.logger.Debug("worker pool drained",
			"submitted", wp.submitted.Load(),
			"completed", wp.completed.Load(),
		)
	}()

	return results
}

// worker es el goroutine que procesa tareas.
func (wp *WorkerPool[T, R]) worker(ctx context.Context, id int, tasks <-chan T, results chan<- R, wg *sync.WaitGroup) {
	defer wg.Done()

	for item := range tasks {
		if r, ok := wp.execute(ctx, id, item); ok {
			results <- r
		}
	}
}

// execute ejecuta una tarea individual. El contador de vuelo se libera
// en todos los caminos, incluido un pánico del handler.
func (wp *WorkerPool[T, R]) execute(ctx context.Context, workerID int, item T) (result R, ok bool) {
	start := time.Now()

	n := wp.inFlight.Add(1)
	wp.observePeak(n)

	defer func() {
		wp.inFlight.Add(-1)
		wp.completed.Add(1)

		if p := recover(); p != nil {
			wp.panicked.Add(1)
			wp.logger.Err(fmt.Errorf("handler panic: %v", p),
				"worker_id", workerID,
				"item", fmt.Sprint(item),
			)
			if wp.onPanic != nil {
				result, ok = wp.onPanic(item, p), true
			} else {
				ok = false
			}
		}
	}()

	result = wp.handler(ctx, item)

	wp.logger.Debug("task completed",
		"worker_id", workerID,
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return result, true
}

func (wp *WorkerPool[T, R]) observePeak(n int64) {
	for {
		p := wp.peak.Load()
		if n <= p || wp.peak.CompareAndSwap(p, n) {
			return
		}
	}
}

// Stats retorna estadísticas del worker pool.
func (wp *WorkerPool[T, R]) Stats() WorkerPoolStats {
	return WorkerPoolStats{
		Workers:      wp.workers,
		Submitted:    wp.submitted.Load(),
		Completed:    wp.completed.Load(),
		Panicked:     wp.panicked.Load(),
		InFlight:     wp.inFlight.Load(),
		PeakInFlight: wp.peak.Load(),
	}
}

// WorkerPoolStats contiene estadísticas del worker pool.
type WorkerPoolStats struct {
	Workers      int
	Submitted    int64
	Completed    int64
	Panicked     int64
	InFlight     int64
	PeakInFlight int64
}
