// internal/core/usecases/engine_test.go
package usecases

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
	"subprobe/internal/testutil"
)

func newTestEngine(t *testing.T, prober ports.Prober, obs ports.ProbeObserver, cfg domain.RunConfig) *ProbeEngine {
	t.Helper()
	engine, err := NewProbeEngine(ProbeEngineOptions{
		Prober:   prober,
		Observer: obs,
		Logger:   testutil.NewTestLogger(),
		Config:   cfg,
	})
	require.NoError(t, err)
	return engine
}

func exampleGenerator(t *testing.T, labels ...string) *CandidateGenerator {
	t.Helper()
	gen, err := NewCandidateGenerator(GeneratorOptions{
		Domain: "example",
		Labels: words(labels...),
		TLDs:   words("com", "net"),
	})
	require.NoError(t, err)
	return gen
}

func numberedLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("host%d", i)
	}
	return labels
}

func TestNewProbeEngine_Validation(t *testing.T) {
	prober := ports.ProberFunc(func(context.Context, ports.ProbeRequest) domain.Outcome {
		return domain.Outcome{}
	})

	_, err := NewProbeEngine(ProbeEngineOptions{Config: domain.DefaultRunConfig()})
	assert.ErrorIs(t, err, domain.ErrInvalidConfig, "prober is required")

	_, err = NewProbeEngine(ProbeEngineOptions{Prober: prober, Config: testRunConfig(0, time.Second)})
	assert.ErrorIs(t, err, domain.ErrInvalidConcurrency)

	_, err = NewProbeEngine(ProbeEngineOptions{Prober: prober, Config: testRunConfig(10, 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidTimeout)

	cfg := domain.DefaultRunConfig()
	cfg.Schemes = []string{"ftp"}
	_, err = NewProbeEngine(ProbeEngineOptions{Prober: prober, Config: cfg})
	assert.ErrorIs(t, err, domain.ErrInvalidScheme)
}

func TestProbeEngine_EndToEnd(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{}).
		Set("http://www.example.com", testutil.Reply{Status: 200}).
		Set("http://www.example.net", testutil.Reply{Status: 404}).
		Set("https://www.example.net", testutil.Reply{Status: 404})
	obs := newRecordingObserver()
	engine := newTestEngine(t, newFakeProber(transport, time.Second), obs, testRunConfig(10, time.Second))

	results := collect(engine.ProbeAll(context.Background(), exampleGenerator(t, "www", "mail").Indexed()))
	require.Len(t, results, 4)

	got := byCandidate(results)
	live := 0
	for _, r := range results {
		if r.Outcome.IsLive() {
			live++
		}
	}
	assert.Equal(t, 1, live, "exactly one live candidate")

	assert.Equal(t, domain.OutcomeLive, got["www.example.com"].Outcome.Kind)
	assert.Equal(t, "http", got["www.example.com"].Outcome.Scheme)
	assert.Equal(t, domain.OutcomeNotFound, got["www.example.net"].Outcome.Kind)
	assert.Equal(t, domain.OutcomeConnectionFailed, got["mail.example.com"].Outcome.Kind)
	assert.Equal(t, domain.OutcomeConnectionFailed, got["mail.example.net"].Outcome.Kind)

	assert.Equal(t, 0, got["www.example.com"].Index)
	assert.Equal(t, 3, got["mail.example.net"].Index)
	assert.Equal(t, 4, obs.finished(), "observer sees every candidate")
}

func TestProbeEngine_FirstLiveSchemeStops(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{}).
		Set("http://www.example.com", testutil.Reply{Status: 200}).
		Set("https://www.example.com", testutil.Reply{Status: 200})
	obs := newRecordingObserver()
	engine := newTestEngine(t, newFakeProber(transport, time.Second), obs, testRunConfig(10, time.Second))

	gen, err := NewCandidateGenerator(GeneratorOptions{Domain: "example", Labels: words("www"), TLDs: words("com")})
	require.NoError(t, err)

	results := collect(engine.ProbeAll(context.Background(), gen.Indexed()))
	require.Len(t, results, 1)

	assert.Equal(t, domain.OutcomeLive, results[0].Outcome.Kind)
	assert.Len(t, results[0].Attempts, 1)
	assert.Equal(t, 1, transport.Calls("http://www.example.com"))
	assert.Equal(t, 0, transport.Calls("https://www.example.com"), "https must not be tried")
	assert.Len(t, obs.attemptsFor("www.example.com"), 1)
}

func TestProbeEngine_LastSchemeWins(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{}).
		Set("http://www.example.com", testutil.Reply{Status: 404}).
		Set("https://www.example.com", testutil.Reply{Status: 403})
	engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, testRunConfig(10, time.Second))

	gen, err := NewCandidateGenerator(GeneratorOptions{Domain: "example", Labels: words("www"), TLDs: words("com")})
	require.NoError(t, err)

	results := collect(engine.ProbeAll(context.Background(), gen.Indexed()))
	require.Len(t, results, 1)

	assert.Equal(t, domain.OutcomeForbidden, results[0].Outcome.Kind, "https outcome takes precedence")
	require.Len(t, results[0].Attempts, 2)
	assert.Equal(t, domain.OutcomeNotFound, results[0].Attempts[0].Kind)
	assert.Equal(t, domain.OutcomeForbidden, results[0].Attempts[1].Kind)
}

func TestProbeEngine_SchemeOrderIsConfigurable(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{}).
		Set("http://www.example.com", testutil.Reply{Status: 200}).
		Set("https://www.example.com", testutil.Reply{Status: 200})
	cfg := testRunConfig(10, time.Second)
	cfg.Schemes = []string{"https", "http"}
	engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, cfg)

	gen, err := NewCandidateGenerator(GeneratorOptions{Domain: "example", Labels: words("www"), TLDs: words("com")})
	require.NoError(t, err)

	results := collect(engine.ProbeAll(context.Background(), gen.Indexed()))
	require.Len(t, results, 1)
	assert.Equal(t, "https", results[0].Outcome.Scheme)
	assert.Equal(t, 0, transport.Calls("http://www.example.com"))
}

func TestProbeEngine_ConcurrencyBound(t *testing.T) {
	for _, c := range []int{1, 3, 10} {
		t.Run(fmt.Sprintf("limit %d", c), func(t *testing.T) {
			transport := testutil.NewFakeTransport(testutil.Reply{Status: 404, Delay: 5 * time.Millisecond})
			engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, testRunConfig(c, time.Second))

			gen := exampleGenerator(t, numberedLabels(15)...)
			results := collect(engine.ProbeAll(context.Background(), gen.Indexed()))

			assert.Len(t, results, gen.Count())
			assert.LessOrEqual(t, transport.Peak(), int64(c), "in-flight requests above limit")
			assert.LessOrEqual(t, engine.Stats().PeakInFlight, int64(c))
			assert.Equal(t, int64(0), transport.InFlight())
			assert.Equal(t, int64(gen.Count()*2), transport.Total(), "both schemes per candidate")
		})
	}
}

func TestProbeEngine_SaturatesWorkers(t *testing.T) {
	// One slow candidate must not hold back the rest
	transport := testutil.NewFakeTransport(testutil.Reply{Status: 200, Delay: 10 * time.Millisecond}).
		Set("http://host0.example.com", testutil.Reply{Status: 200, Delay: 300 * time.Millisecond})
	engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, testRunConfig(4, time.Second))

	gen := exampleGenerator(t, numberedLabels(10)...)
	start := time.Now()
	var order []domain.Candidate
	for r := range engine.ProbeAll(context.Background(), gen.Indexed()) {
		order = append(order, r.Candidate)
	}

	require.Len(t, order, gen.Count())
	assert.Equal(t, domain.Candidate("host0.example.com"), order[len(order)-1], "slow candidate completes last")
	assert.Less(t, time.Since(start), 600*time.Millisecond)
	assert.Equal(t, int64(4), engine.Stats().PeakInFlight, "all workers busy")
}

func TestProbeEngine_TimeoutsDoNotLeakSlots(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{Block: true})
	engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, testRunConfig(2, 20*time.Millisecond))

	gen := exampleGenerator(t, numberedLabels(4)...)
	results := collect(engine.ProbeAll(context.Background(), gen.Indexed()))

	require.Len(t, results, gen.Count(), "every candidate admitted after timeouts")
	for _, r := range results {
		assert.Equal(t, domain.OutcomeTimedOut, r.Outcome.Kind, r.Candidate.String())
		assert.Len(t, r.Attempts, 2)
	}
	assert.LessOrEqual(t, transport.Peak(), int64(2))
	assert.Equal(t, int64(0), engine.Stats().InFlight)
}

func TestProbeEngine_Idempotent(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{Status: 404}).
		Set("http://www.example.com", testutil.Reply{Status: 200}).
		Set("https://mail.example.net", testutil.Reply{Status: 403}).
		Set("http://api.example.com", testutil.Reply{Status: 500}).
		Set("https://api.example.com", testutil.Reply{Block: true})
	engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, testRunConfig(5, 30*time.Millisecond))
	gen := exampleGenerator(t, "www", "mail", "api", "dev")

	run := func() map[domain.Candidate]domain.OutcomeKind {
		out := make(map[domain.Candidate]domain.OutcomeKind)
		for r := range engine.ProbeAll(context.Background(), gen.Indexed()) {
			out[r.Candidate] = r.Outcome.Kind
		}
		return out
	}

	first := run()
	second := run()
	assert.Len(t, first, gen.Count())
	assert.Equal(t, first, second)
	assert.Equal(t, domain.OutcomeTimedOut, first["api.example.com"])
	assert.Equal(t, domain.OutcomeForbidden, first["mail.example.net"])
}

func TestProbeEngine_CancelStopsAdmission(t *testing.T) {
	transport := testutil.NewFakeTransport(testutil.Reply{Status: 404, Delay: 30 * time.Millisecond})
	engine := newTestEngine(t, newFakeProber(transport, time.Second), nil, testRunConfig(2, time.Second))
	gen := exampleGenerator(t, numberedLabels(20)...)

	ctx, cancel := context.WithCancel(context.Background())
	var results []domain.Result
	for r := range engine.ProbeAll(ctx, gen.Indexed()) {
		results = append(results, r)
		cancel()
	}
	cancel()

	assert.NotEmpty(t, results)
	assert.Less(t, len(results), gen.Count(), "admission should stop")
	for _, r := range results {
		// In-flight probes finish on their own, not as cancellations
		assert.Equal(t, domain.OutcomeNotFound, r.Outcome.Kind, r.Candidate.String())
	}
	assert.Equal(t, int64(0), transport.InFlight())
}

func TestProbeEngine_RecoversProberPanic(t *testing.T) {
	var calls atomic.Int64
	prober := ports.ProberFunc(func(_ context.Context, req ports.ProbeRequest) domain.Outcome {
		calls.Add(1)
		if req.Candidate == "www.example.com" && req.Scheme == "http" {
			panic("prober bug")
		}
		if req.Candidate == "www.example.com" {
			return domain.Live(req.URL(), req.Scheme, 200)
		}
		return domain.NotFound(req.URL(), req.Scheme)
	})
	obs := newRecordingObserver()
	cfg := testRunConfig(1, time.Second)
	cfg.Schemes = []string{"http", "https"}
	engine := newTestEngine(t, prober, obs, cfg)

	results := collect(engine.ProbeAll(context.Background(), exampleGenerator(t, "www", "mail").Indexed()))
	require.Len(t, results, 4, "panicking candidate still yields a result")

	got := byCandidate(results)
	www := got["www.example.com"]
	assert.Equal(t, domain.OutcomeLive, www.Outcome.Kind, "https is tried after the http panic")
	require.Len(t, www.Attempts, 2)
	assert.Equal(t, domain.OutcomeInconclusive, www.Attempts[0].Kind)
	assert.Equal(t, "http", www.Attempts[0].Scheme)
	assert.Contains(t, www.Attempts[0].CauseString(), "prober bug")

	observed := obs.attemptsFor("www.example.com")
	require.Len(t, observed, 2, "panicking attempt is still reported")
	assert.Equal(t, domain.OutcomeInconclusive, observed[0].Kind)

	assert.Equal(t, domain.OutcomeNotFound, got["mail.example.net"].Outcome.Kind)
	assert.Equal(t, int64(8), calls.Load())
	assert.Equal(t, 4, obs.finished())
	assert.Equal(t, int64(0), engine.Stats().InFlight)
}

// panickyObserver falla al cerrar un candidato concreto.
type panickyObserver struct {
	*recordingObserver
	target domain.Candidate
}

func (p panickyObserver) CandidateFinished(res domain.Result) {
	p.recordingObserver.CandidateFinished(res)
	if res.Candidate == p.target {
		panic("observer bug")
	}
}

func TestProbeEngine_ObserverPanicReportedOnce(t *testing.T) {
	prober := ports.ProberFunc(func(_ context.Context, req ports.ProbeRequest) domain.Outcome {
		return domain.NotFound(req.URL(), req.Scheme)
	})
	obs := panickyObserver{recordingObserver: newRecordingObserver(), target: "www.example.com"}
	engine := newTestEngine(t, prober, obs, testRunConfig(2, time.Second))

	results := collect(engine.ProbeAll(context.Background(), exampleGenerator(t, "www", "mail").Indexed()))
	require.Len(t, results, 4)

	got := byCandidate(results)
	assert.Equal(t, domain.OutcomeInconclusive, got["www.example.com"].Outcome.Kind)
	assert.Contains(t, got["www.example.com"].Outcome.CauseString(), "observer bug")
	assert.Equal(t, 4, obs.finished(), "no duplicate CandidateFinished for the panicking candidate")
}
