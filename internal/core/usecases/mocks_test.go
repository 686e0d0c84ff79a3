// internal/core/usecases/mocks_test.go
package usecases

import (
	"errors"
	"sync"
	"time"

	"subprobe/internal/core/domain"
	"subprobe/internal/core/ports"
	"subprobe/internal/platform/httpclient"
	"subprobe/internal/testutil"
)

// recordingObserver guarda los eventos del motor para los tests.
type recordingObserver struct {
	mu         sync.Mutex
	attempts   map[domain.Candidate][]domain.Outcome
	candidates []domain.Result
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{attempts: make(map[domain.Candidate][]domain.Outcome)}
}

func (r *recordingObserver) AttemptFinished(c domain.Candidate, o domain.Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempts[c] = append(r.attempts[c], o)
}

func (r *recordingObserver) CandidateFinished(res domain.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.candidates = append(r.candidates, res)
}

func (r *recordingObserver) attemptsFor(c domain.Candidate) []domain.Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.Outcome(nil), r.attempts[c]...)
}

func (r *recordingObserver) finished() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.candidates)
}

// mockSink es un ports.ResultSink en memoria.
type mockSink struct {
	name      string
	written   []domain.Result
	finalized *domain.ScanSummary
	writeErr  error
	failAfter int
}

var _ ports.ResultSink = (*mockSink)(nil)

func newMockSink(name string) *mockSink {
	return &mockSink{name: name, failAfter: -1}
}

func (m *mockSink) Name() string { return m.name }

func (m *mockSink) Write(r domain.Result) error {
	if m.failAfter >= 0 && len(m.written) >= m.failAfter {
		if m.writeErr == nil {
			m.writeErr = errors.New("disk full")
		}
		return m.writeErr
	}
	m.written = append(m.written, r)
	return nil
}

func (m *mockSink) Finalize(s *domain.ScanSummary) error {
	m.finalized = s
	return nil
}

// newFakeProber construye el prober HTTP real sobre un transporte falso.
func newFakeProber(transport *testutil.FakeTransport, timeout time.Duration) *httpclient.Client {
	client, err := httpclient.New(httpclient.Config{
		Timeout:   timeout,
		Transport: transport,
	}, testutil.NewTestLogger())
	if err != nil {
		panic(err)
	}
	return client
}

func testRunConfig(concurrency int, timeout time.Duration) domain.RunConfig {
	cfg := domain.DefaultRunConfig()
	cfg.Concurrency = concurrency
	cfg.RequestTimeout = timeout
	return cfg
}

func collect(ch <-chan domain.Result) []domain.Result {
	var out []domain.Result
	for r := range ch {
		out = append(out, r)
	}
	return out
}

func byCandidate(results []domain.Result) map[domain.Candidate]domain.Result {
	m := make(map[domain.Candidate]domain.Result, len(results))
	for _, r := range results {
		m[r.Candidate] = r
	}
	return m
}
