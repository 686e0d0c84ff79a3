// internal/adapters/output/helpers_test.go
package output

import (
	"errors"

	"subprobe/internal/core/domain"
)

// testResults genera resultados en orden de finalización (no de generación).
func testResults() []domain.Result {
	return []domain.Result{
		{
			Index:     3,
			Candidate: "mail.example.net",
			Outcome:   domain.Live("https://mail.example.net", "https", 200),
			Attempts: []domain.Outcome{
				domain.ConnectionFailed("http://mail.example.net", "http", errors.New("connection refused")),
				domain.Live("https://mail.example.net", "https", 200),
			},
		},
		{
			Index:     0,
			Candidate: "www.example.com",
			Outcome:   domain.Live("http://www.example.com", "http", 200),
			Attempts:  []domain.Outcome{domain.Live("http://www.example.com", "http", 200)},
		},
		{
			Index:     1,
			Candidate: "www.example.net",
			Outcome:   domain.Forbidden("https://www.example.net", "https"),
			Attempts: []domain.Outcome{
				domain.NotFound("http://www.example.net", "http"),
				domain.Forbidden("https://www.example.net", "https"),
			},
		},
		{
			Index:     2,
			Candidate: "mail.example.com",
			Outcome:   domain.TimedOut("https://mail.example.com", "https"),
			Attempts: []domain.Outcome{
				domain.TimedOut("http://mail.example.com", "http"),
				domain.TimedOut("https://mail.example.com", "https"),
			},
		},
	}
}

// testSummary construye un resumen a partir de testResults.
func testSummary(results []domain.Result) *domain.ScanSummary {
	s := domain.NewScanSummary("example", domain.ScanModeSubdomains, len(results))
	s.RunID = "0b6f3c1e-run"
	for _, r := range results {
		s.Add(r)
	}
	s.Finish()
	return s
}
