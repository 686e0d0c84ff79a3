// internal/adapters/output/table_test.go
package output

import (
	"bytes"
	"strings"
	"testing"

	"subprobe/internal/core/domain"
)

func TestOutputTable(t *testing.T) {
	summary := testSummary(testResults())
	summary.OutputPath = "discovered/example_discovered_subdomains.txt"

	var buf bytes.Buffer
	if err := OutputTable(&buf, summary); err != nil {
		t.Fatalf("OutputTable() failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"subprobe Scan Results",
		"example",
		"subdomains",
		"0b6f3c1e-run",
		"HOST", "URL", "STATUS",
		"http://www.example.com",
		"https://mail.example.net",
		"OUTCOME",
		"timed_out",
		"example_discovered_subdomains.txt",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output should contain %q", want)
		}
	}

	// Generation order
	if strings.Index(output, "www.example.com") > strings.Index(output, "mail.example.net") {
		t.Error("live hosts should be listed in generation order")
	}
	if strings.Contains(output, "canceled") {
		t.Error("completed scan should not be marked canceled")
	}
}

func TestOutputTable_NoLiveHosts(t *testing.T) {
	summary := domain.NewScanSummary("example", domain.ScanModeTLDs, 10)
	summary.Canceled = true
	summary.Finish()

	var buf bytes.Buffer
	if err := OutputTable(&buf, summary); err != nil {
		t.Fatalf("OutputTable() failed: %v", err)
	}
	output := buf.String()

	if !strings.Contains(output, "No live hosts discovered.") {
		t.Error("output should report no live hosts")
	}
	if !strings.Contains(output, "canceled") {
		t.Error("output should mark canceled scans")
	}
}

func TestOutputTable_NilSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := OutputTable(&buf, nil); err != nil {
		t.Errorf("nil summary should be a no-op, got %v", err)
	}
	if buf.Len() != 0 {
		t.Error("nil summary should write nothing")
	}
}
