// internal/adapters/output/streaming_test.go
package output

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"subprobe/internal/core/domain"
	"subprobe/internal/testutil"
)

func TestDiscoveredFilename(t *testing.T) {
	testutil.AssertEqual(t, DiscoveredFilename("example", domain.ScanModeSubdomains), "example_discovered_subdomains.txt", "subdomains mode")
	testutil.AssertEqual(t, DiscoveredFilename("example", domain.ScanModeTLDs), "example_discovered_tlds.txt", "tlds mode")
	testutil.AssertEqual(t, DiscoveredFilename("example", domain.ScanModeAll), "example_discovered_all.txt", "all mode")
}

func TestStreamingWriter_StreamsLiveOnly(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "discovered")
	w := NewStreamingWriter(dir, "example", domain.ScanModeSubdomains, testutil.NewTestLogger())

	for _, r := range testResults() {
		testutil.AssertNoError(t, w.Write(r), "Write should succeed")
	}

	// Antes de Finalize: orden de llegada, solo vivos
	lines := testutil.ReadLines(t, w.Path())
	testutil.AssertEqual(t, lines, []string{"mail.example.net", "www.example.com"}, "streamed hosts")
}

func TestStreamingWriter_FinalizeRewritesInGenerationOrder(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "discovered")
	w := NewStreamingWriter(dir, "example", domain.ScanModeSubdomains, testutil.NewTestLogger())

	results := testResults()
	for _, r := range results {
		testutil.AssertNoError(t, w.Write(r), "Write should succeed")
	}

	summary := testSummary(results)
	testutil.AssertNoError(t, w.Finalize(summary), "Finalize should succeed")

	testutil.AssertEqual(t, summary.OutputPath, filepath.Join(dir, "example_discovered_subdomains.txt"), "output path")
	lines := testutil.ReadLines(t, summary.OutputPath)
	testutil.AssertEqual(t, lines, []string{"www.example.com", "mail.example.net"}, "hosts in generation order")

	_, err := os.Stat(summary.OutputPath + ".tmp")
	testutil.AssertTrue(t, os.IsNotExist(err), "temporary file should be gone")
}

func TestStreamingWriter_NoLiveHosts(t *testing.T) {
	dir := t.TempDir()
	w := NewStreamingWriter(dir, "example", domain.ScanModeTLDs, testutil.NewTestLogger())

	summary := domain.NewScanSummary("example", domain.ScanModeTLDs, 0)
	summary.Finish()
	testutil.AssertNoError(t, w.Finalize(summary), "Finalize should succeed")

	data, err := os.ReadFile(filepath.Join(dir, "example_discovered_tlds.txt"))
	testutil.AssertNoError(t, err, "file should exist even without live hosts")
	testutil.AssertLen(t, data, 0, "file should be empty")
}

func TestStreamingWriter_InvalidDirectory(t *testing.T) {
	blocker := testutil.WriteFile(t, "file.txt", "test")
	w := NewStreamingWriter(filepath.Join(blocker, "sub"), "example", domain.ScanModeAll, testutil.NewTestLogger())

	err := w.Write(testResults()[0])
	testutil.AssertError(t, err, "Write should fail when directory cannot be created")
	testutil.AssertTrue(t, errors.Is(err, domain.ErrExportFailed), "error should wrap ErrExportFailed")

	err = w.Finalize(testSummary(testResults()))
	testutil.AssertTrue(t, errors.Is(err, domain.ErrExportFailed), "Finalize should wrap ErrExportFailed")
}

func TestStreamingWriter_Name(t *testing.T) {
	w := NewStreamingWriter("", "example", domain.ScanModeAll, nil)
	testutil.AssertEqual(t, w.Name(), "discovered-file", "sink name")
	testutil.AssertEqual(t, w.Path(), "example_discovered_all.txt", "default dir is cwd")
}
