// internal/adapters/output/table.go
package output

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"subprobe/internal/core/domain"
)

// OutputTable imprime un resumen tabular legible (modo quiet o salida no TTY).
func OutputTable(out io.Writer, summary *domain.ScanSummary) error {
	if summary == nil {
		return nil
	}

	w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)

	// Header con información del scan
	fmt.Fprintf(w, "\n=== subprobe Scan Results ===\n")
	fmt.Fprintf(w, "Domain:\t%s\n", summary.Domain)
	fmt.Fprintf(w, "Mode:\t%s\n", summary.Mode)
	fmt.Fprintf(w, "Run ID:\t%s\n", summary.RunID)
	fmt.Fprintf(w, "Duration:\t%s\n", summary.Elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "Candidates:\t%d\n", summary.Candidates)
	fmt.Fprintf(w, "Probed:\t%d\n", summary.Probed)
	if summary.Canceled {
		fmt.Fprintf(w, "Status:\tcanceled\n")
	}
	fmt.Fprintln(w)

	// Tabla de hosts vivos
	if summary.Found() > 0 {
		fmt.Fprintln(w, "HOST\tURL\tSTATUS")
		fmt.Fprintln(w, "----\t---\t------")
		for _, r := range summary.Live {
			fmt.Fprintf(w, "%s\t%s\t%d\n", r.Candidate, r.Outcome.URL, r.Outcome.StatusCode)
		}
	} else {
		fmt.Fprintln(w, "No live hosts discovered.")
	}
	fmt.Fprintln(w)

	// Conteo por tipo de resultado
	fmt.Fprintln(w, "OUTCOME\tCOUNT")
	fmt.Fprintln(w, "-------\t-----")
	for _, k := range domain.OutcomeKinds {
		fmt.Fprintf(w, "%s\t%d\n", k, summary.ByKind[k])
	}

	if summary.OutputPath != "" {
		fmt.Fprintf(w, "\nResults saved to:\t%s\n", summary.OutputPath)
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to flush table: %w", err)
	}
	return nil
}
