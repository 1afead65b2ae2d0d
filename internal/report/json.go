// Package report renders run summaries and language tables.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/dusk-indust/edstrip/internal/pipeline"
)

// SummaryExport is the top-level JSON report structure.
type SummaryExport struct {
	GeneratedAt string       `json:"generatedAt"`
	ElapsedMS   int64        `json:"elapsedMs"`
	Totals      Totals       `json:"totals"`
	ExitCode    int          `json:"exitCode"`
	Files       []FileExport `json:"files"`
}

// Totals counts files per status.
type Totals struct {
	Files   int `json:"files"`
	OK      int `json:"ok"`
	Warned  int `json:"warned"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// FileExport describes a single file of the run.
type FileExport struct {
	Path     string   `json:"path"`
	Language string   `json:"language,omitempty"`
	Status   string   `json:"status"`
	Ranges   int      `json:"ranges"`
	Removed  int      `json:"removedBytes"`
	Warnings []string `json:"warnings,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// Export builds a SummaryExport from a run summary.
func Export(sum *pipeline.Summary) *SummaryExport {
	out := &SummaryExport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ElapsedMS:   sum.Elapsed.Milliseconds(),
		Totals: Totals{
			Files:   len(sum.Files),
			OK:      sum.Count(pipeline.StatusOK),
			Warned:  sum.Count(pipeline.StatusWarned),
			Failed:  sum.Count(pipeline.StatusFailed),
			Skipped: sum.Count(pipeline.StatusSkipped),
		},
		ExitCode: sum.ExitCode(),
		Files:    make([]FileExport, 0, len(sum.Files)),
	}

	for _, f := range sum.Files {
		fe := FileExport{
			Path:     f.Path,
			Language: string(f.Language),
			Status:   string(f.Status),
			Ranges:   f.Ranges,
			Removed:  f.Removed,
		}
		for _, d := range f.Diagnostics {
			fe.Warnings = append(fe.Warnings, d.String())
		}
		if f.Err != nil {
			fe.Error = f.Err.Error()
		}
		out.Files = append(out.Files, fe)
	}
	return out
}

// JSON writes the summary as indented JSON.
func JSON(w io.Writer, sum *pipeline.Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Export(sum))
}
