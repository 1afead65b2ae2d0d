package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dusk-indust/edstrip/internal/pipeline"
	"github.com/dusk-indust/edstrip/internal/strip"
)

// Text writes one line per file that did not pass (every file when
// verbose) followed by a totals line.
func Text(w io.Writer, sum *pipeline.Summary, verbose bool) error {
	for _, f := range sum.Files {
		if !verbose && f.Status == pipeline.StatusOK {
			continue
		}
		if !verbose && f.Status == pipeline.StatusSkipped {
			continue
		}
		if _, err := fmt.Fprintf(w, "  %-8s %s%s\n", "["+string(f.Status)+"]", f.Path, detail(f)); err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "%d/%d files passed (%d warned, %d failed, %d skipped) in %s\n",
		sum.Passed(), sum.Processed(),
		sum.Count(pipeline.StatusWarned), sum.Count(pipeline.StatusFailed), sum.Count(pipeline.StatusSkipped),
		sum.Elapsed.Round(time.Millisecond))
	return err
}

func detail(f pipeline.FileResult) string {
	switch {
	case f.Err != nil:
		return ": " + f.Err.Error()
	case len(f.Diagnostics) > 0:
		msgs := make([]string, len(f.Diagnostics))
		for i, d := range f.Diagnostics {
			msgs[i] = d.String()
		}
		return ": " + strings.Join(msgs, "; ")
	case f.Language != "":
		return fmt.Sprintf(" (%s, %d bytes removed)", f.Language, f.Removed)
	default:
		return ""
	}
}

// Languages writes a table of the supported languages.
func Languages(w io.Writer, defs []*strip.Definition) error {
	if _, err := fmt.Fprintf(w, "%-12s %-22s %s\n", "ID", "NAME", "MATCHES"); err != nil {
		return err
	}
	for _, d := range defs {
		var matches []string
		for _, ext := range d.Extensions {
			matches = append(matches, "*."+ext)
		}
		matches = append(matches, d.Filenames...)
		for _, interp := range d.Interpreters {
			matches = append(matches, "#!"+interp)
		}
		if _, err := fmt.Fprintf(w, "%-12s %-22s %s\n", d.Name, d.Title, strings.Join(matches, " ")); err != nil {
			return err
		}
	}
	return nil
}
