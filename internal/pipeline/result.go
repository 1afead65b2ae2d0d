package pipeline

import (
	"time"

	"github.com/dusk-indust/edstrip/internal/strip"
)

// Status is the outcome of one file.
type Status string

const (
	// StatusOK: stripped cleanly.
	StatusOK Status = "ok"
	// StatusWarned: stripped, but the parse reported errors.
	StatusWarned Status = "warned"
	// StatusFailed: left untouched because of an error.
	StatusFailed Status = "failed"
	// StatusSkipped: not processed (no language, or the run was cancelled).
	StatusSkipped Status = "skipped"
)

// maxExitCode keeps exit codes clear of the values shells reserve.
const maxExitCode = 125

// FileResult records what happened to one file.
type FileResult struct {
	Path        string
	Rel         string
	Language    strip.Language
	Status      Status
	Ranges      int
	Removed     int
	Diagnostics []strip.Diagnostic
	Err         error
	Elapsed     time.Duration

	// Output holds the stripped bytes when the run writes neither to an
	// output directory nor in place.
	Output []byte
}

// Summary aggregates a run.
type Summary struct {
	Files   []FileResult
	Elapsed time.Duration
}

// Count returns the number of files with status st.
func (s *Summary) Count(st Status) int {
	n := 0
	for _, f := range s.Files {
		if f.Status == st {
			n++
		}
	}
	return n
}

// Processed returns the number of files that were not skipped.
func (s *Summary) Processed() int {
	return len(s.Files) - s.Count(StatusSkipped)
}

// Passed returns the number of files stripped without warnings.
func (s *Summary) Passed() int {
	return s.Count(StatusOK)
}

// ExitCode is the number of failed or warned files, capped at 125.
func (s *Summary) ExitCode() int {
	return min(s.Processed()-s.Passed(), maxExitCode)
}
