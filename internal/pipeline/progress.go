package pipeline

import "fmt"

// Event reports that a file finished. Done counts finished files,
// including this one.
type Event struct {
	Path    string
	Status  Status
	Message string
	Done    int
	Total   int
}

// FormatEvent formats an Event as a human-readable status line.
func FormatEvent(ev Event) string {
	prefix := fmt.Sprintf("[%d/%d]", ev.Done, ev.Total)
	switch ev.Status {
	case StatusOK:
		return fmt.Sprintf("  ✓ %s %s", prefix, ev.Path)
	case StatusWarned:
		return fmt.Sprintf("  ! %s %s: %s", prefix, ev.Path, ev.Message)
	case StatusFailed:
		return fmt.Sprintf("  ✗ %s %s failed: %s", prefix, ev.Path, ev.Message)
	case StatusSkipped:
		return fmt.Sprintf("  ○ %s %s skipped: %s", prefix, ev.Path, ev.Message)
	default:
		return fmt.Sprintf("  ? %s %s (unknown status)", prefix, ev.Path)
	}
}
