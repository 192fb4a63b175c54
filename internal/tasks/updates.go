package tasks

import (
	"fmt"
	"strings"

	"github.com/desertthunder/readloop/internal/formatter"
	"github.com/desertthunder/readloop/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase, 0 when open-ended
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data, e.g. the captured [models.Entry]
}

// Operation phase enumeration
type Phase int

const (
	WatchStarted Phase = iota
	CaptureEntry
	SkipBlank
	ReadClipboard
	ExportFormat
)

func (p Phase) String() string {
	switch p {
	case WatchStarted:
		return "watch_started"
	case CaptureEntry:
		return "capture_entry"
	case SkipBlank:
		return "skip_blank"
	case ReadClipboard:
		return "read_clipboard"
	case ExportFormat:
		return "export_format"
	default:
		return ""
	}
}

func watchStartedUpdate(limit float64, max int) ProgressUpdate {
	msg := fmt.Sprintf("Watching clipboard (%.1f checks/s)...", limit)
	if max > 0 {
		msg = fmt.Sprintf("Watching clipboard (%.1f checks/s, stopping after %d)...", limit, max)
	}
	return ProgressUpdate{
		Phase:   WatchStarted,
		Total:   max,
		Message: msg,
	}
}

func captureUpdate(step, total int, e models.Entry) ProgressUpdate {
	title := strings.TrimSpace(e.Title())
	if len([]rune(title)) > 60 {
		title = string([]rune(title)[:57]) + "..."
	}
	return ProgressUpdate{
		Phase:   CaptureEntry,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✓ Captured %s: %s", formatter.ShortID(e.ID), title),
		Data:    e,
	}
}

func skipBlankUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SkipBlank,
		Step:    step,
		Total:   total,
		Message: "Skipped blank clipboard",
	}
}

func readFailedUpdate(step, total int, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadClipboard,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("✗ Clipboard read failed: %v", err),
	}
}

func exportCompletedUpdate(step, total int, format, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFormat,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, format, file),
	}
}

func exportFailedUpdate(step, total int, format string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportFormat,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, format, err),
	}
}
