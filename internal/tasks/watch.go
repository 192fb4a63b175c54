package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultWatchRate is the clipboard poll rate used when [WatchOpts.RateLimit] is unset.
const DefaultWatchRate = 2.0

// WatchOpts contains configuration for [Engine.Watch].
type WatchOpts struct {
	RateLimit      float64 // Clipboard reads per second (default: 2)
	MaxCaptures    int     // Stop after this many entries, 0 for no limit
	IncludeCurrent bool    // Capture the clipboard's value at start instead of treating it as already seen
}

// WatchResult summarizes a finished watch.
type WatchResult struct {
	Captured   []models.Entry // Entries created, in order
	Skipped    int            // Changes to blank text
	Polls      int            // Clipboard reads performed
	ReadErrors int            // Failed reads
	Duration   time.Duration
}

// Watch polls the clipboard and creates an entry each time its value changes to non-blank text.
//
// It returns when ctx is done or MaxCaptures is reached; cancellation is a normal stop and yields a nil error.
// An error is returned only when the clipboard cannot be read at start.
func (e *Engine) Watch(ctx context.Context, progress chan<- ProgressUpdate, opts WatchOpts) (*WatchResult, error) {
	if e.clipboard == nil {
		return nil, fmt.Errorf("%w: no clipboard configured", shared.ErrClipboardUnavailable)
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = DefaultWatchRate
	}
	if opts.MaxCaptures < 0 {
		opts.MaxCaptures = 0
	}

	start := time.Now()
	result := &WatchResult{Captured: []models.Entry{}}

	var (
		last string
		seen bool
	)
	if !opts.IncludeCurrent {
		current, err := e.clipboard.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("failed to read clipboard: %w", err)
		}
		result.Polls++
		last, seen = current, true
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	e.logger.Info("watch started", "rate", opts.RateLimit, "max", opts.MaxCaptures)
	e.sendProgress(progress, watchStartedUpdate(opts.RateLimit, opts.MaxCaptures))

	for {
		// Wait also fails early when the deadline would pass before the next token.
		if err := limiter.Wait(ctx); err != nil {
			break
		}

		text, err := e.clipboard.ReadAll()
		result.Polls++
		if err != nil {
			result.ReadErrors++
			e.logger.Warn("clipboard read failed", "error", err)
			e.sendProgress(progress, readFailedUpdate(len(result.Captured), opts.MaxCaptures, err))
			continue
		}

		if seen && text == last {
			continue
		}
		last, seen = text, true

		entry, ok := e.store.Create(ctx, text)
		if !ok {
			result.Skipped++
			e.sendProgress(progress, skipBlankUpdate(len(result.Captured), opts.MaxCaptures))
			continue
		}

		result.Captured = append(result.Captured, entry)
		e.sendProgress(progress, captureUpdate(len(result.Captured), opts.MaxCaptures, entry))

		if opts.MaxCaptures > 0 && len(result.Captured) >= opts.MaxCaptures {
			break
		}
	}

	result.Duration = time.Since(start)
	e.logger.Info("watch stopped", "captured", len(result.Captured), "polls", result.Polls, "read_errors", result.ReadErrors)
	return result, nil
}
