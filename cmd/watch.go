package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/desertthunder/readloop/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Watch saves every new clipboard value as an entry until interrupted or --max captures are made.
func (r *Runner) Watch(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}

	opts := tasks.WatchOpts{
		RateLimit:      r.config.Watch.Rate,
		MaxCaptures:    r.config.Watch.MaxCaptures,
		IncludeCurrent: cmd.Bool("include-current"),
	}
	if cmd.IsSet("rate") {
		opts.RateLimit = cmd.Float("rate")
	}
	if n := cmd.Int("max"); n >= 0 {
		opts.MaxCaptures = n
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine := tasks.NewEngine(store, r.clipboard, r.logger)
	progress := make(chan tasks.ProgressUpdate, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			if update.Phase == tasks.SkipBlank {
				continue
			}
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.Watch(ctx, progress, opts)
	close(progress)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	r.warnUnsaved()

	return r.writePlainln("Captured %d %s in %s", len(result.Captured), plural(len(result.Captured), "entry", "entries"), result.Duration.Round(time.Millisecond))
}
