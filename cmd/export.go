package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/readloop/internal/formatter"
	"github.com/desertthunder/readloop/internal/tasks"
	"github.com/urfave/cli/v3"
)

// Export renders entries in one format to a file or stdout, or in every format with --all.
func (r *Runner) Export(ctx context.Context, cmd *cli.Command) error {
	if cmd.Bool("all") {
		return r.exportAll(ctx, cmd)
	}

	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	entries := store.List()

	output := cmd.String("output")
	if output == "" {
		data, err := formatter.Export(entries, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	path, err := formatter.WriteExport(entries, format, output)
	if err != nil {
		return err
	}

	r.logger.Info("export written", "format", format, "path", path, "entries", len(entries))
	return r.writePlain("✓ Exported %d %s to %s\n", len(entries), plural(len(entries), "entry", "entries"), path)
}

func (r *Runner) exportAll(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}

	engine := tasks.NewEngine(store, nil, r.logger)
	progress := make(chan tasks.ProgressUpdate, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := engine.BulkExport(ctx, progress, tasks.BulkExportOpts{
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
	})
	close(progress)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("bulk export failed: %w", err)
	}

	r.writePlainln("Exported %d entries: %d/%d formats succeeded", result.EntryCount, result.SuccessfulExports, result.TotalFormats)
	return r.writePlain("Manifest: %s\n", result.ManifestPath)
}
