package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/desertthunder/readloop/internal/formatter"
	"github.com/desertthunder/readloop/internal/models"
)

// BulkExportOpts contains configuration for bulk exports.
type BulkExportOpts struct {
	Formats    []string // Formats to render (default: all of [formatter.Formats])
	OutputDir  string   // Output directory (default: readloop_export_{epoch})
	BaseName   string   // File name without extension (default: saved_texts)
	NumWorkers int      // Concurrent workers (default: 4, max: len(Formats))
}

// FormatExportResult is the outcome of exporting one format.
type FormatExportResult struct {
	Format  string
	File    string
	Success bool
	Error   error
}

// BulkExportResult summarizes a bulk export.
type BulkExportResult struct {
	EntryCount        int
	TotalFormats      int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []FormatExportResult
}

// BulkExport renders a snapshot of the store's entries in every requested format using a worker pool,
// then writes export_manifest.json into the output directory.
//
// Per-format failures are recorded in the result; only setup and manifest failures are returned as errors.
func (e *Engine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, opts BulkExportOpts) (*BulkExportResult, error) {
	if len(opts.Formats) == 0 {
		opts.Formats = formatter.Formats
	}
	formats := make([]string, 0, len(opts.Formats))
	for _, f := range opts.Formats {
		format, err := formatter.ParseFormat(f)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(formats, format) {
			formats = append(formats, format)
		}
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("readloop_export_%d", time.Now().Unix())
	}
	if opts.BaseName == "" {
		opts.BaseName = "saved_texts"
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 4
	}
	if opts.NumWorkers > len(formats) {
		opts.NumWorkers = len(formats)
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	entries := e.store.List()
	result := &BulkExportResult{
		EntryCount:      len(entries),
		TotalFormats:    len(formats),
		OutputDirectory: opts.OutputDir,
		Results:         make([]FormatExportResult, 0, len(formats)),
	}

	jobs := make(chan string, len(formats))
	results := make(chan FormatExportResult, len(formats))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, entries, jobs, results, opts)
	}

	for _, f := range formats {
		jobs <- f
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(formats), res.Format, res.File))
		} else {
			result.FailedExports++
			e.logger.Warn("export failed", "format", res.Format, "error", res.Error)
			e.sendProgress(prog, exportFailedUpdate(completed, len(formats), res.Format, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteExportManifest(result.Manifest(), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath

	e.logger.Info("bulk export finished", "dir", opts.OutputDir, "ok", result.SuccessfulExports, "failed", result.FailedExports)
	return result, nil
}

// exportWorker renders formats from the jobs channel until it closes.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	entries []models.Entry,
	jobs <-chan string,
	results chan<- FormatExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for format := range jobs {
		if err := ctx.Err(); err != nil {
			results <- FormatExportResult{Format: format, Error: err}
			continue
		}

		path := filepath.Join(opts.OutputDir, opts.BaseName+"."+formatter.Extension(format))
		file, err := formatter.WriteExport(entries, format, path)
		results <- FormatExportResult{
			Format:  format,
			File:    file,
			Success: err == nil,
			Error:   err,
		}
	}
}

// Manifest converts the result into its on-disk summary.
func (r *BulkExportResult) Manifest() formatter.ExportManifest {
	m := formatter.ExportManifest{
		ExportedAt:        time.Now().UTC(),
		OutputDirectory:   r.OutputDirectory,
		EntryCount:        r.EntryCount,
		TotalFormats:      r.TotalFormats,
		SuccessfulExports: r.SuccessfulExports,
		FailedExports:     r.FailedExports,
		Files:             make([]formatter.ManifestFile, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		f := formatter.ManifestFile{Format: res.Format, File: res.File, Status: "success"}
		if !res.Success {
			f.Status = "failed"
			if res.Error != nil {
				f.Error = res.Error.Error()
			}
		}
		m.Files = append(m.Files, f)
	}
	return m
}
