// Package tasks runs long-lived entry operations with real-time progress reporting.
//
// # Core Operations
//
// [Engine] exposes two operations:
//
//  1. [Engine.Watch] : Clipboard capture
//     - Polls the clipboard at a rate-limited interval
//     - Creates an entry for every new non-blank clipboard value
//     - Stops on context cancellation or after a maximum number of captures
//
//  2. [Engine.BulkExport] : Multi-format export
//     - Renders the current entries in several formats concurrently
//     - Writes one file per format plus an export_manifest.json summary
//
// # Progress Reporting
//
// Both operations report through a [ProgressUpdate] channel. Sends use select with default,
// so a slow or absent reader never stalls the operation.
package tasks
