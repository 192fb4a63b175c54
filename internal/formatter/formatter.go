// package formatter renders saved entries as plain text, Markdown, CSV or JSON
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/shared"
)

// Export formats
const (
	FormatText     = "text"
	FormatMarkdown = "markdown"
	FormatCSV      = "csv"
	FormatJSON     = "json"
)

// DateLayout is the medium date style used wherever an entry's creation date is shown.
const DateLayout = "Jan 2, 2006"

// Formats lists the supported export formats in display order.
var Formats = []string{FormatText, FormatMarkdown, FormatCSV, FormatJSON}

// ParseFormat normalizes a format name, accepting "txt" and "md" as aliases.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", FormatText, "txt":
		return FormatText, nil
	case FormatMarkdown, "md":
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want one of %s)", shared.ErrInvalidFlag, name, strings.Join(Formats, ", "))
	}
}

// Extension returns the file extension, without the dot, for format.
func Extension(format string) string {
	switch format {
	case FormatMarkdown:
		return "md"
	case FormatCSV:
		return "csv"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}

// FormatDate renders t in [DateLayout] using the local time zone.
func FormatDate(t time.Time) string {
	return t.Local().Format(DateLayout)
}

// ShortID returns the first eight characters of id.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// ExportToText renders entries as numbered blocks, each a header line followed by the indented full text.
func ExportToText(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Saved Texts: %d\n", len(entries)))

	for i, e := range entries {
		buf.WriteString(fmt.Sprintf("\n%d. %s (%s)\n", i+1, FormatDate(e.DateCreated), ShortID(e.ID)))
		for _, line := range strings.Split(e.Text, "\n") {
			buf.WriteString("   " + line + "\n")
		}
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown renders entries as a Markdown document with one section per entry
func ExportToMarkdown(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Saved Texts\n\n")
	buf.WriteString(fmt.Sprintf("**Entries**: %d\n", len(entries)))

	for i, e := range entries {
		buf.WriteString(fmt.Sprintf("\n## %d. %s\n\n", i+1, markdownTitle(e)))
		buf.WriteString(fmt.Sprintf("*%s* · `%s`\n\n", FormatDate(e.DateCreated), e.ID))
		for _, line := range strings.Split(e.Text, "\n") {
			if line == "" {
				buf.WriteString(">\n")
				continue
			}
			buf.WriteString("> " + line + "\n")
		}
	}

	return buf.Bytes(), nil
}

func markdownTitle(e models.Entry) string {
	title := strings.TrimSpace(e.Title())
	if title == "" {
		return "(untitled)"
	}
	return strings.NewReplacer("#", `\#`, "*", `\*`, "_", `\_`, "`", "\\`").Replace(title)
}

// ExportToCSV converts entries to CSV format with columns: ID, Created, Preview, Text
func ExportToCSV(entries []models.Entry) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Created", "Preview", "Text"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range entries {
		record := []string{
			e.ID,
			e.DateCreated.Format(time.RFC3339),
			e.PreviewText,
			e.Text,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders entries as an indented JSON array in the persisted layout.
func ExportToJSON(entries []models.Entry) ([]byte, error) {
	if entries == nil {
		entries = []models.Entry{}
	}
	data, err := shared.MarshalJSON(entries, true)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrEncodeEntries, err)
	}
	return append(data, '\n'), nil
}

// Export renders entries in format, which must be one of [Formats].
func Export(entries []models.Entry, format string) ([]byte, error) {
	switch format {
	case FormatText:
		return ExportToText(entries)
	case FormatMarkdown:
		return ExportToMarkdown(entries)
	case FormatCSV:
		return ExportToCSV(entries)
	case FormatJSON:
		return ExportToJSON(entries)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport renders entries in format and writes them to path, creating parent directories.
//
// Returns the path written.
func WriteExport(entries []models.Entry, format, path string) (string, error) {
	data, err := Export(entries, format)
	if err != nil {
		return "", err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s export: %w", format, err)
	}

	return path, nil
}

// ManifestFile describes one file produced by a bulk export.
type ManifestFile struct {
	Format string `json:"format"`
	File   string `json:"file,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// ExportManifest summarizes a bulk export.
type ExportManifest struct {
	ExportedAt        time.Time      `json:"exported_at"`
	OutputDirectory   string         `json:"output_directory"`
	EntryCount        int            `json:"entry_count"`
	TotalFormats      int            `json:"total_formats"`
	SuccessfulExports int            `json:"successful_exports"`
	FailedExports     int            `json:"failed_exports"`
	Files             []ManifestFile `json:"files"`
}

// WriteExportManifest writes manifest as indented JSON to path.
func WriteExportManifest(manifest ExportManifest, path string) error {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}
