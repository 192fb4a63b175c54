package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/readloop/internal/formatter"
	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/services"
	"github.com/desertthunder/readloop/internal/shared"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"
)

var (
	indexStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
	metaStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262")).Italic(true)
)

// Add saves a new entry from the arguments, the clipboard (--paste) or stdin.
//
// Blank input is not an error: nothing is saved and a warning is logged.
func (r *Runner) Add(ctx context.Context, cmd *cli.Command) error {
	text, err := r.readInput(cmd)
	if err != nil {
		return err
	}

	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}

	entry, ok := store.Create(ctx, text)
	if !ok {
		r.logger.Warn("nothing to save, input is empty")
		return nil
	}
	r.warnUnsaved()

	if cmd.Bool("json") {
		return r.writeJSON(entry, true)
	}
	return r.writePlain("✓ Saved %s (%d entries)\n", formatter.ShortID(entry.ID), store.Len())
}

func (r *Runner) readInput(cmd *cli.Command) (string, error) {
	if cmd.Bool("paste") {
		if cmd.Args().Len() > 0 {
			return "", fmt.Errorf("%w: --paste cannot be combined with TEXT", shared.ErrInvalidArgument)
		}
		return services.Paste(r.clipboard)
	}

	if cmd.Args().Len() > 0 {
		return strings.Join(cmd.Args().Slice(), " "), nil
	}

	if f, ok := r.input.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return "", fmt.Errorf("%w: provide TEXT, --paste, or pipe text on stdin", shared.ErrMissingArgument)
	}

	data, err := io.ReadAll(r.input)
	if err != nil {
		return "", fmt.Errorf("%w: failed to read stdin: %w", shared.ErrInvalidInput, err)
	}

	// Drop the newline that echo and heredocs append.
	text := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(text, "\r"), nil
}

// List prints the saved entries in the requested format.
func (r *Runner) List(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}
	entries := store.List()

	if format != formatter.FormatText {
		data, err := formatter.Export(entries, format)
		if err != nil {
			return err
		}
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	return r.writeEntryList(entries)
}

func (r *Runner) writeEntryList(entries []models.Entry) error {
	if len(entries) == 0 {
		return r.writePlain("%s\n", emptyStyle.Render("No saved texts yet. Add one with 'readloop add'."))
	}

	width := len(fmt.Sprint(len(entries)))
	for i, e := range entries {
		header := fmt.Sprintf("%s  %s",
			indexStyle.Render(fmt.Sprintf("%*d", width, i+1)),
			metaStyle.Render(fmt.Sprintf("%s • %s", formatter.FormatDate(e.DateCreated), formatter.ShortID(e.ID))),
		)
		if err := r.writePlain("%s\n", header); err != nil {
			return err
		}

		indent := strings.Repeat(" ", width+2)
		for _, line := range strings.Split(e.PreviewText, "\n") {
			if err := r.writePlain("%s%s\n", indent, line); err != nil {
				return err
			}
		}
	}
	return nil
}

// Show prints an entry's full text.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	entry, err := r.resolve(ctx, cmd.StringArg("ref"))
	if err != nil {
		return err
	}

	if strings.HasSuffix(entry.Text, "\n") {
		return r.writePlain("%s", entry.Text)
	}
	return r.writePlain("%s\n", entry.Text)
}

// Copy writes an entry's full text to the clipboard.
func (r *Runner) Copy(ctx context.Context, cmd *cli.Command) error {
	entry, err := r.resolve(ctx, cmd.StringArg("ref"))
	if err != nil {
		return err
	}

	if err := services.CopyEntry(r.clipboard, entry); err != nil {
		return err
	}

	r.logger.Debug("entry copied", "id", entry.ID)
	return r.writePlain("✓ Copied %s to clipboard\n", formatter.ShortID(entry.ID))
}

func (r *Runner) resolve(ctx context.Context, ref string) (models.Entry, error) {
	store, err := r.openStore(ctx)
	if err != nil {
		return models.Entry{}, err
	}

	entry, _, err := store.Resolve(ref)
	return entry, err
}

// Delete removes every referenced entry in one batch.
//
// All references are resolved against the current order before anything is removed;
// one bad reference aborts the whole delete.
func (r *Runner) Delete(ctx context.Context, cmd *cli.Command) error {
	refs := cmd.Args().Slice()
	if len(refs) == 0 {
		return fmt.Errorf("%w: at least one entry reference is required", shared.ErrMissingArgument)
	}

	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}

	positions := make([]int, 0, len(refs))
	seen := map[int]bool{}
	for _, ref := range refs {
		_, pos, err := store.Resolve(ref)
		if err != nil {
			return err
		}
		if !seen[pos] {
			seen[pos] = true
			positions = append(positions, pos)
		}
	}

	store.DeleteAtPositions(ctx, positions)
	r.warnUnsaved()

	return r.writePlain("✓ Deleted %d %s (%d remaining)\n", len(positions), plural(len(positions), "entry", "entries"), store.Len())
}

// Clear removes every entry after confirmation.
func (r *Runner) Clear(ctx context.Context, cmd *cli.Command) error {
	store, err := r.openStore(ctx)
	if err != nil {
		return err
	}

	n := store.Len()
	if n == 0 {
		return r.writePlain("Nothing to clear\n")
	}

	if !cmd.Bool("yes") {
		if err := r.writePlain("Delete all %d %s? [y/N] ", n, plural(n, "entry", "entries")); err != nil {
			return err
		}
		answer, _ := bufio.NewReader(r.input).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			return r.writePlain("Aborted\n")
		}
	}

	store.Clear(ctx)
	r.warnUnsaved()

	return r.writePlain("✓ Cleared %d %s\n", n, plural(n, "entry", "entries"))
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
