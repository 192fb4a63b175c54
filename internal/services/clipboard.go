package services

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/shared"
)

// SystemClipboard is the platform clipboard.
type SystemClipboard struct{}

// ReadAll returns the current clipboard text.
func (SystemClipboard) ReadAll() (string, error) {
	if clipboard.Unsupported {
		return "", shared.ErrClipboardUnavailable
	}
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrClipboardUnavailable, err)
	}
	return text, nil
}

// WriteAll replaces the clipboard text.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return shared.ErrClipboardUnavailable
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %w", shared.ErrClipboardUnavailable, err)
	}
	return nil
}

// CopyEntry writes the entry's full text, not its preview, to cb.
func CopyEntry(cb Clipboard, entry models.Entry) error {
	if err := cb.WriteAll(entry.Text); err != nil {
		return fmt.Errorf("failed to copy entry %s: %w", entry.ID, err)
	}
	return nil
}

// Paste returns the clipboard text to be used as input.
func Paste(cb Clipboard) (string, error) {
	text, err := cb.ReadAll()
	if err != nil {
		return "", fmt.Errorf("failed to read clipboard: %w", err)
	}
	return text, nil
}
