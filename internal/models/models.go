// package models defines the data model for the note-capture utility
package models

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/desertthunder/readloop/internal/shared"
)

// PreviewLines is the number of leading lines kept in [Entry.PreviewText].
const PreviewLines = 3

// Entry is one saved block of text.
type Entry struct {
	ID          string    `json:"id"`
	Text        string    `json:"text"`
	PreviewText string    `json:"previewText"`
	DateCreated time.Time `json:"dateCreated"`
}

// NewEntry builds an entry for text created at now.
//
// Invalid UTF-8 sequences are replaced with U+FFFD so the entry matches what the JSON codec stores.
func NewEntry(text string, now time.Time) Entry {
	text = strings.ToValidUTF8(text, "\uFFFD")
	return Entry{
		ID:          shared.GenerateID(),
		Text:        text,
		PreviewText: Preview(text),
		DateCreated: now,
	}
}

// Preview returns the first [PreviewLines] lines of text joined by "\n".
//
// "\r\n" counts as a single line break; so do lone "\r", "\v", "\f", U+0085, U+2028 and U+2029.
// Unlike a split on every newline character, "a\r\nb" yields ["a" "b"], not ["a" "" "b"].
func Preview(text string) string {
	return strings.Join(firstLines(text, PreviewLines), "\n")
}

func firstLines(text string, n int) []string {
	lines := make([]string, 0, n)
	start := 0
	for i := 0; i < len(text) && len(lines) < n; {
		r, size := decodeBreak(text[i:])
		if size == 0 {
			i++
			continue
		}
		lines = append(lines, text[start:i])
		if r == '\r' && strings.HasPrefix(text[i+size:], "\n") {
			size++
		}
		i += size
		start = i
	}
	if len(lines) < n {
		lines = append(lines, text[start:])
	}
	return lines
}

// decodeBreak reports the line-break rune at the start of s and its byte width, or a zero width if there is none.
func decodeBreak(s string) (rune, int) {
	switch s[0] {
	case '\n', '\r', '\v', '\f':
		return rune(s[0]), 1
	}
	for _, br := range []string{"\u0085", "\u2028", "\u2029"} {
		if strings.HasPrefix(s, br) {
			return []rune(br)[0], len(br)
		}
	}
	return 0, 0
}

// IsBlank reports whether text is empty or whitespace only, which is never saved.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Validate checks that e could have been produced by [NewEntry].
func (e Entry) Validate() error {
	if !shared.IsValidID(e.ID) {
		return fmt.Errorf("%w: id %q is not a uuid", shared.ErrInvalidEntry, e.ID)
	}
	if IsBlank(e.Text) {
		return fmt.Errorf("%w: entry %s has no text", shared.ErrInvalidEntry, e.ID)
	}
	if !utf8.ValidString(e.Text) {
		return fmt.Errorf("%w: entry %s text is not valid utf-8", shared.ErrInvalidEntry, e.ID)
	}
	if e.PreviewText != Preview(e.Text) {
		return fmt.Errorf("%w: entry %s preview does not match text", shared.ErrInvalidEntry, e.ID)
	}
	if e.DateCreated.IsZero() {
		return fmt.Errorf("%w: entry %s has no creation date", shared.ErrInvalidEntry, e.ID)
	}
	return nil
}

// ValidateEntries validates every entry and rejects duplicate IDs.
func ValidateEntries(entries []Entry) error {
	seen := make(map[string]struct{}, len(entries))
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		if _, dup := seen[e.ID]; dup {
			return fmt.Errorf("%w: duplicate id %s", shared.ErrInvalidEntry, e.ID)
		}
		seen[e.ID] = struct{}{}
	}
	return nil
}

// Title returns the first preview line, used as a one-line heading in lists.
func (e Entry) Title() string {
	title, _, _ := strings.Cut(e.PreviewText, "\n")
	return title
}
