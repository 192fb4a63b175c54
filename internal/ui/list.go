package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/readloop/internal/formatter"
	"github.com/desertthunder/readloop/internal/models"
)

var (
	_ list.Item = entryItem{}
)

// entryItem wraps [models.Entry] to implement [list.Item].
type entryItem struct {
	entry  models.Entry
	marked bool
}

func (i entryItem) FilterValue() string { return i.entry.PreviewText }

// Title renders the preview on one row, with line breaks shown as ⏎.
func (i entryItem) Title() string {
	title := strings.ReplaceAll(i.entry.PreviewText, "\n", " ⏎ ")
	if i.marked {
		return styles.mark.Render("● ") + title
	}
	return title
}

func (i entryItem) Description() string {
	return fmt.Sprintf("%s • %s", formatter.FormatDate(i.entry.DateCreated), formatter.ShortID(i.entry.ID))
}

func entryItems(entries []models.Entry, marked map[string]bool) []list.Item {
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e, marked: marked[e.ID]}
	}
	return items
}
