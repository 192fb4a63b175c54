package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/services"
	"github.com/desertthunder/readloop/internal/shared"
)

const inputHeight = 5

// Store is the part of [services.EntryStore] the TUI drives.
type Store interface {
	Create(ctx context.Context, text string) (models.Entry, bool)
	DeleteByID(ctx context.Context, id string)
	DeleteAtPositions(ctx context.Context, positions []int)
	List() []models.Entry
}

var _ Store = (*services.EntryStore)(nil)

// Focus identifies the pane receiving key input.
type Focus int

const (
	InputFocus Focus = iota
	ListFocus
)

// ModelOpts contains the dependencies for [NewModel].
type ModelOpts struct {
	Store     Store
	Clipboard services.Clipboard
	LastError func() error // Reports the most recent persistence failure, if any
	Logger    *log.Logger
}

// Model represents the TUI application state.
type Model struct {
	ctx       context.Context
	store     Store
	clipboard services.Clipboard
	lastError func() error
	logger    *log.Logger
	focus     Focus
	width     int
	height    int
	input     textarea.Model
	entries   list.Model
	marked    map[string]bool
	copied    bool
	status    string
	statusErr bool
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts ModelOpts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.LastError == nil {
		opts.LastError = func() error { return nil }
	}

	input := textarea.New()
	input.Placeholder = "Type or paste text to save..."
	input.ShowLineNumbers = false
	input.CharLimit = 0
	input.MaxHeight = 0
	input.SetHeight(inputHeight)
	input.Focus()

	entries := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	entries.Title = "Saved Texts"
	entries.SetFilteringEnabled(false)
	entries.SetShowHelp(false)
	entries.DisableQuitKeybindings()
	entries.SetStatusBarItemName("entry", "entries")

	m := &Model{
		ctx:       ctx,
		store:     opts.Store,
		clipboard: opts.Clipboard,
		lastError: opts.LastError,
		logger:    shared.WithLogger(opts.Logger, "component", "tui"),
		focus:     InputFocus,
		input:     input,
		entries:   entries,
		marked:    map[string]bool{},
		help:      help.New(),
		keys:      newKeyMap(),
	}
	m.refresh()
	return m
}

// Init starts the cursor blinking in the input pane.
func (m *Model) Init() tea.Cmd {
	return textarea.Blink
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.forceQuit) {
			return m, tea.Quit
		}
		if m.copied {
			m.copied = false
			return m, nil
		}
		return m.handleKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateFocused(msg)
}

// View renders the input pane, the status line, the entry list and help.
func (m *Model) View() string {
	title := styles.title.Render("Read Loop")

	pane := styles.blurred
	if m.focus == InputFocus {
		pane = styles.focused
	}
	input := pane.Render(m.input.View())

	var status string
	switch {
	case m.copied:
		status = styles.ok.Render("✓ Text Copied") + " " + styles.help.Render("The text has been copied to clipboard. Press any key.")
	case m.status != "" && m.statusErr:
		status = styles.err.Render(m.status)
	case m.status != "":
		status = styles.warn.Render(m.status)
	}

	listPane := styles.blurred
	if m.focus == ListFocus {
		listPane = styles.focused
	}
	entries := listPane.Render(m.entries.View())

	return lipgloss.JoinVertical(lipgloss.Left, title, input, status, entries, m.renderHelp())
}

func (m *Model) renderHelp() string {
	if m.help.ShowAll {
		return m.help.FullHelpView(m.keys.FullHelp())
	}

	var helpKeys []key.Binding
	if m.focus == InputFocus {
		helpKeys = []key.Binding{m.keys.save, m.keys.paste, m.keys.clearInput, m.keys.focus, m.keys.forceQuit}
	} else {
		helpKeys = []key.Binding{m.keys.copy, m.keys.del, m.keys.mark, m.keys.deleteMarked, m.keys.focus, m.keys.help, m.keys.quit}
	}
	return m.help.ShortHelpView(helpKeys)
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.focus):
		m.toggleFocus()
		return m, nil
	case key.Matches(msg, m.keys.save):
		m.save()
		return m, nil
	case key.Matches(msg, m.keys.paste):
		return m, m.paste()
	case key.Matches(msg, m.keys.clearInput):
		m.input.Reset()
		m.setStatus("", false)
		return m, nil
	}

	if m.focus == InputFocus {
		return m.updateFocused(msg)
	}
	return m.handleListKeys(msg)
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll
		m.resize()
		return m, nil
	case key.Matches(msg, m.keys.copy):
		if item, ok := m.selected(); ok {
			return m, m.copyEntry(item.entry)
		}
		return m, nil
	case key.Matches(msg, m.keys.del):
		if item, ok := m.selected(); ok {
			m.store.DeleteByID(m.ctx, item.entry.ID)
			delete(m.marked, item.entry.ID)
			m.afterMutation(fmt.Sprintf("Deleted %s", item.entry.Title()))
		}
		return m, nil
	case key.Matches(msg, m.keys.mark):
		if item, ok := m.selected(); ok {
			if m.marked[item.entry.ID] {
				delete(m.marked, item.entry.ID)
			} else {
				m.marked[item.entry.ID] = true
			}
			m.refresh()
		}
		return m, nil
	case key.Matches(msg, m.keys.deleteMarked):
		m.deleteMarked()
		return m, nil
	case key.Matches(msg, m.keys.unmark):
		m.marked = map[string]bool{}
		m.refresh()
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgPasted:
		data := msg.data.(struct {
			text string
			err  error
		})
		if data.err != nil {
			m.logger.Warn("paste failed", "error", data.err)
			m.setStatus(fmt.Sprintf("Paste failed: %v", data.err), true)
			return m, nil
		}
		if data.text == "" {
			m.setStatus("Clipboard is empty", false)
			return m, nil
		}
		m.input.SetValue(data.text)
		m.setStatus("", false)
		return m, nil

	case MsgCopied:
		data := msg.data.(struct {
			entry models.Entry
			err   error
		})
		if data.err != nil {
			m.logger.Warn("copy failed", "id", data.entry.ID, "error", data.err)
			m.setStatus(fmt.Sprintf("Copy failed: %v", data.err), true)
			return m, nil
		}
		m.logger.Debug("entry copied", "id", data.entry.ID)
		m.setStatus("", false)
		m.copied = true
		return m, nil
	}
	return m, nil
}

func (m *Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case InputFocus:
		m.input, cmd = m.input.Update(msg)
	case ListFocus:
		m.entries, cmd = m.entries.Update(msg)
	}
	return m, cmd
}

func (m *Model) toggleFocus() {
	if m.focus == InputFocus {
		m.focus = ListFocus
		m.input.Blur()
		return
	}
	m.focus = InputFocus
	m.input.Focus()
}

func (m *Model) save() {
	if _, ok := m.store.Create(m.ctx, m.input.Value()); !ok {
		m.setStatus("Nothing to save", false)
		return
	}
	m.input.Reset()
	m.afterMutation("Saved")
	m.entries.Select(len(m.entries.Items()) - 1)
}

func (m *Model) deleteMarked() {
	if len(m.marked) == 0 {
		m.setStatus("No entries marked", false)
		return
	}

	var positions []int
	for i, item := range m.entries.Items() {
		if e, ok := item.(entryItem); ok && m.marked[e.entry.ID] {
			positions = append(positions, i)
		}
	}

	m.store.DeleteAtPositions(m.ctx, positions)
	m.marked = map[string]bool{}
	m.afterMutation(fmt.Sprintf("Deleted %d entries", len(positions)))
}

// afterMutation reloads the list and surfaces a persistence failure if the last save did not reach storage.
func (m *Model) afterMutation(done string) {
	m.refresh()
	if err := m.lastError(); err != nil {
		m.setStatus(fmt.Sprintf("%s in memory only, not saved: %v", done, err), true)
		return
	}
	m.setStatus(done, false)
}

func (m *Model) refresh() {
	entries := m.store.List()
	for id := range m.marked {
		found := false
		for _, e := range entries {
			if e.ID == id {
				found = true
				break
			}
		}
		if !found {
			delete(m.marked, id)
		}
	}

	index := m.entries.Index()
	m.entries.SetItems(entryItems(entries, m.marked))
	if index >= len(entries) {
		index = len(entries) - 1
	}
	if index >= 0 {
		m.entries.Select(index)
	}
}

func (m *Model) resize() {
	if m.width == 0 {
		return
	}
	m.input.SetWidth(m.width - 6)

	helpHeight := 1
	if m.help.ShowAll {
		helpHeight = 5
	}
	listHeight := m.height - inputHeight - helpHeight - 8
	if listHeight < 4 {
		listHeight = 4
	}
	m.entries.SetSize(m.width-4, listHeight)
	m.help.Width = m.width
}

func (m *Model) selected() (entryItem, bool) {
	item, ok := m.entries.SelectedItem().(entryItem)
	return item, ok
}

func (m *Model) setStatus(s string, isErr bool) {
	m.status = s
	m.statusErr = isErr
}

func (m *Model) paste() tea.Cmd {
	cb := m.clipboard
	return func() tea.Msg {
		if cb == nil {
			return pastedMsg("", shared.ErrClipboardUnavailable)
		}
		text, err := services.Paste(cb)
		return pastedMsg(text, err)
	}
}

func (m *Model) copyEntry(entry models.Entry) tea.Cmd {
	cb := m.clipboard
	return func() tea.Msg {
		if cb == nil {
			return copiedMsg(entry, shared.ErrClipboardUnavailable)
		}
		return copiedMsg(entry, services.CopyEntry(cb, entry))
	}
}
