package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/desertthunder/readloop/internal/repositories"
	"github.com/desertthunder/readloop/internal/services"
	"github.com/desertthunder/readloop/internal/shared"
	tu "github.com/desertthunder/readloop/internal/testing"
	"github.com/google/go-cmp/cmp"
)

type harness struct {
	runner *Runner
	store  *services.EntryStore
	slot   *tu.FailingSlot
	cb     *tu.MockClipboard
	out    *bytes.Buffer
	logs   *bytes.Buffer
}

func newHarness(t *testing.T, input string, texts ...string) *harness {
	t.Helper()
	ctx := context.Background()

	logs := &bytes.Buffer{}
	logger := shared.NewLogger(logs)
	slot := tu.NewFailingSlot(nil, nil)
	gw := repositories.NewGateway(slot, repositories.GatewayOpts{Logger: logger})
	store := services.NewEntryStore(ctx, gw, services.EntryStoreOpts{Logger: logger})
	for _, text := range texts {
		store.Create(ctx, text)
	}

	out := &bytes.Buffer{}
	cb := tu.NewMockClipboard("")
	runner := NewRunner(RunnerOpts{
		Store:     store,
		LastError: gw.LastError,
		Clipboard: cb,
		Logger:    logger,
		Output:    out,
		Input:     strings.NewReader(input),
	})

	return &harness{runner: runner, store: store, slot: slot, cb: cb, out: out, logs: logs}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	argv := append([]string{"readloop", "--config", filepath.Join(t.TempDir(), "missing.toml")}, args...)
	return h.runner.app().Run(context.Background(), argv)
}

func (h *harness) texts() []string {
	var out []string
	for _, e := range h.store.List() {
		out = append(out, e.Text)
	}
	return out
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			input := strings.NewReader("")
			cb := tu.NewMockClipboard("")

			runner := NewRunner(RunnerOpts{
				Config:     config,
				ConfigPath: "/test/path/config.toml",
				Logger:     logger,
				Output:     output,
				Input:      input,
				Clipboard:  cb,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.input != input {
				t.Error("expected input to be set")
			}
			if runner.clipboard != cb {
				t.Error("expected clipboard to be set")
			}
			if runner.configPath != "/test/path/config.toml" {
				t.Errorf("expected configPath to be set, got %s", runner.configPath)
			}
		})

		t.Run("with nil options uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.input != os.Stdin {
				t.Error("expected input to default to os.Stdin")
			}
			if _, ok := runner.clipboard.(services.SystemClipboard); !ok {
				t.Errorf("expected system clipboard, got %T", runner.clipboard)
			}
			if runner.store != nil {
				t.Error("store should be opened lazily")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, true); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			expected := `{"key":"value"}` + "\n"
			if output.String() != expected {
				t.Errorf("expected %q, got %q", expected, output.String())
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}})

			err := runner.writeJSON(make(chan int), false)
			if err == nil || !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(map[string]string{"key": "value"}, false)
			if err == nil || !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writePlain("hello %s", "world"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != "hello world" {
				t.Errorf("expected 'hello world', got %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &tu.FWriter{}})

			err := runner.writePlain("test")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		var names []string
		for i, cmd := range commands {
			if cmd == nil {
				t.Fatalf("command at index %d is nil", i)
			}
			names = append(names, cmd.Name)
		}

		want := []string{"setup", "add", "list", "show", "copy", "delete", "clear", "export", "watch", "tui"}
		if diff := cmp.Diff(want, names); diff != "" {
			t.Errorf("commands mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Configure", func(t *testing.T) {
		t.Run("loads existing file", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			config := shared.DefaultConfig()
			config.Storage.Driver = shared.DriverMemory
			config.Log.Level = "debug"
			if err := shared.SaveConfig(path, config); err != nil {
				t.Fatal(err)
			}

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{})})
			if err := runner.Configure(path); err != nil {
				t.Fatalf("Configure() error = %v", err)
			}
			if runner.config.Storage.Driver != shared.DriverMemory {
				t.Errorf("expected memory driver, got %s", runner.config.Storage.Driver)
			}
			if runner.logger.GetLevel().String() != "debug" {
				t.Errorf("expected debug level, got %s", runner.logger.GetLevel())
			}
			if runner.configPath != path {
				t.Errorf("expected configPath %s, got %s", path, runner.configPath)
			}
		})

		t.Run("missing file keeps current config", func(t *testing.T) {
			config := shared.DefaultConfig()
			runner := NewRunner(RunnerOpts{Config: config})

			if err := runner.Configure(filepath.Join(t.TempDir(), "nope.toml")); err != nil {
				t.Fatalf("Configure() error = %v", err)
			}
			if runner.config != config {
				t.Error("config should be unchanged")
			}
		})

		t.Run("invalid file is an error", func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte("[storage]\ndriver = \"floppy\"\n"), 0644); err != nil {
				t.Fatal(err)
			}

			runner := NewRunner(RunnerOpts{})
			if err := runner.Configure(path); err == nil {
				t.Error("expected error for unknown driver")
			}
		})
	})

	t.Run("openStore", func(t *testing.T) {
		config := shared.DefaultConfig()
		config.Storage.Driver = shared.DriverSQLite
		config.Database.Path = filepath.Join(t.TempDir(), "readloop.db")
		logger := shared.NewLogger(&bytes.Buffer{})
		ctx := context.Background()

		runner := NewRunner(RunnerOpts{Config: config, Logger: logger})
		store, err := runner.openStore(ctx)
		if err != nil {
			t.Fatalf("openStore() error = %v", err)
		}
		store.Create(ctx, "persisted")

		again, _ := runner.openStore(ctx)
		if again != store {
			t.Error("store should be opened once")
		}
		if err := runner.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}

		reopened := NewRunner(RunnerOpts{Config: config, Logger: logger})
		defer reopened.Close()
		store, err = reopened.openStore(ctx)
		if err != nil {
			t.Fatalf("openStore() error = %v", err)
		}
		if got := store.List(); len(got) != 1 || got[0].Text != "persisted" {
			t.Errorf("expected persisted entry after reopen, got %v", got)
		}
	})
}

func TestCommands(t *testing.T) {
	t.Run("add", func(t *testing.T) {
		t.Run("joins arguments", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run(t, "add", "hello", "world"); err != nil {
				t.Fatalf("add error = %v", err)
			}
			if diff := cmp.Diff([]string{"hello world"}, h.texts()); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(h.out.String(), "✓ Saved") {
				t.Errorf("unexpected output %q", h.out.String())
			}
		})

		t.Run("reads stdin and drops trailing newline", func(t *testing.T) {
			h := newHarness(t, "Hello\nWorld\nFoo\nBar\n")

			if err := h.run(t, "add"); err != nil {
				t.Fatalf("add error = %v", err)
			}
			entries := h.store.List()
			if len(entries) != 1 || entries[0].Text != "Hello\nWorld\nFoo\nBar" {
				t.Fatalf("unexpected entries %v", entries)
			}
			if entries[0].PreviewText != "Hello\nWorld\nFoo" {
				t.Errorf("unexpected preview %q", entries[0].PreviewText)
			}
		})

		t.Run("paste reads the clipboard", func(t *testing.T) {
			h := newHarness(t, "")
			h.cb.Set("from clipboard")

			if err := h.run(t, "add", "--paste"); err != nil {
				t.Fatalf("add error = %v", err)
			}
			if diff := cmp.Diff([]string{"from clipboard"}, h.texts()); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("paste with text is rejected", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run(t, "add", "--paste", "text"); !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("blank input saves nothing", func(t *testing.T) {
			h := newHarness(t, "  \n")

			if err := h.run(t, "add"); err != nil {
				t.Fatalf("blank add should not fail, got %v", err)
			}
			if h.store.Len() != 0 {
				t.Errorf("expected no entries, got %d", h.store.Len())
			}
			if h.slot.Writes != 0 {
				t.Errorf("blank add should not save, got %d writes", h.slot.Writes)
			}
			if !strings.Contains(h.logs.String(), "nothing to save") {
				t.Errorf("expected warning, got logs %q", h.logs.String())
			}
		})

		t.Run("json output", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run(t, "add", "--json", "note"); err != nil {
				t.Fatalf("add error = %v", err)
			}
			if !strings.Contains(h.out.String(), `"previewText": "note"`) {
				t.Errorf("expected entry JSON, got %s", h.out.String())
			}
		})

		t.Run("save failure warns but succeeds", func(t *testing.T) {
			h := newHarness(t, "")
			h.slot.WriteErr = errors.New("disk full")

			if err := h.run(t, "add", "unsaved"); err != nil {
				t.Fatalf("add error = %v", err)
			}
			if !strings.Contains(h.logs.String(), "change was not saved") {
				t.Errorf("expected unsaved warning, got logs %q", h.logs.String())
			}
		})
	})

	t.Run("list", func(t *testing.T) {
		t.Run("text shows numbered previews", func(t *testing.T) {
			h := newHarness(t, "", "Hello\nWorld\nFoo\nBar", "Hi")

			if err := h.run(t, "list"); err != nil {
				t.Fatalf("list error = %v", err)
			}
			out := h.out.String()
			for _, want := range []string{"1", "2", "Hello", "Foo", "Hi"} {
				if !strings.Contains(out, want) {
					t.Errorf("list output missing %q:\n%s", want, out)
				}
			}
			if strings.Contains(out, "Bar") {
				t.Errorf("list should show previews only:\n%s", out)
			}
		})

		t.Run("empty store", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run(t, "list"); err != nil {
				t.Fatalf("list error = %v", err)
			}
			if !strings.Contains(h.out.String(), "No saved texts yet") {
				t.Errorf("unexpected output %q", h.out.String())
			}
		})

		t.Run("csv format", func(t *testing.T) {
			h := newHarness(t, "", "one")

			if err := h.run(t, "list", "--format", "csv"); err != nil {
				t.Fatalf("list error = %v", err)
			}
			if !strings.HasPrefix(h.out.String(), "ID,Created,Preview,Text\n") {
				t.Errorf("expected CSV header, got %q", h.out.String())
			}
		})

		t.Run("unknown format", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run(t, "list", "--format", "yaml"); !errors.Is(err, shared.ErrInvalidFlag) {
				t.Errorf("expected ErrInvalidFlag, got %v", err)
			}
		})
	})

	t.Run("show", func(t *testing.T) {
		h := newHarness(t, "", "first", "line 1\nline 2\nline 3\nline 4")

		if err := h.run(t, "show", "2"); err != nil {
			t.Fatalf("show error = %v", err)
		}
		if h.out.String() != "line 1\nline 2\nline 3\nline 4\n" {
			t.Errorf("expected full text, got %q", h.out.String())
		}

		if err := h.run(t, "show", "9"); !errors.Is(err, shared.ErrEntryNotFound) {
			t.Errorf("expected ErrEntryNotFound, got %v", err)
		}
	})

	t.Run("copy", func(t *testing.T) {
		h := newHarness(t, "", "copy me\nall of me")
		id := h.store.List()[0].ID

		if err := h.run(t, "copy", id[:8]); err != nil {
			t.Fatalf("copy error = %v", err)
		}
		if diff := cmp.Diff([]string{"copy me\nall of me"}, h.cb.Writes); diff != "" {
			t.Errorf("clipboard writes mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(h.out.String(), "✓ Copied") {
			t.Errorf("expected confirmation, got %q", h.out.String())
		}

		h.cb.WriteErr = shared.ErrClipboardUnavailable
		if err := h.run(t, "copy", "1"); !errors.Is(err, shared.ErrClipboardUnavailable) {
			t.Errorf("expected ErrClipboardUnavailable, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		t.Run("positions in one batch", func(t *testing.T) {
			h := newHarness(t, "", "A", "B", "C")
			writes := h.slot.Writes

			if err := h.run(t, "delete", "1", "3"); err != nil {
				t.Fatalf("delete error = %v", err)
			}
			if diff := cmp.Diff([]string{"B"}, h.texts()); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
			if h.slot.Writes != writes+1 {
				t.Errorf("expected one save, got %d", h.slot.Writes-writes)
			}
		})

		t.Run("ids and positions mixed", func(t *testing.T) {
			h := newHarness(t, "", "A", "B", "C")
			idC := h.store.List()[2].ID

			if err := h.run(t, "delete", idC, "2", "3"); err != nil {
				t.Fatalf("delete error = %v", err)
			}
			if diff := cmp.Diff([]string{"A"}, h.texts()); diff != "" {
				t.Errorf("entries mismatch (-want +got):\n%s", diff)
			}
			if !strings.Contains(h.out.String(), "Deleted 2 entries") {
				t.Errorf("duplicate refs should count once, got %q", h.out.String())
			}
		})

		t.Run("bad reference deletes nothing", func(t *testing.T) {
			h := newHarness(t, "", "A", "B")

			if err := h.run(t, "delete", "1", "7"); !errors.Is(err, shared.ErrEntryNotFound) {
				t.Errorf("expected ErrEntryNotFound, got %v", err)
			}
			if h.store.Len() != 2 {
				t.Errorf("nothing should be deleted, got %d entries", h.store.Len())
			}
		})

		t.Run("requires a reference", func(t *testing.T) {
			h := newHarness(t, "")

			if err := h.run(t, "delete"); !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})
	})

	t.Run("clear", func(t *testing.T) {
		t.Run("confirmed", func(t *testing.T) {
			h := newHarness(t, "y\n", "A", "B")

			if err := h.run(t, "clear"); err != nil {
				t.Fatalf("clear error = %v", err)
			}
			if h.store.Len() != 0 {
				t.Errorf("expected empty store, got %d", h.store.Len())
			}
		})

		t.Run("declined", func(t *testing.T) {
			h := newHarness(t, "n\n", "A", "B")

			if err := h.run(t, "clear"); err != nil {
				t.Fatalf("clear error = %v", err)
			}
			if h.store.Len() != 2 || !strings.Contains(h.out.String(), "Aborted") {
				t.Errorf("clear should be aborted, got %q", h.out.String())
			}
		})

		t.Run("prompt write failure aborts", func(t *testing.T) {
			h := newHarness(t, "y\n", "A", "B")
			h.runner.output = &tu.FWriter{}

			err := h.run(t, "clear")
			if err == nil || !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
			if h.store.Len() != 2 {
				t.Errorf("nothing should be cleared, got %d entries", h.store.Len())
			}
		})

		t.Run("yes flag skips prompt", func(t *testing.T) {
			h := newHarness(t, "", "A")

			if err := h.run(t, "clear", "--yes"); err != nil {
				t.Fatalf("clear error = %v", err)
			}
			if h.store.Len() != 0 {
				t.Errorf("expected empty store, got %d", h.store.Len())
			}
		})
	})

	t.Run("export", func(t *testing.T) {
		t.Run("json to stdout", func(t *testing.T) {
			h := newHarness(t, "", "A", "B")

			if err := h.run(t, "export"); err != nil {
				t.Fatalf("export error = %v", err)
			}
			decoded, err := repositories.DecodeEntries(h.out.Bytes())
			if err != nil {
				t.Fatalf("export output does not decode: %v", err)
			}
			if diff := cmp.Diff(h.store.List(), decoded); diff != "" {
				t.Errorf("export mismatch (-want +got):\n%s", diff)
			}
		})

		t.Run("markdown to file", func(t *testing.T) {
			h := newHarness(t, "", "A")
			path := filepath.Join(t.TempDir(), "notes.md")

			if err := h.run(t, "export", "--format", "md", "--output", path); err != nil {
				t.Fatalf("export error = %v", err)
			}
			if content := tu.MustReadFile(t, path); !strings.Contains(content, "# Saved Texts") {
				t.Errorf("unexpected file content:\n%s", content)
			}
		})

		t.Run("all formats to directory", func(t *testing.T) {
			h := newHarness(t, "", "A")
			dir := filepath.Join(t.TempDir(), "out")

			if err := h.run(t, "export", "--all", "--output", dir); err != nil {
				t.Fatalf("export error = %v", err)
			}
			tu.AssertFileExists(t, filepath.Join(dir, "export_manifest.json"))
			tu.AssertFileExists(t, filepath.Join(dir, "saved_texts.csv"))
			if !strings.Contains(h.out.String(), "4/4 formats succeeded") {
				t.Errorf("unexpected output %q", h.out.String())
			}
		})
	})

	t.Run("watch", func(t *testing.T) {
		h := newHarness(t, "")
		h.runner.clipboard = tu.NewSequenceClipboard("initial", "first capture", "second capture")

		if err := h.run(t, "watch", "--rate", "1000", "--max", "2"); err != nil {
			t.Fatalf("watch error = %v", err)
		}
		if diff := cmp.Diff([]string{"first capture", "second capture"}, h.texts()); diff != "" {
			t.Errorf("entries mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(h.out.String(), "Captured 2 entries") {
			t.Errorf("unexpected output %q", h.out.String())
		}
	})

	t.Run("setup", func(t *testing.T) {
		t.Run("creates config and storage", func(t *testing.T) {
			home := t.TempDir()
			t.Setenv("HOME", home)
			configPath := filepath.Join(t.TempDir(), "config.toml")

			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: &bytes.Buffer{}})
			if err := runner.app().Run(context.Background(), []string{"readloop", "--config", configPath, "setup"}); err != nil {
				t.Fatalf("setup error = %v", err)
			}

			tu.AssertFileExists(t, configPath)
			tu.AssertFileExists(t, filepath.Join(home, ".readloop"))
		})

		t.Run("uses existing sqlite config", func(t *testing.T) {
			dir := t.TempDir()
			configPath := filepath.Join(dir, "config.toml")
			config := shared.DefaultConfig()
			config.Storage.Driver = shared.DriverSQLite
			config.Database.Path = filepath.Join(dir, "data", "readloop.db")
			if err := shared.SaveConfig(configPath, config); err != nil {
				t.Fatal(err)
			}

			out := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Logger: shared.NewLogger(&bytes.Buffer{}), Output: out})
			if err := runner.app().Run(context.Background(), []string{"readloop", "--config", configPath, "setup"}); err != nil {
				t.Fatalf("setup error = %v", err)
			}

			tu.AssertFileExists(t, config.Database.Path)
			if !strings.Contains(out.String(), "Storage ready") || !strings.Contains(out.String(), "Driver: sqlite") {
				t.Errorf("unexpected output %q", out.String())
			}
		})
	})
}
