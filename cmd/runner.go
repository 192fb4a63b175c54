package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readloop/internal/repositories"
	"github.com/desertthunder/readloop/internal/services"
	"github.com/desertthunder/readloop/internal/shared"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	store      *services.EntryStore
	slot       repositories.Slot
	lastError  func() error
	clipboard  services.Clipboard
	logger     *log.Logger
	output     io.Writer
	input      io.Reader
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	Store      *services.EntryStore // Pre-built store; when nil one is opened from Config on first use
	LastError  func() error         // Persistence status for an injected Store
	Clipboard  services.Clipboard
	Logger     *log.Logger
	Output     io.Writer
	Input      io.Reader
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Input == nil {
		opts.Input = os.Stdin
	}
	if opts.Clipboard == nil {
		opts.Clipboard = services.SystemClipboard{}
	}

	return &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		store:      opts.Store,
		lastError:  opts.LastError,
		clipboard:  opts.Clipboard,
		logger:     opts.Logger,
		output:     opts.Output,
		input:      opts.Input,
	}
}

// app builds the root command.
func (r *Runner) app() *cli.Command {
	return &cli.Command{
		Name:    "readloop",
		Usage:   "Capture, browse and reuse snippets of text",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, r.Configure(cmd.String("config"))
		},
		Commands: r.register(),
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, addCommand, listCommand, showCommand, copyCommand, deleteCommand, clearCommand, exportCommand, watchCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// Configure loads the config file at path when it exists and applies its log level.
//
// A missing file keeps the current config.
func (r *Runner) Configure(path string) error {
	r.configPath = path

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			config, err := shared.LoadConfig(path)
			if err != nil {
				return err
			}
			r.config = config
		} else if !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to stat config file: %w", err)
		}
	}

	level, err := shared.ParseLevel(r.config.Log.Level)
	if err != nil {
		return err
	}
	shared.SetLogLevel(r.logger, level)
	return nil
}

// SetLogger replaces the runner's logger, e.g. to keep logs out of the TUI.
func (r *Runner) SetLogger(l *log.Logger) {
	if l != nil {
		r.logger = l
	}
}

// openStore returns the entry store, opening the configured slot on first use.
func (r *Runner) openStore(ctx context.Context) (*services.EntryStore, error) {
	if r.store != nil {
		return r.store, nil
	}

	slot, err := repositories.OpenSlot(ctx, r.config, r.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	gw := repositories.NewGateway(slot, repositories.GatewayOpts{
		Key:    r.config.Storage.Key,
		Logger: r.logger,
	})

	r.slot = slot
	r.lastError = gw.LastError
	r.store = services.NewEntryStore(ctx, gw, services.EntryStoreOpts{Logger: r.logger})
	return r.store, nil
}

// warnUnsaved logs the last persistence failure after a mutation; the in-memory change is lost when the process exits.
func (r *Runner) warnUnsaved() {
	if r.lastError == nil {
		return
	}
	if err := r.lastError(); err != nil {
		r.logger.Warn("change was not saved to storage", "error", err)
	}
}

// Close releases the storage slot.
func (r *Runner) Close() error {
	if r.slot == nil {
		return nil
	}
	err := r.slot.Close()
	r.slot = nil
	return err
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
