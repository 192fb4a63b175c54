// submodule cmd contains command definitions
package main

import (
	"github.com/desertthunder/readloop/internal/formatter"
	"github.com/urfave/cli/v3"
)

// setupCommand creates the config file and prepares storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "setup",
		Usage:  "Create config.toml and initialize storage (runs migrations for sqlite)",
		Action: r.Setup,
	}
}

// addCommand saves a new entry.
func addCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "add",
		Aliases:   []string{"save"},
		Usage:     "Save an entry from arguments, the clipboard, or stdin",
		ArgsUsage: "[TEXT...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "paste",
				Aliases: []string{"p"},
				Usage:   "Read the text from the clipboard",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output the created entry as JSON",
			},
		},
		Action: r.Add,
	}
}

// listCommand prints saved entries.
func listCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List saved entries with previews",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, csv, json",
				Value:   formatter.FormatText,
			},
		},
		Action: r.List,
	}
}

// showCommand prints one entry's full text.
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Print an entry's full text (REF is a 1-based position or an ID prefix)",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "ref"},
		},
		Action: r.Show,
	}
}

// copyCommand copies one entry to the clipboard.
func copyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "copy",
		Aliases: []string{"cp"},
		Usage:   "Copy an entry's full text to the clipboard",
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "ref"},
		},
		Action: r.Copy,
	}
}

// deleteCommand removes entries by reference.
func deleteCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "delete",
		Aliases:   []string{"rm"},
		Usage:     "Delete entries by ID or 1-based position in a single batch",
		ArgsUsage: "REF...",
		Action:    r.Delete,
	}
}

// clearCommand removes every entry.
func clearCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Delete every entry",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "yes",
				Aliases: []string{"y"},
				Usage:   "Skip the confirmation prompt",
			},
		},
		Action: r.Clear,
	}
}

// exportCommand writes entries to a file or directory.
func exportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export entries as text, markdown, csv or json",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Export format: text, markdown, csv, json",
				Value:   formatter.FormatJSON,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output file path (directory with --all); stdout when empty",
			},
			&cli.BoolFlag{
				Name:  "all",
				Usage: "Export every format into the --output directory with a manifest",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent workers for --all",
				Value: 4,
			},
		},
		Action: r.Export,
	}
}

// watchCommand captures clipboard changes as entries.
func watchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Save every new clipboard value as an entry until interrupted",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Clipboard checks per second (default from config)",
			},
			&cli.IntFlag{
				Name:  "max",
				Usage: "Stop after this many captures (default from config, 0 for no limit)",
				Value: -1,
			},
			&cli.BoolFlag{
				Name:  "include-current",
				Usage: "Also capture the clipboard's value at start",
			},
		},
		Action: r.Watch,
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal UI",
		Action:  r.TUI,
	}
}
