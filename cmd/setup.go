package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/desertthunder/readloop/internal/repositories"
	"github.com/desertthunder/readloop/internal/shared"
	"github.com/urfave/cli/v3"
)

// Setup creates the config file from the template if it is missing, then opens the configured
// storage once so directories exist and sqlite migrations have run.
func (r *Runner) Setup(ctx context.Context, cmd *cli.Command) error {
	configPath := r.configPath
	if configPath == "" {
		configPath = "config.toml"
	}

	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		r.logger.Info("config file not found, creating from template", "path", configPath)
		if err := shared.CreateConfigFile(configPath); err != nil {
			return fmt.Errorf("failed to create config file: %w", err)
		}
		config, err := shared.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("failed to load created config: %w", err)
		}
		r.config = config
		r.writePlain("✓ Created %s\n", configPath)
	} else if err != nil {
		return fmt.Errorf("failed to stat config file: %w", err)
	} else {
		r.logger.Info("using existing config", "path", configPath)
	}

	r.logger.Info("initializing storage", "driver", r.config.Storage.Driver)

	slot, err := repositories.OpenSlot(ctx, r.config, r.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer slot.Close()

	r.writePlainHeader("Storage ready")
	r.writePlain("Driver: %s\n", r.config.Storage.Driver)
	switch r.config.Storage.Driver {
	case shared.DriverSQLite:
		r.writePlain("Database: %s\n", r.config.Database.Path)
	case shared.DriverFile:
		r.writePlain("Directory: %s\n", r.config.Storage.Dir)
	}
	r.writePlain("Key: %s\n", r.config.Storage.Key)
	return nil
}
