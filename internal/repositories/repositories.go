// package repositories provides key-value slot implementations and the entry persistence gateway.
package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readloop/internal/shared"
)

// Slot is a durable key-value location holding one opaque value per key.
type Slot interface {
	// Read returns the value stored under key, or [shared.ErrSlotEmpty] if nothing was ever written.
	Read(ctx context.Context, key string) ([]byte, error)
	// Write replaces the value stored under key.
	Write(ctx context.Context, key string, value []byte) error
	// Close releases any handles held by the slot.
	Close() error
}

var (
	_ Slot = (*FileSlot)(nil)
	_ Slot = (*SQLiteSlot)(nil)
	_ Slot = (*MemorySlot)(nil)
)

// OpenSlot opens the slot backend named by config.Storage.Driver.
//
// The sqlite driver opens config.Database.Path and applies pending migrations.
func OpenSlot(ctx context.Context, config *shared.Config, logger *log.Logger) (Slot, error) {
	if config == nil {
		return nil, fmt.Errorf("%w: config is nil", shared.ErrInvalidConfig)
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	driver := strings.ToLower(config.Storage.Driver)
	switch driver {
	case shared.DriverFile:
		dir, err := shared.ExpandHome(config.Storage.Dir)
		if err != nil {
			return nil, err
		}
		logger.Debug("using storage", "driver", driver, "dir", dir)
		return NewFileSlot(dir)
	case shared.DriverSQLite:
		path, err := shared.ExpandHome(config.Database.Path)
		if err != nil {
			return nil, err
		}
		logger.Debug("using storage", "driver", driver, "path", path)

		db, err := shared.NewDatabase(path)
		if err != nil {
			return nil, err
		}
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)

		if err := shared.RunMigrations(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
		return NewSQLiteSlot(db), nil
	case shared.DriverMemory:
		logger.Debug("using storage", "driver", driver)
		return NewMemorySlot(), nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownDriver, config.Storage.Driver)
	}
}
