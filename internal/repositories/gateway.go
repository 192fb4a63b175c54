package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/shared"
)

// Hooks observe gateway outcomes. Any field may be nil.
type Hooks struct {
	OnSave      func(count int)
	OnSaveError func(err error)
	OnLoad      func(count int)
	OnLoadError func(err error) // also called with [shared.ErrSlotEmpty] when nothing was saved yet
}

// GatewayOpts contains configuration options for creating a [Gateway].
type GatewayOpts struct {
	Key    string // Slot key (default: [shared.DefaultSlotKey])
	Logger *log.Logger
	Hooks  Hooks
}

// Gateway saves and loads the full entry collection under one slot key.
type Gateway struct {
	slot    Slot
	key     string
	logger  *log.Logger
	hooks   Hooks
	mu      sync.Mutex
	lastErr error
}

// NewGateway creates a [Gateway] writing to slot.
func NewGateway(slot Slot, opts GatewayOpts) *Gateway {
	if opts.Key == "" {
		opts.Key = shared.DefaultSlotKey
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Gateway{
		slot:   slot,
		key:    opts.Key,
		logger: shared.WithLogger(opts.Logger, "component", "gateway", "key", opts.Key),
		hooks:  opts.Hooks,
	}
}

// Key returns the slot key the gateway writes to.
func (g *Gateway) Key() string { return g.key }

// Save overwrites the slot with entries.
//
// Failures are logged and reported through [Hooks.OnSaveError] and [Gateway.LastError], never returned.
func (g *Gateway) Save(ctx context.Context, entries []models.Entry) {
	data, err := EncodeEntries(entries)
	if err == nil {
		err = g.slot.Write(ctx, g.key, data)
	}

	g.mu.Lock()
	g.lastErr = err
	g.mu.Unlock()

	if err != nil {
		g.logger.Error("save skipped, keeping in-memory entries", "entries", len(entries), "error", err)
		if g.hooks.OnSaveError != nil {
			g.hooks.OnSaveError(err)
		}
		return
	}

	g.logger.Debug("saved entries", "entries", len(entries), "bytes", len(data))
	if g.hooks.OnSave != nil {
		g.hooks.OnSave(len(entries))
	}
}

// Load reads the slot and decodes it.
//
// A missing slot, unreadable storage or undecodable data all yield an empty collection:
// whatever was stored is treated as lost rather than blocking startup.
func (g *Gateway) Load(ctx context.Context) []models.Entry {
	entries, err := g.load(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrSlotEmpty) {
			g.logger.Debug("no saved entries")
		} else {
			g.logger.Warn("discarding unreadable saved entries, starting empty", "error", err)
		}
		if g.hooks.OnLoadError != nil {
			g.hooks.OnLoadError(err)
		}
		return []models.Entry{}
	}

	g.logger.Debug("loaded entries", "entries", len(entries))
	if g.hooks.OnLoad != nil {
		g.hooks.OnLoad(len(entries))
	}
	return entries
}

func (g *Gateway) load(ctx context.Context) ([]models.Entry, error) {
	data, err := g.slot.Read(ctx, g.key)
	if err != nil {
		return nil, err
	}
	return DecodeEntries(data)
}

// LastError returns the error from the most recent [Gateway.Save], or nil if it succeeded.
func (g *Gateway) LastError() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lastErr
}

// EncodeEntries serializes entries as a JSON array, preserving order.
func EncodeEntries(entries []models.Entry) ([]byte, error) {
	if entries == nil {
		entries = []models.Entry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrEncodeEntries, err)
	}
	return data, nil
}

// DecodeEntries parses a JSON array written by [EncodeEntries] and validates every entry.
//
// Unknown fields are ignored. A JSON null decodes to an empty collection.
func DecodeEntries(data []byte) ([]models.Entry, error) {
	var entries []models.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrDecodeEntries, err)
	}

	if err := models.ValidateEntries(entries); err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrDecodeEntries, err)
	}

	if entries == nil {
		entries = []models.Entry{}
	}
	return entries, nil
}
