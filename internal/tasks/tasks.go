package tasks

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/services"
	"github.com/desertthunder/readloop/internal/shared"
)

// Store is the part of [services.EntryStore] the engine needs.
type Store interface {
	Create(ctx context.Context, text string) (models.Entry, bool)
	List() []models.Entry
}

var _ Store = (*services.EntryStore)(nil)

// Engine runs watch and export operations against a [Store].
type Engine struct {
	store     Store
	clipboard services.Clipboard
	logger    *log.Logger
}

// NewEngine creates an [Engine]. The clipboard may be nil when only exports are used.
func NewEngine(store Store, clipboard services.Clipboard, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{
		store:     store,
		clipboard: clipboard,
		logger:    shared.WithLogger(logger, "component", "tasks"),
	}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
