package services

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/shared"
)

// minIDPrefix is the shortest ID prefix [EntryStore.Resolve] accepts.
const minIDPrefix = 4

// EntryStoreOpts contains configuration options for creating an [EntryStore].
type EntryStoreOpts struct {
	Logger *log.Logger
	Now    func() time.Time // Clock for DateCreated (default: time.Now)
}

// EntryStore holds the ordered entry collection.
type EntryStore struct {
	mu        sync.Mutex
	entries   []models.Entry
	persister Persister
	logger    *log.Logger
	now       func() time.Time
}

// NewEntryStore creates an [EntryStore] and loads its initial state from p.
func NewEntryStore(ctx context.Context, p Persister, opts EntryStoreOpts) *EntryStore {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &EntryStore{
		persister: p,
		logger:    shared.WithLogger(opts.Logger, "component", "store"),
		now:       opts.Now,
	}
	s.load(ctx)
	return s
}

func (s *EntryStore) load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = s.persister.Load(ctx)
	if s.entries == nil {
		s.entries = []models.Entry{}
	}
	s.logger.Debug("store ready", "entries", len(s.entries))
}

// save must be called with s.mu held.
func (s *EntryStore) save(ctx context.Context) {
	s.persister.Save(ctx, slices.Clone(s.entries))
}

// Create appends a new entry for text and saves.
//
// Blank text is ignored and reported with ok == false; the caller keeps its input buffer in that case.
func (s *EntryStore) Create(ctx context.Context, text string) (entry models.Entry, ok bool) {
	if models.IsBlank(text) {
		s.logger.Debug("ignoring blank entry")
		return models.Entry{}, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry = models.NewEntry(text, s.now().Round(0))
	s.entries = append(s.entries, entry)
	s.save(ctx)

	s.logger.Info("entry created", "id", entry.ID, "entries", len(s.entries))
	return entry, true
}

// DeleteByID removes the entry with id, if present, and saves.
func (s *EntryStore) DeleteByID(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.entries)
	s.entries = slices.DeleteFunc(s.entries, func(e models.Entry) bool { return e.ID == id })
	s.save(ctx)

	if removed := before - len(s.entries); removed > 0 {
		s.logger.Info("entry deleted", "id", id, "entries", len(s.entries))
	} else {
		s.logger.Debug("delete ignored, no such entry", "id", id)
	}
}

// DeleteAtPositions removes the entries at the given 0-based positions in one batch and saves once.
//
// Positions refer to the ordering before the call. Duplicates and out-of-range positions are ignored.
func (s *EntryStore) DeleteAtPositions(ctx context.Context, positions []int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	drop := make(map[int]struct{}, len(positions))
	for _, p := range positions {
		if p >= 0 && p < len(s.entries) {
			drop[p] = struct{}{}
		}
	}

	kept := make([]models.Entry, 0, len(s.entries)-len(drop))
	for i, e := range s.entries {
		if _, ok := drop[i]; !ok {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	s.save(ctx)

	s.logger.Info("entries deleted", "requested", len(positions), "removed", len(drop), "entries", len(s.entries))
}

// Clear removes every entry and saves.
func (s *EntryStore) Clear(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := len(s.entries)
	s.entries = []models.Entry{}
	s.save(ctx)

	s.logger.Info("store cleared", "removed", removed)
}

// List returns a snapshot of the entries in insertion order.
func (s *EntryStore) List() []models.Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.entries)
}

// Len returns the number of entries.
func (s *EntryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Get returns the entry with id.
func (s *EntryStore) Get(id string) (models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.indexOf(id); i >= 0 {
		return s.entries[i], true
	}
	return models.Entry{}, false
}

// At returns the entry at the 0-based position.
func (s *EntryStore) At(position int) (models.Entry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if position < 0 || position >= len(s.entries) {
		return models.Entry{}, false
	}
	return s.entries[position], true
}

// Resolve finds an entry by a user-supplied reference and returns it with its 0-based position.
//
// A reference is a 1-based position ("3"), a full ID, or an unambiguous ID prefix of at least four characters.
func (s *EntryStore) Resolve(ref string) (models.Entry, int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Entry{}, -1, fmt.Errorf("%w: empty entry reference", shared.ErrMissingArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(s.entries) {
			return models.Entry{}, -1, fmt.Errorf("%w: position %d (have %d entries)", shared.ErrEntryNotFound, n, len(s.entries))
		}
		return s.entries[n-1], n - 1, nil
	}

	if i := s.indexOf(ref); i >= 0 {
		return s.entries[i], i, nil
	}

	if len(ref) < minIDPrefix {
		return models.Entry{}, -1, fmt.Errorf("%w: %q", shared.ErrEntryNotFound, ref)
	}

	match := -1
	for i, e := range s.entries {
		if strings.HasPrefix(e.ID, ref) {
			if match >= 0 {
				return models.Entry{}, -1, fmt.Errorf("%w: %q matches more than one entry", shared.ErrInvalidArgument, ref)
			}
			match = i
		}
	}
	if match < 0 {
		return models.Entry{}, -1, fmt.Errorf("%w: %q", shared.ErrEntryNotFound, ref)
	}
	return s.entries[match], match, nil
}

// indexOf must be called with s.mu held.
func (s *EntryStore) indexOf(id string) int {
	return slices.IndexFunc(s.entries, func(e models.Entry) bool { return e.ID == id })
}
