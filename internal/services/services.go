// package services defines the collaborators the entry store and UI shells depend on
package services

import (
	"context"

	"github.com/desertthunder/readloop/internal/models"
	"github.com/desertthunder/readloop/internal/repositories"
)

// Persister saves and loads the full entry collection.
//
// Implementations must not fail: Save swallows errors and Load returns an empty collection when nothing usable is stored.
type Persister interface {
	Save(ctx context.Context, entries []models.Entry)
	Load(ctx context.Context) []models.Entry
}

// Clipboard reads and writes plain text on the system clipboard.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

var (
	_ Persister = (*repositories.Gateway)(nil)
	_ Clipboard = SystemClipboard{}
)
