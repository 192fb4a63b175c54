// Package services implements the entry store and the clipboard collaborator.
//
// # Entry Store
//
// [EntryStore] owns the authoritative, insertion-ordered collection of [models.Entry] values
// and is the only way to mutate it:
//   - [EntryStore.Create] : append a new entry (blank text is ignored)
//   - [EntryStore.DeleteByID] : remove one entry by identity, idempotent
//   - [EntryStore.DeleteAtPositions] : remove a set of positions in one batch
//   - [EntryStore.Clear] : remove everything
//
// Every mutation hands the full collection to its [Persister] before returning.
// The store loads once, at construction; an unreadable slot means an empty store.
//
// All methods are serialized by a mutex so the TUI's command goroutines and the clipboard
// watcher never interleave mutations.
//
// # Clipboard
//
// [Clipboard] abstracts the system clipboard. [SystemClipboard] is backed by atotto/clipboard,
// which shells out to pbcopy/pbpaste, xclip/xsel/wl-clipboard, or the Windows clipboard API.
package services
