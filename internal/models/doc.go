// Package models defines the saved-entry data model for readloop.
//
// An [Entry] is one block of captured text plus a derived preview and its creation time.
// Entries are built only through [NewEntry], which assigns a v4 UUID, stamps the creation
// time, and computes the preview exactly once with [Preview]. Nothing mutates an entry afterwards.
//
// The persisted representation of an entry is its JSON encoding:
//
//	{"id": "...", "text": "...", "previewText": "...", "dateCreated": "2025-03-21T09:30:00Z"}
//
// [Entry.Validate] and [ValidateEntries] guard the invariants when entries come back from storage.
package models
