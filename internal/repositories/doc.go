// Package repositories persists the entry collection as one opaque blob in a key-value slot.
//
// A [Slot] is a named location in durable storage that holds a byte value, fully replaced on every write.
// Three implementations are provided:
//   - [FileSlot] : one JSON file per key in a directory, replaced atomically
//   - [SQLiteSlot] : one row per key in the slots table (see shared/sql)
//   - [MemorySlot] : process memory, used by tests and the "memory" driver
//
// [OpenSlot] selects an implementation from [shared.StorageConfig].
//
// The [Gateway] sits on top of a slot and owns the wire format: the full ordered entry collection is
// JSON-encoded ([EncodeEntries]) and written under a single key. Save and load failures never propagate:
// they are logged, reported through [Hooks], and the caller carries on with its in-memory state.
package repositories
