package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig  = fmt.Errorf("configuration not found")
	ErrInvalidConfig  = fmt.Errorf("invalid configuration")
	ErrUnknownDriver  = fmt.Errorf("unknown storage driver")
	ErrConfigExists   = fmt.Errorf("configuration already exists")
	ErrStorageMissing = fmt.Errorf("storage not initialized")

	// Persistence errors
	ErrSlotEmpty     = fmt.Errorf("slot is empty")
	ErrEncodeEntries = fmt.Errorf("failed to encode entries")
	ErrDecodeEntries = fmt.Errorf("failed to decode entries")
	ErrInvalidEntry  = fmt.Errorf("invalid entry")

	// Entry errors
	ErrEntryNotFound = fmt.Errorf("entry not found")
	ErrEmptyText     = fmt.Errorf("empty text")

	// Clipboard errors
	ErrClipboardUnavailable = fmt.Errorf("clipboard unavailable")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
