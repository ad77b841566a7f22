package settings

import "errors"

// ErrNotFound indicates a keyed record (setting or persona) does not exist.
var ErrNotFound = errors.New("settings: record not found")

// ErrDefaultPersona indicates an operation that would remove the default
// persona (deleting it is refused).
var ErrDefaultPersona = errors.New("settings: the default persona cannot be deleted")
