package settings

import "time"

// PersonaID identifier type
type PersonaID string

// Setting is a keyed configuration value with a declared type tag so callers
// get the typed value back, not the stored string.
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      ValueType `json:"type"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Persona is an alternative system-prompt source. At most one persona is the
// default; the default cannot be deleted.
type Persona struct {
	ID           PersonaID `json:"id"`
	Name         string    `json:"name"`
	SystemPrompt string    `json:"system_prompt"`
	IsDefault    bool      `json:"is_default"`
	CreatedAt    time.Time `json:"created_at"`
}
