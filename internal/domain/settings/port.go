package settings

import "context"

// SettingRepository port for persisting keyed settings
type SettingRepository interface {
	Save(ctx context.Context, s *Setting) error
	Get(ctx context.Context, key string) (*Setting, error)
	List(ctx context.Context) ([]*Setting, error)
}

// PersonaRepository port for persisting personas
type PersonaRepository interface {
	Save(ctx context.Context, p *Persona) error
	Get(ctx context.Context, id PersonaID) (*Persona, error)
	List(ctx context.Context) ([]*Persona, error)
	Default(ctx context.Context) (*Persona, error)
	Delete(ctx context.Context, id PersonaID) error
}
