package settings

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/settings"
)

// Service implements use-cases untuk settings dan personas
type Service struct {
	Settings domain.SettingRepository
	Personas domain.PersonaRepository
	Clock    Clock
}

type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// GetSetting returns a setting plus its decoded typed value.
func (s *Service) GetSetting(ctx context.Context, key string) (*domain.Setting, any, error) {
	setting, err := s.Settings.Get(ctx, key)
	if err != nil {
		return nil, nil, err
	}
	value, err := domain.ParseValue(setting.Value, setting.Type)
	if err != nil {
		return nil, nil, err
	}
	return setting, value, nil
}

// PutSetting validates the raw value against the declared type, then upserts.
func (s *Service) PutSetting(ctx context.Context, key, raw string, t domain.ValueType) (*domain.Setting, error) {
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("setting key is required")
	}
	if _, err := domain.ParseValue(raw, t); err != nil {
		return nil, err
	}
	setting := &domain.Setting{
		Key:       key,
		Value:     raw,
		Type:      t,
		UpdatedAt: s.Clock.Now(),
	}
	if err := s.Settings.Save(ctx, setting); err != nil {
		return nil, err
	}
	return setting, nil
}

// ListSettings returns all stored settings.
func (s *Service) ListSettings(ctx context.Context) ([]*domain.Setting, error) {
	return s.Settings.List(ctx)
}

// Command untuk create persona
type CreatePersonaCommand struct {
	Name         string
	SystemPrompt string
	IsDefault    bool
}

// CreatePersona stores a new persona. Marking it default displaces the
// previous default (repository enforces uniqueness).
func (s *Service) CreatePersona(ctx context.Context, cmd CreatePersonaCommand) (*domain.Persona, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return nil, fmt.Errorf("persona name is required")
	}
	p := &domain.Persona{
		ID:           domain.PersonaID(uuid.New().String()),
		Name:         cmd.Name,
		SystemPrompt: cmd.SystemPrompt,
		IsDefault:    cmd.IsDefault,
		CreatedAt:    s.Clock.Now(),
	}
	if err := s.Personas.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// GetPersona mengambil 1 persona by id
func (s *Service) GetPersona(ctx context.Context, id domain.PersonaID) (*domain.Persona, error) {
	return s.Personas.Get(ctx, id)
}

// ListPersonas returns all personas.
func (s *Service) ListPersonas(ctx context.Context) ([]*domain.Persona, error) {
	return s.Personas.List(ctx)
}

// DefaultPersona returns the current default persona.
func (s *Service) DefaultPersona(ctx context.Context) (*domain.Persona, error) {
	return s.Personas.Default(ctx)
}

// DeletePersona removes a persona; deleting the default is refused.
func (s *Service) DeletePersona(ctx context.Context, id domain.PersonaID) error {
	p, err := s.Personas.Get(ctx, id)
	if err != nil {
		return err
	}
	if p.IsDefault {
		return domain.ErrDefaultPersona
	}
	return s.Personas.Delete(ctx, id)
}
