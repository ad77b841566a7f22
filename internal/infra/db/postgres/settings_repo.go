package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/settings"
)

type SettingRepository struct {
	db *sql.DB
}

func NewSettingRepository(db *sql.DB) *SettingRepository {
	return &SettingRepository{db: db}
}

// Save upserts a setting by key
func (r *SettingRepository) Save(ctx context.Context, s *domain.Setting) error {
	const q = `
INSERT INTO settings (setting_key, setting_value, value_type, updated_at)
VALUES ($1,$2,$3,$4)
ON CONFLICT (setting_key) DO UPDATE SET
  setting_value=EXCLUDED.setting_value, value_type=EXCLUDED.value_type, updated_at=EXCLUDED.updated_at;
`
	updatedAt := s.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := r.db.ExecContext(ctx, q, s.Key, s.Value, string(s.Type), updatedAt)
	return err
}

// Get returns one setting by key
func (r *SettingRepository) Get(ctx context.Context, key string) (*domain.Setting, error) {
	const q = `
SELECT setting_key, setting_value, value_type, updated_at
FROM settings
WHERE setting_key=$1;
`
	var s domain.Setting
	var t string
	err := r.db.QueryRowContext(ctx, q, key).Scan(&s.Key, &s.Value, &t, &s.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Type = domain.ValueType(t)
	return &s, nil
}

// List returns all settings ordered by key
func (r *SettingRepository) List(ctx context.Context) ([]*domain.Setting, error) {
	const q = `
SELECT setting_key, setting_value, value_type, updated_at
FROM settings
ORDER BY setting_key;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Setting
	for rows.Next() {
		var s domain.Setting
		var t string
		if err := rows.Scan(&s.Key, &s.Value, &t, &s.UpdatedAt); err != nil {
			return nil, err
		}
		s.Type = domain.ValueType(t)
		out = append(out, &s)
	}
	return out, rows.Err()
}
