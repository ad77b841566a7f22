package mysql

import (
	"context"
	"database/sql"
	"errors"
	"time"

	domain "github.com/bryanwahyu/proposal-ai/internal/domain/settings"
)

type PersonaRepository struct {
	db *sql.DB
}

func NewPersonaRepository(db *sql.DB) *PersonaRepository {
	return &PersonaRepository{db: db}
}

// Save upserts a persona. Saving a default persona clears the previous
// default inside the same transaction so at most one row stays default.
func (r *PersonaRepository) Save(ctx context.Context, p *domain.Persona) error {
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if p.IsDefault {
		if _, err := tx.ExecContext(ctx, `UPDATE personas SET is_default=0 WHERE id<>?;`, p.ID); err != nil {
			return err
		}
	}

	const q = `
INSERT INTO personas (id, name, system_prompt, is_default, created_at)
VALUES (?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  name=VALUES(name), system_prompt=VALUES(system_prompt), is_default=VALUES(is_default);
`
	if _, err := tx.ExecContext(ctx, q, p.ID, p.Name, p.SystemPrompt, p.IsDefault, createdAt); err != nil {
		return err
	}
	return tx.Commit()
}

// Get returns one persona by id
func (r *PersonaRepository) Get(ctx context.Context, id domain.PersonaID) (*domain.Persona, error) {
	const q = `
SELECT id, name, system_prompt, is_default, created_at
FROM personas
WHERE id=?;
`
	return scanPersona(r.db.QueryRowContext(ctx, q, id))
}

// List returns all personas, default first
func (r *PersonaRepository) List(ctx context.Context) ([]*domain.Persona, error) {
	const q = `
SELECT id, name, system_prompt, is_default, created_at
FROM personas
ORDER BY is_default DESC, created_at;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Persona
	for rows.Next() {
		var p domain.Persona
		if err := rows.Scan(&p.ID, &p.Name, &p.SystemPrompt, &p.IsDefault, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

// Default returns the persona flagged as default
func (r *PersonaRepository) Default(ctx context.Context) (*domain.Persona, error) {
	const q = `
SELECT id, name, system_prompt, is_default, created_at
FROM personas
WHERE is_default=1
LIMIT 1;
`
	return scanPersona(r.db.QueryRowContext(ctx, q))
}

// Delete removes a persona by id
func (r *PersonaRepository) Delete(ctx context.Context, id domain.PersonaID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM personas WHERE id=?;`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanPersona(row *sql.Row) (*domain.Persona, error) {
	var p domain.Persona
	err := row.Scan(&p.ID, &p.Name, &p.SystemPrompt, &p.IsDefault, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}
