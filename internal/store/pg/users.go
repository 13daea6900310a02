package pg

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

const userCols = `id, email, name, avatar, password_hash, active, created_at`

func scanUser(row interface{ Scan(...any) error }) (*core.User, error) {
	var u core.User
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Avatar, &u.PasswordHash, &u.Active, &u.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*core.User, error) {
	const q = `SELECT ` + userCols + ` FROM app_user WHERE email = LOWER($1) LIMIT 1`
	return scanUser(s.pool.QueryRow(ctx, q, strings.TrimSpace(email)))
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*core.User, error) {
	const q = `SELECT ` + userCols + ` FROM app_user WHERE id = $1`
	return scanUser(s.pool.QueryRow(ctx, q, userID))
}

// UpdatePasswordHash escribe el hash y la entrada de auditoría en la misma
// transacción: o quedan las dos o ninguna.
func (s *Store) UpdatePasswordHash(ctx context.Context, userID, newHash string, audit *core.AuditEntry) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE app_user SET password_hash = $2 WHERE id = $1`, userID, newHash)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}

	if audit != nil {
		detail, err := json.Marshal(audit.Detail)
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO audit_log (id, user_id, action, detail, created_at) VALUES ($1,$2,$3,$4,$5)`,
			audit.ID, audit.UserID, audit.Action, detail, audit.CreatedAt); err != nil {
			return mapErr(err)
		}
	}

	return tx.Commit(ctx)
}

func (s *Store) SetUserActive(ctx context.Context, userID string, active bool) error {
	tag, err := s.pool.Exec(ctx, `UPDATE app_user SET active = $2 WHERE id = $1`, userID, active)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}
