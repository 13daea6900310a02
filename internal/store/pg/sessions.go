package pg

import (
	"context"
	"time"

	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

func (s *Store) CreateSession(ctx context.Context, tokenHash, userID, orgID string, ttl time.Duration) (*core.Session, error) {
	now := time.Now().UTC()
	sess := &core.Session{
		TokenHash:      tokenHash,
		UserID:         userID,
		OrganizationID: orgID,
		ExpiresAt:      now.Add(ttl),
		LastActivity:   now,
		CreatedAt:      now,
	}
	// orgID vacío se persiste como NULL (login sin membresías)
	var org any
	if orgID != "" {
		org = orgID
	}
	const q = `
INSERT INTO session (token_hash, user_id, organization_id, expires_at, last_activity, created_at)
VALUES ($1,$2,$3,$4,$5,$6)`
	if _, err := s.pool.Exec(ctx, q, tokenHash, userID, org, sess.ExpiresAt, sess.LastActivity, sess.CreatedAt); err != nil {
		return nil, mapErr(err)
	}
	return sess, nil
}

func (s *Store) GetSessionByToken(ctx context.Context, tokenHash string) (*core.Session, error) {
	const q = `
SELECT token_hash, user_id, COALESCE(organization_id::text, ''), expires_at, last_activity, created_at
FROM session
WHERE token_hash = $1`
	var sess core.Session
	err := s.pool.QueryRow(ctx, q, tokenHash).Scan(
		&sess.TokenHash, &sess.UserID, &sess.OrganizationID,
		&sess.ExpiresAt, &sess.LastActivity, &sess.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &sess, nil
}

// TouchSession corre la ventana: expires_at = now+ttl. Solo toca sesiones
// todavía vigentes; una vencida ya no revive.
func (s *Store) TouchSession(ctx context.Context, tokenHash string, ttl time.Duration) error {
	now := time.Now().UTC()
	const q = `
UPDATE session
SET expires_at = $2, last_activity = $3
WHERE token_hash = $1 AND expires_at > $3`
	tag, err := s.pool.Exec(ctx, q, tokenHash, now.Add(ttl), now)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) ReassignOrganization(ctx context.Context, tokenHash, orgID string, ttl time.Duration) error {
	now := time.Now().UTC()
	const q = `
UPDATE session
SET organization_id = $2, expires_at = $3, last_activity = $4
WHERE token_hash = $1 AND expires_at > $4`
	tag, err := s.pool.Exec(ctx, q, tokenHash, orgID, now.Add(ttl), now)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteSessionByToken(ctx context.Context, tokenHash string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM session WHERE token_hash = $1`, tokenHash)
	return err
}

func (s *Store) DeleteSessionsForUser(ctx context.Context, userID string) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM session WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteOtherSessionsForUser(ctx context.Context, userID, keepTokenHash string) (int64, error) {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM session WHERE user_id = $1 AND token_hash <> $2`, userID, keepTokenHash)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *Store) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM session WHERE expires_at <= now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
