package pg

import (
	"context"
	"encoding/json"

	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

func (s *Store) InsertAudit(ctx context.Context, e *core.AuditEntry) error {
	detail, err := json.Marshal(e.Detail)
	if err != nil {
		return err
	}
	var userID any
	if e.UserID != "" {
		userID = e.UserID
	}
	const q = `
INSERT INTO audit_log (id, user_id, action, detail, created_at)
VALUES ($1,$2,$3,$4,$5)`
	if _, err := s.pool.Exec(ctx, q, e.ID, userID, e.Action, detail, e.CreatedAt); err != nil {
		return mapErr(err)
	}
	return nil
}
