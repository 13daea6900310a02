package pg

import (
	"context"

	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

func (s *Store) GetOrganization(ctx context.Context, orgID string) (*core.Organization, error) {
	const q = `
SELECT id, name, rut, logo, active, expires_at, created_at
FROM organization
WHERE id = $1`
	var o core.Organization
	err := s.pool.QueryRow(ctx, q, orgID).Scan(
		&o.ID, &o.Name, &o.RUT, &o.Logo, &o.Active, &o.ExpiresAt, &o.CreatedAt)
	if err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}

// ListUserOrganizations: solo organizaciones activas con membresía activa,
// en orden de ingreso. Este es exactamente el set que ve el selector de login.
func (s *Store) ListUserOrganizations(ctx context.Context, userID string) ([]core.Organization, error) {
	const q = `
SELECT o.id, o.name, o.rut, o.logo, o.active, o.expires_at, o.created_at
FROM organization_member m
JOIN organization o ON o.id = m.organization_id
WHERE m.user_id = $1 AND m.active AND o.active
ORDER BY m.joined_at;`
	rows, err := s.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []core.Organization
	for rows.Next() {
		var o core.Organization
		if err := rows.Scan(&o.ID, &o.Name, &o.RUT, &o.Logo, &o.Active, &o.ExpiresAt, &o.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (s *Store) HasMembership(ctx context.Context, userID, orgID string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1
  FROM organization_member m
  JOIN organization o ON o.id = m.organization_id
  WHERE m.user_id = $1 AND m.organization_id = $2 AND m.active AND o.active
)`
	var ok bool
	if err := s.pool.QueryRow(ctx, q, userID, orgID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}
