package pg

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

// ---------- LECTURAS ----------

// ResolvePermissions: unión de grants directos y derivados de roles, ambos
// acotados a la organización. Un slice vacío es un resultado válido.
func (s *Store) ResolvePermissions(ctx context.Context, userID, orgID string) ([]string, error) {
	const q = `
SELECT p.key
FROM user_permission up
JOIN permission p ON p.id = up.permission_id
WHERE up.user_id = $1 AND up.organization_id = $2
UNION
SELECT p.key
FROM user_role ur
JOIN role r          ON r.id = ur.role_id AND r.organization_id = $2
JOIN role_permission rp ON rp.role_id = r.id
JOIN permission p    ON p.id = rp.permission_id
WHERE ur.user_id = $1
ORDER BY 1;`
	return s.queryStrings(ctx, q, userID, orgID)
}

func (s *Store) ResolveRoles(ctx context.Context, userID, orgID string) ([]string, error) {
	const q = `
SELECT r.name
FROM user_role ur
JOIN role r ON r.id = ur.role_id
WHERE ur.user_id = $1 AND r.organization_id = $2
ORDER BY r.name;`
	return s.queryStrings(ctx, q, userID, orgID)
}

// HasRoleAnywhere: el usuario tiene un rol con ese nombre en cualquier
// organización activa. Base del override de Super Admin.
func (s *Store) HasRoleAnywhere(ctx context.Context, userID, roleName string) (bool, error) {
	const q = `
SELECT EXISTS (
  SELECT 1
  FROM user_role ur
  JOIN role r         ON r.id = ur.role_id
  JOIN organization o ON o.id = r.organization_id
  WHERE ur.user_id = $1 AND r.name = $2 AND o.active
)`
	var ok bool
	if err := s.pool.QueryRow(ctx, q, userID, roleName).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (s *Store) queryStrings(ctx context.Context, q string, args ...any) ([]string, error) {
	rows, err := s.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// ---------- ESCRITURAS ----------

func (s *Store) AssignRole(ctx context.Context, userID, orgID, roleName string) error {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return core.ErrInvalid
	}
	const q = `
INSERT INTO user_role (user_id, role_id)
SELECT $1, r.id FROM role r WHERE r.organization_id = $2 AND r.name = $3
ON CONFLICT DO NOTHING`
	tag, err := s.pool.Exec(ctx, q, userID, orgID, roleName)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		// rol inexistente o asignación ya presente; distinguimos el primero
		var exists bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM role WHERE organization_id = $1 AND name = $2)`,
			orgID, roleName).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return core.ErrNotFound
		}
	}
	return nil
}

func (s *Store) RevokeRole(ctx context.Context, userID, orgID, roleName string) error {
	const q = `
DELETE FROM user_role ur
USING role r
WHERE ur.role_id = r.id AND ur.user_id = $1 AND r.organization_id = $2 AND r.name = $3`
	_, err := s.pool.Exec(ctx, q, userID, orgID, strings.TrimSpace(roleName))
	return err
}

func (s *Store) GrantPermission(ctx context.Context, userID, orgID, permKey string) error {
	permKey = strings.TrimSpace(permKey)
	if permKey == "" {
		return core.ErrInvalid
	}
	const q = `
INSERT INTO user_permission (user_id, organization_id, permission_id)
SELECT $1, $2, p.id FROM permission p WHERE p.key = $3
ON CONFLICT DO NOTHING`
	tag, err := s.pool.Exec(ctx, q, userID, orgID, permKey)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := s.pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM permission WHERE key = $1)`, permKey).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return core.ErrNotFound
		}
	}
	return nil
}

func (s *Store) RevokePermission(ctx context.Context, userID, orgID, permKey string) error {
	const q = `
DELETE FROM user_permission up
USING permission p
WHERE up.permission_id = p.id AND up.user_id = $1 AND up.organization_id = $2 AND p.key = $3`
	_, err := s.pool.Exec(ctx, q, userID, orgID, strings.TrimSpace(permKey))
	return err
}

// AddRolePermissions cuelga permisos del catálogo a un rol. Keys repetidas o
// vacías se descartan; inserciones duplicadas no son error.
func (s *Store) AddRolePermissions(ctx context.Context, orgID, roleName string, permKeys []string) error {
	roleName = strings.TrimSpace(roleName)
	if roleName == "" {
		return core.ErrInvalid
	}

	var roleID string
	err := s.pool.QueryRow(ctx,
		`SELECT id FROM role WHERE organization_id = $1 AND name = $2`, orgID, roleName).Scan(&roleID)
	if err != nil {
		return mapErr(err)
	}

	clean := make([]string, 0, len(permKeys))
	seen := map[string]struct{}{}
	for _, k := range permKeys {
		k = strings.TrimSpace(k)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		clean = append(clean, k)
	}
	if len(clean) == 0 {
		return nil
	}

	b := &pgx.Batch{}
	for _, k := range clean {
		b.Queue(`
INSERT INTO role_permission (role_id, permission_id)
SELECT $1, p.id FROM permission p WHERE p.key = $2
ON CONFLICT DO NOTHING`, roleID, k)
	}
	br := s.pool.SendBatch(ctx, b)
	defer br.Close()
	for range clean {
		if _, err := br.Exec(); err != nil {
			return mapErr(err)
		}
	}
	return nil
}
