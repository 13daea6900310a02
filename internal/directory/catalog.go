// Package directory expone el catálogo de organizaciones de un usuario con
// una capa corta de cache. Solo se cachean datos de directorio (nombres,
// logos, vencimientos); los grants RBAC jamás pasan por acá.
package directory

import (
	"context"
	"encoding/json"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dropDatabas3/peoplehub/internal/cache"
	"github.com/dropDatabas3/peoplehub/internal/observability/logger"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

const defaultTTL = 60 * time.Second

// Catalog resuelve las organizaciones de un usuario. Lecturas concurrentes
// de la misma key colapsan en una sola consulta al store.
type Catalog struct {
	store core.OrganizationStore
	cache cache.Cache
	ttl   time.Duration
	sf    singleflight.Group
}

func New(store core.OrganizationStore, c cache.Cache, ttl time.Duration) *Catalog {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Catalog{store: store, cache: c, ttl: ttl}
}

func key(userID string) string { return "dir:orgs:" + userID }

// OrganizationsFor devuelve las organizaciones activas del usuario. Cache
// miss o cache caído degradan a consulta directa.
func (c *Catalog) OrganizationsFor(ctx context.Context, userID string) ([]core.Organization, error) {
	if c.cache != nil {
		if raw, err := c.cache.Get(ctx, key(userID)); err == nil {
			var orgs []core.Organization
			if err := json.Unmarshal(raw, &orgs); err == nil {
				return orgs, nil
			}
			// entrada corrupta: se bota y se sigue al store
			_ = c.cache.Delete(ctx, key(userID))
		}
	}

	v, err, _ := c.sf.Do(userID, func() (any, error) {
		orgs, err := c.store.ListUserOrganizations(ctx, userID)
		if err != nil {
			return nil, err
		}
		if c.cache != nil {
			if raw, err := json.Marshal(orgs); err == nil {
				if err := c.cache.Set(ctx, key(userID), raw, c.ttl); err != nil {
					logger.From(ctx).Warn("directory: cache set falló",
						logger.UserID(userID), logger.Err(err))
				}
			}
		}
		return orgs, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]core.Organization), nil
}

// Invalidate bota la entrada del usuario. Se llama tras mutaciones de
// membresía o de organización.
func (c *Catalog) Invalidate(ctx context.Context, userID string) {
	if c.cache == nil {
		return
	}
	if err := c.cache.Delete(ctx, key(userID)); err != nil {
		logger.From(ctx).Warn("directory: invalidate falló",
			logger.UserID(userID), logger.Err(err))
	}
}
