package directory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dropDatabas3/peoplehub/internal/cache/memory"
	"github.com/dropDatabas3/peoplehub/internal/store/core"
)

type fakeOrgStore struct {
	orgs  []core.Organization
	calls int
}

func (f *fakeOrgStore) GetOrganization(ctx context.Context, orgID string) (*core.Organization, error) {
	for i := range f.orgs {
		if f.orgs[i].ID == orgID {
			return &f.orgs[i], nil
		}
	}
	return nil, core.ErrNotFound
}

func (f *fakeOrgStore) ListUserOrganizations(ctx context.Context, userID string) ([]core.Organization, error) {
	f.calls++
	return f.orgs, nil
}

func (f *fakeOrgStore) HasMembership(ctx context.Context, userID, orgID string) (bool, error) {
	return true, nil
}

func TestOrganizationsForCachesResult(t *testing.T) {
	store := &fakeOrgStore{orgs: []core.Organization{{ID: "org-1", Name: "Acme", Active: true}}}
	cat := New(store, memory.New("test", time.Minute), time.Minute)

	ctx := context.Background()
	first, err := cat.OrganizationsFor(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := cat.OrganizationsFor(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, store.calls, "segunda lectura debe salir del cache")
}

func TestInvalidateForcesReload(t *testing.T) {
	store := &fakeOrgStore{orgs: []core.Organization{{ID: "org-1", Name: "Acme", Active: true}}}
	cat := New(store, memory.New("test", time.Minute), time.Minute)

	ctx := context.Background()
	_, err := cat.OrganizationsFor(ctx, "u1")
	require.NoError(t, err)

	cat.Invalidate(ctx, "u1")

	_, err = cat.OrganizationsFor(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, 2, store.calls)
}

func TestNilCacheGoesStraightToStore(t *testing.T) {
	store := &fakeOrgStore{}
	cat := New(store, nil, 0)

	_, err := cat.OrganizationsFor(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 1, store.calls)
}
