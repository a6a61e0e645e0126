package permission

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeFetcher struct {
	perms []string
	err   error
	calls int
}

func (f *fakeFetcher) MyPermissions(ctx context.Context) ([]string, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.perms, nil
}

type fakeIdentity struct {
	fp string
}

func (i *fakeIdentity) Fingerprint() string { return i.fp }

func TestNewCacheNotLoaded(t *testing.T) {
	c := NewCache(&fakeFetcher{}, nil)
	assert.False(t, c.Loaded())
}

func TestHasPermissionLazyLoad(t *testing.T) {
	f := &fakeFetcher{perms: []string{"home", "users_list"}}
	c := NewCache(f, nil)

	ok, err := c.HasPermission(context.Background(), UsersList)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasPermission(context.Background(), UsersManage)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.Equal(t, 1, f.calls)
}

func TestLoadUserPermissionsOverwrites(t *testing.T) {
	f := &fakeFetcher{perms: []string{"home"}}
	c := NewCache(f, nil)

	_, err := c.LoadUserPermissions(context.Background())
	require.NoError(t, err)

	f.perms = []string{"profile"}
	perms, err := c.LoadUserPermissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Permission{Profile}, perms)

	ok, _ := c.HasPermission(context.Background(), Home)
	assert.False(t, ok)
	assert.Equal(t, 2, f.calls)
}

func TestHasAnyPermissionORSemantics(t *testing.T) {
	c := NewCache(&fakeFetcher{perms: []string{"organization_manage"}}, nil)

	ok, err := c.HasAnyPermission(context.Background(), OrganizationList, OrganizationManage)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasAnyPermission(context.Background(), EventsList, EventsManage)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = c.HasAnyPermission(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHasAllPermissions(t *testing.T) {
	c := NewCache(&fakeFetcher{perms: []string{"invoice_read", "invoice_write"}}, nil)

	ok, err := c.HasAllPermissions(context.Background(), InvoiceRead, InvoiceWrite)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = c.HasAllPermissions(context.Background(), InvoiceRead, AccountingDocsRead)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestFetchErrorPropagates(t *testing.T) {
	f := &fakeFetcher{err: fmt.Errorf("boom")}
	c := NewCache(f, nil)

	ok, err := c.HasPermission(context.Background(), Home)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, c.Loaded())
}

func TestClear(t *testing.T) {
	f := &fakeFetcher{perms: []string{"home"}}
	c := NewCache(f, nil)
	_, err := c.LoadUserPermissions(context.Background())
	require.NoError(t, err)

	c.Clear()
	assert.False(t, c.Loaded())
	c.Clear()
	assert.False(t, c.Loaded())

	ok, err := c.HasPermission(context.Background(), Home)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 2, f.calls)
}

func TestFingerprintChangeForcesReload(t *testing.T) {
	f := &fakeFetcher{perms: []string{"home"}}
	id := &fakeIdentity{fp: "session-a"}
	c := NewCache(f, id)

	_, err := c.HasPermission(context.Background(), Home)
	require.NoError(t, err)
	assert.True(t, c.Loaded())

	id.fp = "session-b"
	assert.False(t, c.Loaded())

	f.perms = []string{"profile"}
	ok, err := c.HasPermission(context.Background(), Home)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 2, f.calls)
}

func TestStaleSetIsEmptied(t *testing.T) {
	f := &fakeFetcher{perms: []string{"home", "users_list"}}
	id := &fakeIdentity{fp: "session-a"}
	c := NewCache(f, id)

	_, err := c.LoadUserPermissions(context.Background())
	require.NoError(t, err)
	assert.Len(t, c.set, 2)

	id.fp = ""
	assert.False(t, c.Loaded())
	assert.Empty(t, c.set)

	f.err = fmt.Errorf("unauthorized")
	ok, err := c.HasPermission(context.Background(), Home)
	assert.Error(t, err)
	assert.False(t, ok)
	assert.False(t, c.Loaded())
	assert.Empty(t, c.set)
}

func TestPermissionsSorted(t *testing.T) {
	c := NewCache(&fakeFetcher{perms: []string{"users_list", "home", "events_list"}}, nil)

	perms, err := c.Permissions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Permission{EventsList, Home, UsersList}, perms)
}
