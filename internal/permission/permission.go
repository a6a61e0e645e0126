// Package permission caches the permission set of the logged-in user.
package permission

import (
	"context"
	"sort"
	"sync"
)

// Permission is an opaque permission identifier granted by the server
type Permission string

// Permissions the client checks
const (
	Home                  Permission = "home"
	Profile               Permission = "profile"
	ChangePassword        Permission = "change_password"
	UsersList             Permission = "users_list"
	UsersManage           Permission = "users_manage"
	OrganizationList      Permission = "organization_list"
	OrganizationManage    Permission = "organization_manage"
	EventsList            Permission = "events_list"
	EventsManage          Permission = "events_manage"
	RolesList             Permission = "roles_list"
	RolesManage           Permission = "roles_manage"
	RolesByUser           Permission = "roles_by_user"
	CategoryList          Permission = "category_list"
	AccountingDocsRead    Permission = "accounting_docs_read"
	AccountingDocsManage  Permission = "accounting_docs_manage"
	MovementsRead         Permission = "movements_read"
	MovementsManage       Permission = "movements_manage"
	MovementsManageReview Permission = "movements_manage_reviwed"
	InvoiceRead           Permission = "invoice_read"
	InvoiceWrite          Permission = "invoice_write"
	Read                  Permission = "lectura"
	Write                 Permission = "escritura"
)

// Fetcher loads the permission strings of the current user
type Fetcher interface {
	MyPermissions(ctx context.Context) ([]string, error)
}

// Identity identifies the session the permissions belong to
type Identity interface {
	Fingerprint() string
}

// Cache is the lazily loaded permission set
type Cache struct {
	fetcher  Fetcher
	identity Identity

	mu          sync.RWMutex
	set         map[Permission]struct{}
	loaded      bool
	fingerprint string
}

// NewCache creates an empty, not loaded cache. identity may be nil.
func NewCache(fetcher Fetcher, identity Identity) *Cache {
	return &Cache{
		fetcher:  fetcher,
		identity: identity,
		set:      map[Permission]struct{}{},
	}
}

// LoadUserPermissions fetches the permission set and replaces the cache
func (c *Cache) LoadUserPermissions(ctx context.Context) ([]Permission, error) {
	raw, err := c.fetcher.MyPermissions(ctx)
	if err != nil {
		return nil, err
	}

	set := make(map[Permission]struct{}, len(raw))
	perms := make([]Permission, 0, len(raw))
	for _, p := range raw {
		set[Permission(p)] = struct{}{}
		perms = append(perms, Permission(p))
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = set
	c.loaded = true
	c.fingerprint = c.currentFingerprint()
	return perms, nil
}

// Loaded reports whether the cache holds the permissions of the current
// session. A set left over from an earlier session is dropped.
func (c *Cache) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dropStaleLocked()
	return c.loaded
}

// HasPermission reports whether p is granted, loading the set first if needed
func (c *Cache) HasPermission(ctx context.Context, p Permission) (bool, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return false, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.set[p]
	return ok, nil
}

// HasAnyPermission reports whether at least one of ps is granted
func (c *Cache) HasAnyPermission(ctx context.Context, ps ...Permission) (bool, error) {
	for _, p := range ps {
		ok, err := c.HasPermission(ctx, p)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

// HasAllPermissions reports whether every one of ps is granted
func (c *Cache) HasAllPermissions(ctx context.Context, ps ...Permission) (bool, error) {
	for _, p := range ps {
		ok, err := c.HasPermission(ctx, p)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

// Permissions returns the granted permissions in sorted order
func (c *Cache) Permissions(ctx context.Context) ([]Permission, error) {
	if err := c.ensureLoaded(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Permission, 0, len(c.set))
	for p := range c.set {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Clear empties the cache and marks it not loaded
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.set = map[Permission]struct{}{}
	c.loaded = false
	c.fingerprint = ""
}

func (c *Cache) ensureLoaded(ctx context.Context) error {
	if c.Loaded() {
		return nil
	}
	_, err := c.LoadUserPermissions(ctx)
	return err
}

// dropStaleLocked empties a set loaded for another session
func (c *Cache) dropStaleLocked() {
	if c.loaded && c.fingerprint != c.currentFingerprint() {
		c.set = map[Permission]struct{}{}
		c.loaded = false
		c.fingerprint = ""
	}
}

func (c *Cache) currentFingerprint() string {
	if c.identity == nil {
		return ""
	}
	return c.identity.Fingerprint()
}
