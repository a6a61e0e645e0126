package service

import (
	"time"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/pkg/backoffice/client"
)

// Container is the composition root: one client, one session, one
// permission cache, and every resource service sharing them.
type Container struct {
	Client      *client.Client
	Session     *session.Store
	Permissions *permission.Cache

	Auth          *AuthService
	Users         *UserService
	Economic      *EconomicService
	Accounting    *AccountingService
	Organizations *OrganizationService
	Home          *HomeService
	Events        *EventService
	Invoices      *InvoiceService
	Roles         *RoleService
	PermissionAPI *PermissionService
}

// NewContainer wires the services around c and store. A 401 seen by the
// client resets both the session and the permission cache.
func NewContainer(c *client.Client, store *session.Store) *Container {
	perms := &PermissionService{api: c}

	container := &Container{
		Client:        c,
		Session:       store,
		Permissions:   permission.NewCache(perms, store),
		Auth:          &AuthService{api: c},
		Users:         &UserService{api: c},
		Economic:      &EconomicService{api: c},
		Accounting:    &AccountingService{api: c},
		Organizations: &OrganizationService{api: c},
		Home:          &HomeService{api: c},
		Events:        &EventService{api: c, now: time.Now},
		Invoices:      &InvoiceService{api: c},
		Roles:         &RoleService{api: c},
		PermissionAPI: perms,
	}

	c.SetSession(boundSession{container})
	return container
}

// ResetSession clears the session and the permission cache together
func (c *Container) ResetSession() {
	c.Session.Clear()
	c.Permissions.Clear()
}

// Logout resets the session and drops the client's fallback token
func (c *Container) Logout() {
	c.ResetSession()
	c.Client.ClearToken()
}

// boundSession exposes the session to the client with Clear bound to the
// full reset
type boundSession struct {
	c *Container
}

func (b boundSession) Token() string { return b.c.Session.Token() }

func (b boundSession) Clear() { b.c.ResetSession() }
