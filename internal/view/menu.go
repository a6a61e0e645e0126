package view

import (
	"context"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
)

// NavItem is one entry of the navigation menu
type NavItem struct {
	Key        string
	Label      string
	Route      router.Route
	Permission permission.Permission
}

// NavItems lists the menu entries in display order, logout excluded
func NavItems() []NavItem {
	return []NavItem{
		{Key: "1", Label: "Inicio", Route: router.Home, Permission: permission.Home},
		{Key: "2", Label: "Perfil", Route: router.Profile, Permission: permission.Profile},
		{Key: "3", Label: "Economía", Route: router.Economy, Permission: permission.MovementsRead},
		{Key: "4", Label: "Usuarios", Route: router.Users, Permission: permission.UsersList},
		{Key: "5", Label: "Organizaciones", Route: router.Organizations, Permission: permission.OrganizationList},
		{Key: "6", Label: "Eventos", Route: router.Events, Permission: permission.EventsList},
	}
}

// LogoutItem closes the session
var LogoutItem = NavItem{Key: "0", Label: "Cerrar Sesión", Route: router.Logout}

// Menu returns the entries the user may open followed by logout. Entries
// whose check fails are hidden; the menu is empty without a session.
func (b *Base) Menu(ctx context.Context) []surface.Action {
	if b.Session == nil || !b.Session.IsAuthenticated() {
		return nil
	}

	var actions []surface.Action
	for _, item := range NavItems() {
		ok, err := b.Services.Permissions.HasPermission(ctx, item.Permission)
		if err != nil || !ok {
			continue
		}
		actions = append(actions, b.navAction(item))
	}
	return append(actions, b.navAction(LogoutItem))
}

func (b *Base) navAction(item NavItem) surface.Action {
	route := item.Route
	return surface.Action{
		Key:   item.Key,
		Label: item.Label,
		Run:   func(ctx context.Context) { b.Go(ctx, route, nil) },
	}
}
