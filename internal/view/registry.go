package view

import "github.com/lasatanica/backoffice/internal/router"

type constructor func(router.Mount, Options) (router.View, error)

var screens = map[router.Route]constructor{
	router.Login:                 NewLoginView,
	router.Home:                  NewHomeView,
	router.Profile:               NewProfileView,
	router.Economy:               NewEconomyView,
	router.EconomyMovements:      NewMovementsView,
	router.EconomyMovementDetail: NewMovementDetailView,
	router.EconomyMovementCreate: NewMovementCreateView,
	router.Users:                 NewUsersView,
	router.UserDetail:            NewUserDetailView,
	router.UserCreate:            NewUserFormView,
	router.Organizations:         NewOrganizationsView,
	router.OrganizationDetail:    NewOrganizationDetailView,
	router.OrganizationCreate:    NewOrganizationFormView,
	router.Events:                NewEventsView,
	router.EventDetail:           NewEventDetailView,
	router.EventCreate:           NewEventFormView,
}

// Routes returns a factory for every screen, bound to opts. Logout is
// handled by the router itself and the statistics route has no screen.
func Routes(opts Options) map[router.Route]router.Factory {
	routes := make(map[router.Route]router.Factory, len(screens))
	for route, newView := range screens {
		routes[route] = func(m router.Mount) (router.View, error) {
			return newView(m, opts)
		}
	}
	return routes
}
