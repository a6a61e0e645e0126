package router

import "github.com/lasatanica/backoffice/internal/permission"

// Route is a navigable screen path
type Route string

// Routes of the application
const (
	Login                 Route = "/login"
	Home                  Route = "/home"
	Profile               Route = "/profile"
	Economy               Route = "/economy"
	EconomyMovements      Route = "/economy_movements"
	EconomyStatistics     Route = "/economy_statistics"
	EconomyMovementDetail Route = "/economy_movement_detail"
	EconomyMovementCreate Route = "/economy_movement_create"
	Users                 Route = "/users"
	UserDetail            Route = "/user_detail"
	UserCreate            Route = "/user_create"
	Organizations         Route = "/organizations"
	OrganizationDetail    Route = "/organization_detail"
	OrganizationCreate    Route = "/organization_create"
	Events                Route = "/events"
	EventDetail           Route = "/event_detail"
	EventCreate           Route = "/event_create"
	Logout                Route = "/logout"
)

// AllRoutes lists every route constant
func AllRoutes() []Route {
	return []Route{
		Login, Home, Profile,
		Economy, EconomyMovements, EconomyStatistics, EconomyMovementDetail, EconomyMovementCreate,
		Users, UserDetail, UserCreate,
		Organizations, OrganizationDetail, OrganizationCreate,
		Events, EventDetail, EventCreate,
		Logout,
	}
}

// RequiredPermissions returns the permissions guarding route; holding any
// one of them grants access. An empty result means any authenticated user
// may enter.
func RequiredPermissions(route Route) []permission.Permission {
	switch route {
	case Home:
		return []permission.Permission{permission.Home}
	case Profile:
		return []permission.Permission{permission.Profile}
	case Users:
		return []permission.Permission{permission.UsersList}
	case UserCreate, UserDetail:
		return []permission.Permission{permission.UsersManage}
	case Organizations:
		return []permission.Permission{permission.OrganizationList}
	case OrganizationCreate, OrganizationDetail:
		return []permission.Permission{permission.OrganizationManage}
	case Events:
		return []permission.Permission{permission.EventsList}
	case EventCreate, EventDetail:
		return []permission.Permission{permission.EventsManage}
	case Economy, EconomyMovements:
		return []permission.Permission{permission.MovementsRead}
	case EconomyMovementDetail, EconomyMovementCreate:
		return []permission.Permission{permission.MovementsManage}
	case EconomyStatistics, Login, Logout:
		return nil
	default:
		return nil
	}
}
