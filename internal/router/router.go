// Package router decides, for every navigation attempt, whether a screen
// may be shown and mounts it.
package router

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/lasatanica/backoffice/internal/log"
	"github.com/lasatanica/backoffice/internal/service"
	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/internal/telemetry"
)

// User-facing messages
const (
	MsgDenied       = "No tienes permisos para acceder a esta página."
	MsgNotFound     = "Ruta no encontrada: %s"
	MsgMountFailure = "Error al cargar la vista: %v"
)

// Params are passed verbatim to the mounted view
type Params map[string]any

// Int returns an integer parameter
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

// String returns a string parameter
func (p Params) String(key string) (string, bool) {
	v, ok := p[key].(string)
	return v, ok
}

// View is a mounted screen
type View interface {
	Show(ctx context.Context) error
	Close()
}

// Navigator is what views use to move between screens
type Navigator interface {
	NavigateTo(ctx context.Context, route Route, params Params) Outcome
	CurrentRoute() Route
}

// Mount carries everything a view needs to construct itself
type Mount struct {
	Surface  surface.Surface
	Router   Navigator
	Services *service.Container
	Session  *session.Store
	Params   Params
}

// Factory constructs a view
type Factory func(m Mount) (View, error)

// Outcome is the result of a navigation attempt
type Outcome int

const (
	Mounted Outcome = iota
	RedirectedToLogin
	Denied
	NotFound
	Failed
	LoggedOut
	// Superseded means the view mounted but navigated elsewhere while
	// showing
	Superseded
)

// String returns the outcome name
func (o Outcome) String() string {
	switch o {
	case Mounted:
		return "mounted"
	case RedirectedToLogin:
		return "redirected_to_login"
	case Denied:
		return "denied"
	case NotFound:
		return "not_found"
	case Failed:
		return "failed"
	case LoggedOut:
		return "logged_out"
	case Superseded:
		return "superseded"
	default:
		return "unknown"
	}
}

// State is the router state
type State int

const (
	NoView State = iota
	ViewMounted
)

// String returns the state name
func (s State) String() string {
	if s == ViewMounted {
		return "view_mounted"
	}
	return "no_view"
}

// Config configures a Router
type Config struct {
	Surface  surface.Surface
	Services *service.Container
	Routes   map[Route]Factory
	// ReportError shows a failed permission fetch; defaults to a plain
	// error notification
	ReportError func(ctx context.Context, err error)
	// OnNavigate, when set, sees the outcome of every navigation
	OnNavigate func(route Route, outcome Outcome)
	Logger     *log.Logger
}

// Router is the navigation state machine
type Router struct {
	surface     surface.Surface
	services    *service.Container
	routes      map[Route]Factory
	reportError func(ctx context.Context, err error)
	onNavigate  func(route Route, outcome Outcome)
	logger      *log.Logger

	mu      sync.RWMutex
	current View
	route   Route
}

// New creates a router with no mounted view
func New(cfg Config) (*Router, error) {
	if cfg.Surface == nil {
		return nil, fmt.Errorf("surface is required")
	}
	if cfg.Services == nil {
		return nil, fmt.Errorf("services are required")
	}

	r := &Router{
		surface:     cfg.Surface,
		services:    cfg.Services,
		routes:      make(map[Route]Factory, len(cfg.Routes)),
		reportError: cfg.ReportError,
		onNavigate:  cfg.OnNavigate,
		logger:      cfg.Logger,
	}
	for route, f := range cfg.Routes {
		r.routes[route] = f
	}
	if r.logger == nil {
		r.logger = log.DefaultLogger()
	}
	r.logger = r.logger.With("component", "router")
	if r.reportError == nil {
		r.reportError = func(ctx context.Context, err error) {
			r.surface.Notify(surface.LevelError, fmt.Sprintf("Error: %v", err))
		}
	}
	return r, nil
}

// Register adds or replaces the factory for route
func (r *Router) Register(route Route, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[route] = f
}

// Routes lists the registered routes in sorted order
func (r *Router) Routes() []Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Route, 0, len(r.routes))
	for route := range r.routes {
		out = append(out, route)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// CurrentRoute returns the route of the mounted view, empty when none
func (r *Router) CurrentRoute() Route {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.route
}

// State returns whether a view is mounted
func (r *Router) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current == nil {
		return NoView
	}
	return ViewMounted
}

// NavigateTo runs the guard sequence for route and mounts its view
func (r *Router) NavigateTo(ctx context.Context, route Route, params Params) Outcome {
	ctx, span := telemetry.StartNavigationSpan(ctx, string(route))
	outcome := r.navigate(ctx, route, params)
	telemetry.EndNavigationSpan(span, outcome.String())
	if r.onNavigate != nil {
		r.onNavigate(route, outcome)
	}
	return outcome
}

func (r *Router) navigate(ctx context.Context, route Route, params Params) Outcome {
	r.logger.DebugContext(ctx, "navigate", "route", string(route))

	if route == Logout {
		r.services.Logout()
		r.teardown()
		r.NavigateTo(ctx, Login, nil)
		return LoggedOut
	}

	if route != Login && !r.services.Session.IsAuthenticated() {
		r.NavigateTo(ctx, Login, nil)
		return RedirectedToLogin
	}

	if route != Login {
		if required := RequiredPermissions(route); len(required) > 0 {
			allowed, err := r.services.Permissions.HasAnyPermission(ctx, required...)
			if err != nil {
				r.logger.WithError(err).WarnContext(ctx, "permission check failed", "route", string(route))
				r.reportError(ctx, err)
				if !r.services.Session.IsAuthenticated() {
					r.NavigateTo(ctx, Login, nil)
					return RedirectedToLogin
				}
				return Denied
			}
			if !allowed {
				r.surface.Notify(surface.LevelError, MsgDenied)
				return Denied
			}
		}
	}

	r.mu.RLock()
	factory, ok := r.routes[route]
	r.mu.RUnlock()
	if !ok {
		r.surface.Notify(surface.LevelError, fmt.Sprintf(MsgNotFound, route))
		return NotFound
	}

	if err := r.mount(ctx, route, factory, params); err != nil {
		r.logger.WithError(err).ErrorContext(ctx, "view failed to load", "route", string(route))
		r.surface.Notify(surface.LevelError, fmt.Sprintf(MsgMountFailure, err))
		return Failed
	}
	if r.CurrentRoute() != route {
		return Superseded
	}
	return Mounted
}

func (r *Router) mount(ctx context.Context, route Route, factory Factory, params Params) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%v", p)
		}
		if err != nil {
			r.teardownIf(route)
		}
	}()

	r.teardown()

	view, err := factory(Mount{
		Surface:  r.surface,
		Router:   r,
		Services: r.services,
		Session:  r.services.Session,
		Params:   params,
	})
	if err != nil {
		return err
	}
	if view == nil {
		return fmt.Errorf("no view for %s", route)
	}

	r.mu.Lock()
	r.current = view
	r.route = route
	r.mu.Unlock()

	return view.Show(ctx)
}

// teardown closes the mounted view, if any
func (r *Router) teardown() {
	r.mu.Lock()
	view := r.current
	r.current = nil
	r.route = ""
	r.mu.Unlock()

	if view != nil {
		view.Close()
	}
}

// teardownIf closes the mounted view only if it is still the one for route;
// Show may already have navigated elsewhere
func (r *Router) teardownIf(route Route) {
	r.mu.RLock()
	same := r.route == route
	r.mu.RUnlock()
	if same {
		r.teardown()
	}
}

var _ Navigator = (*Router)(nil)

// Guard reports whether the current user may enter route, without
// navigating. Used to filter menus.
func (r *Router) Guard(ctx context.Context, route Route) (bool, error) {
	required := RequiredPermissions(route)
	if len(required) == 0 {
		return true, nil
	}
	return r.services.Permissions.HasAnyPermission(ctx, required...)
}
