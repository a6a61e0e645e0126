// Package view holds the back-office screens. Every screen draws through a
// surface.Surface and reaches the API only through SafeCall.
package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/lasatanica/backoffice/internal/errors"
	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/service"
	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/internal/surface"
)

// DefaultLoadingLabel is shown when a call names no label
const DefaultLoadingLabel = "Cargando..."

// Loading shows one loading indicator at a time. Show and Hide are
// idempotent.
type Loading struct {
	surface surface.Surface

	mu     sync.Mutex
	active bool
}

// NewLoading creates a loading controller drawing on s
func NewLoading(s surface.Surface) *Loading {
	return &Loading{surface: s}
}

// Show displays label unless an indicator is already up
func (l *Loading) Show(label string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.active {
		return
	}
	if label == "" {
		label = DefaultLoadingLabel
	}
	l.active = true
	l.surface.ShowLoading(label)
}

// Hide removes the indicator if it is up
func (l *Loading) Hide() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.active {
		return
	}
	l.active = false
	l.surface.HideLoading()
}

// Active reports whether the indicator is up
func (l *Loading) Active() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.active
}

// Options tune the screens
type Options struct {
	// DownloadDir receives downloaded invoices and documents
	DownloadDir string
	// Now is the clock used for default dates
	Now func() time.Time
}

// Base is embedded by every screen
type Base struct {
	Surface  surface.Surface
	Router   router.Navigator
	Services *service.Container
	Session  *session.Store
	Params   router.Params
	Loading  *Loading
	Options  Options
}

// NewBase builds the shared part of a screen from its mount
func NewBase(m router.Mount, opts Options) Base {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return Base{
		Surface:  m.Surface,
		Router:   m.Router,
		Services: m.Services,
		Session:  m.Session,
		Params:   m.Params,
		Loading:  NewLoading(m.Surface),
		Options:  opts,
	}
}

// Close hides a loading indicator left up by the screen
func (b *Base) Close() {
	b.Loading.Hide()
}

// Notify shows a notification
func (b *Base) Notify(level surface.Level, message string) {
	b.Surface.Notify(level, message)
}

// Success shows a success notification
func (b *Base) Success(message string) {
	b.Surface.Notify(surface.LevelSuccess, message)
}

// Fail shows an error notification
func (b *Base) Fail(message string) {
	b.Surface.Notify(surface.LevelError, message)
}

// Go navigates to route
func (b *Base) Go(ctx context.Context, route router.Route, params router.Params) router.Outcome {
	return b.Router.NavigateTo(ctx, route, params)
}

// Can reports whether the user holds p. A failed lookup counts as no.
func (b *Base) Can(ctx context.Context, p permission.Permission) bool {
	ok, err := b.Services.Permissions.HasPermission(ctx, p)
	return err == nil && ok
}

// HandleError reports err. A 401 has already cleared the session, so the
// router sends the user to login on the next navigation.
func (b *Base) HandleError(ctx context.Context, err error) {
	ReportError(b.Surface, err)
}

// ReportError shows the localized message for err
func ReportError(n surface.Notifier, err error) {
	if err == nil {
		return
	}
	n.Notify(surface.LevelError, Describe(err))
}

// Describe maps an error to the message shown to the user
func Describe(err error) string {
	apiErr, ok := errors.As(err)
	if !ok {
		return fmt.Sprintf("Error inesperado: %v", err)
	}

	switch apiErr.Kind {
	case errors.KindAuthentication:
		if apiErr.Forbidden {
			return "Acceso denegado: permisos insuficientes"
		}
		return "Sesión expirada. Redirigiendo al login..."
	case errors.KindNetwork:
		return fmt.Sprintf("Error de conexión: %s", reason(apiErr))
	case errors.KindValidation:
		return fmt.Sprintf("Datos no válidos: %s", reason(apiErr))
	case errors.KindNotFound:
		return "Recurso no encontrado"
	case errors.KindServer:
		return fmt.Sprintf("Error del servidor: %s", reason(apiErr))
	default:
		return fmt.Sprintf("Error: %s", reason(apiErr))
	}
}

// reason is the part of an API error worth showing: the server detail,
// else the cause, else the message
func reason(e *errors.Error) string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Cause != nil:
		return e.Cause.Error()
	default:
		return e.Message
	}
}

// SafeCall runs fn with the loading indicator up. On success it optionally
// notifies success and returns the result; on failure it reports the error
// and returns the zero value and false.
func SafeCall[T any](ctx context.Context, b *Base, fn func(ctx context.Context) (T, error), loading, success string) (T, bool) {
	b.Loading.Show(loading)
	result, err := fn(ctx)
	b.Loading.Hide()

	if err != nil {
		var zero T
		b.HandleError(ctx, err)
		return zero, false
	}
	if success != "" {
		b.Success(success)
	}
	return result, true
}

// SafeDo is SafeCall for operations without a result
func SafeDo(ctx context.Context, b *Base, fn func(ctx context.Context) error, loading, success string) bool {
	_, ok := SafeCall(ctx, b, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	}, loading, success)
	return ok
}

// Header resets the surface for a screen titled title and draws the menu
func (b *Base) Header(ctx context.Context, title string) {
	b.Surface.Reset(title)
	if menu := b.Menu(ctx); len(menu) > 0 {
		b.Surface.Actions(menu...)
	}
}

// Confirm draws a yes/no question and runs yes when confirmed
func (b *Base) Confirm(question string, yes func(ctx context.Context)) {
	b.Surface.Form(surface.Form{
		Title: "Confirmar",
		Fields: []surface.FormField{{
			Key:   "confirm",
			Label: question,
			Value: "no",
			Options: []surface.Option{
				{Label: "Sí", Value: "si"},
				{Label: "No", Value: "no"},
			},
		}},
		Submit: func(ctx context.Context, values map[string]string) {
			if values["confirm"] == "si" {
				yes(ctx)
			}
		},
	})
}

// RequireID reads an integer parameter. When it is missing the user is
// told why and sent back to fallback.
func (b *Base) RequireID(ctx context.Context, key, missing string, fallback router.Route) (int, bool) {
	id, ok := b.Params.Int(key)
	if ok && id > 0 {
		return id, true
	}
	b.Fail(missing)
	b.Go(ctx, fallback, nil)
	return 0, false
}
