package view

import (
	"context"
	"fmt"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

var reminders = []string{
	"Revisar movimientos pendientes de aprobación",
	"Actualizar datos de contacto de usuarios",
	"Generar informe mensual de ingresos y gastos",
}

type quickAction struct {
	key        string
	label      string
	route      router.Route
	permission permission.Permission
}

var quickActions = []quickAction{
	{"m", "Ver Movimientos", router.EconomyMovements, permission.MovementsRead},
	{"u", "Gestionar Usuarios", router.Users, permission.UsersList},
	{"e", "Ver Economía", router.Economy, permission.MovementsRead},
	{"o", "Organizaciones", router.Organizations, permission.OrganizationList},
}

// HomeView greets the user and lists pending notifications
type HomeView struct {
	Base
	notifications []string
}

// NewHomeView creates the landing screen
func NewHomeView(m router.Mount, opts Options) (router.View, error) {
	return &HomeView{Base: NewBase(m, opts)}, nil
}

// Show loads the notifications and draws the screen
func (v *HomeView) Show(ctx context.Context) error {
	result, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.Notifications, error) {
		return v.Services.Home.Notifications(ctx)
	}, "Cargando notificaciones...", "")
	if ok {
		v.notifications = result.Notifications
	} else {
		v.notifications = []string{"Error al cargar notificaciones del servidor"}
	}

	v.render(ctx)
	return nil
}

func (v *HomeView) render(ctx context.Context) {
	v.Header(ctx, "Inicio")

	name := v.Session.UserName()
	if name == "" {
		name = "Usuario"
	}
	v.Surface.Text(fmt.Sprintf("¡Bienvenido, %s!", name))

	rows := make([][]string, 0, len(v.notifications))
	for _, n := range v.notifications {
		rows = append(rows, []string{n})
	}
	if len(rows) == 0 {
		rows = append(rows, []string{"No hay notificaciones"})
	}
	v.Surface.Table(surface.Table{
		Headers: []string{"Notificaciones"},
		Rows:    rows,
		Select:  v.dismiss,
	})

	reminderRows := make([][]string, len(reminders))
	for i, r := range reminders {
		reminderRows[i] = []string{r}
	}
	v.Surface.Table(surface.Table{Headers: []string{"Recordatorios"}, Rows: reminderRows})

	var actions []surface.Action
	for _, qa := range quickActions {
		ok, err := v.Services.Permissions.HasPermission(ctx, qa.permission)
		if err != nil || !ok {
			continue
		}
		route := qa.route
		actions = append(actions, surface.Action{
			Key:   qa.key,
			Label: qa.label,
			Run:   func(ctx context.Context) { v.Go(ctx, route, nil) },
		})
	}
	if len(actions) > 0 {
		v.Surface.Actions(actions...)
	}
}

// dismiss removes a notification from the screen
func (v *HomeView) dismiss(ctx context.Context, row int) {
	if row < 0 || row >= len(v.notifications) {
		return
	}
	v.notifications = append(v.notifications[:row:row], v.notifications[row+1:]...)
	v.render(ctx)
}
