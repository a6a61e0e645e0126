package view

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// UserFilter narrows the users list on the client
type UserFilter struct {
	Search string
	Status string
}

// Match reports whether u passes the filter. Search matches name, surname,
// NIF/NIE and email case-insensitively.
func (f UserFilter) Match(u types.UserShortView) bool {
	if f.Status != "" && u.Status != f.Status {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	for _, s := range []string{u.Name, u.Surname, u.NIFNIE, u.Email, u.Name + " " + u.Surname} {
		if strings.Contains(strings.ToLower(s), q) {
			return true
		}
	}
	return false
}

func statusLabel(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}

// UsersView lists users with client-side search
type UsersView struct {
	Base
	all      []types.UserShortView
	filtered []types.UserShortView
	filter   UserFilter
}

// NewUsersView creates the users list
func NewUsersView(m router.Mount, opts Options) (router.View, error) {
	return &UsersView{Base: NewBase(m, opts)}, nil
}

// Show loads the users and draws the list
func (v *UsersView) Show(ctx context.Context) error {
	v.load(ctx)
	v.render(ctx)
	return nil
}

func (v *UsersView) load(ctx context.Context) {
	users, _ := SafeCall(ctx, &v.Base, v.Services.Users.List, "Cargando usuarios...", "")
	sort.SliceStable(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	v.all = users
	v.apply()
}

func (v *UsersView) apply() {
	v.filtered = v.filtered[:0]
	for _, u := range v.all {
		if v.filter.Match(u) {
			v.filtered = append(v.filtered, u)
		}
	}
}

func (v *UsersView) render(ctx context.Context) {
	v.Header(ctx, "Gestión de Usuarios")

	actions := []surface.Action{
		{Key: "s", Label: "Buscar", Run: v.searchForm},
	}
	if v.Can(ctx, permission.UsersManage) {
		actions = append(actions,
			surface.Action{Key: "n", Label: "Nuevo usuario", Run: func(ctx context.Context) { v.Go(ctx, router.UserCreate, nil) }},
			surface.Action{Key: "l", Label: "Generar Link de Invitación", Run: v.invitation},
		)
	}
	v.Surface.Actions(actions...)

	rows := make([][]string, len(v.filtered))
	for i, u := range v.filtered {
		rows[i] = []string{
			strconv.Itoa(u.ID),
			u.Name + " " + u.Surname,
			u.NIFNIE,
			u.Email,
			u.Phone,
			statusLabel(u.Active()),
			yesNo(types.Deref(u.CRE) == types.CREStatusComplete),
			yesNo(types.Deref(u.RGCRE) == types.RGCREStatusComplete),
		}
	}
	v.Surface.Text(fmt.Sprintf("%d de %d usuarios", len(v.filtered), len(v.all)))
	v.Surface.Table(surface.Table{
		Headers: []string{"ID", "Nombre", "NIF/NIE", "Email", "Teléfono", "Estado", "CRE", "RGCRE"},
		Rows:    rows,
		Select: func(ctx context.Context, row int) {
			if row >= 0 && row < len(v.filtered) {
				v.Go(ctx, router.UserDetail, router.Params{"user_id": v.filtered[row].ID})
			}
		},
	})
}

func (v *UsersView) searchForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title: "Buscar usuarios",
		Fields: []surface.FormField{
			{Key: "search", Label: "Nombre, NIF/NIE o email", Value: v.filter.Search},
			{Key: "status", Label: "Estado", Value: v.filter.Status, Options: []surface.Option{
				{Label: "Todos", Value: ""},
				{Label: "Activo", Value: types.UserStatusActive},
				{Label: "Inactivo", Value: types.UserStatusInactive},
			}},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			v.filter = UserFilter{Search: values["search"], Status: values["status"]}
			v.apply()
			v.render(ctx)
		},
		Cancel: v.render,
	})
}

func (v *UsersView) invitation(ctx context.Context) {
	link, ok := SafeCall(ctx, &v.Base, v.Services.Users.CreateLink, "Generando enlace de invitación...", "")
	if !ok {
		return
	}

	expires := "No disponible"
	if raw := link["expires_at"]; raw != "" {
		var ts types.DateTime
		if err := ts.UnmarshalJSON([]byte(strconv.Quote(raw))); err == nil {
			expires = ts.Format("02/01/2006 a las 15:04")
		} else {
			expires = raw
		}
	}
	url := link["url"]
	if url == "" {
		url = "Error al generar enlace"
	}
	v.Surface.Fields(
		surface.Field{Label: "Enlace de invitación", Value: url},
		surface.Field{Label: "Token", Value: link["token"]},
		surface.Field{Label: "Caduca", Value: expires},
	)
}
