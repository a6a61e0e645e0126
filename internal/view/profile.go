package view

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// ProfileView shows the current user and lets them change their password
type ProfileView struct {
	Base
	profile     *types.UserProfile
	permissions []permission.Permission
}

// NewProfileView creates the profile screen
func NewProfileView(m router.Mount, opts Options) (router.View, error) {
	return &ProfileView{Base: NewBase(m, opts)}, nil
}

// Show loads the profile and draws it
func (v *ProfileView) Show(ctx context.Context) error {
	profile, ok := SafeCall(ctx, &v.Base, v.Services.Auth.CurrentUser, "Cargando perfil...", "")
	if !ok {
		v.Fail("Error al cargar el perfil de usuario")
		v.Go(ctx, router.Home, nil)
		return nil
	}
	v.profile = profile

	if perms, err := v.Services.Permissions.Permissions(ctx); err == nil {
		v.permissions = perms
	}

	v.render(ctx)
	return nil
}

func (v *ProfileView) render(ctx context.Context) {
	p := v.profile
	v.Header(ctx, "Mi Perfil")
	v.Surface.Text(p.FullName())

	v.Surface.Fields(
		surface.Field{Label: "Email", Value: p.Email},
		surface.Field{Label: "Teléfono", Value: p.Phone},
		surface.Field{Label: "NIF/NIE", Value: p.NIFNIE},
		surface.Field{Label: "Fecha de nacimiento", Value: p.BirthDate.String()},
		surface.Field{Label: "Fecha de alta", Value: p.SignupDate.String()},
		surface.Field{Label: "Domicilio", Value: text(p.Address)},
		surface.Field{Label: "Población", Value: text(p.City)},
		surface.Field{Label: "Nº Seguridad Social", Value: text(p.SocialSecurity)},
	)
	v.Surface.Fields(
		surface.Field{Label: "Titular de la cuenta", Value: p.AccountHolder},
		surface.Field{Label: "IBAN", Value: p.IBAN},
	)
	if p.Parent1Name != nil || p.Parent2Name != nil {
		v.Surface.Fields(
			surface.Field{Label: "Progenitor 1", Value: text(p.Parent1Name)},
			surface.Field{Label: "Teléfono progenitor 1", Value: text(p.Parent1Phone)},
			surface.Field{Label: "Email progenitor 1", Value: text(p.Parent1Email)},
			surface.Field{Label: "Progenitor 2", Value: text(p.Parent2Name)},
			surface.Field{Label: "Teléfono progenitor 2", Value: text(p.Parent2Phone)},
			surface.Field{Label: "Email progenitor 2", Value: text(p.Parent2Email)},
		)
	}
	if p.Notes != nil {
		v.Surface.Text(*p.Notes)
	}

	if len(v.permissions) > 0 {
		names := make([]string, len(v.permissions))
		for i, perm := range v.permissions {
			names[i] = string(perm)
		}
		v.Surface.Fields(surface.Field{Label: "Permisos", Value: strings.Join(names, ", ")})
	}

	v.Surface.Actions(surface.Action{Key: "p", Label: "Cambiar contraseña", Run: v.passwordForm})
}

func (v *ProfileView) passwordForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title: "Cambiar contraseña",
		Fields: []surface.FormField{
			{Key: "current", Label: "Contraseña actual", Secret: true, Required: true},
			{Key: "new", Label: "Nueva contraseña", Secret: true, Required: true},
			{Key: "confirm", Label: "Confirmar contraseña", Secret: true, Required: true},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			v.changePassword(ctx, values["current"], values["new"], values["confirm"])
		},
		Cancel: v.render,
	})
}

func (v *ProfileView) changePassword(ctx context.Context, current, next, confirm string) {
	switch {
	case current == "" || next == "" || confirm == "":
		v.Fail("Todos los campos son obligatorios")
		return
	case next != confirm:
		v.Fail("Las contraseñas no coinciden")
		return
	}

	if utf8.RuneCountInString(next) < 6 {
		v.Fail("La contraseña debe tener al menos 6 caracteres")
		return
	}
	req := types.ChangePasswordRequest{OldPassword: current, NewPassword: next}
	if err := req.Validate(); err != nil {
		v.Fail(err.Error())
		return
	}

	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Auth.ChangePassword(ctx, req)
	}, "Cambiando contraseña...", "Contraseña cambiada correctamente") {
		v.render(ctx)
	}
}
