package view

import (
	"context"
	"fmt"
	"strings"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/session"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// LoginView asks for credentials and opens the session
type LoginView struct {
	Base
}

// NewLoginView creates the login screen
func NewLoginView(m router.Mount, opts Options) (router.View, error) {
	return &LoginView{Base: NewBase(m, opts)}, nil
}

// Show draws the login form
func (v *LoginView) Show(ctx context.Context) error {
	v.Surface.Reset("Iniciar Sesión")
	v.Surface.Text("La Satánica · Back-office")
	v.Surface.Form(surface.Form{
		Title: "Credenciales",
		Fields: []surface.FormField{
			{Key: "email", Label: "Email", Placeholder: "usuario@dominio.es", Required: true},
			{Key: "password", Label: "Contraseña", Secret: true, Required: true},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			v.login(ctx, values["email"], values["password"])
		},
	})
	return nil
}

func (v *LoginView) login(ctx context.Context, email, password string) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		v.Fail("Email y contraseña son obligatorios")
		return
	}

	credentials := types.UserLogin{Email: email, Password: password}
	token, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.Token, error) {
		return v.Services.Auth.Login(ctx, credentials)
	}, "Iniciando sesión...", "¡Bienvenido!")
	if !ok {
		return
	}

	claims, err := session.DecodeToken(token.AccessToken)
	if err == nil {
		err = v.Session.SetSession(*token, claims)
	}
	if err != nil {
		v.Fail(fmt.Sprintf("Error procesando token: %v", err))
		return
	}
	v.Services.Client.SetToken(token.AccessToken)

	SafeCall(ctx, &v.Base, func(ctx context.Context) ([]permission.Permission, error) {
		return v.Services.Permissions.LoadUserPermissions(ctx)
	}, "Cargando permisos...", "")

	v.Go(ctx, router.Home, nil)
}
