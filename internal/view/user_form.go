package view

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// parseBirthDate turns DD/MM/YYYY into the API's YYYY-MM-DD
func parseBirthDate(s string) (string, error) {
	t, err := time.Parse("02/01/2006", strings.TrimSpace(s))
	if err != nil {
		return "", userError("Formato de fecha inválido. Use DD/MM/YYYY")
	}
	return t.Format(isoDate), nil
}

func creID(complete bool) int {
	if complete {
		return types.CREStatusCompleteID
	}
	return types.CREStatusIncompleteID
}

func rgcreID(complete bool) int {
	if complete {
		return types.RGCREStatusCompleteID
	}
	return types.RGCREStatusIncompleteID
}

// parentFields are the optional guardian inputs shared by create and edit
func parentFields(values map[string]string) []surface.FormField {
	var fields []surface.FormField
	for _, n := range []string{"1", "2"} {
		fields = append(fields,
			surface.FormField{Key: "parent" + n + "_name", Label: "Nombre progenitor " + n, Value: values["parent"+n+"_name"]},
			surface.FormField{Key: "parent" + n + "_id", Label: "NIF/NIE progenitor " + n, Value: values["parent"+n+"_id"], Validate: validator(types.ValidateNIFNIE)},
			surface.FormField{Key: "parent" + n + "_phone", Label: "Teléfono progenitor " + n, Value: values["parent"+n+"_phone"], Validate: validator(types.ValidatePhone)},
			surface.FormField{Key: "parent" + n + "_email", Label: "Email progenitor " + n, Value: values["parent"+n+"_email"], Validate: validator(types.ValidateEmail)},
		)
	}
	return fields
}

// BuildUser turns the create form into a request
func BuildUser(values map[string]string) (types.UserCreate, error) {
	if values["password"] != values["confirm_password"] {
		return types.UserCreate{}, userError("Las contraseñas no coinciden")
	}
	birth, err := parseBirthDate(values["birth_date"])
	if err != nil {
		return types.UserCreate{}, err
	}

	u := types.NewUserCreate()
	u.Nombre = strings.TrimSpace(values["name"])
	u.Apellidos = strings.TrimSpace(values["surname"])
	u.NIFNIE = strings.ToUpper(strings.TrimSpace(values["nif_nie"]))
	u.Password = values["password"]
	u.FechaNacimiento = birth
	u.Domicilio = optional(values["address"])
	u.Poblacion = optional(values["city"])
	u.Telefono = strings.TrimSpace(values["phone"])
	u.Email = strings.TrimSpace(values["email"])
	u.TitularCuenta = strings.TrimSpace(values["account_holder"])
	u.IBAN = strings.ToUpper(strings.ReplaceAll(values["iban"], " ", ""))
	u.NumeroSS = optional(values["social_security"])
	u.NombreProgenitor1 = optional(values["parent1_name"])
	u.NombreProgenitor2 = optional(values["parent2_name"])
	u.NIFNIEProgenitor1 = optional(values["parent1_id"])
	u.NIFNIEProgenitor2 = optional(values["parent2_id"])
	u.TelefonoProgenitor1 = optional(values["parent1_phone"])
	u.TelefonoProgenitor2 = optional(values["parent2_phone"])
	u.EmailProgenitor1 = optional(values["parent1_email"])
	u.EmailProgenitor2 = optional(values["parent2_email"])
	u.Consideraciones = optional(values["notes"])
	u.IndCRE = creID(values["cre"] == "true")
	u.IndRGCRE = rgcreID(values["rgcre"] == "true")

	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

// UserFormView creates a user
type UserFormView struct {
	Base
}

// NewUserFormView creates the user creation form
func NewUserFormView(m router.Mount, opts Options) (router.View, error) {
	return &UserFormView{Base: NewBase(m, opts)}, nil
}

func (v *UserFormView) back(ctx context.Context) {
	v.Go(ctx, router.Users, nil)
}

// Show draws the form
func (v *UserFormView) Show(ctx context.Context) error {
	v.Header(ctx, "Crear Nuevo Usuario")
	v.Surface.Actions(surface.Action{Key: "b", Label: "Volver", Run: v.back})

	fields := []surface.FormField{
		{Key: "name", Label: "Nombre*", Required: true, Validate: func(s string) error { return types.MaxLen("nombre", s, 64) }},
		{Key: "surname", Label: "Apellidos*", Required: true},
		{Key: "nif_nie", Label: "NIF/NIE*", Required: true, Validate: types.ValidateNIFNIE},
		{Key: "birth_date", Label: "Fecha de nacimiento*", Placeholder: "DD/MM/YYYY", Required: true, Validate: func(s string) error {
			_, err := parseBirthDate(s)
			return err
		}},
		{Key: "email", Label: "Email*", Required: true, Validate: types.ValidateEmail},
		{Key: "phone", Label: "Teléfono*", Required: true, Validate: types.ValidatePhone},
		{Key: "address", Label: "Dirección"},
		{Key: "city", Label: "Población"},
		{Key: "account_holder", Label: "Titular de la cuenta*", Required: true},
		{Key: "iban", Label: "IBAN*", Required: true, Validate: types.ValidateIBAN},
		{Key: "social_security", Label: "Número Seguridad Social"},
	}
	fields = append(fields, parentFields(nil)...)
	fields = append(fields,
		surface.FormField{Key: "notes", Label: "Consideraciones"},
		surface.FormField{Key: "cre", Label: "CRE Completo", Value: "false", Options: yesNoOptions},
		surface.FormField{Key: "rgcre", Label: "RGCRE Completo", Value: "false", Options: yesNoOptions},
		surface.FormField{Key: "password", Label: "Contraseña*", Secret: true, Required: true, Validate: types.ValidatePassword},
		surface.FormField{Key: "confirm_password", Label: "Confirmar contraseña*", Secret: true, Required: true},
	)

	v.Surface.Form(surface.Form{
		Title:  "Datos del usuario",
		Fields: fields,
		Submit: v.create,
		Cancel: v.back,
	})
	return nil
}

func (v *UserFormView) create(ctx context.Context, values map[string]string) {
	user, err := BuildUser(values)
	if err != nil {
		v.Fail(fmt.Sprintf("Errores de validación: %v", err))
		return
	}
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Users.Create(ctx, user)
	}, "Creando usuario...", "Usuario creado correctamente") {
		v.back(ctx)
	}
}
