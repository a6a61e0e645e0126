package view

import (
	"context"
	"strings"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

const nifHelp = "Formatos de NIF aceptados: sociedades A12345678, personas físicas 12345678X, extranjeros X1234567X o GB123456789"

// BuildOrganization turns the organization form into a create request
func BuildOrganization(values map[string]string) (types.OrganizationCreate, error) {
	var errs FormErrors
	for _, r := range []struct{ key, label string }{
		{"nif", "NIF"},
		{"name", "Nombre"},
		{"address", "Dirección"},
		{"city", "Población"},
		{"postal_code", "Código postal"},
	} {
		if strings.TrimSpace(values[r.key]) == "" {
			errs = append(errs, r.label+": Este campo es obligatorio")
		}
	}
	if v := strings.TrimSpace(values["nif"]); v != "" && types.ValidateCompanyNIF(v) != nil {
		errs = append(errs, "Formato de NIF inválido. Use: A12345678, B1234567X, GB123456789, etc.")
	}
	if v := strings.TrimSpace(values["email"]); v != "" && types.ValidateEmail(v) != nil {
		errs = append(errs, "Formato de email inválido")
	}
	if v := strings.TrimSpace(values["phone"]); v != "" && types.ValidatePhone(v) != nil {
		errs = append(errs, "Formato de teléfono inválido")
	}
	if v := strings.TrimSpace(values["iban"]); v != "" && types.ValidateIBAN(v) != nil {
		errs = append(errs, "Formato de IBAN inválido")
	}
	if len(errs) > 0 {
		return types.OrganizationCreate{}, errs
	}

	org := types.OrganizationCreate{
		NIF:         strings.ToUpper(strings.TrimSpace(values["nif"])),
		Name:        strings.TrimSpace(values["name"]),
		Description: optional(values["description"]),
		IBAN:        optional(strings.ToUpper(strings.ReplaceAll(values["iban"], " ", ""))),
		Address:     strings.TrimSpace(values["address"]),
		City:        strings.TrimSpace(values["city"]),
		PostalCode:  strings.TrimSpace(values["postal_code"]),
		Province:    optional(values["province"]),
		Country:     optional(values["country"]),
		Email:       optional(values["email"]),
		Phone:       optional(values["phone"]),
	}
	if err := org.Validate(); err != nil {
		return org, err
	}
	return org, nil
}

// OrganizationUpdate converts a validated create request into the update
// request for orgID
func OrganizationUpdate(orgID int, o types.OrganizationCreate) types.OrganizationUpdate {
	return types.OrganizationUpdate{
		ID:          orgID,
		NIF:         types.Ptr(o.NIF),
		Name:        types.Ptr(o.Name),
		Description: o.Description,
		IBAN:        o.IBAN,
		Address:     types.Ptr(o.Address),
		City:        types.Ptr(o.City),
		PostalCode:  types.Ptr(o.PostalCode),
		Province:    o.Province,
		Country:     o.Country,
		Email:       o.Email,
		Phone:       o.Phone,
	}
}

func organizationFields(o *types.Organization) []surface.FormField {
	if o == nil {
		o = &types.Organization{}
	}
	return []surface.FormField{
		{Key: "nif", Label: "NIF*", Value: o.NIF, Required: true, Validate: types.ValidateCompanyNIF},
		{Key: "name", Label: "Nombre*", Value: o.Name, Required: true},
		{Key: "description", Label: "Descripción", Value: types.Deref(o.Description)},
		{Key: "email", Label: "Email", Value: types.Deref(o.Email), Validate: validator(types.ValidateEmail)},
		{Key: "phone", Label: "Teléfono", Value: types.Deref(o.Phone), Validate: validator(types.ValidatePhone)},
		{Key: "address", Label: "Dirección*", Value: o.Address, Required: true},
		{Key: "city", Label: "Población*", Value: o.City, Required: true},
		{Key: "postal_code", Label: "Código postal*", Value: o.PostalCode, Required: true},
		{Key: "province", Label: "Provincia", Value: types.Deref(o.Province)},
		{Key: "country", Label: "País", Value: types.Deref(o.Country)},
		{Key: "iban", Label: "IBAN", Value: types.Deref(o.IBAN), Validate: validator(types.ValidateIBAN)},
	}
}

// OrganizationsView lists organizations with a name or NIF filter
type OrganizationsView struct {
	Base
	all    []types.OrganizationShortView
	search string
}

// NewOrganizationsView creates the organizations list
func NewOrganizationsView(m router.Mount, opts Options) (router.View, error) {
	return &OrganizationsView{Base: NewBase(m, opts)}, nil
}

// Show loads and draws the list
func (v *OrganizationsView) Show(ctx context.Context) error {
	v.all, _ = SafeCall(ctx, &v.Base, v.Services.Organizations.List, "Cargando organizaciones...", "")
	v.render(ctx)
	return nil
}

func (v *OrganizationsView) visible() []types.OrganizationShortView {
	q := strings.ToLower(strings.TrimSpace(v.search))
	if q == "" {
		return v.all
	}
	var out []types.OrganizationShortView
	for _, o := range v.all {
		if strings.Contains(strings.ToLower(o.Name), q) || strings.Contains(strings.ToLower(o.NIF), q) {
			out = append(out, o)
		}
	}
	return out
}

func (v *OrganizationsView) render(ctx context.Context) {
	v.Header(ctx, "Organizaciones")

	actions := []surface.Action{{Key: "s", Label: "Buscar", Run: v.searchForm}}
	if v.Can(ctx, permission.OrganizationManage) {
		actions = append(actions, surface.Action{Key: "n", Label: "Nueva organización", Run: func(ctx context.Context) {
			v.Go(ctx, router.OrganizationCreate, nil)
		}})
	}
	v.Surface.Actions(actions...)

	orgs := v.visible()
	if len(orgs) == 0 {
		v.Surface.Text("No se encontraron organizaciones")
		return
	}
	rows := make([][]string, len(orgs))
	for i, o := range orgs {
		email, phone := "Sin email", "Sin teléfono"
		if o.Email != nil && *o.Email != "" {
			email = *o.Email
		}
		if o.Phone != nil && *o.Phone != "" {
			phone = *o.Phone
		}
		rows[i] = []string{itoa(o.ID), o.NIF, o.Name, email, phone}
	}
	v.Surface.Table(surface.Table{
		Headers: []string{"ID", "NIF", "Nombre", "Email", "Teléfono"},
		Rows:    rows,
		Select: func(ctx context.Context, row int) {
			if row >= 0 && row < len(orgs) {
				v.Go(ctx, router.OrganizationDetail, router.Params{"organization_id": orgs[row].ID})
			}
		},
	})
}

func (v *OrganizationsView) searchForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title:  "Buscar organizaciones",
		Fields: []surface.FormField{{Key: "search", Label: "Nombre o NIF", Value: v.search}},
		Submit: func(ctx context.Context, values map[string]string) {
			v.search = values["search"]
			v.render(ctx)
		},
		Cancel: v.render,
	})
}

// OrganizationDetailView shows and edits one organization
type OrganizationDetailView struct {
	Base
	id  int
	org *types.Organization
}

// NewOrganizationDetailView creates the organization detail screen
func NewOrganizationDetailView(m router.Mount, opts Options) (router.View, error) {
	return &OrganizationDetailView{Base: NewBase(m, opts)}, nil
}

// Show loads the organization
func (v *OrganizationDetailView) Show(ctx context.Context) error {
	id, ok := v.RequireID(ctx, "organization_id", "No se ha seleccionado ninguna organización", router.Organizations)
	if !ok {
		return nil
	}
	v.id = id
	if !v.load(ctx) {
		v.Fail("Error al cargar los datos de la organización")
		v.back(ctx)
		return nil
	}
	v.render(ctx)
	return nil
}

func (v *OrganizationDetailView) back(ctx context.Context) {
	v.Go(ctx, router.Organizations, nil)
}

func (v *OrganizationDetailView) load(ctx context.Context) bool {
	org, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.Organization, error) {
		return v.Services.Organizations.Get(ctx, v.id)
	}, "Cargando datos de la organización...", "")
	if ok {
		v.org = org
	}
	return ok
}

func (v *OrganizationDetailView) render(ctx context.Context) {
	o := v.org
	v.Header(ctx, "Detalles de la Organización")

	actions := []surface.Action{{Key: "b", Label: "Volver a la lista", Run: v.back}}
	if v.Can(ctx, permission.OrganizationManage) {
		actions = append(actions, surface.Action{Key: "e", Label: "Editar", Run: v.editForm})
	}
	v.Surface.Actions(actions...)

	v.Surface.Text("Información Básica")
	v.Surface.Fields(
		surface.Field{Label: "ID", Value: itoa(o.ID)},
		surface.Field{Label: "NIF", Value: o.NIF},
		surface.Field{Label: "Nombre", Value: o.Name},
		surface.Field{Label: "Descripción", Value: text(o.Description)},
	)
	v.Surface.Text("Información de Contacto")
	v.Surface.Fields(
		surface.Field{Label: "Email", Value: text(o.Email)},
		surface.Field{Label: "Teléfono", Value: text(o.Phone)},
	)
	v.Surface.Text("Información de Dirección")
	v.Surface.Fields(
		surface.Field{Label: "Dirección", Value: o.Address},
		surface.Field{Label: "Población", Value: o.City},
		surface.Field{Label: "Código postal", Value: o.PostalCode},
		surface.Field{Label: "Provincia", Value: text(o.Province)},
		surface.Field{Label: "País", Value: text(o.Country)},
	)
	v.Surface.Text("Información Bancaria")
	v.Surface.Fields(surface.Field{Label: "IBAN", Value: text(o.IBAN)})
}

func (v *OrganizationDetailView) editForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title:  "Editar organización",
		Fields: organizationFields(v.org),
		Submit: v.save,
		Cancel: v.render,
	})
}

func (v *OrganizationDetailView) save(ctx context.Context, values map[string]string) {
	org, err := BuildOrganization(values)
	if err != nil {
		v.Fail(err.Error())
		return
	}
	if !SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Organizations.Update(ctx, OrganizationUpdate(v.id, org))
	}, "Guardando cambios...", "Organización actualizada correctamente") {
		return
	}
	if v.load(ctx) {
		v.render(ctx)
	}
}

// OrganizationFormView creates an organization
type OrganizationFormView struct {
	Base
}

// NewOrganizationFormView creates the organization creation form
func NewOrganizationFormView(m router.Mount, opts Options) (router.View, error) {
	return &OrganizationFormView{Base: NewBase(m, opts)}, nil
}

func (v *OrganizationFormView) back(ctx context.Context) {
	v.Go(ctx, router.Organizations, nil)
}

// Show draws the form
func (v *OrganizationFormView) Show(ctx context.Context) error {
	v.Header(ctx, "Nueva Organización")
	v.Surface.Actions(surface.Action{Key: "b", Label: "Volver", Run: v.back})
	v.Surface.Text(nifHelp)
	v.Surface.Form(surface.Form{
		Title:  "Datos de la organización",
		Fields: organizationFields(nil),
		Submit: v.create,
		Cancel: v.back,
	})
	return nil
}

func (v *OrganizationFormView) create(ctx context.Context, values map[string]string) {
	org, err := BuildOrganization(values)
	if err != nil {
		v.Fail(err.Error())
		return
	}
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Organizations.Create(ctx, org)
	}, "Creando organización...", "Organización creada correctamente") {
		v.back(ctx)
	}
}
