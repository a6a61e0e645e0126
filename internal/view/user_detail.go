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

// RolePlan stages role changes for a user until they are saved
type RolePlan struct {
	assigned map[int]bool
	add      map[int]bool
	remove   map[int]bool
}

// NewRolePlan starts a plan from the roles the user holds
func NewRolePlan(current []types.UserRole) *RolePlan {
	p := &RolePlan{assigned: map[int]bool{}, add: map[int]bool{}, remove: map[int]bool{}}
	for _, r := range current {
		p.assigned[r.ID] = true
	}
	return p
}

// Add stages roleID for assignment, or cancels a staged removal. It returns
// the message to show.
func (p *RolePlan) Add(roleID int) (string, error) {
	if p.assigned[roleID] {
		if p.remove[roleID] {
			delete(p.remove, roleID)
			return "Cancelada eliminación del rol", nil
		}
		return "", userError("Este rol ya está asignado al usuario")
	}
	if p.add[roleID] {
		return "", userError("Este rol ya está programado para ser añadido")
	}
	p.add[roleID] = true
	return "Rol programado para añadir", nil
}

// Remove stages roleID for revocation, or cancels a staged assignment
func (p *RolePlan) Remove(roleID int) (string, error) {
	switch {
	case p.assigned[roleID] && p.remove[roleID]:
		return "", userError("Este rol ya está programado para eliminación")
	case p.assigned[roleID]:
		p.remove[roleID] = true
		return "Rol programado para eliminar", nil
	case p.add[roleID]:
		delete(p.add, roleID)
		return "Cancelada adición del rol", nil
	default:
		return "", userError("Este rol no está asignado al usuario")
	}
}

// Pending reports whether anything is staged
func (p *RolePlan) Pending() bool {
	return len(p.add)+len(p.remove) > 0
}

// Effective reports whether roleID will be held once the plan is saved
func (p *RolePlan) Effective(roleID int) bool {
	return (p.assigned[roleID] && !p.remove[roleID]) || p.add[roleID]
}

// Available returns the roles from all that can still be added
func (p *RolePlan) Available(all []types.Role) []types.Role {
	var out []types.Role
	for _, r := range all {
		if !p.Effective(r.ID) {
			out = append(out, r)
		}
	}
	return out
}

// Changes returns the staged removals and additions in ascending order
func (p *RolePlan) Changes() (remove, add []int) {
	for id := range p.remove {
		remove = append(remove, id)
	}
	for id := range p.add {
		add = append(add, id)
	}
	sort.Ints(remove)
	sort.Ints(add)
	return remove, add
}

// BuildUserUpdate turns the edit form into a partial update
func BuildUserUpdate(userID int, values map[string]string) (types.UserUpdate, error) {
	var errs FormErrors
	required := []struct{ key, label string }{
		{"name", "Nombre"},
		{"surname", "Apellidos"},
		{"nif_nie", "NIF/NIE"},
		{"email", "Email"},
		{"phone", "Teléfono"},
		{"account_holder", "Titular de cuenta"},
		{"iban", "IBAN"},
	}
	for _, r := range required {
		if strings.TrimSpace(values[r.key]) == "" {
			errs = append(errs, r.label+" es obligatorio")
		}
	}
	formats := []struct {
		key, message string
		check        func(string) error
	}{
		{"email", "Formato de email inválido", types.ValidateEmail},
		{"nif_nie", "Formato de NIF/NIE inválido", types.ValidateNIFNIE},
		{"phone", "Formato de teléfono inválido", types.ValidatePhone},
		{"iban", "Formato de IBAN inválido", types.ValidateIBAN},
	}
	for _, f := range formats {
		if v := strings.TrimSpace(values[f.key]); v != "" && f.check(v) != nil {
			errs = append(errs, f.message)
		}
	}
	if len(errs) > 0 {
		return types.UserUpdate{}, errs
	}

	return types.UserUpdate{
		ID:                  userID,
		Nombre:              optional(values["name"]),
		Apellidos:           optional(values["surname"]),
		NIFNIE:              optional(strings.ToUpper(values["nif_nie"])),
		Email:               optional(values["email"]),
		Telefono:            optional(values["phone"]),
		Domicilio:           optional(values["address"]),
		Poblacion:           optional(values["city"]),
		TitularCuenta:       optional(values["account_holder"]),
		IBAN:                optional(strings.ToUpper(strings.ReplaceAll(values["iban"], " ", ""))),
		NumeroSS:            optional(values["social_security"]),
		NombreProgenitor1:   optional(values["parent1_name"]),
		NIFNIEProgenitor1:   optional(values["parent1_id"]),
		TelefonoProgenitor1: optional(values["parent1_phone"]),
		EmailProgenitor1:    optional(values["parent1_email"]),
		NombreProgenitor2:   optional(values["parent2_name"]),
		NIFNIEProgenitor2:   optional(values["parent2_id"]),
		TelefonoProgenitor2: optional(values["parent2_phone"]),
		EmailProgenitor2:    optional(values["parent2_email"]),
		Consideraciones:     optional(values["notes"]),
		IndCRE:              types.Ptr(creID(values["cre"] == "true")),
		IndRGCRE:            types.Ptr(rgcreID(values["rgcre"] == "true")),
	}, nil
}

// UserDetailView shows one user, their roles and the edit form
type UserDetailView struct {
	Base
	id    int
	user  *types.UserDetail
	roles []types.UserRole
	all   []types.Role
	plan  *RolePlan
}

// NewUserDetailView creates the user detail screen
func NewUserDetailView(m router.Mount, opts Options) (router.View, error) {
	return &UserDetailView{Base: NewBase(m, opts)}, nil
}

// Show loads the user and their roles
func (v *UserDetailView) Show(ctx context.Context) error {
	id, ok := v.RequireID(ctx, "user_id", "No se ha seleccionado ningún usuario", router.Users)
	if !ok {
		return nil
	}
	v.id = id

	if !v.load(ctx) {
		v.Fail("Error al cargar los datos del usuario")
		v.back(ctx)
		return nil
	}
	v.render(ctx)
	return nil
}

func (v *UserDetailView) back(ctx context.Context) {
	v.Go(ctx, router.Users, nil)
}

func (v *UserDetailView) load(ctx context.Context) bool {
	user, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.UserDetail, error) {
		return v.Services.Users.Get(ctx, v.id)
	}, "Cargando usuario...", "")
	if !ok {
		return false
	}
	v.user = user
	v.loadRoles(ctx)
	return true
}

func (v *UserDetailView) loadRoles(ctx context.Context) {
	v.roles = nil
	v.all = nil
	if v.Can(ctx, permission.RolesByUser) {
		v.roles, _ = SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.UserRole, error) {
			return v.Services.Roles.UserRoles(ctx, v.id)
		}, "Cargando roles...", "")
	}
	if v.Can(ctx, permission.RolesList) {
		v.all, _ = SafeCall(ctx, &v.Base, v.Services.Roles.List, "Cargando roles...", "")
	}
	v.plan = NewRolePlan(v.roles)
}

func (v *UserDetailView) render(ctx context.Context) {
	u := v.user
	v.Header(ctx, "Detalles del Usuario")

	actions := []surface.Action{{Key: "b", Label: "Volver a la lista", Run: v.back}}
	if v.Can(ctx, permission.UsersManage) {
		toggle := "Desactivar usuario"
		if !u.Active() {
			toggle = "Activar usuario"
		}
		actions = append(actions,
			surface.Action{Key: "e", Label: "Editar", Run: v.editForm},
			surface.Action{Key: "t", Label: toggle, Run: v.toggleStatus},
			surface.Action{Key: "x", Label: "Eliminar usuario", Run: func(ctx context.Context) {
				v.Confirm(fmt.Sprintf("¿Eliminar a %s?", u.FullName()), v.remove)
			}},
		)
	}
	v.Surface.Actions(actions...)

	v.Surface.Text("Información Personal")
	v.Surface.Fields(
		surface.Field{Label: "ID", Value: itoa(u.ID)},
		surface.Field{Label: "Nombre", Value: u.FullName()},
		surface.Field{Label: "NIF/NIE", Value: u.NIFNIE},
		surface.Field{Label: "Fecha de nacimiento", Value: u.BirthDate.String()},
		surface.Field{Label: "Fecha de alta", Value: u.SignupDate.String()},
		surface.Field{Label: "Estado", Value: statusLabel(u.Active())},
	)
	v.Surface.Text("Información de Contacto")
	v.Surface.Fields(
		surface.Field{Label: "Email", Value: u.Email},
		surface.Field{Label: "Teléfono", Value: u.Phone},
		surface.Field{Label: "Dirección", Value: text(u.Address)},
		surface.Field{Label: "Población", Value: text(u.City)},
	)
	v.Surface.Text("Información Bancaria")
	v.Surface.Fields(
		surface.Field{Label: "Titular de la cuenta", Value: u.AccountHolder},
		surface.Field{Label: "IBAN", Value: u.IBAN},
		surface.Field{Label: "Referencia de domiciliación", Value: u.DirectDebitReference},
		surface.Field{Label: "Número Seguridad Social", Value: text(u.SocialSecurity)},
	)
	v.Surface.Text("Información de Progenitores")
	v.Surface.Fields(
		surface.Field{Label: "Progenitor 1", Value: text(u.Parent1Name)},
		surface.Field{Label: "NIF/NIE", Value: text(u.Parent1ID)},
		surface.Field{Label: "Teléfono", Value: text(u.Parent1Phone)},
		surface.Field{Label: "Email", Value: text(u.Parent1Email)},
		surface.Field{Label: "Progenitor 2", Value: text(u.Parent2Name)},
		surface.Field{Label: "NIF/NIE", Value: text(u.Parent2ID)},
		surface.Field{Label: "Teléfono", Value: text(u.Parent2Phone)},
		surface.Field{Label: "Email", Value: text(u.Parent2Email)},
	)
	v.Surface.Text("Indicadores")
	v.Surface.Fields(
		surface.Field{Label: "CRE completo", Value: yesNo(u.CRE == types.CREStatusComplete)},
		surface.Field{Label: "RGCRE completo", Value: yesNo(u.RGCRE == types.RGCREStatusComplete)},
		surface.Field{Label: "Consideraciones", Value: text(u.Notes)},
		surface.Field{Label: "Creado", Value: u.CreationDate.String()},
		surface.Field{Label: "Última modificación", Value: u.UpdateDate.String()},
	)

	v.renderRoles(ctx)
}

func (v *UserDetailView) renderRoles(ctx context.Context) {
	v.Surface.Text("Gestión de Roles")

	byID := map[int]types.Role{}
	for _, r := range v.all {
		byID[r.ID] = r
	}
	for _, r := range v.roles {
		byID[r.ID] = r.Role
	}
	ids := make([]int, 0, len(byID))
	for id := range byID {
		if v.plan.Effective(id) || v.plan.assigned[id] {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)

	if len(ids) == 0 {
		v.Surface.Text("No hay roles asignados")
	}
	rows := make([][]string, len(ids))
	for i, id := range ids {
		state := "Asignado"
		switch {
		case v.plan.remove[id]:
			state = "Se eliminará"
		case v.plan.add[id]:
			state = "Se añadirá"
		}
		r := byID[id]
		rows[i] = []string{strconv.Itoa(id), r.Name, text(r.Description), state}
	}

	manage := v.Can(ctx, permission.RolesManage)
	table := surface.Table{Headers: []string{"ID", "Rol", "Descripción", "Estado"}, Rows: rows}
	if manage {
		table.Select = func(ctx context.Context, row int) {
			if row >= 0 && row < len(ids) {
				v.stage(ctx, v.plan.Remove, ids[row])
			}
		}
	}
	v.Surface.Table(table)

	if !manage {
		return
	}
	available := v.plan.Available(v.all)
	actions := []surface.Action{}
	if len(available) == 0 {
		v.Surface.Text("Todos los roles disponibles están asignados")
	} else {
		actions = append(actions, surface.Action{Key: "a", Label: "Añadir rol", Run: func(ctx context.Context) {
			v.addRoleForm(available)
		}})
	}
	if v.plan.Pending() {
		actions = append(actions, surface.Action{Key: "s", Label: "Guardar roles", Run: v.saveRoles})
	}
	if len(actions) > 0 {
		v.Surface.Actions(actions...)
	}
}

func (v *UserDetailView) addRoleForm(available []types.Role) {
	options := make([]surface.Option, 0, len(available)+1)
	options = append(options, surface.Option{Label: "Seleccionar...", Value: ""})
	for _, r := range available {
		options = append(options, surface.Option{Label: r.Name, Value: strconv.Itoa(r.ID)})
	}
	v.Surface.Form(surface.Form{
		Title:  "Añadir rol",
		Fields: []surface.FormField{{Key: "role", Label: "Rol", Options: options}},
		Submit: func(ctx context.Context, values map[string]string) {
			id, err := strconv.Atoi(values["role"])
			if err != nil {
				v.Fail("Selecciona un rol para añadir")
				return
			}
			v.stage(ctx, v.plan.Add, id)
		},
		Cancel: v.render,
	})
}

func (v *UserDetailView) stage(ctx context.Context, op func(int) (string, error), roleID int) {
	msg, err := op(roleID)
	if err != nil {
		v.Fail(err.Error())
		return
	}
	v.Success(msg)
	v.render(ctx)
}

// saveRoles applies staged removals first, then additions
func (v *UserDetailView) saveRoles(ctx context.Context) {
	remove, add := v.plan.Changes()
	total := len(remove) + len(add)
	done := 0
	var failures []string

	for _, id := range remove {
		if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
			return v.Services.Roles.Revoke(ctx, v.id, id)
		}, "Eliminando roles...", "") {
			done++
		} else {
			failures = append(failures, fmt.Sprintf("Error eliminando rol ID: %d", id))
		}
	}
	for _, id := range add {
		if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
			return v.Services.Roles.Assign(ctx, v.id, id)
		}, "Añadiendo roles...", "") {
			done++
		} else {
			failures = append(failures, fmt.Sprintf("Error añadiendo rol ID: %d", id))
		}
	}

	switch {
	case done == total:
		v.Success(fmt.Sprintf("Todos los cambios de roles guardados correctamente (%d operaciones)", done))
	case done > 0:
		v.Fail(fmt.Sprintf("Se completaron %d de %d operaciones. Errores: %s", done, total, strings.Join(failures, ", ")))
	default:
		v.Fail(fmt.Sprintf("No se pudo completar ninguna operación. Errores: %s", strings.Join(failures, ", ")))
	}

	if !v.Session.IsAuthenticated() {
		return
	}
	v.loadRoles(ctx)
	v.render(ctx)
}

func (v *UserDetailView) editForm(ctx context.Context) {
	u := v.user
	values := map[string]string{
		"parent1_name":  types.Deref(u.Parent1Name),
		"parent1_id":    types.Deref(u.Parent1ID),
		"parent1_phone": types.Deref(u.Parent1Phone),
		"parent1_email": types.Deref(u.Parent1Email),
		"parent2_name":  types.Deref(u.Parent2Name),
		"parent2_id":    types.Deref(u.Parent2ID),
		"parent2_phone": types.Deref(u.Parent2Phone),
		"parent2_email": types.Deref(u.Parent2Email),
	}
	fields := []surface.FormField{
		{Key: "name", Label: "Nombre*", Value: u.Name, Required: true},
		{Key: "surname", Label: "Apellidos*", Value: u.Surname, Required: true},
		{Key: "nif_nie", Label: "NIF/NIE*", Value: u.NIFNIE, Required: true},
		{Key: "email", Label: "Email*", Value: u.Email, Required: true},
		{Key: "phone", Label: "Teléfono*", Value: u.Phone, Required: true},
		{Key: "address", Label: "Dirección", Value: types.Deref(u.Address)},
		{Key: "city", Label: "Población", Value: types.Deref(u.City)},
		{Key: "account_holder", Label: "Titular de la cuenta*", Value: u.AccountHolder, Required: true},
		{Key: "iban", Label: "IBAN*", Value: u.IBAN, Required: true},
		{Key: "social_security", Label: "Número Seguridad Social", Value: types.Deref(u.SocialSecurity)},
	}
	fields = append(fields, parentFields(values)...)
	fields = append(fields,
		surface.FormField{Key: "notes", Label: "Consideraciones", Value: types.Deref(u.Notes)},
		surface.FormField{Key: "cre", Label: "CRE Completo", Value: strconv.FormatBool(u.CRE == types.CREStatusComplete), Options: yesNoOptions},
		surface.FormField{Key: "rgcre", Label: "RGCRE Completo", Value: strconv.FormatBool(u.RGCRE == types.RGCREStatusComplete), Options: yesNoOptions},
	)

	v.Surface.Form(surface.Form{
		Title:  "Editar usuario",
		Fields: fields,
		Submit: v.save,
		Cancel: v.render,
	})
}

func (v *UserDetailView) save(ctx context.Context, values map[string]string) {
	update, err := BuildUserUpdate(v.id, values)
	if err != nil {
		v.Fail(err.Error())
		return
	}
	if !SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Users.Update(ctx, update)
	}, "Guardando cambios...", "Usuario actualizado correctamente") {
		return
	}
	if v.load(ctx) {
		v.render(ctx)
	}
}

func (v *UserDetailView) toggleStatus(ctx context.Context) {
	var ok bool
	if v.user.Active() {
		ok = SafeDo(ctx, &v.Base, func(ctx context.Context) error {
			return v.Services.Users.Deactivate(ctx, v.id)
		}, "Desactivando usuario...", "Usuario desactivado correctamente")
	} else {
		ok = SafeDo(ctx, &v.Base, func(ctx context.Context) error {
			return v.Services.Users.Activate(ctx, v.id)
		}, "Activando usuario...", "Usuario activado correctamente")
	}
	if ok && v.load(ctx) {
		v.render(ctx)
	}
}

func (v *UserDetailView) remove(ctx context.Context) {
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Users.Delete(ctx, v.id)
	}, "Eliminando usuario...", "Usuario eliminado correctamente") {
		v.back(ctx)
	}
}
