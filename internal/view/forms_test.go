package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

func movementValues() map[string]string {
	return map[string]string{
		"concept": "Cuota marzo",
		"amount":  "12,50",
		"year":    "2024",
		"event":   "3",
		"type":    "12",
		"cash":    "15",
		"grant":   "false",
	}
}

func TestBuildMovement(t *testing.T) {
	m, err := BuildMovement(movementValues(), nil)
	require.NoError(t, err)

	assert.Equal(t, "Cuota marzo", m.Concept)
	assert.Equal(t, types.Cents(1250), m.Amount)
	assert.Equal(t, 2024, m.FiscalYear)
	assert.Equal(t, 3, m.EventID)
	assert.Equal(t, types.MovementIncome, m.Type)
	assert.Equal(t, types.CashBoxNotIn, m.CashBox)
	assert.Equal(t, defaultCategoryID, m.GrantCategoryID)
	assert.Nil(t, m.Notes)
}

func TestBuildMovementCollectsErrors(t *testing.T) {
	values := movementValues()
	values["concept"] = " "
	values["amount"] = "0"
	values["year"] = "1999"
	values["event"] = "0"

	_, err := BuildMovement(values, nil)

	var errs FormErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, FormErrors{
		"El concepto es obligatorio",
		"La cantidad debe ser mayor que 0",
		"El año de ejercicio debe estar entre 2000 y 2100",
		"Debe seleccionar un evento",
	}, errs)
	assert.Contains(t, err.Error(), "Por favor, corrija los siguientes errores:")
}

func TestBuildMovementCategoryMustMatchType(t *testing.T) {
	categories := []types.GrantCategory{
		{ID: 4, Name: "Material", Kind: "gasto"},
		{ID: 5, Name: "Cuotas", Kind: "ingreso"},
	}
	values := movementValues()
	values["grant"] = "true"

	_, err := BuildMovement(values, categories)
	assert.ErrorContains(t, err, "Debe seleccionar una categoría")

	values["category"] = "4"
	_, err = BuildMovement(values, categories)
	assert.ErrorContains(t, err, "La categoría no corresponde al tipo de movimiento")

	values["category"] = "5"
	m, err := BuildMovement(values, categories)
	require.NoError(t, err)
	assert.Equal(t, 5, m.GrantCategoryID)
	assert.True(t, m.GrantChargeable)
}

func TestFilters(t *testing.T) {
	f, err := Filters(map[string]string{"from": "2024-01-01", "to": "", "state": "0", "grant": "", "event": "0"})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", f.From)
	assert.Nil(t, f.To)
	assert.Nil(t, f.State)
	assert.Nil(t, f.GrantChargeable)
	assert.Nil(t, f.EventID)

	f, err = Filters(map[string]string{"from": "2024-01-01", "to": "2024-02-01", "state": "9", "grant": "false", "event": "6"})
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", *f.To)
	assert.Equal(t, types.MovementReviewed, *f.State)
	assert.False(t, *f.GrantChargeable)
	assert.Equal(t, 6, *f.EventID)

	_, err = Filters(map[string]string{"from": "01/01/2024"})
	assert.Error(t, err)
}

func TestBuildInvoice(t *testing.T) {
	values := map[string]string{
		"name":       "Compra sillas",
		"amount":     "99.99",
		"computable": "11",
	}
	inv, err := BuildInvoice(values, 8, 2024)
	require.NoError(t, err)
	assert.Equal(t, 8, inv.MovementID)
	assert.Equal(t, types.Cents(9999), inv.Amount)
	assert.Equal(t, types.InvoiceDoesNotCompute, inv.Computable)

	values["computable"] = "10"
	values["issued_on"] = "2024-05-02"
	_, err = BuildInvoice(values, 8, 2024)
	assert.EqualError(t, err, "El emisor es obligatorio")

	values["issuer"] = "2"
	values["beneficiary"] = "0"
	_, err = BuildInvoice(values, 8, 2024)
	assert.EqualError(t, err, "El receptor es obligatorio")

	values["beneficiary"] = "3"
	values["code"] = "F-001"
	inv, err = BuildInvoice(values, 8, 2024)
	require.NoError(t, err)
	assert.Equal(t, 2, *inv.IssuerID)
	assert.Equal(t, "F-001", *inv.ExternalCode)

	_, err = BuildInvoice(values, 8, 2023)
	assert.EqualError(t, err, "La fecha debe ser del año fiscal 2023")
}

func TestSummarize(t *testing.T) {
	s := Summarize([]types.EconomicMovement{
		{Type: types.MovementIncome, Amount: 10000, State: int(types.MovementReviewed), GrantChargeable: true},
		{Type: types.MovementExpense, Amount: 2500, State: int(types.MovementPendingReview)},
		{Type: types.MovementExpense, Amount: 500, State: int(types.MovementPendingReview), GrantChargeable: true},
	})

	assert.Equal(t, 3, s.Count)
	assert.Equal(t, types.Cents(10000), s.Income)
	assert.Equal(t, types.Cents(3000), s.Expenses)
	assert.Equal(t, types.Cents(7000), s.Balance())
	assert.Equal(t, 2, s.Pending)
	assert.Equal(t, types.Cents(10500), s.Grant)
}

func TestRolePlan(t *testing.T) {
	plan := NewRolePlan([]types.UserRole{{Role: types.Role{ID: 1, Name: "admin"}}})
	all := []types.Role{{ID: 1, Name: "admin"}, {ID: 2, Name: "tesorero"}, {ID: 3, Name: "socio"}}

	_, err := plan.Add(1)
	assert.EqualError(t, err, "Este rol ya está asignado al usuario")

	msg, err := plan.Add(2)
	require.NoError(t, err)
	assert.Equal(t, "Rol programado para añadir", msg)
	_, err = plan.Add(2)
	assert.EqualError(t, err, "Este rol ya está programado para ser añadido")

	msg, err = plan.Remove(1)
	require.NoError(t, err)
	assert.Equal(t, "Rol programado para eliminar", msg)
	_, err = plan.Remove(1)
	assert.EqualError(t, err, "Este rol ya está programado para eliminación")
	_, err = plan.Remove(3)
	assert.EqualError(t, err, "Este rol no está asignado al usuario")

	assert.True(t, plan.Pending())
	assert.Equal(t, []types.Role{{ID: 1, Name: "admin"}, {ID: 3, Name: "socio"}}, plan.Available(all))

	remove, add := plan.Changes()
	assert.Equal(t, []int{1}, remove)
	assert.Equal(t, []int{2}, add)

	msg, err = plan.Add(1)
	require.NoError(t, err)
	assert.Equal(t, "Cancelada eliminación del rol", msg)
	msg, err = plan.Remove(2)
	require.NoError(t, err)
	assert.Equal(t, "Cancelada adición del rol", msg)
	assert.False(t, plan.Pending())
}

func userValues() map[string]string {
	return map[string]string{
		"name":             "Ana",
		"surname":          "García López",
		"nif_nie":          "12345678z",
		"birth_date":       "05/11/1990",
		"email":            "ana@example.com",
		"phone":            "600 123 123",
		"account_holder":   "Ana García",
		"iban":             "ES91 2100 0418 4502 0005 1332",
		"password":         "secreto1",
		"confirm_password": "secreto1",
		"cre":              "true",
		"rgcre":            "false",
	}
}

func TestBuildUser(t *testing.T) {
	u, err := BuildUser(userValues())
	require.NoError(t, err)

	assert.Equal(t, "1990-11-05", u.FechaNacimiento)
	assert.Equal(t, "12345678Z", u.NIFNIE)
	assert.Equal(t, "ES9121000418450200051332", u.IBAN)
	assert.Equal(t, types.CREStatusCompleteID, u.IndCRE)
	assert.Equal(t, types.RGCREStatusIncompleteID, u.IndRGCRE)
	assert.Equal(t, types.UserStatusActiveID, u.IndEstado)
	assert.Nil(t, u.Domicilio)
}

func TestBuildUserRejects(t *testing.T) {
	values := userValues()
	values["confirm_password"] = "otro"
	_, err := BuildUser(values)
	assert.EqualError(t, err, "Las contraseñas no coinciden")

	values = userValues()
	values["birth_date"] = "1990-11-05"
	_, err = BuildUser(values)
	assert.EqualError(t, err, "Formato de fecha inválido. Use DD/MM/YYYY")

	values = userValues()
	values["email"] = "ana"
	_, err = BuildUser(values)
	var fe *types.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "email", fe.Field)
}

func TestBuildUserUpdate(t *testing.T) {
	values := userValues()
	values["address"] = "Calle Mayor 1"

	u, err := BuildUserUpdate(9, values)
	require.NoError(t, err)
	assert.Equal(t, 9, u.ID)
	assert.Equal(t, "Calle Mayor 1", *u.Domicilio)
	assert.Nil(t, u.Poblacion)
	assert.Nil(t, u.IndEstado, "status changes go through activate/deactivate")
	assert.Equal(t, types.CREStatusCompleteID, *u.IndCRE)

	values["name"] = ""
	values["iban"] = "ES12"
	_, err = BuildUserUpdate(9, values)
	var errs FormErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, FormErrors{"Nombre es obligatorio", "Formato de IBAN inválido"}, errs)
}

func TestBuildOrganization(t *testing.T) {
	values := map[string]string{
		"nif":         "b12345678",
		"name":        "Asociación Vecinal",
		"address":     "Plaza 2",
		"city":        "Valencia",
		"postal_code": "46001",
		"email":       "",
	}
	o, err := BuildOrganization(values)
	require.NoError(t, err)
	assert.Equal(t, "B12345678", o.NIF)
	assert.Nil(t, o.Email)
	assert.Nil(t, o.IBAN)

	update := OrganizationUpdate(5, o)
	assert.Equal(t, 5, update.ID)
	assert.Equal(t, "Valencia", *update.City)

	values["nif"] = "??"
	values["city"] = ""
	_, err = BuildOrganization(values)
	var errs FormErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 2)
}

func TestBuildEvent(t *testing.T) {
	e, err := BuildEvent(map[string]string{"name": "Fallas", "description": "Semana fallera", "year": "2024", "month": "3", "day": ""})
	require.NoError(t, err)
	assert.Equal(t, 2024, e.Year)
	assert.Equal(t, 3, *e.Month)
	assert.Nil(t, e.Day)

	_, err = BuildEvent(map[string]string{"name": "Fallas", "description": "x", "year": "0", "month": "13", "day": "40"})
	var errs FormErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, FormErrors{
		"El año debe ser un número positivo",
		"El mes debe estar entre 1 y 12",
		"El día debe estar entre 1 y 31",
	}, errs)
}

func TestUserFilter(t *testing.T) {
	ana := types.UserShortView{Name: "Ana", Surname: "García", NIFNIE: "12345678Z", Email: "ana@example.com", Status: types.UserStatusActive}
	luis := types.UserShortView{Name: "Luis", Surname: "Pérez", Status: types.UserStatusInactive}

	assert.True(t, UserFilter{}.Match(ana))
	assert.True(t, UserFilter{Search: "ana garcía"}.Match(ana))
	assert.True(t, UserFilter{Search: "5678z"}.Match(ana))
	assert.False(t, UserFilter{Search: "ana"}.Match(luis))
	assert.False(t, UserFilter{Status: types.UserStatusActive}.Match(luis))
	assert.True(t, UserFilter{Status: types.UserStatusInactive, Search: "pér"}.Match(luis))
}

func TestParseCents(t *testing.T) {
	c, err := parseCents("cantidad", "0,1")
	require.NoError(t, err)
	assert.Equal(t, types.Cents(10), c)

	_, err = parseCents("cantidad", "-1")
	assert.Error(t, err)
	_, err = parseCents("cantidad", "abc")
	assert.Error(t, err)
}
