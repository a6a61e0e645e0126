package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// defaultCategoryID is sent when the movement is not charged to a grant
const defaultCategoryID = 1

var movementTypeOptions = []surface.Option{
	{Label: types.MovementExpense.String(), Value: strconv.Itoa(int(types.MovementExpense))},
	{Label: types.MovementIncome.String(), Value: strconv.Itoa(int(types.MovementIncome))},
}

var cashBoxOptions = []surface.Option{
	{Label: "No en caja", Value: strconv.Itoa(int(types.CashBoxNotIn))},
	{Label: "En caja", Value: strconv.Itoa(int(types.CashBoxIn))},
}

var yesNoOptions = []surface.Option{
	{Label: "No", Value: "false"},
	{Label: "Sí", Value: "true"},
}

// categoryType maps a category kind to the movement type it applies to
func categoryType(kind string) types.MovementType {
	if kind == "ingreso" {
		return types.MovementIncome
	}
	return types.MovementExpense
}

func categoryOptions(categories []types.GrantCategory) []surface.Option {
	opts := make([]surface.Option, 0, len(categories))
	for _, c := range categories {
		label := c.Name
		if c.Description != nil && *c.Description != "" {
			label += " - " + *c.Description
		}
		opts = append(opts, surface.Option{
			Label: fmt.Sprintf("%s (%s)", label, c.Kind),
			Value: strconv.Itoa(c.ID),
		})
	}
	return opts
}

// FormErrors collects every problem of a submitted form
type FormErrors []string

func (e FormErrors) Error() string {
	var b strings.Builder
	b.WriteString("Por favor, corrija los siguientes errores:\n")
	for _, msg := range e {
		b.WriteString("\n• ")
		b.WriteString(msg)
	}
	return b.String()
}

// BuildMovement turns the create form into a request
func BuildMovement(values map[string]string, categories []types.GrantCategory) (types.EconomicMovementCreate, error) {
	var (
		m    types.EconomicMovementCreate
		errs FormErrors
	)

	m.Concept = strings.TrimSpace(values["concept"])
	if m.Concept == "" {
		errs = append(errs, "El concepto es obligatorio")
	}

	if amount := strings.TrimSpace(values["amount"]); amount == "" {
		errs = append(errs, "La cantidad es obligatoria")
	} else if cents, err := parseCents("cantidad", amount); err != nil {
		errs = append(errs, "La cantidad debe ser un número válido")
	} else if cents <= 0 {
		errs = append(errs, "La cantidad debe ser mayor que 0")
	} else {
		m.Amount = cents
	}

	if year, err := strconv.Atoi(strings.TrimSpace(values["year"])); err != nil {
		errs = append(errs, "El año de ejercicio debe ser un número válido")
	} else if year < 2000 || year > 2100 {
		errs = append(errs, "El año de ejercicio debe estar entre 2000 y 2100")
	} else {
		m.FiscalYear = year
	}

	if event, err := strconv.Atoi(values["event"]); err != nil || event <= 0 {
		errs = append(errs, "Debe seleccionar un evento")
	} else {
		m.EventID = event
	}

	if t, err := strconv.Atoi(values["type"]); err != nil {
		errs = append(errs, "Debe seleccionar el tipo de movimiento")
	} else {
		m.Type = types.MovementType(t)
	}

	if c, err := strconv.Atoi(values["cash"]); err != nil {
		errs = append(errs, "Debe seleccionar el estado de caja")
	} else {
		m.CashBox = types.CashBoxState(c)
	}

	m.GrantChargeable = values["grant"] == "true"
	m.GrantCategoryID = defaultCategoryID
	if m.GrantChargeable {
		id, err := strconv.Atoi(values["category"])
		if err != nil || id <= 0 {
			errs = append(errs, "Debe seleccionar una categoría cuando es imputable a subvención")
		} else {
			m.GrantCategoryID = id
			for _, c := range categories {
				if c.ID == id && categoryType(c.Kind) != m.Type {
					errs = append(errs, "La categoría no corresponde al tipo de movimiento")
				}
			}
		}
	}

	m.Notes = optional(values["notes"])

	if len(errs) > 0 {
		return m, errs
	}
	return m, m.Validate()
}

// MovementCreateView records a new economic movement
type MovementCreateView struct {
	Base
	categories []types.GrantCategory
	events     []types.Event
	eventYear  int
}

// NewMovementCreateView creates the movement form
func NewMovementCreateView(m router.Mount, opts Options) (router.View, error) {
	return &MovementCreateView{Base: NewBase(m, opts)}, nil
}

// Show loads categories and events and draws the form
func (v *MovementCreateView) Show(ctx context.Context) error {
	v.eventYear = v.Options.Now().Year()
	categories, _ := SafeCall(ctx, &v.Base, v.Services.Economic.Categories, "Cargando categorías...", "")
	v.categories = categories
	v.loadEvents(ctx)
	v.render(ctx)
	return nil
}

func (v *MovementCreateView) loadEvents(ctx context.Context) {
	events, _ := SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.Event, error) {
		return v.Services.Events.List(ctx, v.eventYear)
	}, "Cargando eventos...", "")
	v.events = events
}

func (v *MovementCreateView) back(ctx context.Context) {
	v.Go(ctx, router.EconomyMovements, nil)
}

func (v *MovementCreateView) render(ctx context.Context) {
	v.Header(ctx, "Crear Movimiento Económico")
	v.Surface.Actions(
		surface.Action{Key: "b", Label: "Volver", Run: v.back},
		surface.Action{Key: "a", Label: fmt.Sprintf("Año eventos (%d)", v.eventYear), Run: v.yearForm},
	)
	if len(v.events) == 0 {
		v.Surface.Text(fmt.Sprintf("No hay eventos en %d", v.eventYear))
	}
	v.Surface.Form(surface.Form{
		Title: "Nuevo movimiento",
		Fields: []surface.FormField{
			{Key: "concept", Label: "Concepto", Required: true, Validate: func(s string) error { return types.MaxLen("concepto", s, 45) }},
			{Key: "amount", Label: "Cantidad (€)", Placeholder: "0,00", Required: true},
			{Key: "type", Label: "Tipo de movimiento", Value: strconv.Itoa(int(types.MovementExpense)), Options: movementTypeOptions},
			{Key: "year", Label: "Año de ejercicio", Value: strconv.Itoa(v.Options.Now().Year()), Required: true},
			{Key: "event", Label: "Evento", Options: eventOptions(v.events, "")},
			{Key: "cash", Label: "Caja", Value: strconv.Itoa(int(types.CashBoxNotIn)), Options: cashBoxOptions},
			{Key: "grant", Label: "Imputable a subvención", Value: "false", Options: yesNoOptions},
			{Key: "category", Label: "Categoría de subvención", Options: categoryOptions(v.categories)},
			{Key: "notes", Label: "Consideraciones"},
		},
		Submit: v.create,
		Cancel: v.back,
	})
}

func (v *MovementCreateView) yearForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title:  "Año de los eventos",
		Fields: []surface.FormField{{Key: "year", Label: "Año", Value: strconv.Itoa(v.eventYear), Required: true}},
		Submit: func(ctx context.Context, values map[string]string) {
			year, err := atoi("año", values["year"])
			if err != nil {
				v.Fail(err.Error())
				return
			}
			v.eventYear = year
			v.loadEvents(ctx)
			v.render(ctx)
		},
		Cancel: v.render,
	})
}

func (v *MovementCreateView) create(ctx context.Context, values map[string]string) {
	movement, err := BuildMovement(values, v.categories)
	if err != nil {
		v.Fail(err.Error())
		return
	}
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Economic.CreateMovement(ctx, movement)
	}, "Creando movimiento...", "Movimiento creado correctamente") {
		v.back(ctx)
	}
}
