package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

const isoDate = "2006-01-02"

var stateOptions = []surface.Option{
	{Label: "Todos", Value: "0"},
	{Label: "Borrador", Value: strconv.Itoa(int(types.MovementDraft))},
	{Label: "Pendiente Revisión", Value: strconv.Itoa(int(types.MovementPendingReview))},
	{Label: "Revisado", Value: strconv.Itoa(int(types.MovementReviewed))},
}

var grantOptions = []surface.Option{
	{Label: "Todos", Value: ""},
	{Label: "Sí", Value: "true"},
	{Label: "No", Value: "false"},
}

// eventOptions lists events as select options, optionally led by "Todos"
func eventOptions(events []types.Event, all string) []surface.Option {
	var opts []surface.Option
	if all != "" {
		opts = append(opts, surface.Option{Label: all, Value: "0"})
	}
	for _, e := range events {
		opts = append(opts, surface.Option{
			Label: fmt.Sprintf("%s (%s)", e.Name, e.DateLabel()),
			Value: strconv.Itoa(e.ID),
		})
	}
	return opts
}

// MovementsView searches economic movements
type MovementsView struct {
	Base
	movements []types.EconomicMovement
	events    []types.Event
	year      int
	values    map[string]string
}

// NewMovementsView creates the movements list
func NewMovementsView(m router.Mount, opts Options) (router.View, error) {
	return &MovementsView{Base: NewBase(m, opts)}, nil
}

// Show loads the latest movements and the current year's events
func (v *MovementsView) Show(ctx context.Context) error {
	now := v.Options.Now()
	v.year = now.Year()
	v.values = map[string]string{
		"from": time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(isoDate),
		"to":   now.Format(isoDate),
	}

	movements, _ := SafeCall(ctx, &v.Base, v.Services.Economic.LastMovements, "Cargando movimientos recientes...", "")
	v.movements = movements
	v.loadEvents(ctx)

	v.render(ctx)
	return nil
}

func (v *MovementsView) loadEvents(ctx context.Context) {
	events, _ := SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.Event, error) {
		return v.Services.Events.List(ctx, v.year)
	}, "Cargando eventos...", "")
	v.events = events
}

func (v *MovementsView) render(ctx context.Context) {
	v.Header(ctx, "Movimientos Económicos")

	actions := []surface.Action{
		{Key: "b", Label: "Volver", Run: func(ctx context.Context) { v.Go(ctx, router.Economy, nil) }},
		{Key: "f", Label: "Filtrar", Run: v.filterForm},
		{Key: "a", Label: fmt.Sprintf("Año eventos (%d)", v.year), Run: v.yearForm},
		{Key: "c", Label: "Limpiar filtros", Run: v.clearFilters},
	}
	if v.Can(ctx, permission.MovementsManage) {
		actions = append(actions, surface.Action{
			Key: "n", Label: "Crear movimiento",
			Run: func(ctx context.Context) { v.Go(ctx, router.EconomyMovementCreate, nil) },
		})
	}
	v.Surface.Actions(actions...)

	v.Surface.Table(surface.Table{
		Headers: movementHeaders,
		Rows:    movementRows(v.movements),
		Select:  v.open,
	})
}

func (v *MovementsView) open(ctx context.Context, row int) {
	if row < 0 || row >= len(v.movements) {
		return
	}
	v.Go(ctx, router.EconomyMovementDetail, router.Params{"movement_id": v.movements[row].ID})
}

func (v *MovementsView) filterForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title: "Filtros",
		Fields: []surface.FormField{
			{Key: "from", Label: "Fecha desde", Placeholder: "AAAA-MM-DD", Value: v.values["from"], Required: true, Validate: validDate},
			{Key: "to", Label: "Fecha hasta", Placeholder: "AAAA-MM-DD", Value: v.values["to"], Validate: validator(validDate)},
			{Key: "state", Label: "Estado", Value: v.values["state"], Options: stateOptions},
			{Key: "grant", Label: "Imputable a subvención", Value: v.values["grant"], Options: grantOptions},
			{Key: "event", Label: "Evento", Value: v.values["event"], Options: eventOptions(v.events, "Todos")},
		},
		Submit: v.apply,
		Cancel: v.render,
	})
}

func (v *MovementsView) yearForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title: "Año de los eventos",
		Fields: []surface.FormField{
			{Key: "year", Label: "Año", Value: strconv.Itoa(v.year), Required: true},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			year, err := atoi("año", values["year"])
			if err != nil {
				v.Fail(err.Error())
				return
			}
			v.year = year
			delete(v.values, "event")
			v.loadEvents(ctx)
			v.render(ctx)
		},
		Cancel: v.render,
	})
}

func (v *MovementsView) clearFilters(ctx context.Context) {
	now := v.Options.Now()
	v.values = map[string]string{
		"from": time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).Format(isoDate),
		"to":   now.Format(isoDate),
	}
	v.render(ctx)
}

// Filters builds the search request from form values
func Filters(values map[string]string) (types.EconomicMovementFilters, error) {
	filters := types.EconomicMovementFilters{
		From: strings.TrimSpace(values["from"]),
		To:   optional(values["to"]),
	}
	if err := validDate(filters.From); err != nil {
		return filters, err
	}

	if s := strings.TrimSpace(values["state"]); s != "" && s != "0" {
		n, err := atoi("estado", s)
		if err != nil {
			return filters, err
		}
		state := types.MovementState(n)
		filters.State = &state
	}
	switch values["grant"] {
	case "true":
		filters.GrantChargeable = types.Ptr(true)
	case "false":
		filters.GrantChargeable = types.Ptr(false)
	}
	if s := strings.TrimSpace(values["event"]); s != "" && s != "0" {
		n, err := atoi("evento", s)
		if err != nil {
			return filters, err
		}
		filters.EventID = &n
	}
	return filters, nil
}

func (v *MovementsView) apply(ctx context.Context, values map[string]string) {
	filters, err := Filters(values)
	if err != nil {
		v.Fail(fmt.Sprintf("Error al aplicar filtros: %v", err))
		return
	}
	v.values = values

	movements, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.EconomicMovement, error) {
		return v.Services.Economic.Movements(ctx, filters)
	}, "Buscando movimientos...", "")
	if !ok {
		return
	}
	v.movements = movements

	if len(v.movements) > 0 {
		v.Success(fmt.Sprintf("Encontrados %d movimientos", len(v.movements)))
	} else {
		v.Success("No se encontraron movimientos con los filtros aplicados")
	}
	v.render(ctx)
}

func validDate(s string) error {
	if _, err := time.Parse(isoDate, strings.TrimSpace(s)); err != nil {
		return &types.FieldError{Field: "fecha", Message: "formato AAAA-MM-DD"}
	}
	return nil
}
