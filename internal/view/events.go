package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// BuildEvent turns the event form into a create request
func BuildEvent(values map[string]string) (types.EventCreate, error) {
	var errs FormErrors
	if strings.TrimSpace(values["name"]) == "" {
		errs = append(errs, "Nombre: Este campo es obligatorio")
	}
	if strings.TrimSpace(values["description"]) == "" {
		errs = append(errs, "Descripción: Este campo es obligatorio")
	}

	year, err := strconv.Atoi(strings.TrimSpace(values["year"]))
	if err != nil || year <= 0 {
		errs = append(errs, "El año debe ser un número positivo")
	}
	month, err := optionalInt(values["month"])
	if err != nil || (month != nil && (*month < 1 || *month > 12)) {
		errs = append(errs, "El mes debe estar entre 1 y 12")
	}
	day, err := optionalInt(values["day"])
	if err != nil || (day != nil && (*day < 1 || *day > 31)) {
		errs = append(errs, "El día debe estar entre 1 y 31")
	}
	if len(errs) > 0 {
		return types.EventCreate{}, errs
	}

	e := types.EventCreate{
		Name:        strings.TrimSpace(values["name"]),
		Description: strings.TrimSpace(values["description"]),
		Year:        year,
		Month:       month,
		Day:         day,
	}
	if err := e.Validate(); err != nil {
		return e, err
	}
	return e, nil
}

func eventFields(e *types.Event, year int) []surface.FormField {
	values := map[string]string{"year": itoa(year)}
	if e != nil {
		values = map[string]string{
			"name":        e.Name,
			"description": e.Description,
			"year":        itoa(e.Year),
			"month":       optionalItoa(e.Month),
			"day":         optionalItoa(e.Day),
		}
	}
	return []surface.FormField{
		{Key: "name", Label: "Nombre*", Value: values["name"], Required: true},
		{Key: "description", Label: "Descripción*", Value: values["description"], Required: true},
		{Key: "year", Label: "Año*", Value: values["year"], Required: true},
		{Key: "month", Label: "Mes", Value: values["month"]},
		{Key: "day", Label: "Día", Value: values["day"]},
	}
}

// EventsView lists the events of one year with a local name filter
type EventsView struct {
	Base
	year   int
	events []types.Event
	name   string
}

// NewEventsView creates the events list
func NewEventsView(m router.Mount, opts Options) (router.View, error) {
	v := &EventsView{Base: NewBase(m, opts)}
	v.year = v.Options.Now().Year()
	if year, ok := v.Params.Int("year"); ok && year > 0 {
		v.year = year
	}
	return v, nil
}

// Show loads the current year
func (v *EventsView) Show(ctx context.Context) error {
	v.load(ctx, v.year)
	v.render(ctx)
	return nil
}

func (v *EventsView) load(ctx context.Context, year int) {
	events, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.Event, error) {
		return v.Services.Events.List(ctx, year)
	}, fmt.Sprintf("Cargando eventos del %d...", year), "")
	if ok {
		v.events = events
		v.year = year
	}
}

func (v *EventsView) visible() []types.Event {
	q := strings.ToLower(strings.TrimSpace(v.name))
	if q == "" {
		return v.events
	}
	var out []types.Event
	for _, e := range v.events {
		if strings.Contains(strings.ToLower(e.Name), q) {
			out = append(out, e)
		}
	}
	return out
}

func (v *EventsView) render(ctx context.Context) {
	v.Header(ctx, "Eventos")

	actions := []surface.Action{
		{Key: "y", Label: "Buscar por año", Run: v.filterForm},
		{Key: "c", Label: "Limpiar", Run: v.clear},
	}
	if v.Can(ctx, permission.EventsManage) {
		actions = append(actions, surface.Action{Key: "n", Label: "Crear nuevo evento", Run: func(ctx context.Context) {
			v.Go(ctx, router.EventCreate, router.Params{"year": v.year})
		}})
	}
	v.Surface.Actions(actions...)

	events := v.visible()
	v.Surface.Text(fmt.Sprintf("Eventos del %d (%d)", v.year, len(events)))
	if len(events) == 0 {
		v.Surface.Text("No hay eventos para mostrar")
		return
	}
	rows := make([][]string, len(events))
	for i, e := range events {
		rows[i] = []string{itoa(e.ID), e.Name, e.Description, e.DateLabel()}
	}
	v.Surface.Table(surface.Table{
		Headers: []string{"ID", "Nombre", "Descripción", "Fecha"},
		Rows:    rows,
		Select: func(ctx context.Context, row int) {
			if row >= 0 && row < len(events) {
				v.Go(ctx, router.EventDetail, router.Params{"event_id": events[row].ID})
			}
		},
	})
}

func (v *EventsView) filterForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title: "Filtrar eventos",
		Fields: []surface.FormField{
			{Key: "year", Label: "Año", Value: itoa(v.year), Required: true},
			{Key: "name", Label: "Filtrar por nombre", Placeholder: "Buscar dentro de los eventos cargados...", Value: v.name},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			year, err := strconv.Atoi(strings.TrimSpace(values["year"]))
			if err != nil || year <= 0 {
				v.Fail("El año debe ser un número positivo")
				return
			}
			v.name = values["name"]
			if year != v.year {
				v.load(ctx, year)
			}
			v.render(ctx)
		},
		Cancel: v.render,
	})
}

func (v *EventsView) clear(ctx context.Context) {
	v.name = ""
	v.load(ctx, v.Options.Now().Year())
	v.render(ctx)
}

// EventDetailView shows and edits one event
type EventDetailView struct {
	Base
	id    int
	event *types.Event
}

// NewEventDetailView creates the event detail screen
func NewEventDetailView(m router.Mount, opts Options) (router.View, error) {
	return &EventDetailView{Base: NewBase(m, opts)}, nil
}

// Show loads the event
func (v *EventDetailView) Show(ctx context.Context) error {
	id, ok := v.RequireID(ctx, "event_id", "No se ha seleccionado ningún evento", router.Events)
	if !ok {
		return nil
	}
	v.id = id
	if !v.load(ctx) {
		v.Fail("No se ha podido cargar el evento")
		v.back(ctx)
		return nil
	}
	v.render(ctx)
	return nil
}

func (v *EventDetailView) back(ctx context.Context) {
	v.Go(ctx, router.Events, nil)
}

func (v *EventDetailView) load(ctx context.Context) bool {
	event, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.Event, error) {
		return v.Services.Events.Get(ctx, v.id)
	}, "Cargando evento...", "")
	if ok {
		v.event = event
	}
	return ok
}

func (v *EventDetailView) render(ctx context.Context) {
	e := v.event
	v.Header(ctx, "Detalles del Evento")

	actions := []surface.Action{{Key: "b", Label: "Volver a la lista", Run: v.back}}
	if v.Can(ctx, permission.EventsManage) {
		actions = append(actions, surface.Action{Key: "e", Label: "Editar", Run: v.editForm})
	}
	v.Surface.Actions(actions...)

	v.Surface.Text("Información del Evento")
	v.Surface.Fields(
		surface.Field{Label: "ID", Value: itoa(e.ID)},
		surface.Field{Label: "Nombre", Value: e.Name},
		surface.Field{Label: "Descripción", Value: e.Description},
		surface.Field{Label: "Fecha", Value: e.DateLabel()},
	)
}

func (v *EventDetailView) editForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title:  "Editar evento",
		Fields: eventFields(v.event, v.event.Year),
		Submit: v.save,
		Cancel: v.render,
	})
}

func (v *EventDetailView) save(ctx context.Context, values map[string]string) {
	e, err := BuildEvent(values)
	if err != nil {
		v.Fail(fmt.Sprintf("Errores de validación: %v", err))
		return
	}
	update := types.EventUpdate{
		ID:          v.id,
		Name:        types.Ptr(e.Name),
		Description: types.Ptr(e.Description),
		Year:        types.Ptr(e.Year),
		Month:       e.Month,
		Day:         e.Day,
	}
	if !SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Events.Update(ctx, update)
	}, "Guardando cambios...", "Evento actualizado correctamente") {
		return
	}
	if v.load(ctx) {
		v.render(ctx)
	}
}

// EventFormView creates an event
type EventFormView struct {
	Base
}

// NewEventFormView creates the event creation form
func NewEventFormView(m router.Mount, opts Options) (router.View, error) {
	return &EventFormView{Base: NewBase(m, opts)}, nil
}

func (v *EventFormView) back(ctx context.Context) {
	v.Go(ctx, router.Events, nil)
}

// Show draws the form, defaulting the year to the one passed in
func (v *EventFormView) Show(ctx context.Context) error {
	year, ok := v.Params.Int("year")
	if !ok || year <= 0 {
		year = v.Options.Now().Year()
	}
	v.Header(ctx, "Crear Evento")
	v.Surface.Actions(surface.Action{Key: "b", Label: "Cancelar", Run: v.back})
	v.Surface.Form(surface.Form{
		Title:  "Información del Evento",
		Fields: eventFields(nil, year),
		Submit: v.create,
		Cancel: v.back,
	})
	return nil
}

func (v *EventFormView) create(ctx context.Context, values map[string]string) {
	e, err := BuildEvent(values)
	if err != nil {
		v.Fail(fmt.Sprintf("Errores de validación: %v", err))
		return
	}
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Events.Create(ctx, e)
	}, "Creando evento...", "Evento creado correctamente") {
		v.back(ctx)
	}
}
