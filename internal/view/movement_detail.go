package view

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/lasatanica/backoffice/internal/permission"
	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/service"
	"github.com/lasatanica/backoffice/internal/surface"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

var computableOptions = []surface.Option{
	{Label: "Computable", Value: strconv.Itoa(int(types.InvoiceComputes))},
	{Label: "No computable", Value: strconv.Itoa(int(types.InvoiceDoesNotCompute))},
}

var movementStateOptions = []surface.Option{
	{Label: "Borrador", Value: strconv.Itoa(int(types.MovementDraft))},
	{Label: "Pendiente Revisión", Value: strconv.Itoa(int(types.MovementPendingReview))},
	{Label: "Revisado", Value: strconv.Itoa(int(types.MovementReviewed))},
}

// BuildInvoice turns the invoice form into a create request. Computable
// invoices need an issue date within the fiscal year, both parties and an
// external code.
func BuildInvoice(values map[string]string, movementID, fiscalYear int) (types.InvoiceCreate, error) {
	inv := types.InvoiceCreate{MovementID: movementID}

	inv.Name = strings.TrimSpace(values["name"])
	if inv.Name == "" {
		return inv, userError("El nombre de la operación es obligatorio")
	}
	if strings.TrimSpace(values["amount"]) == "" {
		return inv, userError("La cantidad es obligatoria")
	}
	amount, err := parseCents("cantidad", values["amount"])
	if err != nil {
		return inv, err
	}
	inv.Amount = amount

	c, err := strconv.Atoi(values["computable"])
	if err != nil {
		return inv, userError("El estado computable es obligatorio")
	}
	inv.Computable = types.InvoiceComputable(c)

	inv.IssuedOn = optional(values["issued_on"])
	if inv.IssuedOn != nil {
		d, err := types.NewDate(*inv.IssuedOn)
		if err != nil {
			return inv, &types.FieldError{Field: "fecha_emision_factura", Message: "formato AAAA-MM-DD"}
		}
		if fiscalYear > 0 && d.Year() != fiscalYear {
			return inv, userError(fmt.Sprintf("La fecha debe ser del año fiscal %d", fiscalYear))
		}
	}
	if inv.IssuerID, err = optionalID(values["issuer"]); err != nil {
		return inv, err
	}
	if inv.BeneficiaryID, err = optionalID(values["beneficiary"]); err != nil {
		return inv, err
	}
	inv.ExternalCode = optional(values["code"])

	if inv.Computable == types.InvoiceComputes {
		switch {
		case inv.IssuedOn == nil:
			return inv, userError("La fecha de emision de la factura es obligatoria")
		case inv.IssuerID == nil:
			return inv, userError("El emisor es obligatorio")
		case inv.BeneficiaryID == nil:
			return inv, userError("El receptor es obligatorio")
		case inv.ExternalCode == nil:
			return inv, userError("El código de factura externo es obligatorio")
		}
	}
	return inv, inv.Validate()
}

// optionalID reads a select value where "0" or empty means none
func optionalID(s string) (*int, error) {
	n, err := optionalInt(s)
	if err != nil || n == nil || *n <= 0 {
		return nil, err
	}
	return n, nil
}

// MovementDetailView shows one movement with its invoices and accounting
// documents
type MovementDetailView struct {
	Base
	id            int
	movement      *types.EconomicMovement
	event         *types.Event
	categories    []types.GrantCategory
	invoices      []types.Invoice
	docs          []types.AccountingDoc
	organizations []types.OrganizationShortView

	invoice int
	doc     int
}

// NewMovementDetailView creates the movement detail screen
func NewMovementDetailView(m router.Mount, opts Options) (router.View, error) {
	return &MovementDetailView{Base: NewBase(m, opts), invoice: -1, doc: -1}, nil
}

// Show loads the movement and everything attached to it
func (v *MovementDetailView) Show(ctx context.Context) error {
	id, ok := v.RequireID(ctx, "movement_id", "No se seleccionó ningún movimiento", router.EconomyMovements)
	if !ok {
		return nil
	}
	v.id = id

	movement, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.EconomicMovement, error) {
		return v.Services.Economic.Movement(ctx, id)
	}, "Cargando detalles del movimiento...", "")
	if !ok {
		v.Go(ctx, router.EconomyMovements, nil)
		return nil
	}
	v.movement = movement

	if movement.EventID > 0 {
		v.event, _ = SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.Event, error) {
			return v.Services.Events.Get(ctx, movement.EventID)
		}, "Cargando evento...", "")
	}
	v.categories, _ = SafeCall(ctx, &v.Base, v.Services.Economic.Categories, "Cargando categorías...", "")
	v.loadInvoices(ctx)
	v.loadDocs(ctx)

	v.render(ctx)
	return nil
}

func (v *MovementDetailView) loadInvoices(ctx context.Context) {
	if !v.Can(ctx, permission.InvoiceRead) {
		return
	}
	v.invoices, _ = SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.Invoice, error) {
		return v.Services.Invoices.ByMovement(ctx, v.id)
	}, "Cargando facturas...", "")
	v.invoice = -1
}

func (v *MovementDetailView) loadDocs(ctx context.Context) {
	if !v.Can(ctx, permission.AccountingDocsRead) {
		return
	}
	v.docs, _ = SafeCall(ctx, &v.Base, func(ctx context.Context) ([]types.AccountingDoc, error) {
		return v.Services.Accounting.List(ctx, v.id)
	}, "Cargando documentos...", "")
	v.doc = -1
}

// editable reports whether the movement may be changed. Reviewed movements
// need the review permission.
func (v *MovementDetailView) editable(ctx context.Context) bool {
	if !v.Can(ctx, permission.MovementsManage) {
		return false
	}
	if types.MovementState(v.movement.State) == types.MovementReviewed {
		return v.Can(ctx, permission.MovementsManageReview)
	}
	return true
}

func (v *MovementDetailView) categoryName(id int) string {
	for _, c := range v.categories {
		if c.ID == id {
			return c.Name
		}
	}
	return strconv.Itoa(id)
}

func (v *MovementDetailView) back(ctx context.Context) {
	v.Go(ctx, router.EconomyMovements, nil)
}

func (v *MovementDetailView) render(ctx context.Context) {
	m := v.movement
	v.Header(ctx, "Detalle Movimiento")

	event := strconv.Itoa(m.EventID)
	if v.event != nil {
		event = fmt.Sprintf("%s (%s)", v.event.Name, v.event.DateLabel())
	}
	v.Surface.Fields(
		surface.Field{Label: "Estado", Value: m.StateLabel()},
		surface.Field{Label: "Concepto", Value: m.Concept},
		surface.Field{Label: "Tipo", Value: m.Type.String()},
		surface.Field{Label: "Cantidad", Value: m.Amount.String()},
		surface.Field{Label: "Año ejercicio", Value: strconv.Itoa(m.FiscalYear)},
		surface.Field{Label: "Evento", Value: event},
		surface.Field{Label: "Imputable a subvención", Value: yesNo(m.GrantChargeable)},
		surface.Field{Label: "Categoría", Value: v.categoryName(m.GrantCategoryID)},
		surface.Field{Label: "Caja", Value: yesNo(m.CashBox == types.CashBoxIn)},
		surface.Field{Label: "Consideraciones", Value: text(m.Notes)},
		surface.Field{Label: "Creado", Value: m.CreatedAt.String()},
		surface.Field{Label: "Actualizado", Value: m.UpdatedAt.String()},
	)
	if v.event != nil && v.event.Year != m.FiscalYear {
		v.Surface.Text(fmt.Sprintf("El evento es del año %d, diferente del año fiscal (%d)", v.event.Year, m.FiscalYear))
	}

	actions := []surface.Action{{Key: "b", Label: "Volver", Run: v.back}}
	if v.editable(ctx) {
		actions = append(actions,
			surface.Action{Key: "e", Label: "Editar", Run: v.editForm},
			surface.Action{Key: "x", Label: "Eliminar", Run: func(ctx context.Context) {
				v.Confirm("¿Eliminar este movimiento?", v.delete)
			}},
		)
	} else if types.MovementState(m.State) == types.MovementReviewed {
		v.Surface.Text("Movimiento revisado: solo lectura")
	}
	v.Surface.Actions(actions...)

	v.renderInvoices(ctx)
	v.renderDocs(ctx)
}

func (v *MovementDetailView) renderInvoices(ctx context.Context) {
	if !v.Can(ctx, permission.InvoiceRead) {
		return
	}
	rows := make([][]string, len(v.invoices))
	for i, inv := range v.invoices {
		issued := ""
		if inv.IssuedOn != nil {
			issued = inv.IssuedOn.String()
		}
		rows[i] = []string{strconv.Itoa(inv.ID), inv.Name, inv.Amount.String(), issued, text(inv.ExternalCode), yesNo(inv.Computable == types.InvoiceComputes)}
	}
	v.Surface.Table(surface.Table{
		Headers: []string{"Factura", "Nombre", "Cantidad", "Emisión", "Código", "Computable"},
		Rows:    rows,
		Select: func(ctx context.Context, row int) {
			v.invoice = row
			v.render(ctx)
		},
	})

	var actions []surface.Action
	write := v.Can(ctx, permission.InvoiceWrite)
	if write {
		actions = append(actions, surface.Action{Key: "f", Label: "Añadir factura", Run: func(ctx context.Context) { v.invoiceForm(ctx, nil) }})
	}
	if inv := v.selectedInvoice(); inv != nil {
		v.Surface.Text(fmt.Sprintf("Factura seleccionada: %s", inv.Name))
		actions = append(actions, surface.Action{Key: "d", Label: "Descargar factura", Run: v.downloadInvoice})
		if write {
			actions = append(actions,
				surface.Action{Key: "i", Label: "Editar factura", Run: func(ctx context.Context) { v.invoiceForm(ctx, inv) }},
				surface.Action{Key: "z", Label: "Eliminar factura", Run: func(ctx context.Context) {
					v.Confirm(fmt.Sprintf("¿Eliminar la factura %s?", inv.Name), v.deleteInvoice)
				}},
			)
		}
	}
	if len(actions) > 0 {
		v.Surface.Actions(actions...)
	}
}

func (v *MovementDetailView) renderDocs(ctx context.Context) {
	if !v.Can(ctx, permission.AccountingDocsRead) {
		return
	}
	rows := make([][]string, len(v.docs))
	for i, d := range v.docs {
		rows[i] = []string{strconv.Itoa(d.ID), d.Name}
	}
	v.Surface.Table(surface.Table{
		Headers: []string{"Documento", "Nombre"},
		Rows:    rows,
		Select: func(ctx context.Context, row int) {
			v.doc = row
			v.render(ctx)
		},
	})

	var actions []surface.Action
	manage := v.Can(ctx, permission.AccountingDocsManage)
	if manage {
		actions = append(actions, surface.Action{Key: "u", Label: "Subir documento", Run: v.uploadForm})
	}
	if doc := v.selectedDoc(); doc != nil {
		v.Surface.Text(fmt.Sprintf("Documento seleccionado: %s", doc.Name))
		actions = append(actions, surface.Action{Key: "g", Label: "Descargar documento", Run: v.downloadDoc})
		if manage {
			actions = append(actions,
				surface.Action{Key: "r", Label: "Renombrar documento", Run: v.renameForm},
				surface.Action{Key: "k", Label: "Eliminar documento", Run: func(ctx context.Context) {
					v.Confirm(fmt.Sprintf("¿Eliminar el documento %s?", doc.Name), v.deleteDoc)
				}},
			)
		}
	}
	if len(actions) > 0 {
		v.Surface.Actions(actions...)
	}
}

func (v *MovementDetailView) selectedInvoice() *types.Invoice {
	if v.invoice < 0 || v.invoice >= len(v.invoices) {
		return nil
	}
	return &v.invoices[v.invoice]
}

func (v *MovementDetailView) selectedDoc() *types.AccountingDoc {
	if v.doc < 0 || v.doc >= len(v.docs) {
		return nil
	}
	return &v.docs[v.doc]
}

func (v *MovementDetailView) editForm(ctx context.Context) {
	m := v.movement
	states := movementStateOptions
	if !v.Can(ctx, permission.MovementsManageReview) {
		states = states[:2]
	}
	v.Surface.Form(surface.Form{
		Title: "Editar movimiento",
		Fields: []surface.FormField{
			{Key: "concept", Label: "Concepto", Value: m.Concept, Required: true, Validate: func(s string) error { return types.MaxLen("concepto", s, 45) }},
			{Key: "amount", Label: "Cantidad (€)", Value: euros(m.Amount), Required: true},
			{Key: "type", Label: "Tipo de movimiento", Value: strconv.Itoa(int(m.Type)), Options: movementTypeOptions},
			{Key: "state", Label: "Estado", Value: strconv.Itoa(m.State), Options: states},
			{Key: "cash", Label: "Caja", Value: strconv.Itoa(int(m.CashBox)), Options: cashBoxOptions},
			{Key: "grant", Label: "Imputable a subvención", Value: strconv.FormatBool(m.GrantChargeable), Options: yesNoOptions},
			{Key: "category", Label: "Categoría de subvención", Value: strconv.Itoa(m.GrantCategoryID), Options: categoryOptions(v.categories)},
			{Key: "notes", Label: "Consideraciones", Value: types.Deref(m.Notes)},
		},
		Submit: v.save,
		Cancel: v.render,
	})
}

// MovementUpdate turns the edit form into an update request
func MovementUpdate(values map[string]string) (types.EconomicMovementUpdate, error) {
	var u types.EconomicMovementUpdate

	concept := strings.TrimSpace(values["concept"])
	if err := types.Required("concepto", concept); err != nil {
		return u, err
	}
	if err := types.MaxLen("concepto", concept, 45); err != nil {
		return u, err
	}
	u.Concept = &concept

	amount, err := parseCents("cantidad", values["amount"])
	if err != nil {
		return u, err
	}
	u.Amount = &amount

	t, err := atoi("ind_movimiento", values["type"])
	if err != nil {
		return u, err
	}
	u.Type = types.Ptr(types.MovementType(t))

	s, err := atoi("ind_estado", values["state"])
	if err != nil {
		return u, err
	}
	u.State = types.Ptr(types.MovementState(s))

	c, err := atoi("ind_mov_caja", values["cash"])
	if err != nil {
		return u, err
	}
	u.CashBox = types.Ptr(types.CashBoxState(c))

	u.GrantChargeable = types.Ptr(values["grant"] == "true")
	if *u.GrantChargeable {
		cat, err := atoi("categorias_subvencion_id", values["category"])
		if err != nil {
			return u, err
		}
		u.GrantCategoryID = &cat
	}
	u.Notes = optional(values["notes"])
	return u, nil
}

func (v *MovementDetailView) save(ctx context.Context, values map[string]string) {
	update, err := MovementUpdate(values)
	if err != nil {
		v.Fail(fmt.Sprintf("Error en los datos introducidos: %v", err))
		return
	}
	if update.State != nil && *update.State == types.MovementReviewed && !v.Can(ctx, permission.MovementsManageReview) {
		v.Fail("No tienes permisos para marcar el movimiento como revisado")
		return
	}

	if !SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Economic.UpdateMovement(ctx, v.id, update)
	}, "Guardando movimiento...", "Movimiento actualizado correctamente") {
		return
	}
	if m, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*types.EconomicMovement, error) {
		return v.Services.Economic.Movement(ctx, v.id)
	}, "Cargando detalles del movimiento...", ""); ok {
		v.movement = m
	}
	v.render(ctx)
}

func (v *MovementDetailView) delete(ctx context.Context) {
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Economic.DeleteMovement(ctx, v.id)
	}, "Eliminando movimiento...", "Movimiento eliminado correctamente") {
		v.back(ctx)
	}
}

func (v *MovementDetailView) loadOrganizations(ctx context.Context) {
	if v.organizations != nil {
		return
	}
	v.organizations, _ = SafeCall(ctx, &v.Base, v.Services.Organizations.List, "Cargando organizaciones...", "")
}

func (v *MovementDetailView) organizationOptions() []surface.Option {
	opts := []surface.Option{{Label: "Ninguna", Value: "0"}}
	for _, o := range v.organizations {
		opts = append(opts, surface.Option{Label: fmt.Sprintf("%s (%s)", o.Name, o.NIF), Value: strconv.Itoa(o.ID)})
	}
	return opts
}

func (v *MovementDetailView) invoiceForm(ctx context.Context, existing *types.Invoice) {
	v.loadOrganizations(ctx)

	title := "Nueva factura"
	values := map[string]string{
		"computable":  strconv.Itoa(int(types.InvoiceDoesNotCompute)),
		"issuer":      "0",
		"beneficiary": "0",
	}
	if existing != nil {
		title = "Editar factura"
		values["name"] = existing.Name
		values["amount"] = euros(existing.Amount)
		values["computable"] = strconv.Itoa(int(existing.Computable))
		if existing.IssuedOn != nil {
			values["issued_on"] = existing.IssuedOn.Format(isoDate)
		}
		if existing.IssuerID != nil {
			values["issuer"] = strconv.Itoa(*existing.IssuerID)
		}
		if existing.BeneficiaryID != nil {
			values["beneficiary"] = strconv.Itoa(*existing.BeneficiaryID)
		}
		values["code"] = types.Deref(existing.ExternalCode)
	}

	v.Surface.Form(surface.Form{
		Title: title,
		Fields: []surface.FormField{
			{Key: "name", Label: "Nombre de la operación", Value: values["name"], Required: true},
			{Key: "amount", Label: "Cantidad (€)", Value: values["amount"], Required: true},
			{Key: "computable", Label: "Computable", Value: values["computable"], Options: computableOptions},
			{Key: "issued_on", Label: "Fecha de emisión", Placeholder: "AAAA-MM-DD", Value: values["issued_on"]},
			{Key: "issuer", Label: "Emisor", Value: values["issuer"], Options: v.organizationOptions()},
			{Key: "beneficiary", Label: "Receptor", Value: values["beneficiary"], Options: v.organizationOptions()},
			{Key: "code", Label: "Código de factura externo", Value: values["code"]},
			{Key: "file", Label: "Archivo de factura", Placeholder: "/ruta/factura.pdf"},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			v.saveInvoice(ctx, existing, values)
		},
		Cancel: v.render,
	})
}

func (v *MovementDetailView) saveInvoice(ctx context.Context, existing *types.Invoice, values map[string]string) {
	inv, err := BuildInvoice(values, v.id, v.movement.FiscalYear)
	if err != nil {
		v.Fail(err.Error())
		return
	}
	path := strings.TrimSpace(values["file"])
	if path == "" && existing == nil && inv.Computable == types.InvoiceComputes {
		v.Fail("El archivo de factura es obligatorio")
		return
	}

	var ok bool
	invoiceID := 0
	if existing != nil {
		invoiceID = existing.ID
		update := types.InvoiceUpdate{
			Computable:    &inv.Computable,
			Name:          &inv.Name,
			Amount:        &inv.Amount,
			IssuedOn:      inv.IssuedOn,
			IssuerID:      inv.IssuerID,
			BeneficiaryID: inv.BeneficiaryID,
			ExternalCode:  inv.ExternalCode,
		}
		ok = SafeDo(ctx, &v.Base, func(ctx context.Context) error {
			return v.Services.Invoices.UpdateData(ctx, invoiceID, update)
		}, "Actualizando operación...", "")
	} else {
		ok = SafeDo(ctx, &v.Base, func(ctx context.Context) error {
			return v.Services.Invoices.Create(ctx, inv)
		}, "Creando factura...", "")
	}
	if !ok {
		return
	}

	v.loadInvoices(ctx)
	if path != "" {
		if invoiceID == 0 {
			invoiceID = newestInvoice(v.invoices)
		}
		v.uploadInvoiceFile(ctx, invoiceID, path)
	}

	if existing != nil {
		v.Success("Factura actualizada correctamente")
	} else {
		v.Success("Factura creada correctamente")
	}
	v.render(ctx)
}

// newestInvoice returns the highest invoice id, the one just created
func newestInvoice(invoices []types.Invoice) int {
	id := 0
	for _, inv := range invoices {
		if inv.ID > id {
			id = inv.ID
		}
	}
	return id
}

func (v *MovementDetailView) uploadInvoiceFile(ctx context.Context, invoiceID int, path string) {
	file, err := readUpload(path)
	if err != nil {
		v.Fail(fmt.Sprintf("Error al subir el archivo de factura: %v", err))
		return
	}
	if invoiceID == 0 || !SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Invoices.UpdateFile(ctx, invoiceID, file)
	}, "Subiendo archivo de factura...", "") {
		v.Fail("Error al subir el archivo de factura")
	}
}

func (v *MovementDetailView) downloadInvoice(ctx context.Context) {
	inv := v.selectedInvoice()
	if inv == nil {
		return
	}
	id := inv.ID
	d, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*service.Download, error) {
		return v.Services.Invoices.Download(ctx, id)
	}, "Descargando factura...", "")
	if !ok {
		return
	}
	path, err := saveDownload(v.Options.DownloadDir, d)
	if err != nil {
		v.Fail(fmt.Sprintf("Error al guardar el archivo: %v", err))
		return
	}
	v.Success(fmt.Sprintf("Factura guardada en: %s", path))
}

func (v *MovementDetailView) deleteInvoice(ctx context.Context) {
	inv := v.selectedInvoice()
	if inv == nil {
		return
	}
	id := inv.ID
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Invoices.Delete(ctx, id)
	}, "Eliminando factura...", "Factura eliminada correctamente") {
		v.loadInvoices(ctx)
		v.render(ctx)
	}
}

func (v *MovementDetailView) uploadForm(ctx context.Context) {
	v.Surface.Form(surface.Form{
		Title: "Subir Documento Contable",
		Fields: []surface.FormField{
			{Key: "file", Label: "Archivo", Placeholder: "/ruta/documento.pdf", Required: true},
			{Key: "name", Label: "Nombre del documento"},
		},
		Submit: func(ctx context.Context, values map[string]string) {
			file, err := readUpload(values["file"])
			if err != nil {
				v.Fail(fmt.Sprintf("Error al leer el documento: %v", err))
				return
			}
			name := strings.TrimSpace(values["name"])
			if name == "" {
				name = file.Name
			}
			if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
				return v.Services.Accounting.Upload(ctx, v.id, name, file)
			}, "Subiendo documento...", "Documento subido correctamente") {
				v.loadDocs(ctx)
				v.render(ctx)
			}
		},
		Cancel: v.render,
	})
}

func (v *MovementDetailView) renameForm(ctx context.Context) {
	doc := v.selectedDoc()
	if doc == nil {
		return
	}
	id := doc.ID
	v.Surface.Form(surface.Form{
		Title:  "Renombrar documento",
		Fields: []surface.FormField{{Key: "name", Label: "Nombre del documento", Value: doc.Name, Required: true}},
		Submit: func(ctx context.Context, values map[string]string) {
			name := strings.TrimSpace(values["name"])
			if name == "" {
				v.Fail("El nombre del documento es obligatorio")
				return
			}
			if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
				return v.Services.Accounting.Update(ctx, id, types.AccountingDocUpdate{Name: &name})
			}, "Guardando documento...", "Documento actualizado correctamente") {
				v.loadDocs(ctx)
				v.render(ctx)
			}
		},
		Cancel: v.render,
	})
}

func (v *MovementDetailView) downloadDoc(ctx context.Context) {
	doc := v.selectedDoc()
	if doc == nil {
		return
	}
	id := doc.ID
	d, ok := SafeCall(ctx, &v.Base, func(ctx context.Context) (*service.Download, error) {
		return v.Services.Accounting.Download(ctx, id)
	}, "Descargando documento...", "")
	if !ok {
		return
	}
	path, err := saveDownload(v.Options.DownloadDir, d)
	if err != nil {
		v.Fail(fmt.Sprintf("Error al descargar el documento: %v", err))
		return
	}
	v.Success(fmt.Sprintf("Documento guardado en: %s", path))
}

func (v *MovementDetailView) deleteDoc(ctx context.Context) {
	doc := v.selectedDoc()
	if doc == nil {
		return
	}
	id := doc.ID
	if SafeDo(ctx, &v.Base, func(ctx context.Context) error {
		return v.Services.Accounting.Delete(ctx, id)
	}, "Eliminando documento...", "Documento eliminado correctamente") {
		v.loadDocs(ctx)
		v.render(ctx)
	}
}
