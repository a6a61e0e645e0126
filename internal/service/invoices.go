package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// InvoiceService manages invoices attached to movements
type InvoiceService struct {
	api Doer
}

// ByMovement returns the invoices of a movement
func (s *InvoiceService) ByMovement(ctx context.Context, movementID int) ([]types.Invoice, error) {
	return get[[]types.Invoice](ctx, s.api, "/invoices/get_invoices_by_movement", map[string]any{"movimiento_id": movementID})
}

// Create creates an invoice
func (s *InvoiceService) Create(ctx context.Context, invoice types.InvoiceCreate) error {
	return send(ctx, s.api, client.Request{Method: http.MethodPost, Path: "/invoices/create_invoice", Body: invoice}, http.StatusCreated)
}

// UpdateData applies a partial update to the invoice fields
func (s *InvoiceService) UpdateData(ctx context.Context, invoiceID int, invoice types.InvoiceUpdate) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/invoices/update_invoice_data",
		Query:  map[string]any{"factura_id": invoiceID},
		Body:   invoice,
	}, http.StatusOK)
}

// UpdateFile replaces the invoice PDF
func (s *InvoiceService) UpdateFile(ctx context.Context, invoiceID int, file client.File) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/invoices/update_invoice_file",
		Query:  map[string]any{"factura_id": invoiceID},
		Files:  map[string]client.File{"file": file},
	}, http.StatusOK)
}

// Download fetches the invoice PDF
func (s *InvoiceService) Download(ctx context.Context, invoiceID int) (*Download, error) {
	return download(ctx, s.api, "/invoices/download_invoice", map[string]any{"factura_id": invoiceID}, fmt.Sprintf("factura_%d.pdf", invoiceID))
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, invoiceID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodDelete,
		Path:   "/invoices/delete_invoice",
		Query:  map[string]any{"factura_id": invoiceID},
	}, http.StatusOK)
}
