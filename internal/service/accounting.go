package service

import (
	"context"
	"fmt"
	"net/http"

	"github.com/lasatanica/backoffice/pkg/backoffice/client"
	"github.com/lasatanica/backoffice/pkg/backoffice/types"
)

// AccountingService manages accounting documents attached to movements
type AccountingService struct {
	api Doer
}

// List returns the documents of a movement
func (s *AccountingService) List(ctx context.Context, movementID int) ([]types.AccountingDoc, error) {
	return get[[]types.AccountingDoc](ctx, s.api, "/accounting_docs/accounting_docs_list", map[string]any{"movimiento_id": movementID})
}

// Delete removes a document
func (s *AccountingService) Delete(ctx context.Context, docID int) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodDelete,
		Path:   "/accounting_docs/delete_accounting_doc",
		Query:  map[string]any{"doc_id": docID},
	}, http.StatusOK)
}

// Update renames a document
func (s *AccountingService) Update(ctx context.Context, docID int, doc types.AccountingDocUpdate) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/accounting_docs/update_accounting_doc",
		Query:  map[string]any{"doc_id": docID},
		Body:   doc,
	}, http.StatusOK)
}

// Upload attaches a new document to a movement
func (s *AccountingService) Upload(ctx context.Context, movementID int, name string, file client.File) error {
	return send(ctx, s.api, client.Request{
		Method: http.MethodPost,
		Path:   "/accounting_docs/upload_accounting_doc",
		Query:  map[string]any{"movimiento_id": movementID, "nombre": name},
		Files:  map[string]client.File{"file": file},
	}, http.StatusCreated)
}

// Download fetches the document file
func (s *AccountingService) Download(ctx context.Context, docID int) (*Download, error) {
	return download(ctx, s.api, "/accounting_docs/download_accounting_doc", map[string]any{"doc_id": docID}, fmt.Sprintf("documento_%d", docID))
}
