package types

// AccountingDoc is an accounting document attached to a movement
type AccountingDoc struct {
	ID         int    `json:"id_docs_contables"`
	Name       string `json:"nombre"`
	Path       string `json:"path"`
	MovementID int    `json:"id_movimiento_economico"`
}

// AccountingDocUpdate renames an accounting document
type AccountingDocUpdate struct {
	Name *string `json:"nombre"`
}
