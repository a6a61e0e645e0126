package types

// Invoice is an invoice attached to an economic movement
type Invoice struct {
	ID            int               `json:"id_factura"`
	Name          string            `json:"nombre"`
	Computable    InvoiceComputable `json:"ind_computable"`
	Amount        Cents             `json:"cantidad_ctm"`
	IssuedOn      *Date             `json:"fecha_emision_factura"`
	IssuerID      *int              `json:"id_emisor"`
	BeneficiaryID *int              `json:"id_beneficiario"`
	MovementID    int               `json:"id_movimiento_economico"`
	ExternalCode  *string           `json:"cod_factura_externo"`
	CreatedAt     DateTime          `json:"fecha_creacion"`
	CreatedBy     int               `json:"usuaio_creacion"` // sic
}

// InvoiceCreate is the create request
type InvoiceCreate struct {
	MovementID    int               `json:"id_movimiento_economico"`
	Name          string            `json:"nombre"`
	Computable    InvoiceComputable `json:"ind_computable"`
	Amount        Cents             `json:"cantidad_ctm"`
	IssuedOn      *string           `json:"fecha_emision_factura"`
	IssuerID      *int              `json:"id_emisor"`
	BeneficiaryID *int              `json:"id_beneficiario"`
	ExternalCode  *string           `json:"cod_factura_externo"`
}

// Validate checks the fields the server rejects
func (i InvoiceCreate) Validate() error {
	if err := Required("nombre", i.Name); err != nil {
		return err
	}
	if i.Amount < 0 {
		return &FieldError{Field: "cantidad_ctm", Message: "no puede ser negativa"}
	}
	if i.Computable != InvoiceComputes && i.Computable != InvoiceDoesNotCompute {
		return &FieldError{Field: "ind_computable", Message: "valor no válido"}
	}
	return nil
}

// InvoiceUpdate is the partial data update request
type InvoiceUpdate struct {
	Computable    *InvoiceComputable `json:"ind_computable"`
	Name          *string            `json:"nombre"`
	Amount        *Cents             `json:"cantidad_ctm"`
	IssuedOn      *string            `json:"fecha_emision_factura"`
	IssuerID      *int               `json:"id_emisor"`
	BeneficiaryID *int               `json:"id_beneficiario"`
	ExternalCode  *string            `json:"cod_factura_externo"`
}
