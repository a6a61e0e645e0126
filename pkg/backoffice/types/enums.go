package types

// Status identifiers the API uses across resources. The numeric ids are
// rows of the server's state table and travel as integers.
const (
	UserStatusActive   = "usuario_activo"
	UserStatusInactive = "usuario_inactivo"

	UserStatusActiveID   = 1
	UserStatusInactiveID = 2

	CREStatusComplete   = "cre_completo"
	CREStatusIncomplete = "cre_incompleto"

	CREStatusCompleteID   = 3
	CREStatusIncompleteID = 4

	RGCREStatusComplete   = "rgcre_completo"
	RGCREStatusIncomplete = "rgcre_incompleto"

	RGCREStatusCompleteID   = 5
	RGCREStatusIncompleteID = 6
)

// MovementType distinguishes income from expense movements
type MovementType int

const (
	MovementIncome  MovementType = 12
	MovementExpense MovementType = 13
)

// String returns the display label
func (m MovementType) String() string {
	switch m {
	case MovementIncome:
		return "Entrada"
	case MovementExpense:
		return "Salida"
	default:
		return "Desconocido"
	}
}

// MovementState is the review state of an economic movement
type MovementState int

const (
	MovementDraft         MovementState = 7
	MovementPendingReview MovementState = 8
	MovementReviewed      MovementState = 9
)

// String returns the display label
func (m MovementState) String() string {
	switch m {
	case MovementDraft:
		return "Borrador"
	case MovementPendingReview:
		return "Pendiente de revisión"
	case MovementReviewed:
		return "Revisado"
	default:
		return "Desconocido"
	}
}

// CashBoxState records whether a movement went through the cash box
type CashBoxState int

const (
	CashBoxIn    CashBoxState = 14
	CashBoxNotIn CashBoxState = 15
)

// InvoiceComputable records whether an invoice counts towards a grant
type InvoiceComputable int

const (
	InvoiceComputes       InvoiceComputable = 10
	InvoiceDoesNotCompute InvoiceComputable = 11
)
