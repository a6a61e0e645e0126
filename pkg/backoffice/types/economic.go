package types

// EconomicMovement is one economic movement as listed and detailed by the API
type EconomicMovement struct {
	ID              int          `json:"id_movimiento_economico"`
	State           int          `json:"ind_estado"`
	EventID         int          `json:"id_evento"`
	Concept         string       `json:"concepto"`
	Amount          Cents        `json:"cantidad_total_ctm"`
	GrantChargeable bool         `json:"imputable_subvencion"`
	FiscalYear      int          `json:"ano_ejercicio"`
	GrantCategoryID int          `json:"categorias_subvencion_id"`
	CreatedBy       int          `json:"usuario_creacion"`
	CreatedAt       DateTime     `json:"fecha_creacion"`
	UpdatedBy       int          `json:"usuario_actualizacion"`
	UpdatedAt       DateTime     `json:"fecha_actualizacion"`
	Notes           *string      `json:"consideraciones"`
	Type            MovementType `json:"ind_movimiento"`
	CashBox         CashBoxState `json:"ind_mov_caja"`
}

// StateLabel returns the display label of the review state
func (m EconomicMovement) StateLabel() string {
	return MovementState(m.State).String()
}

// EconomicMovementCreate is the create request
type EconomicMovementCreate struct {
	EventID         int          `json:"id_evento"`
	Concept         string       `json:"concepto"`
	Amount          Cents        `json:"cantidad_total_ctm"`
	GrantChargeable bool         `json:"imputable_subvencion"`
	FiscalYear      int          `json:"ano_ejercicio"`
	GrantCategoryID int          `json:"categorias_subvencion_id"`
	Notes           *string      `json:"consideraciones"`
	Type            MovementType `json:"ind_movimiento"`
	CashBox         CashBoxState `json:"ind_mov_caja"`
}

// Validate mirrors the server's field constraints
func (m EconomicMovementCreate) Validate() error {
	if err := Required("concepto", m.Concept); err != nil {
		return err
	}
	if err := MaxLen("concepto", m.Concept, 45); err != nil {
		return err
	}
	if m.Amount < 0 {
		return &FieldError{Field: "cantidad_total_ctm", Message: "no puede ser negativa"}
	}
	if m.FiscalYear <= 0 {
		return &FieldError{Field: "ano_ejercicio", Message: "debe ser positivo"}
	}
	if m.GrantCategoryID <= 0 {
		return &FieldError{Field: "categorias_subvencion_id", Message: "es obligatorio"}
	}
	if m.Type != MovementIncome && m.Type != MovementExpense {
		return &FieldError{Field: "ind_movimiento", Message: "debe ser entrada o salida"}
	}
	if m.Notes != nil {
		return MaxLen("consideraciones", *m.Notes, 1024)
	}
	return nil
}

// EconomicMovementUpdate is the partial update request
type EconomicMovementUpdate struct {
	EventID         *int           `json:"id_evento"`
	Concept         *string        `json:"concepto"`
	Amount          *Cents         `json:"cantidad_total_ctm"`
	GrantChargeable *bool          `json:"imputable_subvencion"`
	FiscalYear      *int           `json:"ano_ejercicio"`
	GrantCategoryID *int           `json:"categorias_subvencion_id"`
	Notes           *string        `json:"consideraciones"`
	Type            *MovementType  `json:"ind_movimiento"`
	State           *MovementState `json:"ind_estado"`
	CashBox         *CashBoxState  `json:"ind_mov_caja"`
}

// EconomicMovementFilters narrows the movements list. Only From is required.
type EconomicMovementFilters struct {
	From            string
	To              *string
	State           *MovementState
	GrantChargeable *bool
	UpdatedBy       *int
	EventID         *int
}

// Query renders the filters as request query parameters; nil entries are
// dropped by the client
func (f EconomicMovementFilters) Query() map[string]any {
	return map[string]any{
		"fecha_creacion_from":   f.From,
		"fecha_creacion_to":     f.To,
		"ind_estado":            f.State,
		"imputable_subvencion":  f.GrantChargeable,
		"usuario_actualizacion": f.UpdatedBy,
		"id_evento":             f.EventID,
	}
}

// GrantCategory is a grant category a movement can be charged to
type GrantCategory struct {
	ID          int     `json:"id_categorias_subvencion"`
	Name        string  `json:"categoria"`
	Description *string `json:"descripcion"`
	Kind        string  `json:"tipo_categoria"`
}
